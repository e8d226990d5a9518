package check

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mortar-build/mortar/recipe"
)

// fakeCompiler behaves like a C compiler driver: "-c" succeeds, "-o"
// produces a runnable binary that prints $PROBE_OUTPUT.
const fakeCompiler = `#!/bin/sh
if [ "$1" = "-c" ]; then
  : > check.o
  exit 0
fi
out=$2
cat > "$out" <<'EOF'
#!/bin/sh
printf '%s' "$PROBE_OUTPUT"
EOF
chmod +x "$out"
`

// crashingLinker produces a binary that always fails at run time.
const crashingLinker = `#!/bin/sh
if [ "$1" = "-c" ]; then
  : > check.o
  exit 0
fi
out=$2
cat > "$out" <<'EOF'
#!/bin/sh
echo "segmentation fault" >&2
exit 139
EOF
chmod +x "$out"
`

const brokenCompiler = `#!/bin/sh
echo "check.c:1: catastrophic error" >&2
exit 1
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cc")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// scopedTempDir redirects temporary directories to an observable location
// so leftover check directories can be detected.
func scopedTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	return dir
}

func requireSh(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func assertNoCheckDirs(t *testing.T, tmp string) {
	t.Helper()
	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "mortar-check-") {
			t.Errorf("check directory %s not removed", e.Name())
		}
	}
}

func TestProbeMatch(t *testing.T) {
	requireSh(t)
	tmp := scopedTempDir(t)

	const banner = "HDF5 version 1.10.7 1.10.7\n"
	p := &Probe{
		Product:  "HDF5",
		Source:   "int main(void) { return 0; }\n",
		Compiler: writeScript(t, fakeCompiler),
		Expected: banner,
		Env:      recipe.NewEnv().Set("PROBE_OUTPUT", banner),
		Out:      &bytes.Buffer{},
	}
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.OK || res.Actual != banner {
		t.Errorf("Result = %+v, want OK with %q", res, banner)
	}
	assertNoCheckDirs(t, tmp)
}

func TestProbeMismatch(t *testing.T) {
	requireSh(t)
	tmp := scopedTempDir(t)

	var diag bytes.Buffer
	p := &Probe{
		Product:  "HDF5",
		Source:   "int main(void) { return 0; }\n",
		Compiler: writeScript(t, fakeCompiler),
		Expected: "HDF5 version 1.10.7 1.10.7\n",
		Env:      recipe.NewEnv().Set("PROBE_OUTPUT", "HDF5 version 1.10.7 1.10.6\n"),
		Out:      &diag,
	}
	res, err := p.Run(context.Background())
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("Run = %v, want ErrCheckFailed", err)
	}
	if res.OK {
		t.Error("Result.OK = true for mismatching output")
	}
	for _, want := range []string{"expected output:", "produced output:", "1.10.6"} {
		if !strings.Contains(diag.String(), want) {
			t.Errorf("diagnostics missing %q:\n%s", want, diag.String())
		}
	}
	assertNoCheckDirs(t, tmp)
}

func TestProbeMissingTrailingNewline(t *testing.T) {
	requireSh(t)
	scopedTempDir(t)

	p := &Probe{
		Product:  "HDF5",
		Source:   "int main(void) { return 0; }\n",
		Compiler: writeScript(t, fakeCompiler),
		Expected: "HDF5 version 1.10.7 1.10.7\n",
		Env:      recipe.NewEnv().Set("PROBE_OUTPUT", "HDF5 version 1.10.7 1.10.7"),
		Out:      &bytes.Buffer{},
	}
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestProbeExtraTrailingNewline(t *testing.T) {
	requireSh(t)
	scopedTempDir(t)

	p := &Probe{
		Product:  "HDF5",
		Source:   "int main(void) { return 0; }\n",
		Compiler: writeScript(t, fakeCompiler),
		Expected: "HDF5 version 1.10.7 1.10.7\n",
		Env:      recipe.NewEnv().Set("PROBE_OUTPUT", "HDF5 version 1.10.7 1.10.7\n\n"),
		Out:      &bytes.Buffer{},
	}
	if _, err := p.Run(context.Background()); !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("Run = %v, want ErrCheckFailed for extra trailing newlines", err)
	}
}

func TestProbeFailedToRun(t *testing.T) {
	requireSh(t)
	tmp := scopedTempDir(t)

	var diag bytes.Buffer
	p := &Probe{
		Product:  "HDF5",
		Source:   "int main(void) { return 0; }\n",
		Compiler: writeScript(t, crashingLinker),
		Expected: "HDF5 version 1.10.7 1.10.7\n",
		Out:      &diag,
	}
	res, err := p.Run(context.Background())
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("Run = %v, want ErrCheckFailed", err)
	}
	if res.Actual != "" {
		t.Errorf("Actual = %q, want empty output for a probe that failed to run", res.Actual)
	}
	assertNoCheckDirs(t, tmp)
}

func TestProbeCompileError(t *testing.T) {
	requireSh(t)
	tmp := scopedTempDir(t)

	p := &Probe{
		Product:  "HDF5",
		Source:   "int main(void) { return 0; }\n",
		Compiler: writeScript(t, brokenCompiler),
		Expected: "HDF5 version 1.10.7 1.10.7\n",
		Out:      &bytes.Buffer{},
	}
	_, err := p.Run(context.Background())
	if err == nil || errors.Is(err, ErrCheckFailed) {
		t.Fatalf("Run = %v, want a compile error distinct from ErrCheckFailed", err)
	}
	assertNoCheckDirs(t, tmp)
}

func TestExecOutcomeText(t *testing.T) {
	ran := ExecOutcome{Ran: true, Output: "x\n"}
	if ran.Text() != "x\n" {
		t.Errorf("Text = %q", ran.Text())
	}
	var notRun ExecOutcome
	if notRun.Text() != "" {
		t.Errorf("Text of a not-run outcome = %q, want empty", notRun.Text())
	}
}
