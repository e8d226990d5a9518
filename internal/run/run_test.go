package run

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mortar-build/mortar/recipe"
)

func script(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOutput(t *testing.T) {
	tool := script(t, "echo out\necho err >&2\n")
	res, err := Output(context.Background(), Cmd{Path: tool})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if res.Stdout != "out\n" || res.Stderr != "err\n" {
		t.Errorf("Result = %+v", res)
	}
}

func TestOutputFailurePrefersStderr(t *testing.T) {
	tool := script(t, "echo 'it broke' >&2\nexit 3\n")
	_, err := Output(context.Background(), Cmd{Path: tool})
	if err == nil || err.Error() != "it broke" {
		t.Errorf("err = %v, want the tool's stderr", err)
	}
}

func TestOutputNotFound(t *testing.T) {
	_, err := Output(context.Background(), Cmd{Path: filepath.Join(t.TempDir(), "absent")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOutputEnv(t *testing.T) {
	tool := script(t, "echo \"$MORTAR_TEST_VAR\"\n")
	env := recipe.NewEnv().Set("MORTAR_TEST_VAR", "threaded")
	res, err := Output(context.Background(), Cmd{Path: tool, Env: env})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stdout != "threaded\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
}

func TestLookPath(t *testing.T) {
	tool := script(t, "exit 0\n")
	if !LookPath(tool) {
		t.Errorf("LookPath(%s) = false", tool)
	}
	if LookPath(filepath.Join(t.TempDir(), "absent")) {
		t.Error("LookPath found an absent tool")
	}
}
