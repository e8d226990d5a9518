package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mortar-build/mortar/internal/prefix"
	"github.com/mortar-build/mortar/recipe"
)

func fakePrefix(t *testing.T, tools map[string]string) prefix.Prefix {
	t.Helper()
	root := t.TempDir()
	bin := filepath.Join(root, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range tools {
		if err := os.WriteFile(filepath.Join(bin, name), []byte(body), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return prefix.Prefix(root)
}

func TestSmoke(t *testing.T) {
	requireSh(t)
	pre := fakePrefix(t, map[string]string{
		"h5dump": "#!/bin/sh\necho 'h5dump: Version 1.10.7'\n",
		"h5diff": "#!/bin/sh\necho 'unexpected banner'\n",
		"h5ls":   "#!/bin/sh\necho boom >&2\nexit 1\n",
	})

	checks := []recipe.SmokeCheck{
		{Name: "dump version", Exe: "h5dump", Args: []string{"--version"}, Expect: "Version 1.10.7"},
		{Name: "diff version", Exe: "h5diff", Args: []string{"--version"}, Expect: "Version 1.10.7"},
		{Name: "ls version", Exe: "h5ls", Args: []string{"--version"}, Expect: "Version 1.10.7"},
		{Name: "copy version", Exe: "h5copy", Args: []string{"--version"}, Expect: "Version 1.10.7"},
	}
	results := Smoke(context.Background(), pre, checks, recipe.NewEnv())
	if len(results) != len(checks) {
		t.Fatalf("got %d results, want %d", len(results), len(checks))
	}

	want := []Outcome{Passed, Failed, Failed, Skipped}
	for i, res := range results {
		if res.Outcome != want[i] {
			t.Errorf("%s: outcome = %v, want %v", res.Check.Name, res.Outcome, want[i])
		}
	}

	// A failing check must not abort its siblings: the skipped check after
	// two failures was still evaluated.
	if results[3].Check.Exe != "h5copy" {
		t.Errorf("last result = %s, want h5copy", results[3].Check.Exe)
	}
}

func TestSmokeRunOnly(t *testing.T) {
	requireSh(t)
	pre := fakePrefix(t, map[string]string{
		"h5copy": "#!/bin/sh\nexit 0\n",
	})

	results := Smoke(context.Background(), pre,
		[]recipe.SmokeCheck{{Name: "copy runs", Exe: "h5copy"}}, recipe.NewEnv())
	if results[0].Outcome != Passed {
		t.Errorf("outcome = %v, want Passed", results[0].Outcome)
	}
}

func TestSmokeEnv(t *testing.T) {
	requireSh(t)
	pre := fakePrefix(t, map[string]string{
		"probe": "#!/bin/sh\necho \"$SMOKE_BANNER\"\n",
	})

	env := recipe.NewEnv().Set("SMOKE_BANNER", "banner-42")
	results := Smoke(context.Background(), pre,
		[]recipe.SmokeCheck{{Name: "env threads", Exe: "probe", Expect: "banner-42"}}, env)
	if results[0].Outcome != Passed {
		t.Errorf("outcome = %v, output %q", results[0].Outcome, results[0].Output)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{Passed, "passed"},
		{Failed, "failed"},
		{Skipped, "skipped"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}
