// Package check implements post-install verification: compiling and running
// a probe program against an installed artifact, and sequencing independent
// smoke checks of installed executables.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/qiniu/x/log"

	"github.com/mortar-build/mortar/internal/run"
	"github.com/mortar-build/mortar/recipe"
)

// ErrCheckFailed is the generic verification failure. Diagnostic output is
// printed before it is returned; the error itself stays deliberately vague.
var ErrCheckFailed = errors.New("install check failed")

// ExecOutcome is the two-stage result of executing the probe binary: either
// it ran and produced output, or it failed to run at all. A probe that
// failed to run compares as empty output, so a crash is indistinguishable
// from a silent probe and the failure decision is deferred to the
// output comparison.
type ExecOutcome struct {
	Ran    bool
	Output string
}

// Text returns the output to compare against the expectation.
func (o ExecOutcome) Text() string {
	if !o.Ran {
		return ""
	}
	return o.Output
}

// Probe verifies an installed artifact by compiling, linking and running a
// minimal program against it and comparing the output byte for byte.
type Probe struct {
	Product      string   // product name, for log messages
	Source       string   // fixed C source text of the probe
	Compiler     string   // compiler driver; the MPI wrapper when applicable
	CompileFlags []string // header flags from the installed metadata
	LinkFlags    []string // library flags from the installed metadata
	Expected     string   // exact expected stdout
	Env          recipe.Env

	// Out receives diagnostics; defaults to os.Stdout.
	Out io.Writer
}

// Result is the verification outcome kept for the caller.
type Result struct {
	OK       bool
	Expected string
	Actual   string
}

// Run performs the verification. The scoped working directory is removed on
// every exit path. Compile and link failures propagate; a probe that fails
// to execute is treated as empty output and fails the comparison instead.
func (p *Probe) Run(ctx context.Context) (Result, error) {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	log.Infof("checking %s installation...", p.Product)

	dir, err := os.MkdirTemp("", "mortar-check-*")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create check dir: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "check.c")
	if err := os.WriteFile(src, []byte(p.Source), 0o644); err != nil {
		return Result{}, fmt.Errorf("failed to write probe source: %w", err)
	}

	compileArgs := append([]string{"-c", "check.c"}, p.CompileFlags...)
	if _, err := run.Output(ctx, run.Cmd{Path: p.Compiler, Args: compileArgs, Dir: dir, Env: p.Env}); err != nil {
		return Result{}, fmt.Errorf("failed to compile probe: %w", err)
	}

	linkArgs := append([]string{"-o", "check", "check.o"}, p.LinkFlags...)
	if _, err := run.Output(ctx, run.Cmd{Path: p.Compiler, Args: linkArgs, Dir: dir, Env: p.Env}); err != nil {
		return Result{}, fmt.Errorf("failed to link probe: %w", err)
	}

	outcome := execProbe(ctx, filepath.Join(dir, "check"), dir, p.Env)

	expected := normalize(p.Expected)
	actual := normalize(outcome.Text())
	res := Result{OK: actual == expected, Expected: expected, Actual: actual}
	if !res.OK {
		printMismatch(out, expected, actual)
		return res, ErrCheckFailed
	}
	return res, nil
}

// execProbe runs the compiled probe. Any execution failure (missing
// binary, non-zero exit, runtime error) collapses into a not-ran outcome;
// the underlying error is not propagated.
func execProbe(ctx context.Context, bin, dir string, env recipe.Env) ExecOutcome {
	res, err := run.Output(ctx, run.Cmd{Path: bin, Dir: dir, Env: env})
	if err != nil {
		return ExecOutcome{}
	}
	return ExecOutcome{Ran: true, Output: res.Stdout}
}

// normalize tolerates a missing final newline on non-empty text. Only one
// newline is added back; extra trailing newlines stay and fail the compare.
func normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSuffix(s, "\n") + "\n"
}

func printMismatch(w io.Writer, expected, actual string) {
	rule := strings.Repeat("-", 80)
	warn := color.New(color.FgYellow)
	warn.Fprintln(w, "produced output does not match expected output.")
	fmt.Fprintln(w, "expected output:")
	fmt.Fprintln(w, rule)
	fmt.Fprint(w, expected)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "produced output:")
	fmt.Fprintln(w, rule)
	fmt.Fprint(w, actual)
	fmt.Fprintln(w, rule)
}
