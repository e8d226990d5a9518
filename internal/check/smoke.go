package check

import (
	"context"
	"errors"
	"strings"

	"github.com/qiniu/x/log"

	"github.com/mortar-build/mortar/internal/prefix"
	"github.com/mortar-build/mortar/internal/run"
	"github.com/mortar-build/mortar/recipe"
)

// Outcome classifies one smoke check result.
type Outcome int

const (
	Passed Outcome = iota
	Failed
	Skipped // target executable absent, e.g. an optional component was disabled
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// SmokeResult is the recorded outcome of one smoke check.
type SmokeResult struct {
	Check   recipe.SmokeCheck
	Outcome Outcome
	Output  string
	Err     error
}

// Smoke runs every check in order against an installed prefix. Checks are
// independent: a missing executable yields Skipped, a failure is recorded
// and never aborts the remaining checks. Aggregation of the results into a
// pass/fail decision belongs to the caller.
func Smoke(ctx context.Context, pre prefix.Prefix, checks []recipe.SmokeCheck, env recipe.Env) []SmokeResult {
	results := make([]SmokeResult, 0, len(checks))
	for _, c := range checks {
		results = append(results, runSmokeCheck(ctx, pre, c, env))
	}
	return results
}

func runSmokeCheck(ctx context.Context, pre prefix.Prefix, c recipe.SmokeCheck, env recipe.Env) SmokeResult {
	exe := pre.Executable(c.Exe)
	if exe == "" {
		log.Infof("smoke %s: %s not installed, skipping", c.Name, c.Exe)
		return SmokeResult{Check: c, Outcome: Skipped}
	}

	res, err := run.Output(ctx, run.Cmd{Path: exe, Args: c.Args, Dir: c.WorkDir, Env: env})
	output := res.Stdout + res.Stderr
	if err != nil {
		if errors.Is(err, run.ErrNotFound) {
			return SmokeResult{Check: c, Outcome: Skipped}
		}
		log.Warnf("smoke %s: %v", c.Name, err)
		return SmokeResult{Check: c, Outcome: Failed, Output: output, Err: err}
	}
	if c.Expect != "" && !strings.Contains(output, c.Expect) {
		log.Warnf("smoke %s: output does not contain %q", c.Name, c.Expect)
		return SmokeResult{Check: c, Outcome: Failed, Output: output}
	}
	return SmokeResult{Check: c, Outcome: Passed, Output: output}
}
