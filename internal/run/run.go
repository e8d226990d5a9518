// Package run spawns external tools synchronously with captured output and
// an explicit environment. Nothing here mutates the ambient process
// environment; overrides travel with each command.
package run

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/mortar-build/mortar/recipe"
)

// Cmd describes one external tool invocation.
type Cmd struct {
	Path string   // executable path or bare name (resolved via PATH)
	Args []string // arguments, excluding the executable itself
	Dir  string   // working directory; "" means inherit
	Env  recipe.Env
}

// Result carries the captured output of a completed invocation.
type Result struct {
	Stdout string
	Stderr string
}

// ErrNotFound reports that the executable does not exist.
var ErrNotFound = errors.New("executable not found")

// Output runs the command to completion, returning its captured output.
// A non-zero exit yields an error whose message prefers the tool's stderr.
func Output(ctx context.Context, c Cmd) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	if c.Env.Len() > 0 {
		cmd.Env = c.Env.Environ(os.Environ())
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return res, ErrNotFound
		}
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			return res, errors.New(msg)
		}
		return res, err
	}
	return res, nil
}

// LookPath reports whether an executable is reachable: an absolute or
// relative path that exists, or a bare name found on PATH.
func LookPath(name string) bool {
	if strings.ContainsRune(name, os.PathSeparator) {
		info, err := os.Stat(name)
		return err == nil && !info.IsDir()
	}
	_, err := exec.LookPath(name)
	return err == nil
}
