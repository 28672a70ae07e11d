// Package git adapts the git command-line tool to the ports.Repository
// contract. Every call passes arguments as a discrete list; no commit text
// or identity string ever reaches a shell.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes git with discrete arguments and captures output.
type Runner struct {
	// Dir forces a working directory; empty means inherit the process cwd.
	Dir string
	// Env entries are appended to the child environment.
	Env []string
}

// Output runs git and returns trimmed stdout, failing on non-zero exit.
func (r *Runner) Output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", args[0], err)
		}
		return "", fmt.Errorf("git %s: %s: %w", args[0], msg, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Quiet runs git for its side effect, discarding stdout.
func (r *Runner) Quiet(ctx context.Context, args ...string) error {
	_, err := r.Output(ctx, args...)
	return err
}

// Safe runs git and swallows any failure, returning "". Used for probes
// where absence of output already carries the answer.
func (r *Runner) Safe(ctx context.Context, args ...string) string {
	out, err := r.Output(ctx, args...)
	if err != nil {
		return ""
	}
	return out
}
