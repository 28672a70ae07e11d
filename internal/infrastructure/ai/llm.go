// Package ai adapts the external `llm` command-line tool. The tool is
// treated as untrusted and unreliable: it may be missing, slow, or return
// garbage, and every one of those conditions is a normal, recoverable state
// for the caller.
package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// DefaultBinary is the external AI tool resolved via PATH.
const DefaultBinary = "llm"

// CLITool invokes the external AI tool as a child process.
type CLITool struct {
	binary string
}

// NewCLITool builds the adapter; binary defaults to "llm".
func NewCLITool(binary string) *CLITool {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLITool{binary: binary}
}

// Available implements ports.MessageModel.
func (t *CLITool) Available() bool {
	_, err := exec.LookPath(t.binary)
	return err == nil
}

// Generate runs one bounded model invocation. The caller owns the deadline
// via ctx; on expiry the child is killed and the error reports a timeout.
func (t *CLITool) Generate(ctx context.Context, model, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, t.binary, "-m", model, prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", errors.New("AI request timed out")
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("AI tool failed: %w", err)
		}
		return "", fmt.Errorf("AI tool failed: %s", firstLine(msg))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", errors.New("AI returned empty output")
	}
	return out, nil
}

// ListModels implements ports.ModelLister by parsing `llm models` output.
func (t *CLITool) ListModels(ctx context.Context) ([]domain.Model, error) {
	cmd := exec.CommandContext(ctx, t.binary, "models")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return ParseModelList(stdout.String()), nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

var (
	_ ports.MessageModel = (*CLITool)(nil)
	_ ports.ModelLister  = (*CLITool)(nil)
)
