// Package message builds commit messages with a two-tier strategy: a cheap
// deterministic message derived from the shape of the staged change set,
// always computed first, and an optional AI improvement that is attempted
// only when a model is configured and the external tool is present. The AI
// tier can fail in any way it likes without affecting the run.
package message

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// Generator produces the commit message for a release proposal.
type Generator struct {
	Model  ports.MessageModel
	Logger ports.Logger
}

// Request carries the diff summary and AI configuration for one generation.
type Request struct {
	Bootstrap   bool
	StagedFiles []string
	Diff        string
	AI          domain.AIConfig
}

// Result is the generated message plus provenance and any AI-tier note.
type Result struct {
	Message   domain.CommitMessage
	Source    domain.MessageSource
	AIWarning string
}

// Generate returns a usable commit message unconditionally. The
// deterministic fallback is computed first; the AI tier, when attempted,
// runs under a hard wall-clock deadline and any failure falls back
// silently. Both tiers pass through the same sanitizer, so the summary cap
// holds regardless of source.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	fallback := domain.SanitizeMessage(Fallback(req.Bootstrap, req.StagedFiles))
	result := Result{Message: fallback, Source: domain.SourceDeterministic}

	if req.AI.Model == "" {
		return result
	}
	if g.Model == nil || !g.Model.Available() {
		result.AIWarning = "AI tool not installed"
		return result
	}

	timeout := time.Duration(domain.ClampTimeout(req.AI.TimeoutSeconds)) * time.Second
	aiCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := g.Model.Generate(aiCtx, req.AI.Model, buildPrompt(fallback.Text(), req.Diff))
	if err != nil {
		result.AIWarning = err.Error()
		g.log("ai tier failed", map[string]interface{}{"model": req.AI.Model, "error": err.Error()})
		return result
	}

	improved := domain.SanitizeMessage(raw)
	if improved.Empty() {
		// Nothing printable survived sanitization; treat as a tier failure.
		result.AIWarning = "AI returned empty output"
		return result
	}

	result.Message = improved
	result.Source = domain.SourceAI
	return result
}

func (g *Generator) log(msg string, fields map[string]interface{}) {
	if g.Logger != nil {
		g.Logger.Warn(msg, fields)
	}
}

// Fallback derives a summary from the change-set shape alone. It needs no
// external dependency and is the baseline every run can commit with.
func Fallback(bootstrap bool, files []string) string {
	switch {
	case bootstrap:
		return "Initial commit"
	case len(files) == 1:
		return fmt.Sprintf("Update %s", filepath.Base(files[0]))
	case len(files) <= 5:
		return fmt.Sprintf("Update %d project files", len(files))
	default:
		return fmt.Sprintf("Update multiple project files (%d)", len(files))
	}
}

func buildPrompt(current, diff string) string {
	return fmt.Sprintf(`Improve this Git commit message.

Rules:
- FIRST line must be at most 72 characters.
- Do NOT invent details.

Current message:
%s

Diff:
%s
`, current, diff)
}
