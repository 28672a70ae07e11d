package domain

import (
	"strings"
	"unicode"
)

// SummaryLimit caps the first line of a commit message.
const SummaryLimit = 72

// MessageSource records which tier produced the commit message.
type MessageSource string

const (
	SourceDeterministic MessageSource = "deterministic"
	SourceAI            MessageSource = "ai"
)

// CommitMessage is a sanitized commit message split into its summary line
// and optional free-text body.
type CommitMessage struct {
	Summary string
	Body    string
}

// Empty reports whether no usable text survived sanitization.
func (m CommitMessage) Empty() bool {
	return strings.TrimSpace(m.Summary) == ""
}

// Text joins summary and body back into the full message text.
func (m CommitMessage) Text() string {
	if m.Body == "" {
		return m.Summary
	}
	return m.Summary + "\n\n" + m.Body
}

// SanitizeMessage normalizes raw message text into a compliant CommitMessage.
//
// Control characters are stripped (newlines and tabs survive), the first
// non-empty line becomes the summary and is hard-capped at SummaryLimit
// runes, cutting at the last word boundary when one exists. Remaining lines
// become the body. The same sanitizer runs on both the deterministic and AI
// tiers, so review always shows a compliant proposal.
func SanitizeMessage(raw string) CommitMessage {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)

	lines := strings.Split(strings.TrimSpace(cleaned), "\n")
	if len(lines) == 0 {
		return CommitMessage{}
	}

	summary := truncateSummary(strings.TrimSpace(lines[0]))
	body := strings.TrimSpace(strings.Join(lines[1:], "\n"))
	return CommitMessage{Summary: summary, Body: body}
}

func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= SummaryLimit {
		return s
	}
	cut := string(runes[:SummaryLimit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}

// CommitProposal is the reviewable unit of a run: who commits, at which
// version, with what message. It is mutated only through explicit review
// edits and consumed exactly once by the release sequencer.
type CommitProposal struct {
	Identity Identity
	Version  VersionTag
	Bump     BumpKind
	Message  CommitMessage
	Source   MessageSource

	// AIWarning carries an informational note when the AI tier was
	// attempted and failed; it never blocks the run.
	AIWarning string
	// Model is the AI model identifier in effect for this proposal, empty
	// when none is configured.
	Model string
}
