package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/appfeat/gitgo/internal/application/release"
	"github.com/appfeat/gitgo/internal/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Renderer prints proposals, dashboards and run outcomes. It implements
// release.UI for the review session.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer builds a renderer; color false renders plain text.
func NewRenderer(out io.Writer, color bool) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out, color: color}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// ShowProposal renders the current commit proposal for review.
func (r *Renderer) ShowProposal(p domain.CommitProposal) {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s %s [%s]\n", r.style(labelStyle, "Identity:"), p.Identity, p.Identity.Source)
	fmt.Fprintf(r.out, "%s  %s (%s bump)\n", r.style(labelStyle, "Version:"), p.Version, p.Bump)
	model := p.Model
	if model == "" {
		model = "(none)"
	}
	fmt.Fprintf(r.out, "%s    %s\n", r.style(labelStyle, "Model:"), model)
	fmt.Fprintf(r.out, "%s   %s\n", r.style(labelStyle, "Source:"), p.Source)
	if p.AIWarning != "" {
		fmt.Fprintf(r.out, "%s %s\n", r.style(warnStyle, "AI note:"), p.AIWarning)
	}
	fmt.Fprintf(r.out, "\n%s\n%s\n\n", r.style(labelStyle, "Message:"), p.Message.Text())
}

// ShowInfo prints an informational line.
func (r *Renderer) ShowInfo(msg string) {
	fmt.Fprintln(r.out, msg)
}

// ShowWarn prints a warning line.
func (r *Renderer) ShowWarn(msg string) {
	fmt.Fprintln(r.out, r.style(warnStyle, msg))
}

// ShowDashboard renders the read-only repository overview.
func (r *Renderer) ShowDashboard(s domain.RepoSnapshot) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.style(headerStyle, "Repository status"))

	fmt.Fprintln(r.out, r.style(labelStyle, "\nIdentity:"))
	fmt.Fprintf(r.out, "  Name:   %s\n", orNotSet(s.Identity.Name))
	fmt.Fprintf(r.out, "  Email:  %s\n", orNotSet(s.Identity.Email))
	fmt.Fprintf(r.out, "  Source: %s\n", s.Identity.Source)

	fmt.Fprintln(r.out, r.style(labelStyle, "\nAI:"))
	fmt.Fprintf(r.out, "  Default model: %s\n", orNotSet(s.AI.Model))
	fmt.Fprintf(r.out, "  Timeout:       %ds\n", s.AI.TimeoutSeconds)

	branch := s.Branch
	if s.Detached {
		branch = "(detached)"
	}
	fmt.Fprintf(r.out, "\nBranch:     %s\n", orNotSet(branch))
	if s.LatestTag != "" {
		fmt.Fprintf(r.out, "Latest tag: %s\n", s.LatestTag)
	}

	fmt.Fprintln(r.out, r.style(labelStyle, "\nRemotes:"))
	if len(s.Remotes) == 0 {
		fmt.Fprintln(r.out, "  (none)")
	} else {
		tw := r.newTable()
		tw.AppendHeader(table.Row{"Name", "URL"})
		for _, remote := range s.Remotes {
			tw.AppendRow(table.Row{remote.Name, remote.URL})
		}
		fmt.Fprintln(r.out, tw.Render())
	}

	fmt.Fprintln(r.out, r.style(labelStyle, "\nWorking tree:"))
	if s.Clean() {
		fmt.Fprintln(r.out, "  Clean")
	} else {
		for _, line := range s.StatusDirt {
			fmt.Fprintf(r.out, "  %s\n", line)
		}
	}

	fmt.Fprintln(r.out, r.style(labelStyle, "\nRecent commits:"))
	if len(s.RecentLog) == 0 {
		fmt.Fprintln(r.out, "  (no commits yet)")
	} else {
		tw := r.newTable()
		tw.AppendHeader(table.Row{"Hash", "Date", "Subject"})
		for _, entry := range s.RecentLog {
			tw.AppendRow(table.Row{entry.Hash, entry.Date, entry.Subject})
		}
		fmt.Fprintln(r.out, tw.Render())
	}
	fmt.Fprintln(r.out)
}

// ShowOutcome reports how far the sequencer progressed.
func (r *Renderer) ShowOutcome(version string, outcome domain.RunOutcome) {
	switch {
	case outcome.Pushed:
		fmt.Fprintln(r.out, r.style(successStyle, fmt.Sprintf("Released %s", version)))
	case outcome.PushSkipped:
		fmt.Fprintln(r.out, r.style(successStyle, fmt.Sprintf("Local commit and tag created: %s", version)))
		fmt.Fprintln(r.out, "Add a remote later using:")
		fmt.Fprintln(r.out, r.style(dimStyle, "  git remote add origin <url>"))
	case outcome.Err != nil:
		fmt.Fprintln(r.out, r.style(warnStyle, fmt.Sprintf("Release stopped: %v", outcome.Err)))
		fmt.Fprintf(r.out, "Progress: staged=%v tagged=%v committed=%v pushed=%v\n",
			outcome.Staged, outcome.Tagged, outcome.Committed, outcome.Pushed)
		if outcome.RetriablePush {
			fmt.Fprintln(r.out, "Your commit and tag are safe locally; fix access and push again.")
		}
		if outcome.Tagged && !outcome.Committed {
			fmt.Fprintf(r.out, "Tag %s was created and left in place; remove it manually if unwanted.\n", version)
		}
	}
}

// ShowHistory renders past release runs.
func (r *Renderer) ShowHistory(records []domain.ReleaseRecord) {
	if len(records) == 0 {
		fmt.Fprintln(r.out, "No releases recorded yet.")
		return
	}
	tw := r.newTable()
	tw.AppendHeader(table.Row{"When", "Version", "Summary", "Source", "Pushed"})
	for _, rec := range records {
		pushed := "no"
		if rec.Pushed {
			pushed = "yes"
		}
		tw.AppendRow(table.Row{
			rec.Timestamp.Format("2006-01-02 15:04"),
			rec.Version,
			truncate(rec.Summary, 48),
			rec.Source,
			pushed,
		})
	}
	fmt.Fprintln(r.out, tw.Render())
}

// ShowModels renders the parsed model list.
func (r *Renderer) ShowModels(models []domain.Model) {
	if len(models) == 0 {
		fmt.Fprintln(r.out, "No models reported by the AI tool.")
		return
	}
	tw := r.newTable()
	tw.AppendHeader(table.Row{"ID", "Label", "Score"})
	for _, m := range models {
		tw.AppendRow(table.Row{m.ID, m.Label, domain.ScoreModel(m)})
	}
	fmt.Fprintln(r.out, tw.Render())
}

func (r *Renderer) newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	return tw
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not set)"
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

var _ release.UI = (*Renderer)(nil)
