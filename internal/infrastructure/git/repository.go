package git

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// Repository implements ports.Repository on top of the git CLI.
type Repository struct {
	runner *Runner
}

// NewRepository builds a repository adapter rooted at dir ("" = cwd).
func NewRepository(dir string) *Repository {
	return &Repository{runner: &Runner{Dir: dir}}
}

// IsWorkTree implements ports.Repository.
func (r *Repository) IsWorkTree(ctx context.Context) bool {
	return r.runner.Safe(ctx, "rev-parse", "--is-inside-work-tree") == "true"
}

// HasCommits implements ports.Repository.
func (r *Repository) HasCommits(ctx context.Context) bool {
	return r.runner.Safe(ctx, "rev-parse", "--verify", "HEAD") != ""
}

// Config reads a key from one scope. Repo-local reads use --local so a
// global value never masquerades as a repository answer.
func (r *Repository) Config(ctx context.Context, scope domain.ConfigScope, key string) string {
	return r.runner.Safe(ctx, "config", scopeFlag(scope), "--get", key)
}

// SetConfig writes a key in one scope.
func (r *Repository) SetConfig(ctx context.Context, scope domain.ConfigScope, key, value string) error {
	return r.runner.Quiet(ctx, "config", scopeFlag(scope), key, value)
}

func scopeFlag(scope domain.ConfigScope) string {
	if scope == domain.ScopeGlobal {
		return "--global"
	}
	return "--local"
}

// StageAll implements ports.Repository.
func (r *Repository) StageAll(ctx context.Context) error {
	return r.runner.Quiet(ctx, "add", ".")
}

// StagedFiles implements ports.Repository.
func (r *Repository) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.runner.Output(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// StagedDiff implements ports.Repository.
func (r *Repository) StagedDiff(ctx context.Context, maxBytes int) (string, error) {
	out, err := r.runner.Output(ctx, "diff", "--cached", "--unified=0")
	if err != nil {
		return "", err
	}
	if maxBytes > 0 && len(out) > maxBytes {
		out = out[:maxBytes]
	}
	return out, nil
}

// Tags implements ports.Repository.
func (r *Repository) Tags(ctx context.Context) ([]string, error) {
	out, err := r.runner.Output(ctx, "tag", "--list")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CreateAnnotatedTag implements ports.Repository.
func (r *Repository) CreateAnnotatedTag(ctx context.Context, name, message string) error {
	return r.runner.Quiet(ctx, "tag", "-a", name, "-m", message)
}

// Commit records staged changes. The identity rides on the child process
// environment so the repository configuration is left untouched.
func (r *Repository) Commit(ctx context.Context, identity domain.Identity, message string) error {
	scoped := &Runner{
		Dir: r.runner.Dir,
		Env: []string{
			"GIT_AUTHOR_NAME=" + identity.Name,
			"GIT_AUTHOR_EMAIL=" + identity.Email,
			"GIT_COMMITTER_NAME=" + identity.Name,
			"GIT_COMMITTER_EMAIL=" + identity.Email,
		},
	}
	return scoped.Quiet(ctx, "commit", "-m", message)
}

// Push implements ports.Repository.
func (r *Repository) Push(ctx context.Context, remote, ref string, setUpstream bool) error {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "-u")
	}
	args = append(args, remote, ref)
	return r.runner.Quiet(ctx, args...)
}

// CurrentBranch implements ports.Repository.
func (r *Repository) CurrentBranch(ctx context.Context) string {
	return r.runner.Safe(ctx, "branch", "--show-current")
}

// Remotes implements ports.Repository.
func (r *Repository) Remotes(ctx context.Context) []domain.Remote {
	var remotes []domain.Remote
	for _, name := range splitLines(r.runner.Safe(ctx, "remote")) {
		remotes = append(remotes, domain.Remote{
			Name: name,
			URL:  r.runner.Safe(ctx, "remote", "get-url", name),
		})
	}
	return remotes
}

// AddRemote implements ports.Repository.
func (r *Repository) AddRemote(ctx context.Context, name, url string) error {
	return r.runner.Quiet(ctx, "remote", "add", name, url)
}

// ValidateRemoteURL probes the URL with ls-remote under its own deadline so
// an unreachable host cannot stall the session.
func (r *Repository) ValidateRemoteURL(ctx context.Context, url string) error {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := r.runner.Quiet(probeCtx, "ls-remote", url); err != nil {
		if probeCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("connection timed out while contacting the remote")
		}
		return fmt.Errorf("git could not access this repository URL")
	}
	return nil
}

// RecentLog implements ports.Repository.
func (r *Repository) RecentLog(ctx context.Context, n int) []domain.LogEntry {
	out := r.runner.Safe(ctx, "log", fmt.Sprintf("-%d", n), "--pretty=format:%h|%ad|%s", "--date=short")
	var entries []domain.LogEntry
	for _, line := range splitLines(out) {
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}
		entries = append(entries, domain.LogEntry{Hash: parts[0], Date: parts[1], Subject: parts[2]})
	}
	return entries
}

// Status implements ports.Repository.
func (r *Repository) Status(ctx context.Context) []string {
	return splitLines(r.runner.Safe(ctx, "status", "--short"))
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimRight(line, "\r"); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

var _ ports.Repository = (*Repository)(nil)
