// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core depends only on these contracts; the infrastructure
// layer provides the concrete adapters (the git process runner, the external
// AI tool, the terminal prompter, the SQLite history store). This keeps the
// release workflow drivable headlessly in tests with scripted fakes.
package ports

import (
	"context"

	"github.com/appfeat/gitgo/internal/domain"
)

// Repository is the version-control collaborator. Every method maps onto
// discrete-argument invocations of the underlying tool; user-supplied text
// (identity, commit messages) is never interpreted by a shell.
type Repository interface {
	// IsWorkTree reports whether the current directory is inside a repository.
	IsWorkTree(ctx context.Context) bool
	// HasCommits reports whether HEAD resolves, i.e. the repo is not freshly
	// initialized.
	HasCommits(ctx context.Context) bool

	// Config reads a key from the given scope; missing keys return "".
	Config(ctx context.Context, scope domain.ConfigScope, key string) string
	// SetConfig writes a key in the given scope. Callers in this codebase
	// only ever pass ScopeLocal for writes.
	SetConfig(ctx context.Context, scope domain.ConfigScope, key, value string) error

	// StageAll stages every pending change. Idempotent.
	StageAll(ctx context.Context) error
	// StagedFiles lists the paths currently staged for commit.
	StagedFiles(ctx context.Context) ([]string, error)
	// StagedDiff returns the staged diff, truncated to at most maxBytes.
	StagedDiff(ctx context.Context, maxBytes int) (string, error)

	// Tags lists every tag name in the repository.
	Tags(ctx context.Context) ([]string, error)
	// CreateAnnotatedTag creates an annotated tag carrying the message.
	CreateAnnotatedTag(ctx context.Context, name, message string) error
	// Commit records the staged changes with the given author identity.
	Commit(ctx context.Context, identity domain.Identity, message string) error
	// Push pushes a ref to the remote; setUpstream tracks the branch.
	Push(ctx context.Context, remote, ref string, setUpstream bool) error

	// CurrentBranch returns the checked-out branch name, "" when detached.
	CurrentBranch(ctx context.Context) string
	// Remotes lists configured remotes with their fetch URLs.
	Remotes(ctx context.Context) []domain.Remote
	// AddRemote registers a new remote.
	AddRemote(ctx context.Context, name, url string) error
	// ValidateRemoteURL checks that the URL points at a reachable repository.
	ValidateRemoteURL(ctx context.Context, url string) error
	// RecentLog returns up to n recent commits, newest first.
	RecentLog(ctx context.Context, n int) []domain.LogEntry
	// Status returns the short working-tree status lines, empty when clean.
	Status(ctx context.Context) []string
}

// MessageModel is the AI collaborator: one bounded invocation of the
// external tool. Treated as untrusted and unreliable; its absence or failure
// is a normal condition handled by the deterministic fallback.
type MessageModel interface {
	// Generate runs the model with the prompt under the context deadline.
	Generate(ctx context.Context, model, prompt string) (string, error)
	// Available reports whether the external tool is installed at all.
	Available() bool
}

// ModelLister enumerates the models the external AI tool can serve.
type ModelLister interface {
	ListModels(ctx context.Context) ([]domain.Model, error)
}

// SettingsProvider loads the ambient tool settings from persistent storage.
// Implementations typically read ~/.gitgo/config.yaml.
type SettingsProvider interface {
	Load(context.Context) (domain.Settings, error)
}

// Prompter handles the interactive parts of a run: identity capture, model
// choice, the review loop. A non-interactive prompter reports Enabled false,
// which makes prompting-dependent paths fail fast instead of hanging.
type Prompter interface {
	Enabled() bool
	// Ask prints the prompt and returns one trimmed input line.
	Ask(prompt string) (string, error)
	// AskMultiline collects lines until a lone "." terminator.
	AskMultiline(prompt string) (string, error)
}

// ReleaseHistory persists completed release runs locally.
type ReleaseHistory interface {
	Save(record domain.ReleaseRecord) error
	Records(limit int) ([]domain.ReleaseRecord, error)
}

// Logger provides structured logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
