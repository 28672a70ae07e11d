package domain

// Settings mirrors ~/.gitgo/config.yaml. These are ambient preferences for
// the tool itself. Anything scoped to a single repository (the saved AI
// model, its timeout, identity) lives in repo-local git config instead and
// never here.
type Settings struct {
	ConfigFormatVersion string      `yaml:"config_format_version"`
	AI                  AISettings  `yaml:"ai"`
	Release             RelSettings `yaml:"release"`
	History             HistSet     `yaml:"history"`
	Color               bool        `yaml:"color"`
}

// AISettings configures the external AI command-line tool.
type AISettings struct {
	// Binary is the AI tool executable name, resolved via PATH.
	Binary string `yaml:"binary"`
	// DefaultTimeoutSeconds applies when no repo-local timeout is saved.
	DefaultTimeoutSeconds int `yaml:"default_timeout"`
	// MaxDiffBytes caps how much staged diff is sent to the model.
	MaxDiffBytes int `yaml:"max_diff_bytes"`
}

// RelSettings configures release defaults.
type RelSettings struct {
	DefaultBump string `yaml:"default_bump"`
	Remote      string `yaml:"remote"`
}

// HistSet toggles the local release-history store.
type HistSet struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// Timeout bounds for the AI tier, seconds.
const (
	MinAITimeoutSeconds     = 1
	MaxAITimeoutSeconds     = 60
	DefaultAITimeoutSeconds = 12
)

// ClampTimeout normalizes a configured timeout into the accepted range,
// falling back to the default for non-positive values.
func ClampTimeout(seconds int) int {
	if seconds <= 0 {
		return DefaultAITimeoutSeconds
	}
	if seconds < MinAITimeoutSeconds {
		return MinAITimeoutSeconds
	}
	if seconds > MaxAITimeoutSeconds {
		return MaxAITimeoutSeconds
	}
	return seconds
}

// AIConfig is the repo-scoped AI state read at the start of a run: the saved
// model (empty when the user has not picked one yet) and the clamped timeout.
type AIConfig struct {
	Model          string
	TimeoutSeconds int
}
