package domain

import "time"

// Remote is one configured git remote.
type Remote struct {
	Name string
	URL  string
}

// LogEntry is one recent commit for the dashboard.
type LogEntry struct {
	Hash    string
	Date    string
	Subject string
}

// RepoSnapshot is the read-only dashboard view of the repository: identity
// and where it came from, the saved AI settings, and the usual vitals.
type RepoSnapshot struct {
	Identity   Identity
	AI         AIConfig
	Branch     string
	Detached   bool
	LatestTag  string
	Remotes    []Remote
	StatusDirt []string
	RecentLog  []LogEntry
	Bootstrap  bool
}

// Clean reports whether the working tree has no pending changes.
func (s RepoSnapshot) Clean() bool {
	return len(s.StatusDirt) == 0
}

// Model is one AI model as reported by the external tool's model listing.
type Model struct {
	ID    string
	Label string
}

// ReleaseRecord is one completed (or attempted) release run, persisted in
// the local history store.
type ReleaseRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Summary    string    `json:"summary"`
	Source     string    `json:"source"`
	Model      string    `json:"model,omitempty"`
	FileCount  int       `json:"file_count"`
	Staged     bool      `json:"staged"`
	Tagged     bool      `json:"tagged"`
	Committed  bool      `json:"committed"`
	Pushed     bool      `json:"pushed"`
	ErrorText  string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}
