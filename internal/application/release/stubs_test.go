package release_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

type cfgWrite struct {
	scope domain.ConfigScope
	key   string
	value string
}

// fakeRepo is a scriptable ports.Repository. Mutating calls are recorded so
// tests can assert ordering and scope discipline.
type fakeRepo struct {
	worktree bool
	commits  bool

	localCfg  map[string]string
	globalCfg map[string]string
	writes    []cfgWrite

	stagedFiles []string
	diff        string
	tags        []string
	branch      string
	remotes     []domain.Remote
	status      []string
	log         []domain.LogEntry

	stageErr  error
	tagErr    error
	commitErr error
	pushErr   map[string]error

	createdTags []string
	committed   []string
	pushed      []string
	addedRemote string
	validateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		worktree:  true,
		commits:   true,
		localCfg:  map[string]string{},
		globalCfg: map[string]string{},
		branch:    "main",
		remotes:   []domain.Remote{{Name: "origin", URL: "git@example.com:demo.git"}},
	}
}

func (r *fakeRepo) IsWorkTree(context.Context) bool { return r.worktree }
func (r *fakeRepo) HasCommits(context.Context) bool { return r.commits }

func (r *fakeRepo) Config(_ context.Context, scope domain.ConfigScope, key string) string {
	if scope == domain.ScopeGlobal {
		return r.globalCfg[key]
	}
	return r.localCfg[key]
}

func (r *fakeRepo) SetConfig(_ context.Context, scope domain.ConfigScope, key, value string) error {
	r.writes = append(r.writes, cfgWrite{scope: scope, key: key, value: value})
	if scope == domain.ScopeGlobal {
		r.globalCfg[key] = value
	} else {
		r.localCfg[key] = value
	}
	return nil
}

func (r *fakeRepo) globalWrites() []cfgWrite {
	var writes []cfgWrite
	for _, w := range r.writes {
		if w.scope == domain.ScopeGlobal {
			writes = append(writes, w)
		}
	}
	return writes
}

func (r *fakeRepo) StageAll(context.Context) error { return r.stageErr }

func (r *fakeRepo) StagedFiles(context.Context) ([]string, error) {
	return r.stagedFiles, nil
}

func (r *fakeRepo) StagedDiff(_ context.Context, maxBytes int) (string, error) {
	if maxBytes > 0 && len(r.diff) > maxBytes {
		return r.diff[:maxBytes], nil
	}
	return r.diff, nil
}

func (r *fakeRepo) Tags(context.Context) ([]string, error) { return r.tags, nil }

func (r *fakeRepo) CreateAnnotatedTag(_ context.Context, name, message string) error {
	if r.tagErr != nil {
		return r.tagErr
	}
	r.createdTags = append(r.createdTags, name)
	return nil
}

func (r *fakeRepo) Commit(_ context.Context, identity domain.Identity, message string) error {
	if r.commitErr != nil {
		return r.commitErr
	}
	r.committed = append(r.committed, fmt.Sprintf("%s|%s", identity, message))
	return nil
}

func (r *fakeRepo) Push(_ context.Context, remote, ref string, setUpstream bool) error {
	if err, ok := r.pushErr[ref]; ok {
		return err
	}
	r.pushed = append(r.pushed, fmt.Sprintf("%s/%s", remote, ref))
	return nil
}

func (r *fakeRepo) CurrentBranch(context.Context) string { return r.branch }

func (r *fakeRepo) Remotes(context.Context) []domain.Remote { return r.remotes }

func (r *fakeRepo) AddRemote(_ context.Context, name, url string) error {
	r.addedRemote = url
	r.remotes = append(r.remotes, domain.Remote{Name: name, URL: url})
	return nil
}

func (r *fakeRepo) ValidateRemoteURL(_ context.Context, url string) error {
	return r.validateErr
}

func (r *fakeRepo) RecentLog(_ context.Context, n int) []domain.LogEntry {
	if len(r.log) > n {
		return r.log[:n]
	}
	return r.log
}

func (r *fakeRepo) Status(context.Context) []string { return r.status }

var _ ports.Repository = (*fakeRepo)(nil)

// scriptedPrompter feeds a fixed sequence of answers to the session.
type scriptedPrompter struct {
	answers []string
	pos     int
	enabled bool
}

func (p *scriptedPrompter) Enabled() bool { return p.enabled }

func (p *scriptedPrompter) Ask(string) (string, error) {
	if p.pos >= len(p.answers) {
		return "", errors.New("prompter script exhausted")
	}
	answer := p.answers[p.pos]
	p.pos++
	return answer, nil
}

func (p *scriptedPrompter) AskMultiline(string) (string, error) {
	return p.Ask("")
}

var _ ports.Prompter = (*scriptedPrompter)(nil)

// recordingUI captures rendered output for assertions.
type recordingUI struct {
	proposals []domain.CommitProposal
	infos     []string
	warns     []string
}

func (u *recordingUI) ShowProposal(p domain.CommitProposal) {
	u.proposals = append(u.proposals, p)
}

func (u *recordingUI) ShowInfo(msg string) { u.infos = append(u.infos, msg) }
func (u *recordingUI) ShowWarn(msg string) { u.warns = append(u.warns, msg) }

// stubLister returns a fixed model list.
type stubLister struct {
	models []domain.Model
	err    error
}

func (l *stubLister) ListModels(context.Context) ([]domain.Model, error) {
	return l.models, l.err
}

// stubModel is a canned AI collaborator.
type stubModel struct {
	output    string
	err       error
	available bool
}

func (m *stubModel) Available() bool { return m.available }

func (m *stubModel) Generate(context.Context, string, string) (string, error) {
	return m.output, m.err
}

// stubSettings serves a fixed settings value.
type stubSettings struct {
	settings domain.Settings
}

func (s *stubSettings) Load(context.Context) (domain.Settings, error) {
	return s.settings, nil
}

func defaultTestSettings() domain.Settings {
	return domain.Settings{
		AI: domain.AISettings{
			Binary:                "llm",
			DefaultTimeoutSeconds: domain.DefaultAITimeoutSeconds,
			MaxDiffBytes:          15000,
		},
		Release: domain.RelSettings{
			DefaultBump: string(domain.BumpPatch),
			Remote:      "origin",
		},
	}
}

// memoryHistory records saved releases in memory.
type memoryHistory struct {
	records []domain.ReleaseRecord
	err     error
}

func (h *memoryHistory) Save(record domain.ReleaseRecord) error {
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, record)
	return nil
}

func (h *memoryHistory) Records(limit int) ([]domain.ReleaseRecord, error) {
	return h.records, nil
}
