package release_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/appfeat/gitgo/internal/application/release"
	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/pkg/logger"
)

func newService(repo *fakeRepo, prompter *scriptedPrompter, model *stubModel, history *memoryHistory) (*release.Service, *recordingUI) {
	ui := &recordingUI{}
	settings := defaultTestSettings()
	settings.History.Enabled = history != nil
	svc := &release.Service{
		Repo:     repo,
		Settings: &stubSettings{settings: settings},
		Model:    model,
		Lister:   &stubLister{},
		Prompter: prompter,
		Logger:   logger.NewStd(false),
		UI:       ui,
		Sequencer: &release.Sequencer{
			Repo:   repo,
			Logger: logger.NewStd(false),
		},
	}
	if history != nil {
		svc.History = history
	}
	return svc, ui
}

func TestRunFirstReleaseInEmptyRepository(t *testing.T) {
	repo := newFakeRepo()
	repo.commits = false // bootstrap: no commits yet
	repo.stagedFiles = []string{"main.go"}
	repo.localCfg["user.name"] = "Ada"
	repo.localCfg["user.email"] = "ada@example.com"

	history := &memoryHistory{}
	prompter := &scriptedPrompter{enabled: true, answers: []string{"1"}}
	svc, _ := newService(repo, prompter, &stubModel{available: false}, history)

	outcome, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.State != domain.StatePushed {
		t.Fatalf("state = %s, want pushed", outcome.State)
	}
	if outcome.Version != "v0.0.1" {
		t.Errorf("version = %s, want v0.0.1", outcome.Version)
	}
	if len(repo.createdTags) != 1 || repo.createdTags[0] != "v0.0.1" {
		t.Errorf("created tags = %v", repo.createdTags)
	}
	if len(repo.committed) != 1 {
		t.Fatalf("committed = %v", repo.committed)
	}
	// AI tool absent: the deterministic bootstrap message is used.
	if got := repo.committed[0]; !strings.Contains(got, "Initial commit") {
		t.Errorf("commit message = %q, want deterministic bootstrap summary", got)
	}

	if len(history.records) != 1 {
		t.Fatalf("history records = %d, want 1", len(history.records))
	}
	rec := history.records[0]
	if rec.Version != "v0.0.1" || rec.Source != string(domain.SourceDeterministic) || !rec.Pushed {
		t.Errorf("history record = %+v", rec)
	}
}

func TestRunProposesPatchBumpOverMaximumTag(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"a.go"}
	repo.tags = []string{"v1.2.9", "v1.3.0"}
	repo.localCfg["user.name"] = "Ada"
	repo.localCfg["user.email"] = "ada@example.com"

	prompter := &scriptedPrompter{enabled: true, answers: []string{"1"}}
	svc, _ := newService(repo, prompter, &stubModel{}, nil)

	outcome, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Version != "v1.3.1" {
		t.Errorf("version = %s, want v1.3.1", outcome.Version)
	}
}

func TestRunNothingToCommitNeverTouchesSequencer(t *testing.T) {
	repo := newFakeRepo()
	repo.localCfg["user.name"] = "Ada"

	svc, _ := newService(repo, &scriptedPrompter{enabled: true}, &stubModel{}, nil)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrNothingToCommit) {
		t.Fatalf("error = %v, want ErrNothingToCommit", err)
	}
	if len(repo.createdTags) != 0 || len(repo.committed) != 0 || len(repo.pushed) != 0 {
		t.Error("clean tree must not trigger any mutating call")
	}
}

func TestRunOutsideRepository(t *testing.T) {
	repo := newFakeRepo()
	repo.worktree = false

	svc, _ := newService(repo, &scriptedPrompter{enabled: true}, &stubModel{}, nil)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrNotARepository) {
		t.Fatalf("error = %v, want ErrNotARepository", err)
	}
}

func TestRunFailsWithoutIdentityNonInteractive(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"a.go"}

	svc, _ := newService(repo, &scriptedPrompter{enabled: false}, &stubModel{}, nil)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrIdentityUnavailable) {
		t.Fatalf("error = %v, want ErrIdentityUnavailable", err)
	}
	if len(repo.committed) != 0 {
		t.Error("no commit may happen without an identity")
	}
}

func TestRunNeverWritesGlobalScope(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"a.go", "b.go"}
	repo.globalCfg["user.name"] = "Global User"
	repo.globalCfg["user.email"] = "global@example.com"

	// Edit identity during review, then accept.
	prompter := &scriptedPrompter{enabled: true, answers: []string{
		"2", "Local User", "local@example.com", "1",
	}}
	svc, _ := newService(repo, prompter, &stubModel{}, nil)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if writes := repo.globalWrites(); len(writes) != 0 {
		t.Errorf("global config written: %+v", writes)
	}
	if repo.globalCfg["user.name"] != "Global User" {
		t.Error("global identity changed")
	}
}

func TestRunAbortedReviewDoesNothing(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"a.go"}
	repo.localCfg["user.name"] = "Ada"

	prompter := &scriptedPrompter{enabled: true, answers: []string{"6"}}
	svc, _ := newService(repo, prompter, &stubModel{}, nil)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrReviewAborted) {
		t.Fatalf("error = %v, want ErrReviewAborted", err)
	}
	if len(repo.createdTags) != 0 || len(repo.committed) != 0 || len(repo.pushed) != 0 {
		t.Error("abort must leave repository history untouched")
	}
}

func TestRunMissingRemotePromptsAndSkipsPush(t *testing.T) {
	repo := newFakeRepo()
	repo.remotes = nil
	repo.stagedFiles = []string{"a.go"}
	repo.localCfg["user.name"] = "Ada"

	prompter := &scriptedPrompter{enabled: true, answers: []string{
		"1", // accept proposal
		"",  // blank remote URL: keep the release local
	}}
	svc, _ := newService(repo, prompter, &stubModel{}, nil)

	outcome, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !outcome.PushSkipped || outcome.Pushed {
		t.Errorf("outcome = %+v, want push skipped", outcome)
	}
	if !outcome.Committed || !outcome.Tagged {
		t.Errorf("outcome = %+v, local release must complete", outcome)
	}
}

func TestRunMissingRemoteAddsValidatedURL(t *testing.T) {
	repo := newFakeRepo()
	repo.remotes = nil
	repo.stagedFiles = []string{"a.go"}
	repo.localCfg["user.name"] = "Ada"

	prompter := &scriptedPrompter{enabled: true, answers: []string{
		"1",
		"git@example.com:new.git",
	}}
	svc, _ := newService(repo, prompter, &stubModel{}, nil)

	outcome, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if repo.addedRemote != "git@example.com:new.git" {
		t.Errorf("added remote = %q", repo.addedRemote)
	}
	if !outcome.Pushed {
		t.Errorf("outcome = %+v, want pushed", outcome)
	}
}

func TestRunHistoryFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"a.go"}
	repo.localCfg["user.name"] = "Ada"

	history := &memoryHistory{err: errors.New("disk full")}
	prompter := &scriptedPrompter{enabled: true, answers: []string{"1"}}
	svc, _ := newService(repo, prompter, &stubModel{}, history)

	outcome, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, history failures must not fail the run", err)
	}
	if !outcome.Pushed {
		t.Errorf("outcome = %+v", outcome)
	}
}
