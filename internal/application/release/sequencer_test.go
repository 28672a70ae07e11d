package release_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/appfeat/gitgo/internal/application/release"
	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/pkg/logger"
)

func testProposal() release.ConfirmedProposal {
	return release.ConfirmedProposal{
		Proposal: domain.CommitProposal{
			Identity: domain.Identity{Name: "Ada", Email: "ada@example.com", Source: domain.IdentityFromRepo},
			Version:  domain.VersionTag{Major: 0, Minor: 0, Patch: 1},
			Message:  domain.CommitMessage{Summary: "Update project"},
			Source:   domain.SourceDeterministic,
		},
		Branch: "main",
		Remote: "origin",
	}
}

func newSequencer(repo *fakeRepo) *release.Sequencer {
	return &release.Sequencer{
		Repo:   repo,
		Logger: logger.NewStd(false),
		Now:    func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
	}
}

func TestSequencerHappyPathReachesPushed(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"main.go"}

	outcome := newSequencer(repo).Execute(context.Background(), testProposal())

	if outcome.Err != nil {
		t.Fatalf("Execute() error = %v", outcome.Err)
	}
	if outcome.State != domain.StatePushed {
		t.Fatalf("state = %s, want pushed", outcome.State)
	}
	if !outcome.Staged || !outcome.Tagged || !outcome.Committed || !outcome.Pushed {
		t.Errorf("outcome flags = %+v", outcome)
	}
	if len(repo.createdTags) != 1 || repo.createdTags[0] != "v0.0.1" {
		t.Errorf("created tags = %v", repo.createdTags)
	}
	// Branch first with upstream, then the tag ref.
	if len(repo.pushed) != 2 || repo.pushed[0] != "origin/main" || repo.pushed[1] != "origin/v0.0.1" {
		t.Errorf("pushed refs = %v", repo.pushed)
	}
}

func TestSequencerNothingStaged(t *testing.T) {
	repo := newFakeRepo()

	outcome := newSequencer(repo).Execute(context.Background(), testProposal())

	if !errors.Is(outcome.Err, domain.ErrNothingToCommit) {
		t.Fatalf("error = %v, want ErrNothingToCommit", outcome.Err)
	}
	if len(repo.createdTags) != 0 || len(repo.committed) != 0 {
		t.Error("no mutating call may happen with nothing staged")
	}
}

func TestSequencerTagBeforeCommitFailureLeavesTag(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"main.go"}
	repo.commitErr = errors.New("pre-commit hook rejected")

	outcome := newSequencer(repo).Execute(context.Background(), testProposal())

	if outcome.Err == nil {
		t.Fatal("expected a step failure")
	}
	if !outcome.Tagged || outcome.Committed {
		t.Errorf("outcome = %+v, want tagged without commit", outcome)
	}
	// The orphaned tag is reported, never deleted.
	if len(repo.createdTags) != 1 {
		t.Errorf("created tags = %v", repo.createdTags)
	}
	if len(repo.pushed) != 0 {
		t.Error("push must not run after a failed commit")
	}

	var stepErr *domain.SequencerStepError
	if !errors.As(outcome.Err, &stepErr) {
		t.Fatalf("error type = %T", outcome.Err)
	}
	if stepErr.Reached != domain.StateTagged {
		t.Errorf("furthest state = %s, want tagged", stepErr.Reached)
	}
}

func TestSequencerTagFailureStopsEverything(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"main.go"}
	repo.tagErr = errors.New("tag exists")

	outcome := newSequencer(repo).Execute(context.Background(), testProposal())

	if outcome.Err == nil {
		t.Fatal("expected a step failure")
	}
	if outcome.Tagged || outcome.Committed || outcome.Pushed {
		t.Errorf("outcome = %+v, want only staged", outcome)
	}
	if len(repo.committed) != 0 {
		t.Error("commit must not run after a failed tag")
	}
}

func TestSequencerPushFailureIsRetriable(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"main.go"}
	repo.pushErr = map[string]error{"main": errors.New("connection reset")}

	outcome := newSequencer(repo).Execute(context.Background(), testProposal())

	if outcome.Err == nil {
		t.Fatal("expected a push failure")
	}
	if !outcome.Committed || !outcome.Tagged {
		t.Errorf("outcome = %+v, local steps must have completed", outcome)
	}
	if !outcome.RetriablePush {
		t.Error("push-only failure must be marked retriable")
	}
}

func TestSequencerSkipPushStopsAfterCommit(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"main.go"}

	plan := testProposal()
	plan.SkipPush = true
	outcome := newSequencer(repo).Execute(context.Background(), plan)

	if outcome.Err != nil {
		t.Fatalf("Execute() error = %v", outcome.Err)
	}
	if !outcome.PushSkipped || outcome.Pushed {
		t.Errorf("outcome = %+v, want push skipped", outcome)
	}
	if !outcome.Succeeded() {
		t.Error("a local-only release is still a success")
	}
	if len(repo.pushed) != 0 {
		t.Errorf("pushed refs = %v, want none", repo.pushed)
	}
}

func TestSequencerReleaseMessageCarriesTrailer(t *testing.T) {
	repo := newFakeRepo()
	repo.stagedFiles = []string{"main.go"}

	newSequencer(repo).Execute(context.Background(), testProposal())

	if len(repo.committed) != 1 {
		t.Fatalf("committed = %v", repo.committed)
	}
	want := "Ada <ada@example.com>|Update project\n\nVersion: v0.0.1\nTimestamp: 2026-08-30 12:00:00\n"
	if repo.committed[0] != want {
		t.Errorf("commit = %q, want %q", repo.committed[0], want)
	}
}
