package release

import (
	"context"
	"fmt"
	"time"

	"github.com/appfeat/gitgo/internal/domain"
	"github.com/appfeat/gitgo/internal/ports"
)

// ConfirmedProposal is a proposal the user accepted in review, plus the
// push coordinates the sequencer needs. It is consumed exactly once.
type ConfirmedProposal struct {
	Proposal domain.CommitProposal
	Branch   string
	Remote   string
	// SkipPush releases locally only; set when the user declined to
	// configure a remote.
	SkipPush bool
}

// Sequencer drives the mutating release steps in strict order:
// Idle -> Staged -> Tagged -> Committed -> Pushed. Each transition is one
// call to the version-control collaborator and the machine advances only on
// success. It stops at the first failure and never undoes a prior step: an
// orphaned tag is logged and left for the human, because reversing it is
// itself a reviewable git action.
type Sequencer struct {
	Repo   ports.Repository
	Logger ports.Logger

	// Now stamps the release trailer; overridable in tests.
	Now func() time.Time
}

// Execute runs the state machine for one confirmed proposal.
func (s *Sequencer) Execute(ctx context.Context, confirmed ConfirmedProposal) domain.RunOutcome {
	outcome := domain.RunOutcome{
		Version: confirmed.Proposal.Version.String(),
		State:   domain.StateIdle,
	}

	// Stage. Idempotent: the staging already done while building the
	// proposal is safe to repeat, and the re-check catches a tree that
	// emptied out between review and confirmation.
	if err := s.Repo.StageAll(ctx); err != nil {
		return s.fail(outcome, domain.StateIdle, fmt.Errorf("stage: %w", err))
	}
	files, err := s.Repo.StagedFiles(ctx)
	if err != nil {
		return s.fail(outcome, domain.StateIdle, fmt.Errorf("stage: %w", err))
	}
	if len(files) == 0 {
		outcome.Err = domain.ErrNothingToCommit
		return outcome
	}
	outcome.Staged = true
	outcome.State = domain.StateStaged

	fullMessage := s.releaseMessage(confirmed.Proposal)
	tag := confirmed.Proposal.Version.String()

	// Tag before commit: a failure between the two leaves an orphaned tag,
	// which is visible and harmless, rather than an orphaned commit.
	if err := s.Repo.CreateAnnotatedTag(ctx, tag, fullMessage); err != nil {
		return s.fail(outcome, domain.StateStaged, fmt.Errorf("tag %s: %w", tag, err))
	}
	outcome.Tagged = true
	outcome.State = domain.StateTagged

	if err := s.Repo.Commit(ctx, confirmed.Proposal.Identity, fullMessage); err != nil {
		s.warn("tag created but commit failed; the tag is left in place", map[string]interface{}{"tag": tag})
		return s.fail(outcome, domain.StateTagged, fmt.Errorf("commit: %w", err))
	}
	outcome.Committed = true
	outcome.State = domain.StateCommitted

	if confirmed.SkipPush {
		outcome.PushSkipped = true
		return outcome
	}

	// Push is last and the only safely retriable step: commit and tag are
	// durable local state by now.
	branch := confirmed.Branch
	if branch == "" {
		branch = "main"
	}
	if err := s.Repo.Push(ctx, confirmed.Remote, branch, true); err != nil {
		outcome.RetriablePush = true
		return s.fail(outcome, domain.StateCommitted, fmt.Errorf("push %s: %w", branch, err))
	}
	if err := s.Repo.Push(ctx, confirmed.Remote, tag, false); err != nil {
		outcome.RetriablePush = true
		return s.fail(outcome, domain.StateCommitted, fmt.Errorf("push %s: %w", tag, err))
	}
	outcome.Pushed = true
	outcome.State = domain.StatePushed
	return outcome
}

func (s *Sequencer) releaseMessage(p domain.CommitProposal) string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return fmt.Sprintf("%s\n\nVersion: %s\nTimestamp: %s\n",
		p.Message.Text(), p.Version.String(), now().Format("2006-01-02 15:04:05"))
}

func (s *Sequencer) fail(outcome domain.RunOutcome, reached domain.SequencerState, err error) domain.RunOutcome {
	outcome.State = domain.StateFailed
	outcome.Err = &domain.SequencerStepError{Reached: reached, Outcome: outcome, Err: err}
	return outcome
}

func (s *Sequencer) warn(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Warn(msg, fields)
	}
}
