package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for a release run. Only ErrIdentityUnavailable and an
// unrecoverable SequencerStepError terminate the process with a non-zero
// exit; everything else degrades to a safe default and is surfaced as
// information, never silently.
var (
	// ErrIdentityUnavailable means no identity exists in any scope and the
	// session cannot prompt for one. Fatal: no commit without identity.
	ErrIdentityUnavailable = errors.New("commit identity unavailable and prompting is not possible")

	// ErrNothingToCommit is the clean-tree outcome. It is routed to the
	// dashboard, not reported as a failure.
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrNotARepository means the working directory is outside any git
	// work tree.
	ErrNotARepository = errors.New("not inside a git repository")

	// ErrReviewAborted is the user cancelling the review session. A clean
	// no-op: no mutating call has happened yet by construction.
	ErrReviewAborted = errors.New("release aborted during review")
)

// SequencerStepError wraps a failed mutating git call together with the
// furthest state the sequencer reached. Prior successful steps are never
// rolled back automatically; reversal is itself a reviewable git action.
type SequencerStepError struct {
	Reached SequencerState
	Outcome RunOutcome
	Err     error
}

func (e *SequencerStepError) Error() string {
	return fmt.Sprintf("release failed after reaching %s state: %v", e.Reached, e.Err)
}

func (e *SequencerStepError) Unwrap() error {
	return e.Err
}
