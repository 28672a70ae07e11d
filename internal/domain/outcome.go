package domain

// SequencerState names how far the release sequencer progressed. States are
// strictly ordered; the sequencer advances one mutating git call at a time
// and stops at the first failure.
type SequencerState string

const (
	StateIdle      SequencerState = "idle"
	StateStaged    SequencerState = "staged"
	StateTagged    SequencerState = "tagged"
	StateCommitted SequencerState = "committed"
	StatePushed    SequencerState = "pushed"
	StateFailed    SequencerState = "failed"
)

// RunOutcome records exactly which steps completed. Earlier steps are never
// re-run once later steps partially succeeded; only the push step is safely
// retriable, because by then the commit and tag are durable local state.
type RunOutcome struct {
	// Version is the tag the run proposed to release.
	Version string

	Staged    bool
	Committed bool
	Tagged    bool
	Pushed    bool

	// PushSkipped is set when the user declined to configure a remote; the
	// release exists locally and the run is still a success.
	PushSkipped bool

	// RetriablePush marks a run whose only failure was the push itself.
	RetriablePush bool

	State SequencerState
	Err   error
}

// Succeeded reports whether the run reached a terminal good state.
func (o RunOutcome) Succeeded() bool {
	return o.Err == nil && (o.Pushed || o.PushSkipped)
}
