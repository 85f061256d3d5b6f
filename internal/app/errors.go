package app

import "fmt"

// State names the pipeline stage a run is in. Runs only move forward.
type State string

const (
	StateFetching   State = "fetching"
	StateAssessing  State = "assessing"
	StateNarrating  State = "narrating"
	StateComposing  State = "composing"
	StateOrganizing State = "organizing"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// nextState is the forward chain of a run. The zero State starts a
// run, so it maps to StateFetching.
var nextState = map[State]State{
	"":              StateFetching,
	StateFetching:   StateAssessing,
	StateAssessing:  StateNarrating,
	StateNarrating:  StateComposing,
	StateComposing:  StateOrganizing,
	StateOrganizing: StateSucceeded,
}

// transition validates one step of the run state machine. Any stage
// may drop to StateFailed; otherwise a run follows the chain with no
// skips or repeats. A bad transition is a programming error.
func transition(from, to State) error {
	if to == StateFailed {
		return nil
	}
	if next, ok := nextState[from]; !ok || next != to {
		return fmt.Errorf("invalid state transition %q -> %q", from, to)
	}
	return nil
}

// StageError records which stage a run died in.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage State, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
