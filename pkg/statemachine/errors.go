package statemachine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTransition means the table has no row for the state and event.
	ErrNoTransition = errors.New("no transition available")
	// ErrRejected means rows exist but every guard refused.
	ErrRejected = errors.New("transition rejected by guards")
)

// TransitionError names the state and event that failed. It unwraps to
// ErrNoTransition or ErrRejected.
type TransitionError struct {
	State string
	Event string
	err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: state %q, event %q", e.err, e.State, e.Event)
}

func (e *TransitionError) Unwrap() error { return e.err }

func transitionError(cause error, state, event any) *TransitionError {
	return &TransitionError{State: fmt.Sprint(state), Event: fmt.Sprint(event), err: cause}
}
