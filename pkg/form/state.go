package form

import (
	"context"

	"github.com/dmitrymomot/familyspace/pkg/statemachine"
	"github.com/dmitrymomot/familyspace/pkg/validator"
)

// State is the decoration of a field. It is UI state only.
type State string

const (
	Untouched State = "untouched"
	Valid     State = "valid"
	Invalid   State = "invalid"
)

// ParseState maps unknown values to Untouched.
func ParseState(s string) State {
	switch State(s) {
	case Valid, Invalid:
		return State(s)
	}
	return Untouched
}

// Event triggers a field re-evaluation.
type Event string

const (
	EventInput  Event = "input"
	EventBlur   Event = "blur"
	EventSubmit Event = "submit"
)

func ParseEvent(s string) (Event, bool) {
	switch Event(s) {
	case EventInput, EventBlur, EventSubmit:
		return Event(s), true
	}
	return "", false
}

// evaluation is the data guards inspect.
type evaluation struct {
	empty   bool
	skipped bool
	result  validator.Result
}

type fieldGuard = statemachine.Guard[State, Event]

func guard(pred func(evaluation) bool) statemachine.TransitionOption[State, Event] {
	var g fieldGuard = func(_ context.Context, _ State, _ Event, data any) bool {
		e, ok := data.(evaluation)
		return ok && pred(e)
	}
	return statemachine.WithGuard(g)
}

var (
	isEmpty   = guard(func(e evaluation) bool { return e.empty })
	isSkipped = guard(func(e evaluation) bool { return e.skipped })
	isValid   = guard(func(e evaluation) bool { return e.result.IsValid() })
	isInvalid = guard(func(e evaluation) bool { return !e.result.IsValid() })
)

var allStates = []State{Untouched, Valid, Invalid}

// fieldStates: clearing a field undecorates it, input decorates either way,
// blur only ever reports errors and submit decorates every checked field.
var fieldStates = buildFieldStates()

func buildFieldStates() *statemachine.Table[State, Event] {
	opts := []statemachine.Option[State, Event]{
		statemachine.WithTransitionFromAny(allStates, Untouched, EventInput, isEmpty),
		statemachine.WithTransitionFromAny(allStates, Valid, EventInput, isValid),
		statemachine.WithTransitionFromAny(allStates, Invalid, EventInput, isInvalid),

		statemachine.WithTransitionFromAny(allStates, Untouched, EventBlur, isEmpty),
		statemachine.WithTransitionFromAny(allStates, Invalid, EventBlur, isInvalid),

		statemachine.WithTransitionFromAny(allStates, Untouched, EventSubmit, isSkipped),
		statemachine.WithTransitionFromAny(allStates, Valid, EventSubmit, isValid),
		statemachine.WithTransitionFromAny(allStates, Invalid, EventSubmit, isInvalid),
	}
	for _, s := range allStates {
		opts = append(opts, statemachine.WithTransition(s, s, EventBlur, isValid))
	}
	return statemachine.NewTable(opts...)
}

// Transition returns the state a field moves to from `from` on ev.
func Transition(ctx context.Context, from State, ev Event, value string, res validator.Result) (State, error) {
	return fieldStates.Next(ctx, from, ev, evaluation{empty: value == "", result: res})
}

func submitState(ctx context.Context, skipped bool, res validator.Result) State {
	next, err := fieldStates.Next(ctx, Untouched, EventSubmit, evaluation{skipped: skipped, result: res})
	if err != nil {
		return Invalid
	}
	return next
}
