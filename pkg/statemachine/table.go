package statemachine

import (
	"context"
	"fmt"
)

// Table holds the transition graph. It has no current state, so a single
// table can resolve transitions for any number of independent subjects.
// A Table is immutable after NewTable returns and safe for concurrent use.
type Table[S, E comparable] struct {
	transitions map[S]map[E][]Transition[S, E]
}

// Option configures a Table.
type Option[S, E comparable] func(*Table[S, E])

// TransitionOption configures a single transition.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// NewTable builds a transition table.
func NewTable[S, E comparable](opts ...Option[S, E]) *Table[S, E] {
	t := &Table[S, E]{transitions: make(map[S]map[E][]Transition[S, E])}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithTransition adds an edge. Edges for the same state and event are tried in
// the order they were added.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(t *Table[S, E]) {
		tr := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&tr)
		}
		if _, ok := t.transitions[from]; !ok {
			t.transitions[from] = make(map[E][]Transition[S, E])
		}
		t.transitions[from][event] = append(t.transitions[from][event], tr)
	}
}

// WithTransitionFromAny adds the same edge for every listed source state.
func WithTransitionFromAny[S, E comparable](from []S, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(t *Table[S, E]) {
		for _, f := range from {
			WithTransition(f, to, event, opts...)(t)
		}
	}
}

func WithGuard[S, E comparable](guard Guard[S, E]) TransitionOption[S, E] {
	return func(tr *Transition[S, E]) {
		tr.Guards = append(tr.Guards, guard)
	}
}

func WithAction[S, E comparable](action Action[S, E]) TransitionOption[S, E] {
	return func(tr *Transition[S, E]) {
		tr.Actions = append(tr.Actions, action)
	}
}

// Next resolves the state reached from `from` on event. Actions of the chosen
// transition run before Next returns.
func (t *Table[S, E]) Next(ctx context.Context, from S, event E, data any) (S, error) {
	tr, err := t.find(ctx, from, event, data)
	if err != nil {
		return from, err
	}

	for _, action := range tr.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, from, tr.To, event, data); err != nil {
			return from, fmt.Errorf("action failed: %w", err)
		}
	}

	return tr.To, nil
}

// CanFire reports whether some transition from `from` on event would pass its guards.
func (t *Table[S, E]) CanFire(ctx context.Context, from S, event E, data any) bool {
	_, err := t.find(ctx, from, event, data)
	return err == nil
}

func (t *Table[S, E]) find(ctx context.Context, from S, event E, data any) (Transition[S, E], error) {
	candidates := t.transitions[from][event]
	if len(candidates) == 0 {
		return Transition[S, E]{}, transitionError(ErrNoTransition, from, event)
	}

	for _, tr := range candidates {
		if guardsPass(ctx, tr.Guards, from, event, data) {
			return tr, nil
		}
	}

	return Transition[S, E]{}, transitionError(ErrRejected, from, event)
}

func guardsPass[S, E comparable](ctx context.Context, guards []Guard[S, E], from S, event E, data any) bool {
	for _, guard := range guards {
		if guard != nil && !guard(ctx, from, event, data) {
			return false
		}
	}
	return true
}
