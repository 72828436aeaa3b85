package statemachine

import (
	"context"
	"sync"
)

// Guard vetoes a transition based on runtime data.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Action runs after all guards pass and before the state changes.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Transition is one edge of the machine.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // All must pass for transition to proceed
	Actions []Action[S, E] // Executed in order before state change
}

// Machine is a stateful wrapper around a Table.
type Machine[S, E comparable] struct {
	table   *Table[S, E]
	initial S
	current S
	mu      sync.RWMutex
}

// New creates a machine starting in initial.
func New[S, E comparable](initial S, table *Table[S, E]) *Machine[S, E] {
	return &Machine[S, E]{
		table:   table,
		initial: initial,
		current: initial,
	}
}

func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire moves the machine along the first transition whose guards pass.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.table.Next(ctx, m.current, event, data)
	if err != nil {
		return err
	}
	m.current = next
	return nil
}

func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table.CanFire(ctx, m.current, event, data)
}

// Reset returns the machine to its initial state.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
