// Package statemachine implements small, typed finite-state machines.
//
// States and events are any comparable types, usually named string types.
// The transition graph lives in a Table, which has no state of its own:
// Table.Next resolves where a subject goes from a given state, which suits
// request-scoped subjects whose state arrives with the request. Machine wraps
// a Table with a current state guarded by a RWMutex.
//
// # Usage
//
//	type Light string
//	type Switch string
//
//	table := statemachine.NewTable(
//		statemachine.WithTransition[Light, Switch]("off", "on", "toggle"),
//		statemachine.WithTransition[Light, Switch]("on", "off", "toggle"),
//	)
//
//	next, err := table.Next(ctx, "off", "toggle", nil) // "on"
//
//	m := statemachine.New[Light, Switch]("off", table)
//	_ = m.Fire(ctx, "toggle", nil)
//
// # Guards and Actions
//
// Several transitions may share a source state and event; the first whose
// guards all pass wins. Actions of the chosen transition run in order before
// the state changes, and an action error aborts the transition.
//
// # Error Handling
//
// Failures are *TransitionError values:
//
//	if errors.Is(err, statemachine.ErrNoTransition) { /* no row */ }
//	if errors.Is(err, statemachine.ErrRejected) { /* guards refused */ }
package statemachine
