// Package statemachine provides a finite-state-machine engine with a linear,
// navigable history of visited states.
//
// A machine is built once from a Config: an initial state name plus an
// order-preserving mapping from state name to its event transitions. It then
// tracks a single active state, applies transitions on demand and records every
// forward move so callers can step back and forth with Undo and Redo.
//
// # Architecture
//
// Machine owns a copy of the state set built at construction time. Each State
// carries its own name and a map[event]target for O(1) lookups. History is a
// plain slice of state names with a cursor; history[cursor] always names the
// active state. A forward move (ChangeState, Trigger) truncates any redo branch
// before appending, so history is linear rather than a tree.
//
// The machine performs no locking. It is meant for a single caller; concurrent
// use requires external synchronization.
//
// # Usage
//
//	cfg := statemachine.NewConfig("idle").
//	    AddState("idle", statemachine.Transitions{"start": "running"}).
//	    AddState("running", statemachine.Transitions{"stop": "idle", "pause": "paused"}).
//	    AddState("paused", statemachine.Transitions{"resume": "running"})
//
//	m := statemachine.MustNew(cfg)
//	_ = m.Trigger("start") // running
//	_ = m.Trigger("pause") // paused
//	m.Undo()               // running
//	m.Redo()               // paused
//
// The same configuration can be declared with the fluent Builder or loaded
// from a YAML or JSON definition file with LoadFile:
//
//	initial: idle
//	states:
//	  idle:    { transitions: { start: running } }
//	  running: { transitions: { stop: idle, pause: paused } }
//	  paused:  { transitions: { resume: running } }
//
// # Validation
//
// New validates the configuration eagerly: the initial state must be declared
// and every transition target must exist. WithLazyTargets skips the target
// check; Trigger then reports a dangling target with ErrUnknownState when it is
// actually taken.
//
// # Error Handling
//
// Failed operations never mutate the machine. Inspect errors with:
//
//	if statemachine.IsUnknownStateError(err) { /* ... */ }
//	if statemachine.IsUnhandledEventError(err) { /* ... */ }
//	if statemachine.IsInvalidConfigurationError(err) { /* ... */ }
//
// Undo and Redo report history boundaries with a boolean instead of an error.
package statemachine
