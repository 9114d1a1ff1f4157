package statemachine

// Transitions maps an event name to the name of the state it leads to.
type Transitions map[string]string

// State is a named node of the machine with its outgoing transitions.
// A state with no transitions is terminal for every event.
type State struct {
	Name        string
	Transitions Transitions
}

// Target returns the state the event leads to from s.
func (s *State) Target(event string) (string, bool) {
	to, ok := s.Transitions[event]
	return to, ok
}

// StateMachine defines the finite state machine operations with linear undo/redo history.
type StateMachine interface {
	State() string
	Initial() string
	ChangeState(name string) error
	Trigger(event string) error
	Can(event string) bool
	Reset()
	States() []string
	StatesFor(event string) []string
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	ClearHistory()
	History() []string
	Cursor() int
}

func (t Transitions) clone() Transitions {
	out := make(Transitions, len(t))
	for event, to := range t {
		out[event] = to
	}
	return out
}
