package statemachine

import (
	"log/slog"

	"github.com/pickleRick23/finite-state-machine/pkg/logger"
)

var _ StateMachine = (*Machine)(nil)

// Machine is an in-memory finite state machine with linear undo/redo history.
// It performs no internal locking; concurrent callers must serialize access.
//
// history[cursor] always names the active state.
type Machine struct {
	states  map[string]*State
	order   []string
	initial string

	active  *State
	history []string
	cursor  int

	historyLimit int
	lazyTargets  bool
	logger       *slog.Logger
}

func (m *Machine) build(cfg *Config) {
	m.initial = cfg.Initial
	m.order = cfg.States.Names()
	m.states = make(map[string]*State, len(m.order))
	for _, name := range m.order {
		def, _ := cfg.States.Get(name)
		m.states[name] = &State{
			Name:        name,
			Transitions: def.Transitions.clone(),
		}
	}

	m.active = m.states[m.initial]
	m.history = []string{m.initial}
	m.cursor = 0

	m.logger.Debug("state machine created",
		logger.State(m.initial),
		slog.Int("states", len(m.order)),
	)
}

// State returns the name of the active state.
func (m *Machine) State() string {
	return m.active.Name
}

// Initial returns the name of the configured initial state.
func (m *Machine) Initial() string {
	return m.initial
}

// ChangeState makes the named state active, discarding any redo branch.
func (m *Machine) ChangeState(name string) error {
	to, ok := m.states[name]
	if !ok {
		err := NewErrUnknownState(name)
		m.logger.Debug("state change rejected",
			logger.FromState(m.active.Name),
			logger.ToState(name),
			logger.Error(err),
		)
		return err
	}

	from := m.active.Name
	m.advance(to)
	m.logger.Debug("state changed",
		logger.FromState(from),
		logger.ToState(to.Name),
		logger.Cursor(m.cursor),
	)
	return nil
}

// Trigger applies the active state's transition for event.
func (m *Machine) Trigger(event string) error {
	from := m.active.Name

	target, ok := m.active.Target(event)
	if !ok {
		err := NewErrUnhandledEvent(from, event)
		m.logger.Debug("event rejected",
			logger.FromState(from),
			logger.Event(event),
			logger.Error(err),
		)
		return err
	}

	to, ok := m.states[target]
	if !ok {
		err := NewErrUnknownState(target)
		m.logger.Debug("event rejected",
			logger.FromState(from),
			logger.Event(event),
			logger.ToState(target),
			logger.Error(err),
		)
		return err
	}

	m.advance(to)
	m.logger.Debug("state changed",
		logger.FromState(from),
		logger.ToState(to.Name),
		logger.Event(event),
		logger.Cursor(m.cursor),
	)
	return nil
}

// Can reports whether the active state has a transition for event.
func (m *Machine) Can(event string) bool {
	_, ok := m.active.Target(event)
	return ok
}

// Transitions returns a copy of the active state's transitions.
func (m *Machine) Transitions() Transitions {
	return m.active.Transitions.clone()
}

// Reset returns to the initial state and clears history.
func (m *Machine) Reset() {
	m.active = m.states[m.initial]
	m.history = []string{m.initial}
	m.cursor = 0
	m.logger.Debug("state machine reset", logger.State(m.initial))
}

// States returns every state name in declaration order.
func (m *Machine) States() []string {
	return append([]string{}, m.order...)
}

// StatesFor returns, in declaration order, the states that handle event.
func (m *Machine) StatesFor(event string) []string {
	names := []string{}
	for _, name := range m.order {
		if _, ok := m.states[name].Target(event); ok {
			names = append(names, name)
		}
	}
	return names
}

// Undo moves one step back in history. It returns false at the oldest entry.
func (m *Machine) Undo() bool {
	if !m.CanUndo() {
		return false
	}
	m.cursor--
	m.active = m.states[m.history[m.cursor]]
	m.logger.Debug("undo", logger.State(m.active.Name), logger.Cursor(m.cursor))
	return true
}

// Redo moves one step forward in history. It returns false at the newest entry.
func (m *Machine) Redo() bool {
	if !m.CanRedo() {
		return false
	}
	m.cursor++
	m.active = m.states[m.history[m.cursor]]
	m.logger.Debug("redo", logger.State(m.active.Name), logger.Cursor(m.cursor))
	return true
}

// CanUndo reports whether Undo would move the cursor.
func (m *Machine) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (m *Machine) CanRedo() bool {
	return m.cursor < len(m.history)-1
}

// ClearHistory keeps only the active state in history.
// Unlike Reset it does not change the active state.
func (m *Machine) ClearHistory() {
	m.history = []string{m.active.Name}
	m.cursor = 0
	m.logger.Debug("history cleared", logger.State(m.active.Name))
}

// History returns a copy of the visited state names, oldest first.
func (m *Machine) History() []string {
	return append([]string{}, m.history...)
}

// Cursor returns the index of the active state in History.
func (m *Machine) Cursor() int {
	return m.cursor
}

// advance truncates the redo branch and appends to.
func (m *Machine) advance(to *State) {
	m.history = append(m.history[:m.cursor+1], to.Name)
	m.cursor++

	if m.historyLimit > 0 && len(m.history) > m.historyLimit {
		drop := len(m.history) - m.historyLimit
		copy(m.history, m.history[drop:])
		m.history = m.history[:m.historyLimit]
		m.cursor -= drop
		m.logger.Debug("history trimmed", slog.Int("dropped", drop), logger.HistoryLen(len(m.history)))
	}

	m.active = to
}
