package statemachine

import (
	"fmt"
	"maps"
	"slices"
)

// StateDef declares the outgoing transitions of a single state.
type StateDef struct {
	Transitions Transitions `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// StateMap is an order-preserving mapping from state name to its definition.
// Iteration follows declaration order so queries over the state set are deterministic.
type StateMap struct {
	names []string
	defs  map[string]StateDef
}

// Set declares or replaces a state. A replaced state keeps its original position.
func (m *StateMap) Set(name string, def StateDef) {
	if m.defs == nil {
		m.defs = make(map[string]StateDef)
	}
	if _, ok := m.defs[name]; !ok {
		m.names = append(m.names, name)
	}
	m.defs[name] = def
}

// Get returns the definition of the named state.
func (m *StateMap) Get(name string) (StateDef, bool) {
	def, ok := m.defs[name]
	return def, ok
}

// Has reports whether the named state is declared.
func (m *StateMap) Has(name string) bool {
	_, ok := m.defs[name]
	return ok
}

// Names returns the state names in declaration order.
func (m *StateMap) Names() []string {
	return append([]string{}, m.names...)
}

// Len returns the number of declared states.
func (m *StateMap) Len() int {
	return len(m.names)
}

// Config describes a machine: its initial state and the full state set.
type Config struct {
	Initial string   `json:"initial" yaml:"initial"`
	States  StateMap `json:"states" yaml:"states"`
}

// NewConfig creates an empty configuration starting in the given state.
func NewConfig(initial string) *Config {
	return &Config{Initial: initial}
}

// AddState declares a state with its transitions and returns the config for chaining.
func (c *Config) AddState(name string, transitions Transitions) *Config {
	c.States.Set(name, StateDef{Transitions: transitions})
	return c
}

// Validate checks the configuration for structural errors.
// Every returned error wraps ErrInvalidConfiguration.
func (c *Config) Validate() error {
	return c.validate(true)
}

func (c *Config) validate(checkTargets bool) error {
	if c == nil {
		return fmt.Errorf("%w: configuration is nil", ErrInvalidConfiguration)
	}
	if c.Initial == "" {
		return fmt.Errorf("%w: initial state is required", ErrInvalidConfiguration)
	}
	if !c.States.Has(c.Initial) {
		return fmt.Errorf("%w: initial state %q is not declared", ErrInvalidConfiguration, c.Initial)
	}

	for _, name := range c.States.names {
		if name == "" {
			return fmt.Errorf("%w: state name cannot be empty", ErrInvalidConfiguration)
		}
		transitions := c.States.defs[name].Transitions
		for _, event := range slices.Sorted(maps.Keys(transitions)) {
			to := transitions[event]
			if event == "" {
				return fmt.Errorf("%w: state %q declares a transition with an empty event name", ErrInvalidConfiguration, name)
			}
			if checkTargets && !c.States.Has(to) {
				return fmt.Errorf("%w: state %q transition on %q targets undeclared state %q",
					ErrInvalidConfiguration, name, event, to)
			}
		}
	}

	return nil
}
