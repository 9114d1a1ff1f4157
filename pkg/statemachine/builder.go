package statemachine

import "fmt"

// Builder provides a fluent API for declaring a configuration and building a machine.
type Builder struct {
	cfg     *Config
	current string
	opts    []Option
	err     error
}

// NewBuilder creates a new state machine builder.
func NewBuilder(initial string) *Builder {
	return &Builder{
		cfg: NewConfig(initial),
	}
}

// State declares a state if needed and selects it for subsequent On calls.
func (b *Builder) State(name string) *Builder {
	if !b.cfg.States.Has(name) {
		b.cfg.States.Set(name, StateDef{Transitions: Transitions{}})
	}
	b.current = name
	return b
}

// On adds a transition from the selected state to the target state.
func (b *Builder) On(event, to string) *Builder {
	if b.err != nil {
		return b
	}
	def, ok := b.cfg.States.Get(b.current)
	if !ok {
		b.err = fmt.Errorf("%w: transition on %q declared before any state", ErrInvalidConfiguration, event)
		return b
	}
	if def.Transitions == nil {
		def.Transitions = Transitions{}
	}
	def.Transitions[event] = to
	b.cfg.States.Set(b.current, def)
	return b
}

// WithOptions appends machine options applied by Build.
func (b *Builder) WithOptions(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// Config returns the configuration declared so far.
func (b *Builder) Config() *Config {
	return b.cfg
}

// Build validates the declared configuration and returns the machine.
func (b *Builder) Build() (*Machine, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cfg, b.opts...)
}
