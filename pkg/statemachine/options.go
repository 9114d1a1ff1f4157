package statemachine

import (
	"fmt"
	"log/slog"
)

// Option configures a state machine during construction.
type Option func(*Machine) error

// New creates a state machine from the given configuration.
// The configuration is copied; later changes to cfg do not affect the machine.
func New(cfg *Config, opts ...Option) (*Machine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: configuration is nil", ErrInvalidConfiguration)
	}

	m := &Machine{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(!m.lazyTargets); err != nil {
		return nil, err
	}

	m.build(cfg)
	return m, nil
}

// MustNew creates a state machine from the given configuration.
// Panics if the configuration is invalid or any option fails to apply.
func MustNew(cfg *Config, opts ...Option) *Machine {
	m, err := New(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// WithLogger sets the logger that receives debug records for every move.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) error {
		if l == nil {
			return ErrNilLogger
		}
		m.logger = l
		return nil
	}
}

// WithLazyTargets defers transition target checks until a transition is taken.
// Trigger still fails with ErrUnknownState when it resolves an undeclared target.
func WithLazyTargets() Option {
	return func(m *Machine) error {
		m.lazyTargets = true
		return nil
	}
}

// WithHistoryLimit caps the number of history entries kept.
// The oldest entries are dropped first.
func WithHistoryLimit(n int) Option {
	return func(m *Machine) error {
		if n < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidHistoryLimit, n)
		}
		m.historyLimit = n
		return nil
	}
}
