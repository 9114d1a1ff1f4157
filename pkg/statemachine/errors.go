package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid state machine configuration")
	ErrInvalidHistoryLimit  = errors.New("history limit must be at least 1")
	ErrNilLogger            = errors.New("logger cannot be nil")
)

// ErrUnknownState indicates a referenced state is not part of the state set.
type ErrUnknownState struct {
	StateName string
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("unknown state '%s'", e.StateName)
}

// NewErrUnknownState creates an ErrUnknownState for the named state.
func NewErrUnknownState(stateName string) *ErrUnknownState {
	return &ErrUnknownState{StateName: stateName}
}

// ErrUnhandledEvent indicates the active state has no transition for the event.
type ErrUnhandledEvent struct {
	StateName string
	EventName string
}

func (e *ErrUnhandledEvent) Error() string {
	return fmt.Sprintf("state '%s' has no transition for event '%s'", e.StateName, e.EventName)
}

// NewErrUnhandledEvent creates an ErrUnhandledEvent for the state and event.
func NewErrUnhandledEvent(stateName, eventName string) *ErrUnhandledEvent {
	return &ErrUnhandledEvent{
		StateName: stateName,
		EventName: eventName,
	}
}

// IsUnknownStateError reports whether err is or wraps an ErrUnknownState.
func IsUnknownStateError(err error) bool {
	var e *ErrUnknownState
	return errors.As(err, &e)
}

// IsUnhandledEventError reports whether err is or wraps an ErrUnhandledEvent.
func IsUnhandledEventError(err error) bool {
	var e *ErrUnhandledEvent
	return errors.As(err, &e)
}

// IsInvalidConfigurationError reports whether err wraps ErrInvalidConfiguration.
func IsInvalidConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
