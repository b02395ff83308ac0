package fsm

import (
	"errors"
	"fmt"
)

// ErrConfig is returned by New when the configuration cannot produce a valid
// machine, most commonly because the initial state is not defined in the table.
type ErrConfig struct {
	Initial State
	Reason  string
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("fsm: invalid config for initial state %q: %s", e.Initial, e.Reason)
}

// ErrInvalidState is returned when a transition targets a state that is not
// defined in the machine's state table. The machine stays in Current.
type ErrInvalidState struct {
	State   State
	Current State
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("fsm: state %q is not defined (current state %q)", e.State, e.Current)
}

// ErrUnknownTransition is returned when the current state defines no transition
// for the triggered event.
type ErrUnknownTransition struct {
	From  State
	Event Event
}

func (e *ErrUnknownTransition) Error() string {
	return fmt.Sprintf("fsm: no transition for event %q from state %q", e.Event, e.From)
}

// ErrDanglingTransition is reported by StateTable.Validate for a transition
// whose destination is not a defined state.
type ErrDanglingTransition struct {
	From  State
	Event Event
	To    State
}

func (e *ErrDanglingTransition) Error() string {
	return fmt.Sprintf("fsm: transition %q from state %q leads to undefined state %q", e.Event, e.From, e.To)
}

func IsConfigError(err error) bool {
	var e *ErrConfig
	return errors.As(err, &e)
}

func IsInvalidStateError(err error) bool {
	var e *ErrInvalidState
	return errors.As(err, &e)
}

func IsUnknownTransitionError(err error) bool {
	var e *ErrUnknownTransition
	return errors.As(err, &e)
}
