// Package fsm provides a declarative finite state machine (FSM) with a linear
// undo/redo history of visited states. A machine is built from a StateTable of
// named states and event transitions; it tracks the current state, applies
// transitions by event or by target, and lets callers walk back and forth
// through the states they have reached. It is built with types and utilities
// from the github.com/enetx/g library.
package fsm

import (
	"fmt"
	"log/slog"

	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// Interface compliance check.
var _ StateMachine = (*FSM)(nil)

// New creates a new FSM from cfg. It fails with *ErrConfig if the table is
// empty or the initial state is not one of its keys. The table is copied, so
// later changes to cfg.States do not affect the machine.
func New(cfg Config, opts ...Option) (*FSM, error) {
	if cfg.States.Len() == 0 {
		return nil, &ErrConfig{Initial: cfg.Initial, Reason: "state table is empty"}
	}

	if !cfg.States.Has(cfg.Initial) {
		return nil, &ErrConfig{Initial: cfg.Initial, Reason: "initial state is not defined"}
	}

	f := &FSM{
		states:  cfg.States.Clone(),
		initial: cfg.Initial,
		current: cfg.Initial,
		history: g.Slice[State]{cfg.Initial},
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// MustNew is like New but panics if the configuration is invalid.
func MustNew(cfg Config, opts ...Option) *FSM {
	f, err := New(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}

	return f
}

// WithLogger sets the logger that receives debug records for every change of
// state. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(f *FSM) {
		if l != nil {
			f.logger = l
		}
	}
}

// Clone creates a new FSM with the same state table and logger but a fresh
// history positioned at the initial state.
func (f *FSM) Clone() *FSM {
	return &FSM{
		states:  f.states,
		initial: f.initial,
		current: f.initial,
		history: g.Slice[State]{f.initial},
		logger:  f.logger,
	}
}

// Current returns the FSM's current state.
func (f *FSM) Current() State { return f.current }

// Initial returns the state the FSM was created with.
func (f *FSM) Initial() State { return f.initial }

// History returns a copy of the states on the current timeline, oldest first.
// Entries after Cursor are the ones Redo can move to.
func (f *FSM) History() g.Slice[State] { return f.history.Clone() }

// Cursor returns the index of the current state within History.
func (f *FSM) Cursor() int { return f.cursor }

// Table returns a copy of the FSM's state table.
func (f *FSM) Table() *StateTable { return f.states.Clone() }

// ChangeState moves the FSM directly to target, regardless of transitions.
// Any redoable entries are discarded before target is recorded.
func (f *FSM) ChangeState(target State) error {
	if !f.states.Has(target) {
		return &ErrInvalidState{State: target, Current: f.current}
	}

	from := f.current
	f.push(target)
	f.logger.Debug("fsm: state changed", "from", from, "to", target, "cursor", f.cursor)

	return nil
}

// Trigger attempts to transition using the given event. It fails with
// *ErrUnknownTransition if the current state has no transition for event, and
// with *ErrInvalidState if the transition leads to an undefined state.
// On failure the FSM is left untouched.
func (f *FSM) Trigger(event Event) error {
	to := f.states.Resolve(f.current, event)
	if to.IsNone() {
		return &ErrUnknownTransition{From: f.current, Event: event}
	}

	target := to.Some()
	if !f.states.Has(target) {
		return &ErrInvalidState{State: target, Current: f.current}
	}

	from := f.current
	f.push(target)
	f.logger.Debug("fsm: transition", "from", from, "event", event, "to", target, "cursor", f.cursor)

	return nil
}

// CanTrigger reports whether Trigger(event) would succeed from the current state.
func (f *FSM) CanTrigger(event Event) bool {
	to := f.states.Resolve(f.current, event)
	return to.IsSome() && f.states.Has(to.Some())
}

// Events returns the events defined for the current state, sorted by name.
func (f *FSM) Events() g.Slice[Event] {
	events := f.states.Definition(f.current).Some().Transitions.Keys()
	events.SortBy(cmp.Cmp)

	return events
}

// States returns state names in table order. Without an event, or with an
// empty one, every defined state is returned. Otherwise only the states that
// have an outgoing transition labelled with the event are returned.
func (f *FSM) States(event ...Event) g.Slice[State] {
	if len(event) == 0 || event[0] == "" {
		return f.states.Names()
	}

	return f.states.sources(event[0])
}

// CanUndo reports whether Undo would move the FSM.
func (f *FSM) CanUndo() bool { return f.cursor > 0 }

// CanRedo reports whether Redo would move the FSM.
func (f *FSM) CanRedo() bool { return f.cursor < len(f.history)-1 }

// Undo steps back to the previously visited state. It returns false, leaving
// the FSM unchanged, when already at the oldest entry.
func (f *FSM) Undo() bool {
	if !f.CanUndo() {
		return false
	}

	f.cursor--
	f.current = f.history[f.cursor]
	f.logger.Debug("fsm: undo", "to", f.current, "cursor", f.cursor)

	return true
}

// Redo steps forward to the state most recently undone. It returns false,
// leaving the FSM unchanged, when there is nothing to redo.
func (f *FSM) Redo() bool {
	if !f.CanRedo() {
		return false
	}

	f.cursor++
	f.current = f.history[f.cursor]
	f.logger.Debug("fsm: redo", "to", f.current, "cursor", f.cursor)

	return true
}

// Reset returns the FSM to the first state in its history, which is its
// initial state, and discards the rest of the history.
func (f *FSM) Reset() {
	f.current = f.history[0]
	f.truncate()
	f.logger.Debug("fsm: reset", "to", f.current)
}

// ClearHistory collapses the history to its first entry. The current state
// follows the history back to that entry so that Current always matches the
// entry under the cursor; after the call, neither Undo nor Redo can move.
func (f *FSM) ClearHistory() {
	f.truncate()
	f.current = f.history[0]
	f.logger.Debug("fsm: history cleared", "to", f.current)
}

// Sync wraps the FSM in a SyncFSM. The FSM must not be used directly afterwards.
func (f *FSM) Sync() *SyncFSM { return &SyncFSM{fsm: f} }

// push records target as the newest entry, dropping anything past the cursor.
func (f *FSM) push(target State) {
	f.history = f.history[:f.cursor+1]
	f.history.Push(target)
	f.cursor = len(f.history) - 1
	f.current = target
}

func (f *FSM) truncate() {
	f.history = g.Slice[State]{f.history[0]}
	f.cursor = 0
}
