package fsm

import (
	"errors"

	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// NewStateTable returns an empty state table.
func NewStateTable() *StateTable {
	return &StateTable{defs: g.NewMap[State, StateDefinition]()}
}

// Add defines state with the given transitions. Adding a state that already
// exists replaces its transitions but keeps its original position.
func (t *StateTable) Add(state State, transitions Transitions) *StateTable {
	if t.defs == nil {
		t.defs = g.NewMap[State, StateDefinition]()
	}

	if !t.defs.Contains(state) {
		t.order.Push(state)
	}

	t.defs[state] = StateDefinition{Transitions: copyTransitions(transitions)}

	return t
}

// Has reports whether state is defined.
func (t *StateTable) Has(state State) bool {
	return t != nil && t.defs.Contains(state)
}

// Definition returns the definition of state, if any.
func (t *StateTable) Definition(state State) g.Option[StateDefinition] {
	if !t.Has(state) {
		return g.None[StateDefinition]()
	}

	return g.Some(t.defs[state])
}

// Resolve looks up the destination of event from state.
func (t *StateTable) Resolve(from State, event Event) g.Option[State] {
	if !t.Has(from) {
		return g.None[State]()
	}

	to, ok := t.defs[from].Transitions[event]
	if !ok {
		return g.None[State]()
	}

	return g.Some(to)
}

// Names returns all state names in insertion order.
func (t *StateTable) Names() g.Slice[State] {
	if t == nil {
		return g.NewSlice[State]()
	}

	return t.order.Clone()
}

// Len returns the number of defined states.
func (t *StateTable) Len() int {
	if t == nil {
		return 0
	}

	return len(t.order)
}

// Clone returns a deep copy of the table.
func (t *StateTable) Clone() *StateTable {
	clone := NewStateTable()
	if t == nil {
		return clone
	}

	for state := range t.order.Iter() {
		clone.Add(state, t.defs[state].Transitions)
	}

	return clone
}

// Validate reports every transition whose destination is not a defined state.
// The returned error joins one *ErrDanglingTransition per offending transition,
// in table order and then event order.
func (t *StateTable) Validate() error {
	var errs []error

	for from := range t.Names().Iter() {
		transitions := t.defs[from].Transitions

		events := transitions.Keys()
		events.SortBy(cmp.Cmp)

		for event := range events.Iter() {
			if to := transitions[event]; !t.Has(to) {
				errs = append(errs, &ErrDanglingTransition{From: from, Event: event, To: to})
			}
		}
	}

	return errors.Join(errs...)
}

// sources returns, in table order, every state that has an outgoing transition
// labelled event.
func (t *StateTable) sources(event Event) g.Slice[State] {
	return t.order.
		Iter().
		Exclude(func(s State) bool { return !t.defs[s].Transitions.Contains(event) }).
		Collect()
}

func copyTransitions(src Transitions) Transitions {
	dst := g.NewMap[Event, State]()
	for event, to := range src {
		dst[event] = to
	}

	return dst
}
