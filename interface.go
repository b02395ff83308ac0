package fsm

import "github.com/enetx/g"

// StateMachine is the method set shared by FSM and SyncFSM.
type StateMachine interface {
	Current() State
	Initial() State
	ChangeState(State) error
	Trigger(Event) error
	CanTrigger(Event) bool
	Events() g.Slice[Event]
	States(...Event) g.Slice[State]
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	Reset()
	ClearHistory()
	History() g.Slice[State]
	Cursor() int
}
