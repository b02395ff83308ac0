package fsm

import "github.com/enetx/g"

// Interface compliance check.
var _ StateMachine = (*SyncFSM)(nil)

// Current is the thread-safe version of FSM.Current.
func (sf *SyncFSM) Current() State {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return sf.fsm.Current()
}

// Initial is the thread-safe version of FSM.Initial.
func (sf *SyncFSM) Initial() State {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return sf.fsm.Initial()
}

// ChangeState is the thread-safe version of FSM.ChangeState.
// It atomically moves the FSM to the target state and records it in the history.
func (sf *SyncFSM) ChangeState(target State) error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.ChangeState(target)
}

// Trigger is the thread-safe version of FSM.Trigger.
// It atomically executes a state transition in response to an event.
func (sf *SyncFSM) Trigger(event Event) error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.Trigger(event)
}

// CanTrigger is the thread-safe version of FSM.CanTrigger.
func (sf *SyncFSM) CanTrigger(event Event) bool {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return sf.fsm.CanTrigger(event)
}

// Events is the thread-safe version of FSM.Events.
func (sf *SyncFSM) Events() g.Slice[Event] {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return sf.fsm.Events()
}

// States is the thread-safe version of FSM.States.
// The state table never changes, but the lock keeps the call ordered with writers.
func (sf *SyncFSM) States(event ...Event) g.Slice[State] {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return sf.fsm.States(event...)
}

// Undo is the thread-safe version of FSM.Undo.
func (sf *SyncFSM) Undo() bool {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.Undo()
}

// Redo is the thread-safe version of FSM.Redo.
func (sf *SyncFSM) Redo() bool {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.Redo()
}

// CanUndo is the thread-safe version of FSM.CanUndo.
func (sf *SyncFSM) CanUndo() bool {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return sf.fsm.CanUndo()
}

// CanRedo is the thread-safe version of FSM.CanRedo.
func (sf *SyncFSM) CanRedo() bool {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return sf.fsm.CanRedo()
}

// Reset is the thread-safe version of FSM.Reset.
// It returns the FSM to its initial state and drops the history.
func (sf *SyncFSM) Reset() {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	sf.fsm.Reset()
}

// ClearHistory is the thread-safe version of FSM.ClearHistory.
func (sf *SyncFSM) ClearHistory() {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	sf.fsm.ClearHistory()
}

// History is the thread-safe version of FSM.History.
// It returns a copy of the state history.
func (sf *SyncFSM) History() g.Slice[State] {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return sf.fsm.History()
}

// Cursor is the thread-safe version of FSM.Cursor.
func (sf *SyncFSM) Cursor() int {
	sf.mu.RLock()
	defer sf.mu.RUnlock()

	return sf.fsm.Cursor()
}
