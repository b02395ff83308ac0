package fsm

import (
	"log/slog"
	"sync"

	"github.com/enetx/g"
)

type (
	// State represents a finite state in the FSM.
	State g.String
	// Event represents an event that triggers a transition.
	Event g.String

	// Transitions maps an event name to the destination state it leads to.
	Transitions = g.Map[Event, State]

	// StateDefinition describes the outgoing transitions of a single state.
	StateDefinition struct {
		Transitions Transitions
	}

	// StateTable is an ordered set of state definitions keyed by state name.
	// Iteration always follows the order in which states were first added.
	StateTable struct {
		order g.Slice[State]
		defs  g.Map[State, StateDefinition]
	}

	// Config is everything New needs to build a machine.
	Config struct {
		States  *StateTable
		Initial State
	}

	// Option configures an FSM during construction.
	Option func(*FSM)

	// FSM is the main state machine struct.
	//
	// An FSM is not safe for concurrent use. Callers that share one between
	// goroutines must serialize access themselves or wrap it with Sync.
	FSM struct {
		states  *StateTable
		initial State
		current State
		history g.Slice[State]
		cursor  int

		logger *slog.Logger
	}

	// SyncFSM is a thread-safe wrapper around an FSM.
	// It protects all state-mutating and state-reading operations with a sync.RWMutex,
	// making it safe for use across multiple goroutines.
	// All methods on SyncFSM are the thread-safe counterparts to the methods on the base FSM.
	SyncFSM struct {
		fsm *FSM
		mu  sync.RWMutex
	}
)
