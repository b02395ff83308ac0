package fsm_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/enetx/fsm/v2"
	"github.com/enetx/g"
)

func assertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func assertTrue(t *testing.T, cond bool) {
	t.Helper()
	if !cond {
		t.Fatalf("expected true, got false")
	}
}

func assertFalse(t *testing.T, cond bool) {
	t.Helper()
	if cond {
		t.Fatalf("expected false, got true")
	}
}

func assertStates(t *testing.T, got g.Slice[fsm.State], want ...fsm.State) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

// pingPong is the a <-> b machine used throughout the tests.
func pingPong(t *testing.T) *fsm.FSM {
	t.Helper()

	f, err := fsm.New(fsm.Config{
		States: fsm.NewStateTable().
			Add("a", fsm.Transitions{"go": "b"}).
			Add("b", fsm.Transitions{"back": "a"}),
		Initial: "a",
	})
	assertNoError(t, err)

	return f
}

func chain(t *testing.T) *fsm.FSM {
	t.Helper()

	return fsm.MustNew(fsm.Config{
		States: fsm.NewStateTable().
			Add("x", fsm.Transitions{"next": "y"}).
			Add("y", fsm.Transitions{"next": "z", "prev": "x"}).
			Add("z", fsm.Transitions{"prev": "y"}),
		Initial: "x",
	})
}

func TestFSM_New(t *testing.T) {
	f := pingPong(t)

	assertEqual(t, f.Current(), fsm.State("a"))
	assertEqual(t, f.Initial(), fsm.State("a"))
	assertEqual(t, f.Cursor(), 0)
	assertStates(t, f.History(), "a")
	assertFalse(t, f.Undo())
	assertFalse(t, f.Redo())
}

func TestFSM_NewUnknownInitial(t *testing.T) {
	_, err := fsm.New(fsm.Config{
		States:  fsm.NewStateTable().Add("a", nil),
		Initial: "missing",
	})
	assertError(t, err)
	assertTrue(t, fsm.IsConfigError(err))

	var cfgErr *fsm.ErrConfig
	assertTrue(t, errors.As(err, &cfgErr))
	assertEqual(t, cfgErr.Initial, fsm.State("missing"))
}

func TestFSM_NewEmptyTable(t *testing.T) {
	_, err := fsm.New(fsm.Config{Initial: "a"})
	assertTrue(t, fsm.IsConfigError(err))

	_, err = fsm.New(fsm.Config{States: fsm.NewStateTable(), Initial: "a"})
	assertTrue(t, fsm.IsConfigError(err))
}

func TestFSM_MustNewPanics(t *testing.T) {
	defer func() {
		r := recover()
		assertTrue(t, r != nil)
		assertTrue(t, strings.Contains(r.(string), "initial state is not defined"))
	}()

	fsm.MustNew(fsm.Config{States: fsm.NewStateTable().Add("a", nil), Initial: "b"})
}

func TestFSM_TableIsCopied(t *testing.T) {
	table := fsm.NewStateTable().Add("a", fsm.Transitions{"go": "b"}).Add("b", nil)
	f := fsm.MustNew(fsm.Config{States: table, Initial: "a"})

	table.Add("c", nil).Add("a", fsm.Transitions{"go": "c"})

	assertStates(t, f.States(), "a", "b")
	assertNoError(t, f.Trigger("go"))
	assertEqual(t, f.Current(), fsm.State("b"))
}

func TestFSM_Trigger(t *testing.T) {
	f := pingPong(t)

	assertNoError(t, f.Trigger("go"))
	assertEqual(t, f.Current(), fsm.State("b"))
	assertNoError(t, f.Trigger("back"))
	assertEqual(t, f.Current(), fsm.State("a"))
	assertStates(t, f.History(), "a", "b", "a")
	assertEqual(t, f.Cursor(), 2)
}

func TestFSM_TriggerUnknownEvent(t *testing.T) {
	f := pingPong(t)

	err := f.Trigger("missing-event")
	assertError(t, err)
	assertTrue(t, fsm.IsUnknownTransitionError(err))

	var unknown *fsm.ErrUnknownTransition
	assertTrue(t, errors.As(err, &unknown))
	assertEqual(t, unknown.From, fsm.State("a"))
	assertEqual(t, unknown.Event, fsm.Event("missing-event"))

	assertEqual(t, f.Current(), fsm.State("a"))
	assertStates(t, f.History(), "a")
	assertEqual(t, f.Cursor(), 0)
}

func TestFSM_TriggerUnknownEventKeepsRedo(t *testing.T) {
	f := pingPong(t)

	assertNoError(t, f.Trigger("go"))
	assertTrue(t, f.Undo())
	assertError(t, f.Trigger("back"))

	assertTrue(t, f.CanRedo())
	assertTrue(t, f.Redo())
	assertEqual(t, f.Current(), fsm.State("b"))
}

func TestFSM_TriggerDanglingTransition(t *testing.T) {
	f := fsm.MustNew(fsm.Config{
		States:  fsm.NewStateTable().Add("a", fsm.Transitions{"go": "nowhere"}),
		Initial: "a",
	})

	err := f.Trigger("go")
	assertTrue(t, fsm.IsInvalidStateError(err))
	assertFalse(t, f.CanTrigger("go"))
	assertEqual(t, f.Current(), fsm.State("a"))
	assertStates(t, f.History(), "a")
}

func TestFSM_ChangeState(t *testing.T) {
	f := chain(t)

	assertNoError(t, f.ChangeState("z"))
	assertEqual(t, f.Current(), fsm.State("z"))
	assertTrue(t, f.Undo())
	assertEqual(t, f.Current(), fsm.State("x"))
}

func TestFSM_ChangeStateSameState(t *testing.T) {
	f := chain(t)

	assertNoError(t, f.ChangeState("x"))
	assertStates(t, f.History(), "x", "x")
	assertTrue(t, f.Undo())
	assertEqual(t, f.Current(), fsm.State("x"))
}

func TestFSM_ChangeStateInvalid(t *testing.T) {
	f := chain(t)
	assertNoError(t, f.Trigger("next"))

	err := f.ChangeState("nope")
	assertTrue(t, fsm.IsInvalidStateError(err))

	var invalid *fsm.ErrInvalidState
	assertTrue(t, errors.As(err, &invalid))
	assertEqual(t, invalid.State, fsm.State("nope"))
	assertEqual(t, invalid.Current, fsm.State("y"))

	assertEqual(t, f.Current(), fsm.State("y"))
	assertStates(t, f.History(), "x", "y")
	assertEqual(t, f.Cursor(), 1)
}

func TestFSM_UndoRestoresPrevious(t *testing.T) {
	f := chain(t)

	steps := []struct {
		event fsm.Event
		want  fsm.State
	}{
		{"next", "y"},
		{"next", "z"},
		{"prev", "y"},
		{"prev", "x"},
	}

	for _, step := range steps {
		before := f.Current()

		assertNoError(t, f.Trigger(step.event))
		assertEqual(t, f.Current(), step.want)

		assertTrue(t, f.Undo())
		assertEqual(t, f.Current(), before)
		assertTrue(t, f.Redo())
		assertEqual(t, f.Current(), step.want)
	}
}

func TestFSM_UndoRedoRoundTrip(t *testing.T) {
	f := chain(t)

	assertNoError(t, f.Trigger("next"))
	assertNoError(t, f.Trigger("next"))
	assertNoError(t, f.Trigger("prev"))
	before := f.Current()

	undone := 0
	for f.Undo() {
		undone++
	}

	assertEqual(t, undone, 3)
	assertEqual(t, f.Current(), fsm.State("x"))

	redone := 0
	for f.Redo() {
		redone++
	}

	assertEqual(t, redone, 3)
	assertEqual(t, f.Current(), before)
}

func TestFSM_BranchDiscardsRedo(t *testing.T) {
	f := chain(t)

	assertNoError(t, f.Trigger("next"))
	assertNoError(t, f.Trigger("next"))
	assertTrue(t, f.Undo())
	assertTrue(t, f.Undo())

	assertNoError(t, f.ChangeState("z"))
	assertFalse(t, f.Redo())
	assertStates(t, f.History(), "x", "z")

	assertTrue(t, f.Undo())
	assertNoError(t, f.Trigger("next"))
	assertFalse(t, f.Redo())
	assertStates(t, f.History(), "x", "y")
	assertEqual(t, f.Cursor(), 1)
}

func TestFSM_Example(t *testing.T) {
	f := pingPong(t)

	assertNoError(t, f.Trigger("go"))
	assertEqual(t, f.Current(), fsm.State("b"))
	assertTrue(t, f.Undo())
	assertEqual(t, f.Current(), fsm.State("a"))
	assertTrue(t, f.Redo())
	assertEqual(t, f.Current(), fsm.State("b"))
	assertNoError(t, f.Trigger("back"))
	assertNoError(t, f.ChangeState("b"))

	assertStates(t, f.States("go"), "a")
	assertStates(t, f.States("back"), "b")
	assertStates(t, f.States(), "a", "b")
}

func TestFSM_States(t *testing.T) {
	f := fsm.MustNew(fsm.Config{
		States: fsm.NewStateTable().
			Add("c", fsm.Transitions{"to_a": "a", "loop": "c"}).
			Add("a", fsm.Transitions{"to_b": "b", "loop": "a"}).
			Add("b", nil),
		Initial: "a",
	})

	assertStates(t, f.States(), "c", "a", "b")
	assertStates(t, f.States(""), "c", "a", "b")
	assertStates(t, f.States("loop"), "c", "a")
	assertStates(t, f.States("to_b"), "a")
	assertTrue(t, f.States("unknown").Empty())
}

func TestFSM_Events(t *testing.T) {
	f := chain(t)

	assertTrue(t, f.Events().NotEmpty())
	assertEqual(t, f.Events().Len(), 1)

	assertNoError(t, f.Trigger("next"))
	events := f.Events()
	assertEqual(t, events.Len(), 2)
	assertEqual(t, events[0], fsm.Event("next"))
	assertEqual(t, events[1], fsm.Event("prev"))

	assertTrue(t, f.CanTrigger("prev"))
	assertFalse(t, f.CanTrigger("jump"))
}

func TestFSM_Reset(t *testing.T) {
	f := chain(t)

	assertNoError(t, f.Trigger("next"))
	assertNoError(t, f.Trigger("next"))
	assertTrue(t, f.Undo())

	f.Reset()
	assertEqual(t, f.Current(), fsm.State("x"))
	assertStates(t, f.History(), "x")
	assertFalse(t, f.Undo())
	assertFalse(t, f.Redo())
}

func TestFSM_ClearHistory(t *testing.T) {
	f := chain(t)

	assertNoError(t, f.Trigger("next"))
	assertNoError(t, f.Trigger("next"))

	f.ClearHistory()
	assertEqual(t, f.Current(), fsm.State("x"))
	assertStates(t, f.History(), "x")
	assertEqual(t, f.Cursor(), 0)
	assertFalse(t, f.CanUndo())
	assertFalse(t, f.CanRedo())

	assertNoError(t, f.Trigger("next"))
	assertStates(t, f.History(), "x", "y")
}

func TestFSM_HistoryIsCopy(t *testing.T) {
	f := pingPong(t)
	assertNoError(t, f.Trigger("go"))

	h := f.History()
	h[0] = "tampered"

	assertStates(t, f.History(), "a", "b")
}

func TestFSM_Clone(t *testing.T) {
	template := pingPong(t)
	assertNoError(t, template.Trigger("go"))

	f1 := template.Clone()
	f2 := template.Clone()

	assertNoError(t, f1.Trigger("go"))

	// Verify that f1's state changed, but f2 and the template keep their own histories.
	assertEqual(t, f1.Current(), fsm.State("b"))
	assertEqual(t, f2.Current(), fsm.State("a"))
	assertFalse(t, f2.CanUndo())
	assertEqual(t, template.Current(), fsm.State("b"))
	assertStates(t, template.History(), "a", "b")
}

func TestFSM_Table(t *testing.T) {
	f := pingPong(t)

	table := f.Table()
	table.Add("c", nil)

	assertEqual(t, table.Len(), 3)
	assertStates(t, f.States(), "a", "b")
}

func TestFSM_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f := fsm.MustNew(fsm.Config{
		States:  fsm.NewStateTable().Add("a", fsm.Transitions{"go": "b"}).Add("b", nil),
		Initial: "a",
	}, fsm.WithLogger(nil), fsm.WithLogger(logger))

	assertNoError(t, f.Trigger("go"))
	assertTrue(t, f.Undo())
	assertError(t, f.Trigger("stop"))

	out := buf.String()
	assertTrue(t, strings.Contains(out, `msg="fsm: transition" from=a event=go to=b cursor=1`))
	assertTrue(t, strings.Contains(out, `msg="fsm: undo" to=a cursor=0`))
	assertFalse(t, strings.Contains(out, "stop"))
}
