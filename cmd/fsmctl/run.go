package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/enetx/fsm/v2"
	"github.com/spf13/cobra"
)

const helpText = `Commands:
  <event> | trigger <event>  fire an event from the current state
  goto <state>               jump to any defined state
  undo | redo                walk the history
  reset                      return to the initial state and drop the history
  clear                      drop the history (moves back to its first entry)
  states [event]             list states, optionally those reacting to event
  events                     list events available from the current state
  history                    show the history, marking the cursor
  state                      show the current state
  help                       show this help
  quit | exit                leave`

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Drive a machine interactively",
		Long:  `Starts a prompt that reads one command per line from stdin. Type 'help' for the command list.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadMachine(cmd, args[0])
			if err != nil {
				return err
			}

			return newSession(f, cmd.OutOrStdout()).run(cmd.InOrStdin())
		},
	}
}

type session struct {
	machine *fsm.FSM
	out     io.Writer

	current lipgloss.Style
	failure lipgloss.Style
	faint   lipgloss.Style
}

func newSession(f *fsm.FSM, out io.Writer) *session {
	r := lipgloss.NewRenderer(out)

	return &session{
		machine: f,
		out:     out,
		current: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")),
		faint:   r.NewStyle().Faint(true),
	}
}

// run reads commands from in until it is exhausted or the user quits.
func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		s.printf("%s> ", s.current.Render(string(s.machine.Current())))

		if !scanner.Scan() {
			s.printf("\n")
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		if err := s.exec(fields[0], fields[1:]); err != nil {
			s.printf("%s\n", s.failure.Render("error: "+err.Error()))
		}
	}
}

func (s *session) exec(command string, args []string) error {
	f := s.machine

	switch command {
	case "help":
		s.printf("%s\n", helpText)
	case "state":
		s.printf("%s\n", f.Current())
	case "trigger":
		if len(args) != 1 {
			return errors.New("usage: trigger <event>")
		}
		return s.moved(f.Trigger(fsm.Event(args[0])))
	case "goto":
		if len(args) != 1 {
			return errors.New("usage: goto <state>")
		}
		return s.moved(f.ChangeState(fsm.State(args[0])))
	case "undo":
		if !f.Undo() {
			return errors.New("nothing to undo")
		}
		return s.moved(nil)
	case "redo":
		if !f.Redo() {
			return errors.New("nothing to redo")
		}
		return s.moved(nil)
	case "reset":
		f.Reset()
		return s.moved(nil)
	case "clear":
		f.ClearHistory()
		return s.moved(nil)
	case "states":
		var event fsm.Event
		if len(args) > 0 {
			event = fsm.Event(args[0])
		}
		for state := range f.States(event).Iter() {
			s.printf("%s\n", state)
		}
	case "events":
		for event := range f.Events().Iter() {
			s.printf("%s\n", event)
		}
	case "history":
		cursor := f.Cursor()
		for i, state := range f.History() {
			if i == cursor {
				s.printf("* %s\n", s.current.Render(string(state)))
				continue
			}
			s.printf("  %s\n", s.faint.Render(string(state)))
		}
	default:
		if len(args) != 0 {
			return fmt.Errorf("unknown command %q, type 'help'", command)
		}
		return s.moved(f.Trigger(fsm.Event(command)))
	}

	return nil
}

// moved reports the state reached after a successful change.
func (s *session) moved(err error) error {
	if err != nil {
		return err
	}

	s.printf("-> %s\n", s.current.Render(string(s.machine.Current())))
	return nil
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
