package main

import (
	"fmt"

	"github.com/enetx/fsm/v2"
	"github.com/enetx/fsm/v2/config"
	"github.com/enetx/fsm/v2/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fsmctl",
		Short:         "fsmctl drives finite state machines defined in YAML or JSON",
		Long:          `fsmctl loads a state machine definition, validates it, lists its states and runs it interactively with undo and redo.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(), newStatesCmd(), newValidateCmd())

	return root
}

// loadMachine builds the machine described by the file at path, logging
// through the level chosen on the command line.
func loadMachine(cmd *cobra.Command, path string) (*fsm.FSM, error) {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, err
	}

	logger := logging.New(level, cmd.ErrOrStderr())

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	f, err := fsm.New(cfg, fsm.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Info("machine loaded", "path", path, "states", cfg.States.Len(), "initial", cfg.Initial)

	return f, nil
}
