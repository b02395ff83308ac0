package main

import (
	"fmt"

	"github.com/enetx/fsm/v2"
	"github.com/enetx/fsm/v2/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a definition for consistency",
		Long:  `Reports an undefined initial state and every transition that leads to an undefined state.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runValidate(args[0]); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}

func runValidate(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if err := cfg.States.Validate(); err != nil {
		return err
	}

	_, err = fsm.New(cfg)
	return err
}
