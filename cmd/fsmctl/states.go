package main

import (
	"fmt"

	"github.com/enetx/fsm/v2"
	"github.com/spf13/cobra"
)

func newStatesCmd() *cobra.Command {
	var event string

	cmd := &cobra.Command{
		Use:   "states <file>",
		Short: "List the states of a definition",
		Long:  `Lists every state in definition order, or only the states that react to --event.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadMachine(cmd, args[0])
			if err != nil {
				return err
			}

			for state := range f.States(fsm.Event(event)).Iter() {
				fmt.Fprintln(cmd.OutOrStdout(), state)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&event, "event", "e", "", "Only list states with a transition for this event")

	return cmd
}
