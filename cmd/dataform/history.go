package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the operation journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			if a.journal == "" {
				return fmt.Errorf("journal is disabled, use --journal")
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			commands, err := s.History()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, command := range commands {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					command.Time().UTC().Format(time.RFC3339),
					command.Name,
					command.Uuid,
					string(command.Payload),
				)
			}
			return tw.Flush()
		},
	}
}
