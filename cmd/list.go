package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/eventmanager/internal/events"
)

func newListCmd(cli *cliContext) *cobra.Command {
	var (
		from  string
		count int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming events",
		Long: `List the next events starting at or after --from.
Without --from the listing starts now.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			records, err := m.ListUpcoming(cmd.Context(), from, count)
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Lower bound as an RFC3339 timestamp (default: now)")
	cmd.Flags().IntVarP(&count, "count", "n", events.DefaultUpcoming, "Number of events to list")

	return cmd
}

func newViewCmd(cli *cliContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show events around the current date",
		Long: `Show events from five years ago to five years ahead.
With --all every event on the calendar is listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			var records []*events.Record
			if all {
				records, err = m.ListAll(cmd.Context())
			} else {
				records, err = m.ViewWindow(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every event instead of the ten-year window")

	return cmd
}
