package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/ical"
)

// addFilterFlags binds the search criteria to cmd's flags.
func addFilterFlags(cmd *cobra.Command, f *events.Filter) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Title contains")
	cmd.Flags().StringVar(&f.Type, "type", "", "Meeting type contains")
	cmd.Flags().StringVar(&f.Address, "address", "", "Address contains")
	cmd.Flags().StringVar(&f.Year, "year", "", "Start or end year contains")
	cmd.Flags().StringVar(&f.Month, "month", "", "Start or end month contains")
	cmd.Flags().StringVar(&f.Day, "day", "", "Start or end day contains")
}

func newSearchCmd(cli *cliContext) *cobra.Command {
	var (
		filter     events.Filter
		exportPath string
		icsPath    string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search events by title, type, address or date",
		Long: `Search every event on the calendar. All criteria are substring matches
and must hold together. Only timed events are considered.

Examples:
  eventmanager search --title standup --year 2024
  eventmanager search --type "Online Meeting" --ics online.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			records, err := m.Search(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if err := printRecords(cmd.OutOrStdout(), records); err != nil {
				return err
			}
			if exportPath != "" {
				if err := events.ExportEvents(exportPath, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(records), exportPath)
			}
			if icsPath != "" {
				if err := ical.WriteFile(icsPath, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(records), icsPath)
			}
			return nil
		},
	}

	addFilterFlags(cmd, &filter)
	cmd.Flags().StringVar(&exportPath, "export", "", "Also write the results to this JSON file")
	cmd.Flags().StringVar(&icsPath, "ics", "", "Also write the results to this iCalendar file")

	return cmd
}
