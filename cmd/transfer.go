package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/ical"
	"github.com/teemow/eventmanager/internal/instrumentation"
)

func newImportCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.json",
		Short: "Import events from a JSON file",
		Long: `Import every event of a JSON array into the calendar.
Events keep their iCalUID; import stops at the first failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			var metrics *instrumentation.Metrics
			if cli.sc != nil {
				metrics = cli.sc.Metrics()
			}

			imported, err := m.ImportEvents(cmd.Context(), args[0])
			metrics.RecordEventsImported(cmd.Context(), instrumentation.StatusSuccess, len(imported))
			if err != nil {
				metrics.RecordEventsImported(cmd.Context(), instrumentation.StatusError, 1)
				if len(imported) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events before the failure\n", len(imported))
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events from %s\n", len(imported), args[0])
			return nil
		},
	}
}

func newExportCmd(cli *cliContext) *cobra.Command {
	var (
		out     string
		icsPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every event to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			records, err := m.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			if out == "" {
				out = cli.cfg.ExportPath
			}
			if err := events.ExportEvents(out, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(records), out)

			if icsPath != "" {
				if err := ical.WriteFile(icsPath, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(records), icsPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "JSON output file (default: from config, export.json)")
	cmd.Flags().StringVar(&icsPath, "ics", "", "Also write an iCalendar file")

	return cmd
}
