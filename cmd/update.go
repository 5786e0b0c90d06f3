package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/tools/batch"
)

func newTitleCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "title EVENT_ID TITLE",
		Short: "Rename an event and notify attendees",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := m.UpdateTitle(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printRecord(cmd.OutOrStdout(), rec)
		},
	}
}

func newDatesCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dates EVENT_ID START_DATE END_DATE",
		Short: "Move an event to new all-day dates",
		Long: `Move an event to new all-day dates and notify attendees.
Dates are YYYY-MM-DD or DD-Mon-YYYY; anything else leaves the event unchanged.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := m.UpdateDates(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes made: dates must be YYYY-MM-DD or DD-Mon-YYYY.")
				return nil
			}
			return printRecord(cmd.OutOrStdout(), rec)
		},
	}
}

func newOrganizerCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "organizer EVENT_ID EMAIL",
		Short: "Transfer an event to another organizer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := m.ChangeOrganizer(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printRecord(cmd.OutOrStdout(), rec)
		},
	}
}

func newCancelCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel EVENT_ID...",
		Short: "Mark events as cancelled",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventBatch(cmd, cli, args, func(ctx context.Context, m *events.Manager, id string) (string, error) {
				rec, err := m.Cancel(ctx, id)
				if err != nil {
					return "", err
				}
				return "status " + rec.Status, nil
			})
		},
	}
}

func newDeleteCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete EVENT_ID...",
		Short: "Delete events that have already ended",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventBatch(cmd, cli, args, func(ctx context.Context, m *events.Manager, id string) (string, error) {
				if err := m.DeletePast(ctx, id); err != nil {
					return "", err
				}
				return "deleted", nil
			})
		},
	}
}

// runEventBatch applies fn to every id, prints one line per id and fails
// when any id failed.
func runEventBatch(cmd *cobra.Command, cli *cliContext, ids []string,
	fn func(ctx context.Context, m *events.Manager, id string) (string, error)) error {
	m, err := cli.eventManager(cmd.Context())
	if err != nil {
		return err
	}

	results := batch.Process(cmd.Context(), ids, func(ctx context.Context, id string) (string, error) {
		return fn(ctx, m, id)
	})
	return reportBatch(cmd.OutOrStdout(), results, "events")
}

// reportBatch prints one line per result and returns an error counting the
// failed items, if any.
func reportBatch(w io.Writer, results []batch.Result, noun string) error {
	for _, r := range results {
		if r.Status == batch.StatusSuccess {
			fmt.Fprintf(w, "%s: %s\n", r.ID, r.Result)
		} else {
			fmt.Fprintf(w, "%s: error: %s\n", r.ID, r.Error)
		}
	}

	if summary := batch.Summarize(results); summary.Failed > 0 {
		return fmt.Errorf("%d of %d %s failed", summary.Failed, summary.Total, noun)
	}
	return nil
}
