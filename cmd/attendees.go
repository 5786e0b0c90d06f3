package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/tools/batch"
)

func newAttendeesCmd(cli *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendees",
		Short: "Manage the guests of an event",
	}
	cmd.AddCommand(
		newAttendeesListCmd(cli),
		newAttendeesAddCmd(cli),
		newAttendeesRemoveCmd(cli),
		newAttendeesUpdateCmd(cli),
		newAttendeesRespondCmd(cli),
	)
	return cmd
}

func newAttendeesListCmd(cli *cliContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "list EVENT_ID",
		Short: "List the emails of an event's guests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			emails, err := m.GetAttendees(cmd.Context(), args[0], count)
			if err != nil {
				return err
			}
			for _, email := range emails {
				fmt.Fprintln(cmd.OutOrStdout(), email)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", events.MaxAttendees, "Number of guests to list")

	return cmd
}

func newAttendeesAddCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add EVENT_ID EMAIL NAME",
		Short: "Invite a guest to an event",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			name := strings.Join(args[2:], " ")
			rec, err := m.AddAttendee(cmd.Context(), args[0], args[1], name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invited %s\n", args[1])
			return printRecord(cmd.OutOrStdout(), rec)
		},
	}
}

func newAttendeesRemoveCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove EVENT_ID EMAIL...",
		Short: "Remove guests from an event",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			results := batch.Process(cmd.Context(), args[1:], func(ctx context.Context, email string) (string, error) {
				if _, err := m.DeleteAttendee(ctx, args[0], email); err != nil {
					return "", err
				}
				return "removed", nil
			})
			return reportBatch(cmd.OutOrStdout(), results, "emails")
		},
	}
}

func newAttendeesUpdateCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update EVENT_ID OLD_EMAIL NEW_EMAIL",
		Short: "Replace a guest's email address",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := m.UpdateAttendee(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced %s with %s\n", args[1], updated)
			return nil
		},
	}
}

func newAttendeesRespondCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:       "respond EVENT_ID EMAIL accepted|declined|tentative",
		Short:     "Record a guest's response to an invitation",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{events.ResponseAccepted, events.ResponseDeclined, events.ResponseTentative},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}
			response, err := m.RespondInvitation(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s the invitation\n", args[1], response)
			return nil
		},
	}
}
