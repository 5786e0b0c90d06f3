package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/eventmanager/internal/events"
)

// clockFlags is one boundary of an event as entered on the command line.
type clockFlags struct {
	date     string
	hour     string
	minute   string
	meridiem string
}

func (c *clockFlags) bind(cmd *cobra.Command, prefix string) {
	cmd.Flags().StringVar(&c.date, prefix+"-date", "", "Date as YYYY-MM-DD or DD-Mon-YYYY")
	cmd.Flags().StringVar(&c.hour, prefix+"-hour", "", "Hour (0-12), two digits for AM hours such as 09")
	cmd.Flags().StringVar(&c.minute, prefix+"-minute", "00", "Minute (0-60)")
	cmd.Flags().StringVar(&c.meridiem, prefix+"-meridiem", events.AM, "AM or PM")
}

type createOptions struct {
	title       string
	meetingType string
	start       clockFlags
	end         clockFlags
	address     string
	status      string
	attendees   []string
	onBehalfOf  string
}

// draft converts the flags into an event draft.
func (o *createOptions) draft() (events.Draft, error) {
	d := events.Draft{
		Title:       o.title,
		MeetingType: o.meetingType,
		StartDate:   o.start.date,
		EndDate:     o.end.date,
		Address:     o.address,
		Status:      o.status,
	}

	var err error
	if d.StartTime, err = events.ClockTime(o.start.hour, o.start.minute, o.start.meridiem); err != nil {
		return d, fmt.Errorf("start: %w", err)
	}
	if d.EndTime, err = events.ClockTime(o.end.hour, o.end.minute, o.end.meridiem); err != nil {
		return d, fmt.Errorf("end: %w", err)
	}

	if len(o.attendees) > events.MaxAttendees {
		return d, fmt.Errorf("%w: %d attendees, at most %d", events.ErrTooManyAttendees, len(o.attendees), events.MaxAttendees)
	}
	for _, raw := range o.attendees {
		a, err := events.ParseAttendee(raw)
		if err != nil {
			return d, err
		}
		d.Attendees = append(d.Attendees, a)
	}
	return d, nil
}

func newCreateCmd(cli *cliContext) *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event and invite attendees",
		Long: `Create an event on the calendar and email the invitations.

Examples:
  eventmanager create --title "Board meeting" --type "Official Meeting" \
    --start-date 2030-05-01 --start-hour 09 --end-date 2030-05-01 --end-hour 11 \
    --address "12 Main Street" --attendee "Ann <ann@example.com>;agenda owner"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft, err := opts.draft()
			if err != nil {
				return err
			}
			e, err := events.New(draft)
			if err != nil {
				return err
			}

			m, err := cli.eventManager(cmd.Context())
			if err != nil {
				return err
			}

			var rec *events.Record
			if opts.onBehalfOf != "" {
				rec, err = m.CreateOnBehalf(cmd.Context(), e, opts.onBehalfOf)
			} else {
				rec, err = m.Insert(cmd.Context(), e)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Event created")
			return printRecord(cmd.OutOrStdout(), rec)
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "Event title")
	cmd.Flags().StringVar(&opts.meetingType, "type", "", "Official Meeting, Online Meeting or Physical Event")
	opts.start.bind(cmd, "start")
	opts.end.bind(cmd, "end")
	cmd.Flags().StringVar(&opts.address, "address", "", "Street number and street name")
	cmd.Flags().StringVar(&opts.status, "status", events.StatusConfirmed, "Event status")
	cmd.Flags().StringArrayVar(&opts.attendees, "attendee", nil, "Attendee as 'Name <email>' with an optional ';comment' (repeatable)")
	cmd.Flags().StringVar(&opts.onBehalfOf, "on-behalf-of", "", "Move the event to this organizer's calendar")

	for _, name := range []string{"title", "type", "start-date", "start-hour", "end-date", "end-hour", "address"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
