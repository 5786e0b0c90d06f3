package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/teemow/eventmanager/internal/events"
)

// printRecords writes one row per event: id, title, address, guests, start, end.
func printRecords(w io.Writer, records []*events.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No events found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tADDRESS\tATTENDEES\tSTART\tEND")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID,
			rec.Summary,
			rec.Location,
			strings.Join(rec.AttendeeNames(), ", "),
			rec.Start.String(),
			rec.End.String(),
		)
	}
	return tw.Flush()
}

// printRecord prints a single event followed by its roster.
func printRecord(w io.Writer, rec *events.Record) error {
	if err := printRecords(w, []*events.Record{rec}); err != nil {
		return err
	}
	if rec.Organizer != nil && rec.Organizer.Email != "" {
		fmt.Fprintf(w, "Organizer: %s\n", rec.Organizer.Email)
	}
	if rec.Status != "" {
		fmt.Fprintf(w, "Status: %s\n", rec.Status)
	}
	return nil
}
