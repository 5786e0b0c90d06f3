package event_tools

import (
	"fmt"
	"strings"

	"github.com/teemow/eventmanager/internal/events"
)

func formatRecords(records []*events.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d events:\n\n", len(records))
	for i, rec := range records {
		fmt.Fprintf(&sb, "%d. ", i+1)
		writeRecord(&sb, rec, "   ")
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatRecord(rec *events.Record) string {
	var sb strings.Builder
	writeRecord(&sb, rec, "")
	return sb.String()
}

func writeRecord(sb *strings.Builder, rec *events.Record, indent string) {
	fmt.Fprintf(sb, "%s\n", rec.Summary)
	fmt.Fprintf(sb, "%sID: %s\n", indent, rec.ID)
	fmt.Fprintf(sb, "%sStart: %s\n", indent, rec.Start.String())
	fmt.Fprintf(sb, "%sEnd: %s\n", indent, rec.End.String())
	if rec.Location != "" {
		fmt.Fprintf(sb, "%sLocation: %s\n", indent, rec.Location)
	}
	if rec.Description != "" {
		fmt.Fprintf(sb, "%sType: %s\n", indent, rec.Description)
	}
	if rec.Status != "" {
		fmt.Fprintf(sb, "%sStatus: %s\n", indent, rec.Status)
	}
	if rec.Organizer != nil && rec.Organizer.Email != "" {
		fmt.Fprintf(sb, "%sOrganizer: %s\n", indent, rec.Organizer.Email)
	}
	if names := rec.AttendeeNames(); len(names) > 0 {
		fmt.Fprintf(sb, "%sAttendees (%d): %s\n", indent, len(names), strings.Join(names, ", "))
	}
}
