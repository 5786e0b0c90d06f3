package calendar

import (
	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/eventmanager/internal/events"
)

func toEventDateTime(dt *events.DateTime) *calendar.EventDateTime {
	if dt == nil {
		return nil
	}
	return &calendar.EventDateTime{
		Date:     dt.Date,
		DateTime: dt.DateTime,
		TimeZone: dt.TimeZone,
	}
}

func fromEventDateTime(dt *calendar.EventDateTime) *events.DateTime {
	if dt == nil {
		return nil
	}
	return &events.DateTime{
		Date:     dt.Date,
		DateTime: dt.DateTime,
		TimeZone: dt.TimeZone,
	}
}

func toAttendees(roster []events.RosterEntry) []*calendar.EventAttendee {
	out := make([]*calendar.EventAttendee, 0, len(roster))
	for _, a := range roster {
		out = append(out, &calendar.EventAttendee{
			Email:          a.Email,
			DisplayName:    a.DisplayName,
			ResponseStatus: a.ResponseStatus,
			Comment:        a.Comment,
		})
	}
	return out
}

func fromAttendees(attendees []*calendar.EventAttendee) []events.RosterEntry {
	if len(attendees) == 0 {
		return nil
	}
	out := make([]events.RosterEntry, 0, len(attendees))
	for _, a := range attendees {
		if a == nil {
			continue
		}
		out = append(out, events.RosterEntry{
			Email:          a.Email,
			DisplayName:    a.DisplayName,
			ResponseStatus: a.ResponseStatus,
			Comment:        a.Comment,
		})
	}
	return out
}

// toEvent converts a record into an API event. Explicit false guest
// permissions are force-sent so the API does not drop them.
func toEvent(rec *events.Record) *calendar.Event {
	ev := &calendar.Event{
		Id:          rec.ID,
		Summary:     rec.Summary,
		Description: rec.Description,
		Location:    rec.Location,
		Start:       toEventDateTime(rec.Start),
		End:         toEventDateTime(rec.End),
		Status:      rec.Status,
		ICalUID:     rec.ICalUID,
	}
	if rec.Organizer != nil {
		ev.Organizer = &calendar.EventOrganizer{
			Email:       rec.Organizer.Email,
			DisplayName: rec.Organizer.DisplayName,
		}
	}
	if len(rec.Attendees) > 0 {
		ev.Attendees = toAttendees(rec.Attendees)
	}
	if rec.GuestsCanInviteOthers != nil {
		ev.GuestsCanInviteOthers = rec.GuestsCanInviteOthers
		ev.ForceSendFields = append(ev.ForceSendFields, "GuestsCanInviteOthers")
	}
	if rec.GuestsCanModify != nil {
		ev.GuestsCanModify = *rec.GuestsCanModify
		ev.ForceSendFields = append(ev.ForceSendFields, "GuestsCanModify")
	}
	return ev
}

// fromEvent converts an API event into a record.
func fromEvent(ev *calendar.Event) *events.Record {
	if ev == nil {
		return nil
	}
	rec := &events.Record{
		ID:                    ev.Id,
		Summary:               ev.Summary,
		Description:           ev.Description,
		Location:              ev.Location,
		Start:                 fromEventDateTime(ev.Start),
		End:                   fromEventDateTime(ev.End),
		Status:                ev.Status,
		Attendees:             fromAttendees(ev.Attendees),
		ICalUID:               ev.ICalUID,
		GuestsCanInviteOthers: ev.GuestsCanInviteOthers,
	}
	if ev.Organizer != nil {
		rec.Organizer = &events.Person{
			Email:       ev.Organizer.Email,
			DisplayName: ev.Organizer.DisplayName,
		}
	}
	if ev.GuestsCanModify {
		modify := true
		rec.GuestsCanModify = &modify
	}
	return rec
}

// patchEvent converts a patch into the sparse body sent to Events.Patch.
// An empty roster is force-sent so that removing the last guest clears it.
func patchEvent(p *events.Patch) *calendar.Event {
	ev := &calendar.Event{
		Start: toEventDateTime(p.Start),
		End:   toEventDateTime(p.End),
	}
	if p.Summary != nil {
		ev.Summary = *p.Summary
		ev.ForceSendFields = append(ev.ForceSendFields, "Summary")
	}
	if p.Status != nil {
		ev.Status = *p.Status
		ev.ForceSendFields = append(ev.ForceSendFields, "Status")
	}
	if p.Attendees != nil {
		ev.Attendees = toAttendees(*p.Attendees)
		ev.ForceSendFields = append(ev.ForceSendFields, "Attendees")
	}
	return ev
}
