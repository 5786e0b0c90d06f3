// Package ical writes event records as an iCalendar (RFC 5545) document.
package ical

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/teemow/eventmanager/internal/events"
)

// ProductID identifies the generator in exported calendars.
const ProductID = "-//eventmanager//EN"

// Encode writes records as a VCALENDAR with one VEVENT each. now stamps
// every event.
func Encode(w io.Writer, records []*events.Record, now time.Time) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no events to export", events.ErrEmptyInput)
	}

	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, ProductID)
	for _, rec := range records {
		cal.Children = append(cal.Children, toVEvent(rec, now.UTC()))
	}

	if err := goical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// WriteFile encodes records into the file at path.
func WriteFile(path string, records []*events.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create calendar file: %w", err)
	}
	if err := Encode(f, records, time.Now()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func toVEvent(rec *events.Record, now time.Time) *goical.Component {
	ve := goical.NewComponent(goical.CompEvent)
	ve.Props.SetText(goical.PropUID, uid(rec))
	ve.Props.SetDateTime(goical.PropDateTimeStamp, now)

	if rec.Summary != "" {
		ve.Props.SetText(goical.PropSummary, rec.Summary)
	}
	if rec.Description != "" {
		ve.Props.SetText(goical.PropDescription, rec.Description)
	}
	if rec.Location != "" {
		ve.Props.SetText(goical.PropLocation, rec.Location)
	}
	if status := icalStatus(rec.Status); status != "" {
		ve.Props.SetText(goical.PropStatus, status)
	}
	setBoundary(ve, goical.PropDateTimeStart, rec.Start)
	setBoundary(ve, goical.PropDateTimeEnd, rec.End)

	if rec.Organizer != nil && rec.Organizer.Email != "" {
		p := goical.NewProp(goical.PropOrganizer)
		p.Value = "mailto:" + rec.Organizer.Email
		ve.Props.Add(p)
	}
	for _, a := range rec.Attendees {
		p := goical.NewProp(goical.PropAttendee)
		p.Value = "mailto:" + a.Email
		if a.DisplayName != "" {
			p.Params.Set(goical.ParamCommonName, a.DisplayName)
		}
		if partstat := participation(a.ResponseStatus); partstat != "" {
			p.Params.Set(goical.ParamParticipationStatus, partstat)
		}
		ve.Props.Add(p)
	}
	return ve
}

func uid(rec *events.Record) string {
	switch {
	case rec.ICalUID != "":
		return rec.ICalUID
	case rec.ID != "":
		return rec.ID + "@google.com"
	default:
		return uuid.NewString()
	}
}

// setBoundary writes a timed or all-day boundary. Unparseable values are skipped.
func setBoundary(ve *goical.Component, name string, dt *events.DateTime) {
	if dt == nil {
		return
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			ve.Props.SetDateTime(name, t.UTC())
		}
		return
	}
	if dt.Date != "" {
		if t, err := time.Parse("2006-01-02", dt.Date); err == nil {
			ve.Props.SetDate(name, t)
		}
	}
}

func icalStatus(status string) string {
	switch strings.ToLower(status) {
	case events.StatusConfirmed, "tentative", events.StatusCancelled:
		return strings.ToUpper(status)
	}
	return ""
}

func participation(response string) string {
	switch response {
	case events.ResponseAccepted:
		return "ACCEPTED"
	case events.ResponseDeclined:
		return "DECLINED"
	case events.ResponseTentative:
		return "TENTATIVE"
	case "needsAction":
		return "NEEDS-ACTION"
	}
	return ""
}
