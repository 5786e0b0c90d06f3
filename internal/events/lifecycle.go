package events

import (
	"context"
	"fmt"

	"github.com/teemow/eventmanager/internal/logging"
)

// reject logs a validation failure and returns it unchanged.
func (m *Manager) reject(op string, err error) error {
	m.logger.Debug("rejected input", logging.Operation(op), logging.Err(err))
	return err
}

// Insert creates the event remotely and notifies all attendees.
func (m *Manager) Insert(ctx context.Context, e *Event) (*Record, error) {
	const op = "events.insert"
	if len(e.Attendees) > MaxAttendees {
		return nil, m.reject(op, fmt.Errorf("%w: %d attendees, max %d", ErrTooManyAttendees, len(e.Attendees), MaxAttendees))
	}

	rec, err := m.cal.Insert(ctx, e.Record(), SendUpdatesAll)
	if err != nil {
		return nil, err
	}
	m.logger.Info("event created", logging.Operation(op), logging.EventID(rec.ID), logging.Count(len(e.Attendees)))
	return rec, nil
}

// CreateOnBehalf inserts the event and then moves it to the organizer's calendar.
func (m *Manager) CreateOnBehalf(ctx context.Context, e *Event, organizer string) (*Record, error) {
	const op = "events.create_on_behalf"
	if err := requireAll(organizer); err != nil {
		return nil, m.reject(op, err)
	}
	if err := ValidateEmail(organizer); err != nil {
		return nil, m.reject(op, err)
	}

	created, err := m.Insert(ctx, e)
	if err != nil {
		return nil, err
	}

	moved, err := m.cal.Move(ctx, created.ID, organizer, SendUpdatesAll)
	if err != nil {
		return nil, err
	}
	m.logger.Info("event organizer assigned", logging.Operation(op), logging.EventID(created.ID), logging.UserHash(organizer))
	return moved, nil
}

// ChangeOrganizer moves an existing event to newOwner's calendar.
func (m *Manager) ChangeOrganizer(ctx context.Context, eventID, newOwner string) (*Record, error) {
	const op = "events.change_organizer"
	if err := requireAll(eventID, newOwner); err != nil {
		return nil, m.reject(op, err)
	}
	if err := ValidateEventID(eventID); err != nil {
		return nil, m.reject(op, err)
	}
	if err := ValidateEmail(newOwner); err != nil {
		return nil, m.reject(op, err)
	}

	rec, err := m.cal.Move(ctx, eventID, newOwner, SendUpdatesAll)
	if err != nil {
		return nil, err
	}
	m.logger.Info("event organizer changed", logging.Operation(op), logging.EventID(eventID), logging.UserHash(newOwner))
	return rec, nil
}

// UpdateTitle replaces the summary of an event.
func (m *Manager) UpdateTitle(ctx context.Context, eventID, title string) (*Record, error) {
	const op = "events.update_title"
	if err := requireAll(eventID, title); err != nil {
		return nil, m.reject(op, err)
	}
	if err := ValidateEventID(eventID); err != nil {
		return nil, m.reject(op, err)
	}

	rec, err := m.cal.Patch(ctx, eventID, TitlePatch(title), SendUpdatesAll)
	if err != nil {
		return nil, err
	}
	m.logger.Info("event title updated", logging.Operation(op), logging.EventID(eventID))
	return rec, nil
}

// UpdateDates moves an event to new all-day start and end dates. A start
// after the end (compared as strings) is rejected. When either date is not in
// an accepted format nothing is sent and both return values are nil.
func (m *Manager) UpdateDates(ctx context.Context, eventID, start, end string) (*Record, error) {
	const op = "events.update_dates"
	if err := requireAll(eventID, start, end); err != nil {
		return nil, m.reject(op, err)
	}
	if start > end {
		return nil, m.reject(op, fmt.Errorf("%w: start %q is after end %q", ErrInvalidRange, start, end))
	}
	if err := ValidateEventID(eventID); err != nil {
		return nil, m.reject(op, err)
	}
	if !ValidateDateFormat(start) || !ValidateDateFormat(end) {
		m.logger.Debug("skipping date update, unrecognized date format", logging.Operation(op), logging.EventID(eventID))
		return nil, nil
	}

	rec, err := m.cal.Patch(ctx, eventID, DatesPatch(start, end), SendUpdatesAll)
	if err != nil {
		return nil, err
	}
	m.logger.Info("event dates updated", logging.Operation(op), logging.EventID(eventID))
	return rec, nil
}

// Cancel marks an event as cancelled. Attendees are not notified.
func (m *Manager) Cancel(ctx context.Context, eventID string) (*Record, error) {
	const op = "events.cancel"
	if err := ValidateEventID(eventID); err != nil {
		return nil, m.reject(op, err)
	}

	rec, err := m.cal.Patch(ctx, eventID, StatusPatch(StatusCancelled), SendUpdatesNone)
	if err != nil {
		return nil, err
	}
	m.logger.Info("event cancelled", logging.Operation(op), logging.EventID(eventID))
	return rec, nil
}

// DeletePast removes an event whose end time has already passed.
func (m *Manager) DeletePast(ctx context.Context, eventID string) error {
	const op = "events.delete"
	if err := ValidateEventID(eventID); err != nil {
		return m.reject(op, err)
	}

	rec, err := m.cal.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if end := rec.End.String(); end != "" && end > m.endCutoff(end) {
		return m.reject(op, fmt.Errorf("%w: ends at %s", ErrEventNotPassed, end))
	}

	if err := m.cal.Delete(ctx, eventID, SendUpdatesNone); err != nil {
		return err
	}
	m.logger.Info("event deleted", logging.Operation(op), logging.EventID(eventID))
	return nil
}

// endCutoff returns now in the shape of end. All-day ends carry only a date
// and are compared against today's date.
func (m *Manager) endCutoff(end string) string {
	now := m.nowISO()
	if len(end) == len(canonicalDate) {
		return now[:len(canonicalDate)]
	}
	return now
}
