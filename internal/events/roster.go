package events

import (
	"context"
	"fmt"

	"github.com/teemow/eventmanager/internal/logging"
)

// Invitation responses accepted by RespondInvitation.
const (
	ResponseAccepted  = "accepted"
	ResponseDeclined  = "declined"
	ResponseTentative = "tentative"

	responseNeedsAction = "needsAction"
)

func validResponse(r string) bool {
	switch r {
	case ResponseAccepted, ResponseDeclined, ResponseTentative:
		return true
	}
	return false
}

// GetAttendees returns the emails of the first count attendees. The result is
// shorter than count when the roster is.
func (m *Manager) GetAttendees(ctx context.Context, eventID string, count int) ([]string, error) {
	const op = "events.get_attendees"
	if err := requireAll(eventID); err != nil {
		return nil, m.reject(op, err)
	}
	if err := ValidateEventID(eventID); err != nil {
		return nil, m.reject(op, err)
	}
	if count < 0 || count > MaxAttendees {
		return nil, m.reject(op, fmt.Errorf("%w: count %d not in [0,%d]", ErrInvalidRange, count, MaxAttendees))
	}

	rec, err := m.cal.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	emails := rec.Emails()
	if len(emails) > count {
		emails = emails[:count]
	}
	return emails, nil
}

// AddAttendee appends a guest awaiting a response to the roster.
func (m *Manager) AddAttendee(ctx context.Context, eventID, email, name string) (*Record, error) {
	const op = "events.add_attendee"
	if err := requireAll(eventID, email, name); err != nil {
		return nil, m.reject(op, err)
	}
	if err := ValidateEmail(email); err != nil {
		return nil, m.reject(op, err)
	}
	if err := ValidateEventID(eventID); err != nil {
		return nil, m.reject(op, err)
	}

	return m.rewriteRoster(ctx, op, eventID, func(roster []RosterEntry) []RosterEntry {
		next := make([]RosterEntry, 0, len(roster)+1)
		next = append(next, roster...)
		return append(next, RosterEntry{
			Email:          email,
			DisplayName:    name,
			ResponseStatus: responseNeedsAction,
		})
	})
}

// DeleteAttendee removes every roster entry with the given email. Removing a
// guest who is not on the roster writes the roster back unchanged.
func (m *Manager) DeleteAttendee(ctx context.Context, eventID, email string) (string, error) {
	const op = "events.delete_attendee"
	if err := requireAll(eventID, email); err != nil {
		return "", m.reject(op, err)
	}
	if err := ValidateEmail(email); err != nil {
		return "", m.reject(op, err)
	}
	if err := ValidateEventID(eventID); err != nil {
		return "", m.reject(op, err)
	}

	_, err := m.rewriteRoster(ctx, op, eventID, func(roster []RosterEntry) []RosterEntry {
		next := make([]RosterEntry, 0, len(roster))
		for _, a := range roster {
			if a.Email != email {
				next = append(next, a)
			}
		}
		return next
	})
	if err != nil {
		return "", err
	}
	return email, nil
}

// UpdateAttendee replaces oldEmail with newEmail in place. Every entry of the
// rewritten roster keeps only its email.
func (m *Manager) UpdateAttendee(ctx context.Context, eventID, oldEmail, newEmail string) (string, error) {
	const op = "events.update_attendee"
	if err := requireAll(eventID, oldEmail, newEmail); err != nil {
		return "", m.reject(op, err)
	}
	if err := ValidateEventID(eventID); err != nil {
		return "", m.reject(op, err)
	}
	if err := ValidateEmail(oldEmail); err != nil {
		return "", m.reject(op, err)
	}
	if err := ValidateEmail(newEmail); err != nil {
		return "", m.reject(op, err)
	}

	_, err := m.rewriteRoster(ctx, op, eventID, func(roster []RosterEntry) []RosterEntry {
		next := make([]RosterEntry, 0, len(roster))
		for _, a := range roster {
			if a.Email == oldEmail {
				next = append(next, RosterEntry{Email: newEmail})
				continue
			}
			next = append(next, RosterEntry{Email: a.Email})
		}
		return next
	})
	if err != nil {
		return "", err
	}
	return newEmail, nil
}

// RespondInvitation records a guest's response. The matching entry is reduced
// to its email and response, other entries are left as they are.
func (m *Manager) RespondInvitation(ctx context.Context, eventID, email, response string) (string, error) {
	const op = "events.respond_invitation"
	if err := requireAll(eventID, email, response); err != nil {
		return "", m.reject(op, err)
	}
	if !validResponse(response) {
		return "", m.reject(op, fmt.Errorf("%w: %q", ErrInvalidResponse, response))
	}
	if err := ValidateEventID(eventID); err != nil {
		return "", m.reject(op, err)
	}
	if err := ValidateEmail(email); err != nil {
		return "", m.reject(op, err)
	}

	_, err := m.rewriteRoster(ctx, op, eventID, func(roster []RosterEntry) []RosterEntry {
		next := make([]RosterEntry, 0, len(roster))
		for _, a := range roster {
			if a.Email == email {
				next = append(next, RosterEntry{Email: email, ResponseStatus: response})
				continue
			}
			next = append(next, a)
		}
		return next
	})
	if err != nil {
		return "", err
	}
	return response, nil
}

// rewriteRoster fetches the event, applies edit to its attendees and patches
// the result back, notifying everyone. The read and the write are not atomic.
func (m *Manager) rewriteRoster(ctx context.Context, op, eventID string, edit func([]RosterEntry) []RosterEntry) (*Record, error) {
	rec, err := m.cal.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	roster := edit(rec.Attendees)
	updated, err := m.cal.Patch(ctx, eventID, RosterPatch(roster), SendUpdatesAll)
	if err != nil {
		return nil, err
	}
	m.logger.Info("event roster updated", logging.Operation(op), logging.EventID(eventID), logging.Count(len(roster)))
	return updated, nil
}
