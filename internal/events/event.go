package events

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
)

// MaxAttendees is the largest roster accepted when an event is inserted.
const MaxAttendees = 20

// StatusConfirmed and StatusCancelled are the event statuses set by this package.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// MeetingType classifies an event. It is stored in the remote description field.
type MeetingType string

// Known meeting types in their canonical casing.
const (
	OfficialMeeting MeetingType = "Official Meeting"
	OnlineMeeting   MeetingType = "Online Meeting"
	PhysicalEvent   MeetingType = "Physical Event"
)

// MeetingTypes lists the accepted meeting types.
var MeetingTypes = []MeetingType{OfficialMeeting, OnlineMeeting, PhysicalEvent}

// ParseMeetingType matches s case-insensitively against MeetingTypes and
// returns the canonical value.
func ParseMeetingType(s string) (MeetingType, error) {
	for _, mt := range MeetingTypes {
		if strings.EqualFold(s, string(mt)) {
			return mt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMeetingType, s)
}

// Attendee is a guest collected when an event is created.
type Attendee struct {
	DisplayName string
	Email       string
	Comment     string
}

// ParseAttendee reads "Name <email>" or a bare address, optionally followed
// by ";comment".
func ParseAttendee(s string) (Attendee, error) {
	addr, comment, _ := strings.Cut(s, ";")
	parsed, err := mail.ParseAddress(strings.TrimSpace(addr))
	if err != nil {
		return Attendee{}, fmt.Errorf("%w: attendee %q", ErrInvalidFormat, s)
	}
	if err := ValidateEmail(parsed.Address); err != nil {
		return Attendee{}, err
	}
	return Attendee{
		DisplayName: parsed.Name,
		Email:       parsed.Address,
		Comment:     strings.TrimSpace(comment),
	}, nil
}

// Draft holds the raw field values collected for a new event.
type Draft struct {
	Title       string
	MeetingType string
	StartDate   string // YYYY-MM-DD or DD-Mon-YYYY
	StartTime   string // HH:MM
	EndDate     string
	EndTime     string
	Address     string
	Status      string
	Attendees   []Attendee
}

// Event is a validated event ready to be inserted. Start and End are
// normalized to YYYY-MM-DDTHH:MM:00Z.
type Event struct {
	Title       string
	MeetingType MeetingType
	Start       string
	End         string
	Address     string
	Status      string
	Attendees   []Attendee
}

// New validates a draft and builds an Event. Dates are checked first, then
// the meeting type, then the address. Status and attendees are kept as given.
func New(d Draft) (*Event, error) {
	if !ValidateDateFormat(d.StartDate) || !ValidateDateFormat(d.EndDate) {
		return nil, fmt.Errorf("%w: start %q, end %q", ErrInvalidDate, d.StartDate, d.EndDate)
	}

	mt, err := ParseMeetingType(d.MeetingType)
	if err != nil {
		return nil, err
	}

	if !ValidateAddress(d.Address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, d.Address)
	}

	return &Event{
		Title:       d.Title,
		MeetingType: mt,
		Start:       timestamp(d.StartDate, d.StartTime),
		End:         timestamp(d.EndDate, d.EndTime),
		Address:     d.Address,
		Status:      d.Status,
		Attendees:   d.Attendees,
	}, nil
}

// timestamp joins a date and a HH:MM time with a fixed UTC marker.
func timestamp(date, clock string) string {
	return normalizeDate(date) + "T" + clock + ":00Z"
}

// Record returns the insert payload for the event. Guests may neither modify
// the event nor invite others.
func (e *Event) Record() *Record {
	roster := make([]RosterEntry, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		roster = append(roster, RosterEntry{
			DisplayName: a.DisplayName,
			Email:       a.Email,
			Comment:     a.Comment,
		})
	}

	deny := false
	return &Record{
		Summary:               e.Title,
		Description:           string(e.MeetingType),
		Location:              e.Address,
		Start:                 &DateTime{DateTime: e.Start},
		End:                   &DateTime{DateTime: e.End},
		Status:                e.Status,
		Attendees:             roster,
		GuestsCanInviteOthers: &deny,
		GuestsCanModify:       &deny,
	}
}

// Meridiem values accepted by ClockTime.
const (
	AM = "AM"
	PM = "PM"
)

// ClockTime converts a 12-hour clock reading into the HH:MM form expected by
// Draft. Hours run 0..12 and minutes 0..60. 12 AM becomes 00 and PM hours
// other than 12 are shifted by twelve.
func ClockTime(hour, minute, meridiem string) (string, error) {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 12 {
		return "", fmt.Errorf("%w: hour %q", ErrInvalidTime, hour)
	}
	m, err := strconv.Atoi(minute)
	if err != nil || m < 0 || m > 60 {
		return "", fmt.Errorf("%w: minute %q", ErrInvalidTime, minute)
	}

	switch strings.ToUpper(meridiem) {
	case AM:
		if h == 12 {
			hour = "00"
		}
	case PM:
		if h != 12 {
			hour = strconv.Itoa(h + 12)
		}
	default:
		return "", fmt.Errorf("%w: meridiem %q", ErrInvalidTime, meridiem)
	}

	return hour + ":" + minute, nil
}
