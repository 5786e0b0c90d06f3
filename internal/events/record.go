package events

import "context"

// Record is the event shape exchanged with the remote calendar and written to
// import/export files.
type Record struct {
	ID                    string        `json:"id,omitempty"`
	Summary               string        `json:"summary,omitempty"`
	Description           string        `json:"description,omitempty"`
	Location              string        `json:"location,omitempty"`
	Organizer             *Person       `json:"organizer,omitempty"`
	Start                 *DateTime     `json:"start,omitempty"`
	End                   *DateTime     `json:"end,omitempty"`
	Status                string        `json:"status,omitempty"`
	Attendees             []RosterEntry `json:"attendees,omitempty"`
	ICalUID               string        `json:"iCalUID,omitempty"`
	GuestsCanInviteOthers *bool         `json:"guestsCanInviteOthers,omitempty"`
	GuestsCanModify       *bool         `json:"guestsCanModify,omitempty"`
}

// DateTime carries either a timed (DateTime) or an all-day (Date) boundary.
type DateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// String returns the timed value, or the date of an all-day boundary.
func (d *DateTime) String() string {
	switch {
	case d == nil:
		return ""
	case d.DateTime != "":
		return d.DateTime
	default:
		return d.Date
	}
}

// Person identifies an organizer.
type Person struct {
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// RosterEntry is one attendee as stored on the remote record.
type RosterEntry struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
	Comment        string `json:"comment,omitempty"`
}

// Emails returns the attendee addresses in roster order.
func (r *Record) Emails() []string {
	emails := make([]string, 0, len(r.Attendees))
	for _, a := range r.Attendees {
		emails = append(emails, a.Email)
	}
	return emails
}

// AttendeeNames returns display names in roster order, falling back to the
// email for attendees without one.
func (r *Record) AttendeeNames() []string {
	names := make([]string, 0, len(r.Attendees))
	for _, a := range r.Attendees {
		if a.DisplayName != "" {
			names = append(names, a.DisplayName)
		} else {
			names = append(names, a.Email)
		}
	}
	return names
}

// Patch is a partial update. Nil fields are left untouched remotely.
// Attendees is a pointer so that an empty roster can be written.
type Patch struct {
	Summary   *string
	Start     *DateTime
	End       *DateTime
	Status    *string
	Attendees *[]RosterEntry
}

// TitlePatch replaces the summary.
func TitlePatch(title string) *Patch {
	return &Patch{Summary: &title}
}

// DatesPatch replaces start and end with all-day dates in the default zone.
func DatesPatch(start, end string) *Patch {
	return &Patch{
		Start: &DateTime{Date: start, TimeZone: DefaultTimeZone},
		End:   &DateTime{Date: end, TimeZone: DefaultTimeZone},
	}
}

// StatusPatch replaces the event status.
func StatusPatch(status string) *Patch {
	return &Patch{Status: &status}
}

// RosterPatch replaces the whole attendee list.
func RosterPatch(roster []RosterEntry) *Patch {
	if roster == nil {
		roster = []RosterEntry{}
	}
	return &Patch{Attendees: &roster}
}

// DefaultTimeZone is the zone label written by date updates.
const DefaultTimeZone = "America/Los_Angeles"

// ImportRecord copies the fields carried over by an import. Identifiers other
// than iCalUID are dropped so the remote assigns its own.
func ImportRecord(src *Record) *Record {
	rec := &Record{
		Summary:     src.Summary,
		Description: src.Description,
		Location:    src.Location,
		Status:      src.Status,
		Attendees:   src.Attendees,
		ICalUID:     src.ICalUID,
	}
	if src.Organizer != nil {
		rec.Organizer = &Person{Email: src.Organizer.Email}
	}
	if src.Start != nil {
		rec.Start = &DateTime{DateTime: src.Start.DateTime}
	}
	if src.End != nil {
		rec.End = &DateTime{DateTime: src.End.DateTime}
	}
	return rec
}

// SendUpdates selects who is notified about a remote change.
type SendUpdates string

// Notification modes.
const (
	SendUpdatesAll  SendUpdates = "all"
	SendUpdatesNone SendUpdates = ""
)

// ListOptions filters a listing. Zero values are unset. A zero MaxResults
// lists every matching event.
type ListOptions struct {
	TimeMin    string
	TimeMax    string
	MaxResults int64
}

// Calendar is the remote calendar capability. Listings expand recurring
// events into single occurrences ordered by start time.
type Calendar interface {
	List(ctx context.Context, opts ListOptions) ([]*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	Insert(ctx context.Context, rec *Record, notify SendUpdates) (*Record, error)
	Import(ctx context.Context, rec *Record) (*Record, error)
	Patch(ctx context.Context, id string, p *Patch, notify SendUpdates) (*Record, error)
	Move(ctx context.Context, id, destination string, notify SendUpdates) (*Record, error)
	Delete(ctx context.Context, id string, notify SendUpdates) error
}
