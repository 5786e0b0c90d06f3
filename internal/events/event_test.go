package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		Title:       "Team sync",
		MeetingType: "official meeting",
		StartDate:   "10-OCT-2022",
		StartTime:   "08:00",
		EndDate:     "2022-10-10",
		EndTime:     "09:30",
		Address:     "1 Wellington Rd",
		Status:      StatusConfirmed,
		Attendees: []Attendee{
			{DisplayName: "Jane", Email: "jane@example.com", Comment: "host"},
		},
	}
}

func TestNew(t *testing.T) {
	e, err := New(validDraft())
	require.NoError(t, err)

	assert.Equal(t, "Team sync", e.Title)
	assert.Equal(t, OfficialMeeting, e.MeetingType)
	assert.Equal(t, "2022-10-10T08:00:00Z", e.Start)
	assert.Equal(t, "2022-10-10T09:30:00Z", e.End)
	assert.Equal(t, "1 Wellington Rd", e.Address)
	assert.Equal(t, StatusConfirmed, e.Status)
	assert.Len(t, e.Attendees, 1)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Draft)
		wantErr error
	}{
		{"bad start date", func(d *Draft) { d.StartDate = "10-10-2022" }, ErrInvalidDate},
		{"empty end date", func(d *Draft) { d.EndDate = "" }, ErrInvalidDate},
		{"unknown meeting type", func(d *Draft) { d.MeetingType = "Meeting" }, ErrInvalidMeetingType},
		{"empty address", func(d *Draft) { d.Address = "" }, ErrInvalidAddress},
		{"single token address", func(d *Draft) { d.Address = "Clayton" }, ErrInvalidAddress},
		{"date checked before type", func(d *Draft) {
			d.StartDate = "bad"
			d.MeetingType = "bad"
		}, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, err := New(d)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewKeepsTooManyAttendees(t *testing.T) {
	d := validDraft()
	d.Attendees = make([]Attendee, MaxAttendees+1)
	e, err := New(d)
	require.NoError(t, err)
	assert.Len(t, e.Attendees, MaxAttendees+1)
}

func TestParseMeetingType(t *testing.T) {
	tests := []struct {
		in   string
		want MeetingType
	}{
		{"Official Meeting", OfficialMeeting},
		{"ONLINE MEETING", OnlineMeeting},
		{"physical event", PhysicalEvent},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMeetingType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMeetingType("Webinar")
	assert.ErrorIs(t, err, ErrInvalidMeetingType)
}

func TestEventRecord(t *testing.T) {
	e, err := New(validDraft())
	require.NoError(t, err)

	rec := e.Record()
	assert.Equal(t, "Team sync", rec.Summary)
	assert.Equal(t, "Official Meeting", rec.Description)
	assert.Equal(t, "1 Wellington Rd", rec.Location)
	assert.Equal(t, "2022-10-10T08:00:00Z", rec.Start.DateTime)
	assert.Equal(t, "2022-10-10T09:30:00Z", rec.End.DateTime)
	assert.Equal(t, StatusConfirmed, rec.Status)
	require.NotNil(t, rec.GuestsCanModify)
	require.NotNil(t, rec.GuestsCanInviteOthers)
	assert.False(t, *rec.GuestsCanModify)
	assert.False(t, *rec.GuestsCanInviteOthers)
	assert.Equal(t, []RosterEntry{{Email: "jane@example.com", DisplayName: "Jane", Comment: "host"}}, rec.Attendees)
}

func TestClockTime(t *testing.T) {
	tests := []struct {
		hour, minute, meridiem string
		want                   string
		wantErr                bool
	}{
		{"8", "00", "AM", "8:00", false},
		{"12", "15", "AM", "00:15", false},
		{"12", "30", "PM", "12:30", false},
		{"1", "05", "pm", "13:05", false},
		{"11", "60", "PM", "23:60", false},
		{"13", "00", "AM", "", true},
		{"-1", "00", "AM", "", true},
		{"8", "61", "AM", "", true},
		{"x", "00", "AM", "", true},
		{"8", "00", "XM", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.hour+":"+tt.minute+tt.meridiem, func(t *testing.T) {
			got, err := ClockTime(tt.hour, tt.minute, tt.meridiem)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAttendee(t *testing.T) {
	tests := []struct {
		in   string
		want Attendee
	}{
		{in: "Ann Lee <ann@example.com>", want: Attendee{DisplayName: "Ann Lee", Email: "ann@example.com"}},
		{in: "bob@example.com", want: Attendee{Email: "bob@example.com"}},
		{in: "Cy <cy@example.com>; bringing slides", want: Attendee{DisplayName: "Cy", Email: "cy@example.com", Comment: "bringing slides"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAttendee(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAttendee("not an address")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
