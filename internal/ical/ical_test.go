package ical

import (
	"bytes"
	"path/filepath"
	"os"
	"strings"
	"testing"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/eventmanager/internal/events"
)

var stamp = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func sampleRecords() []*events.Record {
	return []*events.Record{
		{
			ID:          "abcdefghijklmnopqrstuvwxyz",
			Summary:     "Board review",
			Description: "Official Meeting",
			Location:    "1 Main St",
			Status:      events.StatusConfirmed,
			Start:       &events.DateTime{DateTime: "2022-10-10T08:00:00Z"},
			End:         &events.DateTime{DateTime: "2022-10-10T09:00:00Z"},
			Organizer:   &events.Person{Email: "org@example.com"},
			Attendees: []events.RosterEntry{
				{Email: "a@example.com", DisplayName: "Ann", ResponseStatus: events.ResponseAccepted},
				{Email: "b@example.com"},
			},
		},
		{
			ICalUID: "holiday@example.com",
			Summary: "Holiday",
			Status:  events.StatusCancelled,
			Start:   &events.DateTime{Date: "2022-12-25"},
			End:     &events.DateTime{Date: "2022-12-26"},
		},
	}
}

func decode(t *testing.T, data []byte) *goical.Calendar {
	t.Helper()
	cal, err := goical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleRecords(), stamp))

	cal := decode(t, buf.Bytes())
	evs := cal.Events()
	require.Len(t, evs, 2)

	first := evs[0]
	uid, err := first.Props.Text(goical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz@google.com", uid)

	summary, err := first.Props.Text(goical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Board review", summary)

	start, err := first.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2022, 10, 10, 8, 0, 0, 0, time.UTC)))

	attendees := first.Props.Values(goical.PropAttendee)
	require.Len(t, attendees, 2)
	assert.Equal(t, "mailto:a@example.com", attendees[0].Value)
	assert.Equal(t, "Ann", attendees[0].Params.Get(goical.ParamCommonName))
	assert.Equal(t, "ACCEPTED", attendees[0].Params.Get(goical.ParamParticipationStatus))

	status, err := evs[1].Props.Text(goical.PropStatus)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", status)
	assert.True(t, strings.Contains(buf.String(), "DTSTART;VALUE=DATE:20221225"))
}

func TestEncodeEmpty(t *testing.T) {
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, nil, stamp), events.ErrEmptyInput)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ics")
	require.NoError(t, WriteFile(path, sampleRecords()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, decode(t, data).Events(), 1)
	assert.Contains(t, string(data), "PRODID:"+ProductID)
}

func TestUIDFallback(t *testing.T) {
	got := uid(&events.Record{})
	assert.Len(t, got, 36)
}
