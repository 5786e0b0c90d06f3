package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func newTestManager(cal Calendar) *Manager {
	return NewManager(cal, WithClock(fixedClock))
}

func TestInsert(t *testing.T) {
	cal := newFakeCalendar()
	m := newTestManager(cal)

	e, err := New(validDraft())
	require.NoError(t, err)

	rec, err := m.Insert(context.Background(), e)
	require.NoError(t, err)
	assert.Len(t, rec.ID, EventIDLength)
	require.Len(t, cal.inserts, 1)
	assert.Equal(t, SendUpdatesAll, cal.notifies[0])
	assert.Equal(t, "Team sync", cal.inserts[0].Summary)
}

func TestInsertTooManyAttendees(t *testing.T) {
	cal := newFakeCalendar()
	m := newTestManager(cal)

	d := validDraft()
	d.Attendees = make([]Attendee, MaxAttendees+1)
	e, err := New(d)
	require.NoError(t, err)

	_, err = m.Insert(context.Background(), e)
	assert.ErrorIs(t, err, ErrTooManyAttendees)
	assert.Zero(t, cal.remoteCalls())

	d.Attendees = make([]Attendee, MaxAttendees)
	e, err = New(d)
	require.NoError(t, err)
	_, err = m.Insert(context.Background(), e)
	assert.NoError(t, err)
}

func TestCreateOnBehalf(t *testing.T) {
	cal := newFakeCalendar()
	m := newTestManager(cal)
	e, err := New(validDraft())
	require.NoError(t, err)

	rec, err := m.CreateOnBehalf(context.Background(), e, "boss@example.com")
	require.NoError(t, err)
	require.NotNil(t, rec.Organizer)
	assert.Equal(t, "boss@example.com", rec.Organizer.Email)
	require.Len(t, cal.moves, 1)
	assert.Equal(t, "boss@example.com", cal.moves[0].destination)
	assert.Equal(t, SendUpdatesAll, cal.moves[0].notify)

	_, err = m.CreateOnBehalf(context.Background(), e, "")
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = m.CreateOnBehalf(context.Background(), e, "boss.example.com")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Len(t, cal.inserts, 1)
}

func TestChangeOrganizer(t *testing.T) {
	cal := newFakeCalendar(&Record{ID: testEventID})
	m := newTestManager(cal)

	rec, err := m.ChangeOrganizer(context.Background(), testEventID, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", rec.Organizer.Email)

	tests := []struct {
		name    string
		id      string
		owner   string
		wantErr error
	}{
		{"missing owner", testEventID, "", ErrMissingInput},
		{"missing id", "", "new@example.com", ErrMissingInput},
		{"bad id", "short", "new@example.com", ErrInvalidFormat},
		{"bad email", testEventID, "new example.com", ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ChangeOrganizer(context.Background(), tt.id, tt.owner)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Len(t, cal.moves, 1)
}

func TestUpdateTitle(t *testing.T) {
	cal := newFakeCalendar(&Record{ID: testEventID, Summary: "old"})
	m := newTestManager(cal)

	rec, err := m.UpdateTitle(context.Background(), testEventID, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", rec.Summary)
	require.Len(t, cal.patches, 1)
	assert.Equal(t, SendUpdatesAll, cal.patches[0].notify)
	assert.Nil(t, cal.patches[0].patch.Attendees)

	_, err = m.UpdateTitle(context.Background(), testEventID, "")
	assert.ErrorIs(t, err, ErrMissingInput)
	_, err = m.UpdateTitle(context.Background(), "bad id", "new")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestUpdateDates(t *testing.T) {
	t.Run("patches dates with fixed zone", func(t *testing.T) {
		cal := newFakeCalendar(&Record{ID: testEventID})
		m := newTestManager(cal)

		_, err := m.UpdateDates(context.Background(), testEventID, "2020-08-03", "2021-08-03")
		require.NoError(t, err)
		require.Len(t, cal.patches, 1)
		p := cal.patches[0].patch
		assert.Equal(t, &DateTime{Date: "2020-08-03", TimeZone: DefaultTimeZone}, p.Start)
		assert.Equal(t, &DateTime{Date: "2021-08-03", TimeZone: DefaultTimeZone}, p.End)
		assert.Equal(t, SendUpdatesAll, cal.patches[0].notify)
	})

	t.Run("start after end fails before remote call", func(t *testing.T) {
		cal := newFakeCalendar(&Record{ID: testEventID})
		m := newTestManager(cal)

		_, err := m.UpdateDates(context.Background(), testEventID, "2021-08-03", "2020-08-03")
		assert.ErrorIs(t, err, ErrInvalidRange)
		assert.Zero(t, cal.remoteCalls())
	})

	t.Run("unrecognized format is a silent no-op", func(t *testing.T) {
		cal := newFakeCalendar(&Record{ID: testEventID})
		m := newTestManager(cal)

		rec, err := m.UpdateDates(context.Background(), testEventID, "2020/08/03", "2021/08/03")
		assert.NoError(t, err)
		assert.Nil(t, rec)
		assert.Zero(t, cal.remoteCalls())
	})

	t.Run("missing input", func(t *testing.T) {
		m := newTestManager(newFakeCalendar())
		_, err := m.UpdateDates(context.Background(), testEventID, "", "2021-08-03")
		assert.ErrorIs(t, err, ErrMissingInput)
	})
}

func TestCancelTwice(t *testing.T) {
	cal := newFakeCalendar(&Record{ID: testEventID, Status: StatusConfirmed})
	m := newTestManager(cal)

	for i := 0; i < 2; i++ {
		rec, err := m.Cancel(context.Background(), testEventID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, rec.Status)
	}
	require.Len(t, cal.patches, 2)
	assert.Equal(t, SendUpdatesNone, cal.patches[1].notify)
}

func TestCancelPropagatesRemoteError(t *testing.T) {
	cal := newFakeCalendar(&Record{ID: testEventID})
	cal.err = errors.New("backend down")
	m := newTestManager(cal)

	_, err := m.Cancel(context.Background(), testEventID)
	assert.EqualError(t, err, "backend down")
}

func TestDeletePast(t *testing.T) {
	past := &Record{ID: testEventID, End: &DateTime{DateTime: "2024-03-14T09:00:00Z"}}
	futureID := "zyxwvutsrqponmlkjihgfedcba"
	future := &Record{ID: futureID, End: &DateTime{DateTime: "2024-03-16T09:00:00Z"}}
	cal := newFakeCalendar(past, future)
	m := newTestManager(cal)

	require.NoError(t, m.DeletePast(context.Background(), testEventID))
	assert.Equal(t, []string{testEventID}, cal.deletes)

	err := m.DeletePast(context.Background(), futureID)
	assert.ErrorIs(t, err, ErrEventNotPassed)
	assert.Len(t, cal.deletes, 1)

	err = m.DeletePast(context.Background(), "00000000000000000000000000")
	assert.ErrorIs(t, err, errNotFound)
}

func TestDeletePastAllDay(t *testing.T) {
	tests := []struct {
		name    string
		end     *DateTime
		deleted bool
	}{
		{
			name:    "ended yesterday",
			end:     &DateTime{Date: "2024-03-14", TimeZone: DefaultTimeZone},
			deleted: true,
		},
		{
			name:    "ends today",
			end:     &DateTime{Date: "2024-03-16", TimeZone: DefaultTimeZone},
			deleted: false,
		},
		{
			name:    "ends in the future",
			end:     &DateTime{Date: "2099-05-02", TimeZone: DefaultTimeZone},
			deleted: false,
		},
		{
			name:    "no end",
			end:     nil,
			deleted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := newFakeCalendar(&Record{ID: testEventID, End: tt.end})
			m := newTestManager(cal)

			err := m.DeletePast(context.Background(), testEventID)
			if tt.deleted {
				require.NoError(t, err)
				assert.Equal(t, []string{testEventID}, cal.deletes)
			} else {
				assert.ErrorIs(t, err, ErrEventNotPassed)
				assert.Empty(t, cal.deletes)
			}
		})
	}
}

func TestDeletePastAfterUpdateDates(t *testing.T) {
	cal := newFakeCalendar(&Record{ID: testEventID, End: &DateTime{DateTime: "2022-01-01T10:00:00Z"}})
	m := newTestManager(cal)

	_, err := m.UpdateDates(context.Background(), testEventID, "2099-05-01", "2099-05-02")
	require.NoError(t, err)

	err = m.DeletePast(context.Background(), testEventID)
	assert.ErrorIs(t, err, ErrEventNotPassed)
	assert.Empty(t, cal.deletes)
}
