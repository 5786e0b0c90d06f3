package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterRecord(n int) *Record {
	rec := &Record{ID: testEventID}
	for i := 0; i < n; i++ {
		rec.Attendees = append(rec.Attendees, RosterEntry{
			Email:       fmt.Sprintf("guest%d@example.com", i),
			DisplayName: fmt.Sprintf("Guest %d", i),
			Comment:     "hi",
		})
	}
	return rec
}

func TestGetAttendees(t *testing.T) {
	tests := []struct {
		name    string
		roster  int
		count   int
		want    int
		wantErr error
	}{
		{"zero", 5, 0, 0, nil},
		{"fewer than roster", 5, 3, 3, nil},
		{"all", 5, 5, 5, nil},
		{"short roster stops early", 2, 20, 2, nil},
		{"negative", 5, -1, 0, ErrInvalidRange},
		{"above max", 5, 21, 0, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := newFakeCalendar(rosterRecord(tt.roster))
			m := newTestManager(cal)

			got, err := m.GetAttendees(context.Background(), testEventID, tt.count)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, cal.remoteCalls())
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			if tt.want > 0 {
				assert.Equal(t, "guest0@example.com", got[0])
			}
		})
	}
}

func TestAddAttendee(t *testing.T) {
	cal := newFakeCalendar(rosterRecord(1))
	m := newTestManager(cal)

	rec, err := m.AddAttendee(context.Background(), testEventID, "new@example.com", "New Guest")
	require.NoError(t, err)
	require.Len(t, rec.Attendees, 2)
	assert.Equal(t, "Guest 0", rec.Attendees[0].DisplayName)
	assert.Equal(t, RosterEntry{Email: "new@example.com", DisplayName: "New Guest", ResponseStatus: "needsAction"}, rec.Attendees[1])
	require.Len(t, cal.gets, 1)
	require.Len(t, cal.patches, 1)
	assert.Equal(t, SendUpdatesAll, cal.patches[0].notify)

	_, err = m.AddAttendee(context.Background(), testEventID, "new@example.com", "")
	assert.ErrorIs(t, err, ErrMissingInput)
	_, err = m.AddAttendee(context.Background(), testEventID, "new.example.com", "New")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Len(t, cal.patches, 1)
}

func TestDeleteAttendee(t *testing.T) {
	t.Run("removes matching entries", func(t *testing.T) {
		cal := newFakeCalendar(rosterRecord(3))
		m := newTestManager(cal)

		got, err := m.DeleteAttendee(context.Background(), testEventID, "guest1@example.com")
		require.NoError(t, err)
		assert.Equal(t, "guest1@example.com", got)

		written := *cal.patches[0].patch.Attendees
		require.Len(t, written, 2)
		assert.Equal(t, "guest0@example.com", written[0].Email)
		assert.Equal(t, "guest2@example.com", written[1].Email)
		assert.Equal(t, "Guest 2", written[1].DisplayName)
	})

	t.Run("non member writes roster unchanged", func(t *testing.T) {
		original := rosterRecord(3)
		cal := newFakeCalendar(original)
		want := append([]RosterEntry(nil), original.Attendees...)
		m := newTestManager(cal)

		got, err := m.DeleteAttendee(context.Background(), testEventID, "notme@x.com")
		require.NoError(t, err)
		assert.Equal(t, "notme@x.com", got)
		assert.Len(t, cal.gets, 1)
		require.Len(t, cal.patches, 1)
		assert.Equal(t, want, *cal.patches[0].patch.Attendees)
	})

	t.Run("last attendee leaves empty roster", func(t *testing.T) {
		cal := newFakeCalendar(rosterRecord(1))
		m := newTestManager(cal)

		_, err := m.DeleteAttendee(context.Background(), testEventID, "guest0@example.com")
		require.NoError(t, err)
		require.NotNil(t, cal.patches[0].patch.Attendees)
		assert.Empty(t, *cal.patches[0].patch.Attendees)
	})
}

func TestUpdateAttendee(t *testing.T) {
	cal := newFakeCalendar(rosterRecord(3))
	m := newTestManager(cal)

	got, err := m.UpdateAttendee(context.Background(), testEventID, "guest1@example.com", "swap@example.com")
	require.NoError(t, err)
	assert.Equal(t, "swap@example.com", got)

	assert.Equal(t, []RosterEntry{
		{Email: "guest0@example.com"},
		{Email: "swap@example.com"},
		{Email: "guest2@example.com"},
	}, *cal.patches[0].patch.Attendees)

	_, err = m.UpdateAttendee(context.Background(), testEventID, "guest1@example.com", "bad email")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Len(t, cal.patches, 1)
}

func TestRespondInvitation(t *testing.T) {
	cal := newFakeCalendar(rosterRecord(2))
	m := newTestManager(cal)

	got, err := m.RespondInvitation(context.Background(), testEventID, "guest0@example.com", ResponseAccepted)
	require.NoError(t, err)
	assert.Equal(t, ResponseAccepted, got)

	written := *cal.patches[0].patch.Attendees
	assert.Equal(t, RosterEntry{Email: "guest0@example.com", ResponseStatus: ResponseAccepted}, written[0])
	assert.Equal(t, "Guest 1", written[1].DisplayName)
}

func TestRespondInvitationInvalid(t *testing.T) {
	cal := newFakeCalendar(rosterRecord(2))
	m := newTestManager(cal)

	_, err := m.RespondInvitation(context.Background(), testEventID, "guest0@example.com", "invalid")
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Zero(t, cal.remoteCalls())
}
