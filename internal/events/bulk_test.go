package events

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importFixture = `[
  {
    "id": "remote-id-to-drop",
    "summary": "Imported",
    "description": "Online Meeting",
    "location": "1 Main St",
    "organizer": {"email": "org@example.com", "displayName": "Org"},
    "start": {"dateTime": "2022-10-10T08:00:00Z", "timeZone": "UTC"},
    "end": {"dateTime": "2022-10-10T09:00:00Z"},
    "status": "confirmed",
    "attendees": [{"email": "a@example.com", "responseStatus": "accepted"}],
    "iCalUID": "uid-1@example.com"
  },
  {
    "summary": "No UID",
    "start": {"dateTime": "2022-11-10T08:00:00Z"},
    "end": {"dateTime": "2022-11-10T09:00:00Z"}
  }
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportEvents(t *testing.T) {
	cal := newFakeCalendar()
	m := newTestManager(cal)

	imported, err := m.ImportEvents(context.Background(), writeFile(t, "events.json", importFixture))
	require.NoError(t, err)
	assert.Len(t, imported, 2)
	require.Len(t, cal.imports, 2)

	first := cal.imports[0]
	assert.Empty(t, first.ID)
	assert.Equal(t, "uid-1@example.com", first.ICalUID)
	assert.Equal(t, &Person{Email: "org@example.com"}, first.Organizer)
	assert.Equal(t, &DateTime{DateTime: "2022-10-10T08:00:00Z"}, first.Start)
	assert.Equal(t, "accepted", first.Attendees[0].ResponseStatus)

	assert.NotEmpty(t, cal.imports[1].ICalUID)
	assert.Nil(t, cal.imports[1].Organizer)
}

func TestImportEventsErrors(t *testing.T) {
	cal := newFakeCalendar()
	m := newTestManager(cal)

	_, err := m.ImportEvents(context.Background(), "x.txt")
	assert.ErrorIs(t, err, ErrInvalidExtension)

	_, err = m.ImportEvents(context.Background(), writeFile(t, "empty.json", "[]"))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = m.ImportEvents(context.Background(), writeFile(t, "broken.json", "{"))
	assert.Error(t, err)

	_, err = m.ImportEvents(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	assert.Zero(t, cal.remoteCalls())
}

func TestEncodeRecords(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeRecords(&buf, []*Record{{Summary: "one"}, {Summary: "two"}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "[\n    {\n        \"summary\": \"one\""))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)

	assert.ErrorIs(t, EncodeRecords(&buf, nil), ErrEmptyInput)
}

func TestExportEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	assert.ErrorIs(t, ExportEvents(path, []*Record{}), ErrEmptyInput)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, ExportEvents(path, []*Record{{Summary: "e1"}, {Summary: "e2"}}))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := DecodeRecords(f)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "e2", records[1].Summary)
}
