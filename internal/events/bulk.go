package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/teemow/eventmanager/internal/logging"
)

// DefaultExportPath is the file written by an export when no path is given.
const DefaultExportPath = "export.json"

const importExtension = ".json"

// DecodeRecords reads a JSON array of event records.
func DecodeRecords(r io.Reader) ([]*Record, error) {
	var records []*Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return records, nil
}

// EncodeRecords writes records as a JSON array indented by four spaces.
func EncodeRecords(w io.Writer, records []*Record) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no events to export", ErrEmptyInput)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return nil
}

// ImportEvents reads a .json file of records and imports each one.
func (m *Manager) ImportEvents(ctx context.Context, path string) ([]*Record, error) {
	const op = "events.import"
	if !strings.HasSuffix(path, importExtension) {
		return nil, m.reject(op, fmt.Errorf("%w: %q", ErrInvalidExtension, path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	records, err := DecodeRecords(f)
	if err != nil {
		return nil, err
	}
	return m.ImportRecords(ctx, records)
}

// ImportRecords imports records through the remote import call, which keeps
// their iCalUID. Records without one get a generated UID. Import stops at the
// first remote failure and returns what was imported so far.
func (m *Manager) ImportRecords(ctx context.Context, records []*Record) ([]*Record, error) {
	const op = "events.import"
	if len(records) == 0 {
		return nil, m.reject(op, fmt.Errorf("%w: no events to import", ErrEmptyInput))
	}

	imported := make([]*Record, 0, len(records))
	for _, src := range records {
		rec := ImportRecord(src)
		if rec.ICalUID == "" {
			rec.ICalUID = uuid.NewString()
		}
		out, err := m.cal.Import(ctx, rec)
		if err != nil {
			return imported, err
		}
		imported = append(imported, out)
	}
	m.logger.Info("events imported", logging.Operation(op), logging.Count(len(imported)))
	return imported, nil
}

// ExportEvents writes records to path as indented JSON.
func ExportEvents(path string, records []*Record) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no events to export", ErrEmptyInput)
	}
	if path == "" {
		path = DefaultExportPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := EncodeRecords(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
