package events

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/teemow/eventmanager/internal/logging"
)

// DefaultUpcoming is the number of events returned by Upcoming.
const DefaultUpcoming = 10

// windowYears is how far ViewWindow reaches into the past and the future.
const windowYears = 5

// ListUpcoming returns up to n events starting at or after from, earliest
// first. An empty from means now.
func (m *Manager) ListUpcoming(ctx context.Context, from string, n int) ([]*Record, error) {
	if n <= 0 {
		return nil, m.reject("events.list_upcoming", fmt.Errorf("%w: %d", ErrInvalidCount, n))
	}
	if from == "" {
		from = m.nowISO()
	}
	return m.cal.List(ctx, ListOptions{TimeMin: from, MaxResults: int64(n)})
}

// Upcoming returns the next DefaultUpcoming events from now.
func (m *Manager) Upcoming(ctx context.Context) ([]*Record, error) {
	return m.ListUpcoming(ctx, "", DefaultUpcoming)
}

// ListAll returns every event on the calendar, earliest first.
func (m *Manager) ListAll(ctx context.Context) ([]*Record, error) {
	return m.cal.List(ctx, ListOptions{})
}

// ViewWindow lists events from five years before now to five years after.
// Only the year of the current timestamp is shifted.
func (m *Manager) ViewWindow(ctx context.Context) ([]*Record, error) {
	current := m.nowISO()
	year, err := strconv.Atoi(current[:4])
	if err != nil {
		return nil, fmt.Errorf("failed to parse current year: %w", err)
	}

	opts := ListOptions{
		TimeMin: strconv.Itoa(year-windowYears) + current[4:],
		TimeMax: strconv.Itoa(year+windowYears) + current[4:],
	}
	return m.cal.List(ctx, opts)
}

// Filter selects events in Search. Empty fields match everything. Year,
// Month and Day are compared against the YYYY, MM and DD parts of the start
// or end timestamp by substring.
type Filter struct {
	Title   string
	Type    string
	Address string
	Year    string
	Month   string
	Day     string
}

// Match reports whether rec satisfies the filter. Events without a timed
// start never match.
func (f Filter) Match(rec *Record) bool {
	if !strings.Contains(rec.Summary, f.Title) ||
		!strings.Contains(rec.Description, f.Type) ||
		!strings.Contains(rec.Location, f.Address) {
		return false
	}
	if rec.Start == nil || rec.Start.DateTime == "" {
		return false
	}

	end := ""
	if rec.End != nil {
		end = rec.End.DateTime
	}
	return f.matchDate(rec.Start.DateTime) || f.matchDate(end)
}

func (f Filter) matchDate(ts string) bool {
	return strings.Contains(slice(ts, 0, 4), f.Year) &&
		strings.Contains(slice(ts, 5, 7), f.Month) &&
		strings.Contains(slice(ts, 8, 10), f.Day)
}

// slice returns s[i:j] clamped to the length of s.
func slice(s string, i, j int) string {
	if i >= len(s) {
		return ""
	}
	if j > len(s) {
		j = len(s)
	}
	return s[i:j]
}

// FilterRecords returns the records matching f, in order.
func FilterRecords(records []*Record, f Filter) []*Record {
	var out []*Record
	for _, rec := range records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Search lists all events and keeps those matching f.
func (m *Manager) Search(ctx context.Context, f Filter) ([]*Record, error) {
	all, err := m.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	found := FilterRecords(all, f)
	m.logger.Debug("search finished", logging.Operation("events.search"), logging.Count(len(found)))
	return found, nil
}
