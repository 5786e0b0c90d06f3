package events

import (
	"log/slog"
	"time"
)

// isoLayout renders "now" the way remote timestamps are compared, with a
// trailing Z appended by callers.
const isoLayout = "2006-01-02T15:04:05.000000"

// Manager runs event operations against a Calendar.
type Manager struct {
	cal    Calendar
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for operation logs.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager using cal for every remote call.
func NewManager(cal Calendar, opts ...Option) *Manager {
	m := &Manager{
		cal:    cal,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// nowISO returns the current UTC time as an ISO string with a Z suffix.
func (m *Manager) nowISO() string {
	return m.now().UTC().Format(isoLayout) + "Z"
}
