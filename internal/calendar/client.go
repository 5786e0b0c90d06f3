package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/eventmanager/internal/events"
	"github.com/teemow/eventmanager/internal/google"
	"github.com/teemow/eventmanager/internal/instrumentation"
	"github.com/teemow/eventmanager/internal/logging"
)

// DefaultCalendarID is the calendar of the authorized user.
const DefaultCalendarID = "primary"

// Client wraps the Google Calendar service for a single account and calendar.
type Client struct {
	svc        *calendar.Service
	account    string
	calendarID string
	limiter    *RateLimiter
	metrics    *instrumentation.Metrics
	logger     *slog.Logger
}

var _ events.Calendar = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithCalendarID selects the calendar the client operates on.
func WithCalendarID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.calendarID = id
		}
	}
}

// WithRateLimiter replaces the default rate limiter.
func WithRateLimiter(l *RateLimiter) Option {
	return func(c *Client) {
		if l != nil {
			c.limiter = l
		}
	}
}

// WithMetrics records API calls on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger for API call logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAccount records the account name the client acts for.
func WithAccount(account string) Option {
	return func(c *Client) { c.account = account }
}

// NewClientWithService wraps an existing service.
func NewClientWithService(svc *calendar.Service, opts ...Option) *Client {
	c := &Client{
		svc:        svc,
		calendarID: DefaultCalendarID,
		limiter:    NewRateLimiter(DefaultRateLimit),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.WithAccount(c.logger, c.account)
	return c
}

// NewClientForAccount creates a Client authorized with the stored token of account.
func NewClientForAccount(ctx context.Context, account string, conf *oauth2.Config, provider google.TokenProvider, opts ...Option) (*Client, error) {
	hc, err := google.HTTPClient(ctx, conf, provider, account)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return NewClientWithService(svc, append([]Option{WithAccount(account)}, opts...)...), nil
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// CalendarID returns the calendar the client operates on.
func (c *Client) CalendarID() string {
	return c.calendarID
}

// do runs one API call behind the rate limiter and records it.
func (c *Client) do(ctx context.Context, op, eventID string, call func(context.Context) error) error {
	attrs := instrumentation.NewSpanAttributeBuilder().
		WithAccount(c.account).
		WithCalendar(c.calendarID).
		WithEvent(eventID).
		Build()
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceCalendar, op, attrs...)

	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		instrumentation.EndSpan(span, err)
		return fmt.Errorf("rate limiter: %w", err)
	}
	c.metrics.RecordRateLimitWait(ctx, op, time.Since(waitStart))

	start := time.Now()
	err := call(ctx)
	duration := time.Since(start)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		if IsRateLimited(err) {
			c.limiter.Backoff(retryAfter(err))
		}
	}
	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, op, status, duration)
	c.logger.Debug("calendar api call",
		logging.Operation("calendar."+op),
		logging.EventID(eventID),
		logging.Status(status),
		slog.Duration(logging.KeyDuration, duration),
		logging.Err(err))

	instrumentation.EndSpan(span, err)
	return err
}

// List returns single events ordered by start time. A zero MaxResults
// follows every page.
func (c *Client) List(ctx context.Context, opts events.ListOptions) ([]*events.Record, error) {
	var out []*events.Record
	err := c.do(ctx, "list", "", func(ctx context.Context) error {
		call := c.svc.Events.List(c.calendarID).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx)
		if opts.TimeMin != "" {
			call = call.TimeMin(opts.TimeMin)
		}
		if opts.TimeMax != "" {
			call = call.TimeMax(opts.TimeMax)
		}

		if opts.MaxResults > 0 {
			page, err := call.MaxResults(opts.MaxResults).Do()
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}
			out = appendRecords(out, page.Items)
			return nil
		}

		err := call.Pages(ctx, func(page *calendar.Events) error {
			out = appendRecords(out, page.Items)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func appendRecords(out []*events.Record, items []*calendar.Event) []*events.Record {
	for _, item := range items {
		if rec := fromEvent(item); rec != nil {
			out = append(out, rec)
		}
	}
	return out
}

// Get fetches one event.
func (c *Client) Get(ctx context.Context, id string) (*events.Record, error) {
	var ev *calendar.Event
	err := c.do(ctx, "get", id, func(ctx context.Context) error {
		var err error
		ev, err = c.svc.Events.Get(c.calendarID, id).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromEvent(ev), nil
}

// Insert creates a new event.
func (c *Client) Insert(ctx context.Context, rec *events.Record, notify events.SendUpdates) (*events.Record, error) {
	var ev *calendar.Event
	err := c.do(ctx, "insert", "", func(ctx context.Context) error {
		call := c.svc.Events.Insert(c.calendarID, toEvent(rec)).Context(ctx)
		if notify != events.SendUpdatesNone {
			call = call.SendUpdates(string(notify))
		}
		var err error
		ev, err = call.Do()
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromEvent(ev), nil
}

// Import adds a private copy of an existing event, keyed by its iCalUID.
func (c *Client) Import(ctx context.Context, rec *events.Record) (*events.Record, error) {
	var ev *calendar.Event
	err := c.do(ctx, "import", "", func(ctx context.Context) error {
		var err error
		ev, err = c.svc.Events.Import(c.calendarID, toEvent(rec)).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to import event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromEvent(ev), nil
}

// Patch applies a partial update.
func (c *Client) Patch(ctx context.Context, id string, p *events.Patch, notify events.SendUpdates) (*events.Record, error) {
	var ev *calendar.Event
	err := c.do(ctx, "patch", id, func(ctx context.Context) error {
		call := c.svc.Events.Patch(c.calendarID, id, patchEvent(p)).Context(ctx)
		if notify != events.SendUpdatesNone {
			call = call.SendUpdates(string(notify))
		}
		var err error
		ev, err = call.Do()
		if err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromEvent(ev), nil
}

// Move transfers the event to the destination calendar, which changes its organizer.
func (c *Client) Move(ctx context.Context, id, destination string, notify events.SendUpdates) (*events.Record, error) {
	var ev *calendar.Event
	err := c.do(ctx, "move", id, func(ctx context.Context) error {
		call := c.svc.Events.Move(c.calendarID, id, destination).Context(ctx)
		if notify != events.SendUpdatesNone {
			call = call.SendUpdates(string(notify))
		}
		var err error
		ev, err = call.Do()
		if err != nil {
			return fmt.Errorf("failed to move event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromEvent(ev), nil
}

// Delete removes an event.
func (c *Client) Delete(ctx context.Context, id string, notify events.SendUpdates) error {
	return c.do(ctx, "delete", id, func(ctx context.Context) error {
		call := c.svc.Events.Delete(c.calendarID, id).Context(ctx)
		if notify != events.SendUpdatesNone {
			call = call.SendUpdates(string(notify))
		}
		if err := call.Do(); err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
}
