package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/teemow/eventmanager/internal/events"
)

var errNotFound = errors.New("not found")

// memCalendar is an in-memory events.Calendar.
type memCalendar struct {
	mu      sync.Mutex
	records map[string]*events.Record
	order   []string
	nextID  int
}

func newMemCalendar(records ...*events.Record) *memCalendar {
	c := &memCalendar{records: map[string]*events.Record{}}
	for _, r := range records {
		c.records[r.ID] = r
		c.order = append(c.order, r.ID)
	}
	return c
}

func (c *memCalendar) List(_ context.Context, opts events.ListOptions) ([]*events.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*events.Record, 0, len(c.order))
	for _, id := range c.order {
		if r, ok := c.records[id]; ok {
			out = append(out, r)
		}
	}
	if opts.MaxResults > 0 && int64(len(out)) > opts.MaxResults {
		out = out[:opts.MaxResults]
	}
	return out, nil
}

func (c *memCalendar) Get(_ context.Context, id string) (*events.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.records[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *r
	cp.Attendees = append([]events.RosterEntry(nil), r.Attendees...)
	return &cp, nil
}

func (c *memCalendar) Insert(_ context.Context, rec *events.Record, _ events.SendUpdates) (*events.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	cp := *rec
	cp.ID = fmt.Sprintf("%026d", c.nextID)
	c.records[cp.ID] = &cp
	c.order = append(c.order, cp.ID)
	return &cp, nil
}

func (c *memCalendar) Import(ctx context.Context, rec *events.Record) (*events.Record, error) {
	return c.Insert(ctx, rec, events.SendUpdatesNone)
}

func (c *memCalendar) Patch(_ context.Context, id string, p *events.Patch, _ events.SendUpdates) (*events.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.records[id]
	if !ok {
		return nil, errNotFound
	}
	if p.Summary != nil {
		r.Summary = *p.Summary
	}
	if p.Start != nil {
		r.Start = p.Start
	}
	if p.End != nil {
		r.End = p.End
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Attendees != nil {
		r.Attendees = *p.Attendees
	}
	cp := *r
	return &cp, nil
}

func (c *memCalendar) Move(_ context.Context, id, destination string, _ events.SendUpdates) (*events.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.records[id]
	if !ok {
		return nil, errNotFound
	}
	r.Organizer = &events.Person{Email: destination}
	cp := *r
	return &cp, nil
}

func (c *memCalendar) Delete(_ context.Context, id string, _ events.SendUpdates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.records[id]; !ok {
		return errNotFound
	}
	delete(c.records, id)
	return nil
}
