package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

const testEventID = "abcdefghijklmnopqrstuvwxyz"

var errNotFound = errors.New("not found")

type patchCall struct {
	id     string
	patch  *Patch
	notify SendUpdates
}

type moveCall struct {
	id, destination string
	notify          SendUpdates
}

// fakeCalendar is an in-memory Calendar that records every call.
type fakeCalendar struct {
	mu sync.Mutex

	events map[string]*Record
	listed []*Record
	nextID int

	gets     []string
	lists    []ListOptions
	inserts  []*Record
	notifies []SendUpdates
	imports  []*Record
	patches  []patchCall
	moves    []moveCall
	deletes  []string

	err error
}

func newFakeCalendar(records ...*Record) *fakeCalendar {
	f := &fakeCalendar{events: map[string]*Record{}}
	for _, r := range records {
		f.events[r.ID] = r
		f.listed = append(f.listed, r)
	}
	return f
}

func (f *fakeCalendar) remoteCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.gets) + len(f.lists) + len(f.inserts) + len(f.imports) +
		len(f.patches) + len(f.moves) + len(f.deletes)
}

func (f *fakeCalendar) List(_ context.Context, opts ListOptions) ([]*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, opts)
	if f.err != nil {
		return nil, f.err
	}
	out := f.listed
	if opts.MaxResults > 0 && int64(len(out)) > opts.MaxResults {
		out = out[:opts.MaxResults]
	}
	return out, nil
}

func (f *fakeCalendar) Get(_ context.Context, id string) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, id)
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.events[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *rec
	cp.Attendees = append([]RosterEntry(nil), rec.Attendees...)
	return &cp, nil
}

func (f *fakeCalendar) Insert(_ context.Context, rec *Record, notify SendUpdates) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts = append(f.inserts, rec)
	f.notifies = append(f.notifies, notify)
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	cp := *rec
	cp.ID = fmt.Sprintf("%026d", f.nextID)
	f.events[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeCalendar) Import(_ context.Context, rec *Record) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imports = append(f.imports, rec)
	if f.err != nil {
		return nil, f.err
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeCalendar) Patch(_ context.Context, id string, p *Patch, notify SendUpdates) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patchCall{id: id, patch: p, notify: notify})
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.events[id]
	if !ok {
		return nil, errNotFound
	}
	if p.Summary != nil {
		rec.Summary = *p.Summary
	}
	if p.Start != nil {
		rec.Start = p.Start
	}
	if p.End != nil {
		rec.End = p.End
	}
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.Attendees != nil {
		rec.Attendees = *p.Attendees
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeCalendar) Move(_ context.Context, id, destination string, notify SendUpdates) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, moveCall{id: id, destination: destination, notify: notify})
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.events[id]
	if !ok {
		return nil, errNotFound
	}
	rec.Organizer = &Person{Email: destination}
	cp := *rec
	return &cp, nil
}

func (f *fakeCalendar) Delete(_ context.Context, id string, _ SendUpdates) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.err != nil {
		return f.err
	}
	if _, ok := f.events[id]; !ok {
		return errNotFound
	}
	delete(f.events, id)
	return nil
}
