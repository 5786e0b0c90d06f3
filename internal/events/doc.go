// Package events holds the calendar event model and the operations applied to
// events on a remote calendar.
//
// Every operation validates its inputs before touching the remote calendar.
// Mutations of existing events are read-modify-write round trips against the
// Calendar capability passed to NewManager: the roster operations fetch the
// event, compute a new attendee list and patch it back as a whole. Two
// concurrent writers on the same event can therefore lose an update.
package events
