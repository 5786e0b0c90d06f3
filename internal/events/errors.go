package events

import "errors"

// Validation errors. All of them are raised locally before any remote call is
// issued, except ErrTooManyAttendees which is checked when an event is inserted.
var (
	// ErrInvalidFormat indicates a malformed email address or event ID.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidDate indicates a date string that matches neither accepted layout.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidMeetingType indicates an unknown meeting type.
	ErrInvalidMeetingType = errors.New("invalid meeting type")

	// ErrInvalidAddress indicates an address with fewer than two tokens.
	ErrInvalidAddress = errors.New("invalid address format")

	// ErrInvalidRange indicates an out of range count or a start date after the end date.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidCount indicates a non-positive number of events was requested.
	ErrInvalidCount = errors.New("number of events must be at least 1")

	// ErrInvalidResponse indicates an invitation response other than
	// accepted, tentative or declined.
	ErrInvalidResponse = errors.New("invalid invitation response")

	// ErrTooManyAttendees indicates the roster exceeds MaxAttendees.
	ErrTooManyAttendees = errors.New("maximum number of attendees exceeded")

	// ErrMissingInput indicates a required argument was not supplied.
	ErrMissingInput = errors.New("missing inputs")

	// ErrInvalidExtension indicates an import file that is not a .json file.
	ErrInvalidExtension = errors.New("incorrect file extension")

	// ErrEmptyInput indicates an empty import file or export list.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidTime indicates an hour or minute outside the accepted range.
	ErrInvalidTime = errors.New("invalid time format")

	// ErrEventNotPassed indicates an attempt to delete an event that has not ended yet.
	ErrEventNotPassed = errors.New("cannot delete events that have not yet passed")
)
