package events

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Accepted textual date layouts: YYYY-MM-DD and DD-Mon-YYYY (e.g. 10-OCT-2022).
// Month abbreviations are matched case-insensitively.
const (
	layoutISODate   = "2006-1-2"
	layoutMonthDate = "2-Jan-2006"

	// canonicalDate is the normalized date layout.
	canonicalDate = "2006-01-02"
)

// EventIDLength is the exact length of a valid event identifier.
const EventIDLength = 26

// ValidateDateFormat reports whether s parses as YYYY-MM-DD or as DD-Mon-YYYY.
func ValidateDateFormat(s string) bool {
	_, errISO := time.Parse(layoutISODate, s)
	_, errMonth := time.Parse(layoutMonthDate, s)
	return errISO == nil || errMonth == nil
}

// ValidateAddress reports whether the address holds at least two
// whitespace-separated tokens (street number and street name).
func ValidateAddress(address string) bool {
	return len(strings.Fields(address)) > 1
}

// ValidateEmail returns ErrInvalidFormat unless email contains '@' and no whitespace.
func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") || hasSpace(email) {
		return fmt.Errorf("%w: invalid email provided", ErrInvalidFormat)
	}
	return nil
}

// ValidateEventID returns ErrInvalidFormat unless id is exactly
// EventIDLength characters long and contains no whitespace.
func ValidateEventID(id string) error {
	if len(id) != EventIDLength || hasSpace(id) {
		return fmt.Errorf("%w: invalid event ID", ErrInvalidFormat)
	}
	return nil
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// normalizeDate rewrites a DD-Mon-YYYY date to YYYY-MM-DD. Any other input is
// returned verbatim.
func normalizeDate(date string) string {
	t, err := time.Parse(layoutMonthDate, date)
	if err != nil {
		return date
	}
	return t.Format(canonicalDate)
}

// requireAll returns ErrMissingInput if any of the values is empty.
func requireAll(values ...string) error {
	for _, v := range values {
		if v == "" {
			return ErrMissingInput
		}
	}
	return nil
}
