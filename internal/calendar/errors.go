package calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"
)

func apiCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsNotFound reports whether err is a 404 or 410 from the Calendar API.
// Deleted events answer with 410 Gone.
func IsNotFound(err error) bool {
	code := apiCode(err)
	return code == http.StatusNotFound || code == http.StatusGone
}

// IsRateLimited reports whether err signals an exceeded rate limit.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code == http.StatusTooManyRequests {
		return true
	}
	if gerr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range gerr.Errors {
		if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
			return true
		}
	}
	return false
}

// IsUnauthorized reports whether err signals invalid or expired credentials.
func IsUnauthorized(err error) bool {
	return apiCode(err) == http.StatusUnauthorized
}

// retryAfter returns the Retry-After hint carried by err, or 0.
func retryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
