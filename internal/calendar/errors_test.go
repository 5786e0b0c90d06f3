package calendar

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		notFound     bool
		rateLimited  bool
		unauthorized bool
	}{
		{"plain error", errors.New("boom"), false, false, false},
		{"404", &googleapi.Error{Code: http.StatusNotFound}, true, false, false},
		{"410", &googleapi.Error{Code: http.StatusGone}, true, false, false},
		{"429", &googleapi.Error{Code: http.StatusTooManyRequests}, false, true, false},
		{"403 rate limit", &googleapi.Error{Code: http.StatusForbidden, Errors: []googleapi.ErrorItem{{Reason: "rateLimitExceeded"}}}, false, true, false},
		{"403 forbidden", &googleapi.Error{Code: http.StatusForbidden, Errors: []googleapi.ErrorItem{{Reason: "forbidden"}}}, false, false, false},
		{"401 wrapped", fmt.Errorf("failed to get event: %w", &googleapi.Error{Code: http.StatusUnauthorized}), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.rateLimited, IsRateLimited(tt.err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err))
		})
	}
}

func TestRetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "7")
	assert.Equal(t, 7*time.Second, retryAfter(&googleapi.Error{Code: 429, Header: h}))
	assert.Zero(t, retryAfter(&googleapi.Error{Code: 429}))
	assert.Zero(t, retryAfter(errors.New("boom")))
}
