package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is returned by sources that have no sheet to read from.
// It is never retried.
var ErrNotConfigured = errors.New("sheet source not configured")

// StatusError is a non-200 answer from the sheet host.
type StatusError struct {
	Source     string
	Tab        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: tab %q: unexpected status %d", e.Source, e.Tab, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// RateLimitError captures rate limit responses from the sheet host.
type RateLimitError struct {
	Source     string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "sheet source rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var stErr *StatusError
	if errors.As(err, &stErr) {
		return stErr, true
	}
	return nil, false
}
