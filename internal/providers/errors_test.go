package providers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Source:     "sheets",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Source: "sheets", Tab: "Worst QB", StatusCode: 404, Body: "missing"}
	got := err.Error()
	if !strings.Contains(got, "404") || !strings.Contains(got, `"Worst QB"`) || !strings.Contains(got, "missing") {
		t.Fatalf("unexpected error string %q", got)
	}

	st, ok := AsStatusError(fmt.Errorf("wrapped: %w", err))
	if !ok || st.StatusCode != 404 {
		t.Fatalf("expected to unwrap status error")
	}
	if _, ok := AsStatusError(errors.New("plain")); ok {
		t.Fatalf("expected plain error not to unwrap")
	}
}
