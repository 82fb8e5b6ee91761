package testutil

import (
	"time"

	"github.com/itbasis/go-clock"
)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MockClockAt returns a mock clock already advanced to at.
func MockClockAt(at time.Time) *clock.Mock {
	m := clock.NewMock()
	m.Add(at.Sub(m.Now()))
	return m
}

// MustParseRFC3339 parses an RFC3339 timestamp or panics.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
