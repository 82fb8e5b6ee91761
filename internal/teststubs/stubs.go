package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
)

// StubRefresher is a test double for poller.Refresher.
type StubRefresher struct {
	mu     sync.Mutex
	result rankings.Result
	Calls  atomic.Int32
	Notify chan struct{}
}

// NewStubRefresher returns a refresher that yields result.
func NewStubRefresher(result rankings.Result) *StubRefresher {
	return &StubRefresher{result: result}
}

// SetResult changes what subsequent refreshes return.
func (s *StubRefresher) SetResult(result rankings.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
}

// Refresh returns the configured result while tracking calls.
func (s *StubRefresher) Refresh(ctx context.Context) rankings.Result {
	_ = ctx
	s.mu.Lock()
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	result := s.result
	s.mu.Unlock()
	s.Calls.Add(1)
	return result
}

// StubTabSource is a test double for providers.TabSource backed by a map of tab bodies.
type StubTabSource struct {
	Tabs  map[string]string
	Err   error
	Calls atomic.Int32
}

// FetchTab returns the configured body for tab, or Err.
func (s *StubTabSource) FetchTab(ctx context.Context, tab string) (string, error) {
	s.Calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Tabs[tab], nil
}
