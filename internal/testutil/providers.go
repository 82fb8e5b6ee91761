package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockTabSource is a testify mock for providers.TabSource.
type MockTabSource struct {
	mock.Mock
}

func (m *MockTabSource) FetchTab(ctx context.Context, tab string) (string, error) {
	args := m.Called(ctx, tab)
	return args.String(0), args.Error(1)
}

// BarrierTabSource holds every call until Expect calls are in flight at once,
// then returns Body. It fails with the context error if that never happens.
type BarrierTabSource struct {
	Body   string
	Expect int

	mu      sync.Mutex
	arrived int
	release chan struct{}
}

func (b *BarrierTabSource) FetchTab(ctx context.Context, tab string) (string, error) {
	_ = tab
	b.mu.Lock()
	if b.release == nil {
		b.release = make(chan struct{})
	}
	b.arrived++
	if b.arrived == b.Expect {
		close(b.release)
	}
	release := b.release
	b.mu.Unlock()

	select {
	case <-release:
		return b.Body, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
