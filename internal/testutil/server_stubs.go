package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/preston-bernstein/qb-rankings-service/internal/poller"
)

// StubPoller implements the server's Poller for tests.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(ctx context.Context) {
	_ = ctx
	p.StartCalls++
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

// StubHTTPServer implements the server's httpServer for tests.
// ListenAndServe returns ListenErr, or http.ErrServerClosed when unset.
// With BlockShutdown, Shutdown waits for its context to expire.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenErr     error
	ShutdownErr   error
	BlockShutdown bool

	mu            sync.Mutex
	listenCalls   int
	shutdownCalls int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listenCalls++
	s.mu.Unlock()
	if s.ListenErr != nil {
		return s.ListenErr
	}
	return http.ErrServerClosed
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdownCalls++
	s.mu.Unlock()
	if s.BlockShutdown {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// ListenCalls reports how often ListenAndServe ran.
func (s *StubHTTPServer) ListenCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenCalls
}

// ShutdownCalls reports how often Shutdown ran.
func (s *StubHTTPServer) ShutdownCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdownCalls
}
