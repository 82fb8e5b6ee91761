package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
	"github.com/preston-bernstein/qb-rankings-service/internal/metrics"
)

const defaultInterval = 2 * time.Minute

// ErrDegraded marks a refresh that fell back instead of yielding sheet data.
var ErrDegraded = errors.New("refresh did not yield sheet data")

// Refresher resolves the current snapshot.
type Refresher interface {
	Refresh(ctx context.Context) rankings.Result
}

// Poller refreshes the rankings on an interval.
type Poller struct {
	refresher Refresher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	LastSource          string    `json:"lastSource,omitempty"`
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(refresher Refresher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		refresher: refresher,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Warm the data on boot.
		p.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) refreshOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	result := p.refresher.Refresh(ctx)

	var err error
	if result.Source != rankings.SourceLive && result.Source != rankings.SourceCache {
		err = fmt.Errorf("%w: served %s", ErrDegraded, result.Source)
	}
	elapsed := p.now().Sub(start)
	p.metrics.RecordPollerCycle(elapsed, err)

	if err != nil {
		logging.Warn(p.logger, "poller refresh degraded",
			slog.String(logging.FieldDataSource, string(result.Source)),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		p.recordFailure(err, start, result.Source)
		return
	}
	p.recordSuccess(start, result.Source)
	count := 0
	if result.Snapshot != nil {
		count = len(result.Snapshot.Rankings)
	}
	logging.Info(p.logger, "poller refreshed rankings",
		slog.String(logging.FieldDataSource, string(result.Source)),
		slog.Int(logging.FieldCount, count),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, source rankings.Source) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastSource = string(source)
}

func (p *Poller) recordFailure(err error, at time.Time, source rankings.Source) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
	p.status.LastSource = string(source)
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
