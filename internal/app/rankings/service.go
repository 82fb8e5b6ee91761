package rankings

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainrankings "github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
)

// Fetcher produces snapshots from the configured sheet.
type Fetcher interface {
	FetchAll(ctx context.Context) domainrankings.Result
	Invalidate()
}

// State is the availability of the service's data.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
)

// Config wires a Service.
type Config struct {
	Fetcher    Fetcher
	Static     *domainrankings.Snapshot
	Configured bool
	Logger     *slog.Logger
	Now        func() time.Time
}

// Service decides which snapshot is presented: live sheet data when it is
// usable, the last non-empty snapshot otherwise, and the static dataset as
// the floor. Current never returns an unrenderable value.
type Service struct {
	fetcher    Fetcher
	static     *domainrankings.Snapshot
	configured bool
	logger     *slog.Logger
	now        func() time.Time

	refreshMu        sync.Mutex
	unconfiguredOnce sync.Once

	mu       sync.RWMutex
	state    State
	current  domainrankings.Result
	lastGood domainrankings.Result
}

// NewService constructs a Service. A nil static snapshot is replaced by the placeholder.
func NewService(cfg Config) *Service {
	static := cfg.Static
	if static == nil {
		static = domainrankings.PlaceholderSnapshot()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		fetcher:    cfg.Fetcher,
		static:     static.Normalize(),
		configured: cfg.Configured && cfg.Fetcher != nil,
		logger:     cfg.Logger,
		now:        now,
		state:      StateUninitialized,
	}
}

// Refresh resolves a new current snapshot and returns it.
func (s *Service) Refresh(ctx context.Context) domainrankings.Result {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.mu.Lock()
	if s.state == StateUninitialized {
		s.state = StateLoading
	}
	s.mu.Unlock()

	result := s.resolve(ctx)

	s.mu.Lock()
	s.current = result
	s.state = StateReady
	s.mu.Unlock()
	return result
}

// ForceRefresh drops the cached snapshot before refreshing.
func (s *Service) ForceRefresh(ctx context.Context) domainrankings.Result {
	if s.configured {
		s.fetcher.Invalidate()
	}
	return s.Refresh(ctx)
}

func (s *Service) resolve(ctx context.Context) domainrankings.Result {
	logger := logging.FromContext(ctx, s.logger)
	if !s.configured {
		s.unconfiguredOnce.Do(func() {
			logging.Info(logger, "sheet not configured, serving static dataset")
		})
		return s.staticResult()
	}

	result := s.fetcher.FetchAll(ctx)
	if result.Snapshot.HasRankings() {
		s.mu.Lock()
		s.lastGood = result
		s.mu.Unlock()
		return result
	}

	s.mu.RLock()
	lastGood := s.lastGood
	s.mu.RUnlock()
	if lastGood.Snapshot != nil {
		logging.Warn(logger, "sheet returned no rankings, keeping previous snapshot",
			slog.String(logging.FieldSource, string(result.Source)),
		)
		return domainrankings.Result{
			Snapshot:  lastGood.Snapshot,
			Source:    domainrankings.SourceStale,
			FetchedAt: lastGood.FetchedAt,
		}
	}
	logging.Warn(logger, "sheet returned no rankings, serving static dataset",
		slog.String(logging.FieldSource, string(result.Source)),
	)
	return s.staticResult()
}

func (s *Service) staticResult() domainrankings.Result {
	return domainrankings.Result{
		Snapshot:  s.static,
		Source:    domainrankings.SourceStatic,
		FetchedAt: s.now(),
	}
}

// Current returns the presented snapshot. Before the first refresh completes
// this is the static dataset.
func (s *Service) Current() domainrankings.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return domainrankings.Result{Snapshot: s.static, Source: domainrankings.SourceStatic}
	}
	return s.current
}

// State reports the availability state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Ready reports whether at least one refresh has completed.
func (s *Service) Ready() bool {
	return s.State() == StateReady
}

// Configured reports whether the service reads from a sheet.
func (s *Service) Configured() bool {
	return s.configured
}

// Rankings returns the current top ten in rank order.
func (s *Service) Rankings() []domainrankings.Entry {
	return s.Current().Snapshot.Rankings
}

// Dropped returns quarterbacks who fell out of the list this week.
func (s *Service) Dropped() []domainrankings.DroppedEntry {
	return s.Current().Snapshot.Dropped
}

// Worst returns the worst quarterback of the week.
func (s *Service) Worst() domainrankings.WorstRecord {
	return s.Current().Snapshot.Worst
}

// ArchiveWeeks returns past weeks, newest first.
func (s *Service) ArchiveWeeks() []domainrankings.ArchiveWeek {
	return s.Current().Snapshot.ArchiveWeeks
}

// ArchiveWeek finds a past week by id.
func (s *Service) ArchiveWeek(id string) (domainrankings.ArchiveWeek, bool) {
	return s.Current().Snapshot.ArchiveWeekByID(id)
}

// Player is a quarterback's current entry, if ranked, and rank history.
type Player struct {
	Slug    string                        `json:"slug"`
	Entry   *domainrankings.Entry         `json:"entry,omitempty"`
	History []domainrankings.HistoryPoint `json:"history"`
}

// Player looks up a quarterback who is ranked now or has any history.
func (s *Service) Player(slug string) (Player, bool) {
	snap := s.Current().Snapshot
	history, hasHistory := snap.PlayerHistory[slug]
	entry, ranked := snap.EntryBySlug(slug)
	if !hasHistory && !ranked {
		return Player{}, false
	}
	p := Player{Slug: slug, History: history}
	if p.History == nil {
		p.History = []domainrankings.HistoryPoint{}
	}
	if ranked {
		p.Entry = &entry
	}
	return p, true
}
