package fetcher

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
	"github.com/preston-bernstein/qb-rankings-service/internal/ingest"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
	"github.com/preston-bernstein/qb-rankings-service/internal/metrics"
	"github.com/preston-bernstein/qb-rankings-service/internal/providers"
	"github.com/preston-bernstein/qb-rankings-service/internal/store"
)

const (
	// DefaultTTL is how long a retrieved snapshot is served without refetching.
	DefaultTTL = 60 * time.Second
	flightKey  = "snapshot"
)

// Config wires a Fetcher.
type Config struct {
	Source  providers.TabSource
	Cache   *store.SnapshotCache
	Tabs    providers.Tabs
	TTL     time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Fetcher retrieves the four sheet tabs, builds a snapshot and caches it.
type Fetcher struct {
	source  providers.TabSource
	cache   *store.SnapshotCache
	tabs    providers.Tabs
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Recorder
	group   singleflight.Group
}

// New constructs a Fetcher, filling in default tabs, TTL and cache.
func New(cfg Config) *Fetcher {
	if cfg.Tabs == (providers.Tabs{}) {
		cfg.Tabs = providers.DefaultTabs()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Cache == nil {
		cfg.Cache = store.NewSnapshotCache(nil)
	}
	return &Fetcher{
		source:  cfg.Source,
		cache:   cfg.Cache,
		tabs:    cfg.Tabs,
		ttl:     cfg.TTL,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// FetchAll returns the current snapshot. It never fails: a fresh cached
// snapshot is returned as is; otherwise all tabs are retrieved concurrently
// and, if any retrieval fails, the last good snapshot or the placeholder is
// returned instead. Concurrent callers share one retrieval.
func (f *Fetcher) FetchAll(ctx context.Context) rankings.Result {
	start := time.Now()
	if snap, at, ok := f.cache.Fresh(f.ttl); ok {
		f.metrics.RecordRefresh(string(rankings.SourceCache), time.Since(start))
		return rankings.Result{Snapshot: snap, Source: rankings.SourceCache, FetchedAt: at}
	}

	v, _, _ := f.group.Do(flightKey, func() (any, error) {
		return f.refresh(ctx), nil
	})
	result := v.(rankings.Result)
	f.metrics.RecordRefresh(string(result.Source), time.Since(start))
	return result
}

// Invalidate forces the next FetchAll to retrieve the sheet again.
func (f *Fetcher) Invalidate() {
	f.cache.Invalidate()
}

func (f *Fetcher) refresh(ctx context.Context) rankings.Result {
	logger := logging.FromContext(ctx, f.logger)

	// Another caller may have filled the cache while this one waited.
	if snap, at, ok := f.cache.Fresh(f.ttl); ok {
		return rankings.Result{Snapshot: snap, Source: rankings.SourceCache, FetchedAt: at}
	}

	tabs, err := f.fetchTabs(ctx)
	if err != nil {
		return f.fallback(logger, err)
	}

	snap := f.build(logger, tabs)
	at := f.cache.Set(snap)
	logging.Info(logger, "snapshot refreshed",
		slog.Int(logging.FieldCount, len(snap.Rankings)),
		slog.String(logging.FieldDataSource, string(rankings.SourceLive)),
	)
	return rankings.Result{Snapshot: snap, Source: rankings.SourceLive, FetchedAt: at}
}

type tabTexts struct {
	rankings, dropped, worst, log string
}

// fetchTabs starts every retrieval before waiting on any of them.
func (f *Fetcher) fetchTabs(ctx context.Context) (tabTexts, error) {
	var out tabTexts
	g, gctx := errgroup.WithContext(ctx)
	targets := []struct {
		tab string
		dst *string
	}{
		{f.tabs.Rankings, &out.rankings},
		{f.tabs.Dropped, &out.dropped},
		{f.tabs.Worst, &out.worst},
		{f.tabs.Log, &out.log},
	}
	for _, t := range targets {
		g.Go(func() error {
			text, err := f.source.FetchTab(gctx, t.tab)
			if err != nil {
				return err
			}
			*t.dst = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tabTexts{}, err
	}
	return out, nil
}

func (f *Fetcher) build(logger *slog.Logger, tabs tabTexts) *rankings.Snapshot {
	table := ingest.TransformRankings(ingest.ParseCSV(tabs.rankings))
	dropped, droppedReport := ingest.TransformDropped(ingest.ParseCSV(tabs.dropped))
	worst, worstReport := ingest.TransformWorst(ingest.ParseCSV(tabs.worst))
	views := ingest.TransformLog(ingest.ParseCSV(tabs.log))

	logReport(logger, f.tabs.Rankings, table.Report)
	logReport(logger, f.tabs.Dropped, droppedReport)
	logReport(logger, f.tabs.Worst, worstReport)
	logReport(logger, f.tabs.Log, views.Report)

	return (&rankings.Snapshot{
		CurrentWeekLabel: table.WeekLabel,
		CurrentDate:      table.CurrentDate,
		Rankings:         table.Entries,
		Dropped:          dropped,
		Worst:            worst,
		PlayerHistory:    views.PlayerHistory,
		ArchiveWeeks:     views.ArchiveWeeks,
	}).Normalize()
}

func (f *Fetcher) fallback(logger *slog.Logger, err error) rankings.Result {
	if snap, at, ok := f.cache.Get(); ok {
		logging.Error(logger, "sheet fetch failed, serving last good snapshot", err,
			slog.String(logging.FieldDataSource, string(rankings.SourceStale)),
		)
		return rankings.Result{Snapshot: snap, Source: rankings.SourceStale, FetchedAt: at}
	}
	logging.Error(logger, "sheet fetch failed, serving placeholder", err,
		slog.String(logging.FieldDataSource, string(rankings.SourcePlaceholder)),
	)
	return rankings.Result{
		Snapshot:  rankings.PlaceholderSnapshot(),
		Source:    rankings.SourcePlaceholder,
		FetchedAt: f.cache.Now(),
	}
}

func logReport(logger *slog.Logger, tab string, r ingest.Report) {
	if r.Skipped == 0 && r.Defaulted == 0 {
		return
	}
	logging.Debug(logger, "sheet rows cleaned",
		slog.String(logging.FieldTab, tab),
		slog.Int(logging.FieldCount, r.Rows),
		slog.Int(logging.FieldSkipped, r.Skipped),
		slog.Int(logging.FieldDefaulted, r.Defaulted),
	)
}
