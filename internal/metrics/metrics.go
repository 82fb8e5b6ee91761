package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls          int
	errors         int
	rateLimitHits  int
	lastRetryAfter time.Duration
	lastLatency    time.Duration
	tabCalls       map[string]int
}

// Recorder captures lightweight, in-memory metrics about tab fetches and
// snapshot refreshes, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*sourceStats
	refreshes map[string]int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*sourceStats),
		refreshes: make(map[string]int),
		otel:      otel,
	}
}

// RecordTabFetch counts one attempt to retrieve a sheet tab from source.
func (r *Recorder) RecordTabFetch(source, tab string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(source)
	stats.calls++
	stats.tabCalls[tab]++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTabFetch(source, tab, duration, err)
	}
}

// RecordRateLimit tracks that source answered with a rate limit.
func (r *Recorder) RecordRateLimit(source string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(source)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(source, retryAfter)
	}
}

// RecordRefresh counts a completed snapshot refresh by where its data came from
// (live, cache, stale, static or placeholder).
func (r *Recorder) RecordRefresh(dataSource string, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.refreshes[dataSource]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRefresh(dataSource, duration)
	}
}

// Snapshot is a copy of the stats recorded for one source.
type Snapshot struct {
	Calls          int
	Errors         int
	RateLimitHits  int
	LastRetryAfter time.Duration
	LastLatency    time.Duration
	TabCalls       map[string]int
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{TabCalls: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{TabCalls: map[string]int{}}
	stats, ok := r.stats[source]
	if !ok {
		return snap
	}
	snap.Calls = stats.calls
	snap.Errors = stats.errors
	snap.RateLimitHits = stats.rateLimitHits
	snap.LastRetryAfter = stats.lastRetryAfter
	snap.LastLatency = stats.lastLatency
	for tab, n := range stats.tabCalls {
		snap.TabCalls[tab] = n
	}
	return snap
}

// TabFetches returns the total attempts recorded for a source.
func (r *Recorder) TabFetches(source string) int {
	return r.Snapshot(source).Calls
}

// TabFetchErrors returns the failed attempts recorded for a source.
func (r *Recorder) TabFetchErrors(source string) int {
	return r.Snapshot(source).Errors
}

// Refreshes returns how many refreshes resolved to dataSource.
func (r *Recorder) Refreshes(dataSource string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes[dataSource]
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ensureStats must be called with mu held.
func (r *Recorder) ensureStats(source string) *sourceStats {
	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{tabCalls: make(map[string]int)}
		r.stats[source] = stats
	}
	return stats
}
