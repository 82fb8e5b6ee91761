package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksTabFetchesAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordTabFetch("sheets", "Rankings", 10*time.Millisecond, nil)
	rec.RecordTabFetch("sheets", "Log", 15*time.Millisecond, errors.New("boom"))
	rec.RecordTabFetch("sheets", "Log", 5*time.Millisecond, nil)

	if got := rec.TabFetches("sheets"); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
	if got := rec.TabFetchErrors("sheets"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("sheets")
	if snap.LastLatency != 5*time.Millisecond {
		t.Fatalf("expected last latency 5ms, got %s", snap.LastLatency)
	}
	if snap.TabCalls["Log"] != 2 || snap.TabCalls["Rankings"] != 1 {
		t.Fatalf("unexpected per-tab calls %+v", snap.TabCalls)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("sheets", 5*time.Second)
	rec.RecordRateLimit("sheets", 0)

	snap := rec.Snapshot("sheets")
	if snap.RateLimitHits != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", snap.RateLimitHits)
	}
	if snap.LastRetryAfter != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", snap.LastRetryAfter)
	}
}

func TestRecorderTracksRefreshSources(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRefresh("live", time.Millisecond)
	rec.RecordRefresh("cache", 0)
	rec.RecordRefresh("cache", 0)

	if got := rec.Refreshes("cache"); got != 2 {
		t.Fatalf("expected 2 cache refreshes, got %d", got)
	}
	if got := rec.Refreshes("stale"); got != 0 {
		t.Fatalf("expected no stale refreshes, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordTabFetch("sheets", "Rankings", time.Millisecond, nil)
	rec.RecordRefresh("live", time.Millisecond)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	if rec.TabFetches("sheets") != 0 || rec.Refreshes("live") != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
}
