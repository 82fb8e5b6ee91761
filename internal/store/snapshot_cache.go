package store

import (
	"sync"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
)

// SnapshotCache is a single-slot, thread-safe cache for the latest good snapshot.
// Entries are never evicted; freshness is judged against the injected clock.
type SnapshotCache struct {
	clock clock.Clock

	mu       sync.RWMutex
	snapshot *rankings.Snapshot
	storedAt time.Time
	stale    bool
}

// NewSnapshotCache constructs an empty cache. A nil clock uses the wall clock.
func NewSnapshotCache(c clock.Clock) *SnapshotCache {
	if c == nil {
		c = clock.New()
	}
	return &SnapshotCache{clock: c}
}

// Set replaces the cached snapshot and stamps it with the current time.
func (c *SnapshotCache) Set(snap *rankings.Snapshot) time.Time {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snap
	c.storedAt = now
	c.stale = false
	return now
}

// Get returns the cached snapshot, if any, and when it was stored.
func (c *SnapshotCache) Get() (*rankings.Snapshot, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, c.storedAt, c.snapshot != nil
}

// Fresh returns the cached snapshot only if it is younger than ttl.
func (c *SnapshotCache) Fresh(ttl time.Duration) (*rankings.Snapshot, time.Time, bool) {
	now := c.clock.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || c.stale || now.Sub(c.storedAt) >= ttl {
		return nil, time.Time{}, false
	}
	return c.snapshot, c.storedAt, true
}

// Invalidate marks the cached snapshot stale so the next Fresh misses.
// The snapshot itself is kept as a fallback.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
}

// Now exposes the cache clock so callers stamp results consistently.
func (c *SnapshotCache) Now() time.Time {
	return c.clock.Now()
}
