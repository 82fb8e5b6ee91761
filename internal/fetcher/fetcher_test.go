package fetcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
	"github.com/preston-bernstein/qb-rankings-service/internal/metrics"
	"github.com/preston-bernstein/qb-rankings-service/internal/providers"
	"github.com/preston-bernstein/qb-rankings-service/internal/store"
	"github.com/preston-bernstein/qb-rankings-service/internal/testutil"
)

const (
	rankingsCSV = "Week Label,Week 2\nDate,Sep 17\nRank,Name,Team\n2,Josh Allen,BUF\n1,Patrick Mahomes,KC\n"
	droppedCSV  = "Name,Prev\nTua Tagovailoa,9\n"
	worstCSV    = "Name,Team,Commentary\nBryce Young,CAR,\n"
	logCSV      = "Week Label,Date,Rank,Name\nWeek 2,Sep 17,1,Patrick Mahomes\nWeek 2,Sep 17,2,Josh Allen\nWeek 1,Sep 10,1,Josh Allen\n"
)

func newFetcher(src providers.TabSource) (*Fetcher, *clock.Mock, *metrics.Recorder) {
	mockClock := testutil.MockClockAt(testutil.MustParseRFC3339("2025-09-17T12:00:00Z"))
	rec := metrics.NewRecorder()
	f := New(Config{
		Source:  src,
		Cache:   store.NewSnapshotCache(mockClock),
		Metrics: rec,
	})
	return f, mockClock, rec
}

func goodSource() *testutil.MockTabSource {
	src := &testutil.MockTabSource{}
	src.On("FetchTab", mock.Anything, "Rankings").Return(rankingsCSV, nil)
	src.On("FetchTab", mock.Anything, "Dropped Out").Return(droppedCSV, nil)
	src.On("FetchTab", mock.Anything, "Worst QB").Return(worstCSV, nil)
	src.On("FetchTab", mock.Anything, "Log").Return(logCSV, nil)
	return src
}

func TestFetchAllBuildsLiveSnapshot(t *testing.T) {
	src := goodSource()
	f, _, rec := newFetcher(src)

	result := f.FetchAll(context.Background())

	require.Equal(t, rankings.SourceLive, result.Source)
	snap := result.Snapshot
	require.NotNil(t, snap)
	assert.Equal(t, "Week 2", snap.CurrentWeekLabel)
	assert.Equal(t, "Sep 17", snap.CurrentDate)
	require.Len(t, snap.Rankings, 2)
	assert.Equal(t, "patrick-mahomes", snap.Rankings[0].Slug)
	assert.Equal(t, []rankings.DroppedEntry{{Name: "Tua Tagovailoa", Prev: 9, Slug: "tua-tagovailoa"}}, snap.Dropped)
	assert.Equal(t, "Bryce Young is the worst QB of the week.", snap.Worst.Commentary)
	assert.Equal(t, []rankings.HistoryPoint{{Week: "W1", Rank: 1}, {Week: "W2", Rank: 2}}, snap.PlayerHistory["josh-allen"])
	require.Len(t, snap.ArchiveWeeks, 2)
	assert.Equal(t, "week-2-sep-17", snap.ArchiveWeeks[0].ID)

	src.AssertNumberOfCalls(t, "FetchTab", 4)
	assert.Equal(t, 1, rec.Refreshes(string(rankings.SourceLive)))
}

func TestFetchAllServesIdenticalSnapshotWhileFresh(t *testing.T) {
	src := goodSource()
	f, mockClock, _ := newFetcher(src)

	first := f.FetchAll(context.Background())
	mockClock.Add(59 * time.Second)
	second := f.FetchAll(context.Background())

	assert.Equal(t, rankings.SourceCache, second.Source)
	assert.Same(t, first.Snapshot, second.Snapshot)
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
	src.AssertNumberOfCalls(t, "FetchTab", 4)
}

func TestFetchAllRefetchesAfterTTL(t *testing.T) {
	src := goodSource()
	f, mockClock, _ := newFetcher(src)

	first := f.FetchAll(context.Background())
	mockClock.Add(61 * time.Second)
	second := f.FetchAll(context.Background())

	assert.Equal(t, rankings.SourceLive, second.Source)
	assert.NotSame(t, first.Snapshot, second.Snapshot)
	src.AssertNumberOfCalls(t, "FetchTab", 8)
}

func TestFetchAllFallsBackToPlaceholderWithoutCache(t *testing.T) {
	src := &testutil.MockTabSource{}
	src.On("FetchTab", mock.Anything, mock.Anything).Return("", errors.New("network down"))
	f, _, rec := newFetcher(src)

	result := f.FetchAll(context.Background())

	require.Equal(t, rankings.SourcePlaceholder, result.Source)
	require.NotNil(t, result.Snapshot)
	assert.Empty(t, result.Snapshot.Rankings)
	assert.NotNil(t, result.Snapshot.Rankings)
	assert.Equal(t, "Loading...", result.Snapshot.CurrentWeekLabel)
	assert.Equal(t, "TBD", result.Snapshot.Worst.Name)
	assert.Equal(t, rankings.UnknownTeam, result.Snapshot.Worst.Team)
	assert.Equal(t, "Loading...", result.Snapshot.Worst.Commentary)
	assert.Equal(t, 1, rec.Refreshes(string(rankings.SourcePlaceholder)))
}

func TestFetchAllFallsBackToStaleSnapshot(t *testing.T) {
	src := &testutil.MockTabSource{}
	f, mockClock, _ := newFetcher(src)

	src.On("FetchTab", mock.Anything, "Rankings").Return(rankingsCSV, nil).Once()
	src.On("FetchTab", mock.Anything, "Dropped Out").Return(droppedCSV, nil).Once()
	src.On("FetchTab", mock.Anything, "Worst QB").Return(worstCSV, nil).Once()
	src.On("FetchTab", mock.Anything, "Log").Return(logCSV, nil).Once()
	first := f.FetchAll(context.Background())
	require.Equal(t, rankings.SourceLive, first.Source)

	src.On("FetchTab", mock.Anything, mock.Anything).Return("", errors.New("quota"))
	mockClock.Add(2 * time.Minute)
	second := f.FetchAll(context.Background())

	assert.Equal(t, rankings.SourceStale, second.Source)
	assert.Same(t, first.Snapshot, second.Snapshot)
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
}

func TestFetchAllSingleTabFailureDiscardsOthers(t *testing.T) {
	src := &testutil.MockTabSource{}
	src.On("FetchTab", mock.Anything, "Log").Return("", errors.New("log tab missing"))
	src.On("FetchTab", mock.Anything, mock.Anything).Return("Rank,Name\n1,Lamar Jackson\n", nil)
	f, _, _ := newFetcher(src)

	result := f.FetchAll(context.Background())

	assert.Equal(t, rankings.SourcePlaceholder, result.Source)
	if _, _, ok := f.cache.Get(); ok {
		t.Fatalf("expected nothing cached after a partial failure")
	}
}

func TestFetchAllStartsAllTabsBeforeWaiting(t *testing.T) {
	src := &testutil.BarrierTabSource{Body: "Rank,Name\n1,Lamar Jackson\n", Expect: 4}
	f, _, _ := newFetcher(src)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result := f.FetchAll(ctx)

	assert.Equal(t, rankings.SourceLive, result.Source)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	src := goodSource()
	f, _, _ := newFetcher(src)

	f.FetchAll(context.Background())
	f.Invalidate()
	result := f.FetchAll(context.Background())

	assert.Equal(t, rankings.SourceLive, result.Source)
	src.AssertNumberOfCalls(t, "FetchTab", 8)
}

func TestConcurrentFetchAllSharesRetrieval(t *testing.T) {
	src := goodSource()
	f, _, _ := newFetcher(src)

	var wg sync.WaitGroup
	results := make([]rankings.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.FetchAll(context.Background())
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0].Snapshot, r.Snapshot)
	}
	src.AssertNumberOfCalls(t, "FetchTab", 4)
}

func TestNewAppliesDefaults(t *testing.T) {
	f := New(Config{Source: goodSource()})
	assert.Equal(t, DefaultTTL, f.ttl)
	assert.Equal(t, providers.DefaultTabs(), f.tabs)
	assert.NotNil(t, f.cache)
}
