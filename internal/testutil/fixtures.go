package testutil

import "github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"

// SampleEntry returns a ranked entry with a derived slug-like id.
func SampleEntry(rank int, name, slug string) rankings.Entry {
	return rankings.Entry{
		Rank:       rank,
		Name:       name,
		Team:       rankings.TeamBAL,
		Commentary: name + " is ranked this week.",
		Movement:   rankings.Movement{Dir: rankings.DirectionSame},
		Slug:       slug,
	}
}

// SampleSnapshot builds a small, fully populated snapshot.
func SampleSnapshot() *rankings.Snapshot {
	return &rankings.Snapshot{
		CurrentWeekLabel: "Week 2",
		CurrentDate:      "Sep 17",
		Rankings: []rankings.Entry{
			SampleEntry(1, "Lamar Jackson", "lamar-jackson"),
			SampleEntry(2, "Josh Allen", "josh-allen"),
		},
		Dropped: []rankings.DroppedEntry{{Name: "Tua Tagovailoa", Prev: 9, Slug: "tua-tagovailoa"}},
		Worst: rankings.WorstRecord{
			Name:       "Bryce Young",
			Team:       rankings.TeamCAR,
			Commentary: "Bryce Young is the worst QB of the week.",
			Slug:       "bryce-young",
		},
		PlayerHistory: map[string][]rankings.HistoryPoint{
			"lamar-jackson": {{Week: "W1", Rank: 2}, {Week: "W2", Rank: 1}},
		},
		ArchiveWeeks: []rankings.ArchiveWeek{
			{ID: "week-2-sep-17", Label: "Week 2", Date: "Sep 17", Top3: []string{"Jackson", "Allen"}},
		},
	}
}

// SampleResult wraps SampleSnapshot with the given source.
func SampleResult(source rankings.Source) rankings.Result {
	return rankings.Result{Snapshot: SampleSnapshot(), Source: source}
}
