package rankings

import "time"

// Snapshot is the complete data contract handed to the presentation layer.
// A snapshot is rebuilt wholesale on each fetch and never mutated afterwards.
type Snapshot struct {
	CurrentWeekLabel string                    `json:"CURRENT_WEEK_LABEL"`
	CurrentDate      string                    `json:"CURRENT_DATE"`
	Rankings         []Entry                   `json:"RANKINGS"`
	Dropped          []DroppedEntry            `json:"DROPPED"`
	Worst            WorstRecord               `json:"WORST"`
	PlayerHistory    map[string][]HistoryPoint `json:"PLAYER_HISTORY"`
	ArchiveWeeks     []ArchiveWeek             `json:"ARCHIVE_WEEKS"`
}

// Source says where the snapshot behind a Result came from.
type Source string

const (
	// SourceLive is a snapshot built from a retrieval that just completed.
	SourceLive Source = "live"
	// SourceCache is a snapshot served from the cache while still fresh.
	SourceCache Source = "cache"
	// SourceStale is the last good snapshot served after a failed retrieval.
	SourceStale Source = "stale"
	// SourceStatic is the bundled dataset.
	SourceStatic Source = "static"
	// SourcePlaceholder is the loading snapshot used when nothing else exists.
	SourcePlaceholder Source = "placeholder"
)

// Result pairs a snapshot with its provenance.
type Result struct {
	Snapshot  *Snapshot
	Source    Source
	FetchedAt time.Time
}

// PlaceholderSnapshot returns the renderable "Loading..." snapshot.
func PlaceholderSnapshot() *Snapshot {
	return &Snapshot{
		CurrentWeekLabel: "Loading...",
		CurrentDate:      "",
		Rankings:         []Entry{},
		Dropped:          []DroppedEntry{},
		Worst: WorstRecord{
			Name:       "TBD",
			Team:       UnknownTeam,
			Commentary: "Loading...",
			Slug:       "tbd",
		},
		PlayerHistory: map[string][]HistoryPoint{},
		ArchiveWeeks:  []ArchiveWeek{},
	}
}

// Normalize replaces nil collections with empty ones so every field encodes.
func (s *Snapshot) Normalize() *Snapshot {
	if s == nil {
		return nil
	}
	if s.Rankings == nil {
		s.Rankings = []Entry{}
	}
	if s.Dropped == nil {
		s.Dropped = []DroppedEntry{}
	}
	if s.PlayerHistory == nil {
		s.PlayerHistory = map[string][]HistoryPoint{}
	}
	if s.ArchiveWeeks == nil {
		s.ArchiveWeeks = []ArchiveWeek{}
	}
	for i := range s.ArchiveWeeks {
		if s.ArchiveWeeks[i].Top3 == nil {
			s.ArchiveWeeks[i].Top3 = []string{}
		}
	}
	return s
}

// HasRankings reports whether the snapshot carries any ranked entries.
func (s *Snapshot) HasRankings() bool {
	return s != nil && len(s.Rankings) > 0
}

// EntryBySlug finds a ranked quarterback.
func (s *Snapshot) EntryBySlug(slug string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	for _, e := range s.Rankings {
		if e.Slug == slug {
			return e, true
		}
	}
	return Entry{}, false
}

// ArchiveWeekByID finds an archived week.
func (s *Snapshot) ArchiveWeekByID(id string) (ArchiveWeek, bool) {
	if s == nil {
		return ArchiveWeek{}, false
	}
	for _, w := range s.ArchiveWeeks {
		if w.ID == id {
			return w, true
		}
	}
	return ArchiveWeek{}, false
}
