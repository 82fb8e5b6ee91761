package ingest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
)

// LogEntry is one accepted row of the running log.
type LogEntry struct {
	WeekLabel string
	Date      string
	Rank      int
	Name      string
	Slug      string
}

// LogViews holds both views derived from the log. Weeks lists the distinct
// week labels oldest first, the order the history points follow. Archive
// weeks keep the sheet order, newest first.
type LogViews struct {
	PlayerHistory map[string][]rankings.HistoryPoint
	ArchiveWeeks  []rankings.ArchiveWeek
	Weeks         ChronologicalWeeks
	Report        Report
}

// ChronologicalWeeks is a list of full week labels, oldest first.
type ChronologicalWeeks []string

// TransformLog derives player history and archive weeks from the log tab.
//
// The tab has a header row, then week label, date, rank and name columns,
// newest week first. Rows missing a week label or name, or with a rank below
// 1, are dropped. When a player appears twice in one week the later row wins
// in history while both stay in the archive group.
func TransformLog(rows [][]string) LogViews {
	entries, report := logEntries(rows)

	// First-seen order is newest first; charts read oldest first.
	newestFirst := distinctWeeks(entries)
	weeks := make(ChronologicalWeeks, len(newestFirst))
	for i, w := range newestFirst {
		weeks[len(newestFirst)-1-i] = w
	}

	return LogViews{
		PlayerHistory: playerHistory(entries, weeks),
		ArchiveWeeks:  archiveWeeks(entries, newestFirst),
		Weeks:         weeks,
		Report:        report,
	}
}

func logEntries(rows [][]string) ([]LogEntry, Report) {
	var report Report
	entries := make([]LogEntry, 0, len(rows))
	for _, row := range skipHeader(rows) {
		report.Rows++
		if len(row) < 4 {
			report.Skipped++
			continue
		}
		week := cell(row, 0)
		name := CleanName(row[3])
		rank, ok := leadingInt(cell(row, 2))
		if week == "" || name == "" || !ok || rank < 1 {
			report.Skipped++
			continue
		}
		entries = append(entries, LogEntry{
			WeekLabel: week,
			Date:      cell(row, 1),
			Rank:      rank,
			Name:      name,
			Slug:      Slug(name),
		})
	}
	return entries, report
}

func distinctWeeks(entries []LogEntry) []string {
	seen := make(map[string]bool)
	var weeks []string
	for _, e := range entries {
		if !seen[e.WeekLabel] {
			seen[e.WeekLabel] = true
			weeks = append(weeks, e.WeekLabel)
		}
	}
	return weeks
}

func playerHistory(entries []LogEntry, weeks ChronologicalWeeks) map[string][]rankings.HistoryPoint {
	ranks := make(map[string]map[string]int)
	for _, e := range entries {
		byWeek, ok := ranks[e.Slug]
		if !ok {
			byWeek = make(map[string]int)
			ranks[e.Slug] = byWeek
		}
		byWeek[e.WeekLabel] = e.Rank
	}

	history := make(map[string][]rankings.HistoryPoint, len(ranks))
	for slug, byWeek := range ranks {
		points := make([]rankings.HistoryPoint, 0, len(byWeek))
		for _, w := range weeks {
			if rank, ok := byWeek[w]; ok {
				points = append(points, rankings.HistoryPoint{Week: ShortWeekLabel(w), Rank: rank})
			}
		}
		history[slug] = points
	}
	return history
}

func archiveWeeks(entries []LogEntry, newestFirst []string) []rankings.ArchiveWeek {
	groups := make(map[string][]LogEntry, len(newestFirst))
	for _, e := range entries {
		groups[e.WeekLabel] = append(groups[e.WeekLabel], e)
	}

	archive := make([]rankings.ArchiveWeek, 0, len(newestFirst))
	for _, label := range newestFirst {
		group := groups[label]
		sorted := make([]LogEntry, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

		top3 := make([]string, 0, 3)
		for _, e := range sorted {
			if len(top3) == 3 {
				break
			}
			top3 = append(top3, lastName(e.Name))
		}

		date := group[0].Date
		archive = append(archive, rankings.ArchiveWeek{
			ID:    WeekID(label, date),
			Label: label,
			Date:  date,
			Top3:  top3,
		})
	}
	return archive
}

func lastName(name string) string {
	if i := strings.LastIndex(name, " "); i >= 0 {
		return name[i+1:]
	}
	return name
}

// ShortWeekLabel abbreviates a week label for chart axes: "Week 3 · Oct 1"
// becomes "W3", "Offseason" becomes "Off", "Preseason" becomes "Pre". Other
// labels keep their first four characters and an empty label becomes "?".
func ShortWeekLabel(label string) string {
	if label == "" {
		return "?"
	}
	l := strings.TrimSpace(strings.ToLower(label))
	switch {
	case strings.HasPrefix(l, "week "):
		rest, _, _ := strings.Cut(strings.TrimPrefix(l, "week "), "·")
		return "W" + strings.TrimSpace(rest)
	case strings.HasPrefix(l, "offseason"):
		return "Off"
	case strings.HasPrefix(l, "pre"):
		return "Pre"
	}
	runes := []rune(label)
	if len(runes) > 4 {
		runes = runes[:4]
	}
	return string(runes)
}

var nonIDChars = regexp.MustCompile(`[^a-z0-9]+`)

// WeekID builds the archive identifier from a week label and optional date,
// e.g. "Week 6" and "Oct 15, 2026" give "week-6-oct-15-2026".
func WeekID(label, date string) string {
	id := idPart(label)
	if date != "" {
		id += "-" + idPart(date)
	}
	return id
}

func idPart(s string) string {
	return strings.Trim(nonIDChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
