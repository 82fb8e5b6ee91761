package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
)

const defaultWeekLabel = "Rankings"

// Report counts what a transformer did with its input rows.
type Report struct {
	Rows      int
	Skipped   int
	Defaulted int
}

func (r *Report) countDefaults(defaulted ...bool) {
	for _, d := range defaulted {
		if d {
			r.Defaulted++
		}
	}
}

// RankingsTable is the rankings tab after transformation.
type RankingsTable struct {
	WeekLabel   string
	CurrentDate string
	Entries     []rankings.Entry
	Report      Report
}

// TransformRankings reads the weekly top ten.
//
// Metadata rows ("Week Label", "Date") may precede a header row whose first
// cell is "rank", "rank:" or "#". Without a header, data starts at the first
// row ranked 1-10. Data columns are rank, name, team, commentary, direction,
// spots and badge. Rows lacking a name or a rank in 1-10 are skipped, as is
// any later row repeating an already used rank.
func TransformRankings(rows [][]string) RankingsTable {
	table := RankingsTable{WeekLabel: defaultWeekLabel, Entries: []rankings.Entry{}}

	start := -1
	for i, row := range rows {
		first := strings.ToLower(cell(row, 0))
		if strings.Contains(first, "week label") {
			if label := cell(row, 1); label != "" {
				table.WeekLabel = label
			}
		}
		if first == "date" || first == "date:" {
			table.CurrentDate = cell(row, 1)
		}
		if first == "rank" || first == "rank:" || first == "#" {
			start = i + 1
			break
		}
	}
	if start < 0 {
		start = 0
		for i, row := range rows {
			if n, ok := leadingInt(cell(row, 0)); ok && validRank(n) {
				start = i
				break
			}
		}
	}

	used := make(map[int]bool, rankings.MaxRank)
	for _, row := range rows[start:] {
		table.Report.Rows++
		if len(row) < 2 {
			table.Report.Skipped++
			continue
		}
		name := CleanName(row[1])
		rank, ok := leadingInt(cell(row, 0))
		if name == "" || !ok || !validRank(rank) || used[rank] {
			table.Report.Skipped++
			continue
		}
		used[rank] = true

		team := CleanTeam(cell(row, 2))
		dir := CleanMovement(cell(row, 4))
		spots := CleanSpots(cell(row, 5))
		badge := CleanBadge(cell(row, 6))
		table.Report.countDefaults(team.Defaulted, dir.Defaulted, spots.Defaulted, badge.Defaulted)

		commentary := cell(row, 3)
		if commentary == "" {
			commentary = fmt.Sprintf("%s is ranked #%d this week.", name, rank)
		}
		movement := rankings.Movement{Dir: dir.Value, Spots: spots.Value}
		if movement.Dir == rankings.DirectionSame {
			movement.Spots = 0
		}

		table.Entries = append(table.Entries, rankings.Entry{
			Rank:       rank,
			Name:       name,
			Team:       team.Value,
			Commentary: commentary,
			Movement:   movement,
			Slug:       Slug(name),
			Badge:      badge.Value,
		})
	}

	sort.SliceStable(table.Entries, func(i, j int) bool {
		return table.Entries[i].Rank < table.Entries[j].Rank
	})
	return table
}

// TransformDropped reads the dropped-out tab: a header row, then name and
// previous rank. An unknown previous rank is 0.
func TransformDropped(rows [][]string) ([]rankings.DroppedEntry, Report) {
	dropped := []rankings.DroppedEntry{}
	var report Report
	for _, row := range skipHeader(rows) {
		report.Rows++
		name := CleanName(cell(row, 0))
		if name == "" {
			report.Skipped++
			continue
		}
		prev := CleanRank(cell(row, 1), 0)
		report.countDefaults(prev.Defaulted)
		dropped = append(dropped, rankings.DroppedEntry{
			Name: name,
			Prev: prev.Value,
			Slug: Slug(name),
		})
	}
	return dropped, report
}

// TransformWorst returns the first named row after the header, or the
// "no worst QB selected" record.
func TransformWorst(rows [][]string) (rankings.WorstRecord, Report) {
	var report Report
	for _, row := range skipHeader(rows) {
		report.Rows++
		name := CleanName(cell(row, 0))
		if name == "" {
			report.Skipped++
			continue
		}
		team := CleanTeam(cell(row, 1))
		report.countDefaults(team.Defaulted)
		commentary := cell(row, 2)
		if commentary == "" {
			commentary = fmt.Sprintf("%s is the worst QB of the week.", name)
		}
		return rankings.WorstRecord{
			Name:       name,
			Team:       team.Value,
			Commentary: commentary,
			Slug:       Slug(name),
		}, report
	}
	return rankings.NoWorstSelected(), report
}

func validRank(n int) bool {
	return n >= 1 && n <= rankings.MaxRank
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}
