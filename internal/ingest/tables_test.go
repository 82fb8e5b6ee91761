package ingest

import (
	"testing"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
)

func TestTransformRankingsWithMetadataAndHeader(t *testing.T) {
	rows := ParseCSV(`Week Label,Week 6 · Oct 15
Date:,"October 15, 2026"
Rank,Name,Team,Commentary,Movement,Spots,Badge
2,Patrick Mahomes,kc,,down,1,
1,Lamar Jackson,BAL,MVP form.,up,1,
3,C.J. Stroud,HOU,,same,4,new
11,Too Low,NE,,,,
abc,Bad Rank,NE,,,,
4,,NE,,,,
`)

	table := TransformRankings(rows)

	if table.WeekLabel != "Week 6 · Oct 15" {
		t.Fatalf("expected week label from metadata, got %q", table.WeekLabel)
	}
	if table.CurrentDate != "October 15, 2026" {
		t.Fatalf("expected current date from metadata, got %q", table.CurrentDate)
	}
	if len(table.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(table.Entries), table.Entries)
	}
	for i, e := range table.Entries {
		if e.Rank != i+1 {
			t.Fatalf("expected entries sorted by rank, got %d at %d", e.Rank, i)
		}
	}

	lamar := table.Entries[0]
	if lamar.Commentary != "MVP form." || lamar.Movement != (rankings.Movement{Dir: rankings.DirectionUp, Spots: 1}) {
		t.Fatalf("unexpected first entry %+v", lamar)
	}

	mahomes := table.Entries[1]
	if mahomes.Team != rankings.TeamKC {
		t.Fatalf("expected KC team, got %q", mahomes.Team)
	}
	if mahomes.Commentary != "Patrick Mahomes is ranked #2 this week." {
		t.Fatalf("expected default commentary, got %q", mahomes.Commentary)
	}

	stroud := table.Entries[2]
	if stroud.Slug != "cj-stroud" || stroud.Badge != rankings.BadgeNew {
		t.Fatalf("unexpected stroud entry %+v", stroud)
	}
	if stroud.Movement.Spots != 0 {
		t.Fatalf("expected spots forced to 0 when same, got %d", stroud.Movement.Spots)
	}
	if table.Report.Skipped != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", table.Report.Skipped)
	}
}

func TestTransformRankingsWithoutHeaderStartsAtFirstRankedRow(t *testing.T) {
	rows := [][]string{
		{"Top 10 QBs"},
		{"1", "Josh Allen", "BUF"},
		{"3", "Joe Burrow", "CIN"},
		{"2", "Jalen Hurts", "PHI"},
	}

	table := TransformRankings(rows)

	if table.WeekLabel != "Rankings" || table.CurrentDate != "" {
		t.Fatalf("expected default metadata, got %q %q", table.WeekLabel, table.CurrentDate)
	}
	got := []int{}
	for _, e := range table.Entries {
		got = append(got, e.Rank)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected ranks [1 2 3], got %v", got)
	}
	if table.Entries[1].Name != "Jalen Hurts" {
		t.Fatalf("expected Hurts at rank 2, got %q", table.Entries[1].Name)
	}
	if table.Entries[0].Team != rankings.TeamBUF || table.Entries[0].Movement.Dir != rankings.DirectionSame {
		t.Fatalf("unexpected defaults for short row %+v", table.Entries[0])
	}
}

func TestTransformRankingsSkipsDuplicateRanks(t *testing.T) {
	rows := [][]string{
		{"#", "Name"},
		{"1", "Lamar Jackson"},
		{"1", "Patrick Mahomes"},
	}

	table := TransformRankings(rows)

	if len(table.Entries) != 1 || table.Entries[0].Name != "Lamar Jackson" {
		t.Fatalf("expected first rank-1 row kept, got %+v", table.Entries)
	}
}

func TestTransformRankingsEmpty(t *testing.T) {
	table := TransformRankings(nil)
	if table.Entries == nil || len(table.Entries) != 0 {
		t.Fatalf("expected empty non-nil entries, got %#v", table.Entries)
	}
}

func TestTransformDropped(t *testing.T) {
	rows := [][]string{
		{"Name", "Previous Rank"},
		{"Tua Tagovailoa", "9"},
		{"Justin  Herbert", "ten"},
		{"", "4"},
	}

	dropped, report := TransformDropped(rows)

	if len(dropped) != 2 {
		t.Fatalf("expected 2 dropped entries, got %d", len(dropped))
	}
	if dropped[0] != (rankings.DroppedEntry{Name: "Tua Tagovailoa", Prev: 9, Slug: "tua-tagovailoa"}) {
		t.Fatalf("unexpected first dropped entry %+v", dropped[0])
	}
	if dropped[1].Name != "Justin Herbert" || dropped[1].Prev != 0 {
		t.Fatalf("expected unknown prev as 0, got %+v", dropped[1])
	}
	if report.Skipped != 1 || report.Defaulted != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestTransformWorst(t *testing.T) {
	worst, _ := TransformWorst([][]string{
		{"Name", "Team", "Commentary"},
		{"", "NYJ", "skip me"},
		{"Bryce Young", "car", ""},
		{"Someone Else", "NYG", "ignored"},
	})

	want := rankings.WorstRecord{
		Name:       "Bryce Young",
		Team:       rankings.TeamCAR,
		Commentary: "Bryce Young is the worst QB of the week.",
		Slug:       "bryce-young",
	}
	if worst != want {
		t.Fatalf("expected %+v, got %+v", want, worst)
	}
}

func TestTransformWorstPlaceholder(t *testing.T) {
	worst, _ := TransformWorst([][]string{{"Name", "Team"}})
	if worst != rankings.NoWorstSelected() {
		t.Fatalf("expected placeholder, got %+v", worst)
	}
	if worst.Name != "TBD" || worst.Team != rankings.UnknownTeam || worst.Slug != "tbd" {
		t.Fatalf("unexpected placeholder fields %+v", worst)
	}
}
