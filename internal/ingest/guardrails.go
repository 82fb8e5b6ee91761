package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
)

const maxSpots = 15

// Field is a sanitized cell. Defaulted is true when the raw input was unusable
// and Value holds the fallback.
type Field[T any] struct {
	Value     T
	Defaulted bool
}

func accepted[T any](v T) Field[T]  { return Field[T]{Value: v} }
func defaulted[T any](v T) Field[T] { return Field[T]{Value: v, Defaulted: true} }

// CleanTeam maps a team cell onto the known abbreviations, falling back to
// rankings.UnknownTeam.
func CleanTeam(raw string) Field[rankings.Team] {
	team, ok := rankings.ParseTeam(raw)
	if !ok {
		return defaulted(team)
	}
	return accepted(team)
}

// CleanMovement recognizes up/u/▲ and down/dn/d/▼. Anything else is same;
// a blank cell or a literal "same" is not counted as defaulted.
func CleanMovement(raw string) Field[rankings.Direction] {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "up", "u", "▲":
		return accepted(rankings.DirectionUp)
	case "down", "dn", "d", "▼":
		return accepted(rankings.DirectionDown)
	case "", "same":
		return accepted(rankings.DirectionSame)
	default:
		return defaulted(rankings.DirectionSame)
	}
}

// CleanSpots parses a leading integer, clamping it to [0, 15].
func CleanSpots(raw string) Field[int] {
	if strings.TrimSpace(raw) == "" {
		return accepted(0)
	}
	n, ok := leadingInt(raw)
	switch {
	case !ok || n < 0:
		return defaulted(0)
	case n > maxSpots:
		return defaulted(maxSpots)
	default:
		return accepted(n)
	}
}

// CleanBadge returns BadgeNew for "new" in any case, otherwise no badge.
func CleanBadge(raw string) Field[rankings.Badge] {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return accepted(rankings.Badge(""))
	}
	if strings.EqualFold(trimmed, string(rankings.BadgeNew)) {
		return accepted(rankings.BadgeNew)
	}
	return defaulted(rankings.Badge(""))
}

// CleanName trims and collapses internal whitespace runs to a single space.
func CleanName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// CleanRank parses a leading integer of at least 1, else returns fallback.
func CleanRank(raw string, fallback int) Field[int] {
	n, ok := leadingInt(raw)
	if !ok || n < 1 {
		return defaulted(fallback)
	}
	return accepted(n)
}

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// Slug derives the URL-safe player identifier from a display name.
// "C.J. Stroud" becomes "cj-stroud". Applying Slug to a slug is a no-op.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugDashes.ReplaceAllString(s, "-")
}

// leadingInt reads an optionally signed run of digits at the start of raw,
// ignoring leading whitespace and anything after the digits ("3 spots" is 3,
// "2.9" is 2).
func leadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// cell returns the trimmed value at index i, or "" past the end of row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
