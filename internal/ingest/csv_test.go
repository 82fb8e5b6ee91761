package ingest

import (
	"reflect"
	"testing"
)

func TestParseCSV(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want [][]string
	}{
		{
			name: "quoted comma and escaped quotes",
			in:   `1,"Smith, ""Tall"" Jones",KC`,
			want: [][]string{{"1", `Smith, "Tall" Jones`, "KC"}},
		},
		{
			name: "crlf and lf line endings",
			in:   "a,b\r\nc,d\ne,f",
			want: [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}},
		},
		{
			name: "cells are trimmed and blank rows dropped",
			in:   "  a , b  \n,,\n\n c,d \n",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "newline inside quotes",
			in:   "1,\"line one\nline two\",x",
			want: [][]string{{"1", "line one\nline two", "x"}},
		},
		{
			name: "quote mid field opens a quoted run",
			in:   `ab"c,d"e,f`,
			want: [][]string{{"abc,de", "f"}},
		},
		{
			name: "unterminated quote swallows remainder",
			in:   "a,\"b,c\nd",
			want: [][]string{{"a", "b,c\nd"}},
		},
		{
			name: "lone carriage return kept",
			in:   "a\rb,c",
			want: [][]string{{"a\rb", "c"}},
		},
		{
			name: "byte order mark stripped",
			in:   "\uFEFFRank,Name",
			want: [][]string{{"Rank", "Name"}},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCSV(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseCSVKeepsTrailingEmptyCells(t *testing.T) {
	got := ParseCSV("a,,\n")
	want := [][]string{{"a", "", ""}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
