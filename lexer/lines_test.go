// SPDX-License-Identifier: MIT
package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineIndex_Record(t *testing.T) {
	type args struct {
		text   string
		offset int
	}

	tests := []struct {
		name      string
		args      args
		wantFound int
		want      []int
	}{
		{name: "no terminator", args: args{"abc", 0}, want: []int{0}},
		{name: "line feed", args: args{"\n", 3}, wantFound: 1, want: []int{0, 4}},
		{name: "carriage return", args: args{"\r", 3}, wantFound: 1, want: []int{0, 4}},
		{name: "crlf", args: args{"\r\n", 3}, wantFound: 1, want: []int{0, 5}},
		{name: "cr cr lf", args: args{"\r\r\n", 0}, wantFound: 2, want: []int{0, 1, 3}},
		{name: "separators", args: args{"\u2028x\u2029", 1}, wantFound: 2, want: []int{0, 4, 8}},
		{name: "comment", args: args{"/* a\n\nb */", 10}, wantFound: 2, want: []int{0, 15, 16}},
		{name: "other E2 sequence", args: args{"\u2026", 0}, want: []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			li := NewLineIndex()
			if got := li.Record(tt.args.text, tt.args.offset); got != tt.wantFound {
				t.Errorf("LineIndex.Record() = %v, want %v", got, tt.wantFound)
			}
			if diff := cmp.Diff(tt.want, li.Starts()); diff != "" {
				t.Errorf("LineIndex.Starts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineIndex_Locate(t *testing.T) {
	li := NewLineIndex()
	li.Record("ab\ncd\r\n\nef", 0) // Lines start at 0, 3, 7 & 8.

	tests := []struct {
		offset     int
		wantLine   int
		wantColumn int
	}{
		{offset: 0, wantLine: 1, wantColumn: 1},
		{offset: 2, wantLine: 1, wantColumn: 3},
		{offset: 3, wantLine: 2, wantColumn: 1},
		{offset: 6, wantLine: 2, wantColumn: 4},
		{offset: 7, wantLine: 3, wantColumn: 1},
		{offset: 9, wantLine: 4, wantColumn: 2},
		{offset: 42, wantLine: 4, wantColumn: 35},
	}
	for _, tt := range tests {
		line, column := li.Locate(tt.offset)
		if line != tt.wantLine || column != tt.wantColumn {
			t.Errorf("LineIndex.Locate(%d) = %d:%d, want %d:%d", tt.offset, line, column, tt.wantLine, tt.wantColumn)
		}
	}

	if got := li.Column(0, 2); got != 3 {
		t.Errorf("LineIndex.Column() below the first line = %v, want 3", got)
	}
	if got := li.Column(9, 9); got != 2 {
		t.Errorf("LineIndex.Column() past the last line = %v, want 2", got)
	}
}

func TestLineIndex_Truncate(t *testing.T) {
	li := NewLineIndex()
	li.Record("a\nb\nc", 0)

	li.Truncate(2)
	if diff := cmp.Diff([]int{0, 2}, li.Starts()); diff != "" {
		t.Errorf("LineIndex.Truncate() mismatch (-want +got):\n%s", diff)
	}

	li.Truncate(0)
	if li.Len() != 1 {
		t.Errorf("LineIndex.Len() = %v, want 1: the first line is never dropped", li.Len())
	}

	li.Truncate(5)
	if li.Len() != 1 {
		t.Errorf("LineIndex.Truncate() grew the index to %v", li.Len())
	}
}
