// SPDX-License-Identifier: MIT
package lexer

import (
	"golang.org/x/exp/slices"
)

type (
	// LineIndex holds the offsets at which lines start.
	//
	// The first line always starts at offset 0; the index only grows while scanning & is
	// rewound only when a token is undone.
	LineIndex struct {
		starts []int
	}
)

// NewLineIndex instantiates a LineIndex holding the first line.
func NewLineIndex() *LineIndex { return &LineIndex{starts: []int{0}} }

// Len is the number of lines seen: 1 + the number of line terminators recorded.
func (li *LineIndex) Len() int { return len(li.starts) }

// Starts returns a copy of the line start offsets.
func (li *LineIndex) Starts() []int { return slices.Clone(li.starts) }

// Record scans text, found at offset, for line terminators & records the start of each line
// following one.
//
// CRLF counts as a single terminator.
func (li *LineIndex) Record(text string, offset int) (found int) {
	for index := 0; index < len(text); index++ {
		next := -1

		switch text[index] {
		case '\n':
			next = index + 1
		case '\r':
			if index+1 < len(text) && text[index+1] == '\n' {
				// Recorded with the '\n'.
				continue
			}
			next = index + 1
		case 0xE2:
			// U+2028 & U+2029 encode as E2 80 A8 & E2 80 A9.
			if index+2 < len(text) && text[index+1] == 0x80 &&
				(text[index+2] == 0xA8 || text[index+2] == 0xA9) {
				next = index + 3
			}
		}

		if next < 0 {
			continue
		}

		li.starts = append(li.starts, offset+next)
		found++
	}

	return
}

// Column computes the 1-based column of an offset on a 1-based line.
//
// Lines outside the index are clamped to the first or last line.
func (li *LineIndex) Column(line, offset int) int {
	switch {
	case line < 1:
		line = 1
	case line > len(li.starts):
		line = len(li.starts)
	}

	return offset - li.starts[line-1] + 1
}

// Locate computes the 1-based line & column of an offset.
func (li *LineIndex) Locate(offset int) (line, column int) {
	index, found := slices.BinarySearch(li.starts, offset)
	if line = index; found {
		line++
	}
	if line < 1 {
		line = 1
	}

	return line, li.Column(line, offset)
}

// Truncate rewinds the index to its first n lines.
func (li *LineIndex) Truncate(n int) {
	if n < 1 {
		n = 1
	}
	if n < len(li.starts) {
		li.starts = li.starts[:n]
	}
}
