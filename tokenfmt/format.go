// SPDX-License-Identifier: MIT

// Package tokenfmt renders token streams for inspection & interchange.
package tokenfmt

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Format identifies a token stream rendering.
	Format int
)

const (
	// Text renders a token per line: `line:column KIND "text"`.
	Text Format = iota
	// JSON renders an array of token records.
	JSON
	// CBOR renders an array of token records in canonical CBOR.
	CBOR
	// Dump renders a spew dump of the tokens.
	Dump
)

// Format errors.
var (
	ErrUnknownFormat = errors.New("unknown format")
	ErrNotDecodable  = errors.New("format is not decodable")
)

var formatNames = map[Format]string{
	Text: "text",
	JSON: "json",
	CBOR: "cbor",
	Dump: "dump",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// Formats lists the format names, sorted.
func Formats() (names []string) {
	names = maps.Values(formatNames)
	slices.Sort(names)

	return
}

// ParseFormat resolves a Format from its name, ignoring case.
//
// An unknown name yields an error suggesting the closest format.
func ParseFormat(name string) (Format, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == lower {
			return f, nil
		}
	}

	ranks := fuzzy.RankFindFold(lower, Formats())
	if len(ranks) < 1 {
		return Text, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	sort.Sort(ranks)

	return Text, fmt.Errorf("%w: %q, did you mean %s?", ErrUnknownFormat, name, ranks[0].Target)
}
