// SPDX-License-Identifier: MIT
package scanner

// REF: https://262.ecma-international.org/5.1/#sec-7

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gitlab.com/fisherprime/ecmalex/token"
)

type (
	// Mode selects the rule table used by a Scan.
	Mode int

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Raw holds a token as matched by the Scanner, before any ECMAScript specific handling.
	Raw struct {
		Text   string
		Kind   token.Kind
		Offset int // The starting position, (in bytes) of this Raw token
	}

	// Scanner matches raw tokens from an in-memory source using ordered rules.
	//
	// The Scanner holds no ECMAScript semantics, the caller decides which Mode to scan in.
	Scanner struct {
		source string

		// start is the offset of the token being matched.
		start int
		// pos is the current read position.
		pos int
		// width of the last rune read by Next, used by Backup.
		width int
	}

	// MatchError is returned when no rule matches at an offset.
	MatchError struct {
		Offset int
		Mode   Mode
	}
)

const (
	// Normal scans every token except regular expression literals.
	Normal Mode = iota
	// RegexLiteral scans a single regular expression literal.
	RegexLiteral
)

// Scanning errors.
var (
	ErrNoMatch        = errors.New("no rule matches")
	ErrInvalidSeekPos = errors.New("invalid seek position")
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case RegexLiteral:
		return "regex-literal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("%s in %s mode at offset %d", ErrNoMatch, e.Mode, e.Offset)
}

func (e *MatchError) Unwrap() error { return ErrNoMatch }

// New creates a new Scanner for the source.
func New(source string) *Scanner { return &Scanner{source: source} }

// Source obtains the complete source.
func (s *Scanner) Source() string { return s.source }

// Pos obtains the read position.
func (s *Scanner) Pos() int { return s.pos }

// Rest obtains the source from the read position onwards.
func (s *Scanner) Rest() string { return s.source[s.pos:] }

// Seek moves the read position to an absolute offset.
func (s *Scanner) Seek(pos int) error {
	if pos < 0 || pos > len(s.source) {
		return fmt.Errorf("%w: %d (source length: %d)", ErrInvalidSeekPos, pos, len(s.source))
	}
	s.pos, s.start, s.width = pos, pos, 0

	return nil
}

// Scan matches the next raw token in the given Mode.
//
// Whitespace preceding the token is skipped; it is recoverable from the gap between token
// offsets. At the end of the source a token.EOF Raw is returned. On failure the read
// position is left at the failing offset & a *MatchError is returned.
func (s *Scanner) Scan(mode Mode) (raw Raw, err error) {
	s.SkipWhitespace()

	s.start = s.pos
	if s.pos >= len(s.source) {
		raw = Raw{Kind: token.EOF, Offset: s.pos}
		return
	}

	rules := normalRules[:]
	if mode == RegexLiteral {
		rules = regexRules[:]
	}

	for _, r := range rules {
		kind, ok := r.match(s)
		if ok && kind != token.Illegal {
			raw = Raw{Kind: kind, Text: s.source[s.start:s.pos], Offset: s.start}
			return
		}
		s.pos = s.start

		if ok {
			break
		}
	}

	raw = Raw{Kind: token.Illegal, Offset: s.start}
	err = &MatchError{Offset: s.start, Mode: mode}

	return
}

// SkipWhitespace advances the read position past WhiteSpace.
func (s *Scanner) SkipWhitespace() {
	for s.pos < len(s.source) {
		r, w := s.peekRune()
		if !IsWhitespace(r) {
			return
		}
		s.pos += w
	}
}

// AtSlash reports whether the next token starts with a `/` that does not open a comment.
//
// Whitespace before the `/` is skipped.
func (s *Scanner) AtSlash() bool {
	s.SkipWhitespace()

	rest := s.Rest()

	return strings.HasPrefix(rest, "/") &&
		!strings.HasPrefix(rest, "//") && !strings.HasPrefix(rest, "/*")
}

// Next return the Next rune in the source, eof at the end.
func (s *Scanner) Next() (r rune) {
	if s.pos >= len(s.source) {
		s.width = 0
		return eof
	}

	r, s.width = s.peekRune()
	s.pos += s.width

	return
}

// Peek return the next rune, without updating the position.
func (s *Scanner) Peek() (r rune) {
	if s.pos >= len(s.source) {
		return eof
	}
	r, _ = s.peekRune()

	return
}

// Backup step back one rune.
//
// Only valid once per call to Next.
func (s *Scanner) Backup() {
	s.pos -= s.width
	s.width = 0
}

// Accept consumes the next rune if it is in the valid set.
func (s *Scanner) Accept(valid string) bool {
	if strings.ContainsRune(valid, s.Next()) {
		return true
	}
	s.Backup()

	return false
}

// AcceptWhile consumes runes while condition is true, returning the number consumed.
func (s *Scanner) AcceptWhile(fn ValidationFunction) (n int) {
	for {
		r := s.Next()
		if r == eof {
			return
		}

		// End of current token type.
		if !fn(r) {
			s.Backup()
			return
		}
		n++
	}
}

// AcceptN consumes exactly n runes satisfying the condition, or none.
func (s *Scanner) AcceptN(n int, fn ValidationFunction) bool {
	start := s.pos
	for index := 0; index < n; index++ {
		if r := s.Next(); r == eof || !fn(r) {
			s.pos = start
			return false
		}
	}

	return true
}

// HasPrefix reports whether the source continues with prefix at the read position.
func (s *Scanner) HasPrefix(prefix string) bool { return strings.HasPrefix(s.Rest(), prefix) }

// advance moves the read position past n bytes.
func (s *Scanner) advance(n int) { s.pos += n }

func (s *Scanner) peekRune() (rune, int) {
	if c := s.source[s.pos]; c < utf8.RuneSelf {
		return rune(c), 1
	}

	return utf8.DecodeRuneInString(s.source[s.pos:])
}
