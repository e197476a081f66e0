// SPDX-License-Identifier: MIT
package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gitlab.com/fisherprime/ecmalex/scanner"
	"gitlab.com/fisherprime/ecmalex/token"
)

type (
	// ErrorKind classifies a SyntaxError.
	ErrorKind int

	// SyntaxError is a fatal lexing error.
	SyntaxError struct {
		// Last is the last token lexed successfully, nil at the start of the source.
		Last *token.Token

		Msg string
		// Value is the offending text, possibly truncated.
		Value string

		Kind   ErrorKind
		Line   int
		Column int
		Offset int
	}

	// RegexSyntaxError is returned when a regular expression literal fails to close.
	//
	// It is distinct from SyntaxError: the source was already committed to a regular
	// expression by the division/regex disambiguation.
	RegexSyntaxError struct {
		SyntaxError
	}
)

const (
	_ ErrorKind = iota // Consume 0 to start actual numbering at 1.
	IllegalCharacter
	UnterminatedString
	InvalidEscape
	MismatchedBracket
	RegexSyntax
)

// Lexing errors.
var (
	ErrIllegalCharacter   = errors.New("illegal character")
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrInvalidEscape      = errors.New("invalid escape sequence")
	ErrMismatchedBracket  = errors.New("mismatched bracket")
	ErrRegexSyntax        = errors.New("unterminated regular expression literal")

	ErrInvalidUndo = errors.New("invalid undo")
)

var kindErrors = map[ErrorKind]error{
	IllegalCharacter:   ErrIllegalCharacter,
	UnterminatedString: ErrUnterminatedString,
	InvalidEscape:      ErrInvalidEscape,
	MismatchedBracket:  ErrMismatchedBracket,
	RegexSyntax:        ErrRegexSyntax,
}

func (k ErrorKind) String() string {
	if err, ok := kindErrors[k]; ok {
		return err.Error()
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (e *SyntaxError) Error() string { return e.Msg }

// Unwrap exposes the ErrorKind's sentinel error to errors.Is.
func (e *SyntaxError) Unwrap() error { return kindErrors[e.Kind] }

// newSyntaxError positions a SyntaxError of some kind at an offset.
func (l *Lexer) newSyntaxError(kind ErrorKind, offset int, value, detail string) *SyntaxError {
	line, column := l.lines.Locate(offset)

	msg := fmt.Sprintf("%s %s at %d:%d", kindErrors[kind], detail, line, column)
	if detail == "" {
		msg = fmt.Sprintf("%s at %d:%d", kindErrors[kind], line, column)
	}

	return &SyntaxError{
		Kind:   kind,
		Msg:    msg,
		Value:  value,
		Line:   line,
		Column: column,
		Offset: offset,
		Last:   l.lastSignificant,
	}
}

// failure classifies a failed scan at offset.
//
// The truncated prefix of the remaining source is re-matched against broken literal shapes
// for a precise diagnostic.
func (l *Lexer) failure(offset int, mode scanner.Mode) error {
	rest := l.scanner.Source()[offset:]

	if mode == scanner.RegexLiteral {
		broken, _ := brokenLiteral(rest, '/')
		return &RegexSyntaxError{
			SyntaxError: *l.newSyntaxError(RegexSyntax, offset, broken, l.truncate(broken)),
		}
	}

	switch {
	case strings.HasPrefix(rest, `"`), strings.HasPrefix(rest, `'`):
		return l.brokenString(offset, rest)
	case strings.HasPrefix(rest, "/*"):
		return l.newSyntaxError(IllegalCharacter, offset, "/*", "'/' (unterminated comment)")
	}

	r, _ := utf8.DecodeRuneInString(rest)
	detail := fmt.Sprintf("%q", r)
	if l.lastSignificant != nil {
		detail = fmt.Sprintf("%q after %s", r, l.lastSignificant)
	}

	return l.newSyntaxError(IllegalCharacter, offset, string(r), detail)
}

// brokenString diagnoses a string literal that failed to match.
func (l *Lexer) brokenString(offset int, rest string) error {
	broken, terminated := brokenLiteral(rest, rune(rest[0]))

	if index, seq, ok := invalidEscape(broken); ok && (terminated || l.cfg.EscapePriority) {
		name := "hexadecimal"
		if seq[1] == 'u' {
			name = "unicode"
		}

		return l.newSyntaxError(InvalidEscape, offset+index, seq, fmt.Sprintf("(%s) '%s'", name, seq))
	}

	return l.newSyntaxError(UnterminatedString, offset, broken, l.truncate(broken))
}

// truncate elides a literal longer than the configured limit.
func (l *Lexer) truncate(literal string) string {
	if utf8.RuneCountInString(literal) <= l.cfg.TruncateLimit {
		return literal
	}

	runes := []rune(literal)

	return string(runes[:l.cfg.TruncateLimit]) + ellipsis
}

// brokenLiteral matches the longest prefix of a quoted literal: the opening quote followed by
// escapes & characters up to the closing quote, a line terminator or the end of the source.
func brokenLiteral(rest string, quote rune) (literal string, terminated bool) {
	escaped := false
	for index, r := range rest {
		switch {
		case index == 0:
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == quote:
			return rest[:index+1], true
		case scanner.IsLineTerminator(r):
			return rest[:index], false
		}
	}

	return rest, false
}

// invalidEscape locates the first malformed `\x` or `\u` escape in a literal.
func invalidEscape(literal string) (index int, seq string, ok bool) {
	for index = 0; index < len(literal)-1; index++ {
		if literal[index] != '\\' {
			continue
		}

		digits := 0
		switch literal[index+1] {
		case 'x':
			digits = 2
		case 'u':
			digits = 4
		default:
			// Skip the escaped character.
			index++
			continue
		}

		end := index + 2
		for end < len(literal) && end-index-2 < digits && scanner.IsHexDigit(rune(literal[end])) {
			end++
		}
		if end-index-2 == digits {
			index = end - 1
			continue
		}

		// Include the offending character, unless it closes the literal.
		if end < len(literal) && !isQuote(literal[end]) {
			_, w := utf8.DecodeRuneInString(literal[end:])
			end += w
		}

		return index, literal[index:end], true
	}

	return 0, "", false
}

func isQuote(c byte) bool { return c == '"' || c == '\'' }
