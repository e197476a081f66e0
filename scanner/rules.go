// SPDX-License-Identifier: MIT
package scanner

import (
	"strings"

	"gitlab.com/fisherprime/ecmalex/token"
)

type (
	// rule attempts to match a token at the Scanner's start position.
	//
	// A failed match may leave the read position anywhere; Scan resets it. A rule returning
	// token.Illegal with ok claims the offset as malformed, no later rule is tried.
	rule struct {
		name  string
		match func(*Scanner) (token.Kind, bool)
	}
)

// normalRules are ordered; the first match wins.
var normalRules = [...]rule{
	{"line terminator", matchLineTerminator},
	{"comment", matchComment},
	{"identifier", matchIdentifierName},
	{"number", matchNumber},
	{"string", matchString},
	{"punctuator", matchPunctuator},
}

var regexRules = [...]rule{
	{"regular expression", matchRegex},
}

func matchLineTerminator(s *Scanner) (token.Kind, bool) {
	switch r := s.Next(); {
	case r == '\r':
		s.Accept("\n")
	case IsLineTerminator(r):
	default:
		return token.Illegal, false
	}

	return token.LineTerminator, true
}

func matchComment(s *Scanner) (token.Kind, bool) {
	switch {
	case s.HasPrefix("//"):
		s.advance(2)
		s.AcceptWhile(func(r rune) bool { return !IsLineTerminator(r) })

		return token.LineComment, true
	case s.HasPrefix("/*"):
		end := strings.Index(s.Rest()[2:], "*/")
		if end < 0 {
			// Unterminated, the `/` must not fall through to the punctuators.
			return token.Illegal, true
		}
		s.advance(end + 4)

		return token.BlockComment, true
	default:
		return token.Illegal, false
	}
}

// matchIdentifierName matches identifiers & reserved words.
//
// Reserved words spelled with unicode escapes are identifiers.
func matchIdentifierName(s *Scanner) (token.Kind, bool) {
	escaped := false
	for first := true; ; first = false {
		r := s.Next()

		valid := IsIdentifierPart
		if first {
			valid = IsIdentifierStart
		}

		switch {
		case r == '\\':
			if !s.Accept("u") || !s.AcceptN(4, IsHexDigit) {
				return token.Illegal, false
			}
			escaped = true
		case r != eof && valid(r):
		default:
			s.Backup()
			if first {
				return token.Illegal, false
			}

			if word := s.source[s.start:s.pos]; !escaped {
				if kind, ok := token.Keyword(word); ok {
					return kind, true
				}
			}

			return token.ID, true
		}
	}
}

func matchNumber(s *Scanner) (token.Kind, bool) {
	if s.HasPrefix("0x") || s.HasPrefix("0X") {
		s.advance(2)
		if s.AcceptWhile(IsHexDigit) < 1 {
			return token.Illegal, false
		}

		return token.Number, true
	}

	integral := s.AcceptWhile(isDecimalDigit)
	fraction := 0
	if s.Accept(".") {
		fraction = s.AcceptWhile(isDecimalDigit)
	}
	if integral < 1 && fraction < 1 {
		return token.Illegal, false
	}

	// Exponent part, only consumed when complete.
	mark := s.pos
	if s.Accept("eE") {
		s.Accept("+-")
		if s.AcceptWhile(isDecimalDigit) < 1 {
			s.pos = mark
		}
	}

	return token.Number, true
}

// matchString matches single & double quoted strings.
//
// Hexadecimal & unicode escapes must be complete; line continuations are allowed.
func matchString(s *Scanner) (token.Kind, bool) {
	quote := s.Next()
	if quote != '"' && quote != '\'' {
		return token.Illegal, false
	}

	for {
		switch r := s.Next(); {
		case r == quote:
			return token.String, true
		case r == eof, IsLineTerminator(r):
			return token.Illegal, false
		case r == '\\':
			switch e := s.Next(); {
			case e == eof:
				return token.Illegal, false
			case e == '\r':
				s.Accept("\n")
			case e == 'x':
				if !s.AcceptN(2, IsHexDigit) {
					return token.Illegal, false
				}
			case e == 'u':
				if !s.AcceptN(4, IsHexDigit) {
					return token.Illegal, false
				}
			}
		}
	}
}

func matchPunctuator(s *Scanner) (token.Kind, bool) {
	rest := s.Rest()
	for _, p := range token.Punctuators {
		if strings.HasPrefix(rest, p.Text) {
			s.advance(len(p.Text))
			return p.Kind, true
		}
	}

	return token.Illegal, false
}

// matchRegex matches `/body/flags`.
//
// REF: https://262.ecma-international.org/5.1/#sec-7.8.5
func matchRegex(s *Scanner) (token.Kind, bool) {
	if s.Next() != '/' {
		return token.Illegal, false
	}
	if r := s.Peek(); r == '*' || r == '/' {
		return token.Illegal, false
	}

	// validateAndStep consumes one (possibly escaped) body character.
	validateAndStep := func() bool {
		r := s.Next()
		if r == '\\' {
			r = s.Next()
		}

		return r != eof && !IsLineTerminator(r)
	}

	for {
		switch s.Peek() {
		case '/':
			s.Next()
			s.AcceptWhile(IsIdentifierPart)

			return token.Regex, true
		case '[':
			s.Next()
			for s.Peek() != ']' {
				if !validateAndStep() {
					return token.Illegal, false
				}
			}
			s.Next()
		default:
			if !validateAndStep() {
				return token.Illegal, false
			}
		}
	}
}
