// SPDX-License-Identifier: MIT
package scanner

import "unicode"

const (
	// eof is returned by Next at the end of the source.
	eof rune = -1

	lineSeparator      = '\u2028'
	paragraphSeparator = '\u2029'

	zeroWidthNonJoiner = '\u200c'
	zeroWidthJoiner    = '\u200d'
	byteOrderMark      = '\ufeff'
)

// Improves on performance compared to ORs.
//
// Only covers the Latin-1 range, the remaining code points are checked against unicode tables.
var (
	whitespace = [256]bool{
		' ':  true,
		'\t': true,
		'\v': true,
		'\f': true,
		0xA0: true,
	}

	identStart = [256]bool{
		'$': true,
		'_': true,
	}

	hexDigits = [256]bool{
		'0': true, '1': true, '2': true, '3': true, '4': true,
		'5': true, '6': true, '7': true, '8': true, '9': true,
		'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true,
		'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true,
	}
)

// IsLineTerminator reports whether r is an ECMAScript LineTerminator.
func IsLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == lineSeparator || r == paragraphSeparator
}

// IsWhitespace reports whether r is ECMAScript WhiteSpace (excluding line terminators).
func IsWhitespace(r rune) bool {
	if r >= 0 && r < 0x100 {
		return whitespace[r]
	}

	return r == byteOrderMark || unicode.Is(unicode.Zs, r)
}

// IsHexDigit reports whether r is a hexadecimal digit.
func IsHexDigit(r rune) bool { return r >= 0 && r < 0x80 && hexDigits[r] }

// isDecimalDigit return true for 0-9.
func isDecimalDigit(r rune) bool { return r >= '0' && r <= '9' }

// IsIdentifierStart reports whether r may start an IdentifierName.
func IsIdentifierStart(r rune) bool {
	if r >= 0 && r < 0x80 {
		return identStart[r] || (r|0x20 >= 'a' && r|0x20 <= 'z')
	}

	return unicode.In(r, unicode.L, unicode.Nl)
}

// IsIdentifierPart reports whether r may continue an IdentifierName.
func IsIdentifierPart(r rune) bool {
	if IsIdentifierStart(r) || isDecimalDigit(r) {
		return true
	}
	if r < 0x80 {
		return false
	}

	return r == zeroWidthNonJoiner || r == zeroWidthJoiner ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
