// SPDX-License-Identifier: MIT
package token

import (
	"fmt"
	"strings"
)

type (
	// Kind holds an identifier for the type of a Token.
	Kind int

	// Token holds the kind, text & position of a lexed span of ECMAScript source.
	//
	// Tokens are produced by the lexer & must not be modified afterwards; they are handled
	// by pointer so that consumers can compare token identity.
	Token struct {
		// Hidden holds the comments that preceded this Token, in source order.
		//
		// Only populated when comment retention is enabled.
		Hidden []*Token

		Text string // The source text of this Token
		Kind Kind   // The type of this Token

		Line   int // 1-based line of the Token's first byte
		Column int // 1-based column (in bytes) of the Token's first byte
		Offset int // The starting position, (in bytes) of this Token

		// NewlineBefore reports whether a line terminator separated this Token from the
		// previous significant Token.
		NewlineBefore bool
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	Illegal Kind = iota // No rule matched.
	EOF                 // End of the source.

	// Trivia.
	LineTerminator // LF, CR, CRLF, U+2028 or U+2029.
	LineComment    // `// ...`.
	BlockComment   // `/* ... */`.

	// AutoSemi is a zero-width semicolon synthesized by the lexer.
	AutoSemi

	// Literals & names.
	ID
	Number
	String
	Regex

	keywordBegin
	Break
	Case
	Catch
	Class
	Const
	Continue
	Debugger
	Default
	Delete
	Do
	Else
	Enum
	Export
	Extends
	False
	Finally
	For
	Function
	If
	Import
	In
	Instanceof
	New
	Null
	Return
	Super
	Switch
	This
	Throw
	True
	Try
	Typeof
	Var
	Void
	While
	With
	keywordEnd

	punctuatorBegin
	Period
	Comma
	Semi
	Colon
	Plus
	Minus
	Mult
	Div
	Mod
	Band
	Bor
	Bxor
	Bnot
	CondOp
	Not
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Eq
	EqEq
	Ne
	StrEq
	StrNeq
	Lt
	Gt
	Le
	Ge
	Or
	And
	PlusPlus
	MinusMinus
	LShift
	RShift
	URShift
	PlusEqual
	MinusEqual
	MultEqual
	DivEqual
	LShiftEqual
	RShiftEqual
	URShiftEqual
	AndEqual
	ModEqual
	XorEqual
	OrEqual
	punctuatorEnd
)

// String returns the upper case name of the Kind, e.g. `ID` or `DIVEQUAL`.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether the Kind is a reserved word.
func (k Kind) IsKeyword() bool { return k > keywordBegin && k < keywordEnd }

// IsPunctuator reports whether the Kind is an operator or delimiter.
func (k Kind) IsPunctuator() bool { return k > punctuatorBegin && k < punctuatorEnd }

// IsTrivia reports whether the Kind is never significant for disambiguation: line terminators
// & comments.
func (k Kind) IsTrivia() bool { return k == LineTerminator || k == LineComment || k == BlockComment }

// IsComment reports whether the Kind is a line or block comment.
func (k Kind) IsComment() bool { return k == LineComment || k == BlockComment }

// ImpliesDivision reports whether a `/` following a token of this Kind may be a division
// operator.
func (k Kind) ImpliesDivision() bool {
	return k >= 0 && k < punctuatorEnd && divisionKinds[k]
}

// IsRestricted reports whether the Kind starts a restricted production: a line terminator
// directly after it terminates the statement.
func (k Kind) IsRestricted() bool {
	return k == Break || k == Continue || k == Return || k == Throw
}

// IsConditional reports whether the Kind is a keyword whose `(` opens a condition.
func (k Kind) IsConditional() bool { return k == If || k == For || k == While }

// Opens reports whether the Kind is an opening bracket.
func (k Kind) Opens() bool { return k == LParen || k == LBracket || k == LBrace }

// Closes reports whether the Kind is a closing bracket.
func (k Kind) Closes() bool { return k == RParen || k == RBracket || k == RBrace }

// Closer returns the closing bracket matching an opening bracket, Illegal otherwise.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	case LBrace:
		return RBrace
	default:
		return Illegal
	}
}

// End returns the offset immediately after the Token.
func (t *Token) End() int { return t.Offset + len(t.Text) }

// Is reports whether the Token is of any of the kinds.
//
// A nil Token is of no kind.
func (t *Token) Is(kinds ...Kind) bool {
	if t == nil {
		return false
	}

	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}

	return false
}

// String renders the Token as `KIND text`, or `KIND` for zero-width tokens.
func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Text == "" {
		return t.Kind.String()
	}

	return t.Kind.String() + " " + t.Text
}

// Position renders the Token's `line:column`.
func (t *Token) Position() string { return fmt.Sprintf("%d:%d", t.Line, t.Column) }

// Texts joins the text of a token list, in order.
func Texts(tokens []*Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}

	return b.String()
}
