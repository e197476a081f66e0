// SPDX-License-Identifier: MIT
package lexer

import (
	"gitlab.com/fisherprime/ecmalex/token"
)

// REF: https://262.ecma-international.org/5.1/#sec-7.9

// TryInsertSemicolon synthesizes a zero-width token.AutoSemi in front of tok, the token the
// parser could not accept.
//
// Insertion succeeds when tok is nil or token.EOF (end of input), a `}`, or was preceded by a
// line terminator; tok is then re-delivered by the next call to Next. Otherwise no insertion
// is performed & the parser's syntax error stands.
func (l *Lexer) TryInsertSemicolon(tok *token.Token) (semi *token.Token, ok bool) {
	atEnd := tok == nil || tok.Kind == token.EOF
	if (tok != nil && tok == l.semiFor) || (atEnd && l.semiAtEnd) {
		// Inserting twice in front of the same token would never make progress.
		return
	}

	switch {
	case atEnd:
		semi = l.semicolonAfter(l.lastSignificant)
	case tok.Kind == token.RBrace, tok.NewlineBefore:
		semi = &token.Token{
			Kind:   token.AutoSemi,
			Line:   tok.Line,
			Column: tok.Column,
			Offset: tok.Offset,
		}
	default:
		if l.cfg.Debug {
			l.logger.Debugf("lexer ASI refused before %s at %s", tok, tok.Position())
		}

		return
	}

	if tok != nil {
		l.requeue(tok)
	}
	l.semiFor, l.semiAtEnd = tok, l.semiAtEnd || atEnd
	l.current = semi

	if l.cfg.Debug {
		l.logger.Debugf("lexer ASI inserted at %s", semi.Position())
	}

	return semi, true
}

// restrictedSemicolon terminates a restricted production (`break`, `continue`, `return` or
// `throw`) directly followed by a line terminator.
func (l *Lexer) restrictedSemicolon() *token.Token {
	semi := l.semicolonAfter(l.lastSignificant)

	_, _ = l.frames.update(semi, l.lastSignificant)
	l.prev, l.lastSignificant, l.current = semi, semi, semi

	// The line terminator still precedes the next token.
	l.newlineBefore = true
	l.history = l.history[:0]

	if l.cfg.Debug {
		l.logger.Debugf("lexer ASI inserted (restricted production) at %s", semi.Position())
	}

	return semi
}

// semicolonAfter positions a zero-width token.AutoSemi at the end of tok, or at the start of
// the source for a nil tok.
func (l *Lexer) semicolonAfter(tok *token.Token) *token.Token {
	semi := &token.Token{Kind: token.AutoSemi, Line: 1, Column: 1}
	if tok == nil {
		return semi
	}

	semi.Offset = tok.End()
	semi.Line, semi.Column = l.lines.Locate(semi.Offset)

	return semi
}

// restricts reports whether a line terminator scanned now terminates a restricted production.
//
// A keyword following `.` names a property, e.g. `a.return`, and restricts nothing.
func (l *Lexer) restricts() bool {
	last := l.lastSignificant
	if last == nil || !last.Kind.IsRestricted() {
		return false
	}

	if n := len(l.history); n > 0 && l.history[n-1].tok == last {
		return !l.history[n-1].lastSignificant.Is(token.Period)
	}

	return true
}
