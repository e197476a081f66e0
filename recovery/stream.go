// SPDX-License-Identifier: MIT

// Package recovery drives a lexer.Lexer the way a parser's error recovery would, without a
// grammar.
//
// The lexer assumes a `/` following `}` is a division. That holds when the brace closes an
// object literal or a function expression, but a `/` after a block starts a regular
// expression. A Stream classifies every `{` from its lexical context & asks the lexer to
// re-scan the `/` when it follows a block.
package recovery

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"gitlab.com/fisherprime/ecmalex/lexer"
	"gitlab.com/fisherprime/ecmalex/token"
)

type (
	// Stream wraps a lexer.Lexer, correcting divisions that follow a block.
	Stream struct {
		lexer  *lexer.Lexer
		logger logrus.FieldLogger
		debug  bool

		state
		// saved is the state before last was observed.
		saved state
		// last is the last significant token observed.
		last *token.Token

		recovered int
	}

	state struct {
		// braces holds, for each open `{`, whether it opened a block.
		braces []bool
		// prev is the last significant token delivered, AUTOSEMI included.
		prev *token.Token
		// closedBlock is set when prev is a `}` that closed a block.
		closedBlock bool

		// conds holds, for each unmatched `?`, the number of braces open at it.
		conds []int
		// condColon is set when prev is the `:` of a conditional expression.
		condColon bool

		// function is the pending `function` keyword whose body is yet to open.
		function *token.Token
		// functionExpr reports whether function is in expression position.
		functionExpr bool
	}
)

// New creates a new Stream over a Lexer.
func New(l *lexer.Lexer) *Stream {
	cfg := l.Config()

	return &Stream{lexer: l, logger: cfg.Logger, debug: cfg.Debug}
}

// Tokenize lexes the complete source through a Stream, returning every token before
// token.EOF.
func Tokenize(source string, opts ...lexer.Option) (tokens []*token.Token, err error) {
	s := New(lexer.New(source, opts...))
	for {
		var tok *token.Token
		if tok, err = s.Next(); err != nil {
			return
		}
		if tok.Kind == token.EOF {
			return
		}

		tokens = append(tokens, tok)
	}
}

// Lexer obtains the wrapped Lexer.
func (s *Stream) Lexer() *lexer.Lexer { return s.lexer }

// Recovered is the number of divisions re-scanned as regular expressions.
func (s *Stream) Recovered() int { return s.recovered }

// Next returns the next token, re-scanning a `/` or `/=` that follows a block as a regular
// expression literal.
func (s *Stream) Next() (tok *token.Token, err error) {
	if tok, err = s.lexer.Next(); err != nil {
		return
	}

	if tok.Is(token.Div, token.DivEqual) && s.prev.Is(token.RBrace) && s.closedBlock {
		if s.debug {
			s.logger.Debugf("recovery: %s at %s follows a block, re-scanning", tok, tok.Position())
		}

		if tok, err = s.lexer.Undo(1); err != nil {
			return
		}
		s.recovered++
	}

	s.observe(tok)

	return
}

// Semicolon asks the lexer to insert a semicolon in front of tok, the token the parser
// could not accept.
func (s *Stream) Semicolon(tok *token.Token) (semi *token.Token, ok bool) {
	if semi, ok = s.lexer.TryInsertSemicolon(tok); ok {
		if tok != nil && tok == s.last {
			// tok is delivered again, after the semicolon.
			s.state = s.saved
		}
		s.observe(semi)
	}

	if s.debug {
		s.logger.WithField("inserted", ok).Debugf("recovery: semicolon before %s", tok)
	}

	return
}

// observe tracks brace classification for a delivered token.
func (s *Stream) observe(tok *token.Token) {
	switch {
	case tok.Kind.IsTrivia(), tok.Kind == token.EOF:
		return
	}

	s.saved, s.last = s.state.clone(), tok

	colon := false
	switch {
	case tok.Kind == token.Function:
		s.function, s.functionExpr = tok, !s.statementStart()
	case tok.Kind == token.CondOp:
		s.conds = append(s.conds, len(s.braces))
	case tok.Kind == token.Colon:
		if n := len(s.conds); n > 0 && s.conds[n-1] == len(s.braces) {
			s.conds = s.conds[:n-1]
			colon = true
		}
	case tok.Is(token.Semi, token.AutoSemi):
		s.dropConds(len(s.braces))
	case tok.Kind == token.LBrace:
		block := s.opensBlock(tok)
		if s.function != nil && s.prev.Is(token.RParen) {
			block = !s.functionExpr
			s.function = nil
		}
		s.braces = append(s.braces, block)
	case tok.Kind == token.RBrace:
		s.closedBlock = false
		if n := len(s.braces); n > 0 {
			s.closedBlock = s.braces[n-1]
			s.braces = s.braces[:n-1]
		}
		s.dropConds(len(s.braces) + 1)
	}

	s.prev, s.condColon = tok, colon
}

// dropConds forgets the unmatched `?` seen with depth or more braces open.
func (s *Stream) dropConds(depth int) {
	for n := len(s.conds); n > 0 && s.conds[n-1] >= depth; n-- {
		s.conds = s.conds[:n-1]
	}
}

// statementStart reports whether the next token starts a statement.
func (s *Stream) statementStart() bool {
	switch {
	case s.prev == nil:
		return true
	case s.prev.Is(token.Semi, token.AutoSemi):
		return true
	case s.prev.Is(token.LBrace):
		return s.innerBlock()
	case s.prev.Is(token.RBrace):
		return s.closedBlock
	default:
		return false
	}
}

// opensBlock classifies a `{` from the token preceding it.
func (s *Stream) opensBlock(lbrace *token.Token) bool {
	switch {
	case s.statementStart():
		return true
	case s.prev.Is(token.RParen, token.Else, token.Do, token.Try, token.Finally):
		return true
	case lbrace.NewlineBefore && s.prev.Kind.ImpliesDivision():
		// A semicolon is inserted after a complete expression, `a\n{` cannot continue it.
		return true
	case s.prev.Is(token.Colon):
		// Labelled statements & case clauses, unless within an object literal or after `? :`.
		return !s.condColon && s.innerBlock()
	default:
		return false
	}
}

// innerBlock reports whether the innermost open brace is a block, or there is none.
func (s *Stream) innerBlock() bool {
	n := len(s.braces)

	return n < 1 || s.braces[n-1]
}

func (st state) clone() state {
	st.braces = slices.Clone(st.braces)
	st.conds = slices.Clone(st.conds)

	return st
}
