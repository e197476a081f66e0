// SPDX-License-Identifier: MIT
package lexer

// REF: https://262.ecma-international.org/5.1/#sec-7

import (
	"errors"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/ecmalex/scanner"
	"gitlab.com/fisherprime/ecmalex/token"
)

type (
	// Lexer produces ECMAScript tokens from an in-memory source, resolving the division/regex
	// ambiguity & automatic semicolon insertion from lexical context.
	//
	// A Lexer is a sequential state machine, it must not be used concurrently.
	Lexer struct {
		cfg    *Config
		logger logrus.FieldLogger

		scanner *scanner.Scanner
		lines   *LineIndex
		hidden  hiddenBuffer
		frames  frameStack

		// pending holds tokens to re-deliver before scanning further.
		pending []*token.Token
		// history holds the checkpoints of the last significant tokens, for Undo.
		history []checkpoint

		// current is the token last returned to the caller.
		current *token.Token
		// prev is the last token scanned, trivia included.
		prev *token.Token
		// lastSignificant is the last token that is neither a comment nor a line terminator.
		lastSignificant *token.Token
		// eof is set once the end of the source is reached.
		eof *token.Token
		// semiFor is the token an AUTOSEMI was last inserted in front of.
		semiFor *token.Token
		// semiAtEnd is set once an AUTOSEMI was inserted at the end of the input.
		semiAtEnd bool

		// err is the fatal error returned by every call following it.
		err error

		// newlineBefore is set when a line terminator follows lastSignificant.
		newlineBefore bool
		// forceRegex scans the next token as a regular expression literal.
		forceRegex bool
	}
)

const maxPending = 2

// New creates a new Lexer for the source.
func New(source string, opts ...Option) *Lexer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.Validate()

	return &Lexer{
		cfg:    cfg,
		logger: cfg.Logger,

		scanner: scanner.New(source),
		lines:   NewLineIndex(),
		frames:  newFrameStack(),

		pending: make([]*token.Token, 0, maxPending),
		history: make([]checkpoint, 0, maxUndo),
	}
}

// Tokenize lexes the complete source, returning every token before token.EOF.
func Tokenize(source string, opts ...Option) (tokens []*token.Token, err error) {
	l := New(source, opts...)
	for {
		var tok *token.Token
		if tok, err = l.Next(); err != nil {
			return
		}
		if tok.Kind == token.EOF {
			return
		}

		tokens = append(tokens, tok)
	}
}

// Config obtains the Lexer's configuration.
func (l *Lexer) Config() Config { return *l.cfg }

// CurrentToken obtains the token last returned by Next, TryInsertSemicolon or Undo.
func (l *Lexer) CurrentToken() *token.Token { return l.current }

// LastSignificantToken obtains the last token that is neither a comment nor a line terminator.
func (l *Lexer) LastSignificantToken() *token.Token { return l.lastSignificant }

// LookupColumn computes the 1-based column of an offset on a 1-based line.
func (l *Lexer) LookupColumn(line, offset int) int { return l.lines.Column(line, offset) }

// Lines obtains a copy of the line start offsets seen so far.
func (l *Lexer) Lines() []int { return l.lines.Starts() }

// Next returns the next token.
//
// The end of the source is a token.EOF token, returned again on further calls. A malformed
// source yields a *SyntaxError or *RegexSyntaxError, returned again on further calls.
func (l *Lexer) Next() (tok *token.Token, err error) {
	if l.err != nil {
		return nil, l.err
	}

	if len(l.pending) > 0 {
		tok = l.pending[0]
		l.pending = l.pending[:copy(l.pending, l.pending[1:])]
		l.current = tok

		return
	}

	if l.eof != nil {
		l.current = l.eof
		return l.eof, nil
	}

	for {
		var raw *token.Token
		if raw, err = l.scan(); err != nil {
			return nil, l.fail(err)
		}

		switch {
		case raw.Kind == token.LineTerminator:
			l.prev = raw
			if l.restricts() {
				return l.restrictedSemicolon(), nil
			}
			l.newlineBefore = true
		case raw.Kind.IsComment():
			if tok = l.comment(raw); tok != nil {
				return
			}
		case raw.Kind == token.EOF:
			raw.NewlineBefore = l.newlineBefore
			raw.Hidden = l.hidden.drain()
			l.eof, l.current = raw, raw

			if l.cfg.Debug {
				l.logger.Debugf("lexer Next: %s at %s", raw, raw.Position())
			}

			return raw, nil
		default:
			if err = l.produce(raw); err != nil {
				return nil, l.fail(err)
			}

			return raw, nil
		}
	}
}

// comment handles a comment token, returning the token to deliver if any.
func (l *Lexer) comment(raw *token.Token) (tok *token.Token) {
	l.prev = raw

	// A comment spanning lines counts as a line terminator.
	if l.lines.Len() > raw.Line {
		if l.restricts() {
			tok = l.restrictedSemicolon()
		}
		l.newlineBefore = true
	}

	switch {
	case !l.cfg.RetainComments:
	case l.cfg.YieldComments:
		if tok != nil {
			l.requeue(raw)
			return
		}

		l.current = raw
		tok = raw
	default:
		l.hidden.push(raw)
	}

	return
}

// scan matches the next raw token, choosing the scanner mode.
func (l *Lexer) scan() (tok *token.Token, err error) {
	mode := scanner.Normal
	if l.forceRegex || (l.scanner.AtSlash() && !l.divisionAllowed()) {
		mode = scanner.RegexLiteral
	}
	l.forceRegex = false

	raw, err := l.scanner.Scan(mode)
	if err != nil {
		return nil, l.failure(raw.Offset, mode)
	}

	line := l.lines.Len()
	tok = &token.Token{
		Kind:   raw.Kind,
		Text:   raw.Text,
		Line:   line,
		Column: l.lines.Column(line, raw.Offset),
		Offset: raw.Offset,
	}
	l.lines.Record(raw.Text, raw.Offset)

	return
}

// divisionAllowed decides whether a `/` is the division operator rather than the start of a
// regular expression literal.
func (l *Lexer) divisionAllowed() bool {
	check := l.lastSignificant
	if check == nil || check.Kind.IsTrivia() {
		check = l.prev
	}
	if check == nil || !check.Kind.ImpliesDivision() {
		return false
	}

	// A `)` closing an if/for/while condition is followed by a statement.
	marker := l.frames.top().marker

	return marker == nil || marker == l.lastSignificant || marker.Kind.ImpliesDivision()
}

// produce updates the Lexer state with a significant token.
func (l *Lexer) produce(tok *token.Token) error {
	cp := checkpoint{
		tok:             tok,
		prev:            l.prev,
		lastSignificant: l.lastSignificant,
		lines:           tok.Line,
	}

	tok.NewlineBefore = l.newlineBefore
	tok.Hidden = l.hidden.drain()

	change, err := l.frames.update(tok, l.lastSignificant)
	if err != nil {
		var m *mismatch
		if errors.As(err, &m) {
			return l.newSyntaxError(MismatchedBracket, tok.Offset, tok.Text, m.Error())
		}

		return err
	}

	cp.change = change
	l.remember(cp)

	l.prev, l.lastSignificant, l.current = tok, tok, tok
	l.newlineBefore = false

	if l.cfg.Debug {
		// Debug operation makes this operation un-inlinable.
		l.logger.Debugf("lexer Next: %s at %s", tok, tok.Position())
	}

	return nil
}

// requeue schedules tok for re-delivery by the next call to Next.
//
// At most one token is queued at a time: Next drains the queue before scanning.
func (l *Lexer) requeue(tok *token.Token) { l.pending = append(l.pending, tok) }

// fail records a fatal error.
func (l *Lexer) fail(err error) error {
	l.err = err

	if l.cfg.Debug {
		l.logger.Debugf("lexer failure: %v\nframes (depth %d): %s", err, l.frames.depth(), spew.Sprint(l.frames))
	}

	return err
}
