// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"

	"gitlab.com/fisherprime/ecmalex/token"
)

type (
	// checkpoint holds the Lexer state preceding a significant token.
	checkpoint struct {
		tok *token.Token

		prev            *token.Token
		lastSignificant *token.Token

		change frameChange

		// lines is the LineIndex length before tok was recorded.
		lines int
	}
)

// maxUndo bounds the number of tokens that can be undone.
const maxUndo = 2

// remember records the checkpoint of a significant token, dropping the oldest.
func (l *Lexer) remember(cp checkpoint) {
	if len(l.history) == maxUndo {
		copy(l.history, l.history[1:])
		l.history = l.history[:maxUndo-1]
	}
	l.history = append(l.history, cp)
}

// Undo rewinds the last n significant tokens & re-scans from the start of the first of them as
// a regular expression literal, returning the re-scanned token.
//
// The first undone token must be a `/` or `/=`: Undo serves the parser's recovery when a `/`
// guessed to be division can only be a regular expression, e.g. after a `}` closing a block.
// Pending tokens are discarded; the caller continues with Next.
func (l *Lexer) Undo(n int) (tok *token.Token, err error) {
	if n < 1 || n > len(l.history) {
		err = fmt.Errorf("%w: %d token(s), %d available", ErrInvalidUndo, n, len(l.history))
		return
	}

	first := len(l.history) - n
	cp := l.history[first]
	if !cp.tok.Is(token.Div, token.DivEqual) {
		err = fmt.Errorf("%w: %s is not a division", ErrInvalidUndo, cp.tok)
		return
	}

	for index := len(l.history) - 1; index >= first; index-- {
		l.frames.revert(l.history[index].change)
	}

	if err = l.scanner.Seek(cp.tok.Offset); err != nil {
		return
	}
	l.lines.Truncate(cp.lines)
	l.hidden.restore(cp.tok.Hidden)

	l.prev, l.lastSignificant = cp.prev, cp.lastSignificant
	l.newlineBefore = cp.tok.NewlineBefore
	l.current = l.lastSignificant

	l.history = l.history[:first]
	l.pending = l.pending[:0]
	l.eof, l.semiFor, l.err = nil, nil, nil
	l.semiAtEnd = false
	l.forceRegex = true

	if l.cfg.Debug {
		l.logger.Debugf("lexer Undo: %d token(s) from offset %d", n, cp.tok.Offset)
	}

	return l.Next()
}
