// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"

	"gitlab.com/fisherprime/ecmalex/token"
)

type (
	// frame tracks the brackets opened within an `if`/`for`/`while` condition, or at the top
	// level for the base frame.
	frame struct {
		// marker is the last significant token produced within the frame; frozen to the
		// conditional keyword while the condition's own frame is open.
		marker *token.Token
		// inner holds the unclosed opening brackets of the frame.
		inner []*token.Token
	}

	// frameStack is never empty, the base frame is always present.
	frameStack []frame

	frameOp int

	// frameChange records a single update to the frameStack so that it can be reverted.
	frameChange struct {
		// marker is the top frame's marker before the update.
		marker *token.Token
		// popped is the opening bracket removed from inner.
		popped *token.Token
		// frame is the frame removed from the stack.
		frame frame
		op    frameOp
	}

	// mismatch reports a closing bracket without a matching opening bracket.
	mismatch struct {
		closer *token.Token
		opener *token.Token
	}
)

const (
	opMark frameOp = iota
	opPushInner
	opPopInner
	opPushFrame
	opPopFrame
)

func (m *mismatch) Error() string {
	if m.opener == nil {
		return fmt.Sprintf("'%s' without an opening bracket", m.closer.Text)
	}

	return fmt.Sprintf("'%s' does not close '%s' at %s", m.closer.Text, m.opener.Text, m.opener.Position())
}

func newFrameStack() frameStack { return frameStack{{}} }

func (fs frameStack) top() *frame { return &fs[len(fs)-1] }

// update records tok's effect on bracket nesting.
//
// prev is the last significant token before tok.
func (fs *frameStack) update(tok, prev *token.Token) (change frameChange, err error) {
	top := fs.top()
	change.marker = top.marker

	switch {
	case tok.Kind == token.LParen && prev != nil && prev.Kind.IsConditional():
		// Freeze the enclosing marker to the keyword until the condition closes.
		top.marker = prev
		*fs = append(*fs, frame{marker: tok})
		change.op = opPushFrame
	case tok.Kind.Opens():
		top.inner = append(top.inner, tok)
		top.marker = tok
		change.op = opPushInner
	case tok.Kind.Closes():
		if len(top.inner) > 0 {
			opener := top.inner[len(top.inner)-1]
			if opener.Kind.Closer() != tok.Kind {
				err = &mismatch{closer: tok, opener: opener}
				return
			}

			change.popped = opener
			top.inner = top.inner[:len(top.inner)-1]
			top.marker = tok
			change.op = opPopInner

			return
		}

		if tok.Kind != token.RParen || len(*fs) < 2 {
			err = &mismatch{closer: tok}
			return
		}

		// Closing a condition, the enclosing frame keeps the keyword as its marker.
		change.frame = *top
		*fs = (*fs)[:len(*fs)-1]
		change.op = opPopFrame
	default:
		top.marker = tok
		change.op = opMark
	}

	return
}

// revert undoes a change returned by update; changes must be reverted newest first.
func (fs *frameStack) revert(change frameChange) {
	switch change.op {
	case opPushInner:
		top := fs.top()
		top.inner = top.inner[:len(top.inner)-1]
	case opPopInner:
		top := fs.top()
		top.inner = append(top.inner, change.popped)
	case opPushFrame:
		*fs = (*fs)[:len(*fs)-1]
	case opPopFrame:
		*fs = append(*fs, change.frame)
		return
	}

	fs.top().marker = change.marker
}

// depth is the number of frames, including the base frame.
func (fs frameStack) depth() int { return len(fs) }
