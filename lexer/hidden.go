// SPDX-License-Identifier: MIT
package lexer

import "gitlab.com/fisherprime/ecmalex/token"

type (
	// hiddenBuffer accumulates comments until the next significant token absorbs them.
	hiddenBuffer struct {
		tokens []*token.Token
	}
)

func (h *hiddenBuffer) push(t *token.Token) { h.tokens = append(h.tokens, t) }

// drain empties the buffer, returning its content in source order.
func (h *hiddenBuffer) drain() (tokens []*token.Token) {
	tokens, h.tokens = h.tokens, nil
	return
}

// restore replaces the buffer's content, used when undoing a token that absorbed it.
func (h *hiddenBuffer) restore(tokens []*token.Token) {
	h.tokens = append([]*token.Token(nil), tokens...)
}
