// SPDX-License-Identifier: MIT
package tokenfmt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/fxamacker/cbor/v2"

	"gitlab.com/fisherprime/ecmalex/token"
)

type (
	// Record is the interchange form of a token.Token.
	Record struct {
		Kind   string `json:"kind" cbor:"kind"`
		Text   string `json:"text" cbor:"text"`
		Line   int    `json:"line" cbor:"line"`
		Column int    `json:"column" cbor:"column"`
		Offset int    `json:"offset" cbor:"offset"`

		NewlineBefore bool     `json:"newline_before,omitempty" cbor:"newline_before,omitempty"`
		Hidden        []Record `json:"hidden,omitempty" cbor:"hidden,omitempty"`
	}
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// NewRecord converts a token.Token, hidden comments included.
func NewRecord(tok *token.Token) Record {
	r := Record{
		Kind:          tok.Kind.String(),
		Text:          tok.Text,
		Line:          tok.Line,
		Column:        tok.Column,
		Offset:        tok.Offset,
		NewlineBefore: tok.NewlineBefore,
	}
	for _, h := range tok.Hidden {
		r.Hidden = append(r.Hidden, NewRecord(h))
	}

	return r
}

// Token converts the Record back to a token.Token.
func (r Record) Token() (tok *token.Token, err error) {
	kind, err := token.Lookup(r.Kind)
	if err != nil {
		return nil, err
	}

	tok = &token.Token{
		Kind:          kind,
		Text:          r.Text,
		Line:          r.Line,
		Column:        r.Column,
		Offset:        r.Offset,
		NewlineBefore: r.NewlineBefore,
	}
	for _, h := range r.Hidden {
		var hidden *token.Token
		if hidden, err = h.Token(); err != nil {
			return nil, err
		}
		tok.Hidden = append(tok.Hidden, hidden)
	}

	return
}

// Encode writes tokens to w in a Format.
func Encode(w io.Writer, tokens []*token.Token, f Format) (err error) {
	records := make([]Record, 0, len(tokens))
	for _, tok := range tokens {
		records = append(records, NewRecord(tok))
	}

	switch f {
	case Text:
		bw := bufio.NewWriter(w)
		for _, r := range records {
			for _, h := range r.Hidden {
				writeText(bw, h, "\t")
			}
			writeText(bw, r, "")
		}

		return bw.Flush()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(records)
	case CBOR:
		var encMode cbor.EncMode
		if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
			return fmt.Errorf("failed to create CBOR encoder: %w", err)
		}

		return encMode.NewEncoder(w).Encode(records)
	case Dump:
		dumpConfig.Fdump(w, records)
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// Decode reads tokens written by Encode in the JSON or CBOR Format.
func Decode(r io.Reader, f Format) (tokens []*token.Token, err error) {
	var records []Record

	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(&records)
	case CBOR:
		err = cbor.NewDecoder(r).Decode(&records)
	default:
		err = fmt.Errorf("%w: %v", ErrNotDecodable, f)
	}
	if err != nil {
		return
	}

	tokens = make([]*token.Token, 0, len(records))
	for _, rec := range records {
		var tok *token.Token
		if tok, err = rec.Token(); err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	return
}

func writeText(w *bufio.Writer, r Record, indent string) {
	// Errors are reported by Flush.
	_, _ = fmt.Fprintf(w, "%s%d:%d %s %s\n", indent, r.Line, r.Column, r.Kind, strconv.Quote(r.Text))
}
