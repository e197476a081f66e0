// SPDX-License-Identifier: MIT
package recovery

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fisherprime/ecmalex/lexer"
	"gitlab.com/fisherprime/ecmalex/token"
)

func render(tokens []*token.Token) (out []string) {
	for _, tok := range tokens {
		out = append(out, tok.String())
	}

	return
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name          string
		source        string
		want          []string
		wantRecovered int
	}{
		{
			name:          "block",
			source:        "{}/a/g",
			want:          []string{"LBRACE {", "RBRACE }", "REGEX /a/g"},
			wantRecovered: 1,
		},
		{
			name:   "object literal",
			source: "x = {}/a/g",
			want: []string{
				"ID x", "EQ =", "LBRACE {", "RBRACE }", "DIV /", "ID a", "DIV /", "ID g",
			},
		},
		{
			name:   "function expression",
			source: "a = function(){}/1/",
			want: []string{
				"ID a", "EQ =", "FUNCTION function", "LPAREN (", "RPAREN )", "LBRACE {",
				"RBRACE }", "DIV /", "NUMBER 1", "DIV /",
			},
		},
		{
			name:   "function declaration",
			source: "function f(){}\n/=/.test(s)",
			want: []string{
				"FUNCTION function", "ID f", "LPAREN (", "RPAREN )", "LBRACE {", "RBRACE }",
				"REGEX /=/", "PERIOD .", "ID test", "LPAREN (", "ID s", "RPAREN )",
			},
			wantRecovered: 1,
		},
		{
			name:   "statement block",
			source: "if (x) { y } /z/g.exec(w)",
			want: []string{
				"IF if", "LPAREN (", "ID x", "RPAREN )", "LBRACE {", "ID y", "RBRACE }",
				"REGEX /z/g", "PERIOD .", "ID exec", "LPAREN (", "ID w", "RPAREN )",
			},
			wantRecovered: 1,
		},
		{
			name:   "nested object literal",
			source: "o = {a: {b: 1}/2}",
			want: []string{
				"ID o", "EQ =", "LBRACE {", "ID a", "COLON :", "LBRACE {", "ID b", "COLON :",
				"NUMBER 1", "RBRACE }", "DIV /", "NUMBER 2", "RBRACE }",
			},
		},
		{
			name:   "labelled block",
			source: "l: {}/x/",
			want: []string{
				"ID l", "COLON :", "LBRACE {", "RBRACE }", "REGEX /x/",
			},
			wantRecovered: 1,
		},
		{
			name:   "conditional expression",
			source: "x = y ? {} : {} / 2",
			want: []string{
				"ID x", "EQ =", "ID y", "CONDOP ?", "LBRACE {", "RBRACE }", "COLON :", "LBRACE {",
				"RBRACE }", "DIV /", "NUMBER 2",
			},
		},
		{
			name:   "conditional expression in object literal",
			source: "o = {a: y ? {b: 1} : {}/2}",
			want: []string{
				"ID o", "EQ =", "LBRACE {", "ID a", "COLON :", "ID y", "CONDOP ?", "LBRACE {",
				"ID b", "COLON :", "NUMBER 1", "RBRACE }", "COLON :", "LBRACE {", "RBRACE }",
				"DIV /", "NUMBER 2", "RBRACE }",
			},
		},
		{
			name:   "label after conditional statement",
			source: "a ? b : c; l: {}/x/",
			want: []string{
				"ID a", "CONDOP ?", "ID b", "COLON :", "ID c", "SEMI ;", "ID l", "COLON :",
				"LBRACE {", "RBRACE }", "REGEX /x/",
			},
			wantRecovered: 1,
		},
		{
			name:          "block on a new line",
			source:        "a\n{}/re/g",
			want:          []string{"ID a", "LBRACE {", "RBRACE }", "REGEX /re/g"},
			wantRecovered: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(lexer.New(tt.source))

			var got []*token.Token
			for {
				tok, err := s.Next()
				require.NoError(t, err)
				if tok.Kind == token.EOF {
					break
				}
				got = append(got, tok)
			}

			if diff := cmp.Diff(tt.want, render(got)); diff != "" {
				t.Errorf("Stream.Next() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantRecovered, s.Recovered())

			tokens, err := Tokenize(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, render(tokens))
		})
	}
}

func TestStream_RegexOffset(t *testing.T) {
	s := New(lexer.New("{}/a/g"))

	var regex *token.Token
	for regex == nil {
		tok, err := s.Next()
		require.NoError(t, err)
		if tok.Kind == token.Regex {
			regex = tok
		}
	}

	assert.Equal(t, 2, regex.Offset)
	assert.Same(t, regex, s.Lexer().LastSignificantToken())
}

func TestStream_Semicolon(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	s := New(lexer.New("a\n{}/b/", lexer.WithLogger(logger), lexer.WithDebug(true)))

	a, err := s.Next()
	require.NoError(t, err)
	lbrace, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, token.LBrace, lbrace.Kind)

	// A parser rejects `a {`.
	semi, ok := s.Semicolon(lbrace)
	require.True(t, ok)
	assert.Equal(t, token.AutoSemi, semi.Kind)
	assert.Equal(t, lbrace.Offset, semi.Offset)

	var rest []*token.Token
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		if tok.Kind == token.EOF {
			break
		}
		rest = append(rest, tok)
	}

	// The re-delivered `{` opens a block: it follows the semicolon.
	assert.Equal(t, []string{"LBRACE {", "RBRACE }", "REGEX /b/"}, render(rest))
	assert.Same(t, lbrace, rest[0])
	assert.Equal(t, 1, s.Recovered())

	_, ok = s.Semicolon(a)
	assert.False(t, ok)

	assert.Contains(t, buf.String(), "follows a block, re-scanning")
	assert.Contains(t, buf.String(), "inserted=true")
}

func TestStream_Error(t *testing.T) {
	_, err := Tokenize("{}/a")

	var re *lexer.RegexSyntaxError
	assert.ErrorAs(t, err, &re)
}
