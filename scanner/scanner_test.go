// SPDX-License-Identifier: MIT
package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fisherprime/ecmalex/token"
)

// scanAll scans the source in Normal mode up to EOF.
func scanAll(t *testing.T, source string) (raws []Raw) {
	t.Helper()

	s := New(source)
	for {
		raw, err := s.Scan(Normal)
		require.NoError(t, err)

		if raw.Kind == token.EOF {
			return
		}
		raws = append(raws, raw)
	}
}

func TestScanner_Scan(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []Raw
	}{
		{
			name:   "skips whitespace",
			source: "a \t= 1",
			want: []Raw{
				{Text: "a", Kind: token.ID, Offset: 0},
				{Text: "=", Kind: token.Eq, Offset: 3},
				{Text: "1", Kind: token.Number, Offset: 5},
			},
		},
		{
			name:   "longest punctuator",
			source: "a>>>=b!==c",
			want: []Raw{
				{Text: "a", Kind: token.ID, Offset: 0},
				{Text: ">>>=", Kind: token.URShiftEqual, Offset: 1},
				{Text: "b", Kind: token.ID, Offset: 5},
				{Text: "!==", Kind: token.StrNeq, Offset: 6},
				{Text: "c", Kind: token.ID, Offset: 9},
			},
		},
		{
			name:   "numbers",
			source: "0x1F 1.5e+3 .5 3.",
			want: []Raw{
				{Text: "0x1F", Kind: token.Number, Offset: 0},
				{Text: "1.5e+3", Kind: token.Number, Offset: 5},
				{Text: ".5", Kind: token.Number, Offset: 12},
				{Text: "3.", Kind: token.Number, Offset: 15},
			},
		},
		{
			name:   "incomplete exponent",
			source: "1e",
			want: []Raw{
				{Text: "1", Kind: token.Number, Offset: 0},
				{Text: "e", Kind: token.ID, Offset: 1},
			},
		},
		{
			name:   "member access",
			source: "a.b",
			want: []Raw{
				{Text: "a", Kind: token.ID, Offset: 0},
				{Text: ".", Kind: token.Period, Offset: 1},
				{Text: "b", Kind: token.ID, Offset: 2},
			},
		},
		{
			name:   "strings",
			source: `'a\'b' "\x41B" "a\` + "\n" + `b"`,
			want: []Raw{
				{Text: `'a\'b'`, Kind: token.String, Offset: 0},
				{Text: `"\x41B"`, Kind: token.String, Offset: 7},
				{Text: "\"a\\\nb\"", Kind: token.String, Offset: 15},
			},
		},
		{
			name:   "keywords & escaped identifiers",
			source: `if \u0069f $_a1`,
			want: []Raw{
				{Text: "if", Kind: token.If, Offset: 0},
				{Text: `\u0069f`, Kind: token.ID, Offset: 3},
				{Text: "$_a1", Kind: token.ID, Offset: 11},
			},
		},
		{
			name:   "unicode identifier",
			source: "caf\u00e9\u200c",
			want:   []Raw{{Text: "caf\u00e9\u200c", Kind: token.ID, Offset: 0}},
		},
		{
			name:   "line terminators",
			source: "a\r\nb\u2028c",
			want: []Raw{
				{Text: "a", Kind: token.ID, Offset: 0},
				{Text: "\r\n", Kind: token.LineTerminator, Offset: 1},
				{Text: "b", Kind: token.ID, Offset: 3},
				{Text: "\u2028", Kind: token.LineTerminator, Offset: 4},
				{Text: "c", Kind: token.ID, Offset: 7},
			},
		},
		{
			name:   "comments",
			source: "// x\n/* y\n*/z",
			want: []Raw{
				{Text: "// x", Kind: token.LineComment, Offset: 0},
				{Text: "\n", Kind: token.LineTerminator, Offset: 4},
				{Text: "/* y\n*/", Kind: token.BlockComment, Offset: 5},
				{Text: "z", Kind: token.ID, Offset: 12},
			},
		},
		{
			name:   "division",
			source: "a/b",
			want: []Raw{
				{Text: "a", Kind: token.ID, Offset: 0},
				{Text: "/", Kind: token.Div, Offset: 1},
				{Text: "b", Kind: token.ID, Offset: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanAll(t, tt.source))
		})
	}
}

func TestScanner_Scan_Regex(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantErr bool
	}{
		{name: "flags", source: "/a*/gi,1", want: "/a*/gi"},
		{name: "slash in class", source: "/[/]+/.test(x)", want: "/[/]+/"},
		{name: "escaped slash", source: `/a\/b/ c`, want: `/a\/b/`},
		{name: "unterminated", source: "/abc", wantErr: true},
		{name: "line terminator", source: "/ab\nc/", wantErr: true},
		{name: "unterminated class", source: "/[/", wantErr: true},
		{name: "comment", source: "/*a*/", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.source)

			raw, err := s.Scan(RegexLiteral)
			if tt.wantErr {
				var m *MatchError
				require.ErrorAs(t, err, &m)
				assert.ErrorIs(t, err, ErrNoMatch)
				assert.Equal(t, RegexLiteral, m.Mode)
				assert.Equal(t, 0, s.Pos())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, Raw{Text: tt.want, Kind: token.Regex}, raw)
		})
	}
}

func TestScanner_Scan_Failure(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantOffset int
	}{
		{name: "illegal character", source: "a #", wantOffset: 2},
		{name: "unterminated string", source: `x = "abc`, wantOffset: 4},
		{name: "string line terminator", source: "'a\nb'", wantOffset: 0},
		{name: "invalid hexadecimal escape", source: `"\x4g"`, wantOffset: 0},
		{name: "invalid unicode escape", source: `'\u12'`, wantOffset: 0},
		{name: "unterminated comment", source: "/* a", wantOffset: 0},
		{name: "bad hexadecimal literal", source: "0x", wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.source)

			var err error
			for err == nil {
				var raw Raw
				raw, err = s.Scan(Normal)
				require.NotEqual(t, token.EOF, raw.Kind, "reached EOF without failure")
			}

			var m *MatchError
			require.ErrorAs(t, err, &m)
			assert.Equal(t, tt.wantOffset, m.Offset)
			assert.Equal(t, tt.wantOffset, s.Pos())
		})
	}
}

func TestScanner_Seek(t *testing.T) {
	s := New("a/b")

	require.NoError(t, s.Seek(1))
	raw, err := s.Scan(RegexLiteral)
	require.Error(t, err)
	assert.Equal(t, token.Illegal, raw.Kind)

	assert.ErrorIs(t, s.Seek(-1), ErrInvalidSeekPos)
	assert.ErrorIs(t, s.Seek(4), ErrInvalidSeekPos)
	require.NoError(t, s.Seek(3))

	raw, err = s.Scan(Normal)
	require.NoError(t, err)
	assert.Equal(t, Raw{Kind: token.EOF, Offset: 3}, raw)
}

func TestScanner_AtSlash(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{source: "  /a/", want: true},
		{source: "/=", want: true},
		{source: "// c"},
		{source: "/* c */"},
		{source: "a/"},
		{source: ""},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.source).AtSlash())
		})
	}
}

func TestCharacterClasses(t *testing.T) {
	assert.True(t, IsWhitespace('\u00a0'))
	assert.True(t, IsWhitespace('\u3000'))
	assert.True(t, IsWhitespace(byteOrderMark))
	assert.False(t, IsWhitespace('\n'))
	assert.False(t, IsWhitespace(eof))

	assert.True(t, IsLineTerminator(paragraphSeparator))
	assert.False(t, IsLineTerminator('\v'))

	assert.True(t, IsIdentifierStart('\u00e9'))
	assert.True(t, IsIdentifierStart('$'))
	assert.False(t, IsIdentifierStart('1'))
	assert.False(t, IsIdentifierStart('@'))

	assert.True(t, IsIdentifierPart('1'))
	assert.True(t, IsIdentifierPart(zeroWidthJoiner))
	assert.False(t, IsIdentifierPart('-'))

	assert.True(t, IsHexDigit('F'))
	assert.False(t, IsHexDigit('g'))
	assert.False(t, IsHexDigit('\u0660'))
}

func BenchmarkScanner_Scan(b *testing.B) {
	src := "for (var i = 0; i < 10; i++) { x = /a[/]b/g.exec(s) || 'none'; } // done"

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		s := New(src)
		prev := token.Illegal
		for {
			mode := Normal
			if prev == token.Eq && s.AtSlash() {
				mode = RegexLiteral
			}

			raw, err := s.Scan(mode)
			if err != nil || raw.Kind == token.EOF {
				break
			}
			prev = raw.Kind
		}
	}
}
