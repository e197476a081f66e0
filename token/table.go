// SPDX-License-Identifier: MIT
package token

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Punctuator pairs an operator/delimiter spelling with its Kind.
	Punctuator struct {
		Text string
		Kind Kind
	}
)

// Lookup errors.
var (
	ErrUnknownKind = errors.New("unknown token kind")
)

// Punctuators lists every operator & delimiter, longest spelling first.
//
// Matching the list in order yields the longest match.
var Punctuators = []Punctuator{
	{">>>=", URShiftEqual},

	{"===", StrEq},
	{"!==", StrNeq},
	{">>>", URShift},
	{"<<=", LShiftEqual},
	{">>=", RShiftEqual},

	{"==", EqEq},
	{"!=", Ne},
	{"<=", Le},
	{">=", Ge},
	{"||", Or},
	{"&&", And},
	{"++", PlusPlus},
	{"--", MinusMinus},
	{"<<", LShift},
	{">>", RShift},
	{"+=", PlusEqual},
	{"-=", MinusEqual},
	{"*=", MultEqual},
	{"/=", DivEqual},
	{"&=", AndEqual},
	{"%=", ModEqual},
	{"^=", XorEqual},
	{"|=", OrEqual},

	{".", Period},
	{",", Comma},
	{";", Semi},
	{":", Colon},
	{"+", Plus},
	{"-", Minus},
	{"*", Mult},
	{"/", Div},
	{"%", Mod},
	{"&", Band},
	{"|", Bor},
	{"^", Bxor},
	{"~", Bnot},
	{"?", CondOp},
	{"!", Not},
	{"(", LParen},
	{")", RParen},
	{"{", LBrace},
	{"}", RBrace},
	{"[", LBracket},
	{"]", RBracket},
	{"=", Eq},
	{"<", Lt},
	{">", Gt},
}

// keywords maps reserved words (including future reserved words & literals) to their Kind.
var keywords = map[string]Kind{
	"break":      Break,
	"case":       Case,
	"catch":      Catch,
	"class":      Class,
	"const":      Const,
	"continue":   Continue,
	"debugger":   Debugger,
	"default":    Default,
	"delete":     Delete,
	"do":         Do,
	"else":       Else,
	"enum":       Enum,
	"export":     Export,
	"extends":    Extends,
	"false":      False,
	"finally":    Finally,
	"for":        For,
	"function":   Function,
	"if":         If,
	"import":     Import,
	"in":         In,
	"instanceof": Instanceof,
	"new":        New,
	"null":       Null,
	"return":     Return,
	"super":      Super,
	"switch":     Switch,
	"this":       This,
	"throw":      Throw,
	"true":       True,
	"try":        Try,
	"typeof":     Typeof,
	"var":        Var,
	"void":       Void,
	"while":      While,
	"with":       With,
}

// divisionKinds holds the kinds after which `/` may be the division operator.
var divisionKinds = [punctuatorEnd]bool{
	ID:         true,
	Number:     true,
	String:     true,
	Regex:      true,
	True:       true,
	False:      true,
	Null:       true,
	This:       true,
	PlusPlus:   true,
	MinusMinus: true,
	RParen:     true,
	RBrace:     true,
	RBracket:   true,
}

var kindNames = map[Kind]string{
	Illegal:        "ILLEGAL",
	EOF:            "EOF",
	LineTerminator: "LINE_TERMINATOR",
	LineComment:    "LINE_COMMENT",
	BlockComment:   "BLOCK_COMMENT",
	AutoSemi:       "AUTOSEMI",
	ID:             "ID",
	Number:         "NUMBER",
	String:         "STRING",
	Regex:          "REGEX",

	Break:      "BREAK",
	Case:       "CASE",
	Catch:      "CATCH",
	Class:      "CLASS",
	Const:      "CONST",
	Continue:   "CONTINUE",
	Debugger:   "DEBUGGER",
	Default:    "DEFAULT",
	Delete:     "DELETE",
	Do:         "DO",
	Else:       "ELSE",
	Enum:       "ENUM",
	Export:     "EXPORT",
	Extends:    "EXTENDS",
	False:      "FALSE",
	Finally:    "FINALLY",
	For:        "FOR",
	Function:   "FUNCTION",
	If:         "IF",
	Import:     "IMPORT",
	In:         "IN",
	Instanceof: "INSTANCEOF",
	New:        "NEW",
	Null:       "NULL",
	Return:     "RETURN",
	Super:      "SUPER",
	Switch:     "SWITCH",
	This:       "THIS",
	Throw:      "THROW",
	True:       "TRUE",
	Try:        "TRY",
	Typeof:     "TYPEOF",
	Var:        "VAR",
	Void:       "VOID",
	While:      "WHILE",
	With:       "WITH",

	Period:       "PERIOD",
	Comma:        "COMMA",
	Semi:         "SEMI",
	Colon:        "COLON",
	Plus:         "PLUS",
	Minus:        "MINUS",
	Mult:         "MULT",
	Div:          "DIV",
	Mod:          "MOD",
	Band:         "BAND",
	Bor:          "BOR",
	Bxor:         "BXOR",
	Bnot:         "BNOT",
	CondOp:       "CONDOP",
	Not:          "NOT",
	LParen:       "LPAREN",
	RParen:       "RPAREN",
	LBrace:       "LBRACE",
	RBrace:       "RBRACE",
	LBracket:     "LBRACKET",
	RBracket:     "RBRACKET",
	Eq:           "EQ",
	EqEq:         "EQEQ",
	Ne:           "NE",
	StrEq:        "STREQ",
	StrNeq:       "STRNEQ",
	Lt:           "LT",
	Gt:           "GT",
	Le:           "LE",
	Ge:           "GE",
	Or:           "OR",
	And:          "AND",
	PlusPlus:     "PLUSPLUS",
	MinusMinus:   "MINUSMINUS",
	LShift:       "LSHIFT",
	RShift:       "RSHIFT",
	URShift:      "URSHIFT",
	PlusEqual:    "PLUSEQUAL",
	MinusEqual:   "MINUSEQUAL",
	MultEqual:    "MULTEQUAL",
	DivEqual:     "DIVEQUAL",
	LShiftEqual:  "LSHIFTEQUAL",
	RShiftEqual:  "RSHIFTEQUAL",
	URShiftEqual: "URSHIFTEQUAL",
	AndEqual:     "ANDEQUAL",
	ModEqual:     "MODEQUAL",
	XorEqual:     "XOREQUAL",
	OrEqual:      "OREQUAL",
}

// Keyword returns the Kind of a reserved word.
func Keyword(word string) (k Kind, ok bool) {
	k, ok = keywords[word]
	return
}

// Names lists the names of every Kind, sorted.
func Names() (names []string) {
	names = maps.Values(kindNames)
	slices.Sort(names)

	return
}

// Lookup resolves a Kind from its name, ignoring case.
//
// An unknown name yields an error suggesting the closest known name.
func Lookup(name string) (Kind, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == upper {
			return k, nil
		}
	}

	ranks := fuzzy.RankFindFold(upper, Names())
	if len(ranks) < 1 {
		return Illegal, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	sort.Sort(ranks)

	return Illegal, fmt.Errorf("%w: %q, did you mean %s?", ErrUnknownKind, name, ranks[0].Target)
}
