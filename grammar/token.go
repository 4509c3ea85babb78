// Package grammar provides the shared language runtime: tokens, vocabularies,
// arena parse trees, declarative rule tables, and the completion-candidate
// collector that runs over them.
package grammar

import "strconv"

// TokenType identifies a terminal symbol of a language grammar. Each language
// defines its own enum starting at zero.
type TokenType int

// NoTokenType marks the absence of a token type.
const NoTokenType TokenType = -1

// Token is a single lexed terminal with its position in the source.
// Lines and columns are 0-based; columns count bytes.
type Token struct {
	Type   TokenType
	Text   string
	Line   int
	Column int
	Offset int
}

// End returns the position just past the last character of the token.
// Multi-line tokens (block comments, raw strings) are accounted for.
func (t Token) End() (line, column int) {
	line, column = t.Line, t.Column
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] == '\n' {
			line++
			column = 0
		} else {
			column++
		}
	}
	return line, column
}

// Caret is the cursor position a completion request is made for
// (0-based line and byte column, like every other position here).
type Caret struct {
	Line   int
	Column int
}

// Before reports whether c sits strictly before the given position.
func (c Caret) Before(line, column int) bool {
	return c.Line < line || (c.Line == line && c.Column < column)
}

// TokenSet is a set of token types.
type TokenSet map[TokenType]bool

// NewTokenSet builds a set from the given types.
func NewTokenSet(types ...TokenType) TokenSet {
	s := make(TokenSet, len(types))
	for _, tt := range types {
		s[tt] = true
	}
	return s
}

// Vocabulary maps token types to their grammar names. Symbolic names are the
// identifiers a grammar uses for its tokens ("Workspace", "Val"); literal
// names are fixed spellings ("->", "{"). Keywords usually carry both,
// punctuation only a literal, free-form tokens possibly neither.
type Vocabulary struct {
	symbolic map[TokenType]string
	literal  map[TokenType]string
}

// NewVocabulary builds a vocabulary from symbolic and literal name tables.
// Either map may be nil. The maps are used as-is, not copied.
func NewVocabulary(symbolic, literal map[TokenType]string) Vocabulary {
	if symbolic == nil {
		symbolic = map[TokenType]string{}
	}
	if literal == nil {
		literal = map[TokenType]string{}
	}
	return Vocabulary{symbolic: symbolic, literal: literal}
}

// SymbolicName returns the grammar name of a token type, if it has one.
func (v Vocabulary) SymbolicName(tt TokenType) (string, bool) {
	name, ok := v.symbolic[tt]
	return name, ok
}

// LiteralName returns the fixed spelling of a token type, if it has one.
func (v Vocabulary) LiteralName(tt TokenType) (string, bool) {
	name, ok := v.literal[tt]
	return name, ok
}

// DisplayName returns the friendliest name available for diagnostics:
// the symbolic name, else the literal spelling, else the numeric type.
func (v Vocabulary) DisplayName(tt TokenType) string {
	if name, ok := v.symbolic[tt]; ok {
		return name
	}
	if name, ok := v.literal[tt]; ok {
		return name
	}
	return strconv.Itoa(int(tt))
}
