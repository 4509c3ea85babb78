package languages

import (
	"github.com/ciarant/structurizr-completion/completion"
	"github.com/ciarant/structurizr-completion/grammar"
)

// Position represents a position in a text document (LSP-compliant, 0-based)
type Position struct {
	Line      int // 0-based line number
	Character int // 0-based character offset
}

// Range represents a range in a text document (LSP-compliant, 0-based)
type Range struct {
	Start Position
	End   Position
}

// Symbol is one entry of a document outline. Children nest the way the
// declarations nest in the source.
type Symbol struct {
	Name     string
	Kind     string // e.g. "var", "fun", "param", "element", "block"
	Detail   string
	Location Range
	Children []Symbol
}

// Language defines one completable language.
type Language interface {
	// Name returns the language identifier (e.g. "structurizr", "kotlin")
	Name() string

	// Extensions returns the file extensions this language handles (e.g. [".dsl"])
	Extensions() []string

	// Suggest returns the completion suggestions at the caret, using the
	// stock caret mapper. Malformed sources degrade to fewer or zero
	// suggestions, never an error.
	Suggest(source string, caret grammar.Caret, opts ...completion.Option) []string

	// Symbols returns the document outline.
	Symbols(source string) []Symbol

	// Lex returns the raw token stream, mainly for debug dumps.
	Lex(source string) []grammar.Token

	// Vocabulary names the language's token types.
	Vocabulary() grammar.Vocabulary
}
