// Package structurizr is the completion front end for the architecture
// description DSL: workspace/model/views blocks, element declarations and
// "->" relationships. Suggestions are keyword-only; the DSL never offers
// identifiers.
package structurizr

import (
	"strings"

	"github.com/ciarant/structurizr-completion/completion"
	"github.com/ciarant/structurizr-completion/grammar"
	"github.com/ciarant/structurizr-completion/languages"
)

func init() {
	languages.Register(&Language{})
}

// Language implements the architecture DSL front end.
type Language struct{}

func (s *Language) Name() string {
	return "structurizr"
}

func (s *Language) Extensions() []string {
	return []string{".dsl", ".structurizr"}
}

func (s *Language) Vocabulary() grammar.Vocabulary {
	return vocab
}

func (s *Language) Lex(source string) []grammar.Token {
	return lex(source)
}

func (s *Language) Suggest(source string, caret grammar.Caret, opts ...completion.Option) []string {
	return Suggest(source, caret, grammar.MapCaret, opts...)
}

func (s *Language) Symbols(source string) []languages.Symbol {
	tree := parse(lex(source))
	table := buildSymbols(tree)
	return outline(tree, table, table.Root())
}

// Suggest computes completion suggestions at the caret with a caller-supplied
// position mapper. Nothing here fails: malformed source degrades to fewer or
// zero suggestions, and a caret the mapper cannot place yields an empty list.
func Suggest(source string, caret grammar.Caret, mapper grammar.PositionMapper, opts ...completion.Option) []string {
	o := completion.NewOptions(opts...)
	tree := parse(lex(source))
	pos, ok := mapper(tree, caret)
	if !ok {
		return nil
	}
	collector := grammar.NewCollector(grammarTable)
	collector.IgnoredTokens = ignoredTokens
	cand := collector.Collect(tree.Tokens(), pos.Index)
	return o.Cap(translate(cand, pos, tree, o.Matcher()))
}

// translate renders viable token types as suggestions: the lowercased
// symbolic name of everything except identifiers, which this DSL never
// suggests. Tokens without a symbolic name (punctuation) drop silently.
func translate(cand grammar.Candidates, pos grammar.TokenPosition, tree *grammar.Tree, match completion.Matcher) []string {
	var out []string
	for _, tt := range cand.SortedTokens() {
		if tt == tokIdentifier || ignoredTokens[tt] {
			continue
		}
		name, ok := vocab.SymbolicName(tt)
		if !ok {
			continue
		}
		out = append(out, strings.ToLower(name))
	}
	prefix := completion.EffectivePrefix(tree, pos, ignoredTokens)
	return match(prefix, out)
}
