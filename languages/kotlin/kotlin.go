// Package kotlin is the completion front end for the Kotlin-flavored script
// language. Besides keywords it suggests visible variables and parameters
// wherever an identifier can stand, resolved against a symbol table built
// fresh for the request.
package kotlin

import (
	"strings"

	"github.com/ciarant/structurizr-completion/completion"
	"github.com/ciarant/structurizr-completion/grammar"
	"github.com/ciarant/structurizr-completion/languages"
	"github.com/ciarant/structurizr-completion/symbols"
)

func init() {
	languages.Register(&Language{})
}

// Language implements the script language front end.
type Language struct{}

func (k *Language) Name() string {
	return "kotlin"
}

func (k *Language) Extensions() []string {
	return []string{".kts", ".kt"}
}

func (k *Language) Vocabulary() grammar.Vocabulary {
	return vocab
}

func (k *Language) Lex(source string) []grammar.Token {
	return lex(source)
}

func (k *Language) Suggest(source string, caret grammar.Caret, opts ...completion.Option) []string {
	return Suggest(source, caret, grammar.MapCaret, opts...)
}

func (k *Language) Symbols(source string) []languages.Symbol {
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
	collector.PreferredRules = preferredRules
	cand := collector.Collect(tree.Tokens(), pos.Index)
	return o.Cap(translate(cand, pos, tree, o.Matcher()))
}

// translate renders the candidate set as suggestions. When a preferred rule
// matched, visible variables and parameters go first; keywords follow as
// lowercased symbolic names, with the render table overriding the handful of
// tokens spelled differently (!in, !is). Tokens without a symbolic name drop
// silently, and the two lists are not deduplicated against each other.
func translate(cand grammar.Candidates, pos grammar.TokenPosition, tree *grammar.Tree, match completion.Matcher) []string {
	var out []string
	if len(cand.Rules) > 0 {
		out = append(out, visibleNames(tree, pos, match)...)
	}
	var words []string
	for _, tt := range cand.SortedTokens() {
		if tt == tokIdentifier || ignoredTokens[tt] {
			continue
		}
		if word, ok := renderTable[tt]; ok {
			words = append(words, word)
			continue
		}
		name, ok := vocab.SymbolicName(tt)
		if !ok {
			continue
		}
		words = append(words, strings.ToLower(name))
	}
	prefix := completion.EffectivePrefix(tree, pos, ignoredTokens)
	return append(out, match(prefix, words)...)
}

// visibleNames builds the identifier suggestions. The symbol table is built
// here, only on this path. A caret inside a local scope sees its scope chain;
// one resolving to the top level sees every variable and parameter flat.
func visibleNames(tree *grammar.Tree, pos grammar.TokenPosition, match completion.Matcher) []string {
	table := buildSymbols(tree)
	scope := symbols.ResolveScope(tree, pos.Context, table)
	var vis []symbols.Symbol
	if scope == symbols.NoSymbol || scope == table.Root() {
		vis = table.AllOfKind(symbols.KindVariable, symbols.KindParameter)
	} else {
		vis = table.CollectVisible(scope, symbols.KindVariable, symbols.KindParameter)
	}
	names := make([]string, 0, len(vis))
	for _, s := range vis {
		names = append(names, s.Name)
	}
	return match(identifierPrefix(tree, pos), names)
}

// identifierPrefix is the typed part of the identifier being completed. It
// counts only when the caret context sits inside a variableRead; anywhere
// else the identifier list goes unfiltered.
func identifierPrefix(tree *grammar.Tree, pos grammar.TokenPosition) string {
	if tree.AncestorWithRule(pos.Context, ruleVariableRead) == grammar.NoNode {
		return ""
	}
	return pos.Prefix
}
