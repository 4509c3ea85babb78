// Package completion holds what both language front ends share: the matcher
// strategies that filter candidates against typed text and the options a
// suggestion request carries.
package completion

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ciarant/structurizr-completion/grammar"
)

// Matcher filters candidate strings by the prefix the user has typed.
// An empty or all-whitespace prefix returns the candidates unchanged;
// otherwise implementations keep matches in their original order and must be
// deterministic. Strategies are injected per request, never set globally.
type Matcher func(prefix string, candidates []string) []string

// PrefixMatcher keeps candidates starting with the prefix, case-insensitively.
// This is the default strategy.
func PrefixMatcher(prefix string, candidates []string) []string {
	if strings.TrimSpace(prefix) == "" {
		return candidates
	}
	want := strings.ToLower(prefix)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), want) {
			out = append(out, c)
		}
	}
	return out
}

// FuzzyMatcher keeps candidates containing the prefix as a subsequence,
// case-insensitively. Candidate order is preserved.
func FuzzyMatcher(prefix string, candidates []string) []string {
	if strings.TrimSpace(prefix) == "" {
		return candidates
	}
	return fuzzy.FindFold(prefix, candidates)
}

// MatcherByName resolves the strategy names accepted by flags and config.
// The empty name means the default.
func MatcherByName(name string) (Matcher, bool) {
	switch name {
	case "", "prefix":
		return PrefixMatcher, true
	case "fuzzy":
		return FuzzyMatcher, true
	}
	return nil, false
}

// EffectivePrefix returns the match text for a caret position: empty when the
// caret's context node is a terminal whose token type the language ignores,
// the typed prefix otherwise. Sitting on a newline therefore never filters
// anything, no matter what text the mapper captured.
func EffectivePrefix(tree *grammar.Tree, pos grammar.TokenPosition, ignored grammar.TokenSet) string {
	if tree != nil && tree.IsTerminal(pos.Context) {
		tok := tree.Token(tree.TokenIndex(pos.Context))
		if ignored[tok.Type] {
			return ""
		}
	}
	return pos.Prefix
}
