package kotlin

import (
	"strings"

	"github.com/ciarant/structurizr-completion/grammar"
	"github.com/ciarant/structurizr-completion/languages"
	"github.com/ciarant/structurizr-completion/symbols"
)

// buildSymbols walks a parse tree into a fresh symbol table. Functions open
// a scope holding their parameters, blocks and for loops open block scopes,
// val/var declarations add variables. Tables live for one request only.
func buildSymbols(tree *grammar.Tree) *symbols.Table {
	t := symbols.NewTable()
	root := tree.Root()
	if root == grammar.NoNode {
		return t
	}
	var walk func(n grammar.NodeID, scope symbols.SymbolID)
	walk = func(n grammar.NodeID, scope symbols.SymbolID) {
		switch tree.Rule(n) {
		case ruleBlock:
			scope = t.AddScope(scope, symbols.KindBlockScope, "block", n)
		case ruleFunctionDecl:
			if name, ok := identChild(tree, n); ok {
				t.AddSymbol(scope, symbols.KindFunction, name, n)
				scope = t.AddScope(scope, symbols.KindFunctionScope, name, n)
			} else {
				scope = t.AddScope(scope, symbols.KindFunctionScope, "fun", n)
			}
		case ruleForStmt:
			scope = t.AddScope(scope, symbols.KindBlockScope, "for", n)
			if name, ok := identChild(tree, n); ok {
				t.AddSymbol(scope, symbols.KindVariable, name, n)
			}
		case ruleParameter:
			if name, ok := identChild(tree, n); ok {
				t.AddSymbol(scope, symbols.KindParameter, name, n)
			}
		case rulePropertyDecl:
			if name, ok := identChild(tree, n); ok {
				t.AddSymbol(scope, symbols.KindVariable, name, n)
			}
		}
		for _, ch := range tree.Children(n) {
			if !tree.IsTerminal(ch) {
				walk(ch, scope)
			}
		}
	}
	walk(root, t.Root())
	return t
}

// identChild returns the first identifier leaf directly under n.
func identChild(tree *grammar.Tree, n grammar.NodeID) (string, bool) {
	for _, ch := range tree.Children(n) {
		if !tree.IsTerminal(ch) {
			continue
		}
		tok := tree.Token(tree.TokenIndex(ch))
		if tok.Type == tokIdentifier {
			return tok.Text, true
		}
	}
	return "", false
}

// outline renders a scope's members as an outline. A function's scope nests
// under the function entry; anonymous block scopes surface their members in
// place instead of showing up as entries themselves.
func outline(tree *grammar.Tree, t *symbols.Table, scope symbols.SymbolID) []languages.Symbol {
	var out []languages.Symbol
	for _, m := range t.Members(scope) {
		name := t.Name(m)
		if t.Kind(m).IsScope() {
			children := outline(tree, t, m)
			if n := len(out); n > 0 && out[n-1].Name == name {
				out[n-1].Children = children
				continue
			}
			out = append(out, children...)
			continue
		}
		out = append(out, languages.Symbol{
			Name:     name,
			Kind:     t.Kind(m).String(),
			Detail:   symbolDetail(tree, t, m),
			Location: languages.NodeRange(tree, t.Decl(m)),
		})
	}
	return out
}

func symbolDetail(tree *grammar.Tree, t *symbols.Table, m symbols.SymbolID) string {
	decl := t.Decl(m)
	switch t.Kind(m) {
	case symbols.KindFunction:
		return signature(tree, decl)
	case symbols.KindVariable, symbols.KindParameter:
		return declaredType(tree, decl)
	}
	return ""
}

// signature renders a function's parameter names from its declaration node.
func signature(tree *grammar.Tree, decl grammar.NodeID) string {
	var names []string
	for _, ch := range tree.Children(decl) {
		if !tree.IsTerminal(ch) && tree.Rule(ch) == ruleParameter {
			if name, ok := identChild(tree, ch); ok {
				names = append(names, name)
			}
		}
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// declaredType returns the annotated type name of a val/var/parameter.
func declaredType(tree *grammar.Tree, decl grammar.NodeID) string {
	for _, ch := range tree.Children(decl) {
		if !tree.IsTerminal(ch) && tree.Rule(ch) == ruleType {
			if name, ok := identChild(tree, ch); ok {
				return name
			}
		}
	}
	return ""
}
