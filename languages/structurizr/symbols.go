package structurizr

import (
	"strings"

	"github.com/ciarant/structurizr-completion/grammar"
	"github.com/ciarant/structurizr-completion/languages"
	"github.com/ciarant/structurizr-completion/symbols"
)

// buildSymbols walks a parse tree into a fresh symbol table: a scope per
// block, an Element symbol per named declaration. Tables live for one
// request only.
func buildSymbols(tree *grammar.Tree) *symbols.Table {
	t := symbols.NewTable()
	root := tree.Root()
	if root == grammar.NoNode {
		return t
	}
	var walk func(n grammar.NodeID, scope symbols.SymbolID)
	walk = func(n grammar.NodeID, scope symbols.SymbolID) {
		switch tree.Rule(n) {
		case ruleWorkspaceBlock:
			scope = t.AddScope(scope, symbols.KindBlockScope, "workspace", n)
		case ruleModelBlock:
			scope = t.AddScope(scope, symbols.KindBlockScope, "model", n)
		case ruleViewsBlock:
			scope = t.AddScope(scope, symbols.KindBlockScope, "views", n)
		case ruleElementBlock:
			scope = t.AddScope(scope, symbols.KindBlockScope, blockName(tree, n), n)
		case ruleElementDecl:
			if name, ok := declName(tree, n); ok {
				t.AddSymbol(scope, symbols.KindElement, name, n)
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

// declName returns the assigned identifier of an element declaration, if any.
func declName(tree *grammar.Tree, decl grammar.NodeID) (string, bool) {
	kids := tree.Children(decl)
	if len(kids) == 0 || !tree.IsTerminal(kids[0]) {
		return "", false
	}
	tok := tree.Token(tree.TokenIndex(kids[0]))
	if tok.Type != tokIdentifier {
		return "", false
	}
	return tok.Text, true
}

// blockName labels a block scope: the element name when the enclosing
// declaration has one, otherwise the introducing keyword.
func blockName(tree *grammar.Tree, block grammar.NodeID) string {
	parent := tree.Parent(block)
	if parent == grammar.NoNode {
		return "block"
	}
	if name, ok := declName(tree, parent); ok {
		return name
	}
	for _, ch := range tree.Children(parent) {
		if tree.IsTerminal(ch) {
			return strings.ToLower(tree.Token(tree.TokenIndex(ch)).Text)
		}
		if tree.Rule(ch) == ruleElementKind {
			kids := tree.Children(ch)
			if len(kids) > 0 && tree.IsTerminal(kids[0]) {
				return strings.ToLower(tree.Token(tree.TokenIndex(kids[0])).Text)
			}
		}
	}
	return "block"
}

// outline renders a scope's members as an outline. A block scope right after
// the symbol of the same name is that element's body: its members nest under
// the symbol instead of a second entry.
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
			out = append(out, languages.Symbol{
				Name:     name,
				Kind:     "block",
				Location: languages.NodeRange(tree, t.Decl(m)),
				Children: children,
			})
			continue
		}
		out = append(out, languages.Symbol{
			Name:     name,
			Kind:     elementKind(tree, t.Decl(m)),
			Detail:   elementDetail(tree, t.Decl(m)),
			Location: languages.NodeRange(tree, t.Decl(m)),
		})
	}
	return out
}

// elementKind names the declared kind ("person", "container", ...).
func elementKind(tree *grammar.Tree, decl grammar.NodeID) string {
	for _, ch := range tree.Children(decl) {
		if tree.Rule(ch) == ruleElementKind {
			kids := tree.Children(ch)
			if len(kids) > 0 && tree.IsTerminal(kids[0]) {
				return strings.ToLower(tree.Token(tree.TokenIndex(kids[0])).Text)
			}
		}
	}
	return "element"
}

// elementDetail returns the first quoted string of the declaration, unquoted.
func elementDetail(tree *grammar.Tree, decl grammar.NodeID) string {
	for _, ch := range tree.Children(decl) {
		if !tree.IsTerminal(ch) {
			continue
		}
		tok := tree.Token(tree.TokenIndex(ch))
		if tok.Type == tokString {
			return strings.Trim(tok.Text, `"`)
		}
	}
	return ""
}
