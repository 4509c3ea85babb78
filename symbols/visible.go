package symbols

import "github.com/ciarant/structurizr-completion/grammar"

// ResolveScope finds the scope governing a parse-tree node: it walks the
// ancestor chain iteratively, nearest first, and returns the first scope
// attached to a node on the way up. NoSymbol means no scope governs the node
// and callers fall back to the global scope.
func ResolveScope(tree *grammar.Tree, node grammar.NodeID, t *Table) SymbolID {
	if tree == nil || t == nil {
		return NoSymbol
	}
	for cur := node; cur != grammar.NoNode; cur = tree.Parent(cur) {
		if s := t.ScopeFor(cur); s != NoSymbol {
			return s
		}
	}
	return NoSymbol
}

// CollectVisible gathers the symbols of the wanted kinds visible from scope:
// first everything declared within the scope, nested sub-scopes included and
// innermost first, then the directly declared symbols of each enclosing
// scope on the way out. Shadowed names are not deduplicated; a name declared
// in several scopes of the chain appears once per scope, inner first.
func (t *Table) CollectVisible(scope SymbolID, kinds ...Kind) []Symbol {
	if scope == NoSymbol {
		return nil
	}
	want := kindSet(kinds)
	var out []Symbol
	t.within(scope, want, &out)
	for cur := t.EnclosingScope(scope); cur != NoSymbol; cur = t.EnclosingScope(cur) {
		t.direct(cur, want, &out)
	}
	return out
}

// within appends every matching symbol in the scope's subtree, sub-scopes
// before the scope's own members.
func (t *Table) within(scope SymbolID, want map[Kind]bool, out *[]Symbol) {
	for _, m := range t.recs[scope].members {
		if t.recs[m].kind.IsScope() {
			t.within(m, want, out)
		}
	}
	t.direct(scope, want, out)
}

// direct appends the scope's own matching members in declaration order.
func (t *Table) direct(scope SymbolID, want map[Kind]bool, out *[]Symbol) {
	for _, m := range t.recs[scope].members {
		if !t.recs[m].kind.IsScope() && want[t.recs[m].kind] {
			*out = append(*out, t.view(m))
		}
	}
}
