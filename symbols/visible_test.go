package symbols

import (
	"testing"

	"github.com/ciarant/structurizr-completion/grammar"
)

const (
	rFile grammar.RuleID = iota
	rFun
	rBlock
	rStmt
	rOther
)

// scopedFixture builds a tree and table for
//
//	val a
//	fun f(p) {        <- function scope F on nFun
//	    val b
//	    {             <- block scope B on nBlock
//	        val c     <- declared at nStmt
//	    }
//	}
//	fun g(q)          <- sibling scope G on nOther
func scopedFixture() (*grammar.Tree, *Table, map[string]grammar.NodeID) {
	tree := grammar.NewTree(nil)
	root := tree.AddNode(rFile, grammar.NoNode)
	nFun := tree.AddNode(rFun, root)
	nBlock := tree.AddNode(rBlock, nFun)
	nStmt := tree.AddNode(rStmt, nBlock)
	nOther := tree.AddNode(rOther, root)

	tab := NewTable()
	tab.AddSymbol(tab.Root(), KindVariable, "a", root)
	f := tab.AddScope(tab.Root(), KindFunctionScope, "f", nFun)
	tab.AddSymbol(f, KindParameter, "p", nFun)
	tab.AddSymbol(f, KindVariable, "b", nFun)
	b := tab.AddScope(f, KindBlockScope, "", nBlock)
	tab.AddSymbol(b, KindVariable, "c", nStmt)
	g := tab.AddScope(tab.Root(), KindFunctionScope, "g", nOther)
	tab.AddSymbol(g, KindParameter, "q", nOther)

	nodes := map[string]grammar.NodeID{
		"root": root, "fun": nFun, "block": nBlock, "stmt": nStmt, "other": nOther,
	}
	return tree, tab, nodes
}

func names(syms []Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.Name
	}
	return out
}

func TestResolveScope(t *testing.T) {
	tree, tab, nodes := scopedFixture()

	f := tab.ScopeFor(nodes["fun"])
	b := tab.ScopeFor(nodes["block"])

	tests := []struct {
		name string
		node grammar.NodeID
		want SymbolID
	}{
		{"node inside the block", nodes["stmt"], b},
		{"the block node itself", nodes["block"], b},
		{"the function node", nodes["fun"], f},
		{"the root has no scope", nodes["root"], NoSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveScope(tree, tt.node, tab); got != tt.want {
				t.Errorf("ResolveScope = %d, want %d", got, tt.want)
			}
		})
	}

	if got := ResolveScope(nil, nodes["stmt"], tab); got != NoSymbol {
		t.Errorf("nil tree should resolve to nothing, got %d", got)
	}
	if got := ResolveScope(tree, nodes["stmt"], nil); got != NoSymbol {
		t.Errorf("nil table should resolve to nothing, got %d", got)
	}
}

func TestCollectVisibleWalksOutward(t *testing.T) {
	_, tab, nodes := scopedFixture()
	b := tab.ScopeFor(nodes["block"])

	got := names(tab.CollectVisible(b, KindVariable, KindParameter))
	want := []string{"c", "p", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCollectVisibleExcludesSiblings(t *testing.T) {
	_, tab, nodes := scopedFixture()
	b := tab.ScopeFor(nodes["block"])

	for _, sym := range tab.CollectVisible(b, KindVariable, KindParameter) {
		if sym.Name == "q" {
			t.Error("a sibling function's parameter leaked into the block")
		}
	}
}

func TestCollectVisibleIncludesNestedScopes(t *testing.T) {
	_, tab, nodes := scopedFixture()
	f := tab.ScopeFor(nodes["fun"])

	// Collecting from the function sees the nested block first, then the
	// function's own symbols, then the globals.
	got := names(tab.CollectVisible(f, KindVariable, KindParameter))
	want := []string{"c", "p", "b", "a"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCollectVisibleKeepsShadowedNames(t *testing.T) {
	tab := NewTable()
	tab.AddSymbol(tab.Root(), KindVariable, "x", grammar.NoNode)
	f := tab.AddScope(tab.Root(), KindFunctionScope, "f", 1)
	inner := tab.AddSymbol(f, KindVariable, "x", grammar.NoNode)

	got := tab.CollectVisible(f, KindVariable)
	if len(got) != 2 {
		t.Fatalf("shadowed names are kept, expected 2 records, got %v", names(got))
	}
	if got[0].ID != inner {
		t.Error("the inner declaration should come first")
	}
}

func TestCollectVisibleFromNoSymbol(t *testing.T) {
	_, tab, _ := scopedFixture()
	if got := tab.CollectVisible(NoSymbol, KindVariable); got != nil {
		t.Errorf("expected nothing, got %v", names(got))
	}
}

func TestCollectVisibleFiltersKinds(t *testing.T) {
	_, tab, nodes := scopedFixture()
	b := tab.ScopeFor(nodes["block"])

	got := names(tab.CollectVisible(b, KindParameter))
	if len(got) != 1 || got[0] != "p" {
		t.Errorf("expected only the parameter, got %v", got)
	}
}
