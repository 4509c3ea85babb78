package symbols

import (
	"testing"

	"github.com/ciarant/structurizr-completion/grammar"
)

func TestNewTable(t *testing.T) {
	tab := NewTable()

	if tab.Len() != 1 {
		t.Fatalf("a fresh table holds the global scope only, got %d records", tab.Len())
	}
	root := tab.Root()
	if tab.Kind(root) != KindGlobalScope {
		t.Errorf("expected global scope at root, got %v", tab.Kind(root))
	}
	if tab.Parent(root) != NoSymbol {
		t.Error("the global scope has no parent")
	}
	if tab.Decl(root) != grammar.NoNode {
		t.Error("the global scope has no declaration node")
	}
}

func TestAddSymbol(t *testing.T) {
	tab := NewTable()

	a := tab.AddSymbol(tab.Root(), KindVariable, "a", 7)
	b := tab.AddSymbol(tab.Root(), KindFunction, "b", 9)

	if tab.Name(a) != "a" || tab.Kind(a) != KindVariable || tab.Decl(a) != 7 {
		t.Errorf("record mismatch: %q %v %d", tab.Name(a), tab.Kind(a), tab.Decl(a))
	}
	if tab.Parent(a) != tab.Root() {
		t.Error("symbol should hang off the global scope")
	}

	members := tab.Members(tab.Root())
	if len(members) != 2 || members[0] != a || members[1] != b {
		t.Errorf("expected members in declaration order, got %v", members)
	}
}

func TestScopeFor(t *testing.T) {
	tab := NewTable()

	owner := grammar.NodeID(3)
	scope := tab.AddScope(tab.Root(), KindFunctionScope, "f", owner)

	if got := tab.ScopeFor(owner); got != scope {
		t.Errorf("expected scope %d for its owner node, got %d", scope, got)
	}
	if got := tab.ScopeFor(grammar.NodeID(99)); got != NoSymbol {
		t.Errorf("unknown node should have no scope, got %d", got)
	}
	if got := tab.ScopeFor(grammar.NoNode); got != NoSymbol {
		t.Errorf("NoNode should have no scope, got %d", got)
	}

	// A scope without an owner never registers.
	anon := tab.AddScope(scope, KindBlockScope, "", grammar.NoNode)
	if tab.Kind(anon) != KindBlockScope {
		t.Errorf("expected a block scope record, got %v", tab.Kind(anon))
	}
}

func TestEnclosingScope(t *testing.T) {
	tab := NewTable()
	fun := tab.AddScope(tab.Root(), KindFunctionScope, "f", 1)
	block := tab.AddScope(fun, KindBlockScope, "", 2)
	v := tab.AddSymbol(block, KindVariable, "v", 3)

	if got := tab.EnclosingScope(v); got != block {
		t.Errorf("expected the block scope, got %d", got)
	}
	if got := tab.EnclosingScope(block); got != fun {
		t.Errorf("expected the function scope, got %d", got)
	}
	if got := tab.EnclosingScope(fun); got != tab.Root() {
		t.Errorf("expected the global scope, got %d", got)
	}
	if got := tab.EnclosingScope(tab.Root()); got != NoSymbol {
		t.Errorf("nothing encloses the global scope, got %d", got)
	}
}

func TestAllOfKind(t *testing.T) {
	tab := NewTable()
	a := tab.AddSymbol(tab.Root(), KindVariable, "a", grammar.NoNode)
	fun := tab.AddScope(tab.Root(), KindFunctionScope, "f", 1)
	p := tab.AddSymbol(fun, KindParameter, "p", grammar.NoNode)
	b := tab.AddSymbol(fun, KindVariable, "b", grammar.NoNode)

	got := tab.AllOfKind(KindVariable, KindParameter)
	want := []SymbolID{a, p, b}
	if len(got) != len(want) {
		t.Fatalf("expected %d symbols, got %v", len(want), got)
	}
	for i, sym := range got {
		if sym.ID != want[i] {
			t.Errorf("position %d: expected id %d, got %d (%s)", i, want[i], sym.ID, sym.Name)
		}
	}

	if got := tab.AllOfKind(KindElement); got != nil {
		t.Errorf("expected no elements, got %v", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindVariable, "var"},
		{KindParameter, "param"},
		{KindFunction, "fun"},
		{KindElement, "element"},
		{KindGlobalScope, "global"},
		{KindFunctionScope, "function"},
		{KindBlockScope, "block"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindIsScope(t *testing.T) {
	for _, k := range []Kind{KindGlobalScope, KindFunctionScope, KindBlockScope} {
		if !k.IsScope() {
			t.Errorf("%v should be a scope", k)
		}
	}
	for _, k := range []Kind{KindVariable, KindParameter, KindFunction, KindElement} {
		if k.IsScope() {
			t.Errorf("%v should not be a scope", k)
		}
	}
}
