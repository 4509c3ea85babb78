// Package symbols holds the per-request symbol table: one flat arena of
// records where scopes are symbols that own members. Tables are built fresh
// for every completion request and thrown away afterwards.
package symbols

import "github.com/ciarant/structurizr-completion/grammar"

// Kind classifies a symbol record.
type Kind int

const (
	KindVariable Kind = iota
	KindParameter
	KindFunction
	KindElement
	KindGlobalScope
	KindFunctionScope
	KindBlockScope
)

// IsScope reports whether records of this kind own members.
func (k Kind) IsScope() bool {
	switch k {
	case KindGlobalScope, KindFunctionScope, KindBlockScope:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "var"
	case KindParameter:
		return "param"
	case KindFunction:
		return "fun"
	case KindElement:
		return "element"
	case KindGlobalScope:
		return "global"
	case KindFunctionScope:
		return "function"
	case KindBlockScope:
		return "block"
	}
	return "unknown"
}

// SymbolID addresses a record in a Table arena.
type SymbolID int32

// NoSymbol marks the absence of a symbol.
const NoSymbol SymbolID = -1

type record struct {
	name    string
	kind    Kind
	parent  SymbolID
	decl    grammar.NodeID
	members []SymbolID
}

// Symbol is the read-only view aggregation hands back.
type Symbol struct {
	ID   SymbolID
	Name string
	Kind Kind
	Decl grammar.NodeID
}

// Table is an arena of symbol records rooted at a global scope. Records hold
// parent indices, never pointers; parents do not own children beyond the
// member list used for traversal.
type Table struct {
	recs   []record
	byNode map[grammar.NodeID]SymbolID
}

// NewTable returns a table containing only the global scope.
func NewTable() *Table {
	t := &Table{byNode: make(map[grammar.NodeID]SymbolID)}
	t.recs = append(t.recs, record{kind: KindGlobalScope, parent: NoSymbol, decl: grammar.NoNode})
	return t
}

// Root returns the global scope.
func (t *Table) Root() SymbolID { return 0 }

// AddScope appends a scope record under parent and attaches it to the
// parse-tree node owning it, so ResolveScope can find it later.
func (t *Table) AddScope(parent SymbolID, kind Kind, name string, owner grammar.NodeID) SymbolID {
	id := t.add(parent, kind, name, owner)
	if owner != grammar.NoNode {
		t.byNode[owner] = id
	}
	return id
}

// AddSymbol appends a plain symbol record under parent.
func (t *Table) AddSymbol(parent SymbolID, kind Kind, name string, decl grammar.NodeID) SymbolID {
	return t.add(parent, kind, name, decl)
}

func (t *Table) add(parent SymbolID, kind Kind, name string, decl grammar.NodeID) SymbolID {
	id := SymbolID(len(t.recs))
	t.recs = append(t.recs, record{name: name, kind: kind, parent: parent, decl: decl})
	if parent != NoSymbol {
		t.recs[parent].members = append(t.recs[parent].members, id)
	}
	return id
}

// Name returns the record's name.
func (t *Table) Name(id SymbolID) string { return t.recs[id].name }

// Kind returns the record's kind.
func (t *Table) Kind(id SymbolID) Kind { return t.recs[id].kind }

// Parent returns the record the symbol is declared under, NoSymbol at root.
func (t *Table) Parent(id SymbolID) SymbolID { return t.recs[id].parent }

// Decl returns the parse-tree node the record was declared at.
func (t *Table) Decl(id SymbolID) grammar.NodeID { return t.recs[id].decl }

// Members returns the member list of a scope record, in declaration order.
// The slice is owned by the table.
func (t *Table) Members(id SymbolID) []SymbolID { return t.recs[id].members }

// Len returns the number of records, the global scope included.
func (t *Table) Len() int { return len(t.recs) }

// ScopeFor returns the scope attached to a parse-tree node, or NoSymbol.
func (t *Table) ScopeFor(node grammar.NodeID) SymbolID {
	if node == grammar.NoNode {
		return NoSymbol
	}
	if id, ok := t.byNode[node]; ok {
		return id
	}
	return NoSymbol
}

// EnclosingScope walks parents from id, exclusive, and returns the nearest
// scope-owning ancestor, skipping plain symbols on the way.
func (t *Table) EnclosingScope(id SymbolID) SymbolID {
	for cur := t.recs[id].parent; cur != NoSymbol; cur = t.recs[cur].parent {
		if t.recs[cur].kind.IsScope() {
			return cur
		}
	}
	return NoSymbol
}

// AllOfKind returns every record of the wanted kinds across the whole table,
// in arena order, which is declaration order.
func (t *Table) AllOfKind(kinds ...Kind) []Symbol {
	want := kindSet(kinds)
	var out []Symbol
	for id, rec := range t.recs {
		if want[rec.kind] {
			out = append(out, t.view(SymbolID(id)))
		}
	}
	return out
}

func (t *Table) view(id SymbolID) Symbol {
	rec := t.recs[id]
	return Symbol{ID: id, Name: rec.name, Kind: rec.kind, Decl: rec.decl}
}

func kindSet(kinds []Kind) map[Kind]bool {
	set := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
