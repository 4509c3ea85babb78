package grammar

// NodeID addresses a node in a Tree arena. Nodes never move once added.
type NodeID int32

// NoNode marks the absence of a node.
const NoNode NodeID = -1

type node struct {
	rule     RuleID
	token    int32 // token index for terminals, -1 for interior nodes
	parent   NodeID
	children []NodeID
	first    int32 // token span covered by this subtree, -1 while empty
	last     int32
}

// Tree is a parse tree stored as a flat arena. Nodes reference each other by
// index; a parent link is non-owning and NoNode at the root. The token stream
// the tree was parsed from travels with it.
type Tree struct {
	nodes    []node
	tokens   []Token
	terminal []NodeID // token index -> terminal node, NoNode where none exists
}

// NewTree creates an empty tree over a token stream.
func NewTree(tokens []Token) *Tree {
	term := make([]NodeID, len(tokens))
	for i := range term {
		term[i] = NoNode
	}
	return &Tree{tokens: tokens, terminal: term}
}

// AddNode appends an interior node labeled with a grammar rule and links it
// under parent. Pass NoNode for the root.
func (t *Tree) AddNode(rule RuleID, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{rule: rule, token: -1, parent: parent, first: -1, last: -1})
	if parent != NoNode {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

// AddTerminal appends a leaf for the token at index i and extends the token
// span of every ancestor.
func (t *Tree) AddTerminal(parent NodeID, i int) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{rule: NoRule, token: int32(i), parent: parent, first: int32(i), last: int32(i)})
	if parent != NoNode {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	if i >= 0 && i < len(t.terminal) {
		t.terminal[i] = id
	}
	for p := parent; p != NoNode; p = t.nodes[p].parent {
		n := &t.nodes[p]
		if n.first == -1 || int32(i) < n.first {
			n.first = int32(i)
		}
		if int32(i) > n.last {
			n.last = int32(i)
		}
	}
	return id
}

// Root returns the first node added, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Parent returns the parent of a node, NoNode at the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if id == NoNode {
		return NoNode
	}
	return t.nodes[id].parent
}

// Children returns the child list of a node. The slice is owned by the tree.
func (t *Tree) Children(id NodeID) []NodeID {
	if id == NoNode {
		return nil
	}
	return t.nodes[id].children
}

// Rule returns the grammar rule of an interior node, NoRule for terminals.
func (t *Tree) Rule(id NodeID) RuleID {
	if id == NoNode {
		return NoRule
	}
	return t.nodes[id].rule
}

// IsTerminal reports whether a node is a leaf holding a token.
func (t *Tree) IsTerminal(id NodeID) bool {
	return id != NoNode && t.nodes[id].token >= 0
}

// TokenIndex returns the token index of a terminal node, -1 otherwise.
func (t *Tree) TokenIndex(id NodeID) int {
	if id == NoNode {
		return -1
	}
	return int(t.nodes[id].token)
}

// Token returns the token at stream index i.
func (t *Tree) Token(i int) Token { return t.tokens[i] }

// Tokens returns the token stream the tree was parsed from.
func (t *Tree) Tokens() []Token { return t.tokens }

// TerminalFor returns the terminal node covering token index i, or NoNode.
func (t *Tree) TerminalFor(i int) NodeID {
	if i < 0 || i >= len(t.terminal) {
		return NoNode
	}
	return t.terminal[i]
}

// Span returns the token index range a subtree covers, (-1, -1) when the
// subtree holds no terminals.
func (t *Tree) Span(id NodeID) (first, last int) {
	if id == NoNode {
		return -1, -1
	}
	return int(t.nodes[id].first), int(t.nodes[id].last)
}

// AncestorWithRule walks from id toward the root, inclusive, and returns the
// first node labeled with rule, or NoNode. The walk is iterative.
func (t *Tree) AncestorWithRule(id NodeID, rule RuleID) NodeID {
	for cur := id; cur != NoNode; cur = t.nodes[cur].parent {
		if t.nodes[cur].token < 0 && t.nodes[cur].rule == rule {
			return cur
		}
	}
	return NoNode
}
