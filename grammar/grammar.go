package grammar

import "fmt"

// RuleID addresses a rule in a Grammar. Languages declare their rules as
// consecutive constants from zero and register them in that order.
type RuleID int

// NoRule marks the absence of a rule.
const NoRule RuleID = -1

// RuleSet is a set of rule IDs.
type RuleSet map[RuleID]bool

// NewRuleSet builds a set from the given rules.
func NewRuleSet(ids ...RuleID) RuleSet {
	s := make(RuleSet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

type cardinality int8

const (
	one cardinality = iota
	opt
	star
	plus
)

// Element is one position inside an alternative: a token or a rule reference,
// with a cardinality. Build them with T, R, Opt, Star and Plus.
type Element struct {
	token TokenType
	rule  RuleID
	isTok bool
	card  cardinality
}

// T makes a token element.
func T(tt TokenType) Element { return Element{token: tt, rule: NoRule, isTok: true} }

// R makes a rule-reference element.
func R(id RuleID) Element { return Element{token: NoTokenType, rule: id} }

// Opt marks an element zero-or-one.
func Opt(e Element) Element { e.card = opt; return e }

// Star marks an element zero-or-more.
func Star(e Element) Element { e.card = star; return e }

// Plus marks an element one-or-more.
func Plus(e Element) Element { e.card = plus; return e }

// Alt builds one alternative from a sequence of elements. Alt() with no
// arguments is the empty alternative.
func Alt(elems ...Element) []Element { return elems }

// sym is a desugared element: exactly one token or rule reference.
type sym struct {
	token TokenType
	rule  RuleID
	isTok bool
}

type rule struct {
	name     string
	alts     [][]sym
	nullable bool
}

// Grammar is an immutable rule table. The candidate collector simulates it
// against a token stream; parsers share its rule IDs so parse-tree nodes and
// collector output speak about the same rules. Safe for concurrent use once
// built.
type Grammar struct {
	rules []rule
	start RuleID
}

// Builder accumulates rule definitions for a Grammar.
type Builder struct {
	names []string
	raw   [][][]Element
}

// NewBuilder returns an empty grammar builder.
func NewBuilder() *Builder { return &Builder{} }

// Rule defines the alternatives of a rule. Rules must be defined in RuleID
// order; a gap or repeat panics, since rule tables are static program data.
func (b *Builder) Rule(id RuleID, name string, alts ...[]Element) {
	if int(id) != len(b.names) {
		panic(fmt.Sprintf("grammar: rule %q declared out of order (id %d, want %d)", name, id, len(b.names)))
	}
	if len(alts) == 0 {
		alts = [][]Element{{}}
	}
	b.names = append(b.names, name)
	b.raw = append(b.raw, alts)
}

// Build desugars cardinalities into synthetic rules, computes nullability and
// returns the finished grammar rooted at start.
func (b *Builder) Build(start RuleID) *Grammar {
	g := &Grammar{start: start, rules: make([]rule, len(b.names))}
	for i, name := range b.names {
		g.rules[i].name = name
	}
	for i, alts := range b.raw {
		out := make([][]sym, 0, len(alts))
		for _, alt := range alts {
			seq := make([]sym, 0, len(alt))
			for _, e := range alt {
				seq = append(seq, g.desugar(b.names[i], e))
			}
			out = append(out, seq)
		}
		g.rules[i].alts = out
	}
	for _, r := range g.rules {
		for _, alt := range r.alts {
			for _, s := range alt {
				if !s.isTok && (s.rule < 0 || int(s.rule) >= len(g.rules)) {
					panic(fmt.Sprintf("grammar: rule %q references undefined rule %d", r.name, s.rule))
				}
			}
		}
	}
	if start < 0 || int(start) >= len(g.rules) {
		panic(fmt.Sprintf("grammar: undefined start rule %d", start))
	}
	g.computeNullable()
	return g
}

// desugar rewrites one element to a plain symbol, appending synthetic rules
// for the non-trivial cardinalities.
func (g *Grammar) desugar(owner string, e Element) sym {
	base := sym{token: e.token, rule: e.rule, isTok: e.isTok}
	switch e.card {
	case one:
		return base
	case opt:
		id := g.synth(owner + "_opt")
		g.rules[id].alts = [][]sym{{}, {base}}
		return sym{token: NoTokenType, rule: id}
	case star:
		id := g.synth(owner + "_star")
		g.rules[id].alts = [][]sym{{}, {base, {token: NoTokenType, rule: id}}}
		return sym{token: NoTokenType, rule: id}
	case plus:
		id := g.synth(owner + "_plus")
		g.rules[id].alts = [][]sym{{base}, {base, {token: NoTokenType, rule: id}}}
		return sym{token: NoTokenType, rule: id}
	}
	return base
}

func (g *Grammar) synth(name string) RuleID {
	id := RuleID(len(g.rules))
	g.rules = append(g.rules, rule{name: name})
	return id
}

// computeNullable runs the usual fixpoint: a rule is nullable when some
// alternative consists solely of nullable symbols.
func (g *Grammar) computeNullable() {
	for changed := true; changed; {
		changed = false
		for i := range g.rules {
			if g.rules[i].nullable {
				continue
			}
			for _, alt := range g.rules[i].alts {
				all := true
				for _, s := range alt {
					if s.isTok || !g.rules[s.rule].nullable {
						all = false
						break
					}
				}
				if all {
					g.rules[i].nullable = true
					changed = true
					break
				}
			}
		}
	}
}

// Start returns the grammar's start rule.
func (g *Grammar) Start() RuleID { return g.start }

// RuleName returns the declared name of a rule, synthetic ones included.
func (g *Grammar) RuleName(id RuleID) string {
	if id < 0 || int(id) >= len(g.rules) {
		return ""
	}
	return g.rules[id].name
}
