package grammar

import "sort"

// Candidates is the collector's answer for one caret position: the
// syntactically viable next token types, each mapped to the terminals that
// must immediately follow it inside the same alternative, plus the preferred
// rules that may begin at the caret.
type Candidates struct {
	Tokens map[TokenType][]TokenType
	Rules  map[RuleID]bool
}

// SortedTokens returns the viable token types in ascending numeric order,
// which is the declaration order of the language's token enum. Translators
// iterate this instead of the map so output stays deterministic.
func (c Candidates) SortedTokens() []TokenType {
	out := make([]TokenType, 0, len(c.Tokens))
	for tt := range c.Tokens {
		out = append(out, tt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Collector computes completion candidates over a grammar. IgnoredTokens are
// dropped from the token map before it is returned; PreferredRules are
// reported in Candidates.Rules when the caret sits where one may begin.
// A Collector is stateless between calls and safe for concurrent use as long
// as its sets are not mutated.
type Collector struct {
	grammar        *Grammar
	IgnoredTokens  TokenSet
	PreferredRules RuleSet
}

// NewCollector returns a collector over g with empty token and rule sets.
func NewCollector(g *Grammar) *Collector {
	return &Collector{grammar: g, IgnoredTokens: TokenSet{}, PreferredRules: RuleSet{}}
}

// item is a dotted rule position: alternative alt of rule, dot symbols
// consumed, started at chart index origin.
type item struct {
	rule   RuleID
	alt    int16
	dot    int16
	origin int32
}

type chart struct {
	items []item
	seen  map[item]bool
}

func (c *chart) add(it item) {
	if c.seen[it] {
		return
	}
	c.seen[it] = true
	c.items = append(c.items, it)
}

// Collect simulates the grammar over tokens[:caret] and reports what may come
// next. caret may equal len(tokens), meaning the caret sits past the last
// token. Malformed prefixes do not abort the walk: a token nothing expects is
// skipped so later positions still produce candidates.
func (c *Collector) Collect(tokens []Token, caret int) Candidates {
	if caret < 0 {
		caret = 0
	}
	if caret > len(tokens) {
		caret = len(tokens)
	}
	g := c.grammar

	charts := make([]chart, caret+1)
	for i := range charts {
		charts[i].seen = make(map[item]bool)
	}
	for alt := range g.rules[g.start].alts {
		charts[0].add(item{rule: g.start, alt: int16(alt)})
	}

	for pos := 0; pos <= caret; pos++ {
		cur := &charts[pos]

		// Closure: predict rules at the dot and complete finished ones.
		// The loop doubles as a worklist; cur.items grows as it runs.
		for i := 0; i < len(cur.items); i++ {
			it := cur.items[i]
			alt := g.rules[it.rule].alts[it.alt]
			if int(it.dot) < len(alt) {
				s := alt[it.dot]
				if s.isTok {
					continue
				}
				for a := range g.rules[s.rule].alts {
					cur.add(item{rule: s.rule, alt: int16(a), origin: int32(pos)})
				}
				// A nullable rule may match nothing at all, so the
				// predicting item advances immediately as well.
				if g.rules[s.rule].nullable {
					adv := it
					adv.dot++
					cur.add(adv)
				}
				continue
			}
			for _, w := range charts[it.origin].items {
				walt := g.rules[w.rule].alts[w.alt]
				if int(w.dot) < len(walt) {
					ws := walt[w.dot]
					if !ws.isTok && ws.rule == it.rule {
						adv := w
						adv.dot++
						cur.add(adv)
					}
				}
			}
		}

		if pos == caret {
			break
		}

		next := &charts[pos+1]
		for _, it := range cur.items {
			alt := g.rules[it.rule].alts[it.alt]
			if int(it.dot) < len(alt) {
				s := alt[it.dot]
				if s.isTok && s.token == tokens[pos].Type {
					adv := it
					adv.dot++
					next.add(adv)
				}
			}
		}
		if len(next.items) == 0 {
			// Nothing expected this token: skip it and keep going.
			for _, it := range cur.items {
				next.add(it)
			}
		}
	}

	cand := Candidates{Tokens: make(map[TokenType][]TokenType), Rules: make(map[RuleID]bool)}
	for _, it := range charts[caret].items {
		alt := g.rules[it.rule].alts[it.alt]
		if int(it.dot) >= len(alt) {
			continue
		}
		s := alt[it.dot]
		if s.isTok {
			if c.IgnoredTokens[s.token] {
				continue
			}
			if _, ok := cand.Tokens[s.token]; !ok {
				var follow []TokenType
				for _, f := range alt[it.dot+1:] {
					if !f.isTok {
						break
					}
					follow = append(follow, f.token)
				}
				cand.Tokens[s.token] = follow
			}
		} else if c.PreferredRules[s.rule] {
			cand.Rules[s.rule] = true
		}
	}
	return cand
}
