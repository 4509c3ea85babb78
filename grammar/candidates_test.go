package grammar

import "testing"

// Test grammar: a file of "name = expr" lines, expressions with + and parens.
const (
	tIdent TokenType = iota
	tAssign
	tNum
	tPlus
	tLParen
	tRParen
	tNewline
)

const (
	rFile RuleID = iota
	rLine
	rStmt
	rExpr
	rMore
	rTerm
	rRead
)

func testGrammar() *Grammar {
	b := NewBuilder()
	b.Rule(rFile, "file", Alt(Star(R(rLine))))
	b.Rule(rLine, "line",
		Alt(R(rStmt), T(tNewline)),
		Alt(R(rStmt)),
		Alt(T(tNewline)))
	b.Rule(rStmt, "stmt", Alt(T(tIdent), T(tAssign), R(rExpr)))
	b.Rule(rExpr, "expr", Alt(R(rTerm), Star(R(rMore))))
	b.Rule(rMore, "more", Alt(T(tPlus), R(rTerm)))
	b.Rule(rTerm, "term",
		Alt(R(rRead)),
		Alt(T(tNum)),
		Alt(T(tLParen), R(rExpr), T(tRParen)))
	b.Rule(rRead, "read", Alt(T(tIdent)))
	return b.Build(rFile)
}

func toks(types ...TokenType) []Token {
	out := make([]Token, len(types))
	for i, tt := range types {
		out[i] = Token{Type: tt, Text: "x", Line: 0, Column: i, Offset: i}
	}
	return out
}

func TestCollectAtStart(t *testing.T) {
	c := NewCollector(testGrammar())
	cand := c.Collect(nil, 0)

	follow, ok := cand.Tokens[tIdent]
	if !ok {
		t.Fatal("expected tIdent to be viable at start")
	}
	if len(follow) != 1 || follow[0] != tAssign {
		t.Errorf("expected follow [tAssign], got %v", follow)
	}
	if _, ok := cand.Tokens[tNewline]; !ok {
		t.Error("expected tNewline to be viable at start")
	}
	if _, ok := cand.Tokens[tNum]; ok {
		t.Error("tNum is not viable before an assignment")
	}
}

func TestCollectExpressionPosition(t *testing.T) {
	c := NewCollector(testGrammar())
	c.PreferredRules = NewRuleSet(rRead)
	cand := c.Collect(toks(tIdent, tAssign), 2)

	for _, tt := range []TokenType{tIdent, tNum, tLParen} {
		if _, ok := cand.Tokens[tt]; !ok {
			t.Errorf("expected token %d to be viable after '='", tt)
		}
	}
	if _, ok := cand.Tokens[tAssign]; ok {
		t.Error("tAssign is not viable after '='")
	}
	if !cand.Rules[rRead] {
		t.Error("expected preferred rule rRead to match")
	}
}

func TestCollectIgnoredTokens(t *testing.T) {
	c := NewCollector(testGrammar())
	c.IgnoredTokens = NewTokenSet(tNewline)
	cand := c.Collect(toks(tIdent, tAssign, tNum), 3)

	if _, ok := cand.Tokens[tNewline]; ok {
		t.Error("ignored tNewline must not be reported")
	}
	if _, ok := cand.Tokens[tPlus]; !ok {
		t.Error("expected tPlus after a complete expression")
	}
}

func TestCollectSkipsUnexpectedToken(t *testing.T) {
	c := NewCollector(testGrammar())
	// The stray ')' matches nothing; candidates past it must still flow.
	cand := c.Collect(toks(tIdent, tAssign, tRParen), 3)

	for _, tt := range []TokenType{tIdent, tNum, tLParen} {
		if _, ok := cand.Tokens[tt]; !ok {
			t.Errorf("expected token %d to survive the skipped token", tt)
		}
	}
}

func TestCollectCaretClamped(t *testing.T) {
	c := NewCollector(testGrammar())
	past := c.Collect(toks(tIdent), 99)
	if _, ok := past.Tokens[tAssign]; !ok {
		t.Error("caret past the end should clamp to the last position")
	}
	neg := c.Collect(toks(tIdent), -5)
	if _, ok := neg.Tokens[tIdent]; !ok {
		t.Error("negative caret should clamp to the start")
	}
}

func TestCollectNullableMiddle(t *testing.T) {
	b := NewBuilder()
	b.Rule(0, "p", Alt(T(0), Opt(T(1)), T(2)))
	c := NewCollector(b.Build(0))

	cand := c.Collect(toks(0), 1)
	if _, ok := cand.Tokens[1]; !ok {
		t.Error("expected the optional token to be viable")
	}
	if _, ok := cand.Tokens[2]; !ok {
		t.Error("expected the token after the optional one to be viable")
	}
}

func TestCollectNullablePrediction(t *testing.T) {
	b := NewBuilder()
	b.Rule(0, "s", Alt(R(1), T(1)))
	b.Rule(1, "n", Alt(), Alt(T(0)))
	c := NewCollector(b.Build(0))

	cand := c.Collect(nil, 0)
	if _, ok := cand.Tokens[0]; !ok {
		t.Error("expected the nullable rule's own token")
	}
	if _, ok := cand.Tokens[1]; !ok {
		t.Error("expected the token after the nullable rule")
	}
}

func TestCollectFollowTerminals(t *testing.T) {
	b := NewBuilder()
	b.Rule(0, "pair", Alt(T(tLParen), T(tIdent), T(tRParen)))
	c := NewCollector(b.Build(0))

	cand := c.Collect(toks(tLParen), 1)
	follow, ok := cand.Tokens[tIdent]
	if !ok {
		t.Fatal("expected tIdent after '('")
	}
	if len(follow) != 1 || follow[0] != tRParen {
		t.Errorf("expected follow [tRParen], got %v", follow)
	}
}

func TestSortedTokens(t *testing.T) {
	cand := Candidates{Tokens: map[TokenType][]TokenType{5: nil, 1: nil, 3: nil}}
	got := cand.SortedTokens()
	want := []TokenType{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d]: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestGrammarNames(t *testing.T) {
	g := testGrammar()
	if g.Start() != rFile {
		t.Errorf("expected start rule %d, got %d", rFile, g.Start())
	}
	if g.RuleName(rStmt) != "stmt" {
		t.Errorf("expected rule name 'stmt', got %q", g.RuleName(rStmt))
	}
}
