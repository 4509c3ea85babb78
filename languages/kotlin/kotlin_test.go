package kotlin

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ciarant/structurizr-completion/completion"
	"github.com/ciarant/structurizr-completion/grammar"
)

// caretIn strips the <caret> marker from a snippet and returns the cleaned
// source with the caret position the marker stood at.
func caretIn(snippet string) (string, grammar.Caret) {
	idx := strings.Index(snippet, "<caret>")
	if idx < 0 {
		panic("snippet has no <caret> marker")
	}
	before := snippet[:idx]
	col := len(before)
	if nl := strings.LastIndexByte(before, '\n'); nl >= 0 {
		col = len(before) - nl - 1
	}
	caret := grammar.Caret{Line: strings.Count(before, "\n"), Column: col}
	return before + snippet[idx+len("<caret>"):], caret
}

func suggestAt(t *testing.T, snippet string, opts ...completion.Option) []string {
	t.Helper()
	src, caret := caretIn(snippet)
	return (&Language{}).Suggest(src, caret, opts...)
}

func TestSuggestStatementKeywords(t *testing.T) {
	got := suggestAt(t, "<caret>")
	want := []string{
		"package", "import", "fun", "val", "var", "if", "when",
		"for", "while", "do", "return", "break", "continue",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("empty source:\n got %v\nwant %v", got, want)
	}
}

func TestSuggestAfterAssignment(t *testing.T) {
	got := suggestAt(t, "val x = 1\nval y = <caret>")
	// Declared variables come first, then the expression keywords.
	want := []string{"x", "y", "if", "when"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("after '=':\n got %v\nwant %v", got, want)
	}
}

func TestSuggestFiltersByTypedPrefix(t *testing.T) {
	got := suggestAt(t, "val count = 1\nval cap = 2\nco<caret>")
	want := []string{"count", "continue"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("typed prefix co:\n got %v\nwant %v", got, want)
	}
}

func TestSuggestScopeVisibility(t *testing.T) {
	got := suggestAt(t, `val g = 1
fun a(pa) {
    val va = 1
}
fun b(pb) {
    <caret>
}`)

	index := func(name string) int {
		for i, s := range got {
			if s == name {
				return i
			}
		}
		return -1
	}

	if index("pb") < 0 || index("g") < 0 {
		t.Fatalf("expected pb and g to be visible, got %v", got)
	}
	if index("pa") >= 0 || index("va") >= 0 {
		t.Errorf("the sibling function's names leaked: %v", got)
	}
	if index("pb") > index("g") {
		t.Errorf("inner declarations should come before outer ones: %v", got)
	}
}

func TestSuggestInfixOperators(t *testing.T) {
	got := suggestAt(t, "val a = 1\nval b = 2\na <caret>")

	has := make(map[string]bool, len(got))
	for _, s := range got {
		has[s] = true
	}
	for _, want := range []string{"in", "is", "!in", "!is"} {
		if !has[want] {
			t.Errorf("expected %q after an operand, got %v", want, got)
		}
	}
	if has["notin"] || has["notis"] {
		t.Errorf("negated operators should render with the bang: %v", got)
	}
}

func TestSuggestMaxItems(t *testing.T) {
	got := suggestAt(t, "val x = 1\nval y = <caret>", completion.WithMaxItems(2))
	want := []string{"x", "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("capped at 2:\n got %v\nwant %v", got, want)
	}
}

func TestSuggestFuzzyMatcher(t *testing.T) {
	got := suggestAt(t, "val alphabet = 1\nval beta = 2\nabt<caret>",
		completion.WithMatcher(completion.FuzzyMatcher))
	want := []string{"alphabet"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fuzzy abt:\n got %v\nwant %v", got, want)
	}
}

func TestSuggestDeterministic(t *testing.T) {
	src, caret := caretIn("val x = 1\nfun f(p) { <caret> }")
	lang := &Language{}
	first := lang.Suggest(src, caret)
	for i := 0; i < 20; i++ {
		if got := lang.Suggest(src, caret); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n got %v\nwant %v", i, got, first)
		}
	}
}

func TestSymbols(t *testing.T) {
	syms := (&Language{}).Symbols(`val total: Int = 1
fun describe(name) {
    val local = 2
}`)

	if len(syms) != 2 {
		t.Fatalf("expected 2 top-level symbols, got %+v", syms)
	}

	total := syms[0]
	if total.Name != "total" || total.Kind != "var" || total.Detail != "Int" {
		t.Errorf("total: got %q %q %q", total.Name, total.Kind, total.Detail)
	}
	if total.Location.Start.Line != 0 || total.Location.Start.Character != 0 {
		t.Errorf("total location: got %+v", total.Location)
	}

	describe := syms[1]
	if describe.Name != "describe" || describe.Kind != "fun" || describe.Detail != "(name)" {
		t.Errorf("describe: got %q %q %q", describe.Name, describe.Kind, describe.Detail)
	}
	if describe.Location.Start.Line != 1 {
		t.Errorf("describe should start on line 1, got %+v", describe.Location)
	}
	if len(describe.Children) != 2 {
		t.Fatalf("expected parameter and local under describe, got %+v", describe.Children)
	}
	if describe.Children[0].Name != "name" || describe.Children[0].Kind != "param" {
		t.Errorf("first child: got %+v", describe.Children[0])
	}
	if describe.Children[1].Name != "local" || describe.Children[1].Kind != "var" {
		t.Errorf("second child: got %+v", describe.Children[1])
	}
}

func TestLexPositions(t *testing.T) {
	toks := lex(`val s = "hi" // greet`)

	want := []grammar.Token{
		{Type: tokVal, Text: "val", Line: 0, Column: 0},
		{Type: tokIdentifier, Text: "s", Line: 0, Column: 4},
		{Type: tokAssign, Text: "=", Line: 0, Column: 6},
		{Type: tokQuoteOpen, Text: `"`, Line: 0, Column: 8},
		{Type: tokStringText, Text: "hi", Line: 0, Column: 9},
		{Type: tokQuoteClose, Text: `"`, Line: 0, Column: 11},
		{Type: tokLineComment, Text: "// greet", Line: 0, Column: 13},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %+v", len(want), toks)
	}
	for i, w := range want {
		got := toks[i]
		if got.Type != w.Type || got.Text != w.Text || got.Line != w.Line || got.Column != w.Column {
			t.Errorf("token %d: got {%d %q %d:%d}, want {%d %q %d:%d}",
				i, got.Type, got.Text, got.Line, got.Column, w.Type, w.Text, w.Line, w.Column)
		}
	}
}

func TestLexNumberForms(t *testing.T) {
	toks := lex("0xFF 0b10 1.5 2f 3L 42 true null 'c'")

	want := []struct {
		tt   grammar.TokenType
		text string
	}{
		{tokHexLiteral, "0xFF"},
		{tokBinLiteral, "0b10"},
		{tokDoubleLiteral, "1.5"},
		{tokRealLiteral, "2f"},
		{tokLongLiteral, "3L"},
		{tokIntegerLiteral, "42"},
		{tokBooleanLiteral, "true"},
		{tokNullLiteral, "null"},
		{tokCharacterLiteral, "'c'"},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %+v", len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.tt || toks[i].Text != w.text {
			t.Errorf("token %d: got {%d %q}, want {%d %q}", i, toks[i].Type, toks[i].Text, w.tt, w.text)
		}
	}
}

func TestLexBangOperators(t *testing.T) {
	toks := lex("a !in b")
	if len(toks) != 3 || toks[1].Type != tokNotIn || toks[1].Text != "!in" {
		t.Errorf("expected a single !in token, got %+v", toks)
	}

	// !inner is a negation of an identifier, not the operator.
	toks = lex("a !inner")
	if len(toks) != 3 || toks[1].Type != tokExcl || toks[2].Type != tokIdentifier {
		t.Errorf("expected ! and an identifier, got %+v", toks)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks := lex(`"ab`)
	if len(toks) != 2 || toks[0].Type != tokQuoteOpen || toks[1].Type != tokStringText {
		t.Fatalf("expected open quote and text, got %+v", toks)
	}
	if toks[1].Text != "ab" {
		t.Errorf("expected the text to run to EOF, got %q", toks[1].Text)
	}
}

func TestLexTripleQuotedString(t *testing.T) {
	toks := lex("\"\"\"a\nb\"\"\"")
	if len(toks) != 3 {
		t.Fatalf("expected open, text and close, got %+v", toks)
	}
	if toks[0].Type != tokTripleQuoteOpen || toks[2].Type != tokTripleQuoteClose {
		t.Errorf("expected triple quotes, got %+v", toks)
	}
	if toks[1].Type != tokStringText || toks[1].Text != "a\nb" {
		t.Errorf("expected the text to span lines, got %+v", toks[1])
	}
}
