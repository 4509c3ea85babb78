package languages

import (
	"testing"

	"github.com/ciarant/structurizr-completion/completion"
	"github.com/ciarant/structurizr-completion/grammar"
)

// mockLanguage is a test implementation of Language
type mockLanguage struct {
	name string
	exts []string
}

func (m *mockLanguage) Name() string         { return m.name }
func (m *mockLanguage) Extensions() []string { return m.exts }
func (m *mockLanguage) Suggest(source string, caret grammar.Caret, opts ...completion.Option) []string {
	return nil
}
func (m *mockLanguage) Symbols(source string) []Symbol    { return nil }
func (m *mockLanguage) Lex(source string) []grammar.Token { return nil }
func (m *mockLanguage) Vocabulary() grammar.Vocabulary    { return grammar.Vocabulary{} }

func TestRegister(t *testing.T) {
	// Save original registry
	origRegistry := registry
	registry = make(map[string]Language)
	defer func() { registry = origRegistry }()

	lang := &mockLanguage{name: "test", exts: []string{".test", ".tst"}}
	Register(lang)

	// Check both extensions are registered
	if registry[".test"] != lang {
		t.Error("expected .test to be registered")
	}
	if registry[".tst"] != lang {
		t.Error("expected .tst to be registered")
	}
}

func TestGetLanguageForFile(t *testing.T) {
	// Save original registry
	origRegistry := registry
	registry = make(map[string]Language)
	defer func() { registry = origRegistry }()

	lang := &mockLanguage{name: "test", exts: []string{".test"}}
	Register(lang)

	tests := []struct {
		path     string
		wantLang Language
	}{
		{"file.test", lang},
		{"path/to/file.test", lang},
		{"FILE.TEST", lang}, // Case insensitive
		{"file.unknown", nil},
		{"file", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := GetLanguageForFile(tt.path)
			if got != tt.wantLang {
				t.Errorf("GetLanguageForFile(%q) = %v, want %v", tt.path, got, tt.wantLang)
			}
		})
	}
}

func TestGetLanguage(t *testing.T) {
	// Save original registry
	origRegistry := registry
	registry = make(map[string]Language)
	defer func() { registry = origRegistry }()

	lang := &mockLanguage{name: "test", exts: []string{".test"}}
	Register(lang)

	if got := GetLanguage("test"); got != lang {
		t.Errorf("GetLanguage(\"test\") = %v, want the registered language", got)
	}
	if got := GetLanguage("nope"); got != nil {
		t.Errorf("GetLanguage(\"nope\") = %v, want nil", got)
	}
}

func TestSupportedExtensions(t *testing.T) {
	// Save original registry
	origRegistry := registry
	registry = make(map[string]Language)
	defer func() { registry = origRegistry }()

	lang1 := &mockLanguage{name: "lang1", exts: []string{".a", ".b"}}
	lang2 := &mockLanguage{name: "lang2", exts: []string{".c"}}
	Register(lang1)
	Register(lang2)

	exts := SupportedExtensions()
	want := []string{".a", ".b", ".c"}
	if len(exts) != len(want) {
		t.Fatalf("expected %d extensions, got %d: %v", len(want), len(exts), exts)
	}

	// Sorted output
	for i := range want {
		if exts[i] != want[i] {
			t.Errorf("extension[%d]: expected %q, got %q", i, want[i], exts[i])
		}
	}
}

func TestRegisteredLanguages(t *testing.T) {
	// Save original registry
	origRegistry := registry
	registry = make(map[string]Language)
	defer func() { registry = origRegistry }()

	lang1 := &mockLanguage{name: "lang1", exts: []string{".a", ".b"}}
	lang2 := &mockLanguage{name: "lang2", exts: []string{".c"}}
	Register(lang1)
	Register(lang2)

	names := RegisteredLanguages()
	if len(names) != 2 {
		t.Fatalf("expected 2 languages, got %d: %v", len(names), names)
	}
	if names[0] != "lang1" || names[1] != "lang2" {
		t.Errorf("expected [lang1 lang2], got %v", names)
	}
}

func TestNodeRange(t *testing.T) {
	tokens := []grammar.Token{
		{Type: 0, Text: "ab", Line: 0, Column: 0, Offset: 0},
		{Type: 0, Text: "cd", Line: 1, Column: 2, Offset: 3},
	}
	tree := grammar.NewTree(tokens)
	root := tree.AddNode(0, grammar.NoNode)
	tree.AddTerminal(root, 0)
	tree.AddTerminal(root, 1)

	r := NodeRange(tree, root)
	if r.Start.Line != 0 || r.Start.Character != 0 {
		t.Errorf("expected start 0:0, got %d:%d", r.Start.Line, r.Start.Character)
	}
	if r.End.Line != 1 || r.End.Character != 4 {
		t.Errorf("expected end 1:4, got %d:%d", r.End.Line, r.End.Character)
	}
}
