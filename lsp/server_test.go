package lsp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/ciarant/structurizr-completion/config"
	"github.com/ciarant/structurizr-completion/languages"

	_ "github.com/ciarant/structurizr-completion/languages/kotlin"
	_ "github.com/ciarant/structurizr-completion/languages/structurizr"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(config.Default(), zap.NewNop())
}

func languageByName(t *testing.T, name string) languages.Language {
	t.Helper()
	lang := languages.GetLanguage(name)
	require.NotNil(t, lang)
	return lang
}

// handle runs one request through the server and returns what it replied.
func handle(t *testing.T, s *Server, req jsonrpc2.Request) (interface{}, error) {
	t.Helper()
	var result interface{}
	var replyErr error
	err := s.Handle(context.Background(), func(ctx context.Context, res interface{}, err error) error {
		result = res
		replyErr = err
		return nil
	}, req)
	require.NoError(t, err)
	return result, replyErr
}

func call(t *testing.T, method string, params interface{}) jsonrpc2.Request {
	t.Helper()
	req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), method, params)
	require.NoError(t, err)
	return req
}

func notification(t *testing.T, method string, params interface{}) jsonrpc2.Request {
	t.Helper()
	req, err := jsonrpc2.NewNotification(method, params)
	require.NoError(t, err)
	return req
}

func openDoc(t *testing.T, s *Server, docURI, languageID, text string) {
	t.Helper()
	_, replyErr := handle(t, s, notification(t, protocol.MethodTextDocumentDidOpen, protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        protocol.DocumentURI(docURI),
			LanguageID: protocol.LanguageIdentifier(languageID),
			Version:    1,
			Text:       text,
		},
	}))
	require.NoError(t, replyErr)
}

func completeAt(t *testing.T, s *Server, docURI string, line, character uint32) protocol.CompletionList {
	t.Helper()
	result, replyErr := handle(t, s, call(t, protocol.MethodTextDocumentCompletion, protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(docURI)},
			Position:     protocol.Position{Line: line, Character: character},
		},
	}))
	require.NoError(t, replyErr)
	list, ok := result.(protocol.CompletionList)
	require.True(t, ok, "completion result should be a CompletionList, got %T", result)
	return list
}

func labels(list protocol.CompletionList) []string {
	out := make([]string, len(list.Items))
	for i, item := range list.Items {
		out[i] = item.Label
	}
	return out
}

func TestInitializeCapabilities(t *testing.T) {
	s := testServer(t)

	result, replyErr := handle(t, s, call(t, protocol.MethodInitialize, protocol.InitializeParams{}))
	require.NoError(t, replyErr)

	init, ok := result.(protocol.InitializeResult)
	require.True(t, ok, "initialize result should be an InitializeResult, got %T", result)

	require.NotNil(t, init.Capabilities.CompletionProvider)
	assert.Equal(t, []string{" ", ".", ">"}, init.Capabilities.CompletionProvider.TriggerCharacters)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, init.Capabilities.TextDocumentSync)
	assert.Equal(t, true, init.Capabilities.DocumentSymbolProvider)
	require.NotNil(t, init.ServerInfo)
	assert.Equal(t, "strc", init.ServerInfo.Name)
}

func TestUnknownMethod(t *testing.T) {
	s := testServer(t)

	_, replyErr := handle(t, s, call(t, "textDocument/hover", struct{}{}))
	assert.ErrorIs(t, replyErr, jsonrpc2.ErrMethodNotFound)
}

func TestCompletionKotlin(t *testing.T) {
	s := testServer(t)
	openDoc(t, s, "file:///script.kts", "kotlin", "val x = 1\nval y = ")

	list := completeAt(t, s, "file:///script.kts", 1, 8)

	require.Equal(t, []string{"x", "y", "if", "when"}, labels(list))
	assert.Equal(t, protocol.CompletionItemKindVariable, list.Items[0].Kind)
	assert.Equal(t, protocol.CompletionItemKindVariable, list.Items[1].Kind)
	assert.Equal(t, protocol.CompletionItemKindKeyword, list.Items[2].Kind)
	assert.Equal(t, protocol.CompletionItemKindKeyword, list.Items[3].Kind)

	// SortText keeps the engine's order under alphabetical clients.
	assert.Equal(t, "00000", list.Items[0].SortText)
	assert.Equal(t, "00001", list.Items[1].SortText)
	assert.Equal(t, "00002", list.Items[2].SortText)
	assert.Equal(t, "00003", list.Items[3].SortText)
}

func TestCompletionStructurizr(t *testing.T) {
	s := testServer(t)
	openDoc(t, s, "file:///arch.dsl", "structurizr", "workspace {\n    \n}")

	list := completeAt(t, s, "file:///arch.dsl", 1, 4)

	require.Equal(t, []string{"model", "views", "tags", "description"}, labels(list))
	for _, item := range list.Items {
		assert.Equal(t, protocol.CompletionItemKindKeyword, item.Kind, "item %q", item.Label)
	}
}

func TestCompletionByExtension(t *testing.T) {
	s := testServer(t)
	// No language identifier: the registry picks by extension.
	openDoc(t, s, "file:///arch.dsl", "", "workspace {\n    \n}")

	list := completeAt(t, s, "file:///arch.dsl", 1, 4)
	assert.Contains(t, labels(list), "model")
}

func TestCompletionUnknownDocument(t *testing.T) {
	s := testServer(t)

	list := completeAt(t, s, "file:///nowhere.kts", 0, 0)
	assert.Empty(t, list.Items)
}

func TestCompletionMalformedParams(t *testing.T) {
	s := testServer(t)

	result, replyErr := handle(t, s, call(t, protocol.MethodTextDocumentCompletion, []int{1, 2, 3}))
	require.NoError(t, replyErr)

	list, ok := result.(protocol.CompletionList)
	require.True(t, ok)
	assert.Empty(t, list.Items)
}

func TestDidChangeReplacesText(t *testing.T) {
	s := testServer(t)
	openDoc(t, s, "file:///script.kts", "kotlin", "val x = 1\nval y = ")

	_, replyErr := handle(t, s, notification(t, protocol.MethodTextDocumentDidChange, protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI("file:///script.kts")},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: "val renamed = 1\nval y = "},
		},
	}))
	require.NoError(t, replyErr)

	list := completeAt(t, s, "file:///script.kts", 1, 8)
	got := labels(list)
	assert.Contains(t, got, "renamed")
	assert.NotContains(t, got, "x")
}

func TestDidCloseForgetsDocument(t *testing.T) {
	s := testServer(t)
	openDoc(t, s, "file:///script.kts", "kotlin", "val x = 1\n")

	_, replyErr := handle(t, s, notification(t, protocol.MethodTextDocumentDidClose, protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI("file:///script.kts")},
	}))
	require.NoError(t, replyErr)

	list := completeAt(t, s, "file:///script.kts", 0, 0)
	assert.Empty(t, list.Items)
}

func TestDocumentSymbols(t *testing.T) {
	s := testServer(t)
	openDoc(t, s, "file:///arch.dsl", "structurizr",
		"workspace \"Shop\" {\n    model {\n        user = person \"Customer\"\n    }\n}\n")

	result, replyErr := handle(t, s, call(t, protocol.MethodTextDocumentDocumentSymbol, protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentURI("file:///arch.dsl")},
	}))
	require.NoError(t, replyErr)

	syms, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok, "documentSymbol result should be []DocumentSymbol, got %T", result)
	require.Len(t, syms, 1)

	workspace := syms[0]
	assert.Equal(t, "workspace", workspace.Name)
	assert.Equal(t, protocol.SymbolKindNamespace, workspace.Kind)
	require.Len(t, workspace.Children, 1)

	model := workspace.Children[0]
	assert.Equal(t, "model", model.Name)
	require.Len(t, model.Children, 1)

	user := model.Children[0]
	assert.Equal(t, "user", user.Name)
	assert.Equal(t, protocol.SymbolKindObject, user.Kind)
	assert.Equal(t, "Customer", user.Detail)
	assert.Equal(t, uint32(2), user.Range.Start.Line)
}

func TestDocumentSymbolsMalformedParams(t *testing.T) {
	s := testServer(t)

	result, replyErr := handle(t, s, call(t, protocol.MethodTextDocumentDocumentSymbol, "bogus"))
	require.NoError(t, replyErr)

	syms, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	assert.Empty(t, syms)
}

func TestCompletionKindClassification(t *testing.T) {
	kotlinLang := languageByName(t, "kotlin")
	dslLang := languageByName(t, "structurizr")

	tests := []struct {
		name  string
		lang  string
		label string
		want  protocol.CompletionItemKind
	}{
		{"kotlin keyword", "kotlin", "val", protocol.CompletionItemKindKeyword},
		{"kotlin operator keyword", "kotlin", "!in", protocol.CompletionItemKindKeyword},
		{"kotlin identifier", "kotlin", "total", protocol.CompletionItemKindVariable},
		{"dsl keyword", "structurizr", "workspace", protocol.CompletionItemKindKeyword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang := kotlinLang
			if tt.lang == "structurizr" {
				lang = dslLang
			}
			assert.Equal(t, tt.want, completionKind(lang, tt.label))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = newLogger("verbose")
	assert.Error(t, err)
}
