package lsp

import (
	"context"
	"fmt"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/ciarant/structurizr-completion/grammar"
	"github.com/ciarant/structurizr-completion/languages"
)

func (s *Server) completion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	empty := protocol.CompletionList{Items: []protocol.CompletionItem{}}

	var params protocol.CompletionParams
	if err := unmarshalParams(req, &params); err != nil {
		s.logger.Warn("malformed completion params", zap.Error(err))
		return reply(ctx, empty, nil)
	}

	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok || doc.language == nil {
		return reply(ctx, empty, nil)
	}

	caret := grammar.Caret{
		Line:   int(params.Position.Line),
		Column: int(params.Position.Character),
	}
	suggestions := doc.language.Suggest(doc.text, caret, s.opts...)
	s.logger.Debug("completion",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character),
		zap.Int("suggestions", len(suggestions)))

	return reply(ctx, completionList(doc.language, suggestions), nil)
}

// completionList converts suggestions to LSP items. SortText is the zero
// padded engine rank, so clients that re-sort alphabetically still show the
// engine's order.
func completionList(lang languages.Language, suggestions []string) protocol.CompletionList {
	items := make([]protocol.CompletionItem, len(suggestions))
	for i, label := range suggestions {
		items[i] = protocol.CompletionItem{
			Label:    label,
			Kind:     completionKind(lang, label),
			SortText: fmt.Sprintf("%05d", i),
		}
	}
	return protocol.CompletionList{IsIncomplete: false, Items: items}
}

// completionKind classifies a suggestion. A label that lexes to the single
// token the vocabulary spells the same way is a keyword of the language;
// anything else came from the symbol table.
func completionKind(lang languages.Language, label string) protocol.CompletionItemKind {
	toks := lang.Lex(label)
	if len(toks) == 1 {
		if lit, ok := lang.Vocabulary().LiteralName(toks[0].Type); ok && lit == label {
			return protocol.CompletionItemKindKeyword
		}
	}
	return protocol.CompletionItemKindVariable
}
