package lsp

import (
	"context"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/ciarant/structurizr-completion/languages"
)

func (s *Server) documentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentSymbolParams
	if err := unmarshalParams(req, &params); err != nil {
		s.logger.Warn("malformed documentSymbol params", zap.Error(err))
		return reply(ctx, []protocol.DocumentSymbol{}, nil)
	}

	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok || doc.language == nil {
		return reply(ctx, []protocol.DocumentSymbol{}, nil)
	}

	return reply(ctx, documentSymbols(doc.language.Symbols(doc.text)), nil)
}

// documentSymbols converts an outline to the LSP's hierarchical form.
func documentSymbols(syms []languages.Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, sym := range syms {
		r := toRange(sym.Location)
		out = append(out, protocol.DocumentSymbol{
			Name:           sym.Name,
			Detail:         sym.Detail,
			Kind:           symbolKind(sym.Kind),
			Range:          r,
			SelectionRange: r,
			Children:       documentSymbols(sym.Children),
		})
	}
	return out
}

func symbolKind(kind string) protocol.SymbolKind {
	switch kind {
	case "fun":
		return protocol.SymbolKindFunction
	case "var", "param":
		return protocol.SymbolKindVariable
	case "block":
		return protocol.SymbolKindNamespace
	default:
		// Element kinds of the architecture DSL: person, system, ...
		return protocol.SymbolKindObject
	}
}

func toRange(r languages.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(r.Start.Line), Character: uint32(r.Start.Character)},
		End:   protocol.Position{Line: uint32(r.End.Line), Character: uint32(r.End.Character)},
	}
}
