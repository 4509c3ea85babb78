package lsp

import (
	"context"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/ciarant/structurizr-completion/languages"
)

// document is one open editor buffer.
type document struct {
	uri      uri.URI
	language languages.Language // nil when no language handles the file
	text     string
	version  int32
}

// documentStore holds the open documents, full text each. The server syncs
// whole documents, so a change simply replaces the text.
type documentStore struct {
	mu   sync.RWMutex
	docs map[uri.URI]*document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[uri.URI]*document)}
}

func (ds *documentStore) open(u uri.URI, languageID, text string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[u] = &document{
		uri:      u,
		language: resolveLanguage(u, languageID),
		text:     text,
		version:  version,
	}
}

func (ds *documentStore) update(u uri.URI, text string, version int32) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	doc, ok := ds.docs[u]
	if !ok {
		return false
	}
	doc.text = text
	doc.version = version
	return true
}

func (ds *documentStore) close(u uri.URI) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, u)
}

func (ds *documentStore) get(u uri.URI) (*document, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	doc, ok := ds.docs[u]
	return doc, ok
}

// resolveLanguage picks the registered language for a document: the client's
// language identifier when it names one, the file extension otherwise. The
// extension lookup runs on the raw URI string, which spares us the file
// scheme check that Filename() insists on.
func resolveLanguage(u uri.URI, languageID string) languages.Language {
	if lang := languages.GetLanguage(languageID); lang != nil {
		return lang
	}
	return languages.GetLanguageForFile(string(u))
}

func (s *Server) didOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		s.logger.Warn("malformed didOpen params", zap.Error(err))
		return reply(ctx, nil, nil)
	}
	td := params.TextDocument
	s.docs.open(td.URI, string(td.LanguageID), td.Text, td.Version)
	s.logger.Debug("opened", zap.String("uri", string(td.URI)))
	return reply(ctx, nil, nil)
}

func (s *Server) didChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		s.logger.Warn("malformed didChange params", zap.Error(err))
		return reply(ctx, nil, nil)
	}
	// Full sync: the last change carries the whole document.
	if n := len(params.ContentChanges); n > 0 {
		u := params.TextDocument.URI
		if !s.docs.update(u, params.ContentChanges[n-1].Text, params.TextDocument.Version) {
			s.logger.Warn("change for unopened document", zap.String("uri", string(u)))
		}
	}
	return reply(ctx, nil, nil)
}

func (s *Server) didClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		s.logger.Warn("malformed didClose params", zap.Error(err))
		return reply(ctx, nil, nil)
	}
	s.docs.close(params.TextDocument.URI)
	s.logger.Debug("closed", zap.String("uri", string(params.TextDocument.URI)))
	return reply(ctx, nil, nil)
}
