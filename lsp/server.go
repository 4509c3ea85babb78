// Package lsp serves the completion engine over the Language Server
// Protocol: JSON-RPC on stdio, full-text document sync, completion and
// document symbols for every registered language. Logs go to stderr;
// stdout carries the protocol.
package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ciarant/structurizr-completion/completion"
	"github.com/ciarant/structurizr-completion/config"
)

// Server handles the LSP requests of one connection.
type Server struct {
	logger *zap.Logger
	docs   *documentStore
	opts   []completion.Option
}

// NewServer builds a server from a validated config.
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	matcher, _ := completion.MatcherByName(cfg.Matcher)
	return &Server{
		logger: logger,
		docs:   newDocumentStore(),
		opts: []completion.Option{
			completion.WithMatcher(matcher),
			completion.WithMaxItems(cfg.MaxItems),
		},
	}
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(cfg *config.Config) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv := NewServer(cfg, logger)

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(stdio{}))
	conn.Go(context.Background(), srv.Handle)
	logger.Info("listening on stdio")
	<-conn.Done()
	return conn.Err()
}

// Handle dispatches one request. Unknown methods answer ErrMethodNotFound;
// malformed params answer an empty result and a log line, never an error
// that would tear down the session.
func (s *Server) Handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Debug("request", zap.String("method", req.Method()))

	switch req.Method() {
	case protocol.MethodInitialize:
		return s.initialize(ctx, reply, req)
	case protocol.MethodInitialized:
		return reply(ctx, nil, nil)
	case protocol.MethodShutdown:
		s.logger.Info("shutdown requested")
		return reply(ctx, nil, nil)
	case protocol.MethodExit:
		s.logger.Info("exit requested")
		return reply(ctx, nil, nil)
	case protocol.MethodTextDocumentDidOpen:
		return s.didOpen(ctx, reply, req)
	case protocol.MethodTextDocumentDidChange:
		return s.didChange(ctx, reply, req)
	case protocol.MethodTextDocumentDidClose:
		return s.didClose(ctx, reply, req)
	case protocol.MethodTextDocumentCompletion:
		return s.completion(ctx, reply, req)
	case protocol.MethodTextDocumentDocumentSymbol:
		return s.documentSymbol(ctx, reply, req)
	default:
		return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
	}
}

func (s *Server) initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := unmarshalParams(req, &params); err != nil {
		s.logger.Warn("malformed initialize params", zap.Error(err))
	}
	client := "unknown"
	if params.ClientInfo != nil {
		client = params.ClientInfo.Name
	}
	s.logger.Info("initialize", zap.String("client", client))

	return reply(ctx, protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncKindFull,
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{" ", ".", ">"},
			},
			DocumentSymbolProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "strc",
			Version: "1.0.0",
		},
	}, nil)
}

func unmarshalParams(req jsonrpc2.Request, v interface{}) error {
	if len(req.Params()) == 0 {
		return fmt.Errorf("empty params")
	}
	return json.Unmarshal(req.Params(), v)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// stdio adapts stdin/stdout to the one io.ReadWriteCloser the JSON-RPC
// stream wants.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdio) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
