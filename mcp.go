package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ciarant/structurizr-completion/tools"
)

func runMCPServer(cfg *tools.Config) error {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "strc",
		Version: "1.0.0",
	}, nil)

	// Register complete tool
	mcp.AddTool(s, tools.CompleteTool(), tools.CompleteHandler(cfg))

	// Register symbols tool
	mcp.AddTool(s, tools.SymbolsTool(), tools.SymbolsHandler(cfg))

	// Register languages tool
	mcp.AddTool(s, tools.LanguagesTool(), tools.LanguagesHandler())

	return s.Run(context.Background(), &mcp.StdioTransport{})
}
