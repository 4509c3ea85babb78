package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ciarant/structurizr-completion/languages"
)

// LanguagesInput is the input schema for the languages tool
type LanguagesInput struct{}

// LanguagesTool creates the languages MCP tool
func LanguagesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "languages",
		Description: "List the registered languages and the file extensions each one handles.",
	}
}

// LanguagesHandler handles the languages tool invocation
func LanguagesHandler() func(context.Context, *mcp.CallToolRequest, LanguagesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input LanguagesInput) (*mcp.CallToolResult, any, error) {
		names := languages.RegisteredLanguages()

		var sb strings.Builder
		for _, name := range names {
			lang := languages.GetLanguage(name)
			if lang == nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("%s: %s\n", name, strings.Join(lang.Extensions(), ", ")))
		}

		output := sb.String()
		if output == "" {
			output = "No languages registered."
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: output},
			},
		}, nil, nil
	}
}
