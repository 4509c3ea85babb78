package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ciarant/structurizr-completion/completion"
	"github.com/ciarant/structurizr-completion/grammar"
)

// CompleteInput is the input schema for the complete tool
type CompleteInput struct {
	File     string `json:"file,omitempty" jsonschema_description:"Path of the source file to complete in. Either file or source must be given."`
	Source   string `json:"source,omitempty" jsonschema_description:"Source text to complete in, as an alternative to file. Requires language when the text has no file to take an extension from."`
	Line     int    `json:"line" jsonschema_description:"1-based line of the caret."`
	Column   int    `json:"column" jsonschema_description:"1-based column of the caret."`
	Language string `json:"language,omitempty" jsonschema_description:"Language name (structurizr or kotlin). Defaults to the language registered for the file extension."`
	Matcher  string `json:"matcher,omitempty" jsonschema_description:"Filtering strategy: prefix (default) or fuzzy."`
	Max      int    `json:"max,omitempty" jsonschema_description:"Maximum number of suggestions to return. 0 means no cap."`
}

// CompleteTool creates the complete MCP tool
func CompleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "complete",
		Description: "Compute editor-style completion suggestions at a caret position in a source file. Returns keywords viable at the caret and, for the kotlin language, the variables visible from the caret's scope. Works on malformed and partially typed sources.",
	}
}

// CompleteHandler handles the complete tool invocation
func CompleteHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, CompleteInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CompleteInput) (*mcp.CallToolResult, any, error) {
		if input.File == "" && input.Source == "" {
			return nil, nil, fmt.Errorf("either file or source is required")
		}
		if input.Line < 1 || input.Column < 1 {
			return nil, nil, fmt.Errorf("line and column are 1-based and required")
		}

		source := input.Source
		if input.File != "" && source == "" {
			path := input.File
			if !filepath.IsAbs(path) {
				cwd, err := os.Getwd()
				if err != nil {
					return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
				}
				path = filepath.Join(cwd, path)
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read file: %w", err)
			}
			source = string(content)
		}

		lang, err := ResolveLanguage(input.Language, input.File)
		if err != nil {
			return nil, nil, err
		}

		opts, err := SuggestOptions(cfg, input.Matcher, input.Max)
		if err != nil {
			return nil, nil, err
		}

		caret := grammar.Caret{Line: input.Line - 1, Column: input.Column - 1}
		suggestions := lang.Suggest(source, caret, opts...)

		text := strings.Join(suggestions, "\n")
		if text == "" {
			text = "No suggestions at this position."
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, nil, nil
	}
}

// SuggestOptions builds the per-request options from the tool input, falling
// back to the server configuration where the input says nothing.
func SuggestOptions(cfg *Config, matcherName string, max int) ([]completion.Option, error) {
	if matcherName == "" && cfg != nil {
		matcherName = cfg.Matcher
	}
	matcher, ok := completion.MatcherByName(matcherName)
	if !ok {
		return nil, fmt.Errorf("unknown matcher %q (want prefix or fuzzy)", matcherName)
	}
	if max == 0 && cfg != nil {
		max = cfg.MaxItems
	}
	return []completion.Option{
		completion.WithMatcher(matcher),
		completion.WithMaxItems(max),
	}, nil
}
