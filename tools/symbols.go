package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ciarant/structurizr-completion/languages"
)

// SymbolsInput is the input schema for the symbols tool
type SymbolsInput struct {
	Path   string `json:"path,omitempty" jsonschema_description:"File or directory to outline. Defaults to current working directory if not specified."`
	Filter string `json:"filter,omitempty" jsonschema_description:"Optional path filter to show only a specific directory or file. When specified, only files matching this prefix will have their symbols shown. Overrides any default skip patterns for matching files."`
}

// SymbolsTool creates the symbols MCP tool
func SymbolsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "symbols",
		Description: "Outline the declarations of a workspace or a single file: workspace, model and view blocks plus named elements for structurizr sources; functions, parameters and variables for kotlin scripts. Each entry carries its 1-based line range.",
	}
}

// SymbolsHandler handles the symbols tool invocation
func SymbolsHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, SymbolsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SymbolsInput) (*mcp.CallToolResult, any, error) {
		path := input.Path
		if path == "" {
			var err error
			path, err = os.Getwd()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		// Make path absolute if relative
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to stat path: %w", err)
		}

		var files []FileOutline
		if info.IsDir() {
			files, err = ScanWorkspace(path)
		} else {
			var outline FileOutline
			outline, err = OutlineFile(path)
			files = []FileOutline{outline}
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to outline path: %w", err)
		}

		output := FormatOutline(files, FormatOptions{
			SkipPatterns: cfg.SkipPatterns,
			Filter:       input.Filter,
		})
		if output == "" {
			output = "No symbols found in the specified path."
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: output},
			},
		}, nil, nil
	}
}

// FormatOptions controls how the outline is formatted
type FormatOptions struct {
	SkipPatterns []string // Path prefixes to skip by default
	Filter       string   // If set, only show files matching this prefix (overrides skip)
}

// FormatOutline formats the outlines in a compact human-readable format
func FormatOutline(files []FileOutline, opts FormatOptions) string {
	sorted := make([]FileOutline, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var sb strings.Builder

	for _, file := range sorted {
		if opts.Filter != "" {
			if !matchesFilter(file.Path, opts.Filter) {
				continue
			}
		} else if isSkipped(file.Path, opts.SkipPatterns) {
			sb.WriteString(fmt.Sprintf("## %s\n", file.Path))
			sb.WriteString("  (skipped by default - use filter parameter to outline this path explicitly)\n\n")
			continue
		}

		if len(file.Symbols) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("## %s\n", file.Path))
		writeSymbols(&sb, file.Symbols, 1)
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeSymbols renders one outline level, recursing into children with one
// more level of indentation.
func writeSymbols(sb *strings.Builder, syms []languages.Symbol, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, sym := range syms {
		// Convert 0-based to 1-based for display
		startLine := sym.Location.Start.Line + 1
		endLine := sym.Location.End.Line + 1

		label := sym.Kind + " " + sym.Name
		if sym.Detail != "" {
			label += " " + sym.Detail
		}

		if startLine == endLine {
			sb.WriteString(fmt.Sprintf("%s%s [%d]\n", indent, label, startLine))
		} else {
			sb.WriteString(fmt.Sprintf("%s%s [%d-%d]\n", indent, label, startLine, endLine))
		}

		writeSymbols(sb, sym.Children, depth+1)
	}
}

// matchesFilter checks if a file path matches the filter.
// Supports both exact file match and directory prefix match.
func matchesFilter(filePath, filter string) bool {
	filter = strings.TrimPrefix(filter, "./")
	filePath = strings.TrimPrefix(filePath, "./")

	if filePath == filter {
		return true
	}

	filterDir := strings.TrimSuffix(filter, "/")
	return strings.HasPrefix(filePath, filterDir+"/")
}
