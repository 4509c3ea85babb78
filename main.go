package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ciarant/structurizr-completion/config"
	"github.com/ciarant/structurizr-completion/grammar"
	"github.com/ciarant/structurizr-completion/lsp"
	"github.com/ciarant/structurizr-completion/tools"
)

var configPath string

var completeFile string
var completeLine int
var completeColumn int
var completeLang string
var completeMatcher string
var completeMax int

var symbolsFilter string

var tokensFile string
var tokensLang string

var rootCmd = &cobra.Command{
	Use:   "strc",
	Short: "Completion engine for the structurizr DSL and Kotlin-style scripts",
	Long: `strc computes editor-style completion suggestions for the structurizr
architecture DSL and a Kotlin-flavored scripting language. Sources may be
malformed or partially typed. It runs one-shot from the command line, as an
LSP server, or as an MCP (Model Context Protocol) server.`,
}

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Print completion suggestions at a caret position",
	Long: `Compute the completion suggestions at a caret position and print them
to stdout, one per line. Line and column are 1-based, the editor convention.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if completeFile == "" {
			return fmt.Errorf("--file is required")
		}
		if completeLine < 1 || completeColumn < 1 {
			return fmt.Errorf("line and column are 1-based: got %d:%d", completeLine, completeColumn)
		}

		source, err := readSource(completeFile)
		if err != nil {
			return err
		}
		lang, err := tools.ResolveLanguage(completeLang, completeFile)
		if err != nil {
			return err
		}
		opts, err := tools.SuggestOptions(toolsConfig(cfg), completeMatcher, completeMax)
		if err != nil {
			return err
		}

		caret := grammar.Caret{Line: completeLine - 1, Column: completeColumn - 1}
		for _, s := range lang.Suggest(source, caret, opts...) {
			fmt.Println(s)
		}
		return nil
	},
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols [path]",
	Short: "Print a symbol outline of a file or workspace",
	Long: `Scan a file or directory for sources of the registered languages and
print a compact outline of their declarations with 1-based line ranges.
Directory scans respect .gitignore.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		return runSymbols(path, cfg.SkipPatterns, symbolsFilter)
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Dump the token stream of a source file",
	Long: `Lex a source file and print one token per line: 1-based position, the
vocabulary's name for the token type, and the token text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokensFile == "" {
			return fmt.Errorf("--file is required")
		}
		source, err := readSource(tokensFile)
		if err != nil {
			return err
		}
		lang, err := tools.ResolveLanguage(tokensLang, tokensFile)
		if err != nil {
			return err
		}
		vocab := lang.Vocabulary()
		for _, tok := range lang.Lex(source) {
			fmt.Printf("%d:%d\t%s\t%q\n", tok.Line+1, tok.Column+1, vocab.DisplayName(tok.Type), tok.Text)
		}
		return nil
	},
}

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run as LSP server (communicates via stdio)",
	Long: `Run as a Language Server Protocol server that communicates via stdio.
Provides completion and document symbols for the registered languages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return lsp.Serve(cfg)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as MCP server (communicates via stdio)",
	Long: `Run as an MCP server that communicates via stdio.
Exposes tools: complete, symbols, languages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return runMCPServer(toolsConfig(cfg))
	},
}

func init() {
	// --config on root, inherited by all subcommands
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the config file (default ~/.strc.yaml)")

	completeCmd.Flags().StringVarP(&completeFile, "file", "f", "",
		"Source file to complete in (- reads stdin, requires --lang)")
	completeCmd.Flags().IntVarP(&completeLine, "line", "l", 0,
		"1-based caret line")
	completeCmd.Flags().IntVarP(&completeColumn, "column", "c", 0,
		"1-based caret column")
	completeCmd.Flags().StringVar(&completeLang, "lang", "",
		"Language name (default: by file extension)")
	completeCmd.Flags().StringVar(&completeMatcher, "matcher", "",
		"Filtering strategy, prefix or fuzzy (default: from config)")
	completeCmd.Flags().IntVar(&completeMax, "max", 0,
		"Maximum number of suggestions, 0 = from config")

	symbolsCmd.Flags().StringVar(&symbolsFilter, "filter", "",
		"Only show symbols for files matching this path prefix (file or directory)")

	tokensCmd.Flags().StringVarP(&tokensFile, "file", "f", "",
		"Source file to tokenize (- reads stdin, requires --lang)")
	tokensCmd.Flags().StringVar(&tokensLang, "lang", "",
		"Language name (default: by file extension)")

	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(mcpCmd)
}

// readSource reads a source file, or stdin when the path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(content), nil
}

// toolsConfig narrows the loaded config to what the tools need.
func toolsConfig(cfg *config.Config) *tools.Config {
	return &tools.Config{
		Matcher:      cfg.Matcher,
		MaxItems:     cfg.MaxItems,
		SkipPatterns: cfg.SkipPatterns,
	}
}

func runSymbols(path string, skipPatterns []string, filter string) error {
	// Make path absolute if relative
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var files []tools.FileOutline
	if info.IsDir() {
		files, err = tools.ScanWorkspace(path)
	} else {
		var outline tools.FileOutline
		outline, err = tools.OutlineFile(path)
		files = []tools.FileOutline{outline}
	}
	if err != nil {
		return fmt.Errorf("failed to outline path: %w", err)
	}

	output := tools.FormatOutline(files, tools.FormatOptions{
		SkipPatterns: skipPatterns,
		Filter:       filter,
	})
	if output == "" {
		output = "No symbols found in the specified path."
	}

	fmt.Print(output)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
