// Package tools provides the MCP tool implementations for the completion
// engine: caret completion, workspace symbol outlines and language discovery.
package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ciarant/structurizr-completion/gitignore"
	"github.com/ciarant/structurizr-completion/languages"
)

// Config holds server-wide configuration for tools.
type Config struct {
	Matcher      string   // Filtering strategy name ("prefix" or "fuzzy")
	MaxItems     int      // Maximum suggestions per completion (0 = no cap)
	SkipPatterns []string // Path prefixes to skip in workspace scans
}

// FileOutline pairs one source file with its symbol outline.
type FileOutline struct {
	Path     string             `json:"path"`     // Relative path from the scan root
	Language string             `json:"language"` // Language identifier ("structurizr", "kotlin")
	Symbols  []languages.Symbol `json:"-"`        // Outline of the file
}

// ScanWorkspace walks dir and outlines every source file belonging to a
// registered language. Hidden directories, vendor trees and anything matched
// by .gitignore are skipped; unreadable files are skipped silently.
func ScanWorkspace(dir string) ([]FileOutline, error) {
	var results []FileOutline

	ignore, _ := gitignore.New(dir)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			relPath = path
		}

		if info.IsDir() {
			if path == dir {
				return nil
			}
			name := info.Name()
			if strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" {
				return filepath.SkipDir
			}
			if ignore.Match(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if ignore.Match(relPath, false) {
			return nil
		}

		lang := languages.GetLanguageForFile(path)
		if lang == nil {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		results = append(results, FileOutline{
			Path:     relPath,
			Language: lang.Name(),
			Symbols:  lang.Symbols(string(content)),
		})

		return nil
	})

	return results, err
}

// OutlineFile outlines a single source file.
func OutlineFile(path string) (FileOutline, error) {
	lang := languages.GetLanguageForFile(path)
	if lang == nil {
		return FileOutline{}, fmt.Errorf("unsupported file type: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return FileOutline{}, fmt.Errorf("failed to read file: %w", err)
	}

	return FileOutline{
		Path:     path,
		Language: lang.Name(),
		Symbols:  lang.Symbols(string(content)),
	}, nil
}

// ResolveLanguage picks the language for a request: the explicit name when
// given, otherwise the file extension.
func ResolveLanguage(name, path string) (languages.Language, error) {
	if name != "" {
		lang := languages.GetLanguage(name)
		if lang == nil {
			return nil, fmt.Errorf("unknown language %q (registered: %s)",
				name, strings.Join(languages.RegisteredLanguages(), ", "))
		}
		return lang, nil
	}
	lang := languages.GetLanguageForFile(path)
	if lang == nil {
		return nil, fmt.Errorf("no language registered for %q (extensions: %s)",
			path, strings.Join(languages.SupportedExtensions(), ", "))
	}
	return lang, nil
}

// isSkipped checks if a file path matches any skip pattern (prefix match).
func isSkipped(filePath string, patterns []string) bool {
	filePath = strings.TrimPrefix(filePath, "./")
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(pattern, "./")
		pattern = strings.TrimSuffix(pattern, "/")
		if filePath == pattern || strings.HasPrefix(filePath, pattern+"/") {
			return true
		}
	}
	return false
}
