package languages

import (
	"path/filepath"
	"sort"
	"strings"
)

var registry = make(map[string]Language)

// Register adds a language to the registry
func Register(lang Language) {
	for _, ext := range lang.Extensions() {
		registry[ext] = lang
	}
}

// GetLanguageForFile returns the Language for a file based on its extension.
// Returns nil if the file type is not supported.
func GetLanguageForFile(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	return registry[ext]
}

// GetLanguage returns a registered language by name.
// Returns nil if no language goes by that name.
func GetLanguage(name string) Language {
	for _, lang := range registry {
		if lang.Name() == name {
			return lang
		}
	}
	return nil
}

// SupportedExtensions returns all registered file extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// RegisteredLanguages returns the names of all registered languages, sorted.
func RegisteredLanguages() []string {
	seen := make(map[string]bool)
	var names []string
	for _, lang := range registry {
		if !seen[lang.Name()] {
			seen[lang.Name()] = true
			names = append(names, lang.Name())
		}
	}
	sort.Strings(names)
	return names
}
