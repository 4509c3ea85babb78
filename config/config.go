// Package config loads the strc configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ciarant/structurizr-completion/completion"
)

// Config contains the knobs shared by the CLI, the LSP server and the MCP
// server. Flags override whatever the file says.
type Config struct {
	// Matcher names the filtering strategy: "prefix" or "fuzzy".
	Matcher string `yaml:"matcher"`
	// MaxItems caps the suggestion list. Zero means no cap.
	MaxItems int `yaml:"max_items"`
	// LogLevel is the LSP server's log level: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// SkipPatterns are path prefixes the workspace scan leaves out.
	SkipPatterns []string `yaml:"skip_patterns,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Matcher:  "prefix",
		MaxItems: 0,
		LogLevel: "info",
	}
}

// Load reads a YAML configuration file. An empty path falls back to the
// default location; a missing default file is not an error and yields the
// built-in configuration.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".strc.yaml")
}

// validate checks the loaded values, filling blanks with defaults.
func (c *Config) validate() error {
	if c.Matcher == "" {
		c.Matcher = "prefix"
	}
	if _, ok := completion.MatcherByName(c.Matcher); !ok {
		return fmt.Errorf("unknown matcher %q (want prefix or fuzzy)", c.Matcher)
	}
	if c.MaxItems < 0 {
		return fmt.Errorf("max_items must not be negative, got %d", c.MaxItems)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q (want debug, info, warn or error)", c.LogLevel)
	}
	return nil
}
