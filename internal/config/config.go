// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default values applied by MergeWithDefaults and ResolveEnv.
const (
	DefaultPort      = 8080
	DefaultCacheSize = 32
	DefaultTop       = 0 // 0 keeps every ranked resource
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input        string `json:"input,omitempty"`         // Path to a rank request JSON file
	Output       string `json:"output,omitempty"`        // Path to write ranked resources
	PersonasPath string `json:"personas_path,omitempty"` // Path to the persona table JSON file

	// Ranking
	UserID        string             `json:"user_id,omitempty"`        // User UUID (required for DB-based runs)
	Persona       string             `json:"persona,omitempty"`        // Persona name
	CustomWeights map[string]float64 `json:"custom_weights,omitempty"` // Per-signal weight overrides
	Top           int                `json:"top,omitempty"`            // Truncate output to the top N resources

	// Server
	Port      int `json:"port,omitempty"`       // HTTP listen port
	CacheSize int `json:"cache_size,omitempty"` // Similarity snapshots kept in memory

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Top < 0 {
		return fmt.Errorf("config error: 'top' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config error: 'cache_size' must be non-negative")
	}
	for signal, w := range c.CustomWeights {
		if w < 0 {
			return fmt.Errorf("config error: custom weight for %q must be non-negative", signal)
		}
	}

	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.PersonasPath == "" {
		result.PersonasPath = defaults.PersonasPath
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.Persona == "" {
		result.Persona = defaults.Persona
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CustomWeights == nil && defaults.CustomWeights != nil {
		result.CustomWeights = make(map[string]float64, len(defaults.CustomWeights))
		for k, v := range defaults.CustomWeights {
			result.CustomWeights[k] = v
		}
	}

	if result.Top == 0 {
		result.Top = defaults.Top
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}
	if result.CacheSize == 0 {
		if defaults.CacheSize > 0 {
			result.CacheSize = defaults.CacheSize
		} else {
			result.CacheSize = DefaultCacheSize
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolveEnv fills empty fields from environment variables:
// DATABASE_URL, PERSONAS_PATH, PORT and SIMILARITY_CACHE_SIZE.
func (c *Config) ResolveEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.PersonasPath == "" {
		c.PersonasPath = os.Getenv("PERSONAS_PATH")
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			c.Port = port
		}
	}
	if c.CacheSize == 0 {
		if size, err := strconv.Atoi(os.Getenv("SIMILARITY_CACHE_SIZE")); err == nil {
			c.CacheSize = size
		}
	}
}
