package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/learning-recommender/internal/config"
	"github.com/jonathan/learning-recommender/internal/schemas"
	"github.com/jonathan/learning-recommender/internal/types"
)

// settingFlags are the shared per-command flags that map onto config.Config.
type settingFlags struct {
	input    string
	output   string
	personas string
	persona  string
	userID   string
	weights  map[string]string
	top      int
	port     int
	cache    int
	dbURL    string
}

// addRankingFlags registers the persona flags shared by rank and rank-user.
func (f *settingFlags) addRankingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.personas, "personas", "", "Path to persona table JSON (optional, defaults to PERSONAS_PATH env var)")
	cmd.Flags().StringVarP(&f.persona, "persona", "p", "", "Persona name (unknown names fall back to the default persona)")
	cmd.Flags().StringToStringVarP(&f.weights, "weight", "w", nil, "Custom signal weight, e.g. --weight skill_gap=1.0 (repeatable)")
	cmd.Flags().IntVar(&f.top, "top", 0, "Only write the top N resources (0 keeps all)")
}

// resolveConfig loads --config, applies explicitly set flags over it, then
// fills the rest from the environment and defaults.
func resolveConfig(cmd *cobra.Command, f *settingFlags) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if verbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = f.input
	}
	if flags.Changed("out") {
		cfg.Output = f.output
	}
	if flags.Changed("personas") {
		cfg.PersonasPath = f.personas
	}
	if flags.Changed("persona") {
		cfg.Persona = f.persona
	}
	if flags.Changed("user-id") {
		cfg.UserID = f.userID
	}
	if flags.Changed("weight") {
		weights, err := parseWeights(f.weights)
		if err != nil {
			return cfg, err
		}
		cfg.CustomWeights = weights
	}
	if flags.Changed("top") {
		cfg.Top = f.top
	}
	if flags.Changed("port") {
		cfg.Port = f.port
	}
	if flags.Changed("cache-size") {
		cfg.CacheSize = f.cache
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = f.dbURL
	}
	if verbose {
		cfg.Verbose = true
	}

	cfg.ResolveEnv()
	cfg = cfg.MergeWithDefaults(config.Config{})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseWeights converts --weight values into floats.
func parseWeights(raw map[string]string) (map[string]float64, error) {
	weights := make(map[string]float64, len(raw))
	for signal, value := range raw {
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for %s: %w", signal, err)
		}
		weights[signal] = w
	}
	return weights, nil
}

// warnf prints a warning to stderr.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// readRankRequest loads, schema-checks and validates a rank request file.
func readRankRequest(path string) (*types.RankRequest, error) {
	if path == "" {
		return nil, fmt.Errorf("--input is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.RankRequestSchema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return nil, fmt.Errorf("invalid rank request %s: %w", path, err)
			}
			warnf("input schema check skipped: %v", err)
		}
	}

	var req types.RankRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rank request JSON: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rank request %s: %w", path, err)
	}
	return &req, nil
}

// writeJSON writes v as indented JSON to path, creating parent directories.
// An empty path or "-" writes to out.
func writeJSON(out io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" || path == "-" {
		_, err := fmt.Fprintln(out, string(data))
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// truncate keeps the first top resources; top <= 0 keeps all.
func truncate(ranked *types.RankedResources, top int) *types.RankedResources {
	if top <= 0 || len(ranked.Ranked) <= top {
		return ranked
	}
	trimmed := *ranked
	trimmed.Ranked = ranked.Ranked[:top]
	return &trimmed
}

// validateOutput checks a written ranking against its schema; failures only warn.
func validateOutput(path string) {
	if path == "" || path == "-" {
		return
	}
	schemaPath := schemas.ResolveSchemaPath(schemas.RankedResourcesSchema)
	if schemaPath == "" {
		return
	}
	if err := schemas.ValidateJSON(schemaPath, path); err != nil {
		warnf("output validation failed: %v", err)
	}
}
