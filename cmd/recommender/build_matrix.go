package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/learning-recommender/internal/observability"
	"github.com/jonathan/learning-recommender/internal/pipeline"
	"github.com/jonathan/learning-recommender/internal/similarity"
)

var buildMatrixCmd = &cobra.Command{
	Use:   "build-matrix",
	Short: "Build and export the skill similarity matrix",
	Long:  "Builds the dense skill similarity matrix from a rank request's catalog and writes the skill index with its rows as JSON.",
	RunE:  runBuildMatrix,
}

var buildMatrixFlags settingFlags

// MatrixExport is the JSON form of a similarity matrix.
type MatrixExport struct {
	SkillIDs []string         `json:"skill_ids"`
	Rows     [][]float64      `json:"rows"`
	Stats    similarity.Stats `json:"stats"`
}

func init() {
	buildMatrixCmd.Flags().StringVarP(&buildMatrixFlags.input, "input", "i", "", "Path to rank request JSON file with a skills catalog (required unless set in --config)")
	buildMatrixCmd.Flags().StringVarP(&buildMatrixFlags.output, "out", "o", "", "Path to output matrix JSON file (default: stdout)")
	rootCmd.AddCommand(buildMatrixCmd)
}

func runBuildMatrix(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &buildMatrixFlags)
	if err != nil {
		return err
	}
	req, err := readRankRequest(cfg.Input)
	if err != nil {
		return err
	}

	m, err := pipeline.BuildMatrix(context.Background(), req.Skills, pipeline.PopulationSkillSets(req), nil)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintMatrixStats(m.Stats())
	}

	export := MatrixExport{
		SkillIDs: m.Index().IDs(),
		Rows:     m.Rows(),
		Stats:    m.Stats(),
	}
	if err := writeJSON(cmd.OutOrStdout(), cfg.Output, export); err != nil {
		return err
	}
	if cfg.Output != "" && cfg.Output != "-" {
		_, _ = fmt.Fprintf(os.Stdout, "Wrote %dx%d similarity matrix to %s\n", m.Size(), m.Size(), cfg.Output)
	}
	return nil
}

// readMatrixExport rebuilds a matrix from a build-matrix export file.
func readMatrixExport(path string) (*similarity.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix file %s: %w", path, err)
	}
	var export MatrixExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matrix JSON: %w", err)
	}
	m, err := similarity.FromRows(export.SkillIDs, export.Rows)
	if err != nil {
		return nil, fmt.Errorf("invalid matrix export %s: %w", path, err)
	}
	return m, nil
}
