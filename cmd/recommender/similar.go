package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/learning-recommender/internal/observability"
	"github.com/jonathan/learning-recommender/internal/pipeline"
)

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "List the skills most similar to a given skill",
	Long:  "Builds the skill similarity matrix from a rank request's catalog and population and prints the nearest neighbors of one skill.",
	RunE:  runSimilar,
}

var (
	similarFlags   settingFlags
	similarSkillID string
	similarK       int
	similarJSON    bool
	similarTo      []string
)

func init() {
	similarCmd.Flags().StringVarP(&similarFlags.input, "input", "i", "", "Path to rank request JSON file with a skills catalog (required unless set in --config)")
	similarCmd.Flags().StringVarP(&similarSkillID, "skill", "s", "", "Skill ID to look up (required)")
	similarCmd.Flags().IntVarP(&similarK, "k", "k", 5, "Number of neighbors")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "Print neighbors as JSON")
	similarCmd.Flags().StringSliceVar(&similarTo, "relevance-to", nil, "Also report the best similarity of --skill to these held skills")

	if err := similarCmd.MarkFlagRequired("skill"); err != nil {
		panic(fmt.Sprintf("failed to mark skill flag as required: %v", err))
	}

	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &similarFlags)
	if err != nil {
		return err
	}
	req, err := readRankRequest(cfg.Input)
	if err != nil {
		return err
	}
	if len(req.Skills) == 0 {
		return fmt.Errorf("rank request %s has no skills catalog", cfg.Input)
	}

	m, err := pipeline.BuildMatrix(context.Background(), req.Skills, pipeline.PopulationSkillSets(req), nil)
	if err != nil {
		return err
	}
	if _, ok := m.Index().Position(similarSkillID); !ok {
		return fmt.Errorf("skill %q is not in the catalog", similarSkillID)
	}

	similar := m.SimilarSkills(similarSkillID, similarK)
	if similarJSON {
		if len(similarTo) == 0 {
			return writeJSON(cmd.OutOrStdout(), "", similar)
		}
		return writeJSON(cmd.OutOrStdout(), "", map[string]any{
			"similar":   similar,
			"relevance": m.Relevance(similarSkillID, similarTo),
		})
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if cfg.Verbose {
		printer.PrintMatrixStats(m.Stats())
	}
	printer.PrintSimilarSkills(similarSkillID, similar)
	if len(similarTo) > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Relevance to %v: %.3f\n", similarTo, m.Relevance(similarSkillID, similarTo))
	}
	return nil
}
