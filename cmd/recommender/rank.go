package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/learning-recommender/internal/config"
	"github.com/jonathan/learning-recommender/internal/observability"
	"github.com/jonathan/learning-recommender/internal/pipeline"
	"github.com/jonathan/learning-recommender/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank learning resources from a request file",
	Long: `Reads a rank request (skill catalog, user skills, development plans or explicit
targets, resources and peers), builds a skill similarity matrix when a catalog is
present, and writes the ranked resources as JSON.`,
	RunE: runRank,
}

var (
	rankFlags      settingFlags
	rankMatrixPath string
)

func init() {
	rankCmd.Flags().StringVarP(&rankFlags.input, "input", "i", "", "Path to rank request JSON file (required unless set in --config)")
	rankCmd.Flags().StringVarP(&rankFlags.output, "out", "o", "", "Path to output ranked resources JSON file (default: stdout)")
	rankCmd.Flags().StringVar(&rankMatrixPath, "matrix", "", "Path to a build-matrix export to rank against instead of building one")
	rankFlags.addRankingFlags(rankCmd)
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &rankFlags)
	if err != nil {
		return err
	}

	req, err := readRankRequest(cfg.Input)
	if err != nil {
		return err
	}
	if cfg.Persona != "" {
		req.Persona = cfg.Persona
	}
	if cfg.CustomWeights != nil {
		req.CustomWeights = cfg.CustomWeights
	}

	personas := config.LoadPersonas(cfg.PersonasPath, warnf)
	ranker := ranking.NewRanker(ranking.NewWeightResolver(personas))
	if req.Persona != "" && req.Persona != ranking.DefaultPersona && !ranker.Resolver().HasPersona(req.Persona) {
		warnf("unknown persona %q, using %s", req.Persona, ranking.DefaultPersona)
	}

	printer := observability.NewPrinter(os.Stdout)
	opts := pipeline.RunOptions{Request: req, Ranker: ranker}
	if rankMatrixPath != "" {
		m, err := readMatrixExport(rankMatrixPath)
		if err != nil {
			return err
		}
		opts.Similarity = m
	}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(os.Stdout, "[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := pipeline.Run(context.Background(), opts)
	if err != nil {
		return fmt.Errorf("failed to rank resources: %w", err)
	}

	if cfg.Verbose {
		printer.PrintTargets(result.Targets)
		if result.Similarity != nil {
			printer.PrintMatrixStats(result.Similarity.Stats())
		}
		printer.PrintWeights(result.Ranked)
		printer.PrintRankedResources(result.Ranked)
	}

	ranked := truncate(result.Ranked, cfg.Top)
	if err := writeJSON(cmd.OutOrStdout(), cfg.Output, ranked); err != nil {
		return err
	}
	validateOutput(cfg.Output)

	if cfg.Output != "" && cfg.Output != "-" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully ranked %d resources to %s\n", len(ranked.Ranked), cfg.Output)
	}
	return nil
}
