package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/learning-recommender/internal/config"
	"github.com/jonathan/learning-recommender/internal/db"
	"github.com/jonathan/learning-recommender/internal/observability"
	"github.com/jonathan/learning-recommender/internal/pipeline"
	"github.com/jonathan/learning-recommender/internal/ranking"
)

var rankUserCmd = &cobra.Command{
	Use:   "rank-user",
	Short: "Rank learning resources for a stored user",
	Long: `Loads the skill catalog, resources, peers and the user's skills, development
plans and review weaknesses from PostgreSQL, ranks the resources and saves the
run. The run ID is printed so the ranking can be fetched again later.`,
	RunE: runRankUser,
}

var rankUserFlags settingFlags

func init() {
	rankUserCmd.Flags().StringVarP(&rankUserFlags.userID, "user-id", "u", "", "User UUID (required unless set in --config)")
	rankUserCmd.Flags().StringVar(&rankUserFlags.dbURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	rankUserCmd.Flags().StringVarP(&rankUserFlags.output, "out", "o", "", "Path to output ranked resources JSON file (optional)")
	rankUserFlags.addRankingFlags(rankUserCmd)
	rootCmd.AddCommand(rankUserCmd)
}

func runRankUser(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &rankUserFlags)
	if err != nil {
		return err
	}
	if cfg.UserID == "" {
		return fmt.Errorf("--user-id is required")
	}
	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID %q: %w", cfg.UserID, err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("--db-url or DATABASE_URL is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	personas := config.LoadPersonas(cfg.PersonasPath, warnf)
	opts := pipeline.RunOptions{Ranker: ranking.NewRanker(ranking.NewWeightResolver(personas))}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(os.Stdout, "[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := pipeline.RunForUser(ctx, database, userID, cfg.Persona, cfg.CustomWeights, opts)
	if err != nil {
		return fmt.Errorf("failed to rank resources for user %s: %w", userID, err)
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintTargets(result.Targets)
		printer.PrintWeights(result.Ranked)
	}
	printer.PrintRankedResources(result.Ranked)
	_, _ = fmt.Fprintf(os.Stdout, "Saved ranking run %s\n", result.RunID)

	if cfg.Output == "" {
		return nil
	}
	if err := writeJSON(cmd.OutOrStdout(), cfg.Output, truncate(result.Ranked, cfg.Top)); err != nil {
		return err
	}
	validateOutput(cfg.Output)
	return nil
}
