package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/learning-recommender/internal/db"
	"github.com/jonathan/learning-recommender/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a rank request file into PostgreSQL",
	Long: `Applies the schema, then stores the request's skill catalog and resources, and the
user's skills, development plans and review weaknesses under --user-id. Peers
whose peer_id is a UUID are stored as users with their skills and resource usage.`,
	RunE: runImport,
}

var importFlags settingFlags

func init() {
	importCmd.Flags().StringVarP(&importFlags.input, "input", "i", "", "Path to rank request JSON file (required unless set in --config)")
	importCmd.Flags().StringVarP(&importFlags.userID, "user-id", "u", "", "User UUID to store the request under (default: the request's user_id)")
	importCmd.Flags().StringVar(&importFlags.dbURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &importFlags)
	if err != nil {
		return err
	}
	req, err := readRankRequest(cfg.Input)
	if err != nil {
		return err
	}
	if cfg.UserID == "" {
		cfg.UserID = req.UserID
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

	if err := database.Migrate(ctx); err != nil {
		return err
	}
	if err := importRequest(ctx, database, userID, req); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Imported %d skills, %d resources and %d peers for user %s\n",
		len(req.Skills), len(req.Resources), len(req.Peers), userID)
	return nil
}

// importRequest writes every part of req that has a home in the database.
func importRequest(ctx context.Context, database *db.DB, userID uuid.UUID, req *types.RankRequest) error {
	for _, s := range req.Skills {
		if err := database.UpsertSkill(ctx, s); err != nil {
			return err
		}
	}
	for _, r := range req.Resources {
		if err := database.UpsertResource(ctx, r); err != nil {
			return err
		}
	}
	for _, us := range req.UserSkills {
		if err := database.SetUserSkill(ctx, userID, us.SkillID, us.Level); err != nil {
			return err
		}
	}
	for _, plan := range req.DevelopmentPlans {
		if _, err := database.CreateDevelopmentPlan(ctx, userID, plan.SkillsToImprove); err != nil {
			return err
		}
	}
	for _, report := range req.PerformanceReports {
		reportID := uuid.New()
		for _, skillID := range report.RelatedSkillIDs {
			if err := database.RecordWeakness(ctx, reportID, userID, skillID, report.Weaknesses); err != nil {
				return err
			}
		}
	}

	for _, peer := range req.Peers {
		peerID, err := uuid.Parse(peer.PeerID)
		if err != nil {
			warnf("skipping peer %q: not a UUID", peer.PeerID)
			continue
		}
		for _, skillID := range peer.SkillIDs {
			if err := database.SetUserSkill(ctx, peerID, skillID, nil); err != nil {
				return err
			}
		}
		for _, resourceID := range peer.UsedResourceIDs {
			if err := database.RecordResourceUsage(ctx, peerID, resourceID); err != nil {
				return err
			}
		}
	}
	return nil
}
