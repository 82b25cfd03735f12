package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/learning-recommender/internal/config"
	"github.com/jonathan/learning-recommender/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a user",
	Long:  `Signs a bearer token for the API server using JWT_SECRET, JWT_ISSUER and JWT_EXPIRATION_HOURS.`,
	RunE:  runToken,
}

var tokenUserID string

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user-id", "u", "", "User UUID (required)")

	if err := tokenCmd.MarkFlagRequired("user-id"); err != nil {
		panic(fmt.Sprintf("failed to mark user-id flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(tokenUserID)
	if err != nil {
		return fmt.Errorf("invalid user ID %q: %w", tokenUserID, err)
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	token, err := server.NewJWTService(jwtCfg).GenerateToken(userID)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
