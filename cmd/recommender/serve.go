package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/learning-recommender/internal/config"
	"github.com/jonathan/learning-recommender/internal/db"
	"github.com/jonathan/learning-recommender/internal/metrics"
	"github.com/jonathan/learning-recommender/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the ranking and similarity endpoints.

The /v1/users and /v1/runs endpoints are enabled when DATABASE_URL (or --db-url)
is set. Bearer authentication is enabled when JWT_SECRET is set.`,
	RunE: runServe,
}

var serveFlags settingFlags

func init() {
	serveCmd.Flags().IntVar(&serveFlags.port, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().IntVar(&serveFlags.cache, "cache-size", config.DefaultCacheSize, "Similarity snapshots kept in memory")
	serveCmd.Flags().StringVar(&serveFlags.personas, "personas", "", "Path to persona table JSON (optional, defaults to PERSONAS_PATH env var)")
	serveCmd.Flags().StringVar(&serveFlags.dbURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &serveFlags)
	if err != nil {
		return err
	}

	m := metrics.NewMetrics()
	personas := config.LoadPersonas(cfg.PersonasPath, func(format string, args ...any) {
		m.IncPersonaLoadFailures()
		warnf(format, args...)
	})

	serverCfg := server.Config{
		Port:      cfg.Port,
		CacheSize: cfg.CacheSize,
		Personas:  personas,
		Metrics:   m,
	}

	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return err
		}
		serverCfg.Store = database
	} else {
		log.Printf("DATABASE_URL not set; user endpoints disabled")
	}

	if config.JWTEnabled() {
		jwtCfg, err := config.NewJWTConfig()
		if err != nil {
			return fmt.Errorf("invalid JWT configuration: %w", err)
		}
		serverCfg.JWT = jwtCfg
	}

	srv, err := server.New(serverCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
