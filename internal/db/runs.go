package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/learning-recommender/internal/types"
)

// SaveRankingRun persists a ranking result for a user and returns the run ID.
// Results are stored in rank order starting at 1.
func (db *DB) SaveRankingRun(ctx context.Context, userID uuid.UUID, ranked *types.RankedResources) (uuid.UUID, error) {
	if ranked == nil {
		return uuid.Nil, fmt.Errorf("ranked resources cannot be nil")
	}

	weights, err := json.Marshal(ranked.Weights)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal weights: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	runID := uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO ranking_runs (id, user_id, persona, weights, difficulty_offset)
		 VALUES ($1, $2, $3, $4, $5)`,
		runID, userID, ranked.Persona, weights, ranked.DifficultyOffset,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create ranking run: %w", err)
	}

	batch := &pgx.Batch{}
	for i, r := range ranked.Ranked {
		breakdown, err := json.Marshal(r.Breakdown)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal breakdown for %s: %w", r.ResourceID, err)
		}
		batch.Queue(
			`INSERT INTO ranking_results (run_id, rank, resource_id, score, breakdown, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			runID, i+1, r.ResourceID, r.Score, breakdown, r.Notes,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert ranking results: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit ranking run: %w", err)
	}
	return runID, nil
}

// GetRankingRun loads a stored run with its results. It returns nil, nil when
// the run does not exist.
func (db *DB) GetRankingRun(ctx context.Context, runID uuid.UUID) (*RankingRun, error) {
	var run RankingRun
	var weights []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, persona, weights, difficulty_offset, created_at
		 FROM ranking_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.UserID, &run.Persona, &weights, &run.DifficultyOffset, &run.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ranking run: %w", err)
	}
	if err := json.Unmarshal(weights, &run.Weights); err != nil {
		return nil, fmt.Errorf("failed to decode run weights: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT rank, resource_id, score, breakdown, notes
		 FROM ranking_results WHERE run_id = $1 ORDER BY rank`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking results: %w", err)
	}
	run.Results, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (RankingResult, error) {
		var r RankingResult
		var breakdown []byte
		if err := row.Scan(&r.Rank, &r.ResourceID, &r.Score, &breakdown, &r.Notes); err != nil {
			return r, err
		}
		return r, json.Unmarshal(breakdown, &r.Breakdown)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ranking results: %w", err)
	}

	return &run, nil
}
