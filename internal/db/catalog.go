package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/learning-recommender/internal/types"
)

// ListSkills returns the full skill catalog ordered by ID.
func (db *DB) ListSkills(ctx context.Context) ([]types.Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, category, name, description FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	skills, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.Skill, error) {
		var s types.Skill
		err := row.Scan(&s.ID, &s.Category, &s.Name, &s.Description)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan skills: %w", err)
	}
	return skills, nil
}

// UpsertSkill inserts a skill or replaces its attributes.
func (db *DB) UpsertSkill(ctx context.Context, s types.Skill) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO skills (id, category, name, description)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET category = $2, name = $3, description = $4`,
		s.ID, s.Category, s.Name, s.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert skill %s: %w", s.ID, err)
	}
	return nil
}

// ListResources returns every learning resource ordered by ID.
func (db *DB) ListResources(ctx context.Context) ([]types.Resource, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, skill_id, title, provider, difficulty, type, url
		 FROM resources ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	resources, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.Resource, error) {
		var r types.Resource
		err := row.Scan(&r.ID, &r.SkillID, &r.Title, &r.Provider, &r.Difficulty, &r.Type, &r.URL)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan resources: %w", err)
	}
	return resources, nil
}

// UpsertResource inserts a resource or replaces its attributes.
func (db *DB) UpsertResource(ctx context.Context, r types.Resource) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resources (id, skill_id, title, provider, difficulty, type, url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		     skill_id = $2, title = $3, provider = $4, difficulty = $5, type = $6, url = $7`,
		r.ID, r.SkillID, r.Title, r.Provider, r.Difficulty, r.Type, r.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert resource %s: %w", r.ID, err)
	}
	return nil
}
