package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/learning-recommender/internal/types"
)

// GetUserSkills returns the raw skill level records of one user.
func (db *DB) GetUserSkills(ctx context.Context, userID uuid.UUID) ([]types.UserSkill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT skill_id, level FROM user_skills WHERE user_id = $1 ORDER BY skill_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user skills: %w", err)
	}

	skills, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.UserSkill, error) {
		var us types.UserSkill
		err := row.Scan(&us.SkillID, &us.Level)
		return us, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan user skills: %w", err)
	}
	return skills, nil
}

// SetUserSkill records a user's level for a skill. A nil level clears it.
func (db *DB) SetUserSkill(ctx context.Context, userID uuid.UUID, skillID string, level *int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_skills (user_id, skill_id, level)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, skill_id) DO UPDATE SET level = $3`,
		userID, skillID, level,
	)
	if err != nil {
		return fmt.Errorf("failed to set user skill: %w", err)
	}
	return nil
}

// ListUserSkillSets returns one skill-ID list per user across the whole
// population. It feeds the co-occurrence evidence of the similarity build.
func (db *DB) ListUserSkillSets(ctx context.Context) ([][]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT user_id, skill_id FROM user_skills ORDER BY user_id, skill_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user skill sets: %w", err)
	}

	memberships, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (membership, error) {
		var m membership
		err := row.Scan(&m.UserID, &m.ID)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan user skill sets: %w", err)
	}
	return groupSkillSets(memberships), nil
}

// ListDevelopmentPlans returns a user's development plans with their items in order.
func (db *DB) ListDevelopmentPlans(ctx context.Context, userID uuid.UUID) ([]types.DevelopmentPlan, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT p.id, i.skill_id, s.name, i.current_level, i.target_level
		 FROM development_plans p
		 JOIN development_plan_items i ON i.plan_id = p.id
		 JOIN skills s ON s.id = i.skill_id
		 WHERE p.user_id = $1
		 ORDER BY p.created_at, p.id, i.position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list development plans: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (planItemRow, error) {
		var r planItemRow
		err := row.Scan(&r.PlanID, &r.Item.SkillID, &r.Item.SkillName, &r.Item.CurrentLevel, &r.Item.TargetLevel)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan development plan items: %w", err)
	}
	return plansFromRows(items), nil
}

// CreateDevelopmentPlan stores a plan for a user and returns its ID.
func (db *DB) CreateDevelopmentPlan(ctx context.Context, userID uuid.UUID, items []types.PlanItem) (uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var planID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO development_plans (user_id) VALUES ($1) RETURNING id`,
		userID,
	).Scan(&planID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create development plan: %w", err)
	}

	for i, item := range items {
		_, err = tx.Exec(ctx,
			`INSERT INTO development_plan_items (plan_id, position, skill_id, current_level, target_level)
			 VALUES ($1, $2, $3, $4, $5)`,
			planID, i, item.SkillID, item.CurrentLevel, item.TargetLevel,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert plan item %s: %w", item.SkillID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit development plan: %w", err)
	}
	return planID, nil
}

// ListWeaknessSkillIDs returns the distinct skills tied to weaknesses in a
// user's performance reports, sorted.
func (db *DB) ListWeaknessSkillIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT skill_id FROM performance_report_skills
		 WHERE user_id = $1 ORDER BY skill_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list weakness skills: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan weakness skills: %w", err)
	}
	return ids, nil
}

// RecordWeakness links a performance-report weakness to a skill.
func (db *DB) RecordWeakness(ctx context.Context, reportID, userID uuid.UUID, skillID, weaknesses string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO performance_report_skills (report_id, user_id, skill_id, weaknesses)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (report_id, skill_id) DO UPDATE SET weaknesses = $4`,
		reportID, userID, skillID, weaknesses,
	)
	if err != nil {
		return fmt.Errorf("failed to record weakness: %w", err)
	}
	return nil
}
