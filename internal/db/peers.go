package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/learning-recommender/internal/types"
)

// ListPeers returns every other user who holds at least one skill or used at
// least one resource, with their skill and resource sets.
func (db *DB) ListPeers(ctx context.Context, excludingUser uuid.UUID) ([]types.PeerRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT user_id, 'skill' AS kind, skill_id AS id FROM user_skills WHERE user_id <> $1
		 UNION ALL
		 SELECT user_id, 'resource' AS kind, resource_id AS id FROM resource_usage WHERE user_id <> $1
		 ORDER BY 1, 2, 3`,
		excludingUser,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list peers: %w", err)
	}

	peerRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (peerRow, error) {
		var r peerRow
		err := row.Scan(&r.UserID, &r.Kind, &r.ID)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan peers: %w", err)
	}
	return peersFromRows(peerRows), nil
}

// RecordResourceUsage marks a resource as used by a user.
func (db *DB) RecordResourceUsage(ctx context.Context, userID uuid.UUID, resourceID string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resource_usage (user_id, resource_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, resource_id) DO UPDATE SET used_at = NOW()`,
		userID, resourceID,
	)
	if err != nil {
		return fmt.Errorf("failed to record resource usage: %w", err)
	}
	return nil
}

// peersFromRows folds (user, kind, id) rows into one PeerRecord per user, in
// first-seen user order.
func peersFromRows(rows []peerRow) []types.PeerRecord {
	peers := make([]types.PeerRecord, 0)
	positions := make(map[uuid.UUID]int)
	for _, r := range rows {
		pos, ok := positions[r.UserID]
		if !ok {
			pos = len(peers)
			positions[r.UserID] = pos
			peers = append(peers, types.PeerRecord{
				PeerID:          r.UserID.String(),
				SkillIDs:        []string{},
				UsedResourceIDs: []string{},
			})
		}
		switch r.Kind {
		case peerKindSkill:
			peers[pos].SkillIDs = append(peers[pos].SkillIDs, r.ID)
		case peerKindResource:
			peers[pos].UsedResourceIDs = append(peers[pos].UsedResourceIDs, r.ID)
		}
	}
	return peers
}

// groupSkillSets folds (user, skill) rows into one skill list per user, in
// first-seen user order.
func groupSkillSets(rows []membership) [][]string {
	sets := make([][]string, 0)
	positions := make(map[uuid.UUID]int)
	for _, r := range rows {
		pos, ok := positions[r.UserID]
		if !ok {
			pos = len(sets)
			positions[r.UserID] = pos
			sets = append(sets, nil)
		}
		sets[pos] = append(sets[pos], r.ID)
	}
	return sets
}

// plansFromRows folds joined plan/item rows into plans, in first-seen plan order.
func plansFromRows(rows []planItemRow) []types.DevelopmentPlan {
	plans := make([]types.DevelopmentPlan, 0)
	positions := make(map[uuid.UUID]int)
	for _, r := range rows {
		pos, ok := positions[r.PlanID]
		if !ok {
			pos = len(plans)
			positions[r.PlanID] = pos
			plans = append(plans, types.DevelopmentPlan{ID: r.PlanID.String()})
		}
		plans[pos].SkillsToImprove = append(plans[pos].SkillsToImprove, r.Item)
	}
	return plans
}
