package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/learning-recommender/internal/types"
)

// Peer row kinds returned by the ListPeers query.
const (
	peerKindSkill    = "skill"
	peerKindResource = "resource"
)

// RankingRun is a persisted ranking call.
type RankingRun struct {
	ID               uuid.UUID          `json:"id"`
	UserID           uuid.UUID          `json:"user_id"`
	Persona          string             `json:"persona"`
	Weights          map[string]float64 `json:"weights"`
	DifficultyOffset float64            `json:"difficulty_offset"`
	CreatedAt        time.Time          `json:"created_at"`
	Results          []RankingResult    `json:"results"`
}

// RankingResult is one stored entry of a ranking run.
type RankingResult struct {
	Rank       int                `json:"rank"`
	ResourceID string             `json:"resource_id"`
	Score      float64            `json:"score"`
	Breakdown  map[string]float64 `json:"breakdown"`
	Notes      string             `json:"notes,omitempty"`
}

// peerRow is one (user, kind, id) row of the peer query.
type peerRow struct {
	UserID uuid.UUID
	Kind   string
	ID     string
}

// membership is one (user, skill) row.
type membership struct {
	UserID uuid.UUID
	ID     string
}

// planItemRow is one joined development plan item.
type planItemRow struct {
	PlanID uuid.UUID
	Item   types.PlanItem
}
