// Package types provides type definitions for structured data used throughout the learning recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RankedResources is the ordered output of one ranking call.
type RankedResources struct {
	Persona          string             `json:"persona"`
	Weights          map[string]float64 `json:"weights"`
	DifficultyOffset float64            `json:"difficulty_offset"`
	Ranked           []RankedResource   `json:"ranked"`
}

// RankedResource represents a single ranked resource with its score breakdown.
// Breakdown holds each signal's raw (unweighted) value.
type RankedResource struct {
	ResourceID string             `json:"resource_id"`
	Resource   Resource           `json:"resource"`
	Score      float64            `json:"score"`
	Breakdown  map[string]float64 `json:"breakdown"`
	Notes      string             `json:"notes,omitempty"`
}
