// Package types provides type definitions for structured data used throughout the learning recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Persona reconfigures the ranking formula for a user archetype.
// Signals missing from WeightMultipliers use a multiplier of 1.0, and a nil
// DifficultyOffset falls back to the default offset.
type Persona struct {
	WeightMultipliers map[string]float64 `json:"weight_multipliers,omitempty" validate:"omitempty,dive,gte=0"`
	DifficultyOffset  *float64           `json:"difficulty_offset,omitempty"`
}

// PersonaTable maps persona names to their configuration.
type PersonaTable map[string]Persona
