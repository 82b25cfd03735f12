// Package types provides type definitions for structured data used throughout the learning recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// RankRequest carries everything needed to rank resources for one user.
// Improvement targets may be given directly (SkillsToImprove) or derived from
// DevelopmentPlans; both sources are merged.
type RankRequest struct {
	UserID              string              `json:"user_id,omitempty"`
	Persona             string              `json:"persona,omitempty"`
	CustomWeights       map[string]float64  `json:"custom_weights,omitempty"`
	Skills              []Skill             `json:"skills,omitempty" validate:"dive"`
	PopulationSkillSets [][]string          `json:"population_skill_sets,omitempty"`
	UserSkills          []UserSkill         `json:"user_skills" validate:"dive"`
	SkillsToImprove     []ImprovementTarget `json:"skills_to_improve,omitempty" validate:"dive"`
	DevelopmentPlans    []DevelopmentPlan   `json:"development_plans,omitempty" validate:"dive"`
	PerformanceReports  []PerformanceReport `json:"performance_reports,omitempty"`
	Resources           []Resource          `json:"resources" validate:"dive"`
	Peers               []PeerRecord        `json:"peers,omitempty"`
	SimilarityID        string              `json:"similarity_id,omitempty" validate:"omitempty,uuid"`
}

// SimilarityRequest asks for a similarity matrix over a skill catalog.
type SimilarityRequest struct {
	Skills        []Skill    `json:"skills" validate:"required,min=1,dive"`
	UserSkillSets [][]string `json:"user_skill_sets,omitempty"`
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SimilarityRequest using the validator.
func (r *SimilarityRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates every persona in the table.
func (t PersonaTable) Validate() error {
	validate := validator.New()
	for _, p := range t {
		if err := validate.Struct(p); err != nil {
			return err
		}
	}
	return nil
}
