// Package types provides type definitions for structured data used throughout the learning recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Skill represents a catalog skill. Skills are immutable for the duration of a
// similarity computation.
type Skill struct {
	ID          string `json:"id" validate:"required"`
	Category    string `json:"category,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UserSkill is a raw skill level record for one user.
// Level is typically on a 1-10 scale; a missing level is treated as 1.
type UserSkill struct {
	SkillID string `json:"skill_id" validate:"required"`
	Level   *int   `json:"level,omitempty"`
}

// DevelopmentPlan is an individual development plan (IDP) listing skills the
// user intends to improve.
type DevelopmentPlan struct {
	ID              string     `json:"id,omitempty"`
	SkillsToImprove []PlanItem `json:"skills_to_improve" validate:"dive"`
}

// PlanItem is one skill entry in a development plan.
// Missing levels default to current=1 and target=5.
type PlanItem struct {
	SkillID      string `json:"skill_id" validate:"required"`
	SkillName    string `json:"skill_name,omitempty"`
	CurrentLevel *int   `json:"current_level,omitempty"`
	TargetLevel  *int   `json:"target_level,omitempty"`
}

// PerformanceReport is a review flagging weaknesses tied to catalog skills.
type PerformanceReport struct {
	Weaknesses      string   `json:"weaknesses,omitempty"`
	RelatedSkillIDs []string `json:"related_skill_ids,omitempty"`
}

// ImprovementTarget is a skill the user wants to improve, with its normalized gap.
type ImprovementTarget struct {
	SkillID      string  `json:"skill_id" validate:"required"`
	SkillName    string  `json:"skill_name,omitempty"`
	CurrentLevel int     `json:"current_level"`
	TargetLevel  int     `json:"target_level"`
	Gap          float64 `json:"gap" validate:"gte=0,lte=1"`
}

// SimilarSkill is one neighbor returned by a similarity lookup.
type SimilarSkill struct {
	SkillID    string  `json:"skill_id"`
	Similarity float64 `json:"similarity"`
}
