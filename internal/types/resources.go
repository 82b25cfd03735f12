// Package types provides type definitions for structured data used throughout the learning recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Resource represents a raw learning resource as supplied by upstream systems.
type Resource struct {
	ID         string `json:"id" validate:"required"`
	SkillID    string `json:"skill_id"`
	Title      string `json:"title,omitempty"`
	Provider   string `json:"provider,omitempty"`
	Difficulty string `json:"difficulty,omitempty"` // beginner, intermediate, advanced
	Type       string `json:"type,omitempty"`       // course, video, article, certification, document, other
	URL        string `json:"url,omitempty"`
}

// ResourceFeature is the numeric feature record prepared for one resource.
type ResourceFeature struct {
	SkillID    string  `json:"skill_id"`
	Difficulty float64 `json:"difficulty"` // 1.0 (beginner) to 3.0 (advanced)
	TypeScore  float64 `json:"type_score"` // 0.5 to 1.2
	Title      string  `json:"title"`
	Provider   string  `json:"provider"`
}

// PeerRecord describes another user's skills and the resources they used.
type PeerRecord struct {
	PeerID          string   `json:"peer_id"`
	SkillIDs        []string `json:"skill_ids"`
	UsedResourceIDs []string `json:"used_resource_ids"`
}
