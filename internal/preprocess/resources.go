package preprocess

import (
	"strings"

	"github.com/jonathan/learning-recommender/internal/types"
)

const (
	defaultDifficulty = 1.0
	defaultTypeScore  = 0.7
	defaultProvider   = "Unknown"
)

// difficultyScores maps difficulty labels to numeric scores; higher is more advanced.
var difficultyScores = map[string]float64{
	"beginner":     1.0,
	"intermediate": 2.0,
	"advanced":     3.0,
}

// typeScores maps resource types to preference scores.
var typeScores = map[string]float64{
	"course":        1.0,
	"video":         0.8,
	"article":       0.6,
	"certification": 1.2,
	"document":      0.5,
	"other":         0.7,
}

// DifficultyScore returns the numeric score for a difficulty label.
// Unknown or empty labels are treated as beginner.
func DifficultyScore(difficulty string) float64 {
	if score, ok := difficultyScores[strings.ToLower(strings.TrimSpace(difficulty))]; ok {
		return score
	}
	return defaultDifficulty
}

// TypeScore returns the preference score for a resource type.
// Unknown or empty types are treated as "other".
func TypeScore(resourceType string) float64 {
	if score, ok := typeScores[strings.ToLower(strings.TrimSpace(resourceType))]; ok {
		return score
	}
	return defaultTypeScore
}

// PrepareResourceFeatures converts resources into numeric feature records keyed by resource ID.
func PrepareResourceFeatures(resources []types.Resource) map[string]types.ResourceFeature {
	features := make(map[string]types.ResourceFeature, len(resources))
	for _, r := range resources {
		provider := r.Provider
		if provider == "" {
			provider = defaultProvider
		}
		features[r.ID] = types.ResourceFeature{
			SkillID:    r.SkillID,
			Difficulty: DifficultyScore(r.Difficulty),
			TypeScore:  TypeScore(r.Type),
			Title:      r.Title,
			Provider:   provider,
		}
	}
	return features
}
