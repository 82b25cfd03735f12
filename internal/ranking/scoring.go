// Package ranking scores and orders learning resources for a user from a
// weighted combination of skill-gap, relevance, difficulty, peer-usage,
// resource-type and skill-similarity signals.
package ranking

import (
	"math"

	"github.com/jonathan/learning-recommender/internal/preprocess"
	"github.com/jonathan/learning-recommender/internal/similarity"
	"github.com/jonathan/learning-recommender/internal/types"
)

// relevanceFallback is used when no similarity matrix is available and the
// user holds at least one skill.
const relevanceFallback = 0.5

// computeSkillGapScore returns the clamped gap of the skill when it is an
// improvement target, else 0.
func computeSkillGapScore(skillID string, targets map[string]types.ImprovementTarget) float64 {
	target, ok := targets[skillID]
	if !ok {
		return 0.0
	}
	return clamp01(target.Gap)
}

// computeSkillRelevanceScore measures how close the skill is to skills the
// user already holds, weighted up by the user's proficiency in each.
func computeSkillRelevanceScore(skillID string, userLevels map[string]float64, matrix *similarity.Matrix) float64 {
	if matrix.Size() == 0 {
		if len(userLevels) > 0 {
			return relevanceFallback
		}
		return 0.0
	}

	target, ok := matrix.Index().Position(skillID)
	if !ok {
		return 0.0
	}

	best := 0.0
	for userSkillID, level := range userLevels {
		pos, ok := matrix.Index().Position(userSkillID)
		if !ok {
			continue
		}
		weighted := matrix.At(target, pos) * (0.5 + 0.5*level)
		best = math.Max(best, weighted)
	}
	return best
}

// computeDifficultyMatchScore rewards resources whose difficulty sits near the
// user's level plus offset. The score falls linearly to 0 at a distance of 0.5.
func computeDifficultyMatchScore(
	skillID string,
	feature types.ResourceFeature,
	userLevels map[string]float64,
	targets map[string]types.ImprovementTarget,
	offset float64,
) float64 {
	userLevel := 0.0
	if level, ok := userLevels[skillID]; ok {
		userLevel = level
	} else if target, ok := targets[skillID]; ok {
		userLevel = preprocess.NormalizeSkillLevel(target.CurrentLevel, preprocess.MinLevel, preprocess.MaxLevel)
	}

	ideal := userLevel + offset
	diff := math.Abs(feature.Difficulty - ideal)
	return math.Max(0.0, 1.0-2*diff)
}

// computeSkillSimilarityScore measures how close the skill is to the user's
// improvement targets, weighted up by each target's gap. A direct target
// scores 1.0.
func computeSkillSimilarityScore(skillID string, targets []types.ImprovementTarget, matrix *similarity.Matrix) float64 {
	if matrix.Size() == 0 {
		return 0.0
	}
	pos, ok := matrix.Index().Position(skillID)
	if !ok {
		return 0.0
	}

	for _, t := range targets {
		if t.SkillID == skillID {
			return 1.0
		}
	}

	best := 0.0
	for _, t := range targets {
		targetPos, ok := matrix.Index().Position(t.SkillID)
		if !ok {
			continue
		}
		weighted := matrix.At(pos, targetPos) * (0.5 + 0.5*t.Gap)
		best = math.Max(best, weighted)
	}
	return best
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
