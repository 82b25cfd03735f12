// Package preprocess adapts raw user, plan, review and resource records into the
// normalized features consumed by the similarity and ranking packages.
package preprocess

import (
	"github.com/jonathan/learning-recommender/internal/types"
)

// Skill level scale bounds.
const (
	MinLevel = 1
	MaxLevel = 10

	defaultUserLevel    = 1
	defaultCurrentLevel = 1
	defaultTargetLevel  = 5

	// gapScale is the level difference that maps to a gap of 1.0.
	gapScale = 10.0
)

// NormalizeSkillLevel maps level onto [0,1], clamping values outside [minLevel,maxLevel].
func NormalizeSkillLevel(level, minLevel, maxLevel int) float64 {
	if maxLevel <= minLevel {
		return 0.0
	}
	if level < minLevel {
		level = minLevel
	}
	if level > maxLevel {
		level = maxLevel
	}
	return float64(level-minLevel) / float64(maxLevel-minLevel)
}

// SkillGap returns how far current is below target, normalized to [0,1].
// It is 0 whenever target <= current and saturates at 1.0 for a difference of 10 or more.
func SkillGap(currentLevel, targetLevel int) float64 {
	if targetLevel <= currentLevel {
		return 0.0
	}
	gap := float64(targetLevel-currentLevel) / gapScale
	if gap > 1.0 {
		gap = 1.0
	}
	return gap
}

// UserSkillLevels builds a map of skill ID to normalized level.
// Records without a level are treated as level 1; a repeated skill keeps the last record.
func UserSkillLevels(userSkills []types.UserSkill) map[string]float64 {
	levels := make(map[string]float64, len(userSkills))
	for _, us := range userSkills {
		if us.SkillID == "" {
			continue
		}
		level := defaultUserLevel
		if us.Level != nil {
			level = *us.Level
		}
		levels[us.SkillID] = NormalizeSkillLevel(level, MinLevel, MaxLevel)
	}
	return levels
}

// UserSkillIDs returns the skill IDs held by a user, in input order without duplicates.
func UserSkillIDs(userSkills []types.UserSkill) []string {
	seen := make(map[string]bool, len(userSkills))
	ids := make([]string, 0, len(userSkills))
	for _, us := range userSkills {
		if us.SkillID == "" || seen[us.SkillID] {
			continue
		}
		seen[us.SkillID] = true
		ids = append(ids, us.SkillID)
	}
	return ids
}
