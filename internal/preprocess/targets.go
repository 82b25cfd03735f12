package preprocess

import (
	"sort"

	"github.com/jonathan/learning-recommender/internal/types"
)

// weaknessGap is the gap assigned to skills flagged only by performance reviews.
const weaknessGap = 0.5

// ExtractSkillsToImprove collects improvement targets from development plans.
// Only entries with a positive gap are returned, in plan order.
func ExtractSkillsToImprove(plans []types.DevelopmentPlan) []types.ImprovementTarget {
	targets := make([]types.ImprovementTarget, 0)
	for _, plan := range plans {
		for _, item := range plan.SkillsToImprove {
			current := defaultCurrentLevel
			if item.CurrentLevel != nil {
				current = *item.CurrentLevel
			}
			target := defaultTargetLevel
			if item.TargetLevel != nil {
				target = *item.TargetLevel
			}

			gap := SkillGap(current, target)
			if gap <= 0 {
				continue
			}
			targets = append(targets, types.ImprovementTarget{
				SkillID:      item.SkillID,
				SkillName:    item.SkillName,
				CurrentLevel: current,
				TargetLevel:  target,
				Gap:          gap,
			})
		}
	}
	return targets
}

// ExtractWeaknesses returns the unique skill IDs related to performance-review
// weaknesses, sorted for determinism.
func ExtractWeaknesses(reports []types.PerformanceReport) []string {
	seen := make(map[string]bool)
	for _, report := range reports {
		for _, id := range report.RelatedSkillIDs {
			if id != "" {
				seen[id] = true
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WeaknessTargets turns review weaknesses into improvement targets for skills
// not already present in existing. The current level comes from userLevels
// when the user holds the skill.
func WeaknessTargets(weaknesses []string, existing []types.ImprovementTarget, userLevels map[string]int) []types.ImprovementTarget {
	covered := make(map[string]bool, len(existing))
	for _, t := range existing {
		covered[t.SkillID] = true
	}

	targets := make([]types.ImprovementTarget, 0, len(weaknesses))
	for _, id := range weaknesses {
		if covered[id] {
			continue
		}
		current := defaultCurrentLevel
		if level, ok := userLevels[id]; ok {
			current = level
		}
		targets = append(targets, types.ImprovementTarget{
			SkillID:      id,
			CurrentLevel: current,
			TargetLevel:  current + int(weaknessGap*gapScale),
			Gap:          weaknessGap,
		})
		covered[id] = true
	}
	return targets
}

// MergeTargets combines target lists, keeping the first entry for each skill.
func MergeTargets(lists ...[]types.ImprovementTarget) []types.ImprovementTarget {
	seen := make(map[string]bool)
	merged := make([]types.ImprovementTarget, 0)
	for _, list := range lists {
		for _, t := range list {
			if seen[t.SkillID] {
				continue
			}
			seen[t.SkillID] = true
			merged = append(merged, t)
		}
	}
	return merged
}

// RawUserLevels maps skill IDs to raw (unnormalized) levels, defaulting to 1.
func RawUserLevels(userSkills []types.UserSkill) map[string]int {
	levels := make(map[string]int, len(userSkills))
	for _, us := range userSkills {
		if us.SkillID == "" {
			continue
		}
		level := defaultUserLevel
		if us.Level != nil {
			level = *us.Level
		}
		levels[us.SkillID] = level
	}
	return levels
}
