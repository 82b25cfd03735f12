package ranking

import "strings"

// generateNotes creates a brief explanation of a resource's ranking.
func generateNotes(breakdown map[string]float64) string {
	var parts []string

	gap := breakdown[SignalSkillGap]
	switch {
	case gap >= 0.5:
		parts = append(parts, "Targets a large skill gap")
	case gap > 0:
		parts = append(parts, "Targets a skill in the development plan")
	case breakdown[SignalSkillSimilarity] >= 0.5:
		parts = append(parts, "Related to a development plan skill")
	}

	difficulty := breakdown[SignalDifficultyMatch]
	if difficulty >= 0.8 {
		parts = append(parts, "Good difficulty fit")
	} else if difficulty == 0 {
		parts = append(parts, "Difficulty far from current level")
	}

	if breakdown[SignalCollaborative] >= 0.5 {
		parts = append(parts, "Popular with similar peers")
	}

	if len(parts) == 0 {
		return "No strong signals"
	}
	return strings.Join(parts, ". ")
}
