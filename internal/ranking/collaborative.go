package ranking

import "github.com/jonathan/learning-recommender/internal/types"

// peerSimilarityThreshold is the Jaccard similarity a peer must exceed to count.
const peerSimilarityThreshold = 0.1

// CollaborativeScores derives a usage signal in [0,1] per resource from peers
// whose skill sets resemble the user's. Each peer above the threshold adds its
// similarity to every resource it used; totals are divided by the maximum.
// Resources nobody relevant used are absent from the result.
func CollaborativeScores(userSkillIDs []string, peers []types.PeerRecord) map[string]float64 {
	scores := make(map[string]float64)
	if len(peers) == 0 {
		return scores
	}

	userSet := toSet(userSkillIDs)
	for _, peer := range peers {
		if len(peer.SkillIDs) == 0 || len(peer.UsedResourceIDs) == 0 {
			continue
		}
		sim := jaccard(userSet, toSet(peer.SkillIDs))
		if sim <= peerSimilarityThreshold {
			continue
		}
		for _, resourceID := range peer.UsedResourceIDs {
			scores[resourceID] += sim
		}
	}

	maxScore := 0.0
	for _, v := range scores {
		if v > maxScore {
			maxScore = v
		}
	}
	if maxScore <= 0 {
		return map[string]float64{}
	}
	for id := range scores {
		scores[id] /= maxScore
	}
	return scores
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// jaccard returns |a∩b|/|a∪b|, or 0 when both sets are empty.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
