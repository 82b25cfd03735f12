package similarity

// cooccurrence is an undirected, unweighted graph over index positions.
// An edge means at least one observed user holds both skills.
type cooccurrence map[[2]int]struct{}

func edgeKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

// buildCooccurrence links every pair of indexed skills held by the same user.
// Skills unknown to the index are ignored.
func buildCooccurrence(userSkillSets [][]string, index *SkillIndex) cooccurrence {
	graph := make(cooccurrence)
	for _, set := range userSkillSets {
		positions := make([]int, 0, len(set))
		seen := make(map[int]bool, len(set))
		for _, id := range set {
			pos, ok := index.Position(id)
			if !ok || seen[pos] {
				continue
			}
			seen[pos] = true
			positions = append(positions, pos)
		}

		for a := 0; a < len(positions); a++ {
			for b := a + 1; b < len(positions); b++ {
				graph[edgeKey(positions[a], positions[b])] = struct{}{}
			}
		}
	}
	return graph
}

func (g cooccurrence) linked(i, j int) bool {
	_, ok := g[edgeKey(i, j)]
	return ok
}
