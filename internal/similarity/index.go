// Package similarity builds the pairwise skill relatedness matrix from taxonomy
// category, lexical overlap and co-occurrence evidence.
package similarity

// SkillIndex is a bijection between skill IDs and dense matrix positions.
// Positions follow insertion order; a repeated ID keeps its first position.
type SkillIndex struct {
	positions map[string]int
	ids       []string
}

// NewSkillIndex builds an index from an ordered list of skill IDs.
func NewSkillIndex(ids []string) *SkillIndex {
	idx := &SkillIndex{
		positions: make(map[string]int, len(ids)),
		ids:       make([]string, 0, len(ids)),
	}
	for _, id := range ids {
		if _, exists := idx.positions[id]; exists {
			continue
		}
		idx.positions[id] = len(idx.ids)
		idx.ids = append(idx.ids, id)
	}
	return idx
}

// Len returns the number of indexed skills.
func (x *SkillIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.ids)
}

// Position returns the matrix position of a skill ID.
func (x *SkillIndex) Position(id string) (int, bool) {
	if x == nil {
		return 0, false
	}
	pos, ok := x.positions[id]
	return pos, ok
}

// ID returns the skill ID at a matrix position.
func (x *SkillIndex) ID(pos int) string {
	return x.ids[pos]
}

// IDs returns a copy of the indexed skill IDs in position order.
func (x *SkillIndex) IDs() []string {
	out := make([]string, len(x.ids))
	copy(out, x.ids)
	return out
}
