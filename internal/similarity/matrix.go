package similarity

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/jonathan/learning-recommender/internal/types"
)

// Weights of the three evidence sources in the pairwise similarity.
const (
	categoryWeight     = 0.3
	keywordWeight      = 0.4
	cooccurrenceWeight = 0.3
)

// symmetryTolerance bounds |M[i][j]-M[j][i]| for matrices loaded from rows.
const symmetryTolerance = 1e-9

// Matrix is an immutable skill-skill similarity snapshot paired with the index
// that addresses it. Values lie in [0,1], the matrix is symmetric and the
// diagonal is 1.0. It is safe for concurrent readers.
type Matrix struct {
	index  *SkillIndex
	values *mat.SymDense
	edges  int
}

// Stats summarizes a matrix.
type Stats struct {
	Size              int     `json:"size"`
	MeanSimilarity    float64 `json:"mean_similarity"`
	CooccurrenceEdges int     `json:"cooccurrence_edges"`
}

type catalogEntry struct {
	category string
	keywords map[string]struct{}
}

// Build computes the dense similarity matrix for skills. userSkillSets holds
// one skill-ID list per observed user and drives the co-occurrence evidence.
// Rows are computed concurrently; the only error is ctx cancellation.
func Build(ctx context.Context, skills []types.Skill, userSkillSets [][]string) (*Matrix, error) {
	ids := make([]string, len(skills))
	for i, s := range skills {
		ids[i] = s.ID
	}
	index := NewSkillIndex(ids)
	n := index.Len()

	entries := make([]catalogEntry, n)
	filled := make([]bool, n)
	for _, s := range skills {
		pos, _ := index.Position(s.ID)
		if filled[pos] {
			continue
		}
		filled[pos] = true
		entries[pos] = catalogEntry{
			category: s.Category,
			keywords: ExtractKeywords(s.Name, s.Description),
		}
	}

	graph := buildCooccurrence(userSkillSets, index)
	if n == 0 {
		return &Matrix{index: index}, nil
	}

	// Each goroutine owns the upper-triangle part of one row.
	data := make([]float64, n*n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := data[i*n : (i+1)*n]
			row[i] = 1.0
			for j := i + 1; j < n; j++ {
				row[j] = pairSimilarity(entries[i], entries[j], graph.linked(i, j))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("similarity build cancelled: %w", err)
	}

	return &Matrix{
		index:  index,
		values: mat.NewSymDense(n, data),
		edges:  len(graph),
	}, nil
}

// pairSimilarity combines category match, keyword Jaccard and co-occurrence.
func pairSimilarity(a, b catalogEntry, cooccurs bool) float64 {
	category := 0.0
	if a.category == b.category {
		category = 1.0
	}
	co := 0.0
	if cooccurs {
		co = 1.0
	}
	return categoryWeight*category +
		keywordWeight*KeywordSimilarity(a.keywords, b.keywords) +
		cooccurrenceWeight*co
}

// FromRows rebuilds a matrix from a previously exported dense form.
// rows must be square, symmetric, within [0,1] and have a unit diagonal.
func FromRows(ids []string, rows [][]float64) (*Matrix, error) {
	index := NewSkillIndex(ids)
	n := index.Len()
	if n != len(ids) {
		return nil, &MatrixError{Message: "skill IDs must be unique"}
	}
	if len(rows) != n {
		return nil, &MatrixError{Message: fmt.Sprintf("expected %d rows, got %d", n, len(rows))}
	}
	if n == 0 {
		return &Matrix{index: index}, nil
	}

	for i, row := range rows {
		if len(row) != n {
			return nil, &MatrixError{Message: fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), n)}
		}
	}

	data := make([]float64, 0, n*n)
	for i, row := range rows {
		for j, v := range row {
			if v < 0 || v > 1 || math.IsNaN(v) {
				return nil, &MatrixError{Message: fmt.Sprintf("value at (%d,%d) out of range: %v", i, j, v)}
			}
			if math.Abs(v-rows[j][i]) > symmetryTolerance {
				return nil, &MatrixError{Message: fmt.Sprintf("matrix is not symmetric at (%d,%d)", i, j)}
			}
		}
		if row[i] != 1.0 {
			return nil, &MatrixError{Message: fmt.Sprintf("diagonal at %d must be 1.0, got %v", i, row[i])}
		}
		data = append(data, row...)
	}

	return &Matrix{index: index, values: mat.NewSymDense(n, data)}, nil
}

// Index returns the skill index addressing this matrix.
func (m *Matrix) Index() *SkillIndex {
	if m == nil {
		return nil
	}
	return m.index
}

// Size returns the number of skills in the matrix.
func (m *Matrix) Size() int {
	if m == nil {
		return 0
	}
	return m.index.Len()
}

// At returns the similarity between positions i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.values.At(i, j)
}

// Similarity returns the similarity between two skill IDs.
// The boolean is false when either ID is unknown to the index.
func (m *Matrix) Similarity(a, b string) (float64, bool) {
	i, ok := m.Index().Position(a)
	if !ok {
		return 0, false
	}
	j, ok := m.Index().Position(b)
	if !ok {
		return 0, false
	}
	return m.At(i, j), true
}

// Row returns a copy of the similarities of position i to every skill.
func (m *Matrix) Row(i int) []float64 {
	n := m.Size()
	row := make([]float64, n)
	for j := 0; j < n; j++ {
		row[j] = m.At(i, j)
	}
	return row
}

// Rows returns the full matrix in dense row-major form.
func (m *Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.Size())
	for i := range rows {
		rows[i] = m.Row(i)
	}
	return rows
}

// SimilarSkills returns the k skills most similar to skillID, excluding itself.
// Ties are broken by ascending index position. Unknown IDs yield an empty list.
func (m *Matrix) SimilarSkills(skillID string, k int) []types.SimilarSkill {
	pos, ok := m.Index().Position(skillID)
	if !ok || k <= 0 {
		return []types.SimilarSkill{}
	}

	n := m.Size()
	candidates := make([]int, 0, n-1)
	for j := 0; j < n; j++ {
		if j != pos {
			candidates = append(candidates, j)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return m.At(pos, candidates[a]) > m.At(pos, candidates[b])
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	similar := make([]types.SimilarSkill, 0, k)
	for _, j := range candidates[:k] {
		similar = append(similar, types.SimilarSkill{
			SkillID:    m.index.ID(j),
			Similarity: m.At(pos, j),
		})
	}
	return similar
}

// Relevance returns the maximum similarity between target and any of
// userSkillIDs. It is 0 when the target is unknown or the set is empty.
func (m *Matrix) Relevance(targetSkillID string, userSkillIDs []string) float64 {
	target, ok := m.Index().Position(targetSkillID)
	if !ok {
		return 0.0
	}
	best := 0.0
	for _, id := range userSkillIDs {
		pos, ok := m.index.Position(id)
		if !ok {
			continue
		}
		best = math.Max(best, m.At(target, pos))
	}
	return best
}

// Stats reports the mean off-diagonal similarity and co-occurrence edge count.
func (m *Matrix) Stats() Stats {
	n := m.Size()
	stats := Stats{Size: n, CooccurrenceEdges: m.edges}
	if n < 2 {
		return stats
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += m.At(i, j)
		}
	}
	stats.MeanSimilarity = sum / float64(n*(n-1)/2)
	return stats
}
