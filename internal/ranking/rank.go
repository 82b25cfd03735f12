package ranking

import (
	"sort"
	"time"

	"github.com/jonathan/learning-recommender/internal/similarity"
	"github.com/jonathan/learning-recommender/internal/types"
)

// Input holds the prepared data for one ranking call.
// Similarity and Peers are optional. When Targets names a skill more than
// once, the last entry wins.
type Input struct {
	Resources  []types.Resource
	UserLevels map[string]float64 // skill ID -> normalized level in [0,1]
	Targets    []types.ImprovementTarget
	Features   map[string]types.ResourceFeature
	Similarity *similarity.Matrix
	Peers      []types.PeerRecord
}

// Rank scores every resource that has a feature record and returns them
// sorted by total score, highest first. Equal scores keep input order.
// Resources without a feature record are left out entirely.
func Rank(in Input, res Resolution) *types.RankedResources {
	targetMap := make(map[string]types.ImprovementTarget, len(in.Targets))
	for _, t := range in.Targets {
		targetMap[t.SkillID] = t
	}

	userSkillIDs := make([]string, 0, len(in.UserLevels))
	for id := range in.UserLevels {
		userSkillIDs = append(userSkillIDs, id)
	}
	collaborative := CollaborativeScores(userSkillIDs, in.Peers)

	ranked := make([]types.RankedResource, 0, len(in.Resources))
	for _, resource := range in.Resources {
		feature, ok := in.Features[resource.ID]
		if !ok {
			continue
		}
		skillID := resource.SkillID
		if skillID == "" {
			skillID = feature.SkillID
		}

		breakdown := map[string]float64{
			SignalSkillGap:        computeSkillGapScore(skillID, targetMap),
			SignalSkillRelevance:  computeSkillRelevanceScore(skillID, in.UserLevels, in.Similarity),
			SignalDifficultyMatch: computeDifficultyMatchScore(skillID, feature, in.UserLevels, targetMap, res.DifficultyOffset),
			SignalCollaborative:   collaborative[resource.ID],
			SignalResourceType:    feature.TypeScore,
			SignalSkillSimilarity: computeSkillSimilarityScore(skillID, in.Targets, in.Similarity),
		}

		score := 0.0
		for _, signal := range signalOrder {
			score += res.Weights[signal] * breakdown[signal]
		}

		ranked = append(ranked, types.RankedResource{
			ResourceID: resource.ID,
			Resource:   resource,
			Score:      score,
			Breakdown:  breakdown,
			Notes:      generateNotes(breakdown),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return &types.RankedResources{
		Persona:          res.Persona,
		Weights:          res.Weights.Clone(),
		DifficultyOffset: res.DifficultyOffset,
		Ranked:           ranked,
	}
}

// Observer receives a summary of each ranking call.
type Observer interface {
	ObserveRank(persona string, candidates, ranked int, elapsed time.Duration)
}

// Ranker pairs a WeightResolver with an optional Observer.
type Ranker struct {
	resolver *WeightResolver
	observer Observer
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithObserver reports every ranking call to o.
func WithObserver(o Observer) Option {
	return func(r *Ranker) {
		r.observer = o
	}
}

// NewRanker creates a Ranker using resolver for weight resolution.
func NewRanker(resolver *WeightResolver, opts ...Option) *Ranker {
	if resolver == nil {
		resolver = NewWeightResolver(nil)
	}
	r := &Ranker{resolver: resolver}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolver returns the ranker's weight resolver.
func (r *Ranker) Resolver() *WeightResolver {
	return r.resolver
}

// Rank resolves weights for persona and custom, then ranks in.
func (r *Ranker) Rank(in Input, persona string, custom map[string]float64) *types.RankedResources {
	start := time.Now()
	res := r.resolver.Resolve(persona, custom)
	out := Rank(in, res)
	if r.observer != nil {
		r.observer.ObserveRank(res.Persona, len(in.Resources), len(out.Ranked), time.Since(start))
	}
	return out
}
