// Package pipeline orchestrates one recommendation run: feature preparation,
// similarity matrix construction and ranking.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/learning-recommender/internal/preprocess"
	"github.com/jonathan/learning-recommender/internal/ranking"
	"github.com/jonathan/learning-recommender/internal/similarity"
	"github.com/jonathan/learning-recommender/internal/types"
)

// Step names reported through ProgressEvent.
const (
	StepPrepare    = "prepare"
	StepSimilarity = "similarity"
	StepRank       = "rank"
	StepPersist    = "persist"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// BuildObserver receives the outcome of each similarity build.
type BuildObserver interface {
	ObserveMatrixBuild(size int, elapsed time.Duration, err error)
}

// RunOptions holds configuration for one run
type RunOptions struct {
	Request *types.RankRequest
	Ranker  *ranking.Ranker

	// Similarity is a prebuilt matrix. When nil a matrix is built from
	// Request.Skills if any are given.
	Similarity *similarity.Matrix

	BuildObserver BuildObserver
	OnProgress    ProgressCallback
}

// Result holds the outputs of a run.
type Result struct {
	Ranked     *types.RankedResources
	Similarity *similarity.Matrix
	Targets    []types.ImprovementTarget
}

func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}

// Prepare converts a request into ranking input. Improvement targets are the
// request's explicit targets, then development plan targets, then review
// weaknesses, keeping the first entry per skill. Similarity is left unset.
func Prepare(req *types.RankRequest) ranking.Input {
	explicit := make([]types.ImprovementTarget, 0, len(req.SkillsToImprove))
	for _, t := range req.SkillsToImprove {
		if t.Gap > 0 {
			explicit = append(explicit, t)
		}
	}

	targets := preprocess.MergeTargets(explicit, preprocess.ExtractSkillsToImprove(req.DevelopmentPlans))
	weaknesses := preprocess.WeaknessTargets(
		preprocess.ExtractWeaknesses(req.PerformanceReports),
		targets,
		preprocess.RawUserLevels(req.UserSkills),
	)
	targets = preprocess.MergeTargets(targets, weaknesses)

	return ranking.Input{
		Resources:  req.Resources,
		UserLevels: preprocess.UserSkillLevels(req.UserSkills),
		Targets:    targets,
		Features:   preprocess.PrepareResourceFeatures(req.Resources),
		Peers:      req.Peers,
	}
}

// PopulationSkillSets returns the co-occurrence population for a request.
// Explicit sets win; otherwise the user's own skills and each peer's skills
// form the population.
func PopulationSkillSets(req *types.RankRequest) [][]string {
	if len(req.PopulationSkillSets) > 0 {
		return req.PopulationSkillSets
	}
	sets := make([][]string, 0, len(req.Peers)+1)
	if ids := preprocess.UserSkillIDs(req.UserSkills); len(ids) > 0 {
		sets = append(sets, ids)
	}
	for _, p := range req.Peers {
		if len(p.SkillIDs) > 0 {
			sets = append(sets, p.SkillIDs)
		}
	}
	return sets
}

// BuildMatrix builds a similarity matrix and reports the outcome to obs when set.
func BuildMatrix(ctx context.Context, skills []types.Skill, userSkillSets [][]string, obs BuildObserver) (*similarity.Matrix, error) {
	start := time.Now()
	m, err := similarity.Build(ctx, skills, userSkillSets)
	if obs != nil {
		obs.ObserveMatrixBuild(m.Size(), time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build similarity matrix: %w", err)
	}
	return m, nil
}

// Run prepares the request, builds or reuses a similarity matrix and ranks.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Request == nil {
		return nil, fmt.Errorf("rank request is required")
	}
	ranker := opts.Ranker
	if ranker == nil {
		ranker = ranking.NewRanker(nil)
	}

	in := Prepare(opts.Request)
	emitProgress(&opts, StepPrepare, fmt.Sprintf("Prepared %d resources and %d improvement targets",
		len(in.Features), len(in.Targets)), nil)

	matrix := opts.Similarity
	if matrix == nil && len(opts.Request.Skills) > 0 {
		var err error
		matrix, err = BuildMatrix(ctx, opts.Request.Skills, PopulationSkillSets(opts.Request), opts.BuildObserver)
		if err != nil {
			return nil, err
		}
		emitProgress(&opts, StepSimilarity, fmt.Sprintf("Built similarity matrix over %d skills", matrix.Size()), matrix.Stats())
	}
	in.Similarity = matrix

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	ranked := ranker.Rank(in, opts.Request.Persona, opts.Request.CustomWeights)
	emitProgress(&opts, StepRank, fmt.Sprintf("Ranked %d resources with persona %q", len(ranked.Ranked), ranked.Persona), nil)

	return &Result{
		Ranked:     ranked,
		Similarity: matrix,
		Targets:    in.Targets,
	}, nil
}
