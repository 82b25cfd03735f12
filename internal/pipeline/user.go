package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/learning-recommender/internal/types"
)

// UserStore loads a user's ranking inputs and persists ranking runs.
// *db.DB satisfies it.
type UserStore interface {
	ListSkills(ctx context.Context) ([]types.Skill, error)
	ListUserSkillSets(ctx context.Context) ([][]string, error)
	GetUserSkills(ctx context.Context, userID uuid.UUID) ([]types.UserSkill, error)
	ListDevelopmentPlans(ctx context.Context, userID uuid.UUID) ([]types.DevelopmentPlan, error)
	ListWeaknessSkillIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
	ListResources(ctx context.Context) ([]types.Resource, error)
	ListPeers(ctx context.Context, excludingUser uuid.UUID) ([]types.PeerRecord, error)
	SaveRankingRun(ctx context.Context, userID uuid.UUID, ranked *types.RankedResources) (uuid.UUID, error)
}

// UserResult is the outcome of a stored-data run.
type UserResult struct {
	*Result
	RunID uuid.UUID
}

// LoadRequest assembles a rank request for userID from the store.
func LoadRequest(ctx context.Context, store UserStore, userID uuid.UUID) (*types.RankRequest, error) {
	skills, err := store.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	population, err := store.ListUserSkillSets(ctx)
	if err != nil {
		return nil, err
	}
	userSkills, err := store.GetUserSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	plans, err := store.ListDevelopmentPlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	weaknesses, err := store.ListWeaknessSkillIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	resources, err := store.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	peers, err := store.ListPeers(ctx, userID)
	if err != nil {
		return nil, err
	}

	req := &types.RankRequest{
		UserID:              userID.String(),
		Skills:              skills,
		PopulationSkillSets: population,
		UserSkills:          userSkills,
		DevelopmentPlans:    plans,
		Resources:           resources,
		Peers:               peers,
	}
	if len(weaknesses) > 0 {
		req.PerformanceReports = []types.PerformanceReport{{RelatedSkillIDs: weaknesses}}
	}
	return req, nil
}

// RunForUser loads userID's data from store, ranks it and saves the run.
// persona and custom follow the same precedence as a request body.
func RunForUser(ctx context.Context, store UserStore, userID uuid.UUID, persona string, custom map[string]float64, opts RunOptions) (*UserResult, error) {
	req, err := LoadRequest(ctx, store, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load data for user %s: %w", userID, err)
	}
	req.Persona = persona
	req.CustomWeights = custom
	opts.Request = req

	result, err := Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	runID, err := store.SaveRankingRun(ctx, userID, result.Ranked)
	if err != nil {
		return nil, fmt.Errorf("failed to save ranking run: %w", err)
	}
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: StepPersist, Message: "Saved ranking run", RunID: runID.String()})
	}

	return &UserResult{Result: result, RunID: runID}, nil
}
