package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankRequest_Validate(t *testing.T) {
	valid := func() RankRequest {
		return RankRequest{
			UserSkills: []UserSkill{{SkillID: "go"}},
			Resources:  []Resource{{ID: "r1", SkillID: "go"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *RankRequest)
		wantErr bool
	}{
		{name: "minimal", mutate: func(*RankRequest) {}},
		{name: "empty lists", mutate: func(r *RankRequest) { r.UserSkills = nil; r.Resources = nil }},
		{name: "resource without id", mutate: func(r *RankRequest) { r.Resources[0].ID = "" }, wantErr: true},
		{name: "user skill without id", mutate: func(r *RankRequest) { r.UserSkills[0].SkillID = "" }, wantErr: true},
		{name: "gap above one", mutate: func(r *RankRequest) {
			r.SkillsToImprove = []ImprovementTarget{{SkillID: "k8s", Gap: 1.5}}
		}, wantErr: true},
		{name: "negative gap", mutate: func(r *RankRequest) {
			r.SkillsToImprove = []ImprovementTarget{{SkillID: "k8s", Gap: -0.1}}
		}, wantErr: true},
		{name: "plan item without skill", mutate: func(r *RankRequest) {
			r.DevelopmentPlans = []DevelopmentPlan{{SkillsToImprove: []PlanItem{{}}}}
		}, wantErr: true},
		{name: "similarity id must be a uuid", mutate: func(r *RankRequest) { r.SimilarityID = "latest" }, wantErr: true},
		{name: "similarity id uuid", mutate: func(r *RankRequest) { r.SimilarityID = "6f1c2d4e-8a7b-4c3d-9e2f-1a2b3c4d5e6f" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSimilarityRequest_Validate(t *testing.T) {
	assert.Error(t, (&SimilarityRequest{}).Validate())
	assert.Error(t, (&SimilarityRequest{Skills: []Skill{{Name: "Go"}}}).Validate())
	assert.NoError(t, (&SimilarityRequest{Skills: []Skill{{ID: "go", Name: "Go"}}}).Validate())
}

func TestPersonaTable_Validate(t *testing.T) {
	offset := 0.5
	assert.NoError(t, PersonaTable{
		"explorer": {WeightMultipliers: map[string]float64{"skill_gap": 0.5}, DifficultyOffset: &offset},
		"empty":    {},
	}.Validate())

	assert.Error(t, PersonaTable{
		"broken": {WeightMultipliers: map[string]float64{"skill_gap": -1}},
	}.Validate())
}

func TestRankRequest_JSONOptionalFields(t *testing.T) {
	var req RankRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"user_skills": [{"skill_id": "go"}, {"skill_id": "sql", "level": 7}],
		"development_plans": [{"skills_to_improve": [{"skill_id": "k8s"}]}],
		"resources": [{"id": "r1"}]
	}`), &req))

	require.Len(t, req.UserSkills, 2)
	assert.Nil(t, req.UserSkills[0].Level)
	require.NotNil(t, req.UserSkills[1].Level)
	assert.Equal(t, 7, *req.UserSkills[1].Level)

	item := req.DevelopmentPlans[0].SkillsToImprove[0]
	assert.Nil(t, item.CurrentLevel)
	assert.Nil(t, item.TargetLevel)
	assert.Empty(t, req.Persona)
}
