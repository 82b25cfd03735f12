package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/learning-recommender/internal/types"
)

func TestPeersFromRows(t *testing.T) {
	alice := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bob := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	peers := peersFromRows([]peerRow{
		{UserID: alice, Kind: peerKindResource, ID: "r1"},
		{UserID: alice, Kind: peerKindSkill, ID: "go"},
		{UserID: bob, Kind: peerKindSkill, ID: "sql"},
		{UserID: alice, Kind: peerKindSkill, ID: "k8s"},
		{UserID: bob, Kind: "unknown", ID: "x"},
	})

	require.Len(t, peers, 2)
	assert.Equal(t, types.PeerRecord{
		PeerID:          alice.String(),
		SkillIDs:        []string{"go", "k8s"},
		UsedResourceIDs: []string{"r1"},
	}, peers[0])
	assert.Equal(t, bob.String(), peers[1].PeerID)
	assert.Equal(t, []string{"sql"}, peers[1].SkillIDs)
	assert.Empty(t, peers[1].UsedResourceIDs)
}

func TestPeersFromRows_Empty(t *testing.T) {
	peers := peersFromRows(nil)
	assert.NotNil(t, peers)
	assert.Empty(t, peers)
}

func TestGroupSkillSets(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	sets := groupSkillSets([]membership{
		{UserID: a, ID: "go"},
		{UserID: b, ID: "react"},
		{UserID: a, ID: "sql"},
	})

	assert.Equal(t, [][]string{{"go", "sql"}, {"react"}}, sets)
	assert.Empty(t, groupSkillSets(nil))
}

func TestPlansFromRows(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	seven := 7

	plans := plansFromRows([]planItemRow{
		{PlanID: p1, Item: types.PlanItem{SkillID: "react", TargetLevel: &seven}},
		{PlanID: p2, Item: types.PlanItem{SkillID: "go"}},
		{PlanID: p1, Item: types.PlanItem{SkillID: "css"}},
	})

	require.Len(t, plans, 2)
	assert.Equal(t, p1.String(), plans[0].ID)
	require.Len(t, plans[0].SkillsToImprove, 2)
	assert.Equal(t, "react", plans[0].SkillsToImprove[0].SkillID)
	assert.Equal(t, 7, *plans[0].SkillsToImprove[0].TargetLevel)
	assert.Equal(t, "css", plans[0].SkillsToImprove[1].SkillID)
	assert.Equal(t, "go", plans[1].SkillsToImprove[0].SkillID)
}

func TestSchemaEmbedded(t *testing.T) {
	for _, table := range []string{
		"skills", "user_skills", "development_plans", "development_plan_items",
		"performance_report_skills", "resources", "resource_usage",
		"ranking_runs", "ranking_results",
	} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
}
