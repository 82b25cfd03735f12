package preprocess

import (
	"testing"

	"github.com/jonathan/learning-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareResourceFeatures(t *testing.T) {
	features := PrepareResourceFeatures([]types.Resource{
		{ID: "r1", SkillID: "react", Title: "React Basics", Provider: "Acme", Difficulty: "intermediate", Type: "course"},
		{ID: "r2", SkillID: "go", Difficulty: "Advanced", Type: "certification"},
		{ID: "r3", SkillID: "sql", Difficulty: "expert", Type: "podcast"},
		{ID: "r4", SkillID: "sql"},
	})

	require.Len(t, features, 4)
	assert.Equal(t, types.ResourceFeature{
		SkillID: "react", Difficulty: 2.0, TypeScore: 1.0, Title: "React Basics", Provider: "Acme",
	}, features["r1"])

	assert.Equal(t, 3.0, features["r2"].Difficulty)
	assert.Equal(t, 1.2, features["r2"].TypeScore)
	assert.Equal(t, "Unknown", features["r2"].Provider)

	assert.Equal(t, 1.0, features["r3"].Difficulty, "unknown difficulty defaults to beginner")
	assert.Equal(t, 0.7, features["r3"].TypeScore, "unknown type defaults to other")

	assert.Equal(t, 1.0, features["r4"].Difficulty)
	assert.Equal(t, 0.7, features["r4"].TypeScore)
}

func TestTypeScores(t *testing.T) {
	tests := map[string]float64{
		"course": 1.0, "video": 0.8, "article": 0.6,
		"certification": 1.2, "document": 0.5, "other": 0.7, "": 0.7,
	}
	for resourceType, expected := range tests {
		assert.Equal(t, expected, TypeScore(resourceType), "type %q", resourceType)
	}
}
