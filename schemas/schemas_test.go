package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/learning-recommender/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"personas.schema.json",
	"rank_request.schema.json",
	"ranked_resources.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare $schema and type")
		})
	}
}

func TestPersonasSchema(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{
			name:     "valid table",
			document: `{"gap_closer": {"weight_multipliers": {"skill_gap": 2.0}, "difficulty_offset": 0.1}}`,
		},
		{
			name:     "empty table",
			document: `{}`,
		},
		{
			name:      "negative multiplier",
			document:  `{"p": {"weight_multipliers": {"skill_gap": -1}}}`,
			wantError: true,
		},
		{
			name:      "unknown signal",
			document:  `{"p": {"weight_multipliers": {"popularity": 1}}}`,
			wantError: true,
		},
		{
			name:      "offset not a number",
			document:  `{"p": {"difficulty_offset": "high"}}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateBytes("personas.schema.json", []byte(tt.document))
			if tt.wantError {
				require.Error(t, err)
				_, ok := err.(*schemas.ValidationError)
				assert.True(t, ok, "expected ValidationError, got %T", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRankRequestSchema(t *testing.T) {
	valid := `{
		"persona": "explorer",
		"user_skills": [{"skill_id": "S1", "level": 8}],
		"skills_to_improve": [{"skill_id": "S2", "current_level": 1, "target_level": 7, "gap": 0.6}],
		"resources": [{"id": "R1", "skill_id": "S2", "difficulty": "intermediate", "type": "course"}]
	}`
	assert.NoError(t, schemas.ValidateBytes("rank_request.schema.json", []byte(valid)))

	missingResources := `{"user_skills": []}`
	assert.Error(t, schemas.ValidateBytes("rank_request.schema.json", []byte(missingResources)))

	badGap := `{"user_skills": [], "resources": [], "skills_to_improve": [{"skill_id": "S2", "gap": 1.5}]}`
	assert.Error(t, schemas.ValidateBytes("rank_request.schema.json", []byte(badGap)))
}

func TestRankedResourcesSchema(t *testing.T) {
	valid := `{
		"persona": "default",
		"weights": {"skill_gap": 0.35},
		"difficulty_offset": 0.3,
		"ranked": [{
			"resource_id": "R1",
			"resource": {"id": "R1", "skill_id": "S2"},
			"score": 0.335,
			"breakdown": {
				"skill_gap": 0.6, "skill_relevance": 0.5, "difficulty_match": 0,
				"collaborative": 0, "resource_type": 1.0, "skill_similarity": 0
			}
		}]
	}`
	assert.NoError(t, schemas.ValidateBytes("ranked_resources.schema.json", []byte(valid)))

	missingSignal := `{
		"persona": "default", "weights": {}, "difficulty_offset": 0.3,
		"ranked": [{"resource_id": "R1", "resource": {"id": "R1"}, "score": 0, "breakdown": {"skill_gap": 0}}]
	}`
	assert.Error(t, schemas.ValidateBytes("ranked_resources.schema.json", []byte(missingSignal)))
}
