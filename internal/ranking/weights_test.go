package ranking

import (
	"testing"

	"github.com/jonathan/learning-recommender/internal/types"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestResolve_DefaultWeights(t *testing.T) {
	r := NewWeightResolver(nil)

	res := r.Resolve("", nil)

	assert.Equal(t, DefaultPersona, res.Persona)
	assert.Equal(t, BaseWeights(), res.Weights)
	assert.Equal(t, DefaultDifficultyOffset, res.DifficultyOffset)
	assert.False(t, res.Custom)
	assert.InDelta(t, 1.0, res.Weights.Sum(), 1e-12)
}

func TestResolve_UnknownPersonaFallsBack(t *testing.T) {
	r := NewWeightResolver(types.PersonaTable{"explorer": {}})

	res := r.Resolve("nobody", nil)

	assert.Equal(t, DefaultPersona, res.Persona)
	assert.Equal(t, BaseWeights(), res.Weights)
	assert.Equal(t, DefaultDifficultyOffset, res.DifficultyOffset)
}

func TestResolve_PersonaAllOnesIsBase(t *testing.T) {
	r := NewWeightResolver(types.PersonaTable{
		"steady": {WeightMultipliers: map[string]float64{SignalSkillGap: 1, SignalCollaborative: 1}},
	})

	res := r.Resolve("steady", nil)

	assert.Equal(t, "steady", res.Persona)
	for _, signal := range Signals() {
		assert.InDelta(t, BaseWeights()[signal], res.Weights[signal], 1e-12, signal)
	}
}

func TestResolve_PersonaRenormalizes(t *testing.T) {
	r := NewWeightResolver(types.PersonaTable{
		"gap_closer": {
			WeightMultipliers: map[string]float64{SignalSkillGap: 2.0},
			DifficultyOffset:  floatPtr(0.1),
		},
	})

	res := r.Resolve("gap_closer", nil)

	assert.Equal(t, "gap_closer", res.Persona)
	assert.InDelta(t, 0.7/1.35, res.Weights[SignalSkillGap], 1e-12)
	assert.InDelta(t, 0.25/1.35, res.Weights[SignalSkillRelevance], 1e-12)
	assert.InDelta(t, 1.0, res.Weights.Sum(), 1e-12)
	assert.Equal(t, 0.1, res.DifficultyOffset)
}

func TestResolve_PersonaZeroSumPassesThrough(t *testing.T) {
	zeros := map[string]float64{}
	for _, signal := range Signals() {
		zeros[signal] = 0
	}
	r := NewWeightResolver(types.PersonaTable{"mute": {WeightMultipliers: zeros}})

	res := r.Resolve("mute", nil)

	for _, signal := range Signals() {
		assert.Equal(t, 0.0, res.Weights[signal], signal)
	}
}

func TestResolve_CustomOverridesWithoutRenormalizing(t *testing.T) {
	r := NewWeightResolver(nil)

	res := r.Resolve("", map[string]float64{SignalSkillGap: 1.0, "bogus": 5})

	assert.True(t, res.Custom)
	assert.Equal(t, 1.0, res.Weights[SignalSkillGap])
	assert.Equal(t, 0.25, res.Weights[SignalSkillRelevance])
	assert.NotContains(t, res.Weights, "bogus")
	assert.InDelta(t, 1.65, res.Weights.Sum(), 1e-12)
}

func TestResolve_CustomWinsOverPersonaButKeepsOffset(t *testing.T) {
	r := NewWeightResolver(types.PersonaTable{
		"challenger": {
			WeightMultipliers: map[string]float64{SignalSkillGap: 3},
			DifficultyOffset:  floatPtr(0.6),
		},
	})

	res := r.Resolve("challenger", map[string]float64{SignalCollaborative: 0})

	assert.Equal(t, "challenger", res.Persona)
	assert.Equal(t, 0.35, res.Weights[SignalSkillGap])
	assert.Equal(t, 0.0, res.Weights[SignalCollaborative])
	assert.Equal(t, 0.6, res.DifficultyOffset)
}

func TestResolve_EmptyCustomMapKeepsPersona(t *testing.T) {
	r := NewWeightResolver(types.PersonaTable{
		"gap_closer": {WeightMultipliers: map[string]float64{SignalSkillGap: 2.0}},
	})

	res := r.Resolve("gap_closer", map[string]float64{})

	assert.False(t, res.Custom)
	assert.Equal(t, "gap_closer", res.Persona)
	assert.Equal(t, r.Resolve("gap_closer", nil).Weights, res.Weights)
	assert.InDelta(t, 0.7/1.35, res.Weights[SignalSkillGap], 1e-12)
}

func TestNewWeightResolver_CopiesTable(t *testing.T) {
	table := types.PersonaTable{
		"p": {WeightMultipliers: map[string]float64{SignalSkillGap: 2.0}},
	}
	r := NewWeightResolver(table)
	table["p"].WeightMultipliers[SignalSkillGap] = 100
	table["q"] = types.Persona{}

	assert.InDelta(t, 0.7/1.35, r.Resolve("p", nil).Weights[SignalSkillGap], 1e-12)
	assert.False(t, r.HasPersona("q"))
	assert.Equal(t, []string{"p"}, r.Personas())
}

func TestResolve_ResultIsIndependent(t *testing.T) {
	r := NewWeightResolver(nil)
	first := r.Resolve("", nil)
	first.Weights[SignalSkillGap] = 42

	assert.Equal(t, 0.35, r.Resolve("", nil).Weights[SignalSkillGap])
}
