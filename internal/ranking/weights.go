package ranking

import (
	"sort"

	"github.com/jonathan/learning-recommender/internal/types"
)

// Signal names used for weights and score breakdowns.
const (
	SignalSkillGap        = "skill_gap"
	SignalSkillRelevance  = "skill_relevance"
	SignalDifficultyMatch = "difficulty_match"
	SignalCollaborative   = "collaborative"
	SignalResourceType    = "resource_type"
	SignalSkillSimilarity = "skill_similarity"
)

// DefaultPersona names the implicit persona applied when none is requested.
const DefaultPersona = "default"

// DefaultDifficultyOffset is how far above the user's level the ideal resource sits.
const DefaultDifficultyOffset = 0.3

// signalOrder fixes iteration order over signals.
var signalOrder = []string{
	SignalSkillGap,
	SignalSkillRelevance,
	SignalDifficultyMatch,
	SignalCollaborative,
	SignalResourceType,
	SignalSkillSimilarity,
}

// Signals returns the six signal names in canonical order.
func Signals() []string {
	out := make([]string, len(signalOrder))
	copy(out, signalOrder)
	return out
}

// Weights maps signal names to their weight in the linear model.
type Weights map[string]float64

// BaseWeights returns the default weight vector. resource_type and
// skill_similarity carry zero weight but remain overridable.
func BaseWeights() Weights {
	return Weights{
		SignalSkillGap:        0.35,
		SignalSkillRelevance:  0.25,
		SignalDifficultyMatch: 0.20,
		SignalCollaborative:   0.20,
		SignalResourceType:    0.00,
		SignalSkillSimilarity: 0.00,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	total := 0.0
	for _, name := range signalOrder {
		total += w[name]
	}
	return total
}

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Resolution is the effective configuration for one ranking call.
type Resolution struct {
	Persona          string
	Weights          Weights
	DifficultyOffset float64
	Custom           bool
}

// WeightResolver turns a persona name and optional custom weights into a
// Resolution. It is immutable after construction and safe for concurrent use.
type WeightResolver struct {
	base     Weights
	personas types.PersonaTable
}

// NewWeightResolver creates a resolver over a copy of the persona table.
// A nil or empty table leaves only the default persona available.
func NewWeightResolver(personas types.PersonaTable) *WeightResolver {
	table := make(types.PersonaTable, len(personas))
	for name, p := range personas {
		multipliers := make(map[string]float64, len(p.WeightMultipliers))
		for k, v := range p.WeightMultipliers {
			multipliers[k] = v
		}
		var offset *float64
		if p.DifficultyOffset != nil {
			v := *p.DifficultyOffset
			offset = &v
		}
		table[name] = types.Persona{WeightMultipliers: multipliers, DifficultyOffset: offset}
	}
	return &WeightResolver{base: BaseWeights(), personas: table}
}

// Personas returns the configured persona names, sorted.
func (r *WeightResolver) Personas() []string {
	names := make([]string, 0, len(r.personas))
	for name := range r.personas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPersona reports whether name is a configured persona.
func (r *WeightResolver) HasPersona(name string) bool {
	_, ok := r.personas[name]
	return ok
}

// Resolve determines the weights and difficulty offset for one request.
//
// Precedence: a non-empty custom map wins and is applied as-is over the base
// weights without renormalization; otherwise a known persona scales the base
// weights and the result is renormalized to sum to 1 when the raw sum is
// positive; otherwise the base weights apply unchanged. Unknown signal names in
// custom are ignored.
func (r *WeightResolver) Resolve(persona string, custom map[string]float64) Resolution {
	p, known := r.personas[persona]

	offset := DefaultDifficultyOffset
	name := DefaultPersona
	if known {
		name = persona
		if p.DifficultyOffset != nil {
			offset = *p.DifficultyOffset
		}
	}

	if len(custom) > 0 {
		weights := r.base.Clone()
		for _, signal := range signalOrder {
			if v, ok := custom[signal]; ok {
				weights[signal] = v
			}
		}
		return Resolution{Persona: name, Weights: weights, DifficultyOffset: offset, Custom: true}
	}

	if !known {
		return Resolution{Persona: DefaultPersona, Weights: r.base.Clone(), DifficultyOffset: DefaultDifficultyOffset}
	}

	weights := make(Weights, len(signalOrder))
	for _, signal := range signalOrder {
		multiplier := 1.0
		if m, ok := p.WeightMultipliers[signal]; ok {
			multiplier = m
		}
		weights[signal] = r.base[signal] * multiplier
	}
	if total := weights.Sum(); total > 0 {
		for signal := range weights {
			weights[signal] /= total
		}
	}

	return Resolution{Persona: name, Weights: weights, DifficultyOffset: offset}
}
