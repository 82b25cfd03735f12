package preprocess

import (
	"testing"

	"github.com/jonathan/learning-recommender/internal/types"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestNormalizeSkillLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		lo, hi   int
		expected float64
	}{
		{name: "min", level: 1, lo: 1, hi: 10, expected: 0.0},
		{name: "max", level: 10, lo: 1, hi: 10, expected: 1.0},
		{name: "middle", level: 5, lo: 1, hi: 10, expected: 4.0 / 9.0},
		{name: "below clamps", level: -3, lo: 1, hi: 10, expected: 0.0},
		{name: "above clamps", level: 42, lo: 1, hi: 10, expected: 1.0},
		{name: "custom range", level: 3, lo: 0, hi: 4, expected: 0.75},
		{name: "degenerate range", level: 3, lo: 5, hi: 5, expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSkillLevel(tt.level, tt.lo, tt.hi)
			assert.InDelta(t, tt.expected, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestSkillGap(t *testing.T) {
	assert.Equal(t, 0.0, SkillGap(5, 5))
	assert.Equal(t, 0.0, SkillGap(7, 3))
	assert.InDelta(t, 0.3, SkillGap(2, 5), 1e-12)
	assert.Equal(t, 1.0, SkillGap(0, 10))
	assert.Equal(t, 1.0, SkillGap(-5, 20))
}

func TestSkillGap_MonotonicAndCapped(t *testing.T) {
	prev := 0.0
	for diff := 0; diff <= 15; diff++ {
		gap := SkillGap(1, 1+diff)
		assert.GreaterOrEqual(t, gap, prev, "gap must not decrease at diff %d", diff)
		if diff >= 10 {
			assert.Equal(t, 1.0, gap)
		}
		if diff == 0 {
			assert.Equal(t, 0.0, gap)
		} else {
			assert.Greater(t, gap, 0.0)
		}
		prev = gap
	}
}

func TestUserSkillLevels(t *testing.T) {
	levels := UserSkillLevels([]types.UserSkill{
		{SkillID: "go", Level: intPtr(8)},
		{SkillID: "sql"},
		{SkillID: "", Level: intPtr(3)},
		{SkillID: "k8s", Level: intPtr(10)},
	})

	assert.Len(t, levels, 3)
	assert.InDelta(t, 7.0/9.0, levels["go"], 1e-12)
	assert.Equal(t, 0.0, levels["sql"], "missing level defaults to 1")
	assert.Equal(t, 1.0, levels["k8s"])
}

func TestUserSkillIDs(t *testing.T) {
	ids := UserSkillIDs([]types.UserSkill{{SkillID: "b"}, {SkillID: "a"}, {SkillID: "b"}, {SkillID: ""}})
	assert.Equal(t, []string{"b", "a"}, ids)
}
