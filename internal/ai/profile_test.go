package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		difficulty  string
		reactionMs  int
		aggression  float64
		parryChance float64
		comboSkill  float64
	}{
		{"easy", 400, 0.3, 0.05, 0.2},
		{"medium", 200, 0.5, 0.15, 0.5},
		{"hard", 100, 0.7, 0.3, 0.7},
		{"expert", 50, 0.8, 0.5, 0.9},
		{"HARD", 100, 0.7, 0.3, 0.7},
		{"nightmare", 50, 0.8, 0.5, 0.9},
		{"", 50, 0.8, 0.5, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			p := ProfileFor(tt.difficulty)
			assert.Equal(t, tt.reactionMs, p.ReactionMs)
			assert.InDelta(t, tt.aggression, p.Aggression, 1e-9)
			assert.InDelta(t, tt.parryChance, p.ParryChance, 1e-9)
			assert.InDelta(t, tt.comboSkill, p.ComboSkill, 1e-9)
		})
	}
}

func TestReactionTicks(t *testing.T) {
	assert.Equal(t, 24, ProfileFor("easy").ReactionTicks(60))
	assert.Equal(t, 12, ProfileFor("medium").ReactionTicks(60))
	assert.Equal(t, 3, ProfileFor("expert").ReactionTicks(60))
	assert.Equal(t, 1, Profile{}.ReactionTicks(60))
}

func TestDifficulties(t *testing.T) {
	for _, d := range Difficulties() {
		assert.Equal(t, d, ProfileFor(d).Difficulty)
	}
}
