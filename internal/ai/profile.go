// Package ai drives a fighter from the same read-only view a human input
// adapter gets.
package ai

import (
	"strings"

	"brawler/internal/config"
)

// Profile holds the difficulty parameters of an AI fighter.
type Profile struct {
	Difficulty  string  `json:"difficulty"`
	ReactionMs  int     `json:"reactionMs"`
	Aggression  float64 `json:"aggression"`
	ParryChance float64 `json:"parryChance"`
	ComboSkill  float64 `json:"comboSkill"`
}

var profiles = map[string]Profile{
	"easy":   {Difficulty: "easy", ReactionMs: 400, Aggression: 0.3, ParryChance: 0.05, ComboSkill: 0.2},
	"medium": {Difficulty: "medium", ReactionMs: 200, Aggression: 0.5, ParryChance: 0.15, ComboSkill: 0.5},
	"hard":   {Difficulty: "hard", ReactionMs: 100, Aggression: 0.7, ParryChance: 0.3, ComboSkill: 0.7},
	"expert": {Difficulty: "expert", ReactionMs: 50, Aggression: 0.8, ParryChance: 0.5, ComboSkill: 0.9},
}

// ProfileFor returns the profile of a difficulty. Unknown names get expert.
func ProfileFor(difficulty string) Profile {
	if p, ok := profiles[strings.ToLower(difficulty)]; ok {
		return p
	}
	return profiles["expert"]
}

// Difficulties lists the known difficulty names, easiest first.
func Difficulties() []string {
	return []string{"easy", "medium", "hard", "expert"}
}

// ReactionTicks is the decision interval at the given tick rate, at least 1.
func (p Profile) ReactionTicks(tickRate int) int {
	if n := config.MsToFrames(p.ReactionMs, tickRate); n > 0 {
		return n
	}
	return 1
}
