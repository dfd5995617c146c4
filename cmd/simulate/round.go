package main

import (
	"math/rand"

	"brawler/internal/ai"
	"brawler/internal/config"
	"brawler/internal/game"
)

type roundConfig struct {
	Combat   config.Combat
	Stage    config.StageConfig
	TickRate int
	P1, P2   config.Archetype
	D1, D2   string
	Seed     int64
	MaxTicks int
}

// RoundResult summarizes one headless round
type RoundResult struct {
	Round    int     `json:"round"`
	Seed     int64   `json:"seed"`
	Winner   string  `json:"winner,omitempty"` // empty on a draw
	Loser    string  `json:"loser,omitempty"`
	Ticks    uint64  `json:"ticks"`
	Timeout  bool    `json:"timeout"`
	Hits     int     `json:"hits"`
	Blocks   int     `json:"blocks"`
	Parries  int     `json:"parries"`
	Specials int     `json:"specials"`
	P1Health float64 `json:"p1Health"`
	P2Health float64 `json:"p2Health"`
}

// runRound plays one AI-vs-AI round until a KO or MaxTicks. A time-out
// goes to the fighter with the larger share of health left; equal shares
// are a draw.
func runRound(rc roundConfig) RoundResult {
	opts := ai.Options{
		TickRate:      rc.TickRate,
		SuperMeterMax: rc.Combat.SuperMeterMax,
		ComboStrings:  rc.Combat.ComboStrings,
	}
	c1 := ai.NewController(ai.ProfileFor(rc.D1), rand.New(rand.NewSource(rc.Seed)), opts)
	c2 := ai.NewController(ai.ProfileFor(rc.D2), rand.New(rand.NewSource(rc.Seed+1)), opts)

	m := game.NewMatch(game.MatchConfig{
		Combat:      rc.Combat,
		Stage:       rc.Stage,
		TickRate:    rc.TickRate,
		P1:          rc.P1,
		P2:          rc.P2,
		Controllers: [2]game.Controller{c1, c2},
		Seed:        rc.Seed,
	})

	res := RoundResult{Seed: rc.Seed}
	m.SetCallbacks(game.MatchCallbacks{
		OnHit: func(rep game.HitReport) {
			switch rep.Outcome.Result {
			case game.HitBlocked:
				res.Blocks++
			case game.HitParried:
				res.Parries++
			default:
				res.Hits++
			}
		},
		OnSpecial: func(*game.SpecialEffect) { res.Specials++ },
	})

	for i := 0; i < rc.MaxTicks; i++ {
		m.Tick()
		if over, _ := m.RoundOver(); over {
			break
		}
	}

	res.Ticks = m.CurrentTick()
	res.P1Health = m.Fighter(0).Health()
	res.P2Health = m.Fighter(1).Health()
	names := [2]string{rc.P1.Name, rc.P2.Name}
	share1 := res.P1Health / m.Fighter(0).MaxHealth()
	share2 := res.P2Health / m.Fighter(1).MaxHealth()

	over, winner := m.RoundOver()
	switch {
	case over && winner != game.MatchEvent:
		res.Winner, res.Loser = names[winner], names[1-winner]
	case over:
		// double KO
	case share1 > share2:
		res.Timeout = true
		res.Winner, res.Loser = names[0], names[1]
	case share2 > share1:
		res.Timeout = true
		res.Winner, res.Loser = names[1], names[0]
	default:
		res.Timeout = true
	}
	return res
}

// record adds a round to the standings. Draws count for both fighters.
func record(st *game.Standings, res RoundResult, p1, p2 string) {
	if res.Winner != "" {
		st.RecordRound(res.Winner, res.Loser)
		return
	}
	st.RecordRound("", p1)
	if p2 != p1 {
		st.RecordRound("", p2)
	}
}
