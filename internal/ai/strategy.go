package ai

import (
	"context"
	"log"
	"math/rand"

	"github.com/looplab/fsm"
)

// Strategy is the AI's current game plan.
type Strategy string

const (
	StrategyNeutral    Strategy = "neutral"
	StrategyAggressive Strategy = "aggressive"
	StrategyDefensive  Strategy = "defensive"
	StrategyCombo      Strategy = "combo"
)

var allStrategies = []string{
	string(StrategyNeutral), string(StrategyAggressive),
	string(StrategyDefensive), string(StrategyCombo),
}

// strategyWeights is the re-roll distribution, same order as allStrategies.
var strategyWeights = []float64{0.4, 0.3, 0.2, 0.1}

// Strategy re-roll timer bounds, in ticks.
const (
	strategyMinTicks = 180
	strategyMaxTicks = 360
)

// strategyMachine keeps the strategy in an FSM so every change goes
// through one transition path.
type strategyMachine struct {
	fsm     *fsm.FSM
	changes int
}

func newStrategyMachine() *strategyMachine {
	sm := &strategyMachine{}
	events := make(fsm.Events, 0, len(allStrategies))
	for _, s := range allStrategies {
		events = append(events, fsm.EventDesc{Name: "to_" + s, Src: allStrategies, Dst: s})
	}
	sm.fsm = fsm.NewFSM(string(StrategyNeutral), events, fsm.Callbacks{
		"enter_state": func(_ context.Context, _ *fsm.Event) { sm.changes++ },
	})
	return sm
}

func (sm *strategyMachine) current() Strategy {
	return Strategy(sm.fsm.Current())
}

// set moves to s. Staying in the same strategy is not a transition.
func (sm *strategyMachine) set(s Strategy) {
	if sm.current() == s {
		return
	}
	// unknown strategies keep the current one
	if err := sm.fsm.Event(context.Background(), "to_"+string(s)); err != nil {
		log.Printf("⚠️ AI strategy %s: %v", s, err)
	}
}

// rollStrategy picks a strategy from the weighted distribution.
func rollStrategy(rng *rand.Rand) Strategy {
	r := rng.Float64()
	acc := 0.0
	for i, w := range strategyWeights {
		acc += w
		if r < acc {
			return Strategy(allStrategies[i])
		}
	}
	return StrategyNeutral
}

// nextRollDelay returns ticks until the next re-roll, in [180, 360].
func nextRollDelay(rng *rand.Rand) uint64 {
	return uint64(strategyMinTicks + rng.Intn(strategyMaxTicks-strategyMinTicks+1))
}
