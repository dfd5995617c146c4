package ai

import (
	"bytes"
	"log"
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategyMachine(t *testing.T) {
	sm := newStrategyMachine()
	assert.Equal(t, StrategyNeutral, sm.current())

	sm.set(StrategyAggressive)
	assert.Equal(t, StrategyAggressive, sm.current())
	assert.Equal(t, 1, sm.changes)

	sm.set(StrategyAggressive)
	assert.Equal(t, 1, sm.changes, "same strategy is not a transition")

	sm.set(Strategy("berserk"))
	assert.Equal(t, StrategyAggressive, sm.current())

	sm.set(StrategyCombo)
	sm.set(StrategyDefensive)
	assert.Equal(t, StrategyDefensive, sm.current())
	assert.Equal(t, 3, sm.changes)
}

func TestStrategyMachineLogsRejectedTransition(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	sm := newStrategyMachine()
	sm.set(Strategy("berserk"))
	assert.Equal(t, StrategyNeutral, sm.current())
	assert.Contains(t, buf.String(), "berserk")

	buf.Reset()
	sm.set(StrategyCombo)
	assert.Empty(t, buf.String(), "valid transitions log nothing")
}

func TestRollStrategyDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 40000
	counts := map[Strategy]int{}
	for i := 0; i < n; i++ {
		counts[rollStrategy(rng)]++
	}

	assert.InDelta(t, 0.4, float64(counts[StrategyNeutral])/n, 0.02)
	assert.InDelta(t, 0.3, float64(counts[StrategyAggressive])/n, 0.02)
	assert.InDelta(t, 0.2, float64(counts[StrategyDefensive])/n, 0.02)
	assert.InDelta(t, 0.1, float64(counts[StrategyCombo])/n, 0.02)
}

func TestNextRollDelayBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		d := nextRollDelay(rng)
		assert.GreaterOrEqual(t, d, uint64(180))
		assert.LessOrEqual(t, d, uint64(360))
	}
}
