package game

import (
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"brawler/internal/config"
)

// =============================================================================
// STRESS TEST SUITE: LONG RANDOMIZED MATCHES
// Run with: go test -v -run=TestStress -timeout=60s ./internal/game/...
// =============================================================================

// randomController presses a random subset of actions, changing every few ticks
type randomController struct {
	rng  *rand.Rand
	held InputState
}

func (r *randomController) Intent(now uint64, _ Situation) InputSource {
	if now%6 == 0 {
		r.held = 0
		for a := ActionLeft; a <= ActionParry; a++ {
			if r.rng.Float64() < 0.2 {
				r.held = r.held.With(a)
			}
		}
	}
	return r.held
}

// checkInvariants fails the test on any state a fighter must never reach
func checkInvariants(t *testing.T, m *Match) {
	t.Helper()
	cfg := config.DefaultCombat()
	stage := config.DefaultStage()

	for i := 0; i < 2; i++ {
		f := m.Fighter(i)
		if f.Health() < 0 || f.Health() > f.MaxHealth() {
			t.Fatalf("tick %d: fighter %d health %v out of range", m.CurrentTick(), i, f.Health())
		}
		if f.Alive() != (f.Health() > 0) {
			t.Fatalf("tick %d: fighter %d alive=%v with health %v", m.CurrentTick(), i, f.Alive(), f.Health())
		}
		if f.X < 0 || f.Body().Right() > stage.Width {
			t.Fatalf("tick %d: fighter %d left the stage at x=%v", m.CurrentTick(), i, f.X)
		}
		if f.Body().Bottom() > stage.FloorY {
			t.Fatalf("tick %d: fighter %d below the floor", m.CurrentTick(), i)
		}
		if f.SuperMeter() < 0 || f.SuperMeter() > cfg.SuperMeterMax {
			t.Fatalf("tick %d: fighter %d meter %v out of range", m.CurrentTick(), i, f.SuperMeter())
		}
		if hits := m.Combos().HitCount(f.ID); hits > cfg.MaxComboHits {
			t.Fatalf("tick %d: fighter %d combo %d over max", m.CurrentTick(), i, hits)
		}
	}
	if n := len(m.Projectiles()); n > cfg.Projectiles.MaxActive {
		t.Fatalf("tick %d: %d projectiles over the cap", m.CurrentTick(), n)
	}
}

// -----------------------------------------------------------------------------
// STRESS TEST: RANDOM INPUT
// -----------------------------------------------------------------------------

func TestStress_RandomInput(t *testing.T) {
	names := config.DefaultCombat().ArchetypeNames()
	ticks := 20000
	if testing.Short() {
		ticks = 2000
	}

	for seed := int64(1); seed <= 4; seed++ {
		rng := rand.New(rand.NewSource(seed))
		p1 := names[rng.Intn(len(names))]
		p2 := names[rng.Intn(len(names))]
		m := newTestMatch(p1, p2, [2]Controller{
			&randomController{rng: rand.New(rand.NewSource(seed * 10))},
			&randomController{rng: rand.New(rand.NewSource(seed*10 + 1))},
		})

		rounds := 0
		var tickTimes []time.Duration
		for i := 0; i < ticks; i++ {
			start := time.Now()
			m.Tick()
			tickTimes = append(tickTimes, time.Since(start))
			checkInvariants(t, m)

			if over, _ := m.RoundOver(); over {
				rounds++
				m.ResetRound()
			}
		}

		sort.Slice(tickTimes, func(i, j int) bool { return tickTimes[i] < tickTimes[j] })
		p99 := tickTimes[len(tickTimes)*99/100]
		t.Logf("seed %d %s vs %s: %d rounds, p99 tick %v", seed, p1, p2, rounds, p99)
	}
}

// -----------------------------------------------------------------------------
// STRESS TEST: CONCURRENT READERS
// -----------------------------------------------------------------------------

func TestStress_ConcurrentReaders(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping stress test in short mode")
	}

	m := newTestMatch("HASAN", "EDUARDO", [2]Controller{
		&randomController{rng: rand.New(rand.NewSource(1))},
		&randomController{rng: rand.New(rand.NewSource(2))},
	})
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if snap := m.GetSnapshot(); snap == nil {
					t.Error("Expected a snapshot")
					return
				}
				m.Projectiles()
				m.Stats()
			}
		}()
	}

	for i := 0; i < 5000; i++ {
		m.Tick()
		if over, _ := m.RoundOver(); over {
			m.ResetRound()
		}
	}
	close(stop)
	wg.Wait()
}
