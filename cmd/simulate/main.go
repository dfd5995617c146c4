// Command simulate plays headless AI-vs-AI rounds and prints the standings.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"brawler/internal/config"
	"brawler/internal/game"
)

type summary struct {
	P1        string                `json:"p1"`
	P2        string                `json:"p2"`
	Rounds    []RoundResult         `json:"rounds"`
	Standings []game.StandingsEntry `json:"standings"`
}

func main() {
	var p1Name, p2Name, d1, d2, combatFile, out string
	var seed int64
	var rounds, maxTicks, workers int
	var quiet bool
	flag.StringVar(&p1Name, "p1", "KHALID", "player 1 archetype")
	flag.StringVar(&p2Name, "p2", "HASAN", "player 2 archetype")
	flag.StringVar(&d1, "d1", "medium", "player 1 difficulty")
	flag.StringVar(&d2, "d2", "hard", "player 2 difficulty")
	flag.StringVar(&combatFile, "combat", os.Getenv("COMBAT_CONFIG"), "YAML combat tuning file")
	flag.StringVar(&out, "out", "", "write a JSON summary to this file")
	flag.Int64Var(&seed, "seed", 1, "base seed, round i uses seed+2i")
	flag.IntVar(&rounds, "rounds", 10, "number of rounds")
	flag.IntVar(&maxTicks, "max-ticks", 99*60, "tick cap per round")
	flag.IntVar(&workers, "workers", 4, "rounds simulated in parallel")
	flag.BoolVar(&quiet, "quiet", true, "silence AI setup logs")
	flag.Parse()

	combat, err := config.LoadCombatFile(combatFile)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	sim := config.SimFromEnv()
	p1, _ := combat.Archetype(p1Name)
	p2, _ := combat.Archetype(p2Name)
	if rounds < 1 {
		rounds = 1
	}
	if workers < 1 {
		workers = 1
	}

	fmt.Printf("🥊 %s (%s) vs %s (%s), %d rounds, seed %d\n", p1.Name, d1, p2.Name, d2, rounds, seed)
	if quiet {
		log.SetOutput(io.Discard)
	}

	results := make([]RoundResult, rounds)
	jobs := make(chan int, rounds)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res := runRound(roundConfig{
					Combat: combat, Stage: config.DefaultStage(), TickRate: sim.TickRate,
					P1: p1, P2: p2, D1: d1, D2: d2,
					Seed: seed + int64(2*i), MaxTicks: maxTicks,
				})
				res.Round = i + 1
				results[i] = res
			}
		}()
	}
	for i := 0; i < rounds; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	log.SetOutput(os.Stderr)

	standings := game.NewStandings()
	for _, res := range results {
		record(standings, res, p1.Name, p2.Name)
		winner := res.Winner
		if winner == "" {
			winner = "draw"
		}
		how := "KO"
		if res.Timeout {
			how = "time"
		}
		fmt.Printf("  round %2d: %-8s by %-4s  %5d ticks  hits %3d  blocks %3d  parries %2d  hp %.0f/%.0f\n",
			res.Round, winner, how, res.Ticks, res.Hits, res.Blocks, res.Parries, res.P1Health, res.P2Health)
	}

	table := standings.GetTop(0)
	fmt.Println("🏆 Standings")
	for _, e := range table {
		fmt.Printf("  #%d %-8s %3dW %3dL %3dD  score %.0f\n", e.Rank, e.Name, e.Wins, e.Losses, e.Draws, e.Score)
	}

	if out != "" {
		b, err := json.MarshalIndent(summary{P1: p1.Name, P2: p2.Name, Rounds: results, Standings: table}, "", "  ")
		if err != nil {
			log.Fatalf("❌ encode summary: %v", err)
		}
		if err := os.WriteFile(out, b, 0644); err != nil {
			log.Fatalf("❌ write summary: %v", err)
		}
		fmt.Printf("📝 Summary written to %s\n", out)
	}
}
