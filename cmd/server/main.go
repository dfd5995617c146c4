package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"brawler/internal/ai"
	"brawler/internal/api"
	"brawler/internal/config"
	"brawler/internal/game"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🎮 ================================")
	log.Println("🎮  BRAWLER - SPECTATOR SERVER")
	log.Println("🎮 ================================")

	appConfig := config.Load()
	serverCfg := appConfig.Server
	simCfg := appConfig.Sim
	matchCfg := appConfig.Match

	combat, err := config.LoadCombatFile(serverCfg.CombatFile)
	if err != nil {
		log.Printf("⚠️ %v, using default tuning", err)
	} else if serverCfg.CombatFile != "" {
		log.Printf("📄 Combat tuning: %s", serverCfg.CombatFile)
	}

	seed := simCfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p1, _ := combat.Archetype(matchCfg.P1Archetype)
	p2, _ := combat.Archetype(matchCfg.P2Archetype)
	opts := ai.Options{
		TickRate:      simCfg.TickRate,
		SuperMeterMax: combat.SuperMeterMax,
		ComboStrings:  combat.ComboStrings,
	}
	c1 := ai.NewController(ai.ProfileFor(matchCfg.P1Difficulty), rand.New(rand.NewSource(seed)), opts)
	c2 := ai.NewController(ai.ProfileFor(matchCfg.P2Difficulty), rand.New(rand.NewSource(seed+1)), opts)
	log.Printf("🥊 %s (%s) vs %s (%s), seed %d",
		p1.Name, matchCfg.P1Difficulty, p2.Name, matchCfg.P2Difficulty, seed)

	match := game.NewMatch(game.MatchConfig{
		Combat:         combat,
		Stage:          appConfig.Stage,
		TickRate:       simCfg.TickRate,
		P1:             p1,
		P2:             p2,
		Controllers:    [2]game.Controller{c1, c2},
		Seed:           seed,
		AutoResetTicks: simCfg.RoundTransitionTicks,
	})

	if err := match.StartEventLog(serverCfg.EventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else if serverCfg.EventLogPath != "" {
		log.Printf("📝 Event log: %s", serverCfg.EventLogPath)
	}

	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		debugCfg := api.DefaultObservabilityConfig()
		if serverCfg.DebugAddr != "" {
			debugCfg.ListenAddr = serverCfg.DebugAddr
		}
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	standings := game.NewStandings()
	server := api.NewServer(api.ServerConfig{
		Router: api.RouterConfig{
			Match:     match,
			Standings: standings,
			Combat:    combat,
		},
	})

	names := [2]string{p1.Name, p2.Name}
	nameOf := func(id game.FighterID) string {
		if id < 0 || int(id) >= len(names) {
			return ""
		}
		return names[id]
	}
	cb := server.Callbacks()
	recordKO := cb.OnKO
	cb.OnKO = func(winner, loser game.FighterID) {
		recordKO(winner, loser)
		standings.RecordRound(nameOf(winner), nameOf(loser))
	}
	match.SetCallbacks(cb)

	match.Start()
	log.Println("✅ Match started")

	addr := ":" + strconv.Itoa(serverCfg.Port)
	go func() {
		log.Printf("🌐 Spectate on http://localhost%s/api/state and ws://localhost%s/ws", addr, addr)
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Printf("⚠️ HTTP shutdown: %v", err)
	}
	match.Stop()
	match.StopEventLog()
	for _, e := range standings.GetTop(0) {
		log.Printf("🏆 #%d %s  %dW %dL %dD", e.Rank, e.Name, e.Wins, e.Losses, e.Draws)
	}
	log.Println("👋 Goodbye!")
}
