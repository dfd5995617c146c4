package api

import (
	"brawler/internal/config"
	"brawler/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// MatchInterface is the part of game.Match the API reads.
// Tests substitute a real match without starting its ticker.
type MatchInterface interface {
	GetSnapshot() *game.MatchSnapshot
	Timings() *game.FrameTimingTable
	Stats() map[string]interface{}
	ResetRound()
}

// StandingsInterface serves the round table.
type StandingsInterface interface {
	GetTop(n int) []game.StandingsEntry
}

// RouterConfig contains everything NewRouter wires into the handlers.
type RouterConfig struct {
	// Match is the running match (required)
	Match MatchInterface

	// Standings is optional; /api/standings answers an empty list without it.
	Standings StandingsInterface

	// Combat supplies archetypes and combo strings for the reference endpoints.
	Combat config.Combat

	// RateLimiter is an optional pre-built limiter. If nil, one is created
	// from RateLimitConfig or DefaultRateLimitConfig.
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	// CORSOrigins defaults to localhost on any port.
	CORSOrigins []string

	// DisableLogging drops the request logger (benchmarks, tests).
	DisableLogging bool
}

type routerHandlers struct {
	match     MatchInterface
	standings StandingsInterface
	combat    config.Combat
}

// NewRouter builds the HTTP router with middleware and routes. It starts
// no goroutines and opens no listeners, so tests can mount it on
// httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// reject early, before CORS
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rlc := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlc = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rlc)
	}
	r.Use(rateLimiter.Middleware)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	combat := cfg.Combat
	if combat.Archetypes == nil {
		combat = config.DefaultCombat()
	}
	h := &routerHandlers{match: cfg.Match, standings: cfg.Standings, combat: combat}

	r.Get("/health", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.handleGetState)
		r.Get("/stats", h.handleGetStats)
		r.Get("/fighters/{slot}", h.handleGetFighter)
		r.Get("/frame-data", h.handleGetFrameData)
		r.Get("/archetypes", h.handleGetArchetypes)
		r.Get("/combos", h.handleGetCombos)
		r.Get("/standings", h.handleGetStandings)
		r.Post("/match/reset", h.handleResetMatch)
	})

	return r
}
