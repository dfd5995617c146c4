package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"brawler/internal/game"

	"github.com/go-chi/chi/v5"
)

// ServerConfig holds the Server's dependencies
type ServerConfig struct {
	Router RouterConfig
	// WSOrigins are accepted for websocket upgrades besides localhost.
	WSOrigins []string
}

// Server is the spectator HTTP API plus the websocket hub.
// Nothing runs until Start.
type Server struct {
	match       MatchInterface
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
	httpServer  *http.Server
}

// NewServer builds the router and hub without starting them
func NewServer(cfg ServerConfig) *Server {
	rc := cfg.Router
	if rc.RateLimiter == nil {
		rlc := DefaultRateLimitConfig
		if rc.RateLimitConfig != nil {
			rlc = *rc.RateLimitConfig
		}
		rc.RateLimiter = NewIPRateLimiter(rlc)
	}

	s := &Server{
		match:       rc.Match,
		rateLimiter: rc.RateLimiter,
		wsHub:       NewWebSocketHub(cfg.WSOrigins),
	}
	s.router = NewRouter(rc)
	s.router.Get("/ws", s.wsHub.HandleWebSocket)
	return s
}

// Hub returns the websocket hub, for pushing match events
func (s *Server) Hub() *WebSocketHub { return s.wsHub }

// Router returns the HTTP handler, for httptest
func (s *Server) Router() http.Handler { return s.router }

// Start runs the hub and broadcast loop, then serves addr until Stop.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.match)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("🌐 API server starting on %s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the HTTP server down and stops background workers
func (s *Server) Stop(ctx context.Context) error {
	s.wsHub.Stop()
	s.rateLimiter.Stop()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Callbacks returns match callbacks feeding metrics and spectators.
// They run on the tick goroutine and never block.
func (s *Server) Callbacks() game.MatchCallbacks {
	return MetricsCallbacks(s.wsHub)
}

// MetricsCallbacks records match activity in Prometheus and, when hub is
// not nil, forwards hits and KOs to spectators.
func MetricsCallbacks(hub *WebSocketHub) game.MatchCallbacks {
	return game.MatchCallbacks{
		OnHit: func(rep game.HitReport) {
			RecordHit(rep.Outcome.Result.String(), rep.Outcome.Damage, rep.Combo.Hits)
			if hub != nil {
				hub.BroadcastHit(rep)
			}
		},
		OnKO: func(winner, loser game.FighterID) {
			RecordKO()
			if hub != nil {
				hub.Broadcast("match:ko", map[string]game.FighterID{"winner": winner, "loser": loser})
			}
		},
		OnSpecial: func(fx *game.SpecialEffect) {
			RecordSpecial(fx.Special, fx.Move)
		},
		OnTick: RecordTick,
	}
}
