package api

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values are bounded: hit results, special ids and rejection reasons
// come from fixed sets.
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "match_tick_duration_seconds",
		Help:    "Time spent in one match tick",
		Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.016},
	})

	projectilesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "match_projectiles_active",
		Help: "Live projectiles after the last tick",
	})

	hitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "match_hits_total",
		Help: "Hits delivered, by defense result",
	}, []string{"result"})

	damageTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "match_damage_total",
		Help: "Health removed by hits",
	})

	comboLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "match_combo_hits",
		Help:    "Combo count at each counted hit",
		Buckets: []float64{1, 2, 3, 4, 5},
	})

	specialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "match_specials_total",
		Help: "Specials and ultimates launched",
	}, []string{"special", "move"})

	koTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "match_ko_total",
		Help: "Rounds ended by KO",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connection_rejected_total",
		Help: "Requests or connections rejected by limits or origin checks",
	}, []string{"reason"})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "websocket_connections_active",
		Help: "Connected spectators",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "websocket_messages_total",
		Help: "Messages broadcast to spectators",
	})
)

// ObservabilityConfig configures the debug server
type ObservabilityConfig struct {
	Enabled    bool
	ListenAddr string // loopback only unless ALLOW_DEBUG_EXTERNAL=true
}

// DefaultObservabilityConfig returns the loopback debug address
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{Enabled: true, ListenAddr: "127.0.0.1:6060"}
}

func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// DebugMux serves pprof and /metrics.
func DebugMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// StartDebugServer listens on cfg.ListenAddr in the background. A
// non-loopback address is refused unless ALLOW_DEBUG_EXTERNAL=true.
func StartDebugServer(cfg ObservabilityConfig) error {
	if !cfg.Enabled {
		log.Println("📊 Debug server disabled")
		return nil
	}
	if !isLoopback(cfg.ListenAddr) && os.Getenv("ALLOW_DEBUG_EXTERNAL") != "true" {
		return fmt.Errorf("debug server address %q is not loopback", cfg.ListenAddr)
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("debug server listen: %w", err)
	}
	go func() {
		log.Printf("📊 Debug server on http://%s (/metrics, /debug/pprof/)", cfg.ListenAddr)
		if err := http.Serve(ln, DebugMux()); err != nil {
			log.Printf("⚠️ Debug server error: %v", err)
		}
	}()
	return nil
}

// RecordTick records tick timing and the live projectile count
func RecordTick(d time.Duration, projectiles int) {
	tickDuration.Observe(d.Seconds())
	projectilesActive.Set(float64(projectiles))
}

// RecordHit counts a delivered hit. comboHits is 0 for hits that did not
// count toward a combo.
func RecordHit(result string, damage float64, comboHits int) {
	hitsTotal.WithLabelValues(result).Inc()
	damageTotal.Add(damage)
	if comboHits > 0 {
		comboLength.Observe(float64(comboHits))
	}
}

// RecordSpecial counts a launched special
func RecordSpecial(special, move string) {
	specialsTotal.WithLabelValues(special, move).Inc()
}

// RecordKO counts a finished round
func RecordKO() {
	koTotal.Inc()
}

// RecordConnectionRejected increments the rejection counter
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// UpdateWSConnections sets the spectator gauge
func UpdateWSConnections(count int) {
	wsConnectionsActive.Set(float64(count))
}

// IncrementWSMessages counts one broadcast
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}
