// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for stage, simulation and server settings.
//
// Combat tuning (frame data, attack tables, combo scaling) lives in combat.go
// and can be overridden from a YAML file, see LoadCombatFile.
package config

import (
	"os"
	"strconv"
	"strings"
)

// =============================================================================
// STAGE CONFIGURATION
// =============================================================================

// StageConfig describes the arena the fighters move in.
type StageConfig struct {
	Width      float64 // Stage width in pixels
	Height     float64 // Stage height in pixels
	FloorY     float64 // Y of the floor line (bottom of a grounded body)
	Gravity    float64 // Vertical acceleration per frame
	BodyWidth  float64 // Fighter body rectangle width
	BodyHeight float64 // Fighter body rectangle height
}

// DefaultStage returns the default stage configuration.
func DefaultStage() StageConfig {
	return StageConfig{
		Width:      800,
		Height:     600,
		FloorY:     500,
		Gravity:    0.8,
		BodyWidth:  50,
		BodyHeight: 100,
	}
}

// StageFromEnv returns stage configuration with environment variable overrides.
func StageFromEnv() StageConfig {
	cfg := DefaultStage()

	if w := getEnvFloat("STAGE_WIDTH", 0); w > 0 {
		cfg.Width = w
	}
	if h := getEnvFloat("STAGE_HEIGHT", 0); h > 0 {
		cfg.Height = h
		cfg.FloorY = h - 100
	}
	if g := getEnvFloat("STAGE_GRAVITY", 0); g > 0 {
		cfg.Gravity = g
	}

	return cfg
}

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig controls the fixed-rate tick loop.
type SimConfig struct {
	TickRate             int   // Ticks per second (every timer is counted in ticks)
	Seed                 int64 // RNG seed for the AI controllers, 0 = time based
	RoundTransitionTicks int   // Pause after a KO before the attract loop resets
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:             60,
		Seed:                 0,
		RoundTransitionTicks: 180, // 3 seconds at 60 Hz
	}
}

// SimFromEnv returns simulation configuration with environment variable overrides.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}
	if rt := getEnvInt("ROUND_TRANSITION_TICKS", -1); rt >= 0 {
		cfg.RoundTransitionTicks = rt
	}

	return cfg
}

// =============================================================================
// MATCH CONFIGURATION
// =============================================================================

// MatchConfig selects the archetypes and AI difficulty of the attract match.
type MatchConfig struct {
	P1Archetype  string
	P2Archetype  string
	P1Difficulty string
	P2Difficulty string
}

// DefaultMatch returns the default match line-up.
func DefaultMatch() MatchConfig {
	return MatchConfig{
		P1Archetype:  "KHALID",
		P2Archetype:  "HASAN",
		P1Difficulty: "medium",
		P2Difficulty: "hard",
	}
}

// MatchFromEnv returns match configuration with environment variable overrides.
func MatchFromEnv() MatchConfig {
	cfg := DefaultMatch()

	if v := os.Getenv("P1_ARCHETYPE"); v != "" {
		cfg.P1Archetype = strings.ToUpper(v)
	}
	if v := os.Getenv("P2_ARCHETYPE"); v != "" {
		cfg.P2Archetype = strings.ToUpper(v)
	}
	if v := os.Getenv("P1_DIFFICULTY"); v != "" {
		cfg.P1Difficulty = strings.ToLower(v)
	}
	if v := os.Getenv("P2_DIFFICULTY"); v != "" {
		cfg.P2Difficulty = strings.ToLower(v)
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int
	DebugAddr    string // pprof + /metrics, bound to localhost
	EventLogPath string // NDJSON combat event log, empty disables file output
	CombatFile   string // Optional YAML combat tuning override
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:      3000,
		DebugAddr: "localhost:6060",
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if v := os.Getenv("DEBUG_ADDR"); v != "" {
		cfg.DebugAddr = v
	}
	cfg.EventLogPath = os.Getenv("EVENT_LOG_PATH")
	cfg.CombatFile = os.Getenv("COMBAT_CONFIG")

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Stage  StageConfig
	Sim    SimConfig
	Match  MatchConfig
	Server ServerConfig
	Combat Combat
}

// Load returns the complete configuration with environment overrides.
// Combat tuning starts from DefaultCombat; callers apply COMBAT_CONFIG
// through LoadCombatFile so a bad file can be reported.
func Load() AppConfig {
	return AppConfig{
		Stage:  StageFromEnv(),
		Sim:    SimFromEnv(),
		Match:  MatchFromEnv(),
		Server: ServerFromEnv(),
		Combat: DefaultCombat(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
