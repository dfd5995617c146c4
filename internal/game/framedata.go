package game

import "brawler/internal/config"

// defaultTiming is used for moves missing from the table: hittable from the
// first frame and never locking the fighter past its default duration.
func defaultTiming(duration int) config.FrameTiming {
	if duration <= 0 {
		duration = 10
	}
	return config.FrameTiming{Startup: 0, Active: 1, Recovery: duration - 1, Total: duration}
}

// FrameTimingTable answers timing questions about moves by name.
// Immutable after construction; safe to share between fighters.
type FrameTimingTable struct {
	timings         map[string]config.FrameTiming
	defaultDuration int
}

// NewFrameTimingTable copies the timing records out of the combat config.
func NewFrameTimingTable(cfg config.Combat) *FrameTimingTable {
	t := &FrameTimingTable{
		timings:         make(map[string]config.FrameTiming, len(cfg.FrameTimings)),
		defaultDuration: cfg.DefaultDuration,
	}
	if t.defaultDuration <= 0 {
		t.defaultDuration = 10
	}
	for name, ft := range cfg.FrameTimings {
		t.timings[name] = ft
	}
	return t
}

// Timing returns the record for a move and whether it was known.
func (t *FrameTimingTable) Timing(move string) (config.FrameTiming, bool) {
	ft, ok := t.timings[move]
	if !ok {
		return defaultTiming(t.defaultDuration), false
	}
	return ft, true
}

// Duration returns the total frame count of a move.
func (t *FrameTimingTable) Duration(move string) int {
	ft, _ := t.Timing(move)
	return ft.Total
}

// IsActive reports whether the move's hitbox can land on this frame.
func (t *FrameTimingTable) IsActive(move string, elapsed int) bool {
	ft, _ := t.Timing(move)
	return elapsed >= ft.Startup && elapsed < ft.Startup+ft.Active
}

// CanAct reports whether recovery allows movement or new input.
// Early-cancel moves free the fighter once their active frames end.
func (t *FrameTimingTable) CanAct(move string, elapsed int) bool {
	ft, ok := t.timings[move]
	if !ok {
		return true
	}
	if ft.EarlyCancel {
		return elapsed >= ft.Startup+ft.Active
	}
	return elapsed >= ft.Total
}

// Moves returns a copy of the table for read-only consumers (API, HUD).
func (t *FrameTimingTable) Moves() map[string]config.FrameTiming {
	out := make(map[string]config.FrameTiming, len(t.timings))
	for k, v := range t.timings {
		out[k] = v
	}
	return out
}
