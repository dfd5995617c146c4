package game

import (
	"testing"

	"brawler/internal/config"
)

// TestFrameTimingDuration tests total frame counts
func TestFrameTimingDuration(t *testing.T) {
	table := NewFrameTimingTable(config.DefaultCombat())

	tests := []struct {
		move string
		want int
	}{
		{config.MoveLightPunch, 10},
		{config.MoveHeavyPunch, 27},
		{config.MoveLightKick, 13},
		{config.MoveHeavyKick, 33},
		{config.MoveSpecial, 42},
		{config.MoveUltimate, 65},
		{config.MoveDash, 15},
		{"taunt", 10},
	}

	for _, tt := range tests {
		if got := table.Duration(tt.move); got != tt.want {
			t.Errorf("Duration(%s): expected %d, got %d", tt.move, tt.want, got)
		}
	}
}

// TestFrameTimingIsActive tests the active window bounds
func TestFrameTimingIsActive(t *testing.T) {
	table := NewFrameTimingTable(config.DefaultCombat())

	tests := []struct {
		move    string
		elapsed int
		want    bool
	}{
		{config.MoveLightPunch, 2, false},
		{config.MoveLightPunch, 3, true},
		{config.MoveLightPunch, 4, true},
		{config.MoveLightPunch, 5, false},
		{config.MoveHeavyKick, 9, false},
		{config.MoveHeavyKick, 10, true},
		{config.MoveHeavyKick, 14, true},
		{config.MoveHeavyKick, 15, false},
		{"taunt", 0, true},
		{"taunt", 1, false},
	}

	for _, tt := range tests {
		if got := table.IsActive(tt.move, tt.elapsed); got != tt.want {
			t.Errorf("IsActive(%s, %d): expected %v, got %v", tt.move, tt.elapsed, tt.want, got)
		}
	}
}

// TestFrameTimingCanAct tests recovery gating and early cancel
func TestFrameTimingCanAct(t *testing.T) {
	table := NewFrameTimingTable(config.DefaultCombat())

	tests := []struct {
		move    string
		elapsed int
		want    bool
	}{
		{config.MoveLightPunch, 4, false},
		{config.MoveLightPunch, 5, true}, // early cancel after active frames
		{config.MoveHeavyPunch, 12, false},
		{config.MoveHeavyPunch, 26, false},
		{config.MoveHeavyPunch, 27, true},
		{config.MoveLightKick, 7, true},
		{"taunt", 0, true},
	}

	for _, tt := range tests {
		if got := table.CanAct(tt.move, tt.elapsed); got != tt.want {
			t.Errorf("CanAct(%s, %d): expected %v, got %v", tt.move, tt.elapsed, tt.want, got)
		}
	}
}

// TestFrameTimingUnknown tests the fallback record
func TestFrameTimingUnknown(t *testing.T) {
	table := NewFrameTimingTable(config.Combat{})
	ft, ok := table.Timing("anything")
	if ok {
		t.Error("Expected unknown move to report not found")
	}
	if ft.Total != 10 || ft.Startup != 0 {
		t.Errorf("Expected default 10-frame timing, got %+v", ft)
	}
}

// TestFrameTimingMovesIsCopy tests that callers cannot mutate the table
func TestFrameTimingMovesIsCopy(t *testing.T) {
	table := NewFrameTimingTable(config.DefaultCombat())
	moves := table.Moves()
	moves[config.MoveLightPunch] = config.FrameTiming{Total: 99}

	if table.Duration(config.MoveLightPunch) != 10 {
		t.Error("Expected table to be unaffected by changes to Moves()")
	}
}
