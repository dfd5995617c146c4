package game

import "testing"

// TestInputState tests the pressed-action bitset
func TestInputState(t *testing.T) {
	in := Press(ActionLeft, ActionLightPunch)

	if !in.IsActionPressed(ActionLeft) || !in.IsActionPressed(ActionLightPunch) {
		t.Error("Expected pressed actions to report true")
	}
	if in.IsActionPressed(ActionRight) {
		t.Error("Expected unpressed action to report false")
	}

	more := in.With(ActionJump)
	if !more.IsActionPressed(ActionJump) || in.IsActionPressed(ActionJump) {
		t.Error("Expected With to return a new state")
	}
	if got := len(more.Actions()); got != 3 {
		t.Errorf("Expected 3 actions, got %d", got)
	}
}

// TestParseAction tests name round trips
func TestParseAction(t *testing.T) {
	for a := ActionLeft; a <= ActionParry; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q): expected %v, got %v (ok=%v)", a.String(), a, got, ok)
		}
	}
	if _, ok := ParseAction("fly"); ok {
		t.Error("Expected unknown action to fail")
	}
}

// TestDirectionOf tests facing-relative directions
func TestDirectionOf(t *testing.T) {
	tests := []struct {
		name        string
		in          InputState
		facingRight bool
		want        Direction
	}{
		{"neutral", Press(), true, DirNeutral},
		{"down", Press(ActionDown), true, DirDown},
		{"down forward right", Press(ActionDown, ActionRight), true, DirDownForward},
		{"down forward left", Press(ActionDown, ActionLeft), false, DirDownForward},
		{"back", Press(ActionLeft), true, DirBack},
		{"forward facing left", Press(ActionLeft), false, DirForward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := directionOf(tt.in, tt.facingRight); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestMotionBuffer tests quarter-circle detection
func TestMotionBuffer(t *testing.T) {
	b := newMotionBuffer(8)
	b.record(DirDown, 1)
	b.record(DirDown, 2) // repeat ignored
	b.record(DirDownForward, 3)
	b.record(DirForward, 4)

	if !b.matches(QuarterCircleForward, 4, 20) {
		t.Error("Expected quarter circle to match")
	}
	if b.matches(QuarterCircleForward, 40, 20) {
		t.Error("Expected the motion to expire")
	}

	b.clear()
	if b.matches(QuarterCircleForward, 4, 20) {
		t.Error("Expected cleared buffer to match nothing")
	}

	// out of order
	b.record(DirForward, 10)
	b.record(DirDownForward, 11)
	b.record(DirDown, 12)
	if b.matches(QuarterCircleForward, 12, 20) {
		t.Error("Expected reversed motion not to match")
	}
}

// TestMotionBufferBounded tests that old entries are evicted
func TestMotionBufferBounded(t *testing.T) {
	b := newMotionBuffer(4)
	for i := uint64(0); i < 20; i++ {
		dir := DirDown
		if i%2 == 1 {
			dir = DirBack
		}
		b.record(dir, i)
	}
	if len(b.entries) != 4 {
		t.Errorf("Expected 4 entries, got %d", len(b.entries))
	}
}
