package game

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TestEventLogNotRunning tests that a stopped log rejects events
func TestEventLogNotRunning(t *testing.T) {
	el := NewEventLog()
	if el.Emit(NewEvent(EventTypeHit, 1, 0, nil)) {
		t.Error("Expected Emit to fail before Start")
	}
	if el.GetTotalCount() != 0 {
		t.Errorf("Expected 0 events, got %d", el.GetTotalCount())
	}
}

// TestEventLogRecent tests sequence numbers and the recent window
func TestEventLogRecent(t *testing.T) {
	el := NewEventLog()
	if err := el.Start(""); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer el.Stop()

	for i := uint64(1); i <= 5; i++ {
		el.EmitSimple(EventTypeTick, i, MatchEvent, TickPayload{RNGSeed: 1})
	}

	recent := el.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(recent))
	}
	if recent[0].Sequence != 3 || recent[2].Sequence != 5 {
		t.Errorf("Expected sequences 3..5, got %d..%d", recent[0].Sequence, recent[2].Sequence)
	}
	if recent[2].TickNum != 5 {
		t.Errorf("Expected tick 5, got %d", recent[2].TickNum)
	}
	if all := el.Recent(100); len(all) != 5 {
		t.Errorf("Expected Recent to cap at 5, got %d", len(all))
	}
}

// TestEventLogPerFighterLimit tests that one noisy fighter is throttled
func TestEventLogPerFighterLimit(t *testing.T) {
	el := NewEventLog()
	el.Start("")
	defer el.Stop()

	accepted := 0
	for i := 0; i < 150; i++ {
		if el.EmitSimple(EventTypeHit, uint64(i), 0, nil) {
			accepted++
		}
	}
	if accepted >= 150 {
		t.Error("Expected per-fighter limit to drop events")
	}
	if el.GetDroppedCount() == 0 {
		t.Error("Expected dropped count to grow")
	}

	// a different fighter has its own budget
	if !el.EmitSimple(EventTypeHit, 1, 1, nil) {
		t.Error("Expected fighter 1 to be unaffected")
	}
	// match events skip the per-fighter limiter
	if !el.EmitSimple(EventTypeKO, 1, MatchEvent, nil) {
		t.Error("Expected match event to be accepted")
	}
}

// TestEventLogWritesNDJSON tests the file output on Stop
func TestEventLogWritesNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")
	el := NewEventLog()
	if err := el.Start(path); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	el.EmitSimple(EventTypeHit, 10, 0, HitPayload{Attacker: 0, Defender: 1, Move: "light_punch", Damage: 3})
	el.EmitSimple(EventTypeKO, 11, 0, KOPayload{Winner: 0, Loser: 1})
	el.Stop()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var types []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var raw map[string]interface{}
		if err := json.Unmarshal(sc.Bytes(), &raw); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		types = append(types, raw["type"].(string))
	}
	if len(types) != 2 || types[0] != "hit" || types[1] != "ko" {
		t.Errorf("Expected [hit ko], got %v", types)
	}
}

// TestEventLogBadPath tests the open error
func TestEventLogBadPath(t *testing.T) {
	el := NewEventLog()
	if err := el.Start(filepath.Join(t.TempDir(), "missing", "events.ndjson")); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}

// TestEventTypeNames tests the wire names
func TestEventTypeNames(t *testing.T) {
	tests := map[EventType]string{
		EventTypeTick:       "tick",
		EventTypeHit:        "hit",
		EventTypeBlock:      "block",
		EventTypeParry:      "parry",
		EventTypeReflect:    "reflect",
		EventTypeSpecial:    "special",
		EventTypeCombo:      "combo",
		EventTypeKO:         "ko",
		EventTypeRoundReset: "round_reset",
		EventType(200):      "unknown",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}
