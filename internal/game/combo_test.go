package game

import (
	"math"
	"testing"

	"brawler/internal/config"
)

func newTestTracker() *ComboTracker {
	ct := NewComboTracker(config.DefaultCombat())
	ct.Register(0)
	ct.Register(1)
	return ct
}

// TestComboScaling tests the multiplier table and the break past max hits
func TestComboScaling(t *testing.T) {
	ct := newTestTracker()
	want := []struct {
		hits int
		mult float64
	}{
		{1, 1.0}, {2, 1.0}, {3, 1.0}, {4, 0.8}, {5, 0.8},
		{1, 1.0}, // 6th hit breaks the combo and starts a new one
	}

	for i, w := range want {
		res := ct.RecordHit(0, uint64(10+i*10), 10, config.MoveHeavyPunch)
		if res.Hits != w.hits {
			t.Errorf("hit %d: expected count %d, got %d", i+1, w.hits, res.Hits)
		}
		if res.Multiplier != w.mult {
			t.Errorf("hit %d: expected multiplier %v, got %v", i+1, w.mult, res.Multiplier)
		}
		if math.Abs(res.Damage-10*w.mult) > eps {
			t.Errorf("hit %d: expected damage %v, got %v", i+1, 10*w.mult, res.Damage)
		}
	}

	var broken bool
	for _, a := range ct.TakeAnnouncements() {
		if a.Final && a.Text == "5 HIT COMBO!" {
			broken = true
		}
	}
	if !broken {
		t.Error("Expected a final 5 HIT COMBO! announcement when the combo broke")
	}
}

// TestComboCountsNeverExceedMax tests the hit count bound over a long string
func TestComboCountsNeverExceedMax(t *testing.T) {
	ct := newTestTracker()
	for i := 0; i < 50; i++ {
		res := ct.RecordHit(0, uint64(i+1), 1, config.MoveLightPunch)
		if res.Hits < 1 || res.Hits > 5 {
			t.Fatalf("hit %d: count %d out of range", i, res.Hits)
		}
	}
}

// TestComboWindowReset tests that a late hit starts a fresh combo
func TestComboWindowReset(t *testing.T) {
	cfg := config.DefaultCombat()
	ct := newTestTracker()

	ct.RecordHit(0, 10, 5, config.MoveLightPunch)
	ct.RecordHit(0, 20, 5, config.MoveLightPunch)
	res := ct.RecordHit(0, 20+uint64(cfg.ComboWindowFrames)+1, 5, config.MoveLightPunch)

	if res.Hits != 1 {
		t.Errorf("Expected a fresh combo, got %d hits", res.Hits)
	}
	if res.TotalDamage != 5 {
		t.Errorf("Expected total damage 5, got %v", res.TotalDamage)
	}
}

// TestComboWindowEdge tests a hit exactly at the window limit still chains
func TestComboWindowEdge(t *testing.T) {
	cfg := config.DefaultCombat()
	ct := newTestTracker()

	ct.RecordHit(0, 10, 5, config.MoveLightPunch)
	res := ct.RecordHit(0, 10+uint64(cfg.ComboWindowFrames), 5, config.MoveLightPunch)
	if res.Hits != 2 {
		t.Errorf("Expected 2 hits at the window edge, got %d", res.Hits)
	}
}

// TestComboTimeoutAnnouncement tests the drop announcement from Update
func TestComboTimeoutAnnouncement(t *testing.T) {
	cfg := config.DefaultCombat()
	ct := newTestTracker()

	for i := uint64(1); i <= 3; i++ {
		ct.RecordHit(0, i*10, 5, config.MoveLightPunch)
	}
	ct.TakeAnnouncements()

	ct.Update(30 + uint64(cfg.ComboWindowFrames))
	if ct.HitCount(0) != 3 {
		t.Errorf("Expected combo alive at window edge, got %d", ct.HitCount(0))
	}

	ct.Update(31 + uint64(cfg.ComboWindowFrames))
	if ct.HitCount(0) != 0 {
		t.Errorf("Expected combo dropped, got %d", ct.HitCount(0))
	}
	anns := ct.TakeAnnouncements()
	if len(anns) != 1 || anns[0].Text != "3 HIT COMBO!" || !anns[0].Final {
		t.Errorf("Expected one final 3 HIT COMBO!, got %+v", anns)
	}
}

// TestComboShortDropIsSilent tests that two-hit combos end without a message
func TestComboShortDropIsSilent(t *testing.T) {
	ct := newTestTracker()
	ct.RecordHit(0, 1, 5, config.MoveLightPunch)
	ct.RecordHit(0, 2, 5, config.MoveLightPunch)
	ct.Reset(0, 3)

	if anns := ct.TakeAnnouncements(); len(anns) != 0 {
		t.Errorf("Expected no announcements, got %+v", anns)
	}
}

// TestComboGenericAnnouncements tests the hit-count messages
func TestComboGenericAnnouncements(t *testing.T) {
	ct := newTestTracker()
	texts := map[int]string{}
	for i := 1; i <= 5; i++ {
		res := ct.RecordHit(0, uint64(i), 1, config.MoveHeavyPunch)
		if res.Announcement != nil {
			texts[res.Hits] = res.Announcement.Text
		}
	}

	if texts[3] != "COMBO!" {
		t.Errorf("Expected COMBO! at 3 hits, got %q", texts[3])
	}
	if texts[5] != "AMAZING COMBO!" {
		t.Errorf("Expected AMAZING COMBO! at 5 hits, got %q", texts[5])
	}
	if _, ok := texts[4]; ok {
		t.Errorf("Expected no message at 4 hits, got %q", texts[4])
	}
}

// TestComboStringTornadoKick tests the named-combo bonus
func TestComboStringTornadoKick(t *testing.T) {
	ct := newTestTracker()
	ct.RecordHit(0, 1, 4.8, config.MoveLightKick)
	ct.RecordHit(0, 10, 4.8, config.MoveLightKick)
	res := ct.RecordHit(0, 20, 9, config.MoveHeavyKick)

	if res.ComboName != "TORNADO KICK" {
		t.Fatalf("Expected TORNADO KICK, got %q", res.ComboName)
	}
	if math.Abs(res.Damage-9*1.3) > eps {
		t.Errorf("Expected %v damage, got %v", 9*1.3, res.Damage)
	}
	if res.Announcement == nil || res.Announcement.Text != "TORNADO KICK!" {
		t.Errorf("Expected TORNADO KICK! announcement, got %+v", res.Announcement)
	}
}

// TestComboStringLongestMatch tests that the longest suffix wins
func TestComboStringLongestMatch(t *testing.T) {
	ct := newTestTracker()
	ct.RecordHit(0, 1, 5, config.MoveLightKick)
	ct.RecordHit(0, 2, 5, config.MoveHeavyPunch)
	res := ct.RecordHit(0, 3, 5, config.MoveSpecial)

	// both MEGA SLICE (heavy_punch, special) and FLAME UPPERCUT match
	if res.ComboName != "FLAME UPPERCUT" {
		t.Errorf("Expected FLAME UPPERCUT, got %q", res.ComboName)
	}
}

// TestComboStringWithJump tests a string that starts with a non-hitting input
func TestComboStringWithJump(t *testing.T) {
	ct := newTestTracker()
	ct.RecordInput(0, 5, config.MoveJump)
	res := ct.RecordHit(0, 20, 9, config.MoveHeavyKick)

	if res.ComboName != "FLYING AXE KICK" {
		t.Errorf("Expected FLYING AXE KICK, got %q", res.ComboName)
	}

	// a stale jump does not count
	ct2 := newTestTracker()
	ct2.RecordInput(0, 5, config.MoveJump)
	res = ct2.RecordHit(0, 500, 9, config.MoveHeavyKick)
	if res.ComboName != "" {
		t.Errorf("Expected no combo string after a stale jump, got %q", res.ComboName)
	}
}

// TestComboHistoryBounded tests the history cap
func TestComboHistoryBounded(t *testing.T) {
	cfg := config.DefaultCombat()
	ct := NewComboTracker(cfg)
	for i := 0; i < 30; i++ {
		ct.RecordInput(0, uint64(i), config.MoveJump)
	}
	if n := len(ct.State(0).History); n != cfg.HistorySize {
		t.Errorf("Expected history capped at %d, got %d", cfg.HistorySize, n)
	}
}

// TestComboUnregistered tests queries for unknown fighters
func TestComboUnregistered(t *testing.T) {
	ct := NewComboTracker(config.DefaultCombat())
	if ct.HitCount(42) != 0 {
		t.Errorf("Expected 0 hits, got %d", ct.HitCount(42))
	}
	if ct.DamageMultiplier(42) != 1.0 {
		t.Errorf("Expected multiplier 1.0, got %v", ct.DamageMultiplier(42))
	}
	ct.Reset(42, 1) // must not panic
}

// TestComboIndependentFighters tests that fighters have separate state
func TestComboIndependentFighters(t *testing.T) {
	ct := newTestTracker()
	ct.RecordHit(0, 1, 5, config.MoveLightPunch)
	ct.RecordHit(0, 2, 5, config.MoveLightPunch)
	ct.RecordHit(1, 3, 5, config.MoveLightPunch)

	if ct.HitCount(0) != 2 || ct.HitCount(1) != 1 {
		t.Errorf("Expected 2 and 1 hits, got %d and %d", ct.HitCount(0), ct.HitCount(1))
	}
	ct.Reset(0, 4)
	if ct.HitCount(0) != 0 || ct.HitCount(1) != 1 {
		t.Errorf("Expected reset to touch fighter 0 only, got %d and %d", ct.HitCount(0), ct.HitCount(1))
	}
}

// TestAnnouncementExpiry tests the HUD list timeout
func TestAnnouncementExpiry(t *testing.T) {
	cfg := config.DefaultCombat()
	ct := newTestTracker()
	for i := uint64(1); i <= 3; i++ {
		ct.RecordHit(0, i, 1, config.MoveHeavyPunch)
	}

	shown := func() bool {
		for _, a := range ct.Announcements() {
			if a.Text == "COMBO!" {
				return true
			}
		}
		return false
	}

	ct.Update(3 + uint64(cfg.AnnouncementFrames))
	if !shown() {
		t.Error("Expected COMBO! still shown at its last frame")
	}
	ct.Update(4 + uint64(cfg.AnnouncementFrames))
	if shown() {
		t.Error("Expected COMBO! to expire")
	}
}

// TestComboClear tests the round reset
func TestComboClear(t *testing.T) {
	ct := newTestTracker()
	for i := uint64(1); i <= 3; i++ {
		ct.RecordHit(1, i, 1, config.MoveHeavyPunch)
	}
	ct.Clear()

	if ct.HitCount(1) != 0 {
		t.Errorf("Expected 0 hits after clear, got %d", ct.HitCount(1))
	}
	if len(ct.Announcements()) != 0 || len(ct.TakeAnnouncements()) != 0 {
		t.Error("Expected announcements cleared")
	}
}

// TestFighterComboString tests a real lk, lk, hk string between two fighters
func TestFighterComboString(t *testing.T) {
	cfg := config.DefaultCombat()
	attacker := newTestFighter(0, "KHALID", 100, true)
	defender := newTestFighter(1, "KHALID", 160, false)
	combos := NewComboTracker(cfg)
	combos.Register(0)
	combos.Register(1)

	var now uint64
	for _, move := range []string{config.MoveLightKick, config.MoveLightKick, config.MoveHeavyKick} {
		for attacker.attack != nil || attacker.attackCooldown > 0 {
			tickPair(&now, 1, attacker, defender, nil, nil, combos)
		}
		if !attacker.StartAttack(now, move, defender, combos) {
			t.Fatalf("StartAttack(%s) refused at tick %d", move, now)
		}
		for attacker.attack != nil {
			tickPair(&now, 1, attacker, defender, nil, nil, combos)
		}
	}

	hits := attacker.DrainHits()
	if len(hits) != 3 {
		t.Fatalf("Expected 3 hits, got %d", len(hits))
	}
	last := hits[2].Combo
	if last.ComboName != "TORNADO KICK" || last.Hits != 3 {
		t.Errorf("Expected TORNADO KICK on hit 3, got %+v", last)
	}
	want := cfg.Moves[config.MoveHeavyKick].Damage * cfg.GlobalDamageMult * 1.3
	if math.Abs(hits[2].Outcome.Damage-want) > eps {
		t.Errorf("Expected %v damage, got %v", want, hits[2].Outcome.Damage)
	}
}
