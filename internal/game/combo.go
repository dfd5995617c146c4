package game

import (
	"fmt"
	"sort"

	"brawler/internal/config"
)

// FighterID identifies a fighter for the combo tracker and projectile ownership.
type FighterID int

// ComboState is the running offense of one fighter.
type ComboState struct {
	Hits        int
	TotalDamage float64
	LastHitTick uint64
	History     []string
	lastInput   uint64
}

// Announcement is a HUD message produced by the tracker.
type Announcement struct {
	Fighter   FighterID `json:"fighter"`
	Text      string    `json:"text"`
	Hits      int       `json:"hits"`
	ComboName string    `json:"comboName,omitempty"`
	Final     bool      `json:"final"` // combo ended (dropped or broken)
	Tick      uint64    `json:"tick"`
}

// ComboResult is returned for every recorded hit.
type ComboResult struct {
	Hits         int
	TotalDamage  float64
	Multiplier   float64
	Bonus        float64 // combo-string bonus fraction, 0 when none matched
	ComboName    string
	Damage       float64 // input damage after multiplier and bonus
	Announcement *Announcement
}

// ComboTracker owns every fighter's combo state, keyed by FighterID.
// Fighters never hold a reference into it; the match passes it in.
type ComboTracker struct {
	cfg     config.Combat
	states  map[FighterID]*ComboState
	order   []FighterID
	active  []Announcement // shown on the HUD until they expire
	pending []Announcement // not yet handed out by TakeAnnouncements
}

// NewComboTracker creates an empty tracker.
func NewComboTracker(cfg config.Combat) *ComboTracker {
	return &ComboTracker{
		cfg:    cfg,
		states: make(map[FighterID]*ComboState),
	}
}

// Register adds a fighter with an empty combo. Registering twice is a no-op.
func (t *ComboTracker) Register(id FighterID) {
	if _, ok := t.states[id]; ok {
		return
	}
	t.states[id] = &ComboState{History: make([]string, 0, t.historySize())}
	t.order = append(t.order, id)
	sort.Slice(t.order, func(i, j int) bool { return t.order[i] < t.order[j] })
}

func (t *ComboTracker) historySize() int {
	if t.cfg.HistorySize > 0 {
		return t.cfg.HistorySize
	}
	return 10
}

func (t *ComboTracker) state(id FighterID) *ComboState {
	st, ok := t.states[id]
	if !ok {
		t.Register(id)
		st = t.states[id]
	}
	return st
}

// State returns a copy of a fighter's combo state. Unknown ids read as zero.
func (t *ComboTracker) State(id FighterID) ComboState {
	st, ok := t.states[id]
	if !ok {
		return ComboState{}
	}
	cp := *st
	cp.History = append([]string(nil), st.History...)
	return cp
}

// HitCount returns the current hit count. Unknown ids read as 0.
func (t *ComboTracker) HitCount(id FighterID) int {
	if st, ok := t.states[id]; ok {
		return st.Hits
	}
	return 0
}

// DamageMultiplier returns the scaling that applies at the current hit count.
func (t *ComboTracker) DamageMultiplier(id FighterID) float64 {
	return t.cfg.ComboMultiplier(t.HitCount(id))
}

// RecordHit counts a connecting hit and returns the scaled damage.
func (t *ComboTracker) RecordHit(id FighterID, now uint64, damage float64, move string) ComboResult {
	st := t.state(id)

	window := uint64(t.cfg.ComboWindowFrames)
	if st.Hits > 0 && now-st.LastHitTick > window {
		t.end(id, st, now)
	} else if st.Hits == 0 && now-st.lastInput > window {
		st.History = st.History[:0]
	}

	st.Hits++
	if st.Hits > t.cfg.MaxComboHits {
		// Combo breaks instead of scaling forever; this hit starts a new one.
		st.Hits--
		t.end(id, st, now)
		st.Hits = 1
	}

	st.LastHitTick = now
	t.push(st, now, move)

	res := ComboResult{
		Hits:       st.Hits,
		Multiplier: t.cfg.ComboMultiplier(st.Hits),
	}

	if cs, ok := t.matchComboString(st.History); ok {
		res.ComboName = cs.Name
		res.Bonus = cs.Bonus
		res.Announcement = t.announce(Announcement{
			Fighter:   id,
			Text:      cs.Name + "!",
			Hits:      st.Hits,
			ComboName: cs.Name,
			Tick:      now,
		})
	} else if text := genericAnnouncement(st.Hits); text != "" {
		res.Announcement = t.announce(Announcement{Fighter: id, Text: text, Hits: st.Hits, Tick: now})
	}

	res.Damage = damage * res.Multiplier * (1 + res.Bonus)
	st.TotalDamage += res.Damage
	res.TotalDamage = st.TotalDamage
	return res
}

// RecordInput adds a non-hitting move (a jump) to the history so combo
// strings such as jump, heavy_kick can match.
func (t *ComboTracker) RecordInput(id FighterID, now uint64, move string) {
	st := t.state(id)
	if st.Hits == 0 && now-st.lastInput > uint64(t.cfg.ComboWindowFrames) {
		st.History = st.History[:0]
	}
	t.push(st, now, move)
}

func (t *ComboTracker) push(st *ComboState, now uint64, move string) {
	if len(st.History) == t.historySize() {
		copy(st.History, st.History[1:])
		st.History = st.History[:len(st.History)-1]
	}
	st.History = append(st.History, move)
	st.lastInput = now
}

func genericAnnouncement(hits int) string {
	switch {
	case hits >= 7:
		return "LEGENDARY!"
	case hits == 5:
		return "AMAZING COMBO!"
	case hits == 3:
		return "COMBO!"
	}
	return ""
}

// matchComboString finds the longest combo string that is a suffix of
// history. Equal lengths keep table order.
func (t *ComboTracker) matchComboString(history []string) (config.ComboString, bool) {
	var best config.ComboString
	found := false
	for _, cs := range t.cfg.ComboStrings {
		n := len(cs.Sequence)
		if n == 0 || n > len(history) || (found && n <= len(best.Sequence)) {
			continue
		}
		tail := history[len(history)-n:]
		match := true
		for i := range tail {
			if tail[i] != cs.Sequence[i] {
				match = false
				break
			}
		}
		if match {
			best = cs
			found = true
		}
	}
	return best, found
}

// Reset ends a fighter's combo, e.g. because they were hit.
func (t *ComboTracker) Reset(id FighterID, now uint64) {
	st, ok := t.states[id]
	if !ok {
		return
	}
	t.end(id, st, now)
}

// end clears a combo and emits the drop announcement for 3+ hits.
func (t *ComboTracker) end(id FighterID, st *ComboState, now uint64) {
	if st.Hits >= 3 {
		t.announce(Announcement{
			Fighter: id,
			Text:    fmt.Sprintf("%d HIT COMBO!", st.Hits),
			Hits:    st.Hits,
			Final:   true,
			Tick:    now,
		})
	}
	st.Hits = 0
	st.TotalDamage = 0
	st.History = st.History[:0]
}

func (t *ComboTracker) announce(a Announcement) *Announcement {
	t.active = append(t.active, a)
	t.pending = append(t.pending, a)
	return &a
}

// Update times out stale combos and expires old announcements.
// Called once per tick by the match.
func (t *ComboTracker) Update(now uint64) {
	window := uint64(t.cfg.ComboWindowFrames)
	for _, id := range t.order {
		st := t.states[id]
		if st.Hits > 0 && now-st.LastHitTick > window {
			t.end(id, st, now)
		}
	}

	ttl := uint64(t.cfg.AnnouncementFrames)
	n := 0
	for _, a := range t.active {
		if now-a.Tick <= ttl {
			t.active[n] = a
			n++
		}
	}
	t.active = t.active[:n]
}

// Announcements returns the announcements still on screen.
func (t *ComboTracker) Announcements() []Announcement {
	return append([]Announcement(nil), t.active...)
}

// TakeAnnouncements drains the announcements created since the last call.
func (t *ComboTracker) TakeAnnouncements() []Announcement {
	out := t.pending
	t.pending = nil
	return out
}

// Clear drops every combo and announcement (round reset).
func (t *ComboTracker) Clear() {
	for _, st := range t.states {
		st.Hits = 0
		st.TotalDamage = 0
		st.History = st.History[:0]
	}
	t.active = t.active[:0]
	t.pending = nil
}
