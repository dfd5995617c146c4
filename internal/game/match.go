package game

import (
	"log"
	"sync"
	"time"

	"brawler/internal/config"
)

// MatchConfig configures a 1v1 match
type MatchConfig struct {
	Combat      config.Combat
	Stage       config.StageConfig
	TickRate    int
	P1, P2      config.Archetype
	Controllers [2]Controller
	Seed        int64 // recorded in tick events, controllers own their RNG

	// AutoResetTicks restarts the round this many ticks after a KO.
	// 0 leaves the round over until ResetRound is called.
	AutoResetTicks int
}

// MatchCallbacks are invoked from the tick goroutine with the match lock held;
// they must not call back into the match.
type MatchCallbacks struct {
	OnHit     func(rep HitReport)
	OnKO      func(winner, loser FighterID)
	OnSpecial func(fx *SpecialEffect)
	OnTick    func(d time.Duration, projectiles int)
}

// Match owns both fighters, the combo tracker and every live effect, and
// is the only thing that advances the tick counter.
type Match struct {
	mu sync.RWMutex

	cfg     config.Combat
	stage   config.StageConfig
	timings *FrameTimingTable

	fighters    [2]*Fighter
	controllers [2]Controller
	combos      *ComboTracker
	projectiles []*Projectile
	spins       []*SpinningKick
	nextProjID  uint64

	tick     uint64
	tickRate int
	seed     int64

	ko         bool
	koTick     uint64
	winner     FighterID
	autoReset  int
	roundCount int

	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	snapshotPool *SnapshotPool
	eventLog     *EventLog
	callbacks    MatchCallbacks
}

// NewMatch creates a match with P1 on the left facing right and P2 on the
// right facing left
func NewMatch(mc MatchConfig) *Match {
	stage := mc.Stage
	if stage.Width == 0 {
		stage = config.DefaultStage()
	}
	tickRate := mc.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	maxProj := mc.Combat.Projectiles.MaxActive
	if maxProj <= 0 {
		maxProj = 30
	}

	timings := NewFrameTimingTable(mc.Combat)
	m := &Match{
		cfg:          mc.Combat,
		stage:        stage,
		timings:      timings,
		controllers:  mc.Controllers,
		combos:       NewComboTracker(mc.Combat),
		projectiles:  make([]*Projectile, 0, maxProj),
		tickRate:     tickRate,
		seed:         mc.Seed,
		winner:       MatchEvent,
		autoReset:    mc.AutoResetTicks,
		stopChan:     make(chan struct{}),
		snapshotPool: NewSnapshotPool(maxProj),
		eventLog:     NewEventLog(),
	}

	m.fighters[0] = NewFighter(0, FighterOptions{
		Archetype: mc.P1, Combat: mc.Combat, Stage: stage, Timings: timings,
		X: 200, FacingRight: true,
	})
	m.fighters[1] = NewFighter(1, FighterOptions{
		Archetype: mc.P2, Combat: mc.Combat, Stage: stage, Timings: timings,
		X: stage.Width - 200 - stage.BodyWidth, FacingRight: false,
	})
	for _, f := range m.fighters {
		m.combos.Register(f.ID)
	}

	m.produceSnapshot()
	return m
}

// Start begins the fixed-rate tick loop
func (m *Match) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.ticker = time.NewTicker(time.Second / time.Duration(m.tickRate))
	m.stopChan = make(chan struct{})
	ticker, stop := m.ticker, m.stopChan
	m.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				m.Tick()
			case <-stop:
				return
			}
		}
	}()

	log.Printf("🎮 Match started at %d TPS: %s vs %s", m.tickRate, m.fighters[0].Name, m.fighters[1].Name)
}

// Stop stops the tick loop
func (m *Match) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.running = false
	if m.ticker != nil {
		m.ticker.Stop()
	}
	close(m.stopChan)
	log.Println("🛑 Match stopped")
}

// StartEventLog starts writing combat events to path (empty = memory only)
func (m *Match) StartEventLog(path string) error {
	return m.eventLog.Start(path)
}

// StopEventLog flushes and closes the event log
func (m *Match) StopEventLog() {
	m.eventLog.Stop()
}

// EventLog exposes the event log for stats and recent-event queries
func (m *Match) EventLog() *EventLog { return m.eventLog }

// SetCallbacks installs the observer hooks
func (m *Match) SetCallbacks(cb MatchCallbacks) {
	m.mu.Lock()
	m.callbacks = cb
	m.mu.Unlock()
}

// SetController replaces the controller of slot 0 or 1
func (m *Match) SetController(slot int, c Controller) {
	if slot < 0 || slot > 1 {
		return
	}
	m.mu.Lock()
	m.controllers[slot] = c
	m.mu.Unlock()
}

// Tick advances the match by one frame
func (m *Match) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step()
}

func (m *Match) step() {
	start := time.Now()
	m.tick++
	now := m.tick

	if m.ko && m.autoReset > 0 && now-m.koTick >= uint64(m.autoReset) {
		m.resetRound()
	}

	// Read every controller before anyone moves so both see the same frame
	var inputs [2]InputSource
	for i := range m.fighters {
		inputs[i] = noInput
		if c := m.controllers[i]; c != nil {
			if in := c.Intent(now, m.situation(i)); in != nil {
				inputs[i] = in
			}
		}
	}

	for i, f := range m.fighters {
		if fx := f.Tick(now, m.fighters[1-i], inputs[i], m.combos); fx != nil {
			m.spawn(now, fx)
		}
	}

	n := 0
	for _, s := range m.spins {
		if _, alive := s.Update(now, m.byID(s.Owner), m.byID(s.Target), m.combos); alive {
			m.spins[n] = s
			n++
		}
	}
	m.spins = m.spins[:n]

	m.updateProjectiles(now)
	m.combos.Update(now)

	for _, f := range m.fighters {
		for _, rep := range f.DrainHits() {
			m.recordHit(rep)
		}
	}
	for _, a := range m.combos.TakeAnnouncements() {
		m.eventLog.EmitSimple(EventTypeCombo, now, a.Fighter, a)
	}

	m.checkKO(now)

	if now%uint64(m.tickRate) == 0 {
		m.eventLog.EmitSimple(EventTypeTick, now, MatchEvent, TickPayload{
			RNGSeed:     m.seed,
			Projectiles: len(m.projectiles),
			P1Health:    m.fighters[0].Health(),
			P2Health:    m.fighters[1].Health(),
		})
	}

	m.produceSnapshot()

	if m.callbacks.OnTick != nil {
		m.callbacks.OnTick(time.Since(start), len(m.projectiles))
	}
}

// situation builds the read-only view for the fighter in slot i
func (m *Match) situation(i int) Situation {
	sit := Situation{
		Self:     m.fighters[i].View(),
		Opponent: m.fighters[1-i].View(),
	}
	if len(m.projectiles) > 0 {
		sit.Projectiles = make([]ProjectileView, 0, len(m.projectiles))
		for _, p := range m.projectiles {
			sit.Projectiles = append(sit.Projectiles, p.View())
		}
	}
	return sit
}

func (m *Match) byID(id FighterID) *Fighter {
	for _, f := range m.fighters {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (m *Match) opponentOf(id FighterID) *Fighter {
	for _, f := range m.fighters {
		if f.ID != id {
			return f
		}
	}
	return nil
}

// Locate implements TargetLocator for homing projectiles
func (m *Match) Locate(id FighterID) (float64, float64, bool) {
	f := m.byID(id)
	if f == nil {
		return 0, 0, false
	}
	x, y := f.Center()
	return x, y, f.Alive()
}

func (m *Match) spawn(now uint64, fx *SpecialEffect) {
	limit := cap(m.projectiles)
	spawned := 0
	for _, p := range fx.Projectiles {
		if len(m.projectiles) >= limit {
			break
		}
		m.nextProjID++
		p.ID = m.nextProjID
		m.projectiles = append(m.projectiles, p)
		spawned++
	}
	if fx.Spin != nil {
		m.spins = append(m.spins, fx.Spin)
	}

	m.eventLog.EmitSimple(EventTypeSpecial, now, fx.Owner, SpecialPayload{
		Move:        fx.Move,
		Special:     fx.Special,
		Projectiles: spawned,
		Spin:        fx.Spin != nil,
	})
	if fx.Move == config.MoveUltimate {
		log.Printf("⚡ %s unleashes an ultimate %s", m.byID(fx.Owner).Name, fx.Special)
	}
	if m.callbacks.OnSpecial != nil {
		m.callbacks.OnSpecial(fx)
	}
}

// updateProjectiles advances every projectile and resolves collisions
// against the fighter that does not own it
func (m *Match) updateProjectiles(now uint64) {
	n := 0
	for _, p := range m.projectiles {
		if !p.Update(m, m.stage) {
			continue
		}
		if p.Collidable() {
			target := m.opponentOf(p.Owner)
			if target != nil && target.Alive() && p.Rect().Overlaps(target.Body()) {
				hit := Hit{
					Move:        config.MoveSpecial,
					Damage:      p.Damage,
					Knockback:   p.Knockback,
					Stun:        p.Stun,
					FacingRight: p.VX >= 0,
				}
				var res HitResult
				if owner := m.byID(p.Owner); owner != nil {
					res = owner.Deliver(now, target, m.combos, hit).Outcome.Result
				} else {
					res = target.TakeDamage(now, m.combos, hit.Damage, hit.Knockback, hit.Stun, hit.FacingRight).Result
				}
				if res != HitParried {
					p.Active = false
					continue
				}
				p.Reflect(target.ID)
				m.eventLog.EmitSimple(EventTypeReflect, now, target.ID, ReflectPayload{ProjectileID: p.ID, NewOwner: target.ID})
			}
		}
		m.projectiles[n] = p
		n++
	}
	for i := n; i < len(m.projectiles); i++ {
		m.projectiles[i] = nil
	}
	m.projectiles = m.projectiles[:n]
}

func (m *Match) recordHit(rep HitReport) {
	eventType := EventTypeHit
	switch rep.Outcome.Result {
	case HitBlocked:
		eventType = EventTypeBlock
	case HitParried:
		eventType = EventTypeParry
	}
	defender := m.byID(rep.Defender)
	m.eventLog.EmitSimple(eventType, rep.Tick, rep.Attacker, HitPayload{
		Attacker:   rep.Attacker,
		Defender:   rep.Defender,
		Move:       rep.Move,
		Result:     rep.Outcome.Result.String(),
		Damage:     rep.Outcome.Damage,
		ComboHits:  rep.Combo.Hits,
		Multiplier: rep.Combo.Multiplier,
		ComboName:  rep.Combo.ComboName,
		DefenderHP: defender.Health(),
	})
	if rep.Outcome.KO {
		m.eventLog.EmitSimple(EventTypeKO, rep.Tick, rep.Attacker, KOPayload{
			Winner: rep.Attacker,
			Loser:  rep.Defender,
			Move:   rep.Move,
		})
	}
	if m.callbacks.OnHit != nil {
		m.callbacks.OnHit(rep)
	}
}

func (m *Match) checkKO(now uint64) {
	if m.ko {
		return
	}
	for i, f := range m.fighters {
		if f.Alive() {
			continue
		}
		m.ko = true
		m.koTick = now
		winner := m.fighters[1-i]
		if winner.Alive() {
			m.winner = winner.ID
		}
		log.Printf("💀 %s is down, %s wins the round", f.Name, winner.Name)
		if m.callbacks.OnKO != nil {
			m.callbacks.OnKO(m.winner, f.ID)
		}
		return
	}
}

// ResetRound puts both fighters back at their spawn points with full health
func (m *Match) ResetRound() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetRound()
	m.produceSnapshot()
}

func (m *Match) resetRound() {
	for _, f := range m.fighters {
		f.Reset()
	}
	for i := range m.projectiles {
		m.projectiles[i] = nil
	}
	m.projectiles = m.projectiles[:0]
	m.spins = m.spins[:0]
	m.combos.Clear()
	m.ko = false
	m.winner = MatchEvent
	m.roundCount++
	m.eventLog.EmitSimple(EventTypeRoundReset, m.tick, MatchEvent, map[string]int{"round": m.roundCount})
}

func (m *Match) produceSnapshot() {
	snap := m.snapshotPool.AcquireWrite()
	snap.TickNumber = m.tick
	for i, f := range m.fighters {
		snap.Fighters[i] = f.View()
		snap.Combos[i] = ComboSnapshot{
			Fighter:    f.ID,
			Hits:       m.combos.HitCount(f.ID),
			Damage:     m.combos.State(f.ID).TotalDamage,
			Multiplier: m.combos.DamageMultiplier(f.ID),
		}
	}
	for _, p := range m.projectiles {
		if len(snap.Projectiles) == cap(snap.Projectiles) {
			break
		}
		snap.Projectiles = append(snap.Projectiles, p.View())
	}
	for _, s := range m.spins {
		snap.Spins = append(snap.Spins, SpinSnapshot{Owner: s.Owner, Frame: s.Frame, Duration: s.Duration, Hits: s.Hits})
	}
	for _, a := range m.combos.Announcements() {
		if len(snap.Announcements) == MaxAnnouncements {
			break
		}
		snap.Announcements = append(snap.Announcements, a)
	}
	snap.RoundKO = m.ko
	snap.Winner = m.winner
	m.snapshotPool.PublishWrite()
}

// GetSnapshot returns a copy of the latest published snapshot
func (m *Match) GetSnapshot() *MatchSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := m.snapshotPool.AcquireRead()
	if snap == nil {
		return nil
	}
	cp := snap.Copy()
	return &cp
}

// Fighter returns the fighter in slot 0 or 1. Callers outside the tick
// goroutine should prefer GetSnapshot.
func (m *Match) Fighter(slot int) *Fighter {
	if slot < 0 || slot > 1 {
		return nil
	}
	return m.fighters[slot]
}

// Combos returns the match's combo tracker
func (m *Match) Combos() *ComboTracker { return m.combos }

// Timings returns the shared frame timing table
func (m *Match) Timings() *FrameTimingTable { return m.timings }

// Projectiles returns views of the live projectiles
func (m *Match) Projectiles() []ProjectileView {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ProjectileView, 0, len(m.projectiles))
	for _, p := range m.projectiles {
		out = append(out, p.View())
	}
	return out
}

// CurrentTick returns the tick counter
func (m *Match) CurrentTick() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tick
}

// RoundOver reports whether a fighter is down, and who won
func (m *Match) RoundOver() (bool, FighterID) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ko, m.winner
}

// Stats returns aggregate numbers for the debug endpoints
func (m *Match) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]interface{}{
		"tick":        m.tick,
		"tickRate":    m.tickRate,
		"round":       m.roundCount + 1,
		"projectiles": len(m.projectiles),
		"spins":       len(m.spins),
		"roundOver":   m.ko,
		"events":      m.eventLog.GetStats(),
	}
}
