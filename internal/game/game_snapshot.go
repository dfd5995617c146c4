package game

import (
	"sync/atomic"
	"time"
)

// MaxAnnouncements caps the HUD list in a snapshot
const MaxAnnouncements = 16

// SpinSnapshot is an active spinning kick for rendering
type SpinSnapshot struct {
	Owner    FighterID `json:"owner"`
	Frame    int       `json:"frame"`
	Duration int       `json:"duration"`
	Hits     int       `json:"hits"`
}

// ComboSnapshot is a fighter's running combo
type ComboSnapshot struct {
	Fighter    FighterID `json:"fighter"`
	Hits       int       `json:"hits"`
	Damage     float64   `json:"damage"`
	Multiplier float64   `json:"multiplier"`
}

// MatchSnapshot is an immutable copy of the match for readers outside the
// tick goroutine (websocket, HTTP).
// All slices are pre-allocated and capped.
type MatchSnapshot struct {
	Sequence   uint64    `json:"sequence"`
	Timestamp  time.Time `json:"timestamp"`
	TickNumber uint64    `json:"tick"`

	Fighters      [2]FighterView   `json:"fighters"`
	Combos        [2]ComboSnapshot `json:"combos"`
	Projectiles   []ProjectileView `json:"projectiles"`
	Spins         []SpinSnapshot   `json:"spins"`
	Announcements []Announcement   `json:"announcements"`

	Winner  FighterID `json:"winner"` // MatchEvent while no one is down
	RoundKO bool      `json:"roundKo"`
}

// SnapshotPool uses triple buffering so the tick never waits on readers
type SnapshotPool struct {
	snapshots  [3]MatchSnapshot
	writeIdx   uint32 // atomic - producer index
	readIdx    uint32 // atomic - consumer index
	sequence   uint64 // atomic - monotonic sequence
	maxProj    int
	hasPublish atomic.Bool
}

// NewSnapshotPool creates a pool with pre-allocated slices
func NewSnapshotPool(maxProjectiles int) *SnapshotPool {
	if maxProjectiles <= 0 {
		maxProjectiles = 30
	}
	pool := &SnapshotPool{maxProj: maxProjectiles}
	for i := 0; i < 3; i++ {
		pool.snapshots[i] = MatchSnapshot{
			Projectiles:   make([]ProjectileView, 0, maxProjectiles),
			Spins:         make([]SpinSnapshot, 0, 2),
			Announcements: make([]Announcement, 0, MaxAnnouncements),
		}
	}
	return pool
}

// AcquireWrite gets the next write slot (producer only, called from the tick)
func (p *SnapshotPool) AcquireWrite() *MatchSnapshot {
	idx := (atomic.LoadUint32(&p.readIdx) + 1) % 3
	atomic.StoreUint32(&p.writeIdx, idx)
	snap := &p.snapshots[idx]

	snap.Projectiles = snap.Projectiles[:0]
	snap.Spins = snap.Spins[:0]
	snap.Announcements = snap.Announcements[:0]
	snap.Winner = MatchEvent
	snap.RoundKO = false

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()
	return snap
}

// PublishWrite makes the last acquired snapshot the one readers see
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
	p.hasPublish.Store(true)
}

// AcquireRead returns the latest published snapshot, or nil before the
// first publish
func (p *SnapshotPool) AcquireRead() *MatchSnapshot {
	if !p.hasPublish.Load() {
		return nil
	}
	return &p.snapshots[atomic.LoadUint32(&p.readIdx)]
}

// Copy returns a deep copy that is safe to keep after the next tick
func (s *MatchSnapshot) Copy() MatchSnapshot {
	cp := *s
	cp.Projectiles = append([]ProjectileView(nil), s.Projectiles...)
	cp.Spins = append([]SpinSnapshot(nil), s.Spins...)
	cp.Announcements = append([]Announcement(nil), s.Announcements...)
	return cp
}
