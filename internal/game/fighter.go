package game

import (
	"brawler/internal/config"
)

// StateKind is the coarse state of a fighter, derived every time it is read.
type StateKind uint8

const (
	StateIdle StateKind = iota
	StateMoving
	StateAttacking
	StateDashing
	StateBlocking
	StateParrying
	StateHitStun
	StateBlockStun
)

// String returns the state's wire name.
func (s StateKind) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateAttacking:
		return "attacking"
	case StateDashing:
		return "dashing"
	case StateBlocking:
		return "blocking"
	case StateParrying:
		return "parrying"
	case StateHitStun:
		return "hit_stun"
	case StateBlockStun:
		return "block_stun"
	default:
		return "unknown"
	}
}

// State is the fighter's current state with its payload.
// Move/Elapsed are set for StateAttacking, Frames for the timed states.
type State struct {
	Kind    StateKind
	Move    string
	Elapsed int
	Frames  int
}

type activeAttack struct {
	move      string
	elapsed   int
	connected bool
	special   bool // special/ultimate: the effect does the damage, no melee hitbox
}

// FighterOptions contains options for creating a fighter
type FighterOptions struct {
	Archetype   config.Archetype
	Combat      config.Combat
	Stage       config.StageConfig
	Timings     *FrameTimingTable // shared table, built from Combat when nil
	X           float64           // left edge of the body
	FacingRight bool
}

// Fighter is one combatant and its per-frame state machine.
// It never stores the combo tracker or the opponent; both are passed into Tick.
type Fighter struct {
	ID        FighterID
	Name      string
	archetype config.Archetype

	// Body rectangle top-left and vertical velocity
	X, Y        float64
	VY          float64
	W, H        float64
	FacingRight bool
	grounded    bool
	moving      bool

	health    float64
	maxHealth float64
	alive     bool
	speed     float64
	jumpPower float64

	cfg     config.Combat
	stage   config.StageConfig
	timings *FrameTimingTable
	attacks map[string]config.AttackDefinition

	attack *activeAttack

	// Cooldowns, all in frames
	attackCooldown  int
	specialCooldown int
	dashCooldown    int
	parryCooldown   int

	parryWindow int
	dashFrames  int
	dashDir     float64

	hitStun   int
	blockStun int

	blocking           bool
	blockFrames        int
	blockUsage         int
	blockEffectiveness float64

	superMeter float64

	history     [historySize]string
	historyHead int
	historyLen  int

	motion motionBuffer

	reports []HitReport
	spawnX  float64
	facing0 bool
}

const historySize = 10

// NewFighter creates a fighter at full health, standing on the floor.
func NewFighter(id FighterID, opts FighterOptions) *Fighter {
	stage := opts.Stage
	if stage.Width == 0 {
		stage = config.DefaultStage()
	}
	timings := opts.Timings
	if timings == nil {
		timings = NewFrameTimingTable(opts.Combat)
	}
	arch := opts.Archetype
	if arch.MaxHealth <= 0 {
		arch.MaxHealth = 300
	}
	if arch.Speed <= 0 {
		arch.Speed = 5
	}
	if arch.DamageMult == 0 {
		arch.DamageMult = 1
	}
	if arch.JumpPower == 0 {
		arch.JumpPower = -18
	}

	f := &Fighter{
		ID:          id,
		Name:        arch.Name,
		archetype:   arch,
		W:           stage.BodyWidth,
		H:           stage.BodyHeight,
		FacingRight: opts.FacingRight,
		maxHealth:   arch.MaxHealth,
		speed:       arch.Speed,
		jumpPower:   arch.JumpPower,
		cfg:         opts.Combat,
		stage:       stage,
		timings:     timings,
		attacks:     opts.Combat.AttacksFor(arch),
		motion:      newMotionBuffer(opts.Combat.MotionBufferSize),
		spawnX:      opts.X,
		facing0:     opts.FacingRight,
	}
	f.Reset()
	return f
}

// Reset restores round-start state: full health, zeroed timers, fresh block
// usage, spawn position.
func (f *Fighter) Reset() {
	f.X = f.spawnX
	f.Y = f.stage.FloorY - f.H
	f.VY = 0
	f.FacingRight = f.facing0
	f.grounded = true
	f.moving = false
	f.health = f.maxHealth
	f.alive = true
	f.attack = nil
	f.attackCooldown = 0
	f.specialCooldown = 0
	f.dashCooldown = 0
	f.parryCooldown = 0
	f.parryWindow = 0
	f.dashFrames = 0
	f.hitStun = 0
	f.blockStun = 0
	f.blocking = false
	f.blockFrames = 0
	f.blockUsage = 0
	f.blockEffectiveness = f.cfg.BlockLevel(0)
	f.superMeter = 0
	f.historyHead = 0
	f.historyLen = 0
	f.motion.clear()
	f.reports = f.reports[:0]
}

// Body returns the fighter's collision rectangle.
func (f *Fighter) Body() Rect {
	return Rect{X: f.X, Y: f.Y, W: f.W, H: f.H}
}

// Center returns the center of the body.
func (f *Fighter) Center() (float64, float64) {
	return f.Body().Center()
}

// State derives the current state.
// Priority: HitStun > BlockStun > Attacking > Dashing > Parrying > Blocking > Moving > Idle.
func (f *Fighter) State() State {
	switch {
	case f.hitStun > 0:
		return State{Kind: StateHitStun, Frames: f.hitStun}
	case f.blockStun > 0:
		return State{Kind: StateBlockStun, Frames: f.blockStun}
	case f.attack != nil:
		return State{Kind: StateAttacking, Move: f.attack.move, Elapsed: f.attack.elapsed}
	case f.dashFrames > 0:
		return State{Kind: StateDashing, Frames: f.dashFrames}
	case f.parryWindow > 0:
		return State{Kind: StateParrying, Frames: f.parryWindow}
	case f.blocking:
		return State{Kind: StateBlocking, Frames: f.blockFrames}
	case f.moving:
		return State{Kind: StateMoving}
	}
	return State{Kind: StateIdle}
}

// AnimationState is the tag a renderer maps to a pose.
func (f *Fighter) AnimationState() string {
	if !f.alive {
		return "ko"
	}
	st := f.State()
	switch st.Kind {
	case StateHitStun:
		return "hit"
	case StateBlockStun, StateBlocking:
		return "block"
	case StateAttacking:
		return st.Move
	case StateDashing:
		return "dash"
	case StateParrying:
		return "parry"
	}
	if !f.grounded {
		return "jump"
	}
	if st.Kind == StateMoving {
		return "walk"
	}
	return "idle"
}

func (f *Fighter) Health() float64     { return f.health }
func (f *Fighter) MaxHealth() float64  { return f.maxHealth }
func (f *Fighter) Alive() bool         { return f.alive }
func (f *Fighter) SuperMeter() float64 { return f.superMeter }
func (f *Fighter) BlockUsage() int     { return f.blockUsage }
func (f *Fighter) Grounded() bool      { return f.grounded }

// Archetype returns the archetype the fighter was built from.
func (f *Fighter) Archetype() config.Archetype { return f.archetype }

// ParryActive reports whether an incoming hit would be parried.
func (f *Fighter) ParryActive() bool { return f.parryWindow > 0 }

// Attack returns the attack definition for a move.
func (f *Fighter) Attack(move string) (config.AttackDefinition, bool) {
	a, ok := f.attacks[move]
	return a, ok
}

// History returns executed moves, oldest first.
func (f *Fighter) History() []string {
	out := make([]string, 0, f.historyLen)
	start := (f.historyHead - f.historyLen + historySize) % historySize
	for i := 0; i < f.historyLen; i++ {
		out = append(out, f.history[(start+i)%historySize])
	}
	return out
}

func (f *Fighter) pushHistory(move string) {
	f.history[f.historyHead] = move
	f.historyHead = (f.historyHead + 1) % historySize
	if f.historyLen < historySize {
		f.historyLen++
	}
}

func (f *Fighter) gainMeter(amount float64) {
	f.superMeter += amount
	if f.superMeter > f.cfg.SuperMeterMax {
		f.superMeter = f.cfg.SuperMeterMax
	}
	if f.superMeter < 0 {
		f.superMeter = 0
	}
}

// SetSuperMeter sets the meter, clamped to its range.
func (f *Fighter) SetSuperMeter(v float64) {
	f.superMeter = 0
	f.gainMeter(v)
}

// DrainHits returns the hits this fighter delivered since the last call.
func (f *Fighter) DrainHits() []HitReport {
	if len(f.reports) == 0 {
		return nil
	}
	out := make([]HitReport, len(f.reports))
	copy(out, f.reports)
	f.reports = f.reports[:0]
	return out
}

func (f *Fighter) direction() float64 {
	if f.FacingRight {
		return 1
	}
	return -1
}

// clampX keeps the body inside the stage.
func (f *Fighter) clampX() {
	if f.X < 0 {
		f.X = 0
	}
	if maxX := f.stage.Width - f.W; f.X > maxX {
		f.X = maxX
	}
}

// applyGravity integrates vertical motion and lands on the floor.
func (f *Fighter) applyGravity() {
	f.VY += f.stage.Gravity
	f.Y += f.VY
	if floor := f.stage.FloorY - f.H; f.Y >= floor {
		f.Y = floor
		f.VY = 0
		f.grounded = true
	}
}

// FighterView is the read-only fighter state handed to controllers,
// snapshots and the API.
type FighterView struct {
	ID              FighterID `json:"id"`
	Name            string    `json:"name"`
	X               float64   `json:"x"`
	Y               float64   `json:"y"`
	W               float64   `json:"w"`
	H               float64   `json:"h"`
	FacingRight     bool      `json:"facingRight"`
	Health          float64   `json:"health"`
	MaxHealth       float64   `json:"maxHealth"`
	Alive           bool      `json:"alive"`
	State           string    `json:"state"`
	Animation       string    `json:"animation"`
	Move            string    `json:"move,omitempty"`
	Attacking       bool      `json:"attacking"`
	Blocking        bool      `json:"blocking"`
	Parrying        bool      `json:"parrying"`
	Grounded        bool      `json:"grounded"`
	SuperMeter      float64   `json:"superMeter"`
	SuperMeterMax   float64   `json:"superMeterMax"`
	AttackCooldown  int       `json:"attackCooldown"`
	SpecialCooldown int       `json:"specialCooldown"`
	DashCooldown    int       `json:"dashCooldown"`
	ParryCooldown   int       `json:"parryCooldown"`
	BlockUsage      int       `json:"blockUsage"`
}

// View returns a copy of the fighter's observable state.
func (f *Fighter) View() FighterView {
	st := f.State()
	v := FighterView{
		ID:              f.ID,
		Name:            f.Name,
		X:               f.X,
		Y:               f.Y,
		W:               f.W,
		H:               f.H,
		FacingRight:     f.FacingRight,
		Health:          f.health,
		MaxHealth:       f.maxHealth,
		Alive:           f.alive,
		State:           st.Kind.String(),
		Animation:       f.AnimationState(),
		Attacking:       f.attack != nil,
		Blocking:        f.blocking,
		Parrying:        f.parryWindow > 0,
		Grounded:        f.grounded,
		SuperMeter:      f.superMeter,
		SuperMeterMax:   f.cfg.SuperMeterMax,
		AttackCooldown:  f.attackCooldown,
		SpecialCooldown: f.specialCooldown,
		DashCooldown:    f.dashCooldown,
		ParryCooldown:   f.parryCooldown,
		BlockUsage:      f.blockUsage,
	}
	if f.attack != nil {
		v.Move = f.attack.move
	}
	return v
}

// Situation is everything a controller may look at when choosing input.
type Situation struct {
	Self        FighterView
	Opponent    FighterView
	Projectiles []ProjectileView
}
