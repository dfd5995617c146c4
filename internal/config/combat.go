package config

import (
	"math"
	"sort"
	"strings"
)

// =============================================================================
// COMBAT TUNING
// =============================================================================
//
// Every duration below is counted in simulation ticks (60 per second).
// Values that were authored in milliseconds go through MsToFrames once, here.

// FrameTiming is the startup/active/recovery profile of one move.
type FrameTiming struct {
	Startup     int  `yaml:"startup" json:"startup"`
	Active      int  `yaml:"active" json:"active"`
	Recovery    int  `yaml:"recovery" json:"recovery"`
	Total       int  `yaml:"total" json:"total"`
	EarlyCancel bool `yaml:"early_cancel" json:"earlyCancel"`
}

// MoveDefinition is the archetype-independent base data of a melee move.
type MoveDefinition struct {
	Damage         float64 `yaml:"damage" json:"damage"`
	CooldownFrames int     `yaml:"cooldown_frames" json:"cooldownFrames"`
	HitboxWidth    float64 `yaml:"hitbox_width" json:"hitboxWidth"`
	HitboxHeight   float64 `yaml:"hitbox_height" json:"hitboxHeight"`
	Knockback      float64 `yaml:"knockback" json:"knockback"`
	StunFrames     int     `yaml:"stun_frames" json:"stunFrames"`
}

// AttackDefinition is a move as a specific archetype executes it.
type AttackDefinition struct {
	Name           string
	Damage         float64
	CooldownFrames int
	HitboxWidth    float64
	HitboxHeight   float64
	Knockback      float64
	StunFrames     int
}

// Archetype is a playable character.
type Archetype struct {
	Name       string  `yaml:"name" json:"name"`
	Speed      float64 `yaml:"speed" json:"speed"`
	JumpPower  float64 `yaml:"jump_power" json:"jumpPower"` // negative = up
	MaxHealth  float64 `yaml:"max_health" json:"maxHealth"`
	DamageMult float64 `yaml:"damage_mult" json:"damageMult"`
	Special    string  `yaml:"special" json:"special"`
}

// ComboString is a named move sequence that earns bonus damage.
type ComboString struct {
	Name     string   `yaml:"name" json:"name"`
	Sequence []string `yaml:"sequence" json:"sequence"`
	Bonus    float64  `yaml:"bonus" json:"bonus"`
}

// ProjectileTuning holds the per-special projectile parameters.
type ProjectileTuning struct {
	Size          float64 `yaml:"size"`
	MaxAge        int     `yaml:"max_age"`
	BoundsMargin  float64 `yaml:"bounds_margin"`
	MaxActive     int     `yaml:"max_active"`
	Knockback     float64 `yaml:"knockback"`
	StunFrames    int     `yaml:"stun_frames"`
	ArcGravity    float64 `yaml:"arc_gravity"`
	PizzaDamage   float64 `yaml:"pizza_damage"`
	PizzaUltDmg   float64 `yaml:"pizza_ultimate_damage"`
	SineSpeed     float64 `yaml:"sine_speed"`
	SineAmplitude float64 `yaml:"sine_amplitude"`
	SineWave      float64 `yaml:"sine_wavelength"`
	FireballDmg   float64 `yaml:"fireball_damage"`
	FireballUlt   float64 `yaml:"fireball_ultimate_damage"`
	HomingSpeed   float64 `yaml:"homing_speed"`
	HomingTurn    float64 `yaml:"homing_turn_rate"`
	CircuitDmg    float64 `yaml:"circuit_damage"`
	CircuitUlt    float64 `yaml:"circuit_ultimate_damage"`
}

// SpinTuning holds the multi-hit spinning kick parameters.
type SpinTuning struct {
	Duration         int     `yaml:"duration"`
	UltimateDuration int     `yaml:"ultimate_duration"`
	HitDamage        float64 `yaml:"hit_damage"`
	MaxHits          int     `yaml:"max_hits"`
	HitInterval      int     `yaml:"hit_interval"`
	Travel           float64 `yaml:"travel"` // total forward distance over Duration
	Reach            float64 `yaml:"reach"`  // horizontal hitbox growth on each side
	Knockback        float64 `yaml:"knockback"`
	StunFrames       int     `yaml:"stun_frames"`
}

// Combat is the static combat configuration object consumed by the game package.
type Combat struct {
	FrameTimings    map[string]FrameTiming    `yaml:"frame_timings"`
	DefaultDuration int                       `yaml:"default_duration"`
	Moves           map[string]MoveDefinition `yaml:"moves"`
	Archetypes      map[string]Archetype      `yaml:"archetypes"`

	GlobalDamageMult float64 `yaml:"global_damage_mult"`
	UltimateDamage   float64 `yaml:"ultimate_damage"`

	MaxComboHits       int             `yaml:"max_combo_hits"`
	ComboScaling       map[int]float64 `yaml:"combo_scaling"`
	ComboWindowFrames  int             `yaml:"combo_window_frames"`
	AnnouncementFrames int             `yaml:"announcement_frames"`
	HistorySize        int             `yaml:"history_size"`
	ComboStrings       []ComboString   `yaml:"combo_strings"`

	BlockEffectiveness []float64 `yaml:"block_effectiveness"`
	BlockMaxFrames     int       `yaml:"block_max_frames"`
	BlockStunFrames    int       `yaml:"block_stun_frames"`
	PushblockDistance  float64   `yaml:"pushblock_distance"`

	ParryWindowFrames   int `yaml:"parry_window_frames"`
	ParryCooldownFrames int `yaml:"parry_cooldown_frames"`

	SuperMeterMax     float64 `yaml:"super_meter_max"`
	SuperGainOnHit    float64 `yaml:"super_gain_on_hit"`
	SuperGainOnDamage float64 `yaml:"super_gain_on_damage"`
	SuperGainOnBlock  float64 `yaml:"super_gain_on_block"`
	SuperGainOnParry  float64 `yaml:"super_gain_on_parry"`

	SpecialCooldownFrames int     `yaml:"special_cooldown_frames"`
	DashFrames            int     `yaml:"dash_frames"`
	DashCooldownFrames    int     `yaml:"dash_cooldown_frames"`
	DashSpeedMult         float64 `yaml:"dash_speed_mult"`

	MotionBufferSize   int `yaml:"motion_buffer_size"`
	MotionWindowFrames int `yaml:"motion_window_frames"`

	Projectiles ProjectileTuning `yaml:"projectiles"`
	Spin        SpinTuning       `yaml:"spin"`
}

// Move names shared by the frame data, attack tables and combo strings.
const (
	MoveLightPunch = "light_punch"
	MoveHeavyPunch = "heavy_punch"
	MoveLightKick  = "light_kick"
	MoveHeavyKick  = "heavy_kick"
	MoveSpecial    = "special"
	MoveUltimate   = "ultimate"
	MoveDash       = "dash"
	MoveJump       = "jump"
)

// Special move identifiers used by Archetype.Special.
const (
	SpecialSpinningKick = "spinning_kick"
	SpecialPizzaThrow   = "pizza_throw"
	SpecialFireball     = "fireball"
	SpecialCircuitBoard = "circuit_board"
)

// MsToFrames converts a millisecond duration to ticks at the given rate.
func MsToFrames(ms, tickRate int) int {
	return int(math.Round(float64(ms) * float64(tickRate) / 1000))
}

// DefaultCombat returns the stock combat tuning.
func DefaultCombat() Combat {
	const fps = 60

	return Combat{
		FrameTimings: map[string]FrameTiming{
			MoveLightPunch: {Startup: 3, Active: 2, Recovery: 5, Total: 10, EarlyCancel: true},
			MoveHeavyPunch: {Startup: 8, Active: 4, Recovery: 15, Total: 27},
			MoveLightKick:  {Startup: 4, Active: 3, Recovery: 6, Total: 13, EarlyCancel: true},
			MoveHeavyKick:  {Startup: 10, Active: 5, Recovery: 18, Total: 33},
			MoveSpecial:    {Startup: 12, Active: 10, Recovery: 20, Total: 42},
			MoveUltimate:   {Startup: 20, Active: 15, Recovery: 30, Total: 65},
			MoveDash:       {Startup: 2, Active: 8, Recovery: 5, Total: 15, EarlyCancel: true},
		},
		DefaultDuration: 10,
		Moves: map[string]MoveDefinition{
			MoveLightPunch: {Damage: 5, CooldownFrames: MsToFrames(300, fps), HitboxWidth: 60, HitboxHeight: 20, Knockback: 5, StunFrames: 10},
			MoveHeavyPunch: {Damage: 12, CooldownFrames: MsToFrames(700, fps), HitboxWidth: 70, HitboxHeight: 40, Knockback: 15, StunFrames: 20},
			MoveLightKick:  {Damage: 8, CooldownFrames: MsToFrames(500, fps), HitboxWidth: 80, HitboxHeight: 30, Knockback: 10, StunFrames: 15},
			MoveHeavyKick:  {Damage: 15, CooldownFrames: MsToFrames(900, fps), HitboxWidth: 90, HitboxHeight: 40, Knockback: 20, StunFrames: 25},
			MoveSpecial:    {Damage: 20, CooldownFrames: MsToFrames(2000, fps), HitboxWidth: 120, HitboxHeight: 60, Knockback: 25, StunFrames: 30},
			MoveUltimate:   {Damage: 80, CooldownFrames: MsToFrames(5000, fps), HitboxWidth: 200, HitboxHeight: 100, Knockback: 50, StunFrames: 40},
		},
		Archetypes: map[string]Archetype{
			"KHALID":  {Name: "KHALID", Speed: 6, JumpPower: -19, MaxHealth: 300, DamageMult: 1.0, Special: SpecialSpinningKick},
			"EDUARDO": {Name: "EDUARDO", Speed: 5, JumpPower: -16, MaxHealth: 280, DamageMult: 0.9, Special: SpecialPizzaThrow},
			"HASAN":   {Name: "HASAN", Speed: 5, JumpPower: -18, MaxHealth: 300, DamageMult: 1.1, Special: SpecialFireball},
			"HAMMOUD": {Name: "HAMMOUD", Speed: 7, JumpPower: -20, MaxHealth: 260, DamageMult: 0.85, Special: SpecialCircuitBoard},
		},

		GlobalDamageMult: 0.6,
		UltimateDamage:   80,

		MaxComboHits:       5,
		ComboScaling:       map[int]float64{1: 1.0, 2: 1.0, 3: 1.0, 4: 0.8, 5: 0.8},
		ComboWindowFrames:  MsToFrames(1500, fps),
		AnnouncementFrames: MsToFrames(2000, fps),
		HistorySize:        10,
		ComboStrings: []ComboString{
			{Name: "TORNADO KICK", Sequence: []string{MoveLightKick, MoveLightKick, MoveHeavyKick}, Bonus: 0.3},
			{Name: "FLYING AXE KICK", Sequence: []string{MoveJump, MoveHeavyKick}, Bonus: 0.3},
			{Name: "PIZZA BARRAGE", Sequence: []string{MoveLightPunch, MoveLightPunch, MoveSpecial}, Bonus: 0.3},
			{Name: "MEGA SLICE", Sequence: []string{MoveHeavyPunch, MoveSpecial}, Bonus: 0.3},
			{Name: "FLAME UPPERCUT", Sequence: []string{MoveLightKick, MoveHeavyPunch, MoveSpecial}, Bonus: 0.3},
			{Name: "BINARY RUSH", Sequence: []string{MoveLightPunch, MoveLightPunch, MoveLightKick, MoveHeavyKick}, Bonus: 0.3},
		},

		BlockEffectiveness: []float64{1.0, 0.5, 0.25, 0.0},
		BlockMaxFrames:     MsToFrames(3000, fps),
		BlockStunFrames:    12,
		PushblockDistance:  30,

		ParryWindowFrames:   6,
		ParryCooldownFrames: 300,

		SuperMeterMax:     100,
		SuperGainOnHit:    8,
		SuperGainOnDamage: 4,
		SuperGainOnBlock:  2,
		SuperGainOnParry:  8,

		SpecialCooldownFrames: MsToFrames(4000, fps),
		DashFrames:            8,
		DashCooldownFrames:    MsToFrames(500, fps),
		DashSpeedMult:         2.5,

		MotionBufferSize:   60,
		MotionWindowFrames: 20,

		Projectiles: ProjectileTuning{
			Size:          20,
			MaxAge:        600,
			BoundsMargin:  50,
			MaxActive:     30,
			Knockback:     10,
			StunFrames:    15,
			ArcGravity:    0.2,
			PizzaDamage:   6,
			PizzaUltDmg:   12,
			SineSpeed:     8,
			SineAmplitude: 30,
			SineWave:      50,
			FireballDmg:   15,
			FireballUlt:   40,
			HomingSpeed:   4,
			HomingTurn:    0.05,
			CircuitDmg:    20,
			CircuitUlt:    25,
		},
		Spin: SpinTuning{
			Duration:         60,
			UltimateDuration: 90,
			HitDamage:        8,
			MaxHits:          3,
			HitInterval:      20,
			Travel:           150,
			Reach:            30,
			Knockback:        5,
			StunFrames:       10,
		},
	}
}

// Archetype looks up an archetype by name (case-insensitive).
// Unknown names fall back to the first archetype in name order.
func (c Combat) Archetype(name string) (Archetype, bool) {
	if a, ok := c.Archetypes[strings.ToUpper(name)]; ok {
		return a, true
	}
	if names := c.ArchetypeNames(); len(names) > 0 {
		return c.Archetypes[names[0]], false
	}
	return Archetype{Name: strings.ToUpper(name), Speed: 5, JumpPower: -18, MaxHealth: 300, DamageMult: 1}, false
}

// ArchetypeNames returns the archetype names in sorted order.
func (c Combat) ArchetypeNames() []string {
	names := make([]string, 0, len(c.Archetypes))
	for n := range c.Archetypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AttacksFor builds the immutable attack table of one archetype.
// Damage is base * archetype multiplier * global scale; the ultimate
// ignores the archetype multiplier.
func (c Combat) AttacksFor(a Archetype) map[string]AttackDefinition {
	attacks := make(map[string]AttackDefinition, len(c.Moves))
	for name, m := range c.Moves {
		dmg := m.Damage * a.DamageMult * c.GlobalDamageMult
		if name == MoveUltimate {
			dmg = c.UltimateDamage * c.GlobalDamageMult
		}
		attacks[name] = AttackDefinition{
			Name:           name,
			Damage:         dmg,
			CooldownFrames: m.CooldownFrames,
			HitboxWidth:    m.HitboxWidth,
			HitboxHeight:   m.HitboxHeight,
			Knockback:      m.Knockback,
			StunFrames:     m.StunFrames,
		}
	}
	return attacks
}

// ComboMultiplier returns the scaling for the n-th hit of a combo.
func (c Combat) ComboMultiplier(hits int) float64 {
	if m, ok := c.ComboScaling[hits]; ok {
		return m
	}
	return 1.0
}

// BlockLevel returns the damage reduction for a given block usage count.
func (c Combat) BlockLevel(usage int) float64 {
	if len(c.BlockEffectiveness) == 0 {
		return 0
	}
	if usage < 0 {
		usage = 0
	}
	if usage >= len(c.BlockEffectiveness) {
		usage = len(c.BlockEffectiveness) - 1
	}
	return c.BlockEffectiveness[usage]
}
