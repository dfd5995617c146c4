package game

import "brawler/internal/config"

// SpecialEffect is what a special or ultimate spawns: projectiles, a
// multi-hit spin, or nothing for archetypes without a special.
type SpecialEffect struct {
	Owner       FighterID
	Move        string // config.MoveSpecial or config.MoveUltimate
	Special     string // archetype special id
	Projectiles []*Projectile
	Spin        *SpinningKick
}

// newSpecialEffect builds the archetype's special. Projectiles launch from
// the facing edge at body center height.
func newSpecialEffect(now uint64, f *Fighter, opponent *Fighter, ultimate bool) *SpecialEffect {
	cfg := f.cfg
	pt := cfg.Projectiles
	dir := f.direction()
	startX := f.X
	if f.FacingRight {
		startX = f.Body().Right()
	}
	_, startY := f.Center()

	var target FighterID
	if opponent != nil {
		target = opponent.ID
	}

	move := config.MoveSpecial
	if ultimate {
		move = config.MoveUltimate
	}
	fx := &SpecialEffect{Owner: f.ID, Move: move, Special: f.archetype.Special}

	switch f.archetype.Special {
	case config.SpecialSpinningKick:
		duration := cfg.Spin.Duration
		if ultimate {
			duration = cfg.Spin.UltimateDuration
		}
		fx.Spin = NewSpinningKick(f.ID, target, duration, cfg.Spin)

	case config.SpecialPizzaThrow:
		count, vx, vy0, vyStep, delayStep, dmg := 3, 5.0, -8.0, 2.0, 5, pt.PizzaDamage
		if ultimate {
			count, vx, vy0, vyStep, delayStep, dmg = 6, 7.0, -10.0, 3.0, 3, pt.PizzaUltDmg
		}
		for i := 0; i < count; i++ {
			fx.Projectiles = append(fx.Projectiles, NewArcProjectile(
				f.ID, target, startX, startY,
				vx*dir, vy0+float64(i)*vyStep, dmg, i*delayStep, pt))
		}

	case config.SpecialFireball:
		dmg := pt.FireballDmg
		if ultimate {
			dmg = pt.FireballUlt
		}
		fx.Projectiles = append(fx.Projectiles, NewSineProjectile(f.ID, target, startX, startY, dir, dmg, pt))

	case config.SpecialCircuitBoard:
		if ultimate {
			for i := 0; i < 3; i++ {
				y := startY - 30 + float64(i)*30
				fx.Projectiles = append(fx.Projectiles, NewHomingProjectile(f.ID, target, startX, y, dir, pt.CircuitUlt, pt))
			}
		} else {
			fx.Projectiles = append(fx.Projectiles, NewHomingProjectile(f.ID, target, startX, startY, dir, pt.CircuitDmg, pt))
		}

	default:
		return nil
	}
	return fx
}

// SpinningKick is a multi-hit special that carries its owner forward.
type SpinningKick struct {
	Owner       FighterID
	Target      FighterID
	Duration    int
	Frame       int
	Damage      float64
	MaxHits     int
	Hits        int
	HitInterval int
	cooldown    int
	step        float64 // forward travel per frame
	reach       float64
	knockback   float64
	stun        int
	Active      bool
}

// NewSpinningKick creates a spin lasting duration frames.
func NewSpinningKick(owner, target FighterID, duration int, t config.SpinTuning) *SpinningKick {
	step := 0.0
	if t.Duration > 0 {
		step = t.Travel / float64(t.Duration)
	}
	return &SpinningKick{
		Owner:       owner,
		Target:      target,
		Duration:    duration,
		Damage:      t.HitDamage,
		MaxHits:     t.MaxHits,
		HitInterval: t.HitInterval,
		step:        step,
		reach:       t.Reach,
		knockback:   t.Knockback,
		stun:        t.StunFrames,
		Active:      true,
	}
}

// CanHit reports whether another hit may land this frame.
func (s *SpinningKick) CanHit() bool {
	return s.Active && s.Hits < s.MaxHits && s.cooldown <= 0
}

// Update moves the owner and lands a hit on target when in reach.
// Returns the hit report (nil when nothing connected) and whether the spin
// is still running.
func (s *SpinningKick) Update(now uint64, owner, target *Fighter, combos *ComboTracker) (*HitReport, bool) {
	if !s.Active {
		return nil, false
	}
	s.Frame++
	if s.cooldown > 0 {
		s.cooldown--
	}
	if owner == nil || !owner.alive {
		s.Active = false
		return nil, false
	}

	owner.X += s.step * owner.direction()
	owner.clampX()

	var rep *HitReport
	if target != nil && target.alive && s.CanHit() &&
		owner.Body().Inflate(s.reach, 0).Overlaps(target.Body()) {
		r := owner.Deliver(now, target, combos, Hit{
			Move:        config.MoveSpecial,
			Damage:      s.Damage,
			Knockback:   s.knockback,
			Stun:        s.stun,
			FacingRight: owner.FacingRight,
		})
		s.Hits++
		s.cooldown = s.HitInterval
		rep = &r
	}

	if s.Frame >= s.Duration {
		s.Active = false
	}
	return rep, s.Active
}
