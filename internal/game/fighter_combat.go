package game

// HitResult says which defense branch handled a hit.
type HitResult uint8

const (
	HitNormal HitResult = iota
	HitBlocked
	HitParried
)

// String returns the result's wire name.
func (r HitResult) String() string {
	switch r {
	case HitNormal:
		return "normal"
	case HitBlocked:
		return "blocked"
	case HitParried:
		return "parried"
	default:
		return "unknown"
	}
}

// HitOutcome is what TakeDamage did with an incoming hit.
type HitOutcome struct {
	Result HitResult
	Damage float64 // health actually removed
	KO     bool    // this hit took the defender to 0
}

// Hit is one incoming hit before defense is applied.
type Hit struct {
	Move        string
	Damage      float64
	Knockback   float64
	Stun        int
	FacingRight bool // attacker facing, sets knockback and pushblock direction
}

// HitReport records a delivered hit for events, metrics and tests.
type HitReport struct {
	Tick     uint64
	Attacker FighterID
	Defender FighterID
	Move     string
	Outcome  HitOutcome
	Combo    ComboResult
}

// TakeDamage applies an incoming hit. Exactly one branch applies,
// checked in order: parry, block, normal hit.
func (f *Fighter) TakeDamage(now uint64, combos *ComboTracker, amount, knockback float64, stun int, attackerFacingRight bool) HitOutcome {
	if !f.alive {
		return HitOutcome{Result: HitNormal}
	}
	if amount < 0 {
		amount = 0
	}
	dir := -1.0
	if attackerFacingRight {
		dir = 1
	}

	if f.parryWindow > 0 {
		f.gainMeter(f.cfg.SuperGainOnParry)
		return HitOutcome{Result: HitParried}
	}

	if f.blocking {
		dmg := amount * (1 - f.blockEffectiveness)
		out := f.loseHealth(dmg)
		out.Result = HitBlocked
		f.blockStun = f.cfg.BlockStunFrames
		f.X += f.cfg.PushblockDistance * dir
		f.clampX()
		f.gainMeter(f.cfg.SuperGainOnBlock)
		return out
	}

	out := f.loseHealth(amount)
	out.Result = HitNormal
	if combos != nil {
		combos.Reset(f.ID, now)
	}
	f.hitStun = stun
	f.attack = nil
	f.dashFrames = 0
	f.gainMeter(f.cfg.SuperGainOnDamage)
	f.X += knockback * dir * 2
	f.clampX()
	return out
}

func (f *Fighter) loseHealth(amount float64) HitOutcome {
	before := f.health
	f.health -= amount
	if f.health <= 0 {
		f.health = 0
		f.alive = false
	}
	return HitOutcome{Damage: before - f.health, KO: before > 0 && f.health == 0}
}

// Deliver lands a hit from f on target: a parried hit skips the combo and
// gives the attacker nothing, anything else is scaled by the combo tracker
// and credits the attacker's meter.
func (f *Fighter) Deliver(now uint64, target *Fighter, combos *ComboTracker, h Hit) HitReport {
	rep := HitReport{Tick: now, Attacker: f.ID, Defender: target.ID, Move: h.Move}

	if target.ParryActive() {
		rep.Outcome = target.TakeDamage(now, combos, h.Damage, h.Knockback, h.Stun, h.FacingRight)
		f.reports = append(f.reports, rep)
		return rep
	}

	damage := h.Damage
	if combos != nil {
		rep.Combo = combos.RecordHit(f.ID, now, h.Damage, h.Move)
		damage = rep.Combo.Damage
	} else {
		rep.Combo = ComboResult{Hits: 1, Multiplier: 1, Damage: damage, TotalDamage: damage}
	}
	f.gainMeter(f.cfg.SuperGainOnHit)
	rep.Outcome = target.TakeDamage(now, combos, damage, h.Knockback, h.Stun, h.FacingRight)
	f.reports = append(f.reports, rep)
	return rep
}
