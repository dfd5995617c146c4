package game

import "brawler/internal/config"

// Tick advances the fighter one frame.
// It returns the effect spawned by a special or ultimate this frame, or nil.
// combos may be nil, in which case hits are applied unscaled.
func (f *Fighter) Tick(now uint64, opponent *Fighter, in InputSource, combos *ComboTracker) *SpecialEffect {
	if in == nil {
		in = noInput
	}
	f.tickTimers()

	// Stunned fighters only fall.
	if f.hitStun > 0 {
		f.hitStun--
		f.applyGravity()
		f.clampX()
		return nil
	}
	if f.blockStun > 0 {
		f.blockStun--
		f.applyGravity()
		f.clampX()
		return nil
	}

	if f.attack != nil {
		f.advanceAttack(now, opponent, combos)
	}

	if f.dashFrames == 0 && f.attack == nil && f.dashCooldown <= 0 && in.IsActionPressed(ActionDash) {
		f.dashFrames = f.cfg.DashFrames
		f.dashDir = f.direction()
		f.dashCooldown = f.cfg.DashCooldownFrames
		if f.blocking {
			f.endBlock()
		}
		f.pushHistory(config.MoveDash)
	}
	if f.dashFrames > 0 {
		f.dashFrames--
		f.moving = true
		f.X += f.dashDir * f.speed * f.cfg.DashSpeedMult
		f.applyGravity()
		f.clampX()
		return nil
	}

	f.motion.record(directionOf(in, f.FacingRight), now)

	// guard is read before walking turns the fighter around
	guard := f.wantsGuard(in, opponent)
	f.moving = false
	if f.attack == nil || f.timings.CanAct(f.attack.move, f.attack.elapsed) {
		if in.IsActionPressed(ActionLeft) {
			f.X -= f.speed
			f.FacingRight = false
			f.moving = true
		}
		if in.IsActionPressed(ActionRight) {
			f.X += f.speed
			f.FacingRight = true
			f.moving = true
		}
		if in.IsActionPressed(ActionJump) && f.grounded {
			f.VY = f.jumpPower
			f.grounded = false
			f.pushHistory(config.MoveJump)
			if combos != nil {
				combos.RecordInput(f.ID, now, config.MoveJump)
			}
		}
	}

	f.applyGravity()
	f.clampX()
	f.updateBlock(guard && f.grounded)

	if f.attack != nil {
		return nil
	}
	return f.selectAttack(now, opponent, in, combos)
}

func (f *Fighter) tickTimers() {
	if f.attackCooldown > 0 {
		f.attackCooldown--
	}
	if f.specialCooldown > 0 {
		f.specialCooldown--
	}
	if f.dashCooldown > 0 {
		f.dashCooldown--
	}
	if f.parryCooldown > 0 {
		f.parryCooldown--
	}
	if f.parryWindow > 0 {
		f.parryWindow--
	}
}

// wantsGuard reports whether input asks for a block: holding away from the
// opponent, or down, while grounded and not attacking.
func (f *Fighter) wantsGuard(in InputSource, opponent *Fighter) bool {
	if !f.grounded || f.attack != nil {
		return false
	}
	if in.IsActionPressed(ActionDown) {
		return true
	}
	away := ActionLeft
	if opponent != nil && opponent.X < f.X {
		away = ActionRight
	} else if opponent == nil && !f.FacingRight {
		away = ActionRight
	}
	return in.IsActionPressed(away)
}

// updateBlock runs the block episode. Effectiveness is fixed when an
// episode starts; usage grows when it ends by release or timeout.
func (f *Fighter) updateBlock(guard bool) {
	if !guard {
		if f.blocking {
			f.endBlock()
		}
		return
	}
	if !f.blocking {
		f.blocking = true
		f.blockFrames = 0
		f.blockEffectiveness = f.cfg.BlockLevel(f.blockUsage)
		return
	}
	f.blockFrames++
	if f.cfg.BlockMaxFrames > 0 && f.blockFrames > f.cfg.BlockMaxFrames {
		f.endBlock()
	}
}

func (f *Fighter) endBlock() {
	f.blocking = false
	f.blockFrames = 0
	f.blockUsage++
}

// selectAttack fires at most one transition, in priority order:
// ultimate > parry > motion special > special > heavy kick > heavy punch >
// light kick > light punch.
func (f *Fighter) selectAttack(now uint64, opponent *Fighter, in InputSource, combos *ComboTracker) *SpecialEffect {
	if f.dashFrames > 0 {
		return nil
	}

	if !f.blocking && f.attackCooldown <= 0 &&
		f.superMeter >= f.cfg.SuperMeterMax &&
		in.IsActionPressed(ActionSpecial) && in.IsActionPressed(ActionHeavyPunch) {
		return f.startSpecial(now, opponent, true)
	}

	if in.IsActionPressed(ActionParry) {
		f.ActivateParry()
		return nil
	}

	if f.blocking || f.attackCooldown > 0 {
		return nil
	}

	punch := in.IsActionPressed(ActionLightPunch) || in.IsActionPressed(ActionHeavyPunch)
	switch {
	case punch && f.motion.matches(QuarterCircleForward, now, f.cfg.MotionWindowFrames):
		f.motion.clear()
		return f.startSpecial(now, opponent, false)
	case in.IsActionPressed(ActionSpecial):
		return f.startSpecial(now, opponent, false)
	case in.IsActionPressed(ActionHeavyKick):
		f.startAttack(now, config.MoveHeavyKick, opponent, combos)
	case in.IsActionPressed(ActionHeavyPunch):
		f.startAttack(now, config.MoveHeavyPunch, opponent, combos)
	case in.IsActionPressed(ActionLightKick):
		f.startAttack(now, config.MoveLightKick, opponent, combos)
	case in.IsActionPressed(ActionLightPunch):
		f.startAttack(now, config.MoveLightPunch, opponent, combos)
	}
	return nil
}

// ActivateParry opens the parry window if allowed.
func (f *Fighter) ActivateParry() bool {
	if f.attack != nil || f.parryCooldown > 0 {
		return false
	}
	f.parryWindow = f.cfg.ParryWindowFrames
	f.parryCooldown = f.cfg.ParryCooldownFrames
	return true
}

// StartAttack begins a melee move if the fighter is free to act.
// Used by scripted drivers; input-driven attacks go through Tick.
func (f *Fighter) StartAttack(now uint64, move string, opponent *Fighter, combos *ComboTracker) bool {
	if f.attack != nil || f.blocking || f.attackCooldown > 0 || f.hitStun > 0 || f.blockStun > 0 {
		return false
	}
	return f.startAttack(now, move, opponent, combos)
}

func (f *Fighter) startAttack(now uint64, move string, opponent *Fighter, combos *ComboTracker) bool {
	def, ok := f.attacks[move]
	if !ok {
		return false
	}
	f.attack = &activeAttack{move: move}
	f.attackCooldown = def.CooldownFrames
	f.pushHistory(move)
	if f.timings.IsActive(move, 0) {
		f.checkHit(now, opponent, combos)
	}
	return true
}

// startSpecial enters the special or ultimate attack and builds its effect.
// A special on cooldown is dropped.
func (f *Fighter) startSpecial(now uint64, opponent *Fighter, ultimate bool) *SpecialEffect {
	move := config.MoveSpecial
	if ultimate {
		move = config.MoveUltimate
	} else if f.specialCooldown > 0 {
		return nil
	}
	def := f.attacks[move]

	f.attack = &activeAttack{move: move, special: true}
	f.attackCooldown = def.CooldownFrames
	f.pushHistory(move)
	if ultimate {
		f.superMeter = 0
	} else {
		f.specialCooldown = f.cfg.SpecialCooldownFrames
	}
	return newSpecialEffect(now, f, opponent, ultimate)
}

func (f *Fighter) advanceAttack(now uint64, opponent *Fighter, combos *ComboTracker) {
	a := f.attack
	a.elapsed++
	if a.elapsed >= f.timings.Duration(a.move) {
		f.attack = nil
		return
	}
	if !a.connected && !a.special && f.timings.IsActive(a.move, a.elapsed) {
		f.checkHit(now, opponent, combos)
	}
}

// checkHit tests the active move's hitbox against the opponent's body.
func (f *Fighter) checkHit(now uint64, opponent *Fighter, combos *ComboTracker) {
	if opponent == nil || !opponent.alive || f.attack == nil {
		return
	}
	def := f.attacks[f.attack.move]
	box := AttackHitbox(f.Body(), f.FacingRight, def.HitboxWidth, def.HitboxHeight)
	if !box.Overlaps(opponent.Body()) {
		return
	}
	f.attack.connected = true
	f.Deliver(now, opponent, combos, Hit{
		Move:        def.Name,
		Damage:      def.Damage,
		Knockback:   def.Knockback,
		Stun:        def.StunFrames,
		FacingRight: f.FacingRight,
	})
}
