package ai

import (
	"log"
	"math"
	"math/rand"

	"brawler/internal/config"
	"brawler/internal/game"
)

// Distance bands, in pixels between body centers.
const (
	closeRange     = 150.0
	midRange       = 400.0
	targetDistance = 200.0
	meleeRange     = 100.0
	comboRange     = 120.0
	threatRange    = 100.0 // incoming projectile reaction distance
	lowHealth      = 0.3
)

// Range classifies the distance to the opponent.
type Range uint8

const (
	RangeClose Range = iota
	RangeMid
	RangeFar
)

func (r Range) String() string {
	switch r {
	case RangeClose:
		return "close"
	case RangeMid:
		return "mid"
	default:
		return "far"
	}
}

// ClassifyRange buckets a center-to-center distance.
func ClassifyRange(distance float64) Range {
	switch {
	case distance < closeRange:
		return RangeClose
	case distance < midRange:
		return RangeMid
	}
	return RangeFar
}

var meleeChoices = []struct {
	action game.Action
	weight float64
}{
	{game.ActionLightPunch, 0.3},
	{game.ActionHeavyPunch, 0.3},
	{game.ActionLightKick, 0.2},
	{game.ActionHeavyKick, 0.2},
}

// Options tune a controller beyond its profile.
type Options struct {
	TickRate      int
	SuperMeterMax float64
	ComboStrings  []config.ComboString // sequences the combo strategy tries
}

// Controller is a reactive AI opponent. It implements game.Controller.
type Controller struct {
	profile       Profile
	rng           *rand.Rand
	reactionTicks uint64
	specialGate   uint64
	superMax      float64

	strategy *strategyMachine
	nextRoll uint64

	decided      bool
	lastDecision uint64
	lastAttack   uint64
	intent       game.InputState

	combos [][]game.Action
	queue  []game.Action
}

// NewController creates an AI with its own seeded RNG.
func NewController(profile Profile, rng *rand.Rand, opts Options) *Controller {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.SuperMeterMax <= 0 {
		opts.SuperMeterMax = 100
	}
	if opts.ComboStrings == nil {
		opts.ComboStrings = config.DefaultCombat().ComboStrings
	}
	c := &Controller{
		profile:       profile,
		rng:           rng,
		reactionTicks: uint64(profile.ReactionTicks(opts.TickRate)),
		specialGate:   uint64(config.MsToFrames(2000, opts.TickRate)),
		superMax:      opts.SuperMeterMax,
		strategy:      newStrategyMachine(),
		combos:        comboActions(opts.ComboStrings),
	}
	log.Printf("🤖 AI ready: %s (reaction %d ticks)", profile.Difficulty, c.reactionTicks)
	return c
}

// comboActions converts combo strings to button sequences, skipping any
// move that has no button.
func comboActions(strings []config.ComboString) [][]game.Action {
	out := make([][]game.Action, 0, len(strings))
	for _, cs := range strings {
		seq := make([]game.Action, 0, len(cs.Sequence))
		ok := true
		for _, move := range cs.Sequence {
			a, found := game.ParseAction(move)
			if !found {
				ok = false
				break
			}
			seq = append(seq, a)
		}
		if ok && len(seq) > 0 {
			out = append(out, seq)
		}
	}
	return out
}

// Profile returns the controller's difficulty profile.
func (c *Controller) Profile() Profile { return c.profile }

// Strategy returns the current strategy.
func (c *Controller) Strategy() Strategy { return c.strategy.current() }

// StrategyChanges counts strategy transitions so far.
func (c *Controller) StrategyChanges() int { return c.strategy.changes }

// Intent implements game.Controller using the controller's own RNG.
func (c *Controller) Intent(now uint64, sit game.Situation) game.InputSource {
	return c.Decide(c.rng, now, sit)
}

// Decide returns the input for this tick. Between decisions the last
// intent is repeated.
func (c *Controller) Decide(rng *rand.Rand, now uint64, sit game.Situation) game.InputState {
	if now >= c.nextRoll {
		c.strategy.set(rollStrategy(rng))
		c.nextRoll = now + nextRollDelay(rng)
	}

	if c.decided && now-c.lastDecision < c.reactionTicks {
		return c.intent
	}
	c.decided = true
	c.lastDecision = now
	c.intent = c.decide(rng, now, sit)
	return c.intent
}

func centerX(v game.FighterView) float64 { return v.X + v.W/2 }

func (c *Controller) decide(rng *rand.Rand, now uint64, sit game.Situation) game.InputState {
	self, opp := sit.Self, sit.Opponent
	if !self.Alive {
		c.queue = c.queue[:0]
		return 0
	}
	dist := math.Abs(centerX(self) - centerX(opp))

	if self.MaxHealth > 0 && self.Health < self.MaxHealth*lowHealth {
		c.strategy.set(StrategyDefensive)
	} else if opp.MaxHealth > 0 && opp.Health < opp.MaxHealth*lowHealth {
		c.strategy.set(StrategyAggressive)
	}

	toward, away := game.ActionRight, game.ActionLeft
	if centerX(opp) < centerX(self) {
		toward, away = game.ActionLeft, game.ActionRight
	}

	// A queued combo keeps going regardless of strategy while in reach.
	if len(c.queue) > 0 {
		if dist > targetDistance || !opp.Alive {
			c.queue = c.queue[:0]
		} else if !self.Attacking && self.AttackCooldown <= 0 {
			next := c.queue[0]
			c.queue = c.queue[1:]
			c.lastAttack = now
			return game.Press(next)
		} else {
			return 0
		}
	}

	if !opp.Alive {
		return 0
	}

	// Ultimate whenever the meter is full and the opponent is in reach.
	if self.SuperMeter >= c.superMax && dist < targetDistance && !self.Attacking {
		c.lastAttack = now
		return game.Press(game.ActionSpecial, game.ActionHeavyPunch)
	}

	var in game.InputState
	switch c.strategy.current() {
	case StrategyAggressive:
		in = in.With(toward)
		if ClassifyRange(dist) == RangeFar && self.DashCooldown <= 0 {
			in = in.With(game.ActionDash)
		}
		if dist < targetDistance && rng.Float64() < c.profile.Aggression {
			in |= c.attack(rng, now, dist)
		}

	case StrategyDefensive:
		if dist < targetDistance {
			in = in.With(away) // retreats and guards at once
		}
		in |= c.react(rng, sit, dist)

	case StrategyCombo:
		if dist < comboRange && len(c.combos) > 0 && rng.Float64() < c.profile.ComboSkill {
			seq := c.combos[rng.Intn(len(c.combos))]
			c.queue = append(c.queue[:0], seq...)
			next := c.queue[0]
			c.queue = c.queue[1:]
			c.lastAttack = now
			return game.Press(next)
		}
		if dist > comboRange {
			in = in.With(toward)
		}

	default: // neutral
		if dist > targetDistance+50 {
			in = in.With(toward)
		} else if dist < targetDistance-50 {
			in = in.With(away)
		}
		if dist < closeRange && rng.Float64() < c.profile.Aggression*0.5 {
			in |= c.attack(rng, now, dist)
		} else if dist > targetDistance && dist < midRange && rng.Float64() < 0.3 {
			in |= c.special(now)
		}
		in |= c.react(rng, sit, dist)
	}
	return in
}

// attack picks a melee button up close or tries the special at mid range.
func (c *Controller) attack(rng *rand.Rand, now uint64, dist float64) game.InputState {
	if dist < meleeRange {
		r := rng.Float64()
		acc := 0.0
		for _, mc := range meleeChoices {
			acc += mc.weight
			if r < acc {
				c.lastAttack = now
				return game.Press(mc.action)
			}
		}
		c.lastAttack = now
		return game.Press(game.ActionHeavyKick)
	}
	if dist < 300 && rng.Float64() < 0.4 {
		return c.special(now)
	}
	return 0
}

// special presses the special button if the AI's own gate allows it.
func (c *Controller) special(now uint64) game.InputState {
	if now-c.lastAttack <= c.specialGate {
		return 0
	}
	c.lastAttack = now
	return game.Press(game.ActionSpecial)
}

// react guards against an opponent attack and parries or jumps incoming
// projectiles.
func (c *Controller) react(rng *rand.Rand, sit game.Situation, dist float64) game.InputState {
	var in game.InputState
	if sit.Opponent.Attacking && dist < closeRange && sit.Self.Grounded {
		in = in.With(game.ActionDown)
	}
	x := centerX(sit.Self)
	for _, p := range sit.Projectiles {
		if p.Owner == sit.Self.ID || math.Abs(p.X-x) >= threatRange {
			continue
		}
		if sit.Self.ParryCooldown <= 0 && rng.Float64() < c.profile.ParryChance {
			return in.With(game.ActionParry)
		}
		if sit.Self.Grounded && rng.Float64() < 0.1 {
			in = in.With(game.ActionJump)
		}
		break
	}
	return in
}
