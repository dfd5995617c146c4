package game

import (
	"math"

	"brawler/internal/config"
)

// ProjectileKind tags the trajectory variant of a projectile.
type ProjectileKind uint8

const (
	ProjectileArc    ProjectileKind = iota // constant vx, gravity on vy
	ProjectileSine                         // y is a function of distance traveled
	ProjectileHoming                       // heading turns toward a live target
)

// String returns the kind's wire name.
func (k ProjectileKind) String() string {
	switch k {
	case ProjectileArc:
		return "arc"
	case ProjectileSine:
		return "sine"
	case ProjectileHoming:
		return "homing"
	default:
		return "unknown"
	}
}

// Projectile is a moving hit owned by a fighter id, never by a *Fighter.
type Projectile struct {
	ID     uint64
	Kind   ProjectileKind
	Name   string // "pizza_slice", "fireball", "circuit_board"
	Owner  FighterID
	Target FighterID

	// Position is the projectile's center
	X, Y   float64
	VX, VY float64

	Damage    float64
	Knockback float64
	Stun      int

	Active bool
	Age    int
	MaxAge int
	Delay  int // frames before the projectile appears and can hit
	Size   float64
	Margin float64 // distance past the stage edge before removal

	// Arc
	Gravity float64

	// Sine
	StartY     float64
	Amplitude  float64
	Wavelength float64
	Distance   float64

	// Homing
	Speed    float64
	TurnRate float64
}

// TargetLocator resolves a fighter id to the center of its body.
type TargetLocator interface {
	Locate(id FighterID) (x, y float64, alive bool)
}

func newProjectile(kind ProjectileKind, name string, owner, target FighterID, x, y float64, t config.ProjectileTuning) *Projectile {
	return &Projectile{
		Kind:      kind,
		Name:      name,
		Owner:     owner,
		Target:    target,
		X:         x,
		Y:         y,
		Active:    true,
		MaxAge:    t.MaxAge,
		Size:      t.Size,
		Margin:    t.BoundsMargin,
		Knockback: t.Knockback,
		Stun:      t.StunFrames,
	}
}

// NewArcProjectile creates a thrown object under constant gravity.
func NewArcProjectile(owner, target FighterID, x, y, vx, vy, damage float64, delay int, t config.ProjectileTuning) *Projectile {
	p := newProjectile(ProjectileArc, "pizza_slice", owner, target, x, y, t)
	p.VX, p.VY = vx, vy
	p.Damage = damage
	p.Delay = delay
	p.Gravity = t.ArcGravity
	return p
}

// NewSineProjectile creates a projectile that weaves around its start height.
func NewSineProjectile(owner, target FighterID, x, y, dir, damage float64, t config.ProjectileTuning) *Projectile {
	p := newProjectile(ProjectileSine, "fireball", owner, target, x, y, t)
	p.VX = t.SineSpeed * dir
	p.Damage = damage
	p.StartY = y
	p.Amplitude = t.SineAmplitude
	p.Wavelength = t.SineWave
	return p
}

// NewHomingProjectile creates a projectile that steers toward target.
func NewHomingProjectile(owner, target FighterID, x, y, dir, damage float64, t config.ProjectileTuning) *Projectile {
	p := newProjectile(ProjectileHoming, "circuit_board", owner, target, x, y, t)
	p.Speed = t.HomingSpeed
	p.TurnRate = t.HomingTurn
	p.VX = p.Speed * dir
	p.Damage = damage
	return p
}

// Collidable reports whether the projectile can hit this tick.
func (p *Projectile) Collidable() bool {
	return p.Active && p.Delay <= 0
}

// Rect returns the collision rectangle.
func (p *Projectile) Rect() Rect {
	return CenteredRect(p.X, p.Y, p.Size, p.Size)
}

// Update advances the projectile one frame.
// Returns false once it should be removed.
func (p *Projectile) Update(targets TargetLocator, stage config.StageConfig) bool {
	if !p.Active {
		return false
	}

	p.Age++
	if p.MaxAge > 0 && p.Age > p.MaxAge {
		p.Active = false
		return false
	}

	switch p.Kind {
	case ProjectileArc:
		if p.Delay > 0 {
			p.Delay--
			return true
		}
		p.X += p.VX
		p.VY += p.Gravity
		p.Y += p.VY

	case ProjectileSine:
		p.X += p.VX
		p.Distance += math.Abs(p.VX)
		if p.Wavelength != 0 {
			p.Y = p.StartY + p.Amplitude*math.Sin(p.Distance/p.Wavelength)
		}

	case ProjectileHoming:
		if targets != nil {
			if tx, ty, alive := targets.Locate(p.Target); alive {
				p.steer(tx, ty)
			}
		}
		p.X += p.VX
		p.Y += p.VY
	}

	if p.outOfBounds(stage) {
		p.Active = false
		return false
	}
	return true
}

// steer turns the heading toward (tx, ty) by at most TurnRate radians.
func (p *Projectile) steer(tx, ty float64) {
	heading := math.Atan2(p.VY, p.VX)
	bearing := math.Atan2(ty-p.Y, tx-p.X)
	diff := normalizeAngle(bearing - heading)
	if diff > p.TurnRate {
		diff = p.TurnRate
	} else if diff < -p.TurnRate {
		diff = -p.TurnRate
	}
	heading += diff
	p.VX = math.Cos(heading) * p.Speed
	p.VY = math.Sin(heading) * p.Speed
}

func (p *Projectile) outOfBounds(stage config.StageConfig) bool {
	margin := p.Margin
	if margin <= 0 {
		margin = 50
	}
	if p.X < -margin || p.X > stage.Width+margin {
		return true
	}
	if p.Y > stage.Height+margin {
		return true
	}
	// thrown objects may leave through the top and come back down
	return p.Kind != ProjectileArc && p.Y < -margin
}

// Reflect hands the projectile to newOwner and sends it back.
func (p *Projectile) Reflect(newOwner FighterID) {
	p.Target = p.Owner
	p.Owner = newOwner
	p.VX = -p.VX
	switch p.Kind {
	case ProjectileHoming:
		p.VY = -p.VY
	case ProjectileSine:
		p.StartY = p.Y
		p.Distance = 0
	}
}

// normalizeAngle normalizes an angle to the range [-π, π].
func normalizeAngle(angle float64) float64 {
	const twoPi = 2 * math.Pi
	angle = math.Mod(angle, twoPi)
	if angle > math.Pi {
		angle -= twoPi
	} else if angle < -math.Pi {
		angle += twoPi
	}
	return angle
}

// ProjectileView is the read-only projectile data controllers see.
type ProjectileView struct {
	ID     uint64         `json:"id"`
	Kind   ProjectileKind `json:"kind"`
	Name   string         `json:"name"`
	Owner  FighterID      `json:"owner"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	VX     float64        `json:"vx"`
	VY     float64        `json:"vy"`
	Damage float64        `json:"damage"`
	Live   bool           `json:"live"`
}

// View returns a copy safe to hand to controllers and snapshots.
func (p *Projectile) View() ProjectileView {
	return ProjectileView{
		ID:     p.ID,
		Kind:   p.Kind,
		Name:   p.Name,
		Owner:  p.Owner,
		X:      p.X,
		Y:      p.Y,
		VX:     p.VX,
		VY:     p.VY,
		Damage: p.Damage,
		Live:   p.Collidable(),
	}
}
