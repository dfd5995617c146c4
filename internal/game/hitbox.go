package game

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the rectangle's center point.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Overlaps is a strict intersection test: rectangles that only share an
// edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X &&
		r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Inflate grows the rectangle by dx on each side horizontally and dy vertically.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// CenteredRect builds a w×h rectangle centered on (cx, cy).
func CenteredRect(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// AttackHitbox anchors a w×h hitbox to the attacker's facing edge,
// vertically centered on the body.
func AttackHitbox(body Rect, facingRight bool, w, h float64) Rect {
	x := body.X - w
	if facingRight {
		x = body.Right()
	}
	return Rect{X: x, Y: body.Y + (body.H-h)/2, W: w, H: h}
}
