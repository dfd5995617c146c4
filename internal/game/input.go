package game

// Action is one entry of the fixed input vocabulary.
type Action uint8

const (
	ActionLeft Action = iota
	ActionRight
	ActionJump
	ActionDown
	ActionLightPunch
	ActionHeavyPunch
	ActionLightKick
	ActionHeavyKick
	ActionSpecial
	ActionDash
	ActionParry
	actionCount
)

var actionNames = [actionCount]string{
	"left", "right", "jump", "down",
	"light_punch", "heavy_punch", "light_kick", "heavy_kick",
	"special", "dash", "parry",
}

// String returns the action's wire name.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction maps a wire name back to an Action.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// InputSource is what the fighter state machine reads each tick.
// Keyboard, joystick and AI adapters all satisfy it.
type InputSource interface {
	IsActionPressed(a Action) bool
}

// InputState is a bit set of pressed actions.
type InputState uint16

// Press builds an InputState with the given actions held.
func Press(actions ...Action) InputState {
	var s InputState
	for _, a := range actions {
		s |= 1 << a
	}
	return s
}

// IsActionPressed implements InputSource.
func (s InputState) IsActionPressed(a Action) bool {
	return a < actionCount && s&(1<<a) != 0
}

// With returns a copy of s with more actions held.
func (s InputState) With(actions ...Action) InputState {
	return s | Press(actions...)
}

// Actions lists the held actions in vocabulary order.
func (s InputState) Actions() []string {
	var out []string
	for a := Action(0); a < actionCount; a++ {
		if s.IsActionPressed(a) {
			out = append(out, a.String())
		}
	}
	return out
}

// noInput is used when a slot has no controller attached.
var noInput InputState

// Controller produces the input for one fighter slot each tick.
type Controller interface {
	Intent(now uint64, sit Situation) InputSource
}

// ControllerFunc adapts a plain function to Controller.
type ControllerFunc func(now uint64, sit Situation) InputSource

// Intent implements Controller.
func (f ControllerFunc) Intent(now uint64, sit Situation) InputSource { return f(now, sit) }

// HeldInput replays a fixed InputState every tick.
type HeldInput struct {
	State InputState
}

// Intent implements Controller.
func (h *HeldInput) Intent(uint64, Situation) InputSource { return h.State }

// =============================================================================
// MOTION INPUT BUFFER
// =============================================================================

// Direction is a stick direction relative to the fighter's facing.
type Direction uint8

const (
	DirNeutral Direction = iota
	DirDown
	DirDownForward
	DirForward
	DirDownBack
	DirBack
)

// QuarterCircleForward is the down, down-forward, forward motion.
var QuarterCircleForward = []Direction{DirDown, DirDownForward, DirForward}

type motionEntry struct {
	dir  Direction
	tick uint64
}

// motionBuffer records direction changes with the tick they happened on.
type motionBuffer struct {
	entries []motionEntry
	size    int
	last    Direction
}

func newMotionBuffer(size int) motionBuffer {
	if size <= 0 {
		size = 60
	}
	return motionBuffer{entries: make([]motionEntry, 0, size), size: size}
}

// directionOf resolves held input to a facing-relative direction.
func directionOf(in InputSource, facingRight bool) Direction {
	down := in.IsActionPressed(ActionDown)
	fwd, back := ActionRight, ActionLeft
	if !facingRight {
		fwd, back = ActionLeft, ActionRight
	}
	switch {
	case down && in.IsActionPressed(fwd):
		return DirDownForward
	case down && in.IsActionPressed(back):
		return DirDownBack
	case down:
		return DirDown
	case in.IsActionPressed(fwd):
		return DirForward
	case in.IsActionPressed(back):
		return DirBack
	}
	return DirNeutral
}

// record stores dir if it differs from the last one seen.
func (b *motionBuffer) record(dir Direction, now uint64) {
	if dir == b.last {
		return
	}
	b.last = dir
	if dir == DirNeutral {
		return
	}
	if len(b.entries) == b.size {
		copy(b.entries, b.entries[1:])
		b.entries = b.entries[:len(b.entries)-1]
	}
	b.entries = append(b.entries, motionEntry{dir: dir, tick: now})
}

// matches reports whether seq appears, in order, among the entries of the
// last window frames.
func (b *motionBuffer) matches(seq []Direction, now uint64, window int) bool {
	if len(seq) == 0 {
		return false
	}
	i := 0
	for _, e := range b.entries {
		if now-e.tick > uint64(window) {
			continue
		}
		if e.dir == seq[i] {
			i++
			if i == len(seq) {
				return true
			}
		}
	}
	return false
}

func (b *motionBuffer) clear() {
	b.entries = b.entries[:0]
	b.last = DirNeutral
}
