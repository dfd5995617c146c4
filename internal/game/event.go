package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // Tick boundary with RNG seed
	EventTypeHit
	EventTypeBlock
	EventTypeParry
	EventTypeReflect
	EventTypeSpecial
	EventTypeCombo
	EventTypeKO
	EventTypeRoundReset
)

// EventVersion bumps whenever a payload changes shape
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8           `json:"version"`
	Type      EventType       `json:"type"`
	Timestamp int64           `json:"timestamp"` // Unix nano
	Sequence  uint64          `json:"sequence"`  // Monotonic sequence
	TickNum   uint64          `json:"tickNum"`
	Fighter   FighterID       `json:"fighter"` // Source fighter (for rate limiting), -1 for match events
	Payload   json.RawMessage `json:"payload"`
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeHit:
		return "hit"
	case EventTypeBlock:
		return "block"
	case EventTypeParry:
		return "parry"
	case EventTypeReflect:
		return "reflect"
	case EventTypeSpecial:
		return "special"
	case EventTypeCombo:
		return "combo"
	case EventTypeKO:
		return "ko"
	case EventTypeRoundReset:
		return "round_reset"
	default:
		return "unknown"
	}
}

// MarshalText makes event types readable in the NDJSON log
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MatchEvent is the Fighter value used for events not tied to one fighter
const MatchEvent FighterID = -1

// TickPayload is written once per second of simulation
type TickPayload struct {
	RNGSeed     int64   `json:"rngSeed"`
	Projectiles int     `json:"projectiles"`
	P1Health    float64 `json:"p1Health"`
	P2Health    float64 `json:"p2Health"`
}

// HitPayload covers hit, block and parry events
type HitPayload struct {
	Attacker   FighterID `json:"attacker"`
	Defender   FighterID `json:"defender"`
	Move       string    `json:"move"`
	Result     string    `json:"result"`
	Damage     float64   `json:"damage"`
	ComboHits  int       `json:"comboHits"`
	Multiplier float64   `json:"multiplier"`
	ComboName  string    `json:"comboName,omitempty"`
	DefenderHP float64   `json:"defenderHp"`
}

// SpecialPayload is emitted when a special or ultimate spawns its effect
type SpecialPayload struct {
	Move        string `json:"move"`
	Special     string `json:"special"`
	Projectiles int    `json:"projectiles"`
	Spin        bool   `json:"spin"`
}

// ReflectPayload is emitted when a parry turns a projectile around
type ReflectPayload struct {
	ProjectileID uint64    `json:"projectileId"`
	NewOwner     FighterID `json:"newOwner"`
}

// KOPayload is emitted when a fighter's health reaches zero
type KOPayload struct {
	Winner FighterID `json:"winner"`
	Loser  FighterID `json:"loser"`
	Move   string    `json:"move"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) json.RawMessage {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with current timestamp
func NewEvent(eventType EventType, tickNum uint64, fighter FighterID, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		Fighter:   fighter,
		Payload:   EncodePayload(payload),
	}
}
