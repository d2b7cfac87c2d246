package spacepool

import "github.com/tharrisw/SPACEPOOL-sub002/internal/core"

// BallKind categorizes a ball for damage rules, abilities, and rendering.
type BallKind uint8

const (
	KindCue BallKind = iota // Player-controlled primary ball
	KindSolid
	KindStripe
	KindEight
	KindVolatile // Blows a crater when destroyed
	KindCharged  // Timed fuse: detonates without needing to be destroyed
)

// String returns a short name for the kind.
func (k BallKind) String() string {
	switch k {
	case KindCue:
		return "cue"
	case KindSolid:
		return "solid"
	case KindStripe:
		return "stripe"
	case KindEight:
		return "eight"
	case KindVolatile:
		return "volatile"
	case KindCharged:
		return "charged"
	default:
		return "unknown"
	}
}

// Glyph returns the render character for the kind.
func (k BallKind) Glyph() rune {
	switch k {
	case KindCue:
		return '●'
	case KindSolid:
		return 'o'
	case KindStripe:
		return '◐'
	case KindEight:
		return '8'
	case KindVolatile:
		return '✹'
	case KindCharged:
		return '◉'
	default:
		return '?'
	}
}

// Color returns the render color for the kind.
func (k BallKind) Color() core.Color {
	switch k {
	case KindCue:
		return core.ColorBrightWhite
	case KindSolid:
		return core.ColorYellow
	case KindStripe:
		return core.ColorBrightBlue
	case KindEight:
		return core.ColorGray
	case KindVolatile:
		return core.ColorBrightRed
	case KindCharged:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// Ability is a small closed set of optional ball behaviors, stored as a
// bitset and dispatched by switch. The set is fixed per kind.
type Ability uint8

const (
	// AbilityCrater destroys terrain (and deals area damage) at the ball's
	// last position when it is destroyed or detonates.
	AbilityCrater Ability = 1 << iota
	// AbilityTimedCharge counts down a fuse and detonates on expiry.
	AbilityTimedCharge
	// AbilityExempt excludes the ball from the all-cleared count.
	AbilityExempt
)

// Has reports whether the set contains the given ability.
func (a Ability) Has(b Ability) bool {
	return a&b != 0
}

// Abilities returns the fixed ability set for a kind.
func (k BallKind) Abilities() Ability {
	switch k {
	case KindCue:
		return AbilityExempt
	case KindVolatile:
		return AbilityCrater
	case KindCharged:
		return AbilityCrater | AbilityTimedCharge
	default:
		return 0
	}
}

// Ball is one ball in play. Health lives in the DamageEngine, reached
// through the handle; the ball itself only carries motion state.
type Ball struct {
	Pos  core.Vec2
	Vel  core.Vec2
	Kind BallKind

	Handle Handle // Health record in the damage engine
	Fuse   int    // Remaining ticks for AbilityTimedCharge kinds

	Pocketed bool // Sunk in a pocket (scored)
	Gone     bool // Removed from play for any reason
}

// Moving reports whether the ball is still in motion.
func (b *Ball) Moving() bool {
	return !b.Gone && (b.Vel.X != 0 || b.Vel.Y != 0)
}
