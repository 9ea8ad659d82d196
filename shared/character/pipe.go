package character

import (
	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/gamemath"
)

// Input is the player input applied during one tick. Jump and Hook are the
// held state of the buttons; press edges are derived from the core's own
// bookkeeping.
type Input struct {
	CursorX int32
	CursorY int32
	Dir     int32 // -1 left, 0 none, 1 right
	Jump    bool
	Hook    bool
}

// Collision is the tile grid as seen by a core.
type Collision interface {
	CheckPoint(x, y float32) bool
	MoveBox(pos, vel gamemath.Vec2, size int32, elasticity float32) (gamemath.Vec2, gamemath.Vec2)
	IntersectLineTeleHook(from, to gamemath.Vec2) (tile int, at, before gamemath.Vec2, teleNr int)
	TuneAt(pos gamemath.Vec2) config.Tunings
	TeleOuts(nr int) []gamemath.Vec2
}

// CorePipe gives a ticking core access to its world without handing out
// long-lived references. Visits run in ascending ID order, never include the
// ticking character itself, and stop when fn returns false. A visit function
// must not call back into the pipe.
type CorePipe interface {
	// Input returns the input of the ticking character for this tick.
	Input() Input

	// EachOther visits every other character.
	EachOther(fn func(id EntityID, peer *Core) bool)

	// EachOtherNear visits at least every other character whose position
	// lies within the box spanned by min and max. It may visit more.
	EachOtherNear(min, max gamemath.Vec2, fn func(id EntityID, peer *Core) bool)

	// Other returns the core of another character.
	Other(id EntityID) (*Core, bool)

	// HookedID returns the character the ticking character holds.
	HookedID() EntityID

	// SetOrResetHookedChar updates the hook relation of the ticking
	// character on both sides.
	SetOrResetHookedChar(target EntityID)

	// RandomOr0 returns a deterministic value in [0, n), or 0 when n < 2.
	RandomOr0(n int) int
}
