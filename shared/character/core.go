// Package character simulates the physics of a single character: movement
// input, jumping, the grappling hook, collision with the tile grid and with
// other characters, and quantization through the wire form. Given the same
// core, inputs and collision answers it produces bit-identical results.
package character

import (
	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/gamemath"
)

// EntityID identifies a character within one world. IDs are assigned in
// increasing order and never reused while the world lives.
type EntityID uint32

// NoEntity is the zero ID, used for "no character".
const NoEntity EntityID = 0

// Jumped bits.
const (
	JumpConsumed     int32 = 1 << 0 // jump already used for the current press
	JumpAirExhausted int32 = 1 << 1 // all air jumps of this airborne phase are used
)

// Move restriction bits.
const (
	CannotMoveLeft  int32 = 1 << 0
	CannotMoveRight int32 = 1 << 1
	CannotMoveUp    int32 = 1 << 2
	CannotMoveDown  int32 = 1 << 3
)

// MaxSpeed caps the length of a character's velocity after force resolution.
const MaxSpeed = 6000

// DefaultJumps is the number of jumps a fresh character may make.
const DefaultJumps = 2

// Core is the simulated state of one character. It is a value: copying it
// snapshots the character.
type Core struct {
	Pos gamemath.Vec2
	Vel gamemath.Vec2

	HookPos      gamemath.Vec2
	HookDir      gamemath.Vec2
	HookTeleBase gamemath.Vec2
	HookTick     int32
	HookState    HookState

	Jumped      int32
	JumpedTotal int32
	Jumps       int32

	Direction int32
	Angle     int32

	Colliding int32 // 1 blocked while moving right, 2 while moving left
	LeftWall  bool

	Solo              bool
	Super             bool
	CollisionDisabled bool
	HookHitDisabled   bool
	NewHook           bool

	MoveRestrictions int32
	TriggeredEvents  CoreEvent

	Tuning config.Tunings
}

// NewCore returns an idle character standing at pos.
func NewCore(pos gamemath.Vec2, tuning config.Tunings) Core {
	return Core{
		Pos:       pos,
		HookPos:   pos,
		HookState: HookIdle,
		Jumps:     DefaultJumps,
		Tuning:    tuning,
	}
}

// ClampVel zeroes every velocity component that points in a restricted
// direction.
func ClampVel(restrictions int32, vel gamemath.Vec2) gamemath.Vec2 {
	if vel[0] > 0 && restrictions&CannotMoveRight != 0 {
		vel[0] = 0
	}
	if vel[0] < 0 && restrictions&CannotMoveLeft != 0 {
		vel[0] = 0
	}
	if vel[1] > 0 && restrictions&CannotMoveDown != 0 {
		vel[1] = 0
	}
	if vel[1] < 0 && restrictions&CannotMoveUp != 0 {
		vel[1] = 0
	}
	return vel
}

// interacts reports whether two characters see each other at all. Super
// characters always do; otherwise neither may be solo.
func interacts(a, b *Core) bool {
	return a.Super || b.Super || (!a.Solo && !b.Solo)
}
