package character

import (
	"encoding/binary"
	"fmt"

	"github.com/automoto/hookcore/shared/gamemath"
)

// NetObjCharacterCoreSize is the encoded size of a NetObjCharacterCore.
const NetObjCharacterCoreSize = 13 * 4

// NetObjCharacterCore is the integer wire form of a Core. Positions are whole
// units, velocities and the hook direction are scaled by 256.
type NetObjCharacterCore struct {
	X, Y       int32
	VelX, VelY int32
	HookState  int32
	HookTick   int32
	HookX      int32
	HookY      int32
	HookDx     int32
	HookDy     int32
	Jumped     int32
	Direction  int32
	Angle      int32
}

// Write converts the core to its wire form.
func (c *Core) Write() NetObjCharacterCore {
	return NetObjCharacterCore{
		X:         gamemath.RoundToInt(c.Pos[0]),
		Y:         gamemath.RoundToInt(c.Pos[1]),
		VelX:      gamemath.RoundToInt(c.Vel[0] * 256),
		VelY:      gamemath.RoundToInt(c.Vel[1] * 256),
		HookState: int32(c.HookState),
		HookTick:  c.HookTick,
		HookX:     gamemath.RoundToInt(c.HookPos[0]),
		HookY:     gamemath.RoundToInt(c.HookPos[1]),
		HookDx:    gamemath.RoundToInt(c.HookDir[0] * 256),
		HookDy:    gamemath.RoundToInt(c.HookDir[1] * 256),
		Jumped:    c.Jumped,
		Direction: c.Direction,
		Angle:     c.Angle,
	}
}

// Read overwrites the wire-carried fields of the core with n.
func (c *Core) Read(n NetObjCharacterCore) {
	c.Pos = gamemath.Vec2{float32(n.X), float32(n.Y)}
	c.Vel = gamemath.Vec2{float32(n.VelX) / 256, float32(n.VelY) / 256}
	c.HookState = HookState(n.HookState)
	c.HookTick = n.HookTick
	c.HookPos = gamemath.Vec2{float32(n.HookX), float32(n.HookY)}
	c.HookDir = gamemath.Vec2{float32(n.HookDx) / 256, float32(n.HookDy) / 256}
	c.Jumped = n.Jumped
	c.Direction = n.Direction
	c.Angle = n.Angle
}

// Quantize forces the core through its wire form, so the live state carries
// exactly the rounding a remote peer reconstructs.
func (c *Core) Quantize() {
	c.Read(c.Write())
}

// Validate rejects wire values no core can produce.
func (n *NetObjCharacterCore) Validate() error {
	if !HookState(n.HookState).Valid() {
		return fmt.Errorf("invalid hook state %d", n.HookState)
	}
	if n.Direction < -1 || n.Direction > 1 {
		return fmt.Errorf("invalid direction %d", n.Direction)
	}
	if n.Jumped&^(JumpConsumed|JumpAirExhausted) != 0 {
		return fmt.Errorf("invalid jumped bits %#x", n.Jumped)
	}
	return nil
}

func (n *NetObjCharacterCore) fields() []*int32 {
	return []*int32{
		&n.X, &n.Y, &n.VelX, &n.VelY,
		&n.HookState, &n.HookTick, &n.HookX, &n.HookY, &n.HookDx, &n.HookDy,
		&n.Jumped, &n.Direction, &n.Angle,
	}
}

// AppendBinary appends the little-endian encoding of n to b.
func (n *NetObjCharacterCore) AppendBinary(b []byte) ([]byte, error) {
	for _, f := range n.fields() {
		b = binary.LittleEndian.AppendUint32(b, uint32(*f))
	}
	return b, nil
}

// MarshalBinary encodes n as 13 little-endian int32 values.
func (n *NetObjCharacterCore) MarshalBinary() ([]byte, error) {
	return n.AppendBinary(make([]byte, 0, NetObjCharacterCoreSize))
}

// UnmarshalBinary decodes the layout written by MarshalBinary.
func (n *NetObjCharacterCore) UnmarshalBinary(data []byte) error {
	if len(data) != NetObjCharacterCoreSize {
		return fmt.Errorf("character core: got %d bytes, want %d", len(data), NetObjCharacterCoreSize)
	}
	for i, f := range n.fields() {
		*f = int32(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return nil
}
