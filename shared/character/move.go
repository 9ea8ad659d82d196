package character

import (
	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/gamemath"
)

// PhysicsMove moves the character by its velocity through the tile grid and
// stops it in front of the first character its path runs into.
func (c *Core) PhysicsMove(pipe CorePipe, col Collision) {
	ramp := gamemath.VelocityRamp(gamemath.Length(c.Vel)*50,
		c.Tuning.VelrampStart, c.Tuning.VelrampRange, c.Tuning.VelrampCurvature)

	c.Vel[0] = c.Vel[0] * ramp

	oldVel := c.Vel
	newPos, vel := col.MoveBox(c.Pos, c.Vel, config.PhysicalSize, 0)
	c.Vel = vel

	c.Colliding = 0
	if c.Vel[0] < 0.001 && c.Vel[0] > -0.001 {
		if oldVel[0] > 0 {
			c.Colliding = 1
		} else if oldVel[0] < 0 {
			c.Colliding = 2
		}
	} else {
		c.LeftWall = true
	}

	c.Vel[0] = c.Vel[0] * (1 / ramp)

	if c.Super || (c.Tuning.PlayerCollision > 0 && !c.CollisionDisabled && !c.Solo) {
		if c.stopAtPeers(pipe, newPos) {
			return
		}
	}
	c.Pos = newPos
}

// stopAtPeers walks from Pos to newPos in unit steps. On the first sample
// that overlaps a peer it settles Pos and reports true.
func (c *Core) stopAtPeers(pipe CorePipe, newPos gamemath.Vec2) bool {
	from := c.Pos
	dist := gamemath.Distance(from, newPos)
	if dist <= 0 {
		return false
	}

	pad := gamemath.Vec2{config.PhysicalSize, config.PhysicalSize}
	lo := gamemath.Vec2{min(from[0], newPos[0]), min(from[1], newPos[1])}.Sub(pad)
	hi := gamemath.Vec2{max(from[0], newPos[0]), max(from[1], newPos[1])}.Add(pad)

	end := int32(dist + 1)
	last := from
	for i := int32(0); i < end; i++ {
		a := float32(i) / dist
		p := gamemath.Mix(from, newPos, a)

		stopped := false
		pipe.EachOtherNear(lo, hi, func(_ EntityID, peer *Core) bool {
			if !(peer.Super || c.Super) && (c.Solo || peer.Solo || peer.CollisionDisabled) {
				return true
			}
			d := gamemath.Distance(p, peer.Pos)
			if d >= config.PhysicalSize {
				return true
			}
			if a > 0 {
				c.Pos = last
			} else if gamemath.Distance(newPos, peer.Pos) > d {
				c.Pos = newPos
			}
			stopped = true
			return false
		})
		if stopped {
			return true
		}
		last = p
	}
	return false
}
