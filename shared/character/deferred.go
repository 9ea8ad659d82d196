package character

import (
	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/gamemath"
)

// PhysicsTickDeferred resolves pairwise forces against every other
// character: overlapping characters push each other apart and a held peer is
// dragged toward its holder. Positions are only read, so the result does not
// depend on the order in which characters are visited as long as no one has
// moved yet this tick.
func (c *Core) PhysicsTickDeferred(pipe CorePipe) {
	hooked := pipe.HookedID()
	vel := c.Vel

	pipe.EachOther(func(id EntityID, peer *Core) bool {
		if !interacts(c, peer) {
			return true
		}

		d := gamemath.Distance(c.Pos, peer.Pos)
		if d <= 0 {
			return true
		}
		dir := gamemath.Normalize(c.Pos.Sub(peer.Pos))

		canCollide := c.Super || peer.Super ||
			(!c.CollisionDisabled && !peer.CollisionDisabled && c.Tuning.PlayerCollision > 0)

		if canCollide && d < config.PhysicalSize*1.25 {
			a := config.PhysicalSize*1.45 - d
			velocity := float32(0.5)
			// damp the push by how much we already move away
			if gamemath.Length(vel) > 0.0001 {
				velocity = 1 - (gamemath.Dot(gamemath.Normalize(vel), dir)+1)/2
			}
			vel = vel.Add(gamemath.Scale(gamemath.Scale(dir, a), velocity*0.75))
			vel = gamemath.Scale(vel, 0.85)
		}

		if !c.HookHitDisabled && hooked == id && c.Tuning.PlayerHooking > 0 &&
			d > config.PhysicalSize*1.5 {
			hookAccel := c.Tuning.HookDragAccel * (d / c.Tuning.HookLength)
			drag := c.Tuning.HookDragSpeed

			peer.Vel = ClampVel(peer.MoveRestrictions, gamemath.Vec2{
				gamemath.SaturatedAdd(-drag, drag, peer.Vel[0], float32(hookAccel*dir[0])*1.5),
				gamemath.SaturatedAdd(-drag, drag, peer.Vel[1], float32(hookAccel*dir[1])*1.5),
			})
			vel = ClampVel(c.MoveRestrictions, gamemath.Vec2{
				gamemath.SaturatedAdd(-drag, drag, vel[0], float32(-hookAccel*dir[0])*0.25),
				gamemath.SaturatedAdd(-drag, drag, vel[1], float32(-hookAccel*dir[1])*0.25),
			})
		}
		return true
	})

	c.Vel = vel
	if c.HookState != HookFlying {
		c.NewHook = false
	}
	if gamemath.Length(c.Vel) > MaxSpeed {
		c.Vel = gamemath.Scale(gamemath.Normalize(c.Vel), MaxSpeed)
	}
}
