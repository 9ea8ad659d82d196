package character

import (
	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/chewxy/math32"
)

const (
	halfSize       = config.PhysicalSize / 2
	hookHitRadius  = config.PhysicalSize + 2
	hookDragMinLen = 46
	// hookHoldTicks is how long a peer can be held.
	hookHoldTicks = config.TicksPerSecond + config.TicksPerSecond/5
)

// PhysicsTick applies input, gravity, jumping and the hook to the core. With
// doDeferred it also resolves forces against other characters right away;
// worlds that tick many characters leave that to a separate pass.
func (c *Core) PhysicsTick(useInput, doDeferred bool, pipe CorePipe, col Collision) {
	input := pipe.Input()

	c.Tuning = col.TuneAt(c.Pos)
	c.MoveRestrictions = 0
	c.TriggeredEvents = 0

	grounded := col.CheckPoint(c.Pos[0]+halfSize, c.Pos[1]+halfSize+5) ||
		col.CheckPoint(c.Pos[0]-halfSize, c.Pos[1]+halfSize+5)

	targetDir := gamemath.Normalize(gamemath.Vec2{float32(input.CursorX), float32(input.CursorY)})

	c.Vel[1] += c.Tuning.Gravity

	maxSpeed, accel, friction := c.Tuning.AirControlSpeed, c.Tuning.AirControlAccel, c.Tuning.AirFriction
	if grounded {
		maxSpeed, accel, friction = c.Tuning.GroundControlSpeed, c.Tuning.GroundControlAccel, c.Tuning.GroundFriction
	}

	if useInput {
		c.Direction = input.Dir
		c.Angle = angleOf(targetDir)
		c.handleJump(input.Jump, grounded)

		if input.Hook {
			if c.HookState == HookIdle {
				c.fireHook(pipe, targetDir)
			}
		} else {
			pipe.SetOrResetHookedChar(NoEntity)
			c.HookState = HookIdle
			c.HookPos = c.Pos
		}
	}

	if grounded {
		c.Jumped &^= JumpAirExhausted
		c.JumpedTotal = 0
	}

	switch {
	case c.Direction < 0:
		c.Vel[0] = gamemath.SaturatedAdd(-maxSpeed, maxSpeed, c.Vel[0], -accel)
	case c.Direction > 0:
		c.Vel[0] = gamemath.SaturatedAdd(-maxSpeed, maxSpeed, c.Vel[0], accel)
	default:
		c.Vel[0] *= friction
	}

	switch c.HookState {
	case HookIdle:
		pipe.SetOrResetHookedChar(NoEntity)
		c.HookPos = c.Pos
	case HookRetractEnd:
		c.TriggeredEvents |= EventHookRetract
		c.HookState = c.HookState.next()
	case HookRetractStart:
		c.HookState = c.HookState.next()
	case HookFlying:
		c.flyHook(pipe, col, targetDir)
	}

	if c.HookState == HookGrabbed {
		c.holdHook(pipe)
	}

	if doDeferred {
		c.PhysicsTickDeferred(pipe)
	}
}

// angleOf converts an aim direction to 1/256 radian units, keeping the value
// continuous across the -pi/2 seam.
func angleOf(dir gamemath.Vec2) int32 {
	a := math32.Atan2(dir[0], dir[1])
	if a < -(math32.Pi / 2) {
		return int32(float32((a + 2*math32.Pi) * 256))
	}
	return int32(float32(a * 256))
}

func (c *Core) handleJump(jump, grounded bool) {
	if !jump {
		c.Jumped &^= JumpConsumed
		return
	}
	if c.Jumped&JumpConsumed != 0 {
		return
	}

	if grounded && (c.Jumped&JumpAirExhausted == 0 || c.Jumps != 0) {
		c.TriggeredEvents |= EventGroundJump
		c.Vel[1] = -c.Tuning.GroundJumpImpulse
		if c.Jumps > 1 {
			c.Jumped |= JumpConsumed
		} else {
			c.Jumped |= JumpConsumed | JumpAirExhausted
		}
		c.JumpedTotal = 0
	} else if c.Jumped&JumpAirExhausted == 0 {
		c.TriggeredEvents |= EventAirJump
		c.Vel[1] = -c.Tuning.AirJumpImpulse
		c.Jumped |= JumpConsumed | JumpAirExhausted
		c.JumpedTotal++
	}
}

// hookLaunchOffset places a fresh hook just outside the character.
func hookLaunchOffset(dir gamemath.Vec2) gamemath.Vec2 {
	return gamemath.Scale(gamemath.Scale(dir, config.PhysicalSize), 1.5)
}

func (c *Core) fireHook(pipe CorePipe, dir gamemath.Vec2) {
	c.HookState = HookFlying
	c.HookPos = c.Pos.Add(hookLaunchOffset(dir))
	c.HookDir = dir
	pipe.SetOrResetHookedChar(NoEntity)
	c.HookTick = int32(float32(config.TicksPerSecond) * (1.25 - c.Tuning.HookDuration))
	c.TriggeredEvents |= EventHookLaunch
}

func (c *Core) flyHook(pipe CorePipe, col Collision, targetDir gamemath.Vec2) {
	newPos := c.HookPos.Add(gamemath.Scale(c.HookDir, c.Tuning.HookFireSpeed))

	origin := c.Pos
	if c.NewHook {
		origin = c.HookTeleBase
	}
	if gamemath.Distance(origin, newPos) > c.Tuning.HookLength {
		c.HookState = HookRetractStart
		newPos = c.Pos.Add(gamemath.Scale(gamemath.Normalize(newPos.Sub(c.Pos)), c.Tuning.HookLength))
	}

	hit, at, _, teleNr := col.IntersectLineTeleHook(c.HookPos, newPos)
	newPos = at
	var hitGround, hitNoHook, throughTele bool
	switch {
	case hit == collision.TileNoHook:
		hitNoHook = true
	case hit == collision.TileTeleInHook:
		throughTele = true
	case hit > 0:
		hitGround = true
	}

	if !c.HookHitDisabled && c.Tuning.PlayerHooking > 0 {
		c.hookPeers(pipe, newPos)
	}

	if c.HookState != HookFlying {
		return
	}

	if hitGround {
		c.TriggeredEvents |= EventHookAttachGround
		c.HookState = HookGrabbed
	} else if hitNoHook {
		c.TriggeredEvents |= EventHookHitNoHook
		c.HookState = HookRetractStart
	}

	if throughTele {
		// without an exit the hook flies on as if the tile were empty
		if outs := col.TeleOuts(teleNr); len(outs) > 0 {
			c.TriggeredEvents = 0
			pipe.SetOrResetHookedChar(NoEntity)
			c.NewHook = true
			out := outs[pipe.RandomOr0(len(outs))]
			c.HookPos = out.Add(hookLaunchOffset(targetDir))
			c.HookDir = targetDir
			c.HookTeleBase = c.HookPos
			return
		}
	}
	c.HookPos = newPos
}

// hookPeers grabs the nearest eligible character crossed by the hook segment
// from HookPos to newPos.
func (c *Core) hookPeers(pipe CorePipe, newPos gamemath.Vec2) {
	hookPos := c.HookPos
	hooked := pipe.HookedID()
	var hookDist float32

	pad := gamemath.Vec2{hookHitRadius, hookHitRadius}
	lo := gamemath.Vec2{min(hookPos[0], newPos[0]), min(hookPos[1], newPos[1])}.Sub(pad)
	hi := gamemath.Vec2{max(hookPos[0], newPos[0]), max(hookPos[1], newPos[1])}.Add(pad)

	pipe.EachOtherNear(lo, hi, func(id EntityID, peer *Core) bool {
		if !interacts(c, peer) {
			return true
		}
		closest, ok := gamemath.ClosestPointOnLine(hookPos, newPos, peer.Pos)
		if !ok || gamemath.Distance(peer.Pos, closest) >= hookHitRadius {
			return true
		}
		d := gamemath.Distance(hookPos, peer.Pos)
		if hooked == NoEntity || d < hookDist {
			c.TriggeredEvents |= EventHookAttachPlayer
			c.HookState = HookGrabbed
			hooked = id
			hookDist = d
		}
		return true
	})
	pipe.SetOrResetHookedChar(hooked)
}

// holdHook follows a held peer or drags the character toward a ground hook.
func (c *Core) holdHook(pipe CorePipe) {
	hooked := pipe.HookedID()
	if hooked != NoEntity {
		peer, ok := pipe.Other(hooked)
		if !ok {
			c.releaseHook(pipe)
			return
		}
		c.HookPos = peer.Pos
	}

	if hooked == NoEntity && gamemath.Distance(c.HookPos, c.Pos) > hookDragMinLen {
		hookVel := gamemath.Scale(gamemath.Normalize(c.HookPos.Sub(c.Pos)), c.Tuning.HookDragAccel)
		// pulling up is stronger than pulling down
		if hookVel[1] > 0 {
			hookVel[1] *= 0.3
		}
		if (hookVel[0] < 0 && c.Direction < 0) || (hookVel[0] > 0 && c.Direction > 0) {
			hookVel[0] *= 0.95
		} else {
			hookVel[0] *= 0.75
		}

		newVel := c.Vel.Add(hookVel)
		if gamemath.Length(newVel) < c.Tuning.HookDragSpeed || gamemath.Length(newVel) < gamemath.Length(c.Vel) {
			c.Vel = newVel
		}
	}

	c.HookTick++
	if hooked != NoEntity && c.HookTick > hookHoldTicks {
		c.releaseHook(pipe)
	}
}

func (c *Core) releaseHook(pipe CorePipe) {
	pipe.SetOrResetHookedChar(NoEntity)
	c.HookState = HookRetracted
	c.HookPos = c.Pos
}
