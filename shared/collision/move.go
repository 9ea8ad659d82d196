package collision

import "github.com/automoto/hookcore/shared/gamemath"

// MovePoint moves a point by vel, reflecting the blocked axes scaled by
// elasticity instead of moving when the target is solid.
func (c *Collision) MovePoint(pos, vel gamemath.Vec2, elasticity float32) (gamemath.Vec2, gamemath.Vec2, int) {
	bounces := 0
	target := pos.Add(vel)
	if !c.CheckPoint(target[0], target[1]) {
		return target, vel, bounces
	}

	affected := 0
	if c.CheckPoint(pos[0]+vel[0], pos[1]) {
		vel[0] *= -elasticity
		bounces++
		affected++
	}
	if c.CheckPoint(pos[0], pos[1]+vel[1]) {
		vel[1] *= -elasticity
		bounces++
		affected++
	}
	if affected == 0 {
		vel[0] *= -elasticity
		vel[1] *= -elasticity
	}
	return pos, vel, bounces
}

// MoveBox sweeps a square box of the given size along vel in sub-steps of at
// most one unit and returns the corrected position and velocity. Each axis
// that hits the grid is stopped and its velocity scaled by -elasticity; a
// pure corner hit stops both.
func (c *Collision) MoveBox(pos, vel gamemath.Vec2, size int32, elasticity float32) (gamemath.Vec2, gamemath.Vec2) {
	dist := gamemath.Length(vel)
	if dist <= 0.00001 {
		return pos, vel
	}

	steps := int32(dist)
	lastX := gamemath.RoundToInt(pos[0])
	lastY := gamemath.RoundToInt(pos[1])
	fraction := 1 / float32(steps+1)

	for i := int32(0); i <= steps; i++ {
		if vel == (gamemath.Vec2{}) {
			break
		}

		newPos := pos.Add(gamemath.Scale(vel, fraction))
		// fraction may be too small to move pos at all
		if newPos == pos {
			break
		}

		newX := gamemath.RoundToInt(newPos[0])
		newY := gamemath.RoundToInt(newPos[1])

		if c.TestBox(newX, newY, size) {
			hits := 0
			if c.TestBox(lastX, newY, size) {
				newPos[1] = pos[1]
				newY = lastY
				vel[1] *= -elasticity
				hits++
			}
			if c.TestBox(newX, lastY, size) {
				newPos[0] = pos[0]
				newX = lastX
				vel[0] *= -elasticity
				hits++
			}
			if hits == 0 {
				newPos[1] = pos[1]
				vel[1] *= -elasticity
				newPos[0] = pos[0]
				vel[0] *= -elasticity
			}
		}

		lastX = newX
		lastY = newY
		pos = newPos
	}
	return pos, vel
}
