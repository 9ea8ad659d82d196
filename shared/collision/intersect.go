package collision

import (
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/chewxy/math32"
)

// IntersectLine walks from one point to another in unit steps and returns
// the first solid tile hit, the sample where it was hit and the sample before
// it. Without a hit it returns TileAir and the end point twice.
func (c *Collision) IntersectLine(from, to gamemath.Vec2) (int, gamemath.Vec2, gamemath.Vec2) {
	end := int32(gamemath.Distance(from, to) + 1)
	last := from
	for i := int32(0); i <= end; i++ {
		p := gamemath.Mix(from, to, float32(i)/float32(end))
		ix, iy := gamemath.RoundToInt(p[0]), gamemath.RoundToInt(p[1])
		if c.IsSolid(ix, iy) {
			return c.Tile(ix, iy), p, last
		}
		last = p
	}
	return TileAir, to, to
}

// IntersectLineTeleHook is IntersectLine for hooks. Hook teleporters are
// reported as TileTeleInHook together with their number, and solid tiles
// backed by a through tile on the incoming side are skipped.
func (c *Collision) IntersectLineTeleHook(from, to gamemath.Vec2) (int, gamemath.Vec2, gamemath.Vec2, int) {
	end := int32(gamemath.Distance(from, to) + 1)
	last := from
	dx, dy := throughOffset(from, to)
	for i := int32(0); i <= end; i++ {
		p := gamemath.Mix(from, to, float32(i)/float32(end))
		ix, iy := gamemath.RoundToInt(p[0]), gamemath.RoundToInt(p[1])

		if nr := c.teleport(c.index(ix, iy), TileTeleInHook); nr > 0 {
			return TileTeleInHook, p, last, nr
		}

		if c.IsSolid(ix, iy) && !c.isThrough(ix, iy, dx, dy) {
			return c.Tile(ix, iy), p, last, 0
		}
		last = p
	}
	return TileAir, to, to, 0
}

// IntersectLineTeleWeapon is IntersectLine for projectiles, reporting weapon
// teleporters as TileTeleInWeapon.
func (c *Collision) IntersectLineTeleWeapon(from, to gamemath.Vec2) (int, gamemath.Vec2, gamemath.Vec2, int) {
	end := int32(gamemath.Distance(from, to) + 1)
	last := from
	for i := int32(0); i <= end; i++ {
		p := gamemath.Mix(from, to, float32(i)/float32(end))
		ix, iy := gamemath.RoundToInt(p[0]), gamemath.RoundToInt(p[1])

		if nr := c.teleport(c.index(ix, iy), TileTeleInWeapon); nr > 0 {
			return TileTeleInWeapon, p, last, nr
		}
		if c.IsSolid(ix, iy) {
			return c.Tile(ix, iy), p, last, 0
		}
		last = p
	}
	return TileAir, to, to, 0
}

func (c *Collision) isThrough(x, y, offX, offY int32) bool {
	return c.tiles[c.index(x+offX, y+offY)] == TileThrough
}

// throughOffset points one tile back along the dominant axis of travel.
func throughOffset(from, to gamemath.Vec2) (int32, int32) {
	x := from[0] - to[0]
	y := from[1] - to[1]
	if math32.Abs(x) > math32.Abs(y) {
		if x < 0 {
			return -TileSize, 0
		}
		return TileSize, 0
	}
	if y < 0 {
		return 0, -TileSize
	}
	return 0, TileSize
}
