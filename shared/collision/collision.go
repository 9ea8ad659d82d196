// Package collision answers tile grid queries for the character core: point
// occupancy, swept box movement, line and hook intersection, teleporter
// lookups and per-zone tunings.
package collision

import (
	"fmt"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/gamemath"
)

// Layers holds the raw grid data a Collision is built from. Tiles, Tune and
// Tele are row-major with Width*Height cells; Tune and Tele may be nil.
type Layers struct {
	Width, Height int
	Tiles         []uint8
	Tune          []uint8
	Tele          []TeleTile
	TeleOuts      map[int][]gamemath.Vec2
}

// Collision is an immutable tile grid. It is safe to share between worlds.
type Collision struct {
	width, height int32
	tiles         []uint8
	tune          []uint8
	tele          []TeleTile
	teleOuts      map[int][]gamemath.Vec2
	zones         config.TuneZones
}

// New validates the layers against each other and the zone table.
func New(l Layers, zones config.TuneZones) (*Collision, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", l.Width, l.Height)
	}
	cells := l.Width * l.Height
	if len(l.Tiles) != cells {
		return nil, fmt.Errorf("game layer has %d tiles, want %d", len(l.Tiles), cells)
	}
	if len(zones) == 0 {
		zones = config.DefaultTuneZones()
	}

	tune := l.Tune
	if tune == nil {
		tune = make([]uint8, cells)
	}
	if len(tune) != cells {
		return nil, fmt.Errorf("tune layer has %d tiles, want %d", len(tune), cells)
	}
	for i, n := range tune {
		if int(n) >= len(zones) {
			return nil, fmt.Errorf("tune tile %d uses zone %d: %w", i, n, config.ErrUnknownZone)
		}
	}
	if l.Tele != nil && len(l.Tele) != cells {
		return nil, fmt.Errorf("tele layer has %d tiles, want %d", len(l.Tele), cells)
	}

	return &Collision{
		width:    int32(l.Width),
		height:   int32(l.Height),
		tiles:    l.Tiles,
		tune:     tune,
		tele:     l.Tele,
		teleOuts: l.TeleOuts,
		zones:    zones,
	}, nil
}

// Width returns the grid width in tiles.
func (c *Collision) Width() int32 { return c.width }

// Height returns the grid height in tiles.
func (c *Collision) Height() int32 { return c.height }

func clampInt(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// index maps a world position to its cell, clamping to the grid edge.
func (c *Collision) index(x, y int32) int32 {
	nx := clampInt(x/TileSize, 0, c.width-1)
	ny := clampInt(y/TileSize, 0, c.height-1)
	return ny*c.width + nx
}

func (c *Collision) indexf(x, y float32) int32 {
	return c.index(gamemath.RoundToInt(x), gamemath.RoundToInt(y))
}

// Tile returns the collision tile at a world position, or TileAir when the
// cell holds anything outside the Solid..NoLaser range.
func (c *Collision) Tile(x, y int32) int {
	t := c.tiles[c.index(x, y)]
	if t >= TileSolid && t <= TileNoLaser {
		return int(t)
	}
	return TileAir
}

// IsSolid reports whether the position is blocked for characters.
func (c *Collision) IsSolid(x, y int32) bool {
	t := c.Tile(x, y)
	return t == TileSolid || t == TileNoHook
}

// IsDeath reports whether the position is a death tile.
func (c *Collision) IsDeath(x, y float32) bool {
	return c.Tile(gamemath.RoundToInt(x), gamemath.RoundToInt(y)) == TileDeath
}

// CheckPoint reports whether the rounded position is solid.
func (c *Collision) CheckPoint(x, y float32) bool {
	return c.IsSolid(gamemath.RoundToInt(x), gamemath.RoundToInt(y))
}

// TestBox reports whether any corner of a box centered on pos is solid.
func (c *Collision) TestBox(x, y, size int32) bool {
	h := size / 2
	return c.IsSolid(x-h, y-h) ||
		c.IsSolid(x+h, y-h) ||
		c.IsSolid(x-h, y+h) ||
		c.IsSolid(x+h, y+h)
}

// InPlayfield reports whether pos lies inside the grid.
func (c *Collision) InPlayfield(pos gamemath.Vec2) bool {
	return pos[0] >= 0 && pos[1] >= 0 &&
		pos[0] < float32(c.width*TileSize) && pos[1] < float32(c.height*TileSize)
}

// TuneAt returns a copy of the tunings of the zone covering pos.
func (c *Collision) TuneAt(pos gamemath.Vec2) config.Tunings {
	return c.zones[c.tune[c.indexf(pos[0], pos[1])]]
}

// TeleOuts returns the exit positions of teleporter nr.
func (c *Collision) TeleOuts(nr int) []gamemath.Vec2 {
	return c.teleOuts[nr]
}

func (c *Collision) teleport(index int32, kind uint8) int {
	if c.tele == nil || index < 0 {
		return 0
	}
	if t := c.tele[index]; t.Type == kind {
		return int(t.Number)
	}
	return 0
}
