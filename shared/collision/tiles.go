package collision

// Game layer tile numbers.
const (
	TileAir          = 0
	TileSolid        = 1
	TileDeath        = 2
	TileNoHook       = 3
	TileNoLaser      = 4
	TileThroughCut   = 5
	TileThrough      = 6
	TileJump         = 7
	TileFreeze       = 9
	TileTeleInEvil   = 10
	TileUnfreeze     = 11
	TileDFreeze      = 12
	TileDUnfreeze    = 13
	TileTeleInWeapon = 14
	TileTeleInHook   = 15
	TileTeleIn       = 26
	TileTeleOut      = 27
)

// TileSize is the edge length of one grid cell in world units.
const TileSize = 32

// TeleTile is one cell of the teleporter layer.
type TeleTile struct {
	Number uint8
	Type   uint8
}
