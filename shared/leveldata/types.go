// Package leveldata parses TMX levels into the tile grid used by the
// collision package. It is pure data: no entities and no rendering.
package leveldata

import (
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/gamemath"
)

// Layer and object group names read from a TMX file.
const (
	GameLayer        = "game"
	TuneLayer        = "tune"
	SpawnGroup       = "PlayerSpawn"
	TeleporterGroup  = "Teleporters"
	TeleKindProperty = "kind"
	TeleNumProperty  = "number"
)

// LevelData holds everything the simulation needs from a TMX level.
type LevelData struct {
	Name        string
	Layers      collision.Layers
	SpawnPoints []SpawnPoint
	MapWidth    int // pixels
	MapHeight   int // pixels
}

// SpawnPoint is a character spawn location.
type SpawnPoint struct {
	Pos   gamemath.Vec2
	Index int
}

// SpawnPositions returns the spawn positions in spawn order.
func (d *LevelData) SpawnPositions() []gamemath.Vec2 {
	out := make([]gamemath.Vec2, len(d.SpawnPoints))
	for i, sp := range d.SpawnPoints {
		out[i] = sp.Pos
	}
	return out
}
