package leveldata

import (
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strings"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/lafriks/go-tiled"
	"github.com/sirupsen/logrus"
)

// teleKinds maps the "kind" property of a teleporter object to its tile.
var teleKinds = map[string]uint8{
	"in":     collision.TileTeleIn,
	"evil":   collision.TileTeleInEvil,
	"hook":   collision.TileTeleInHook,
	"weapon": collision.TileTeleInWeapon,
	"out":    collision.TileTeleOut,
}

// LoadLevel parses a TMX file into level data. It takes an fs.FS so callers
// can pass embed.FS, os.DirFS or an in-memory fstest.MapFS.
//
// The game layer stores the tile kind as the tile's index in its tileset,
// the tune layer stores the zone number the same way. Teleporters are
// rectangles in the Teleporters object group with a kind and a number.
func LoadLevel(fsys fs.FS, tmxPath string, log logrus.FieldLogger) (*LevelData, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != collision.TileSize || levelMap.TileHeight != collision.TileSize {
		return nil, fmt.Errorf("%s: tiles are %dx%d, want %d", tmxPath,
			levelMap.TileWidth, levelMap.TileHeight, collision.TileSize)
	}

	w, h := levelMap.Width, levelMap.Height
	data := &LevelData{
		Name:      strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		MapWidth:  w * levelMap.TileWidth,
		MapHeight: h * levelMap.TileHeight,
		Layers:    collision.Layers{Width: w, Height: h},
	}

	for _, layer := range levelMap.Layers {
		switch layer.Name {
		case GameLayer:
			data.Layers.Tiles = tileIDs(layer.Tiles, w*h)
		case TuneLayer:
			data.Layers.Tune = tileIDs(layer.Tiles, w*h)
		}
	}
	if data.Layers.Tiles == nil {
		return nil, fmt.Errorf("%s: no %q layer", tmxPath, GameLayer)
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case SpawnGroup:
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					Pos:   gamemath.Vec2{float32(o.X), float32(o.Y)},
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case TeleporterGroup:
			for _, o := range og.Objects {
				kind := o.Properties.GetString(TeleKindProperty)
				nr := o.Properties.GetInt(TeleNumProperty)
				tile, ok := teleKinds[kind]
				if !ok || nr <= 0 || nr > math.MaxUint8 {
					return nil, fmt.Errorf("%s: teleporter object %d has kind %q number %d", tmxPath, o.ID, kind, nr)
				}
				data.addTeleporter(tile, nr, o.X, o.Y, o.Width, o.Height)
			}
		}
	}

	for nr := range data.teleInNumbers() {
		if len(data.Layers.TeleOuts[nr]) == 0 {
			log.Warnf("Level %s: teleporter %d has no output", data.Name, nr)
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.SliceStable(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].Pos[0] < data.SpawnPoints[j].Pos[0]
	})

	return data, nil
}

func tileIDs(tiles []*tiled.LayerTile, cells int) []uint8 {
	out := make([]uint8, cells)
	for i, tile := range tiles {
		if i >= cells {
			break
		}
		if tile == nil || tile.IsNil() {
			continue
		}
		out[i] = uint8(tile.ID)
	}
	return out
}

// addTeleporter marks every cell covered by the rectangle. Outputs are
// recorded by their center instead.
func (d *LevelData) addTeleporter(tile uint8, nr int, x, y, w, h float64) {
	if tile == collision.TileTeleOut {
		if d.Layers.TeleOuts == nil {
			d.Layers.TeleOuts = make(map[int][]gamemath.Vec2)
		}
		center := gamemath.Vec2{float32(x + w/2), float32(y + h/2)}
		d.Layers.TeleOuts[nr] = append(d.Layers.TeleOuts[nr], center)
		return
	}

	l := &d.Layers
	if l.Tele == nil {
		l.Tele = make([]collision.TeleTile, l.Width*l.Height)
	}
	x0 := max(int(x)/collision.TileSize, 0)
	y0 := max(int(y)/collision.TileSize, 0)
	x1 := min(int(math.Ceil((x+w)/collision.TileSize)), l.Width)
	y1 := min(int(math.Ceil((y+h)/collision.TileSize)), l.Height)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			l.Tele[cy*l.Width+cx] = collision.TeleTile{Number: uint8(nr), Type: tile}
		}
	}
}

func (d *LevelData) teleInNumbers() map[int]struct{} {
	nrs := make(map[int]struct{})
	for _, t := range d.Layers.Tele {
		if t.Number > 0 {
			nrs[int(t.Number)] = struct{}{}
		}
	}
	return nrs
}

// BuildCollision validates the level against the zone table and returns its
// collision grid.
func (d *LevelData) BuildCollision(zones config.TuneZones) (*collision.Collision, error) {
	c, err := collision.New(d.Layers, zones)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", d.Name, err)
	}
	return c, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each,
// and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string, log logrus.FieldLogger) (map[string]*LevelData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*LevelData, len(matches))
	names := make([]string, 0, len(matches))

	for _, p := range matches {
		data, err := LoadLevel(fsys, p, log)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		levels[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
