package core

import (
	"fmt"
	"io/fs"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/leveldata"
	"github.com/automoto/hookcore/shared/simulation"
	"github.com/sirupsen/logrus"
)

// ServerLevel is a level ready to be simulated: its parsed data, the zone
// table it was validated against and the resulting collision grid.
type ServerLevel struct {
	Name      string
	Data      *leveldata.LevelData
	Zones     config.TuneZones
	Collision *collision.Collision
}

// NewServerLevel builds the collision grid of data against zones.
func NewServerLevel(data *leveldata.LevelData, zones config.TuneZones, log logrus.FieldLogger) (*ServerLevel, error) {
	if len(zones) == 0 {
		zones = config.DefaultTuneZones()
	}
	col, err := data.BuildCollision(zones)
	if err != nil {
		return nil, err
	}

	log.Infof("Loaded level %s: %dx%d tiles, %d spawn points, %d tune zones",
		data.Name, col.Width(), col.Height(), len(data.SpawnPoints), len(zones))

	return &ServerLevel{
		Name:      data.Name,
		Data:      data,
		Zones:     zones,
		Collision: col,
	}, nil
}

// NewWorld returns an empty world on this level.
func (l *ServerLevel) NewWorld(seed uint64, log logrus.FieldLogger) *simulation.World {
	return simulation.NewWorld(l.Collision, l.Data.SpawnPositions(), seed, log)
}

// LoadAllServerLevels loads every .tmx level under levels/ in fsys, keyed by
// stem name, plus a sorted name list.
func LoadAllServerLevels(fsys fs.FS, zones config.TuneZones, log logrus.FieldLogger) (map[string]*ServerLevel, []string, error) {
	dataMap, names, err := leveldata.LoadAllLevels(fsys, "levels", log)
	if err != nil {
		return nil, nil, fmt.Errorf("load all levels: %w", err)
	}

	levels := make(map[string]*ServerLevel, len(names))
	for _, name := range names {
		lvl, err := NewServerLevel(dataMap[name], zones, log)
		if err != nil {
			return nil, nil, err
		}
		levels[name] = lvl
	}

	return levels, names, nil
}

// LoadServerLevel loads the level and zone table named by settings.
func LoadServerLevel(fsys fs.FS, s config.ServerSettings, log logrus.FieldLogger) (*ServerLevel, error) {
	zones := config.DefaultTuneZones()
	if s.TuneZones != "" {
		var err error
		if zones, err = config.LoadTuneZones(fsys, s.TuneZones); err != nil {
			return nil, err
		}
	}

	levels, names, err := LoadAllServerLevels(fsys, zones, log)
	if err != nil {
		return nil, err
	}
	lvl, ok := levels[s.Level]
	if !ok {
		return nil, fmt.Errorf("level %q not found, have %v", s.Level, names)
	}
	return lvl, nil
}
