package leveldata

import (
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const tmxHeader = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="6" height="4" tilewidth="32" tileheight="32" infinite="0" nextlayerid="5" nextobjectid="6">
 <tileset firstgid="1" name="entities" tilewidth="32" tileheight="32" tilecount="256" columns="16">
  <image source="entities.png" width="512" height="512"/>
 </tileset>
`

const gameLayer = ` <layer id="1" name="game" width="6" height="4">
  <data encoding="csv">
0,0,0,0,0,0,
0,0,0,0,0,0,
0,0,0,0,0,0,
2,2,4,2,3,2
</data>
 </layer>
`

const tuneLayer = ` <layer id="2" name="tune" width="6" height="4">
  <data encoding="csv">
2,0,0,0,0,0,
0,0,0,0,0,0,
0,0,0,0,0,0,
0,0,0,0,0,0
</data>
 </layer>
`

const objects = ` <objectgroup id="3" name="PlayerSpawn">
  <object id="1" x="100" y="80">
   <properties><property name="spawnIndex" type="int" value="1"/></properties>
  </object>
  <object id="2" x="40" y="80">
   <properties><property name="spawnIndex" type="int" value="0"/></properties>
  </object>
 </objectgroup>
 <objectgroup id="4" name="Teleporters">
  <object id="3" x="64" y="32" width="64" height="32">
   <properties>
    <property name="kind" value="hook"/>
    <property name="number" type="int" value="1"/>
   </properties>
  </object>
  <object id="4" x="160" y="0" width="32" height="32">
   <properties>
    <property name="kind" value="out"/>
    <property name="number" type="int" value="1"/>
   </properties>
  </object>
 </objectgroup>
`

func tmx(parts ...string) *fstest.MapFile {
	s := tmxHeader
	for _, p := range parts {
		s += p
	}
	return &fstest.MapFile{Data: []byte(s + "</map>\n")}
}

func TestLoadLevel(t *testing.T) {
	fsys := fstest.MapFS{"levels/arena.tmx": tmx(gameLayer, tuneLayer, objects)}

	data, err := LoadLevel(fsys, "levels/arena.tmx", nil)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}

	if data.Name != "arena" || data.MapWidth != 192 || data.MapHeight != 128 {
		t.Errorf("name %q size %dx%d", data.Name, data.MapWidth, data.MapHeight)
	}

	tiles := data.Layers.Tiles
	want := map[int]uint8{
		3*6 + 0: collision.TileSolid,
		3*6 + 2: collision.TileNoHook,
		3*6 + 4: collision.TileDeath,
		2*6 + 1: collision.TileAir,
	}
	for i, kind := range want {
		if tiles[i] != kind {
			t.Errorf("tile %d = %d, want %d", i, tiles[i], kind)
		}
	}
	if data.Layers.Tune[0] != 1 || data.Layers.Tune[1] != 0 {
		t.Errorf("tune = %v", data.Layers.Tune[:2])
	}

	hook := collision.TeleTile{Number: 1, Type: collision.TileTeleInHook}
	if data.Layers.Tele[1*6+2] != hook || data.Layers.Tele[1*6+3] != hook {
		t.Errorf("tele row 1 = %v", data.Layers.Tele[6:12])
	}
	if data.Layers.Tele[1*6+4] != (collision.TeleTile{}) {
		t.Errorf("tele cell past the rectangle is set: %v", data.Layers.Tele[1*6+4])
	}
	outs := data.Layers.TeleOuts[1]
	if len(outs) != 1 || outs[0] != (gamemath.Vec2{176, 16}) {
		t.Errorf("outs = %v", outs)
	}

	spawns := data.SpawnPositions()
	if len(spawns) != 2 || spawns[0] != (gamemath.Vec2{40, 80}) || data.SpawnPoints[0].Index != 0 {
		t.Errorf("spawns = %+v", data.SpawnPoints)
	}
}

func TestBuildCollision(t *testing.T) {
	fsys := fstest.MapFS{"arena.tmx": tmx(gameLayer, tuneLayer, objects)}
	data, err := LoadLevel(fsys, "arena.tmx", nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := data.BuildCollision(config.DefaultTuneZones()); !errors.Is(err, config.ErrUnknownZone) {
		t.Fatalf("default zones: err = %v, want ErrUnknownZone", err)
	}

	zones, err := config.ParseTuneZones([]byte("zones:\n  1:\n    gravity: 0.1\n"))
	if err != nil {
		t.Fatal(err)
	}
	col, err := data.BuildCollision(zones)
	if err != nil {
		t.Fatalf("BuildCollision: %v", err)
	}
	if !col.CheckPoint(10, 100) || !col.IsDeath(140, 100) || col.CheckPoint(10, 60) {
		t.Error("grid does not match the game layer")
	}
	if g := col.TuneAt(gamemath.Vec2{10, 10}).Gravity; g != 0.1 {
		t.Errorf("zone gravity = %v", g)
	}
	if got := col.TeleOuts(1); len(got) != 1 {
		t.Errorf("TeleOuts(1) = %v", got)
	}
}

func TestLoadLevelErrors(t *testing.T) {
	badTele := ` <objectgroup id="4" name="Teleporters">
  <object id="3" x="0" y="0" width="32" height="32">
   <properties><property name="kind" value="portal"/><property name="number" type="int" value="1"/></properties>
  </object>
 </objectgroup>
`
	fsys := fstest.MapFS{
		"nogame.tmx":  tmx(tuneLayer),
		"badtele.tmx": tmx(gameLayer, badTele),
	}
	for _, name := range []string{"nogame.tmx", "badtele.tmx", "missing.tmx"} {
		if _, err := LoadLevel(fsys, name, nil); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTeleporterWithoutOutputWarns(t *testing.T) {
	inOnly := ` <objectgroup id="4" name="Teleporters">
  <object id="3" x="0" y="0" width="32" height="32">
   <properties><property name="kind" value="hook"/><property name="number" type="int" value="7"/></properties>
  </object>
 </objectgroup>
`
	fsys := fstest.MapFS{"lonely.tmx": tmx(gameLayer, inOnly)}
	log, hook := logtest.NewNullLogger()

	if _, err := LoadLevel(fsys, "lonely.tmx", log); err != nil {
		t.Fatal(err)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("want a warning, got %v", hook.AllEntries())
	}
}

func TestLoadAllLevels(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/b.tmx": tmx(gameLayer),
		"levels/a.tmx": tmx(gameLayer, objects),
		"levels/notes": &fstest.MapFile{Data: []byte("x")},
		"other/c.tmx":  tmx(gameLayer),
	}
	levels, names, err := LoadAllLevels(fsys, "levels", nil)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(names) != "[a b]" || len(levels) != 2 {
		t.Errorf("names = %v", names)
	}

	if _, _, err := LoadAllLevels(fsys, "empty", nil); err == nil {
		t.Error("expected an error for a directory without levels")
	}
}
