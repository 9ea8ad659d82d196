package main

import (
	"bytes"
	"testing"

	"github.com/automoto/hookcore/server/core"
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/demo"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/automoto/hookcore/shared/leveldata"
	"github.com/automoto/hookcore/shared/simulation"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func arena(t *testing.T) *core.ServerLevel {
	t.Helper()
	const w, h = 50, 12
	data := &leveldata.LevelData{
		Name:   "arena",
		Layers: collision.Layers{Width: w, Height: h, Tiles: make([]uint8, w*h)},
		SpawnPoints: []leveldata.SpawnPoint{
			{Pos: gamemath.Vec2{300, 337}},
			{Pos: gamemath.Vec2{900, 337}},
		},
	}
	for x := range w {
		data.Layers.Tiles[x] = collision.TileSolid
		data.Layers.Tiles[(h-1)*w+x] = collision.TileSolid
	}
	log, _ := logtest.NewNullLogger()
	lvl, err := core.NewServerLevel(data, nil, log)
	if err != nil {
		t.Fatal(err)
	}
	return lvl
}

func TestBotsAreDeterministic(t *testing.T) {
	lvl := arena(t)
	log, _ := logtest.NewNullLogger()

	run := func() uint64 {
		w := lvl.NewWorld(5, log)
		if err := runBots(w, 4, 400, nil); err != nil {
			t.Fatal(err)
		}
		return w.Digest()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("digests differ: %016x != %016x", a, b)
	}
}

func TestRecordedBotsVerify(t *testing.T) {
	lvl := arena(t)
	log, _ := logtest.NewNullLogger()

	var buf bytes.Buffer
	rec, err := demo.NewRecorder(&buf, demo.Header{Seed: 5, Level: lvl.Name, Zones: lvl.Zones}, log)
	if err != nil {
		t.Fatal(err)
	}
	w := lvl.NewWorld(5, log)
	if err := runBots(w, 3, 250, rec); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	res, err := demo.Verify(&buf, func(h demo.Header) (*simulation.World, error) {
		return lvl.NewWorld(h.Seed, log), nil
	}, log)
	if err != nil {
		t.Fatal(err)
	}
	if res.Frames != 250 || res.Digest != w.Digest() {
		t.Errorf("result = %+v, want 250 frames ending in %016x", res, w.Digest())
	}
}
