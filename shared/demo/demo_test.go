package demo

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/automoto/hookcore/shared/simulation"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const seed = 7

var spawns = []gamemath.Vec2{{200, 81}, {400, 81}, {640, 81}}

func testCollision(t *testing.T) *collision.Collision {
	t.Helper()
	const w, h = 40, 5
	l := collision.Layers{Width: w, Height: h, Tiles: make([]uint8, w*h)}
	for i := 3 * w; i < w*h; i++ {
		l.Tiles[i] = collision.TileSolid
	}
	col, err := collision.New(l, nil)
	if err != nil {
		t.Fatal(err)
	}
	return col
}

func factory(t *testing.T) WorldFactory {
	col := testCollision(t)
	return func(h Header) (*simulation.World, error) {
		log, _ := logtest.NewNullLogger()
		return simulation.NewWorld(col, spawns, h.Seed, log), nil
	}
}

func inputAt(tick uint64, id character.EntityID) character.Input {
	n := int32(tick) + int32(id)*17
	return character.Input{
		CursorX: n%200 - 100,
		CursorY: -60 - n%40,
		Dir:     n/20%3 - 1,
		Jump:    n%13 < 2,
		Hook:    n%29 < 15,
	}
}

// record ticks a world for the given number of ticks and returns the
// stream. A non-zero tamper tick gets a wrong digest.
func record(t *testing.T, ticks, tamper uint64) ([]byte, uint64) {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	w, err := factory(t)(Header{Seed: seed})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, Header{Seed: seed, Level: "levels/test.tmx", Zones: config.DefaultTuneZones()}, log)
	if err != nil {
		t.Fatal(err)
	}
	for tick := uint64(0); tick < ticks; tick++ {
		switch tick {
		case 0:
			rec.Join(w.AddCharacter())
			rec.Join(w.AddCharacter())
		case 40:
			rec.Join(w.AddCharacter())
		}
		for _, id := range w.IDs() {
			in := inputAt(tick, id)
			if err := w.SetInput(id, in); err != nil {
				t.Fatal(err)
			}
			rec.Input(id, in)
		}
		if tick == 120 {
			w.RemoveCharacter(1)
			rec.Leave(1)
		}
		w.Step()

		digest := w.Digest()
		if w.CurrentTick() == tamper {
			digest++
		}
		if err := rec.EndTick(w.CurrentTick(), digest); err != nil {
			t.Fatal(err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.Frames() != int(ticks) {
		t.Fatalf("frames = %d, want %d", rec.Frames(), ticks)
	}
	return buf.Bytes(), w.Digest()
}

func TestRecordAndVerify(t *testing.T) {
	stream, final := record(t, 200, 0)
	log, _ := logtest.NewNullLogger()

	res, err := Verify(bytes.NewReader(stream), factory(t), log)
	if err != nil {
		t.Fatal(err)
	}
	if res.Frames != 200 {
		t.Errorf("frames = %d, want 200", res.Frames)
	}
	if res.Digest != final {
		t.Errorf("digest = %016x, want %016x", res.Digest, final)
	}
	if res.Header.Seed != seed || res.Header.Level != "levels/test.tmx" {
		t.Errorf("header = %+v", res.Header)
	}
}

func TestPlayerFrames(t *testing.T) {
	stream, _ := record(t, 130, 0)
	p, err := Open(bytes.NewReader(stream))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	h := p.Header()
	if h.Version != FormatVersion {
		t.Errorf("version = %d", h.Version)
	}
	if len(h.Zones) != 1 || h.Zones[0].Gravity != 0.5 {
		t.Errorf("zones = %+v", h.Zones)
	}

	var frames []Frame
	for {
		f, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		frames = append(frames, f)
	}
	if len(frames) != 130 {
		t.Fatalf("frames = %d, want 130", len(frames))
	}
	if got := frames[0].Joins; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("first joins = %v", got)
	}
	if got := frames[40].Joins; len(got) != 1 || got[0] != 3 {
		t.Errorf("joins at 40 = %v", got)
	}
	if got := frames[120].Leaves; len(got) != 1 || got[0] != 1 {
		t.Errorf("leaves at 120 = %v", got)
	}
	if n := len(frames[41].Inputs); n != 3 {
		t.Errorf("inputs at 41 = %d, want 3", n)
	}
	for i, f := range frames {
		if f.Tick != uint64(i+1) {
			t.Fatalf("frame %d has tick %d", i, f.Tick)
		}
		for j := 1; j < len(f.Inputs); j++ {
			if f.Inputs[j-1].ID >= f.Inputs[j].ID {
				t.Fatalf("frame %d inputs not ascending: %+v", i, f.Inputs)
			}
		}
	}
}

func TestVerifyReportsFirstMismatch(t *testing.T) {
	stream, _ := record(t, 100, 57)
	log, _ := logtest.NewNullLogger()

	res, err := Verify(bytes.NewReader(stream), factory(t), log)
	if !errors.Is(err, ErrDigestMismatch) {
		t.Fatalf("err = %v, want ErrDigestMismatch", err)
	}
	if !strings.Contains(err.Error(), "tick 57") {
		t.Errorf("err = %v, want tick 57", err)
	}
	if res.Frames != 56 {
		t.Errorf("verified frames = %d, want 56", res.Frames)
	}
}

func TestOpenRejectsForeignStreams(t *testing.T) {
	for _, in := range []string{"", "HOOK", "GIF89a-not-a-demo"} {
		if _, err := Open(strings.NewReader(in)); !errors.Is(err, ErrBadMagic) {
			t.Errorf("Open(%q) = %v, want ErrBadMagic", in, err)
		}
	}
}

func TestArchiveItemKey(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"finals", true},
		{"run-2", true},
		{"", false},
		{"../escape", false},
		{`a\b`, false},
		{"demo.zst", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := itemKey(tt.name)
			if tt.ok {
				if err != nil || key != itemPrefix+tt.name {
					t.Errorf("itemKey = %q, %v", key, err)
				}
				return
			}
			if !errors.Is(err, ErrBadName) {
				t.Errorf("err = %v, want ErrBadName", err)
			}
		})
	}
}
