package network

import (
	"strings"
	"testing"

	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/automoto/hookcore/shared/messages"
	"github.com/automoto/hookcore/shared/simulation"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newTestWorld(t *testing.T) *simulation.World {
	t.Helper()
	air := strings.Repeat(".", 40)
	solid := strings.Repeat("#", 40)
	l := collision.Layers{Width: 40, Height: 5}
	for _, r := range []string{air, air, air, solid, solid} {
		for _, ch := range r {
			if ch == '#' {
				l.Tiles = append(l.Tiles, collision.TileSolid)
			} else {
				l.Tiles = append(l.Tiles, collision.TileAir)
			}
		}
	}
	col, err := collision.New(l, nil)
	if err != nil {
		t.Fatal(err)
	}
	log, _ := logtest.NewNullLogger()
	w := simulation.NewWorld(col, nil, 9, log)
	w.AddCharacterAt(gamemath.Vec2{200, 81})
	return w
}

func inputAt(tick uint64) character.Input {
	return character.Input{
		CursorX: 10,
		CursorY: -3,
		Dir:     1,
		Jump:    tick%6 == 2,
		Hook:    tick >= 4,
	}
}

func TestPredictorMatchesServer(t *testing.T) {
	server := newTestWorld(t)
	p := NewPredictor(newTestWorld(t), 1, nil)

	for tick := uint64(0); tick < 8; tick++ {
		msg, err := p.Predict(inputAt(tick))
		if err != nil {
			t.Fatal(err)
		}
		if msg.Tick != tick || msg.Sequence != uint32(tick+1) {
			t.Fatalf("msg = %+v", msg)
		}
	}

	for tick := uint64(0); tick < 5; tick++ {
		if err := server.SetInput(1, inputAt(tick)); err != nil {
			t.Fatal(err)
		}
		server.Step()
		replayed, err := p.Reconcile(server.Snapshot())
		if err != nil {
			t.Fatal(err)
		}
		if replayed != 0 {
			t.Fatalf("tick %d: replayed %d ticks for a correct prediction", tick, replayed)
		}
	}
	if p.World().CurrentTick() != 8 {
		t.Errorf("predicted world at tick %d, want 8", p.World().CurrentTick())
	}
}

func TestPredictorRollsBack(t *testing.T) {
	server := newTestWorld(t)
	p := NewPredictor(newTestWorld(t), 1, nil)

	for tick := uint64(0); tick < 8; tick++ {
		if _, err := p.Predict(inputAt(tick)); err != nil {
			t.Fatal(err)
		}
	}

	for tick := uint64(0); tick < 5; tick++ {
		if err := server.SetInput(1, inputAt(tick)); err != nil {
			t.Fatal(err)
		}
		server.Step()
		if tick == 2 {
			// something the client could not know about
			core, _ := server.Core(1)
			core.Vel[0] = -5
			if err := server.SetCore(1, core); err != nil {
				t.Fatal(err)
			}
		}
	}

	replayed, err := p.Reconcile(server.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if replayed != 3 {
		t.Fatalf("replayed %d ticks, want 3", replayed)
	}

	for tick := uint64(5); tick < 8; tick++ {
		if err := server.SetInput(1, inputAt(tick)); err != nil {
			t.Fatal(err)
		}
		server.Step()
	}
	if server.Digest() != p.World().Digest() {
		want, _ := server.Core(1)
		got, _ := p.World().Core(1)
		t.Errorf("after replay:\n got %+v\nwant %+v", got, want)
	}
}

func TestReconcileUnknownCharacter(t *testing.T) {
	p := NewPredictor(newTestWorld(t), 7, nil)
	if _, err := p.Reconcile(simulation.Snapshot{Tick: 3}); err == nil {
		t.Error("expected an error for a snapshot without the local character")
	}
	if _, err := p.Predict(character.Input{}); err == nil {
		t.Error("expected an error predicting a missing character")
	}
}

func TestPredictionBuffer(t *testing.T) {
	var pb PredictionBuffer
	for tick := uint64(10); tick < 20; tick++ {
		pb.Store(messages.PlayerInput{Tick: tick}, character.NetObjCharacterCore{X: int32(tick)})
	}

	if pb.NextTick() != 20 {
		t.Errorf("NextTick = %d", pb.NextTick())
	}
	if rec, ok := pb.Get(15); !ok || rec.Predicted.X != 15 {
		t.Errorf("Get(15) = %+v, %v", rec, ok)
	}
	if _, ok := pb.Get(5); ok {
		t.Error("Get(5) should miss")
	}
	if _, ok := pb.Get(15 + predictionBufferSize); ok {
		t.Error("a tick sharing a slot must not match")
	}
	if got := pb.Since(17); len(got) != 3 || got[0].Input.Tick != 17 {
		t.Errorf("Since(17) = %d records", len(got))
	}
	if !pb.Matches(12, character.NetObjCharacterCore{X: 12}) || pb.Matches(12, character.NetObjCharacterCore{X: 13}) {
		t.Error("Matches compares the stored prediction")
	}
}
