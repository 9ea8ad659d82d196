package network

import (
	"testing"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/automoto/hookcore/shared/netcomponents"
	"github.com/automoto/hookcore/shared/simulation"
)

// netState builds what a client decodes from the server's sync stream.
func netState(w *simulation.World) ServerState {
	st := ServerState{Tick: w.CurrentTick(), Digest: w.Digest()}
	for _, id := range w.IDs() {
		core, _ := w.Core(id)
		nc := NetCharacter{
			Core: netcomponents.NetCharacterCoreData{CharacterID: uint32(id), Core: core.Write()},
			Hook: netcomponents.NetHookData{Hooked: uint32(w.HookedID(id))},
		}
		st.Characters = append(st.Characters, nc)
	}
	return st
}

func TestServerStateSnapshot(t *testing.T) {
	server := newTestWorld(t)
	server.AddCharacterAt(gamemath.Vec2{300, 81})
	for tick := uint64(0); tick < 12; tick++ {
		if err := server.SetInput(1, inputAt(tick)); err != nil {
			t.Fatal(err)
		}
		server.Step()
	}
	st := netState(server)
	st.Characters = st.Characters[:1]
	st.Characters = append(st.Characters, NetCharacter{Core: netcomponents.NetCharacterCoreData{
		CharacterID: 5,
		Core:        character.NetObjCharacterCore{X: 500, Y: 81},
	}})

	local := newTestWorld(t)
	local.AddCharacterAt(gamemath.Vec2{100, 81})
	snap := st.Snapshot(local)

	if snap.Tick != 12 || snap.NextID != 6 {
		t.Errorf("tick %d next %d, want 12 and 6", snap.Tick, snap.NextID)
	}
	if len(snap.Characters) != 2 || snap.Characters[0].ID != 1 || snap.Characters[1].ID != 5 {
		t.Fatalf("characters = %+v", snap.Characters)
	}
	want, _ := server.Core(1)
	if got := snap.Characters[0].Core; got.Write() != want.Write() {
		t.Errorf("character 1 = %+v, want %+v", got.Write(), want.Write())
	}
	fresh := snap.Characters[1].Core
	if fresh.Pos != (gamemath.Vec2{500, 81}) || fresh.Tuning != config.DefaultTunings() || fresh.Jumps != character.DefaultJumps {
		t.Errorf("new character = %+v", fresh)
	}
}

func TestReconcileStateAcceptsCorrectPrediction(t *testing.T) {
	server := newTestWorld(t)
	p := NewPredictor(newTestWorld(t), 1, nil)
	for tick := uint64(0); tick < 6; tick++ {
		if _, err := p.Predict(inputAt(tick)); err != nil {
			t.Fatal(err)
		}
	}
	for tick := uint64(0); tick < 4; tick++ {
		if err := server.SetInput(1, inputAt(tick)); err != nil {
			t.Fatal(err)
		}
		server.Step()
		replayed, err := p.ReconcileState(netState(server))
		if err != nil {
			t.Fatal(err)
		}
		if replayed != 0 {
			t.Fatalf("tick %d: replayed %d ticks", tick, replayed)
		}
	}
}
