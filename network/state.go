package network

import (
	"cmp"
	"slices"

	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/netcomponents"
	"github.com/automoto/hookcore/shared/simulation"
	"github.com/leap-fish/necs/esync"
)

// NetCharacter is one character as synced by the server.
type NetCharacter struct {
	Core netcomponents.NetCharacterCoreData
	Hook netcomponents.NetHookData
}

// ServerState is the decoded content of a server world snapshot.
type ServerState struct {
	Tick       uint64
	Digest     uint64
	Level      string
	Characters []NetCharacter // ascending CharacterID
}

// DecodeWorldSnapshot extracts the synced characters and game state from a
// necs snapshot. Components that fail to decode are skipped.
func DecodeWorldSnapshot(snapshot esync.WorldSnapshot) ServerState {
	var st ServerState
	for _, ent := range snapshot {
		var ch NetCharacter
		isCharacter := false
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetCharacterCoreData:
				ch.Core = v
				isCharacter = true
			case netcomponents.NetHookData:
				ch.Hook = v
			case netcomponents.NetGameStateData:
				st.Tick = v.Tick
				st.Digest = v.Digest
				st.Level = v.Level
			}
		}
		if isCharacter {
			st.Characters = append(st.Characters, ch)
		}
	}
	slices.SortFunc(st.Characters, func(a, b NetCharacter) int {
		return cmp.Compare(a.Core.CharacterID, b.Core.CharacterID)
	})
	return st
}

// Snapshot overlays the server state onto a snapshot of w. The wire form
// only carries part of a core, so everything else (tunings, jump budget,
// flags, pending input) is kept from the local character. Characters the
// server does not list are dropped; unknown ones start from a fresh core.
func (st ServerState) Snapshot(w *simulation.World) simulation.Snapshot {
	base := w.Snapshot()
	local := make(map[character.EntityID]simulation.CharacterState, len(base.Characters))
	for _, cs := range base.Characters {
		local[cs.ID] = cs
	}

	out := simulation.Snapshot{
		Tick:       st.Tick,
		NextID:     base.NextID,
		RandState:  base.RandState,
		Characters: make([]simulation.CharacterState, 0, len(st.Characters)),
	}
	for _, nc := range st.Characters {
		id := character.EntityID(nc.Core.CharacterID)
		cs, ok := local[id]
		cs.ID = id
		cs.Core.Read(nc.Core.Core)
		if !ok {
			fresh := character.NewCore(cs.Core.Pos, w.Collision().TuneAt(cs.Core.Pos))
			fresh.Read(nc.Core.Core)
			cs.Core = fresh
		}
		cs.Hooked = character.EntityID(nc.Hook.Hooked)
		out.Characters = append(out.Characters, cs)
		if id >= out.NextID {
			out.NextID = id + 1
		}
	}
	return out
}
