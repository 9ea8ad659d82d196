package simulation

import (
	"encoding/binary"
	"math"

	"github.com/automoto/hookcore/shared/character"
	"github.com/yohamta/donburi"
	"github.com/zeebo/xxh3"
)

// CharacterState is everything needed to rebuild one character.
type CharacterState struct {
	ID     character.EntityID
	Core   character.Core
	Hooked character.EntityID
	Input  InputData
}

// Snapshot is a deep copy of a world's simulated state.
type Snapshot struct {
	Tick       uint64
	NextID     character.EntityID
	RandState  uint64
	Characters []CharacterState // ascending ID
}

// Snapshot copies the world's state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       w.tick,
		NextID:     w.nextID,
		RandState:  w.rng.State(),
		Characters: make([]CharacterState, 0, w.Len()),
	}
	w.each(func(id character.EntityID, entry *donburi.Entry) {
		s.Characters = append(s.Characters, CharacterState{
			ID:     id,
			Core:   *CharacterCore.Get(entry),
			Hooked: HookRelation.Get(entry).ID(),
			Input:  *Input.Get(entry),
		})
	})
	return s
}

// Restore replaces the world's state with s. Hook relations are rebuilt
// from the holders, so both sides agree afterwards.
func (w *World) Restore(s Snapshot) {
	for el := w.characters.Front(); el != nil; el = el.Next() {
		w.broad.remove(Body.Get(w.ecs.Entry(el.Value)).Object)
		w.ecs.Remove(el.Value)
	}
	for _, id := range w.characters.Keys() {
		w.characters.Delete(id)
	}

	w.tick = s.Tick
	w.nextID = s.NextID
	w.rng.SetState(s.RandState)

	for _, cs := range s.Characters {
		entity := w.create(cs.ID, cs.Core)
		*Input.Get(w.ecs.Entry(entity)) = cs.Input
	}
	for _, cs := range s.Characters {
		character.SetOrResetHookedChar(cs.ID, cs.Hooked, w.hooked)
	}
}

// Digest hashes the simulated state. Two worlds that ticked the same inputs
// from the same start have equal digests.
func (w *World) Digest() uint64 {
	h := xxh3.New()
	var buf []byte
	buf = binary.LittleEndian.AppendUint64(buf, w.tick)
	buf = binary.LittleEndian.AppendUint64(buf, w.rng.State())

	w.each(func(id character.EntityID, entry *donburi.Entry) {
		core := CharacterCore.Get(entry)
		wire := core.Write()

		buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
		buf, _ = wire.AppendBinary(buf)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(HookRelation.Get(entry).ID()))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(core.JumpedTotal))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(core.Jumps))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(core.Colliding))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(core.HookTeleBase[0]))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(core.HookTeleBase[1]))
		buf = append(buf, flags(core))

		_, _ = h.Write(buf)
		buf = buf[:0]
	})
	if len(buf) > 0 {
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

func flags(c *character.Core) byte {
	var b byte
	for i, f := range []bool{c.LeftWall, c.Solo, c.Super, c.CollisionDisabled, c.HookHitDisabled, c.NewHook} {
		if f {
			b |= 1 << i
		}
	}
	return b
}
