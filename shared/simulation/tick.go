package simulation

import (
	"github.com/automoto/hookcore/shared/character"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// Step runs one full tick: PreTick, Tick and TickDeferred.
func (w *World) Step() {
	w.PreTick()
	w.Tick()
	w.TickDeferred()
}

// PreTick latches every character's latest input for the coming tick.
func (w *World) PreTick() {
	w.each(func(_ character.EntityID, entry *donburi.Entry) {
		in := Input.Get(entry)
		in.Current = in.Latest
	})
}

// Tick runs the input, jump and hook phase of every character. Peers are
// seen as they were before this pass moved anyone.
func (w *World) Tick() {
	w.each(func(id character.EntityID, entry *donburi.Entry) {
		core := CharacterCore.Get(entry)
		wasNew := core.NewHook
		core.PhysicsTick(true, false, w.pipe(id, entry), w.col)
		if core.NewHook && !wasNew {
			w.log.Debugf("Character %d hook teleported to (%.0f, %.0f)", id, core.HookPos[0], core.HookPos[1])
		}
	})
}

// TickDeferred resolves forces between characters, then moves and
// quantizes each of them. Force resolution finishes for everyone before the
// first character moves.
func (w *World) TickDeferred() {
	w.each(func(id character.EntityID, entry *donburi.Entry) {
		CharacterCore.Get(entry).PhysicsTickDeferred(w.pipe(id, entry))
	})
	w.each(func(id character.EntityID, entry *donburi.Entry) {
		core := CharacterCore.Get(entry)
		core.PhysicsMove(w.pipe(id, entry), w.col)
		core.Quantize()
		w.broad.move(Body.Get(entry).Object, core.Pos)
	})
	w.each(func(id character.EntityID, entry *donburi.Entry) {
		core := CharacterCore.Get(entry)
		if core.TriggeredEvents != 0 {
			w.log.WithFields(logrus.Fields{
				"character": id,
				"tick":      w.tick,
			}).Debugf("Events %s", core.TriggeredEvents)
		}
	})
	w.respawnDead()
	w.tick++
}

// respawnDead returns characters that touch a death tile or left the map to
// a spawn point.
func (w *World) respawnDead() {
	var dead []character.EntityID
	w.each(func(id character.EntityID, entry *donburi.Entry) {
		core := CharacterCore.Get(entry)
		if w.col.IsDeath(core.Pos[0], core.Pos[1]) || !w.col.InPlayfield(core.Pos) {
			dead = append(dead, id)
		}
	})
	for _, id := range dead {
		w.respawn(id)
	}
}

func (w *World) respawn(id character.EntityID) {
	entity, ok := w.characters.Get(id)
	if !ok {
		return
	}
	w.detach(id)

	entry := w.ecs.Entry(entity)
	old := CharacterCore.Get(entry)
	pos := w.spawnPos()
	core := character.NewCore(pos, w.col.TuneAt(pos))
	core.Solo, core.Super = old.Solo, old.Super
	core.CollisionDisabled, core.HookHitDisabled = old.CollisionDisabled, old.HookHitDisabled
	core.Jumps = old.Jumps
	*CharacterCore.Get(entry) = core
	w.broad.move(Body.Get(entry).Object, pos)

	w.log.Debugf("Character %d died at tick %d, respawned at (%.0f, %.0f)", id, w.tick, pos[0], pos[1])
}
