// Package simulation owns a population of characters and ticks them in
// lockstep. It implements the character pipe on top of a donburi world,
// keeps characters in ascending ID order, and can snapshot, restore and
// digest its full state for prediction and demo verification.
package simulation

import (
	"fmt"

	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// World ticks characters against one collision grid. It is not safe for
// concurrent use: one goroutine owns and ticks a world.
type World struct {
	ecs    donburi.World
	col    *collision.Collision
	spawns []gamemath.Vec2
	log    logrus.FieldLogger

	// characters maps IDs to entities in insertion order, which is
	// ascending ID order because IDs only grow.
	characters *orderedmap.OrderedMap[character.EntityID, donburi.Entity]
	broad      *broadphase
	rng        *Rand
	nextID     character.EntityID
	tick       uint64
}

// NewWorld creates an empty world. Characters spawn at one of spawns, or at
// the origin when there are none.
func NewWorld(col *collision.Collision, spawns []gamemath.Vec2, seed uint64, log logrus.FieldLogger) *World {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &World{
		ecs:        donburi.NewWorld(),
		col:        col,
		spawns:     spawns,
		log:        log,
		characters: orderedmap.NewOrderedMap[character.EntityID, donburi.Entity](),
		broad:      newBroadphase(int(col.Width()*collision.TileSize), int(col.Height()*collision.TileSize)),
		rng:        NewRand(seed),
		nextID:     1,
	}
}

// Collision returns the grid the world ticks against.
func (w *World) Collision() *collision.Collision { return w.col }

// CurrentTick returns the number of completed ticks.
func (w *World) CurrentTick() uint64 { return w.tick }

// Len returns the number of characters.
func (w *World) Len() int { return w.characters.Len() }

// IDs returns all character IDs in ascending order.
func (w *World) IDs() []character.EntityID { return w.characters.Keys() }

// AddCharacter spawns a new character at a random spawn point.
func (w *World) AddCharacter() character.EntityID {
	return w.AddCharacterAt(w.spawnPos())
}

// AddCharacterAt spawns a new character at pos.
func (w *World) AddCharacterAt(pos gamemath.Vec2) character.EntityID {
	id := w.nextID
	w.nextID++
	w.create(id, character.NewCore(pos, w.col.TuneAt(pos)))
	w.log.Debugf("Character %d spawned at (%.0f, %.0f)", id, pos[0], pos[1])
	return id
}

func (w *World) create(id character.EntityID, core character.Core) donburi.Entity {
	entity := w.ecs.Create(CharacterID, CharacterCore, HookRelation, Input, Body)
	entry := w.ecs.Entry(entity)

	*CharacterID.Get(entry) = id
	*CharacterCore.Get(entry) = core
	*Body.Get(entry) = BodyData{Object: w.broad.add(id, core.Pos)}

	w.characters.Set(id, entity)
	return entity
}

// RemoveCharacter removes a character and resets every hook relation that
// references it. It reports whether the character existed.
func (w *World) RemoveCharacter(id character.EntityID) bool {
	entity, ok := w.characters.Get(id)
	if !ok {
		return false
	}
	w.detach(id)

	entry := w.ecs.Entry(entity)
	w.broad.remove(Body.Get(entry).Object)
	w.ecs.Remove(entity)
	w.characters.Delete(id)
	w.log.Debugf("Character %d removed", id)
	return true
}

// detach clears the hook relation of id on both sides. Characters holding id
// retract their hook.
func (w *World) detach(id character.EntityID) {
	h := w.hooked(id)
	if h == nil {
		return
	}
	character.SetOrResetHookedChar(id, character.NoEntity, w.hooked)
	for _, holder := range h.AttachedIDs() {
		character.SetOrResetHookedChar(holder, character.NoEntity, w.hooked)
		if c := w.core(holder); c != nil {
			c.HookState = character.HookRetracted
			c.HookPos = c.Pos
		}
	}
}

// SetInput stores the input a character uses from the next tick on.
func (w *World) SetInput(id character.EntityID, in character.Input) error {
	entity, ok := w.characters.Get(id)
	if !ok {
		return fmt.Errorf("set input: unknown character %d", id)
	}
	Input.Get(w.ecs.Entry(entity)).Latest = in
	return nil
}

// Core returns a copy of a character's core.
func (w *World) Core(id character.EntityID) (character.Core, bool) {
	c := w.core(id)
	if c == nil {
		return character.Core{}, false
	}
	return *c, true
}

// SetCore overwrites a character's core, keeping its hook relation.
func (w *World) SetCore(id character.EntityID, core character.Core) error {
	entity, ok := w.characters.Get(id)
	if !ok {
		return fmt.Errorf("set core: unknown character %d", id)
	}
	entry := w.ecs.Entry(entity)
	*CharacterCore.Get(entry) = core
	w.broad.move(Body.Get(entry).Object, core.Pos)
	return nil
}

// HookedID returns the character id holds.
func (w *World) HookedID(id character.EntityID) character.EntityID {
	if h := w.hooked(id); h != nil {
		return h.ID()
	}
	return character.NoEntity
}

// AttachedIDs returns the characters holding id.
func (w *World) AttachedIDs(id character.EntityID) []character.EntityID {
	if h := w.hooked(id); h != nil {
		return h.AttachedIDs()
	}
	return nil
}

func (w *World) core(id character.EntityID) *character.Core {
	entity, ok := w.characters.Get(id)
	if !ok {
		return nil
	}
	return CharacterCore.Get(w.ecs.Entry(entity))
}

func (w *World) hooked(id character.EntityID) *character.HookedCharacter {
	entity, ok := w.characters.Get(id)
	if !ok {
		return nil
	}
	return HookRelation.Get(w.ecs.Entry(entity))
}

// each visits characters in ascending ID order.
func (w *World) each(fn func(id character.EntityID, entry *donburi.Entry)) {
	for el := w.characters.Front(); el != nil; el = el.Next() {
		fn(el.Key, w.ecs.Entry(el.Value))
	}
}

func (w *World) spawnPos() gamemath.Vec2 {
	if len(w.spawns) == 0 {
		return gamemath.Vec2{}
	}
	return w.spawns[w.randomOr0(len(w.spawns))]
}

func (w *World) randomOr0(n int) int {
	if n < 2 {
		return 0
	}
	return w.rng.Intn(n)
}
