package simulation

import (
	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/yohamta/donburi"
)

// worldPipe is the view of the world handed to one ticking character.
type worldPipe struct {
	w     *World
	self  character.EntityID
	entry *donburi.Entry
}

func (w *World) pipe(id character.EntityID, entry *donburi.Entry) *worldPipe {
	return &worldPipe{w: w, self: id, entry: entry}
}

func (p *worldPipe) Input() character.Input {
	return Input.Get(p.entry).Current
}

func (p *worldPipe) EachOther(fn func(character.EntityID, *character.Core) bool) {
	for el := p.w.characters.Front(); el != nil; el = el.Next() {
		if el.Key == p.self {
			continue
		}
		if !fn(el.Key, CharacterCore.Get(p.w.ecs.Entry(el.Value))) {
			return
		}
	}
}

func (p *worldPipe) EachOtherNear(lo, hi gamemath.Vec2, fn func(character.EntityID, *character.Core) bool) {
	for _, id := range p.w.broad.near(lo, hi) {
		if id == p.self {
			continue
		}
		core := p.w.core(id)
		if core == nil {
			continue
		}
		if !fn(id, core) {
			return
		}
	}
}

func (p *worldPipe) Other(id character.EntityID) (*character.Core, bool) {
	if id == p.self {
		return nil, false
	}
	core := p.w.core(id)
	return core, core != nil
}

func (p *worldPipe) HookedID() character.EntityID {
	return HookRelation.Get(p.entry).ID()
}

func (p *worldPipe) SetOrResetHookedChar(target character.EntityID) {
	character.SetOrResetHookedChar(p.self, target, p.w.hooked)
}

func (p *worldPipe) RandomOr0(n int) int {
	return p.w.randomOr0(n)
}
