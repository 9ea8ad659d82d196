package simulation

import (
	"github.com/automoto/hookcore/shared/character"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// InputData holds the input a client sent last and the input latched for
// the running tick.
type InputData struct {
	Latest  character.Input
	Current character.Input
}

// BodyData links a character to its broad-phase object.
type BodyData struct {
	Object *resolv.Object
}

// Character components. Every character entity carries all of them.
var (
	CharacterID   = donburi.NewComponentType[character.EntityID]()
	CharacterCore = donburi.NewComponentType[character.Core]()
	HookRelation  = donburi.NewComponentType[character.HookedCharacter]()
	Input         = donburi.NewComponentType[InputData]()
	Body          = donburi.NewComponentType[BodyData]()
)
