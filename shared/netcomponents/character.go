// Package netcomponents defines the donburi components the server syncs to
// clients. They carry the integer wire form only, never live cores.
package netcomponents

import (
	"github.com/automoto/hookcore/shared/character"
	"github.com/yohamta/donburi"
)

type NetCharacterCoreData struct {
	CharacterID  uint32
	Core         character.NetObjCharacterCore
	Events       int32  // character.CoreEvent flags raised in the last tick
	LastSequence uint32 // Last input sequence processed by the server (for prediction reconciliation)
}

var NetCharacterCore = donburi.NewComponentType[NetCharacterCoreData]()

// LerpNetCharacterCore interpolates the character and hook positions.
// Everything else snaps to the newer state.
func LerpNetCharacterCore(from, to NetCharacterCoreData, t float64) *NetCharacterCoreData {
	out := to
	out.Core.X = lerp(from.Core.X, to.Core.X, t)
	out.Core.Y = lerp(from.Core.Y, to.Core.Y, t)
	if from.Core.HookState == to.Core.HookState {
		out.Core.HookX = lerp(from.Core.HookX, to.Core.HookX, t)
		out.Core.HookY = lerp(from.Core.HookY, to.Core.HookY, t)
	}
	return &out
}

func lerp(a, b int32, t float64) int32 {
	return a + int32(float64(b-a)*t)
}
