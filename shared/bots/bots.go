// Package bots holds the fixed input script used by headless clients and
// the simulate command.
package bots

import "github.com/automoto/hookcore/shared/character"

// Input is the scripted input of bot id at tick. Bots run back and forth,
// jump now and then and keep swinging their hook up and ahead.
func Input(tick uint64, id character.EntityID) character.Input {
	phase := tick + uint64(id)*37
	dir := int32(1)
	if phase/120%2 == 1 {
		dir = -1
	}
	return character.Input{
		CursorX: dir * int32(60+phase%80),
		CursorY: -int32(80 + phase%60),
		Dir:     dir,
		Jump:    phase%45 < 3,
		Hook:    phase%90 < 55,
	}
}
