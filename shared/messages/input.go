package messages

import "github.com/automoto/hookcore/shared/character"

// PlayerInput is sent from client to server every tick with the player's input state.
// Used for server-side movement processing and client-side prediction reconciliation.
type PlayerInput struct {
	Sequence  uint32 // Incrementing ID for reconciliation
	Tick      uint64 // Simulation tick the input applies to
	CursorX   int32  // Aim relative to the character
	CursorY   int32
	Direction int32 // -1 left, 0 none, 1 right
	Jump      bool
	Hook      bool
	Timestamp int64 // Client timestamp (Unix ms)
}

// NewPlayerInput wraps a character input for sending.
func NewPlayerInput(seq uint32, tick uint64, in character.Input) PlayerInput {
	return PlayerInput{
		Sequence:  seq,
		Tick:      tick,
		CursorX:   in.CursorX,
		CursorY:   in.CursorY,
		Direction: in.Dir,
		Jump:      in.Jump,
		Hook:      in.Hook,
	}
}

// CharacterInput returns the input as the character core consumes it.
// Directions outside -1..1 are clamped.
func (p PlayerInput) CharacterInput() character.Input {
	return character.Input{
		CursorX: p.CursorX,
		CursorY: p.CursorY,
		Dir:     max(-1, min(1, p.Direction)),
		Jump:    p.Jump,
		Hook:    p.Hook,
	}
}
