package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request joining the game.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	NetworkID   esync.NetworkId
	CharacterID uint32
	ServerName  string
	TickRate    int
	Level       string
	Tick        uint64 // server tick at the time of joining
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}

// InputAck tells a client the last input sequence the server applied and the
// tick it was applied on.
type InputAck struct {
	Sequence uint32
	Tick     uint64
}
