package netcomponents

import "github.com/yohamta/donburi"

type NetGameStateData struct {
	Tick       uint64
	Level      string
	Characters int
	Digest     uint64 // simulation digest after Tick, for desync detection
}

var NetGameState = donburi.NewComponentType[NetGameStateData]()
