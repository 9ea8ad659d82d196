package netcomponents

import "github.com/yohamta/donburi"

// NetHookData mirrors a character's hook relation by character ID.
type NetHookData struct {
	Hooked   uint32   // 0 when holding nobody
	Attached []uint32 // characters holding this one, ascending
}

var NetHook = donburi.NewComponentType[NetHookData]()
