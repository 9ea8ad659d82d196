package character

import "strings"

// CoreEvent flags are raised during a tick for sounds and effects. They are
// cleared at the start of every physics tick.
type CoreEvent int32

const (
	EventGroundJump       CoreEvent = 0x01
	EventAirJump          CoreEvent = 0x02
	EventHookLaunch       CoreEvent = 0x04
	EventHookAttachPlayer CoreEvent = 0x08
	EventHookAttachGround CoreEvent = 0x10
	EventHookHitNoHook    CoreEvent = 0x20
	EventHookRetract      CoreEvent = 0x40
)

var eventNames = []struct {
	ev   CoreEvent
	name string
}{
	{EventGroundJump, "ground_jump"},
	{EventAirJump, "air_jump"},
	{EventHookLaunch, "hook_launch"},
	{EventHookAttachPlayer, "hook_attach_player"},
	{EventHookAttachGround, "hook_attach_ground"},
	{EventHookHitNoHook, "hook_hit_nohook"},
	{EventHookRetract, "hook_retract"},
}

// Has reports whether all flags of ev are set.
func (e CoreEvent) Has(ev CoreEvent) bool {
	return e&ev == ev
}

func (e CoreEvent) String() string {
	var parts []string
	for _, n := range eventNames {
		if e.Has(n.ev) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
