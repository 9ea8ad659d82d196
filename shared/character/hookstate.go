package character

// HookState is the state of a character's hook. The numeric values are part
// of the wire format.
type HookState int32

const (
	HookRetracted    HookState = 0
	HookIdle         HookState = 1
	HookRetractStart HookState = 2
	HookRetractEnd   HookState = 3
	HookFlying       HookState = 4
	HookGrabbed      HookState = 5
)

// retractNext drives the retract sequence, one step per tick.
var retractNext = map[HookState]HookState{
	HookRetractStart: HookRetractEnd,
	HookRetractEnd:   HookRetracted,
}

// next returns the state following s in the retract sequence, or s itself.
func (s HookState) next() HookState {
	if n, ok := retractNext[s]; ok {
		return n
	}
	return s
}

// Valid reports whether s is a known state.
func (s HookState) Valid() bool {
	return s >= HookRetracted && s <= HookGrabbed
}

func (s HookState) String() string {
	switch s {
	case HookRetracted:
		return "Retracted"
	case HookIdle:
		return "Idle"
	case HookRetractStart:
		return "RetractStart"
	case HookRetractEnd:
		return "RetractEnd"
	case HookFlying:
		return "Flying"
	case HookGrabbed:
		return "Grabbed"
	}
	return "Unknown"
}
