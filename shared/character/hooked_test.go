package character

import (
	"slices"
	"testing"
)

func TestSetOrResetHookedChar(t *testing.T) {
	hooks := map[EntityID]*HookedCharacter{1: {}, 2: {}, 3: {}}
	lookup := func(id EntityID) *HookedCharacter { return hooks[id] }

	SetOrResetHookedChar(1, 2, lookup)
	SetOrResetHookedChar(3, 2, lookup)
	if hooks[1].ID() != 2 || hooks[3].ID() != 2 {
		t.Fatalf("holders: %d %d", hooks[1].ID(), hooks[3].ID())
	}
	if got := hooks[2].AttachedIDs(); !slices.Equal(got, []EntityID{1, 3}) {
		t.Fatalf("attached = %v, want [1 3]", got)
	}

	// switching targets detaches from the old one
	SetOrResetHookedChar(1, 3, lookup)
	if hooks[2].IsAttached(1) || !hooks[3].IsAttached(1) {
		t.Errorf("after switch: 2 attached %v, 3 attached %v", hooks[2].AttachedIDs(), hooks[3].AttachedIDs())
	}

	SetOrResetHookedChar(1, NoEntity, lookup)
	if hooks[1].ID() != NoEntity || hooks[3].IsAttached(1) {
		t.Error("reset left a dangling link")
	}
	SetOrResetHookedChar(1, NoEntity, lookup)

	SetOrResetHookedChar(1, 1, lookup)
	if hooks[1].ID() != NoEntity {
		t.Error("a character cannot hold itself")
	}
	SetOrResetHookedChar(1, 9, lookup)
	if hooks[1].ID() != NoEntity {
		t.Error("unknown target should leave the holder empty")
	}
	SetOrResetHookedChar(9, 1, lookup)
	if hooks[1].IsAttached(9) {
		t.Error("unknown holder must not attach")
	}
}
