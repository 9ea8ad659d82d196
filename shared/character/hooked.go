package character

import "slices"

// HookedCharacter is the hook relation of one character: the peer it holds
// and the peers holding it. Both sides are only ever changed together by
// SetOrResetHookedChar, so A holds B exactly when B lists A as attached.
type HookedCharacter struct {
	id       EntityID
	attached map[EntityID]struct{}
}

// ID returns the held peer, or NoEntity.
func (h *HookedCharacter) ID() EntityID {
	return h.id
}

// IsAttached reports whether id currently holds this character.
func (h *HookedCharacter) IsAttached(id EntityID) bool {
	_, ok := h.attached[id]
	return ok
}

// AttachedIDs returns the characters holding this one, in ascending order.
func (h *HookedCharacter) AttachedIDs() []EntityID {
	ids := make([]EntityID, 0, len(h.attached))
	for id := range h.attached {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SetOrResetHookedChar makes self hold target, or hold nothing when target
// is NoEntity. The previous target drops self from its attached set first.
// A target that lookup cannot find leaves self holding nothing; clearing an
// already clear relation does nothing.
func SetOrResetHookedChar(self, target EntityID, lookup func(EntityID) *HookedCharacter) {
	own := lookup(self)
	if own == nil || own.id == target {
		return
	}

	if own.id != NoEntity {
		if old := lookup(own.id); old != nil {
			delete(old.attached, self)
		}
		own.id = NoEntity
	}

	if target == NoEntity || target == self {
		return
	}
	t := lookup(target)
	if t == nil {
		return
	}
	if t.attached == nil {
		t.attached = make(map[EntityID]struct{})
	}
	t.attached[self] = struct{}{}
	own.id = target
}
