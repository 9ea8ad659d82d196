package simulation

import (
	"slices"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/gamemath"
	"github.com/solarlune/resolv"
)

const (
	tagCharacter = "character"
	tagQuery     = "query"

	broadphaseCell = 64
)

// broadphase narrows peer scans to characters near a box. Characters whose
// center left the map are not reliably in any cell, so they are tracked
// apart and returned by every query.
type broadphase struct {
	space   *resolv.Space
	query   *resolv.Object
	width   float32
	height  float32
	outside map[character.EntityID]struct{}
}

func newBroadphase(width, height int) *broadphase {
	// resolv floors the cell count, so the space is rounded up to whole
	// cells or the last strip of the map would belong to no cell.
	space := resolv.NewSpace(wholeCells(width), wholeCells(height), broadphaseCell, broadphaseCell)
	query := resolv.NewObject(0, 0, 1, 1, tagQuery)
	space.Add(query)
	return &broadphase{
		space:   space,
		query:   query,
		width:   float32(width),
		height:  float32(height),
		outside: make(map[character.EntityID]struct{}),
	}
}

func wholeCells(n int) int {
	return (n + broadphaseCell - 1) / broadphaseCell * broadphaseCell
}

func (b *broadphase) add(id character.EntityID, pos gamemath.Vec2) *resolv.Object {
	obj := resolv.NewObject(0, 0, config.PhysicalSize, config.PhysicalSize, tagCharacter)
	obj.Data = id
	b.space.Add(obj)
	b.move(obj, pos)
	return obj
}

// move places obj around pos and refreshes its cells.
func (b *broadphase) move(obj *resolv.Object, pos gamemath.Vec2) {
	id := obj.Data.(character.EntityID)
	obj.X = float64(pos[0]) - config.PhysicalSize/2
	obj.Y = float64(pos[1]) - config.PhysicalSize/2
	obj.Update()

	if pos[0] >= 0 && pos[1] >= 0 && pos[0] < b.width && pos[1] < b.height {
		delete(b.outside, id)
	} else {
		b.outside[id] = struct{}{}
	}
}

func (b *broadphase) remove(obj *resolv.Object) {
	delete(b.outside, obj.Data.(character.EntityID))
	b.space.Remove(obj)
}

// near returns, in ascending order, the characters that may have their
// center inside the box spanned by lo and hi.
func (b *broadphase) near(lo, hi gamemath.Vec2) []character.EntityID {
	var ids []character.EntityID
	for id := range b.outside {
		ids = append(ids, id)
	}

	b.query.X = float64(lo[0])
	b.query.Y = float64(lo[1])
	b.query.W = float64(max(hi[0]-lo[0], 1))
	b.query.H = float64(max(hi[1]-lo[1], 1))
	b.query.Update()

	if hit := b.query.Check(0, 0, tagCharacter); hit != nil {
		for _, obj := range hit.Objects {
			ids = append(ids, obj.Data.(character.EntityID))
		}
	}

	slices.Sort(ids)
	return slices.Compact(ids)
}
