package character

import (
	"slices"
	"strings"
	"testing"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/collision"
	"github.com/automoto/hookcore/shared/gamemath"
)

const mapWidth = 64

// row repeats a single tile character across the map width.
func row(ch string) string { return strings.Repeat(ch, mapWidth) }

// floorMap has open air above a solid floor starting at y=96. A character
// centered at y=81 rests on it.
func floorMap() []string {
	return []string{row("."), row("."), row("."), row("#"), row("#")}
}

func newGrid(t *testing.T, rows []string, mutate func(*collision.Layers)) *collision.Collision {
	t.Helper()
	l := collision.Layers{Width: len(rows[0]), Height: len(rows)}
	for _, r := range rows {
		for _, ch := range r {
			switch ch {
			case '#':
				l.Tiles = append(l.Tiles, collision.TileSolid)
			case 'x':
				l.Tiles = append(l.Tiles, collision.TileNoHook)
			default:
				l.Tiles = append(l.Tiles, collision.TileAir)
			}
		}
	}
	zones := config.DefaultTuneZones()
	if mutate != nil {
		mutate(&l)
		if l.Tune != nil {
			var err error
			zones, err = config.ParseTuneZones([]byte("zones:\n  1:\n    gravity: 0.25\n"))
			if err != nil {
				t.Fatal(err)
			}
		}
	}
	c, err := collision.New(l, zones)
	if err != nil {
		t.Fatalf("collision.New: %v", err)
	}
	return c
}

// testWorld is a minimal host for cores: it ticks them in ID order using the
// same three passes as the simulation package.
type testWorld struct {
	col    Collision
	cores  map[EntityID]*Core
	hooks  map[EntityID]*HookedCharacter
	inputs map[EntityID]Input
}

func newTestWorld(col Collision) *testWorld {
	return &testWorld{
		col:    col,
		cores:  make(map[EntityID]*Core),
		hooks:  make(map[EntityID]*HookedCharacter),
		inputs: make(map[EntityID]Input),
	}
}

func (w *testWorld) add(id EntityID, x, y float32) *Core {
	c := NewCore(gamemath.Vec2{x, y}, config.DefaultTunings())
	w.cores[id] = &c
	w.hooks[id] = &HookedCharacter{}
	return &c
}

func (w *testWorld) ids() []EntityID {
	ids := make([]EntityID, 0, len(w.cores))
	for id := range w.cores {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (w *testWorld) lookup(id EntityID) *HookedCharacter {
	return w.hooks[id]
}

func (w *testWorld) pipe(self EntityID) *testPipe {
	return &testPipe{w: w, self: self}
}

func (w *testWorld) tick() {
	ids := w.ids()
	for _, id := range ids {
		w.cores[id].PhysicsTick(true, false, w.pipe(id), w.col)
	}
	for _, id := range ids {
		w.cores[id].PhysicsTickDeferred(w.pipe(id))
	}
	for _, id := range ids {
		w.cores[id].PhysicsMove(w.pipe(id), w.col)
		w.cores[id].Quantize()
	}
}

// checkRelation fails the test unless every hook link is mirrored.
func (w *testWorld) checkRelation(t *testing.T) {
	t.Helper()
	for id, h := range w.hooks {
		if target := h.ID(); target != NoEntity {
			if th, ok := w.hooks[target]; ok && !th.IsAttached(id) {
				t.Fatalf("%d holds %d but is not in its attached set", id, target)
			}
		}
		for _, a := range h.AttachedIDs() {
			if w.hooks[a].ID() != id {
				t.Fatalf("%d lists %d as attached but %d holds %d", id, a, a, w.hooks[a].ID())
			}
		}
	}
}

type testPipe struct {
	w    *testWorld
	self EntityID
}

func (p *testPipe) Input() Input { return p.w.inputs[p.self] }

func (p *testPipe) EachOther(fn func(EntityID, *Core) bool) {
	for _, id := range p.w.ids() {
		if id == p.self {
			continue
		}
		if !fn(id, p.w.cores[id]) {
			return
		}
	}
}

func (p *testPipe) EachOtherNear(_, _ gamemath.Vec2, fn func(EntityID, *Core) bool) {
	p.EachOther(fn)
}

func (p *testPipe) Other(id EntityID) (*Core, bool) {
	if id == p.self {
		return nil, false
	}
	c, ok := p.w.cores[id]
	return c, ok
}

func (p *testPipe) HookedID() EntityID { return p.w.hooks[p.self].ID() }

func (p *testPipe) SetOrResetHookedChar(target EntityID) {
	SetOrResetHookedChar(p.self, target, p.w.lookup)
}

func (p *testPipe) RandomOr0(int) int { return 0 }
