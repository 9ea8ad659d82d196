package character

import (
	"testing"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/shared/gamemath"
)

func TestNetObjBinary(t *testing.T) {
	c := NewCore(gamemath.Vec2{100, 200}, config.DefaultTunings())
	c.Vel = gamemath.Vec2{-3.5, 12}
	c.HookState = HookGrabbed
	c.HookTick = 17
	c.HookPos = gamemath.Vec2{-40, 7}
	c.HookDir = gamemath.Vec2{0.6, -0.8}
	c.Jumped = JumpConsumed
	c.Direction = -1
	c.Angle = 804
	n := c.Write()

	b, err := n.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != NetObjCharacterCoreSize {
		t.Fatalf("len = %d, want %d", len(b), NetObjCharacterCoreSize)
	}
	// X is first and little-endian
	if b[0] != 100 || b[1] != 0 {
		t.Errorf("first bytes %v", b[:4])
	}
	if n.HookDx != 154 || n.HookDy != -205 {
		t.Errorf("hook dir = %d,%d", n.HookDx, n.HookDy)
	}

	var got NetObjCharacterCore
	if err := got.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if got != n {
		t.Errorf("decoded %+v, want %+v", got, n)
	}
	if err := got.UnmarshalBinary(b[:10]); err == nil {
		t.Error("short buffer should fail")
	}
}

func TestNetObjValidate(t *testing.T) {
	c := NewCore(gamemath.Vec2{}, config.DefaultTunings())
	n := c.Write()
	if err := n.Validate(); err != nil {
		t.Fatalf("fresh core: %v", err)
	}

	bad := []func(*NetObjCharacterCore){
		func(n *NetObjCharacterCore) { n.HookState = 6 },
		func(n *NetObjCharacterCore) { n.HookState = -1 },
		func(n *NetObjCharacterCore) { n.Direction = 2 },
		func(n *NetObjCharacterCore) { n.Jumped = 4 },
	}
	for i, mutate := range bad {
		m := n
		mutate(&m)
		if err := m.Validate(); err == nil {
			t.Errorf("case %d: want error", i)
		}
	}
}
