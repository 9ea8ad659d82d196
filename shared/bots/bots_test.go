package bots

import "testing"

func TestInput(t *testing.T) {
	for tick := uint64(0); tick < 500; tick++ {
		in := Input(tick, 1)
		if in.Dir != 1 && in.Dir != -1 {
			t.Fatalf("tick %d: dir %d", tick, in.Dir)
		}
		if in.CursorY >= 0 {
			t.Fatalf("tick %d: cursor should aim up, got %d", tick, in.CursorY)
		}
		if (in.CursorX > 0) != (in.Dir > 0) {
			t.Fatalf("tick %d: cursor %d should aim along dir %d", tick, in.CursorX, in.Dir)
		}
	}
	if Input(7, 2) != Input(7, 2) {
		t.Error("script is not a pure function")
	}
	if Input(0, 1) == Input(0, 2) {
		t.Error("bots should be out of phase")
	}
}
