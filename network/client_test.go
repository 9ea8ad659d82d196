package network

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/automoto/hookcore/shared/messages"
	"github.com/leap-fish/necs/esync"
)

func TestClientNotConnected(t *testing.T) {
	c := NewClient(nil)
	if c.State() != StateDisconnected {
		t.Errorf("state = %v", c.State())
	}
	if err := c.SendMessage(messages.PlayerInput{}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("SendMessage = %v, want ErrNotConnected", err)
	}
	if c.LatestSnapshot() != nil {
		t.Error("no snapshot expected")
	}
}

func TestWaitJoined(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		c := NewClient(nil)
		go c.accepted(messages.JoinAccepted{CharacterID: 3, Level: "default", TickRate: 50})

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := c.WaitJoined(ctx); err != nil {
			t.Fatal(err)
		}
		if s := c.Session(); s.CharacterID != 3 || s.Level != "default" {
			t.Errorf("session = %+v", s)
		}
		if c.Err() != nil {
			t.Errorf("Err = %v while joined", c.Err())
		}
	})

	t.Run("rejected", func(t *testing.T) {
		c := NewClient(nil)
		c.fail(errors.New("join rejected: version mismatch"))

		err := c.WaitJoined(context.Background())
		if err == nil || !strings.Contains(err.Error(), "version mismatch") {
			t.Errorf("WaitJoined = %v", err)
		}
		if c.State() != StateError {
			t.Errorf("state = %v", c.State())
		}
	})

	t.Run("dropped", func(t *testing.T) {
		c := NewClient(nil)
		c.disconnected(nil)
		if err := c.WaitJoined(context.Background()); !errors.Is(err, ErrConnectionLost) {
			t.Errorf("WaitJoined = %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		c := NewClient(nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := c.WaitJoined(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("WaitJoined = %v", err)
		}
	})
}

func TestLatestSnapshotKeepsNewest(t *testing.T) {
	c := NewClient(nil)
	c.received(esync.WorldSnapshot{})
	c.received(esync.WorldSnapshot{})
	if c.LatestSnapshot() == nil {
		t.Fatal("expected a snapshot")
	}
	if c.LatestSnapshot() != nil {
		t.Error("a snapshot is returned only once")
	}
}

func TestDrainAcks(t *testing.T) {
	c := NewClient(nil)
	c.acked(messages.InputAck{Sequence: 1})
	c.acked(messages.InputAck{Sequence: 2})

	got := c.DrainAcks()
	if len(got) != 2 || got[1].Sequence != 2 {
		t.Errorf("drained %v", got)
	}
	if c.DrainAcks() != nil {
		t.Error("second drain should be empty")
	}
}
