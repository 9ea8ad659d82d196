package network

import (
	"fmt"
	"time"

	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/messages"
	"github.com/automoto/hookcore/shared/simulation"
	"github.com/sirupsen/logrus"
)

// Predictor runs the local character ahead of the server on a private world
// and rolls back to authoritative snapshots when its guess was wrong.
type Predictor struct {
	world *simulation.World
	self  character.EntityID
	buf   PredictionBuffer
	seq   uint32
	log   logrus.FieldLogger
}

// NewPredictor predicts self inside world.
func NewPredictor(world *simulation.World, self character.EntityID, log logrus.FieldLogger) *Predictor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Predictor{world: world, self: self, log: log}
}

// World returns the predicted world.
func (p *Predictor) World() *simulation.World { return p.world }

// Predict applies in to the local character, ticks the world once and
// returns the message to send to the server.
func (p *Predictor) Predict(in character.Input) (messages.PlayerInput, error) {
	p.seq++
	msg := messages.NewPlayerInput(p.seq, p.world.CurrentTick(), in)
	msg.Timestamp = time.Now().UnixMilli()

	if err := p.world.SetInput(p.self, in); err != nil {
		return msg, fmt.Errorf("predict: %w", err)
	}
	p.world.Step()

	core, _ := p.world.Core(p.self)
	p.buf.Store(msg, core.Write())
	return msg, nil
}

// Reconcile compares the server's state after snap.Tick ticks with the
// prediction for the same tick. On a mismatch it restores snap and replays
// every input predicted since. It returns the number of replayed ticks.
func (p *Predictor) Reconcile(snap simulation.Snapshot) (int, error) {
	var server *simulation.CharacterState
	for i := range snap.Characters {
		if snap.Characters[i].ID == p.self {
			server = &snap.Characters[i]
			break
		}
	}
	if server == nil {
		return 0, fmt.Errorf("reconcile tick %d: character %d not in snapshot", snap.Tick, p.self)
	}
	if snap.Tick == 0 {
		return 0, nil
	}

	// snap.Tick counts completed ticks, so it reflects the input of tick-1.
	if p.buf.Matches(snap.Tick-1, server.Core.Write()) {
		return 0, nil
	}

	pending := p.buf.Since(snap.Tick)
	p.world.Restore(snap)
	for _, rec := range pending {
		if err := p.world.SetInput(p.self, rec.Input.CharacterInput()); err != nil {
			return 0, fmt.Errorf("replay tick %d: %w", rec.Input.Tick, err)
		}
		p.world.Step()
		core, _ := p.world.Core(p.self)
		p.buf.Store(rec.Input, core.Write())
	}

	p.log.Debugf("Prediction mismatch at tick %d, replayed %d ticks", snap.Tick, len(pending))
	return len(pending), nil
}

// ReconcileState reconciles against state decoded from the server's sync
// stream.
func (p *Predictor) ReconcileState(st ServerState) (int, error) {
	return p.Reconcile(st.Snapshot(p.world))
}
