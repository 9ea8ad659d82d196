package core

import (
	"context"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/sirupsen/logrus"
)

type GameLoop struct {
	server   *Server
	tickRate int
	log      logrus.FieldLogger
}

func NewGameLoop(server *Server, tickRate int, log logrus.FieldLogger) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		log:      log,
	}
}

// Run ticks at the loop's rate until ctx is done.
func (g *GameLoop) Run(ctx context.Context) error {
	period := time.Second / time.Duration(g.tickRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	g.log.Infof("Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-ctx.Done():
			g.log.Info("Game loop stopped")
			return nil
		case <-ticker.C:
			start := time.Now()
			g.tick()
			if took := time.Since(start); took > period {
				g.log.Warnf("Tick %d took %v, budget %v", g.server.Simulation().CurrentTick(), took, period)
			}
		}
	}
}

func (g *GameLoop) tick() {
	g.server.ProcessCommands()
	g.server.Step()

	if err := srvsync.DoSync(); err != nil {
		g.log.Errorf("Sync error: %v", err)
	}
}
