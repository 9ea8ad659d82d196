// Command bot joins a hookcore server as a scripted player. It predicts its
// own character locally and reports how often the server corrected it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/network"
	"github.com/automoto/hookcore/server/core"
	"github.com/automoto/hookcore/shared/bots"
	"github.com/automoto/hookcore/shared/character"
	"github.com/automoto/hookcore/shared/protocol"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagAddr      string
	flagName      string
	flagVersion   string
	flagLevelsDir string
	flagTicks     uint64
	flagLogLevel  string
	flagLogFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bot",
	Short: "Join a hookcore server as a scripted player",
	Long: `Join a server, send scripted inputs every tick and reconcile the locally
predicted character against the server's state.

Examples:
  bot --addr localhost:7373
  bot --addr game.example.com:7373 --ticks 3000 --log-level debug`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runBot,
}

func init() {
	def := config.DefaultServerSettings()
	f := rootCmd.Flags()
	f.StringVar(&flagAddr, "addr", fmt.Sprintf("localhost:%d", def.Port), "Server address (host:port)")
	f.StringVar(&flagName, "name", "bot", "Player name")
	f.StringVar(&flagVersion, "client-version", "", "Version sent in the join request")
	f.StringVar(&flagLevelsDir, "levels-dir", def.LevelsDir, "Directory holding levels/*.tmx")
	f.Uint64Var(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	f.StringVar(&flagLogLevel, "log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	f.StringVar(&flagLogFormat, "log-format", def.LogFormat, "Log format (text or json)")
}

func runBot(_ *cobra.Command, _ []string) error {
	log, err := config.NewLogger(flagLogLevel, flagLogFormat)
	if err != nil {
		return err
	}
	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("failed to register components: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := network.NewClient(log)
	client.Connect(flagAddr, flagVersion, flagName)
	defer client.Disconnect()

	joinCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = client.WaitJoined(joinCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("join %s: %w", flagAddr, err)
	}
	pred, err := newPredictor(ctx, client, log)
	if err != nil {
		return err
	}
	return play(ctx, client, pred, log)
}

// newPredictor loads the server's level and aligns a local world with the
// first snapshot the server sends.
func newPredictor(ctx context.Context, client *network.Client, log logrus.FieldLogger) (*network.Predictor, error) {
	settings := config.DefaultServerSettings()
	session := client.Session()
	settings.Level = session.Level
	lvl, err := core.LoadServerLevel(os.DirFS(flagLevelsDir), settings, log)
	if err != nil {
		return nil, err
	}
	world := lvl.NewWorld(settings.Seed, log)
	self := character.EntityID(session.CharacterID)

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		if snap := client.LatestSnapshot(); snap != nil {
			st := network.DecodeWorldSnapshot(*snap)
			for _, c := range st.Characters {
				if character.EntityID(c.Core.CharacterID) == self {
					world.Restore(st.Snapshot(world))
					log.Infof("Joined %s as character %d at tick %d", lvl.Name, self, st.Tick)
					return network.NewPredictor(world, self, log), nil
				}
			}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func play(ctx context.Context, client *network.Client, pred *network.Predictor, log logrus.FieldLogger) error {
	session := client.Session()
	rate := session.TickRate
	if rate <= 0 {
		rate = config.TicksPerSecond
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	self := character.EntityID(session.CharacterID)
	var ticks, corrections, replayed, acks uint64
	defer func() {
		log.Infof("Bot finished: %d ticks, %d corrections, %d replayed ticks, %d acks",
			ticks, corrections, replayed, acks)
	}()

	for flagTicks == 0 || ticks < flagTicks {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := client.Err(); err != nil {
			return err
		}

		msg, err := pred.Predict(bots.Input(pred.World().CurrentTick(), self))
		if err != nil {
			return err
		}
		if err := client.SendMessage(msg); err != nil {
			return fmt.Errorf("send input: %w", err)
		}
		ticks++

		if snap := client.LatestSnapshot(); snap != nil {
			n, err := pred.ReconcileState(network.DecodeWorldSnapshot(*snap))
			if err != nil {
				log.Warnf("Reconcile: %v", err)
			} else if n > 0 {
				corrections++
				replayed += uint64(n)
			}
		}
		acks += uint64(len(client.DrainAcks()))
	}
	return nil
}
