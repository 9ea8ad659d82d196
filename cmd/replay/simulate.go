package main

import (
	"fmt"
	"os"
	"time"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/server/core"
	"github.com/automoto/hookcore/shared/bots"
	"github.com/automoto/hookcore/shared/demo"
	"github.com/automoto/hookcore/shared/simulation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagTicks     uint64
	flagLevel     string
	flagTuneZones string
	flagBots      int
	flagSeed      uint64
	flagRecord    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run scripted bots on a level and print the final digest",
	Long: `Run a fixed bot script on a level. Equal flags always print the same
digest, so the output can be compared across builds and machines.

Examples:
  replay simulate --ticks 3000 --level default
  replay simulate --bots 8 --record bots.demo`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	def := config.DefaultServerSettings()
	f := simulateCmd.Flags()
	f.Uint64Var(&flagTicks, "ticks", 1000, "Number of ticks to run")
	f.StringVar(&flagLevel, "level", def.Level, "Level to run, by file stem")
	f.StringVar(&flagTuneZones, "tune-zones", def.TuneZones, "Tune zone table, relative to --levels-dir")
	f.IntVar(&flagBots, "bots", 4, "Number of bots")
	f.Uint64Var(&flagSeed, "seed", def.Seed, "Simulation RNG seed")
	f.StringVar(&flagRecord, "record", "", "Also write a demo to this file")
}

func runBots(w *simulation.World, count int, ticks uint64, rec *demo.Recorder) error {
	for range count {
		id := w.AddCharacter()
		if rec != nil {
			rec.Join(id)
		}
	}
	for range ticks {
		tick := w.CurrentTick()
		for _, id := range w.IDs() {
			in := bots.Input(tick, id)
			if err := w.SetInput(id, in); err != nil {
				return err
			}
			if rec != nil {
				rec.Input(id, in)
			}
		}
		w.Step()
		if rec != nil {
			if err := rec.EndTick(w.CurrentTick(), w.Digest()); err != nil {
				return err
			}
		}
	}
	return nil
}

func runSimulate(_ *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	settings := config.DefaultServerSettings()
	settings.Level = flagLevel
	settings.TuneZones = flagTuneZones

	lvl, err := core.LoadServerLevel(os.DirFS(flagLevelsDir), settings, log)
	if err != nil {
		return err
	}
	w := lvl.NewWorld(flagSeed, log)

	rec, closeRec, err := openRecording(lvl, log)
	if err != nil {
		return err
	}
	start := time.Now()
	err = runBots(w, flagBots, flagTicks, rec)
	if cerr := closeRec(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.Infof("Simulated %d ticks in %v", flagTicks, time.Since(start))
	fmt.Printf("level=%s seed=%d bots=%d ticks=%d digest=%016x\n",
		lvl.Name, flagSeed, flagBots, w.CurrentTick(), w.Digest())
	return nil
}

func openRecording(lvl *core.ServerLevel, log logrus.FieldLogger) (*demo.Recorder, func() error, error) {
	if flagRecord == "" {
		return nil, func() error { return nil }, nil
	}
	f, err := os.Create(flagRecord)
	if err != nil {
		return nil, nil, err
	}
	rec, err := demo.NewRecorder(f, demo.Header{
		Seed:    flagSeed,
		Level:   lvl.Name,
		Zones:   lvl.Zones,
		Created: time.Now().UnixNano(),
	}, log)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return rec, func() error {
		if err := rec.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}
