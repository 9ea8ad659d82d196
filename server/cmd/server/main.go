// Command server runs an authoritative hookcore game server.
//
// Usage:
//
//	server [--config server.yaml] [--port 7373] [--level default]
//
// Flags override values read from the settings file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/hookcore/config"
	"github.com/automoto/hookcore/server/core"
	"github.com/automoto/hookcore/shared/protocol"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagPort      uint
	flagName      string
	flagVersion   string
	flagLevelsDir string
	flagLevel     string
	flagTuneZones string
	flagDemoDir   string
	flagSeed      uint64
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
	Use:   "server",
	Short: "Run a hookcore game server",
	Long: `Run an authoritative hookcore server. Clients connect over websockets,
send their inputs every tick and receive the synced character state.

Examples:
  server --port 7373 --level default
  server --config server.yaml --demo-dir demos`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	def := config.DefaultServerSettings()
	f := rootCmd.Flags()
	f.StringVarP(&flagConfig, "config", "c", "", "YAML settings file")
	f.UintVar(&flagPort, "port", def.Port, "Server port")
	f.StringVar(&flagName, "name", def.Name, "Server display name")
	f.StringVar(&flagVersion, "version", def.Version, "Required client version (empty = accept any)")
	f.StringVar(&flagLevelsDir, "levels-dir", def.LevelsDir, "Directory holding levels/*.tmx")
	f.StringVar(&flagLevel, "level", def.Level, "Level to run, by file stem")
	f.StringVar(&flagTuneZones, "tune-zones", def.TuneZones, "Tune zone table, relative to --levels-dir")
	f.StringVar(&flagDemoDir, "demo-dir", def.DemoDir, "Record demos into this directory")
	f.Uint64Var(&flagSeed, "seed", def.Seed, "Simulation RNG seed")
	f.StringVar(&flagLogLevel, "log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	f.StringVar(&flagLogFormat, "log-format", def.LogFormat, "Log format (text or json)")
}

func settingsFromFlags(cmd *cobra.Command) (config.ServerSettings, error) {
	s := config.DefaultServerSettings()
	if flagConfig != "" {
		var err error
		if s, err = config.LoadServerSettings(flagConfig); err != nil {
			return s, err
		}
	}

	f := cmd.Flags()
	if f.Changed("port") {
		s.Port = flagPort
	}
	if f.Changed("name") {
		s.Name = flagName
	}
	if f.Changed("version") {
		s.Version = flagVersion
	}
	if f.Changed("levels-dir") {
		s.LevelsDir = flagLevelsDir
	}
	if f.Changed("level") {
		s.Level = flagLevel
	}
	if f.Changed("tune-zones") {
		s.TuneZones = flagTuneZones
	}
	if f.Changed("demo-dir") {
		s.DemoDir = flagDemoDir
	}
	if f.Changed("seed") {
		s.Seed = flagSeed
	}
	if f.Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	if f.Changed("log-format") {
		s.LogFormat = flagLogFormat
	}
	return s, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	settings, err := settingsFromFlags(cmd)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}

	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("failed to register components: %w", err)
	}

	level, err := core.LoadServerLevel(os.DirFS(settings.LevelsDir), settings, log)
	if err != nil {
		return err
	}
	server, err := core.NewServer(settings, level, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infof("Starting hookcore server %q on port %d (level: %s, version: %s)",
		settings.Name, settings.Port, level.Name, settings.Version)
	if err := server.Run(ctx, settings.Port); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
