// Command replay checks and produces hookcore demos.
//
// Usage:
//
//	replay verify <demo>                     - Re-simulate a demo and check every digest
//	replay simulate --ticks N --level name   - Run scripted bots and print the digest
//	replay archive save|load|rm <name>       - Keep demos in the user data directory
package main

import (
	"fmt"
	"os"

	"github.com/automoto/hookcore/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagLevelsDir string
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
	Use:           "replay",
	Short:         "Verify and produce hookcore demos",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	def := config.DefaultServerSettings()
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", def.LevelsDir, "Directory holding levels/*.tmx")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text or json)")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(archiveCmd)
}

func newLogger() (*logrus.Logger, error) {
	return config.NewLogger(flagLogLevel, flagLogFormat)
}
