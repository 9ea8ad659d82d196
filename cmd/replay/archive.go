package main

import (
	"fmt"
	"os"

	"github.com/automoto/hookcore/shared/demo"
	"github.com/spf13/cobra"
)

const appName = "hookcore"

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Keep named demos in the user data directory",
}

var archiveSaveCmd = &cobra.Command{
	Use:   "save <name> <file>",
	Short: "Store a demo file under name",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		a, err := demo.OpenArchive(appName)
		if err != nil {
			return err
		}
		if err := a.Save(args[0], data); err != nil {
			return err
		}
		fmt.Printf("saved %s (%d bytes)\n", args[0], len(data))
		return nil
	},
}

var archiveLoadCmd = &cobra.Command{
	Use:   "load <name> <file>",
	Short: "Write an archived demo to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := demo.OpenArchive(appName)
		if err != nil {
			return err
		}
		data, err := a.Load(args[0])
		if err != nil {
			return err
		}
		return os.WriteFile(args[1], data, 0o644)
	},
}

var archiveRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete an archived demo",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := demo.OpenArchive(appName)
		if err != nil {
			return err
		}
		if !a.Exists(args[0]) {
			return fmt.Errorf("%w: %s", demo.ErrNotFound, args[0])
		}
		return a.Delete(args[0])
	},
}

func init() {
	archiveCmd.AddCommand(archiveSaveCmd, archiveLoadCmd, archiveRmCmd)
}
