package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndrejKiraly/RoutineGamification/internal/ui"
)

const Version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "routine",
	Short:         "Local-first habit tracker with RPG progression",
	Long:          "Routine is a local-first CLI/TUI habit tracker: complete checklist items in daily routines, level per-category skills, build streaks and unlock achievements.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")

	rootCmd.AddCommand(
		newStatusCmd(),
		newListCmd(),
		newTodayCmd(),
		newCheckCmd(),
		newUncheckCmd(),
		newResetCmd(),
		newPrestigeCmd(),
		newAchievementsCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
