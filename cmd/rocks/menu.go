package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocks-arcade/internal/games/rocks"
	"github.com/vovakirdan/rocks-arcade/internal/platform/tui"
)

var flagMenuSound bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode: pick a variant, then continue,
start over or choose a level. Esc returns to the menu, Tab opens the
scoreboard.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scores
  Esc          - Back
  Q            - Quit

Examples:
  rocks menu
  rocks menu --fps 30 --sound
  rocks menu --db postgres://rocks@localhost/rocks`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMenuSound, "sound", false, "Play sound effects")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()
	rocks.SetLogger(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	flagSound = flagMenuSound
	sound := openSound(logger)
	defer sound.Close()

	return tui.RunSession(store, terminalConfig(), flagProfile, logger, sound)
}
