package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks"
	"github.com/vovakirdan/rocks-arcade/internal/platform/tui"
	"github.com/vovakirdan/rocks-arcade/internal/registry"
	"github.com/vovakirdan/rocks-arcade/internal/storage"
)

var (
	flagLevel   int
	flagNoMenu  bool
	flagSound   bool
	flagVariant string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. Without --level a level menu offers to continue
from saved progress, start over or jump to any level.

Controls:
  Arrows/WASD  - Dig and move
  Space/X      - Drop a bomb below you
  R            - Retry the level
  N            - New game from level 1
  P            - Pause
  ?            - More keys
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Gravity starts slow and speeds up gently
  normal - Default pacing
  hard   - Fast gravity from the first level
  fixed  - Gravity never speeds up

Examples:
  rocks play
  rocks play --level 3
  rocks play rocks_entities
  rocks play --difficulty hard --sound
  rocks play --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start at this level (1-indexed), skipping the level menu")
	playCmd.Flags().BoolVar(&flagNoMenu, "continue", false, "Resume saved progress, skipping the level menu")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().StringVar(&flagVariant, "variant", "", "Movable objects: tiles or entities (shorthand for the game id)")
}

func resolveGameID(args []string) (string, error) {
	gameID := rocks.IDTiles
	if len(args) == 1 {
		gameID = args[0]
	}
	switch flagVariant {
	case "":
	case "tiles":
		gameID = rocks.IDTiles
	case "entities":
		gameID = rocks.IDEntities
	default:
		return "", fmt.Errorf("unknown variant %q (tiles, entities)", flagVariant)
	}
	if !registry.Exists(gameID) {
		return "", fmt.Errorf("unknown game %q, run 'rocks list' to see the variants", gameID)
	}
	return gameID, nil
}

func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the database, or returns nil so the game runs without
// scores and progress.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("storage unavailable", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

func openSound(logger *log.Logger) *tui.Sound {
	if !flagSound {
		return nil
	}
	s := tui.NewSound()
	if err := s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		logger.Warn("sound unavailable", "error", err)
		return nil
	}
	return s
}

func savedLevel(store *storage.Store) int {
	if store == nil {
		return -1
	}
	lvl, err := store.LoadProgress(flagProfile)
	if err != nil {
		return -1
	}
	return lvl
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := resolveGameID(args)
	if err != nil {
		return err
	}

	logger, closeLog := fileLogger()
	defer closeLog()
	rocks.SetLogger(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	cfg := terminalConfig()

	switch {
	case flagLevel > 0:
		rocks.SetStartLevel(flagLevel)
	case !flagNoMenu:
		campaign, err := rocks.LoadCampaign()
		if err != nil {
			return fmt.Errorf("loading levels: %w", err)
		}
		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}
		choice, err := tui.RunLevelMenu(game.Title(), campaign, savedLevel(store), cfg)
		if err != nil {
			return err
		}
		if choice == nil {
			return nil
		}
		rocks.SetStartLevel(choice.Level)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	sound := openSound(logger)
	defer sound.Close()

	logger.Info("starting game", "game", gameID, "profile", flagProfile, "difficulty", flagDifficulty)
	return tui.Run(game, cfg, tui.Options{
		Store:   store,
		Profile: flagProfile,
		Sound:   sound,
		Logger:  logger,
	})
}
