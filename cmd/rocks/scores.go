package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocks-arcade/internal/games/rocks"
	"github.com/vovakirdan/rocks-arcade/internal/platform/tui"
	"github.com/vovakirdan/rocks-arcade/internal/registry"
	"github.com/vovakirdan/rocks-arcade/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresClear  bool
	flagScoresBrowse bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the best runs for a game variant. A run is scored by the
diamonds collected until the player is squashed, quits or finishes the
campaign.

Examples:
  rocks scores
  rocks scores rocks_entities --limit 20
  rocks scores --clear
  rocks scores --browse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the game")
	scoresCmd.Flags().BoolVar(&flagScoresBrowse, "browse", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := rocks.IDTiles
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'rocks list' to see the variants", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", game.Title())
		return nil
	}

	if flagScoresBrowse {
		cfg := terminalConfig()
		return tui.RunScoreboard(store, gameID, cfg.ScreenW, cfg.ScreenH)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	stats, err := store.Stats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	printScores(os.Stdout, game.Title(), gameID, scores, stats)
	return nil
}

func printScores(w io.Writer, title, gameID string, scores []storage.ScoreEntry, stats *storage.GameStats) {
	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'rocks play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-16s  %s\n", "Rank", "Diamonds", "Levels", "Player", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-16s  %s\n", "----", "--------", "------", "------", "----")
	for i, e := range scores {
		fmt.Fprintf(w, "  %-4d  %-8d  %-6d  %-16s  %s\n",
			i+1, e.Score, e.Level, e.Profile, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if stats != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Runs: %d  Best: %d  Furthest: %d levels  Average: %.1f\n",
			stats.RunsCount, stats.HighScore, stats.BestLevel, stats.AvgScore)
	}
}
