package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocks-arcade/internal/games/rocks"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/engine"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/levels"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks/levels/formats"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [id]",
	Short: "List campaign levels or print one as YAML",
	Long: `Without arguments, lists the campaign in play order with sizes and
diamond counts. With a level id, prints that level in the level file
format, which is a starting point for custom levels.

Examples:
  rocks levels
  rocks levels 02-locked-door > my-level.yaml
  rocks levels --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, args []string) error {
	campaign, err := rocks.LoadCampaign()
	if err != nil {
		return fmt.Errorf("loading levels: %w", err)
	}

	if len(args) == 0 {
		printCampaign(os.Stdout, campaign)
		return nil
	}

	for _, lvl := range campaign.Levels() {
		if lvl.ID != args[0] {
			continue
		}
		out, err := formats.FormatYAML(lvl.ID, lvl.Data)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}
	return fmt.Errorf("%w: %q", levels.ErrLevelNotFound, args[0])
}

func printCampaign(w io.Writer, campaign *levels.Campaign) {
	fmt.Fprintf(w, "  %-3s  %-20s  %-20s  %-7s  %s\n", "#", "ID", "Name", "Size", "Diamonds")
	fmt.Fprintf(w, "  %-3s  %-20s  %-20s  %-7s  %s\n", "-", "--", "----", "----", "--------")
	for i, lvl := range campaign.Levels() {
		size := fmt.Sprintf("%dx%d", lvl.Data.Width, lvl.Data.Height)
		fmt.Fprintf(w, "  %-3d  %-20s  %-20s  %-7s  %d\n",
			i+1, lvl.ID, lvl.Name, size, countTiles(lvl.Data, engine.TileDiamond))
		if hint := strings.TrimSpace(lvl.Metadata["hint"]); hint != "" {
			fmt.Fprintf(w, "       %s\n", hint)
		}
	}
}

func countTiles(ld engine.LevelData, t engine.Tile) int {
	n := 0
	for _, tile := range ld.Tiles {
		if tile == t {
			n++
		}
	}
	return n
}
