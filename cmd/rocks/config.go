package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/rocks-arcade/internal/config"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks"
)

var flagConfigEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Prints the built-in rocks.yaml. Save it as ~/.arcade/rocks.yaml or
pass it with --config to change timing, grid capacity, rules and
difficulty. With --effective, prints the configuration after loading
--config and applying --difficulty.

Examples:
  rocks config > ~/.arcade/rocks.yaml
  rocks config --effective --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigEffective, "effective", false, "Print the resolved configuration")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagConfigEffective {
		_, err := os.Stdout.Write(config.GetDefaultYAML(rocks.IDTiles))
		return err
	}

	cfg, err := config.LoadRocks(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagDifficulty != "" {
		preset, _ := config.ParsePreset(flagDifficulty)
		config.ApplyRocksPreset(&cfg, preset)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
