// rocks is a rocks-and-diamonds digging game for the terminal.
//
// Usage:
//
//	rocks list              - List game variants
//	rocks play [game]       - Play a variant (default: rocks)
//	rocks menu              - Pick variants, levels and scores interactively
//	rocks serve             - Start SSH server for remote play
//	rocks scores [game]     - Show high scores
//	rocks levels [id]       - List or print campaign levels
//	rocks config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path|dsn>       - SQLite path or postgres:// DSN (default: ~/.arcade/rocks.db)
//	--config <path>       - Custom rocks.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--levels <dir>        - Load the campaign from a directory
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocks-arcade/internal/config"
	"github.com/vovakirdan/rocks-arcade/internal/games/rocks"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagProfile    string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rocks",
	Short: "Rocks & Diamonds - dig for diamonds in your terminal",
	Long: `Rocks & Diamonds is a digging game: tunnel through dirt, collect
diamonds and reach the stairs before the falling rocks get you.

Available commands:
  list     - Show the game variants
  play     - Play directly
  menu     - Interactive picker for variants, levels and scores
  serve    - Start SSH server for remote play
  scores   - View high scores
  levels   - List or print campaign levels
  config   - Print the default configuration

Examples:
  rocks play
  rocks play rocks_entities --level 2
  rocks menu --difficulty hard
  rocks serve --ssh :2222
  rocks scores`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		rocks.SetConfigPath(flagConfig)
		rocks.SetDifficultyPreset(flagDifficulty)
		rocks.SetLevelsDir(expandHome(flagLevelsDir))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/rocks.db", "Scores database: SQLite path or postgres:// DSN")
	pf.StringVar(&flagConfig, "config", "", "Path to a custom rocks.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory of level files replacing the built-in campaign")
	pf.StringVar(&flagProfile, "profile", defaultProfile(), "Player name for progress and scores")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.arcade/rocks.log", "Log file for terminal play (empty disables logging)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
}

func defaultProfile() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// fileLogger logs to --log-file, since the terminal belongs to the game.
// The returned func closes the file.
func fileLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "rocks",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}
