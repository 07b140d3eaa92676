// tetropet runs a falling-block puzzle and a virtual pet in the terminal.
//
// Usage:
//
//	tetropet list              - List available games
//	tetropet play <game>       - Play a game
//	tetropet menu              - Start menu to pick games interactively
//	tetropet serve             - Start SSH server for remote play
//	tetropet scores <game>     - Show high scores for a game
//	tetropet pet <command>     - Inspect and manage the saved pet
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.tetropet/tetropet.db)
//	--log-level <level> - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tetropet/internal/games/blocks"
	_ "github.com/vovakirdan/tetropet/internal/games/pet"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetropet",
	Short: "Tetropet - falling blocks and a virtual pet in your terminal",
	Long: `Tetropet bundles two terminal games: a falling-block puzzle and a
virtual pet that lives on between sessions.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  pet      - Inspect and manage the saved pet

Examples:
  tetropet list
  tetropet play blocks
  tetropet play pet
  tetropet menu
  tetropet serve --ssh :2222
  tetropet pet status`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		log.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetropet/tetropet.db", "Path to scores and pets database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(petCmd)
}
