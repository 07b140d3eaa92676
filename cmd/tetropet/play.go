package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetropet/internal/config"
	"github.com/vovakirdan/tetropet/internal/core"
	"github.com/vovakirdan/tetropet/internal/games/blocks"
	"github.com/vovakirdan/tetropet/internal/games/pet"
	"github.com/vovakirdan/tetropet/internal/platform/tui"
	"github.com/vovakirdan/tetropet/internal/registry"
	"github.com/vovakirdan/tetropet/internal/storage"
)

// localSlot is the pet slot used for terminal play.
const localSlot = "local"

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Blocks controls:
  Left/Right/A/D - Move piece
  Up/W/X/Z       - Rotate
  Down/S         - Soft drop
  Space          - Hard drop
  P              - Pause
  R              - Restart (after game over)

Pet controls:
  1-6   - Feed, Play, Sleep, Bath, Medicine, Exercise
  9     - Release the pet
  R     - Adopt a new pet
  B/Esc - Back to menu

Q/Ctrl+C quits either game.

Difficulty options (blocks only):
  easy   - Gravity 1.5x slower
  normal - Default gravity curve
  hard   - Gravity 0.6x of normal delay
  fixed  - Gravity never speeds up

Examples:
  tetropet play blocks
  tetropet play blocks --difficulty hard
  tetropet play blocks --config ./my-blocks.yaml
  tetropet play pet --config ./my-pet.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetropet list' to see available games.")
		os.Exit(1)
	}

	if err := applyGameFlags(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open storage; games still work without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}

	tui.PrepareGame(game, store, localSlot, log.Default().WithPrefix(gameID))

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// applyGameFlags hands --config and --difficulty to the selected game.
func applyGameFlags(gameID string) error {
	switch gameID {
	case "blocks":
		if _, ok := config.ParseDifficulty(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		blocks.SetConfigPath(flagConfig)
		blocks.SetDifficultyPreset(flagDifficulty)
	case "pet":
		pet.SetConfigPath(flagConfig)
	}
	return nil
}

// runtimeConfig builds a config sized to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
