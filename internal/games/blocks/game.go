package blocks

import (
	"math/rand"

	"github.com/vovakirdan/tetropet/internal/config"
	"github.com/vovakirdan/tetropet/internal/core"
	"github.com/vovakirdan/tetropet/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParseDifficulty(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// Game adapts the puzzle Engine to the platform's fixed-tick loop.
type Game struct {
	cfg    config.BlocksConfig
	rng    *rand.Rand
	engine *Engine

	tick        uint64
	gravityTick int // ticks since the last automatic drop

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a new puzzle game. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("blocks", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "blocks" }

// Title returns the display name.
func (g *Game) Title() string { return "Blocks" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	bc, err := config.LoadBlocks(configPath)
	if err != nil {
		bc = config.DefaultBlocksConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBlocksPreset(&bc, difficultyPreset)
	}
	g.cfg = bc

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.engine = NewEngine(bc.Board.Width, bc.Board.Height, g.rng)
	g.engine.InitGame()

	g.tick = 0
	g.gravityTick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = g.screenW < g.requiredWidth() || g.screenH < g.requiredHeight()
}

// Resize records the new terminal size. Play is suspended while the
// window is too small and resumes once it fits again.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < g.requiredWidth() || h < g.requiredHeight()
}

// Engine exposes the underlying engine, mainly for tests.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.engine.GameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.engine.TogglePause()
	}

	if g.tooSmall || g.engine.GameOver() || g.engine.Paused() {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	// Gravity
	g.gravityTick++
	if g.gravityTick >= g.cfg.Gravity.GravityTicks(g.engine.Level()) {
		g.gravityTick = 0
		g.engine.MovePiece(DirDown)
	}

	return core.StepResult{State: g.State()}
}

// processInput maps actions to engine operations. A hard drop wins over
// everything else in the same frame.
func (g *Game) processInput(input core.InputFrame) {
	if input.Has(core.ActionDrop) {
		g.engine.DropPiece()
		g.gravityTick = 0
		return
	}
	if input.Has(core.ActionRotate) || input.Has(core.ActionUp) {
		g.engine.RotatePiece()
	}
	switch {
	case input.Has(core.ActionLeft):
		g.engine.MovePiece(DirLeft)
	case input.Has(core.ActionRight):
		g.engine.MovePiece(DirRight)
	}
	if input.Has(core.ActionDown) {
		g.engine.MovePiece(DirDown)
		g.gravityTick = 0
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.GameOver(),
		Paused:   g.engine.Paused() || g.tooSmall,
	}
}
