package pet

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetropet/internal/config"
	"github.com/vovakirdan/tetropet/internal/core"
	"github.com/vovakirdan/tetropet/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// slotActivities maps number keys to activities, in catalog order.
var slotActivities = [...]string{
	ActivityFeed,
	ActivityPlay,
	ActivitySleep,
	ActivityBath,
	ActivityMedicine,
	ActivityExercise,
}

// releaseAction gives the pet away; R adopts a new one afterwards.
var releaseAction = core.SlotAction(9)

// Game runs a Sim inside the platform's tick loop. Each Step advances a
// TickScheduler to the wall clock, so activities and decay happen in real
// time while the game is open.
type Game struct {
	cfg    config.PetConfig
	sched  *core.TickScheduler
	sim    *Sim
	store  Persister
	logger *log.Logger
	clock  func() time.Time

	screenW int
	screenH int
}

// New creates a pet game. Call Reset before use.
func New() *Game {
	return &Game{clock: time.Now}
}

func init() {
	registry.Register("pet", func() registry.Game {
		return New()
	})
}

// SetPersister sets where the pet is saved. Must be called before Reset.
func (g *Game) SetPersister(p Persister) {
	g.store = p
}

// SetLogger sets the logger handed to the simulation.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// SetClock replaces the wall clock, for tests.
func (g *Game) SetClock(now func() time.Time) {
	g.clock = now
}

// Sim exposes the running simulation.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Resize records the new terminal size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// ID returns the game identifier.
func (g *Game) ID() string { return "pet" }

// Title returns the display name.
func (g *Game) Title() string { return "Virtual Pet" }

// Reset loads the saved pet, or adopts a new one when there is none.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.sim != nil {
		_ = g.sim.Close(context.Background())
	}

	pc, err := config.LoadPet(configPath)
	if err != nil {
		pc = config.DefaultPetConfig()
	}
	g.cfg = pc
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	logger := g.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g.sched = core.NewTickScheduler(g.clock())
	g.sim = NewSim(g.sched, Options{Persister: g.store, Logger: logger, Config: &pc})

	if err := g.sim.Load(context.Background()); err != nil {
		if !errors.Is(err, ErrNoPet) {
			logger.Warn("could not load pet, adopting a new one", "err", err)
		}
		g.adopt()
	}
}

func (g *Game) adopt() {
	species, ok := ParseSpecies(g.cfg.DefaultSpecies)
	if !ok {
		species = SpeciesCat
	}
	name := g.cfg.DefaultName
	if name == "" {
		name = "Mochi"
	}
	g.sim.CreatePet(name, species)
}

// Step advances simulated time to now and handles input.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.sched.AdvanceTo(g.clock())

	switch {
	case input.Has(core.ActionRestart) && !g.sim.HasPet():
		g.adopt()
	case input.Has(releaseAction) && g.sim.HasPet():
		if err := g.sim.ResetPet(context.Background()); err != nil {
			g.sim.logger.Error("release failed", "err", err)
		}
	}

	for i, id := range slotActivities {
		if input.Has(core.SlotAction(i + 1)) {
			g.sim.PerformActivity(id)
			break
		}
	}

	return core.StepResult{State: g.State()}
}

// State reports the pet's total experience as the score. The pet game
// never ends on its own.
func (g *Game) State() core.GameState {
	if g.sim == nil || !g.sim.HasPet() {
		return core.GameState{}
	}
	p := g.sim.pet
	return core.GameState{Score: levelBase(p.Level) + p.Experience}
}

// levelBase is the experience spent to reach level.
func levelBase(level int) int {
	return 100 * level * (level - 1) / 2
}

// Close saves the pet and stops its timers.
func (g *Game) Close() error {
	if g.sim == nil {
		return nil
	}
	return g.sim.Close(context.Background())
}
