// Package registry maps game IDs to constructors. The blocks and pet
// packages register from init, so importing them for side effects is
// enough for the CLI, menu and SSH server to offer them.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tetropet/internal/core"
)

// Game is a fixed-tick simulation driven by the TUI platform. It never
// touches the terminal: the platform feeds it input frames and a cleared
// screen, and persists the score from State.
type Game interface {
	// ID is the stable key used on the command line and in the scores table.
	ID() string

	// Title is shown in the menu and scoreboard tabs.
	Title() string

	// Reset starts a fresh round for the given terminal size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step runs one tick with the actions pressed since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the platform clears first.
	Render(dst *core.Screen)

	// State reports score, game over and pause for the status line.
	State() core.GameState
}

// Closer is implemented by games that hold resources beyond a single
// session, such as a persisted pet. The platform calls Close when the
// session ends.
type Closer interface {
	Close() error
}

// Resizer is implemented by games that adapt to a new terminal size without
// restarting. Games without it are reset on resize.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
	// Persistent games keep state between sessions and may be left at any time.
	Persistent bool
}

// Factory builds a new, un-Reset game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game. A duplicate ID panics, since it can only come from
// two packages claiming the same key.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	sample := f()
	_, persistent := sample.(Closer)
	entries[id] = entry{
		factory: f,
		info:    GameInfo{ID: id, Title: sample.Title(), Persistent: persistent},
	}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create builds a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
