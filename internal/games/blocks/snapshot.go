package blocks

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Score   int
	Level   int
	Lines   int
	Current Kind
	Next    Kind
	PieceX  int
	PieceY  int
	Filled  int // locked cells on the board
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.GameOver():
		state = StateGameOver
	case g.engine.Paused():
		state = StatePaused
	}

	s := Snapshot{
		Tick:  g.tick,
		Score: g.engine.Score(),
		Level: g.engine.Level(),
		Lines: g.engine.Lines(),
		State: state,
	}
	if cur := g.engine.Current(); cur != nil {
		s.Current = cur.Kind
		s.PieceX = cur.X
		s.PieceY = cur.Y
	}
	if next := g.engine.Next(); next != nil {
		s.Next = next.Kind
	}
	for _, row := range g.engine.Board() {
		for _, c := range row {
			if c != Empty {
				s.Filled++
			}
		}
	}
	return s
}
