package blocks

import "math/rand"

// Direction is a translation request for the active piece.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirDown
)

// lineScores is the base score for clearing 0-4 lines at once.
var lineScores = [...]int{0, 40, 100, 300, 1200}

// LinesPerLevel is the number of cleared lines per level step.
const LinesPerLevel = 10

// Engine owns one game of the falling-block puzzle.
// Engines are independent: nothing is shared between instances.
type Engine struct {
	rng   *rand.Rand
	board Board

	current *Piece
	next    *Piece

	score int
	level int
	lines int

	gameOver bool
	paused   bool
	playing  bool
}

// NewEngine creates an engine with an empty width×height board.
// Call InitGame to start playing.
func NewEngine(width, height int, rng *rand.Rand) *Engine {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Engine{
		rng:   rng,
		board: NewBoard(width, height),
		level: 1,
	}
}

// InitGame clears the board and counters and spawns the first piece.
func (e *Engine) InitGame() {
	e.board = NewBoard(e.board.Width(), e.board.Height())
	e.current = nil
	e.next = nil
	e.score = 0
	e.level = 1
	e.lines = 0
	e.gameOver = false
	e.paused = false
	e.playing = true
	e.SpawnNewPiece()
}

// ResetGame starts over; it is the same as InitGame.
func (e *Engine) ResetGame() {
	e.InitGame()
}

// SpawnNewPiece promotes the queued piece (or a fresh one) to the top center
// of the well and queues a new next piece. If the spawned piece already
// collides, the game ends and the board is left as it is.
func (e *Engine) SpawnNewPiece() {
	if e.next != nil {
		e.current = e.next
	} else {
		e.current = e.CreateRandomPiece()
	}
	e.current.X = e.board.Width()/2 - e.current.Shape.Cols()/2
	e.current.Y = 0

	e.next = e.CreateRandomPiece()

	if e.CheckCollision(e.current) {
		e.gameOver = true
		e.playing = false
	}
}

// CreateRandomPiece picks one of the seven kinds uniformly.
func (e *Engine) CreateRandomPiece() *Piece {
	return NewPiece(Kind(e.rng.Intn(KindCount)))
}

func (e *Engine) canAct() bool {
	return e.current != nil && !e.gameOver && !e.paused
}

// MovePiece shifts the active piece one cell. A blocked downward move locks
// the piece instead.
func (e *Engine) MovePiece(dir Direction) {
	if !e.canAct() {
		return
	}

	candidate := *e.current
	switch dir {
	case DirLeft:
		candidate.X--
	case DirRight:
		candidate.X++
	case DirDown:
		candidate.Y++
	default:
		return
	}

	if !e.CheckCollision(&candidate) {
		*e.current = candidate
		return
	}
	if dir == DirDown {
		e.LockPiece()
	}
}

// RotatePiece turns the active piece clockwise in place. There are no wall
// kicks: a rotation that would collide is simply refused.
func (e *Engine) RotatePiece() {
	if !e.canAct() {
		return
	}

	candidate := *e.current
	candidate.Shape = e.current.Shape.Rotate()
	if !e.CheckCollision(&candidate) {
		*e.current = candidate
	}
}

// CheckCollision reports whether the piece overlaps a wall, the floor, or a
// locked cell. Cells above the top row are only checked against the walls.
// A nil piece always collides.
func (e *Engine) CheckCollision(p *Piece) bool {
	if p == nil {
		return true
	}
	collides := false
	p.Cells(func(x, y int) {
		if collides {
			return
		}
		if x < 0 || x >= e.board.Width() || y >= e.board.Height() {
			collides = true
			return
		}
		if y >= 0 && e.board[y][x] != Empty {
			collides = true
		}
	})
	return collides
}

// LockPiece writes the active piece into the board, clears full lines and
// spawns the next piece.
func (e *Engine) LockPiece() {
	if e.current == nil {
		return
	}

	color := e.current.Color
	e.current.Cells(func(x, y int) {
		if y >= 0 && e.board.InBounds(x, y) {
			e.board[y][x] = color
		}
	})

	e.ClearLines()
	e.SpawnNewPiece()
}

// ClearLines removes every full row and returns how many were cleared.
func (e *Engine) ClearLines() int {
	cleared := 0
	for y := e.board.Height() - 1; y >= 0; {
		if e.board.rowFull(y) {
			e.board.removeRow(y)
			cleared++
			// rows above moved down into y; look at it again
			continue
		}
		y--
	}

	if cleared > 0 {
		e.lines += cleared
		e.score += e.CalculateScore(cleared)
		e.level = e.lines/LinesPerLevel + 1
	}
	return cleared
}

// CalculateScore returns the points for clearing n lines at the current level.
func (e *Engine) CalculateScore(n int) int {
	if n < 0 || n >= len(lineScores) {
		return 0
	}
	return lineScores[n] * e.level
}

// DropPiece hard-drops the active piece and locks it.
func (e *Engine) DropPiece() {
	if !e.canAct() {
		return
	}
	e.current.Y = e.GhostY()
	e.LockPiece()
}

// GhostY returns the row the active piece would land on if dropped now.
func (e *Engine) GhostY() int {
	if e.current == nil {
		return 0
	}
	probe := *e.current
	for {
		probe.Y++
		if e.CheckCollision(&probe) {
			return probe.Y - 1
		}
	}
}

// TogglePause flips the pause flag. It does nothing once the game is over.
func (e *Engine) TogglePause() {
	if !e.gameOver {
		e.paused = !e.paused
	}
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Level returns the current level (lines/10 + 1).
func (e *Engine) Level() int { return e.level }

// Lines returns the total number of cleared lines.
func (e *Engine) Lines() int { return e.lines }

// GameOver reports whether the well has topped out.
func (e *Engine) GameOver() bool { return e.gameOver }

// Paused reports whether the game is paused.
func (e *Engine) Paused() bool { return e.paused }

// Playing reports whether a game is in progress.
func (e *Engine) Playing() bool { return e.playing }

// Current returns a copy of the active piece, or nil.
func (e *Engine) Current() *Piece { return e.current.Clone() }

// Next returns a copy of the queued piece, or nil.
func (e *Engine) Next() *Piece { return e.next.Clone() }

// Board returns a copy of the locked cells.
func (e *Engine) Board() Board { return e.board.Clone() }

// RenderedBoard returns a copy of the board with the active piece drawn in
// its color. The engine's own board is not modified.
func (e *Engine) RenderedBoard() Board {
	out := e.board.Clone()
	if e.current == nil {
		return out
	}
	color := e.current.Color
	e.current.Cells(func(x, y int) {
		if out.InBounds(x, y) {
			out[y][x] = color
		}
	})
	return out
}
