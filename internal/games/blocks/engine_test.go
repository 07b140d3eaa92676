package blocks

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tetropet/internal/core"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(DefaultWidth, DefaultHeight, rand.New(rand.NewSource(42)))
	e.InitGame()
	return e
}

func fillRow(b Board, y int, c Cell) {
	for x := range b[y] {
		b[y][x] = c
	}
}

func countFilled(b Board) int {
	n := 0
	for _, row := range b {
		for _, c := range row {
			if c != Empty {
				n++
			}
		}
	}
	return n
}

func TestInitGame(t *testing.T) {
	e := newTestEngine(t)

	if !e.Playing() || e.GameOver() || e.Paused() {
		t.Fatalf("flags after init: playing=%v over=%v paused=%v", e.Playing(), e.GameOver(), e.Paused())
	}
	if e.Score() != 0 || e.Lines() != 0 || e.Level() != 1 {
		t.Errorf("counters = %d/%d/%d, want 0/0/1", e.Score(), e.Lines(), e.Level())
	}
	cur := e.Current()
	if cur == nil || e.Next() == nil {
		t.Fatal("expected current and next pieces")
	}
	if want := DefaultWidth/2 - cur.Shape.Cols()/2; cur.X != want || cur.Y != 0 {
		t.Errorf("spawn at (%d,%d), want (%d,0)", cur.X, cur.Y, want)
	}
	if n := countFilled(e.Board()); n != 0 {
		t.Errorf("board has %d filled cells after init", n)
	}
}

func TestCheckCollision(t *testing.T) {
	e := newTestEngine(t)
	e.board[10][5] = core.ColorRed

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"inside", 0, 0, false},
		{"left wall", -1, 0, true},
		{"right wall", DefaultWidth - 1, 0, true}, // O is two wide
		{"right edge fits", DefaultWidth - 2, 0, false},
		{"floor", 0, DefaultHeight - 1, true},
		{"resting on floor", 0, DefaultHeight - 2, false},
		{"above top", 0, -1, false},
		{"far above top", 3, -5, false},
		{"locked cell", 4, 9, true},
		{"next to locked cell", 6, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPiece(KindO)
			p.X, p.Y = tt.x, tt.y
			if got := e.CheckCollision(p); got != tt.want {
				t.Errorf("CheckCollision at (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCheckCollisionNilPiece(t *testing.T) {
	e := newTestEngine(t)
	if !e.CheckCollision(nil) {
		t.Error("CheckCollision(nil) = false, expected true")
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for k := KindI; k < KindCount; k++ {
		s := TemplateShape(k)
		r := s.Rotate().Rotate().Rotate().Rotate()
		if !r.Equal(s) {
			t.Errorf("%s: four rotations changed the shape", k)
		}
	}
}

func TestRotateClockwise(t *testing.T) {
	got := TemplateShape(KindT).Rotate()
	want := parseShape("#.", "##", "#.")
	if !got.Equal(want) {
		t.Errorf("T rotated = %v, want %v", got, want)
	}

	i := TemplateShape(KindI).Rotate()
	if i.Rows() != 4 || i.Cols() != 1 {
		t.Errorf("I rotated is %dx%d, want 4x1", i.Rows(), i.Cols())
	}
}

func TestRotatePieceRefusedAtWall(t *testing.T) {
	e := newTestEngine(t)
	p := NewPiece(KindI)
	p.Shape = p.Shape.Rotate() // vertical
	p.X, p.Y = DefaultWidth-1, 5
	e.current = p

	e.RotatePiece()

	if e.current.Shape.Rows() != 4 {
		t.Error("rotation into the wall should be refused")
	}
	if e.current.X != DefaultWidth-1 {
		t.Errorf("piece moved to x=%d", e.current.X)
	}
}

func TestTemplatesAreIsolated(t *testing.T) {
	p := NewPiece(KindT)
	p.Shape[0][0] = true

	if TemplateShape(KindT)[0][0] {
		t.Error("mutating a piece changed the catalog template")
	}
	if q := NewPiece(KindT); q.Shape[0][0] {
		t.Error("new piece shares storage with a previous one")
	}
}

func TestClearSingleBottomRow(t *testing.T) {
	e := newTestEngine(t)
	fillRow(e.board, DefaultHeight-1, core.ColorCyan)
	e.board[DefaultHeight-2][0] = core.ColorRed

	if n := e.ClearLines(); n != 1 {
		t.Fatalf("ClearLines = %d, want 1", n)
	}
	if e.board[DefaultHeight-1][0] != core.ColorRed {
		t.Error("row above the cleared line did not shift down")
	}
	if countFilled(e.board) != 1 {
		t.Errorf("filled = %d, want 1", countFilled(e.board))
	}
	if e.Lines() != 1 || e.Score() != 40 || e.Level() != 1 {
		t.Errorf("lines/score/level = %d/%d/%d, want 1/40/1", e.Lines(), e.Score(), e.Level())
	}
}

func TestClearSeparatedRows(t *testing.T) {
	e := newTestEngine(t)
	fillRow(e.board, 19, core.ColorCyan)
	e.board[18][3] = core.ColorRed
	fillRow(e.board, 17, core.ColorCyan)

	if n := e.ClearLines(); n != 2 {
		t.Fatalf("ClearLines = %d, want 2", n)
	}
	if e.board[19][3] != core.ColorRed || countFilled(e.board) != 1 {
		t.Error("expected single survivor cell at bottom row")
	}
	if e.Score() != 100 {
		t.Errorf("score = %d, want 100", e.Score())
	}
}

func TestClearLinesNothingFull(t *testing.T) {
	e := newTestEngine(t)
	e.board[19][0] = core.ColorRed
	if n := e.ClearLines(); n != 0 {
		t.Errorf("ClearLines = %d, want 0", n)
	}
	if e.Score() != 0 || e.Lines() != 0 {
		t.Error("counters changed without a clear")
	}
}

func TestCalculateScore(t *testing.T) {
	e := newTestEngine(t)
	tests := []struct {
		level, n, want int
	}{
		{1, 0, 0},
		{1, 1, 40},
		{1, 2, 100},
		{1, 3, 300},
		{1, 4, 1200},
		{3, 4, 3600},
		{2, 1, 80},
		{1, 5, 0},
		{1, -1, 0},
	}
	for _, tt := range tests {
		e.level = tt.level
		if got := e.CalculateScore(tt.n); got != tt.want {
			t.Errorf("level %d, %d lines: got %d, want %d", tt.level, tt.n, got, tt.want)
		}
	}
}

func TestLevelAdvancesEveryTenLines(t *testing.T) {
	e := newTestEngine(t)
	e.lines = 9
	fillRow(e.board, 19, core.ColorCyan)

	e.ClearLines()

	if e.Lines() != 10 || e.Level() != 2 {
		t.Errorf("lines/level = %d/%d, want 10/2", e.Lines(), e.Level())
	}
	// scored at the level in effect before the clear
	if e.Score() != 40 {
		t.Errorf("score = %d, want 40", e.Score())
	}
}

func TestSpawnBlockedEndsGame(t *testing.T) {
	e := newTestEngine(t)
	for x := 0; x < DefaultWidth; x += 2 {
		e.board[0][x] = core.ColorRed
		e.board[1][x+1] = core.ColorRed
	}
	before := e.Board()

	e.SpawnNewPiece()

	if !e.GameOver() || e.Playing() {
		t.Fatalf("gameOver=%v playing=%v, want true/false", e.GameOver(), e.Playing())
	}
	if !reflect.DeepEqual(before, e.Board()) {
		t.Error("board changed on blocked spawn")
	}
}

func TestMoveDownBlockedLocks(t *testing.T) {
	e := newTestEngine(t)
	p := NewPiece(KindO)
	p.X, p.Y = 0, DefaultHeight-2
	e.current = p

	e.MovePiece(DirDown)

	if e.board[DefaultHeight-1][0] != core.ColorYellow || e.board[DefaultHeight-2][1] != core.ColorYellow {
		t.Error("piece was not locked into the board")
	}
	if e.current == p {
		t.Error("expected a new active piece after lock")
	}
}

func TestMoveSidewaysBlockedDoesNothing(t *testing.T) {
	e := newTestEngine(t)
	p := NewPiece(KindO)
	p.X, p.Y = 0, 5
	e.current = p

	e.MovePiece(DirLeft)

	if e.current.X != 0 || e.current.Y != 5 {
		t.Errorf("piece at (%d,%d), want (0,5)", e.current.X, e.current.Y)
	}
	if countFilled(e.board) != 0 {
		t.Error("sideways block must not lock")
	}
}

func TestDropPiece(t *testing.T) {
	e := newTestEngine(t)
	e.board[19][5] = core.ColorRed
	p := NewPiece(KindO)
	p.X, p.Y = 4, 0
	e.current = p

	if got := e.GhostY(); got != 17 {
		t.Fatalf("GhostY = %d, want 17", got)
	}
	e.DropPiece()

	for _, c := range [][2]int{{4, 17}, {5, 17}, {4, 18}, {5, 18}} {
		if e.board[c[1]][c[0]] != core.ColorYellow {
			t.Errorf("cell (%d,%d) not locked", c[0], c[1])
		}
	}
}

func TestRenderedBoardDoesNotMutate(t *testing.T) {
	e := newTestEngine(t)

	rb := e.RenderedBoard()

	if countFilled(rb) != 4 {
		t.Errorf("rendered board has %d filled, want 4", countFilled(rb))
	}
	if countFilled(e.Board()) != 0 {
		t.Error("RenderedBoard wrote into the engine board")
	}
	rb[0][0] = core.ColorRed
	if e.board[0][0] != Empty {
		t.Error("RenderedBoard shares storage with the engine board")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	e := newTestEngine(t)
	before := e.Current()

	e.TogglePause()
	e.MovePiece(DirLeft)
	e.MovePiece(DirDown)
	e.RotatePiece()
	e.DropPiece()

	after := e.Current()
	if after.X != before.X || after.Y != before.Y || !after.Shape.Equal(before.Shape) {
		t.Error("piece changed while paused")
	}

	e.TogglePause()
	e.MovePiece(DirDown)
	if e.Current().Y != before.Y+1 {
		t.Error("piece did not move after resume")
	}
}

func TestGameOverIgnoresInput(t *testing.T) {
	e := newTestEngine(t)
	e.gameOver = true
	e.playing = false
	before := e.Current()

	e.MovePiece(DirRight)
	e.DropPiece()
	e.TogglePause()

	if e.Paused() {
		t.Error("pause toggled after game over")
	}
	if e.Current().X != before.X {
		t.Error("piece moved after game over")
	}
}

func TestResetGame(t *testing.T) {
	e := newTestEngine(t)
	e.score, e.lines, e.level = 500, 12, 2
	e.board[19][0] = core.ColorRed
	e.gameOver = true

	e.ResetGame()

	if e.Score() != 0 || e.Lines() != 0 || e.Level() != 1 || e.GameOver() {
		t.Error("reset did not restore initial counters")
	}
	if countFilled(e.Board()) != 0 {
		t.Error("reset did not clear the board")
	}
}

func TestSameSeedSamePieces(t *testing.T) {
	a := NewEngine(0, 0, rand.New(rand.NewSource(7)))
	b := NewEngine(0, 0, rand.New(rand.NewSource(7)))
	for i := 0; i < 50; i++ {
		if ka, kb := a.CreateRandomPiece().Kind, b.CreateRandomPiece().Kind; ka != kb {
			t.Fatalf("piece %d: %s vs %s", i, ka, kb)
		}
	}
}
