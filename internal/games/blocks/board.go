package blocks

import "github.com/vovakirdan/tetropet/internal/core"

// Cell is a board cell: Empty or the color of the piece that locked there.
type Cell = core.Color

// Empty marks an unoccupied cell.
const Empty Cell = core.ColorDefault

// Default well dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Board is a fixed Height×Width grid indexed as Board[row][col].
type Board [][]Cell

// NewBoard returns an all-empty board.
func NewBoard(width, height int) Board {
	b := make(Board, height)
	for y := range b {
		b[y] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Height returns the number of rows.
func (b Board) Height() int {
	return len(b)
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for y := range b {
		out[y] = append([]Cell(nil), b[y]...)
	}
	return out
}

// InBounds reports whether (x, y) is on the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width() && y >= 0 && y < b.Height()
}

// Occupied reports whether the cell at (x, y) holds a locked block.
func (b Board) Occupied(x, y int) bool {
	return b.InBounds(x, y) && b[y][x] != Empty
}

// rowFull reports whether every cell of row y is occupied.
func (b Board) rowFull(y int) bool {
	for _, c := range b[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// removeRow deletes row y, shifts the rows above down and inserts an empty
// row at the top. Row slices are reused so the board never reallocates.
func (b Board) removeRow(y int) {
	removed := b[y]
	copy(b[1:y+1], b[:y])
	for x := range removed {
		removed[x] = Empty
	}
	b[0] = removed
}
