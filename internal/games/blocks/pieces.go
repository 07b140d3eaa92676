// Package blocks implements the falling-block puzzle: a fixed well, seven
// tetromino shapes, line clears and the classic scoring curve.
package blocks

import "github.com/vovakirdan/tetropet/internal/core"

// Kind identifies one of the seven tetromino shapes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of shape variants.
const KindCount = 7

// String returns the conventional letter for the shape.
func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return "?"
	}
	return string("IOTSZJL"[k])
}

// Shape is a binary matrix: Shape[row][col] is true for filled cells.
type Shape [][]bool

// Rows returns the shape height.
func (s Shape) Rows() int {
	return len(s)
}

// Cols returns the shape width.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r := range s {
		out[r] = append([]bool(nil), s[r]...)
	}
	return out
}

// Equal reports whether two shapes have the same dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if s.Rows() != other.Rows() || s.Cols() != other.Cols() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90° clockwise.
// For an R×C shape the result is C×R with rotated[c][R-1-r] = s[r][c].
func (s Shape) Rotate() Shape {
	rows, cols := s.Rows(), s.Cols()
	rotated := make(Shape, cols)
	for c := range rotated {
		rotated[c] = make([]bool, rows)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rotated[c][rows-1-r] = s[r][c]
		}
	}
	return rotated
}

// parseShape builds a shape from rows of '#' (filled) and '.' (empty).
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for r, line := range rows {
		s[r] = make([]bool, len(line))
		for c, ch := range line {
			s[r][c] = ch == '#'
		}
	}
	return s
}

// template is an immutable catalog entry. Pieces never share its matrix.
type template struct {
	shape Shape
	color core.Color
}

var catalog = [KindCount]template{
	KindI: {parseShape("####"), core.ColorCyan},
	KindO: {parseShape("##", "##"), core.ColorYellow},
	KindT: {parseShape(".#.", "###"), core.ColorMagenta},
	KindS: {parseShape(".##", "##."), core.ColorGreen},
	KindZ: {parseShape("##.", ".##"), core.ColorRed},
	KindJ: {parseShape("#..", "###"), core.ColorBlue},
	KindL: {parseShape("..#", "###"), core.ColorOrange},
}

// TemplateShape returns a copy of the canonical rotation-0 shape for a kind.
func TemplateShape(k Kind) Shape {
	return catalog[k].shape.Clone()
}

// KindColor returns the display color of a kind.
func KindColor(k Kind) core.Color {
	return catalog[k].color
}

// Piece is a shape placed in board coordinates; (X, Y) is the shape origin.
type Piece struct {
	Kind  Kind
	Shape Shape
	Color core.Color
	X, Y  int
}

// NewPiece returns a fresh piece of the given kind at the origin.
func NewPiece(k Kind) *Piece {
	return &Piece{
		Kind:  k,
		Shape: TemplateShape(k),
		Color: KindColor(k),
	}
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	c := *p
	c.Shape = p.Shape.Clone()
	return &c
}

// Cells calls fn with the board coordinates of every filled cell.
func (p *Piece) Cells(fn func(x, y int)) {
	for r, row := range p.Shape {
		for c, filled := range row {
			if filled {
				fn(p.X+c, p.Y+r)
			}
		}
	}
}
