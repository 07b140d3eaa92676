package blocks

import (
	"fmt"

	"github.com/vovakirdan/tetropet/internal/core"
)

const (
	cellWidth  = 2  // each board cell is drawn two columns wide
	panelWidth = 16 // side panel with next piece and stats
	hudHeight  = 1
)

func (g *Game) requiredWidth() int {
	return g.cfg.Board.Width*cellWidth + 2 + 1 + panelWidth
}

func (g *Game) requiredHeight() int {
	return g.cfg.Board.Height + 2 + hudHeight
}

// Render draws the well, ghost, side panel and overlays.
func (g *Game) Render(dst *core.Screen) {
	if g.engine == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	wellW := g.cfg.Board.Width*cellWidth + 2
	wellH := g.cfg.Board.Height + 2
	totalW := wellW + 1 + panelWidth
	offX := (dst.Width() - totalW) / 2
	offY := hudHeight

	dst.DrawText(offX, 0, fmt.Sprintf("BLOCKS  Score: %d", g.engine.Score()))

	well := core.NewRect(offX, offY, wellW, wellH)
	dst.DrawBox(well)
	g.renderGhost(dst, well.X+1, well.Y+1)
	g.renderBoard(dst, well.X+1, well.Y+1)
	g.renderPanel(dst, well.Right()+1, offY)

	switch {
	case g.engine.GameOver():
		g.renderOverlay(dst, well, "GAME OVER", "R restart  Q quit")
	case g.engine.Paused():
		g.renderOverlay(dst, well, "PAUSED", "P resume")
	}
}

func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	board := g.engine.RenderedBoard()
	for y, row := range board {
		for x, c := range row {
			if c == Empty {
				continue
			}
			dst.SetWithColor(x0+x*cellWidth, y0+y, '█', c)
			dst.SetWithColor(x0+x*cellWidth+1, y0+y, '█', c)
		}
	}
}

func (g *Game) renderGhost(dst *core.Screen, x0, y0 int) {
	cur := g.engine.Current()
	if cur == nil || g.engine.GameOver() {
		return
	}
	cur.Y = g.engine.GhostY()
	cur.Cells(func(x, y int) {
		if y < 0 {
			return
		}
		dst.SetWithColor(x0+x*cellWidth, y0+y, '░', core.ColorGray)
		dst.SetWithColor(x0+x*cellWidth+1, y0+y, '░', core.ColorGray)
	})
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	box := core.NewRect(x, y, panelWidth, 6)
	dst.DrawBox(box)
	dst.DrawText(x+2, y, " NEXT ")
	if next := g.engine.Next(); next != nil {
		cols := next.Shape.Cols() * cellWidth
		px := x + (panelWidth-cols)/2
		py := y + 2
		for r, row := range next.Shape {
			for c, filled := range row {
				if filled {
					dst.SetWithColor(px+c*cellWidth, py+r, '█', next.Color)
					dst.SetWithColor(px+c*cellWidth+1, py+r, '█', next.Color)
				}
			}
		}
	}

	sy := box.Bottom() + 1
	dst.DrawText(x+1, sy, fmt.Sprintf("Score %d", g.engine.Score()))
	dst.DrawText(x+1, sy+1, fmt.Sprintf("Level %d", g.engine.Level()))
	dst.DrawText(x+1, sy+2, fmt.Sprintf("Lines %d", g.engine.Lines()))

	hy := sy + 4
	for i, line := range []string{"←→ move", "↑ rotate", "↓ soft drop", "SPACE drop", "P pause"} {
		dst.DrawTextColor(x+1, hy+i, line, core.ColorGray)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, well core.Rect, title, hint string) {
	cy := well.Y + well.H/2
	g.centerIn(dst, well, cy-1, title, core.ColorBrightWhite)
	g.centerIn(dst, well, cy+1, hint, core.ColorGray)
}

func (g *Game) centerIn(dst *core.Screen, r core.Rect, y int, text string, c core.Color) {
	n := len([]rune(text))
	x := r.X + (r.W-n)/2
	// blank a strip so the text stays readable over locked cells
	for i := -1; i <= n; i++ {
		dst.Set(x+i, y, ' ')
	}
	dst.DrawTextColor(x, y, text, c)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	cy := dst.Height() / 2
	dst.DrawTextCentered(cy-1, "Terminal too small")
	dst.DrawTextCentered(cy+1, fmt.Sprintf("Need %dx%d, have %dx%d",
		g.requiredWidth(), g.requiredHeight(), g.screenW, g.screenH))
}
