package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetropet/internal/core"
)

// cellColors maps core.Color to ANSI 256 color codes.
var cellColors = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// theme holds the styles of every screen, bound to one renderer. Local
// play uses the default renderer; each SSH session gets its own so colors
// match the remote terminal.
type theme struct {
	cells []lipgloss.Style

	title     lipgloss.Style
	selected  lipgloss.Style
	dim       lipgloss.Style
	box       lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	empty     lipgloss.Style
}

func newTheme(r *lipgloss.Renderer) *theme {
	t := &theme{cells: make([]lipgloss.Style, len(cellColors))}
	for c, code := range cellColors {
		st := r.NewStyle()
		if code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		t.cells[c] = st
	}

	t.title = r.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	t.selected = r.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	t.dim = r.NewStyle().Foreground(lipgloss.Color("241"))
	t.box = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	t.tab = r.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	t.activeTab = r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	t.empty = r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	return t
}

var defaultTheme = newTheme(lipgloss.DefaultRenderer())

func (t *theme) cell(c core.Color) lipgloss.Style {
	if int(c) < len(t.cells) {
		return t.cells[c]
	}
	return t.cells[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string with the
// default renderer.
func RenderScreen(s *core.Screen) string {
	return defaultTheme.renderScreen(s)
}

// renderScreen styles runs of same-colored cells together to keep the
// escape sequences short.
func (t *theme) renderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(t.cell(color).Render(run.String()))
		}
	}
	return sb.String()
}
