package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tetropet/internal/registry"
	"github.com/vovakirdan/tetropet/internal/storage"
)

const (
	maxScores = 100
	petsBoard = "" // board ID of the saved pets list
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next board")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev board")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// board is one tab of the scoreboard: a game's scores or the pets list.
type board struct {
	id    string
	title string
}

// ScoreboardModel shows the top scores of every game and the saved pets.
type ScoreboardModel struct {
	boards    []board
	cursor    int
	store     *storage.Store
	rows      []table.Row
	summary   string
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	theme     *theme
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	games := registry.List()
	boards := make([]board, 0, len(games)+1)
	for _, g := range games {
		boards = append(boards, board{id: g.ID, title: g.Title})
	}
	boards = append(boards, board{id: petsBoard, title: "Pets"})

	m := ScoreboardModel{
		boards: boards,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		theme:  defaultTheme,
		width:  width,
		height: height,
	}
	m.load()
	return m
}

// WithRenderer styles the scoreboard for a specific terminal.
func (m ScoreboardModel) WithRenderer(r *lipgloss.Renderer) ScoreboardModel {
	m.theme = newTheme(r)
	m.table = m.newTable()
	return m
}

func (m ScoreboardModel) current() board {
	return m.boards[m.cursor]
}

// load fetches the rows of the current board and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.rows = nil
	m.summary = ""
	if m.store != nil {
		if b := m.current(); b.id == petsBoard {
			m.loadPets()
		} else {
			m.loadScores(b.id)
		}
	}
	m.table = m.newTable()
}

func (m *ScoreboardModel) loadScores(gameID string) {
	scores, err := m.store.TopScores(gameID, maxScores)
	if err != nil {
		return
	}
	for i, s := range scores {
		m.rows = append(m.rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			humanize.Comma(int64(s.Score)),
			humanize.Time(s.CreatedAt),
		})
	}

	stats, err := m.store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		m.summary = fmt.Sprintf("%s runs  ·  avg %s  ·  last played %s",
			humanize.Comma(int64(stats.GamesCount)),
			humanize.Comma(int64(stats.AvgScore)),
			humanize.Time(stats.LastPlayed))
	}
}

func (m *ScoreboardModel) loadPets() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	pets, err := m.store.ListPets(ctx)
	if err != nil {
		return
	}
	for _, p := range pets {
		m.rows = append(m.rows, table.Row{
			p.Name,
			p.Species,
			fmt.Sprintf("%d", p.Level),
			p.Slot,
			humanize.Time(p.UpdatedAt),
		})
	}
	if len(pets) > 0 {
		m.summary = fmt.Sprintf("%d pets saved", len(pets))
	}
}

// newTable sizes the columns of the current board to the window.
func (m ScoreboardModel) newTable() table.Model {
	var columns []table.Column
	if m.current().id == petsBoard {
		columns = []table.Column{
			{Title: "Name", Width: 12},
			{Title: "Species", Width: 8},
			{Title: "Level", Width: 6},
			{Title: "Owner", Width: 12},
			{Title: "Saved", Width: 16},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 12},
			{Title: "When", Width: 18},
		}
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.boards)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor + len(m.boards) - 1) % len(m.boards)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if m.current().id == petsBoard {
		title = "SAVED PETS"
	}
	b.WriteString("\n")
	b.WriteString(centerStyled(m.theme.title.Render(title), len(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.boards))
	for i, bd := range m.boards {
		if i == m.cursor {
			tabs[i] = m.theme.activeTab.Render(bd.title)
		} else {
			tabs[i] = m.theme.tab.Render(bd.title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	var content string
	if len(m.rows) == 0 {
		content = m.theme.empty.Render(m.emptyText())
	} else {
		content = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.theme.box.Render(content)))
	b.WriteString("\n")

	if m.summary != "" {
		b.WriteString("\n")
		b.WriteString(centerStyled(m.theme.dim.Render(m.summary), lipgloss.Width(m.summary), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.dim.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) emptyText() string {
	if m.current().id == petsBoard {
		return "No pets saved yet.\nAdopt one in the Virtual Pet game!"
	}
	return "No scores recorded yet.\nPlay a game to set a high score!"
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
