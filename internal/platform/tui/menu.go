package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetropet/internal/core"
	"github.com/vovakirdan/tetropet/internal/games/pet"
	"github.com/vovakirdan/tetropet/internal/registry"
	"github.com/vovakirdan/tetropet/internal/storage"
)

// gameBlurbs are the one-line descriptions shown under the selected game.
var gameBlurbs = map[string]string{
	"blocks": "Stack falling pieces, clear lines, chase the high score",
	"pet":    "Feed, play with and look after your own pet",
}

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID    string
	Title     string
	Blurb     string
	HighScore int
	Note      string // shown instead of the high score, e.g. the saved pet
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	theme          *theme
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model. petSlot selects which saved pet
// the menu describes; it may be empty.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, petSlot string) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{
			GameID: g.ID,
			Title:  g.Title,
			Blurb:  gameBlurbs[g.ID],
		}
		if store != nil {
			if hs, err := store.HighScore(g.ID); err == nil {
				item.HighScore = hs
			}
			if g.ID == "pet" {
				item.Note = petSummary(store, petSlot)
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     defaultTheme,
	}
}

// petSummary describes the pet saved in slot, or returns "".
func petSummary(store *storage.Store, slot string) string {
	if slot == "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	data, err := store.LoadPet(ctx, slot)
	if err != nil {
		return ""
	}
	snap, err := pet.DecodeSnapshot(data)
	if err != nil || snap.Pet.Name == "" {
		return ""
	}
	return fmt.Sprintf("%s, lvl %d", snap.Pet.Name, snap.Pet.Level)
}

// WithRenderer styles the menu for a specific terminal.
func (m MenuModel) WithRenderer(r *lipgloss.Renderer) MenuModel {
	m.theme = newTheme(r)
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "  T E T R O P E T  "
	b.WriteString("\n")
	b.WriteString(centerStyled(m.theme.title.Render(title), len(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.line()
		if i == m.cursor {
			line = "> " + item.line()
			b.WriteString(centerStyled(m.theme.selected.Render(line), lipgloss.Width(line), m.width))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		if blurb := m.items[m.cursor].Blurb; blurb != "" {
			b.WriteString("\n")
			b.WriteString(centerStyled(m.theme.dim.Render(blurb), len(blurb), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (item MenuItem) line() string {
	switch {
	case item.Note != "":
		return fmt.Sprintf("%-14s %s", item.Title, item.Note)
	case item.HighScore > 0:
		return fmt.Sprintf("%-14s best %d", item.Title, item.HighScore)
	default:
		return item.Title
	}
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerStyled centers already-styled text using its visible length.
func centerStyled(styled string, visible, width int) string {
	if visible >= width {
		return styled
	}
	return strings.Repeat(" ", (width-visible)/2) + styled
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	return centerStyled(text, lipgloss.Width(text), width)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, petSlot string) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg, petSlot),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
