// Package tui runs the games in a terminal with Bubble Tea, locally or over
// SSH with Wish. It maps keys to actions, drives the fixed tick loop and
// hosts the menu and scoreboard screens.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetropet/internal/core"
)

// loopSeq numbers game loops so a tick left over from a finished game
// cannot drive the next one.
var loopSeq atomic.Int64

// TickMsg asks the game running loop Loop for one simulation step.
type TickMsg struct {
	Loop int64
	At   time.Time
}

// tickCmd schedules the next step of a loop at the given rate.
func tickCmd(loop int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, At: t}
	})
}
