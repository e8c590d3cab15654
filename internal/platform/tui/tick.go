// Package tui provides the Bubble Tea front end for the rocks arcade:
// the game loop, key mapping, menus, the scoreboard, sound and the SSH
// server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. ID ties it to the
// loop that scheduled it, so a tick still in flight from a finished game
// cannot start a second loop in the next one.
type TickMsg struct {
	ID   uint64
	Time time.Time
}

var lastTickID atomic.Uint64

func nextTickID() uint64 {
	return lastTickID.Add(1)
}

// tickInterval is the frame duration for tickRate frames per second.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

func tickCmd(id uint64, tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
