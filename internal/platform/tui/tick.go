// Package tui runs games in the terminal with Bubble Tea: the tick loop,
// key-hold tracking, the class menu, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate applies when a config leaves TickRate unset.
const defaultTickRate = 60

// TickMsg carries the wall-clock time of one frame.
type TickMsg time.Time

// tickInterval is the nominal frame length at rate ticks per second.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
