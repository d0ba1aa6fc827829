// Package tui provides the Bubble Tea integration for the game: the
// simulation loop, input mapping, leaderboard overlay, and SSH serving.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// nudgeTickMsg fires the periodic active-user nudge.
type nudgeTickMsg time.Time

// nudgePeriod is how often a connected client nudges the presence gauge.
const nudgePeriod = 5 * time.Second

// tickCmd returns a command that sends tick messages at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func nudgeTickCmd() tea.Cmd {
	return tea.Tick(nudgePeriod, func(t time.Time) tea.Msg {
		return nudgeTickMsg(t)
	})
}
