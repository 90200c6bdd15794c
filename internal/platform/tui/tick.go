// Package tui provides the Bubble Tea integration for brickbreak.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
// Gen ties the message to one game run so ticks from a replaced run are dropped.
type TickMsg struct {
	At  time.Time
	Gen int
}

// tickCmd returns a Bubble Tea command that sends a tick message after one fixed interval.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
