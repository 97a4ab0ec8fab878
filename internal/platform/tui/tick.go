// Package tui provides the Bubble Tea integration for flapper.
// It drives the game machine from a tick loop, maps input to commands and
// draws the state into the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameGap caps the time advanced by one tick, so a suspended terminal
// does not fire every pending timer at once on wake.
const maxFrameGap = 250 * time.Millisecond

// TickMsg is sent to trigger a game clock tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// frameDelta returns the clock advance for a tick arriving at now.
func frameDelta(last, now time.Time, tickRate int) time.Duration {
	if last.IsZero() {
		return tickInterval(tickRate)
	}
	dt := now.Sub(last)
	if dt < 0 {
		return 0
	}
	if dt > maxFrameGap {
		return maxFrameGap
	}
	return dt
}
