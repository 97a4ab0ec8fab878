package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/game"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Jump    key.Binding
	Start   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Audio   key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Pause, k.Restart, k.Audio, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Jump, k.Pause},
		{k.Restart, k.Audio, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/up", "jump"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Audio: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sound"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to an action for the current phase.
// The jump keys start a run from the start and game over screens.
func (k KeyMap) MapKey(msg tea.KeyMsg, phase game.Phase) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Audio):
		return core.ActionToggleAudio
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Jump):
		if phase == game.PhaseIdle || phase == game.PhaseGameOver {
			return core.ActionStart
		}
		return core.ActionJump
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// MapMouse treats a left button press as a jump, or a start outside a run.
func MapMouse(msg tea.MouseMsg, phase game.Phase) core.Action {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.ActionNone
	}
	if phase == game.PhaseIdle || phase == game.PhaseGameOver {
		return core.ActionStart
	}
	return core.ActionJump
}
