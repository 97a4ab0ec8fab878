package core

// Action is a semantic player command, abstracted from physical keys and
// taps. The platform maps raw input to actions; the game machine consumes them.
type Action int

const (
	ActionNone        Action = iota
	ActionJump               // Space, Up, W, mouse click
	ActionPause              // P, Escape
	ActionRestart            // R
	ActionStart              // Enter, or Space on the start/game-over screen
	ActionToggleAudio        // M
	ActionQuit               // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionStart:
		return "Start"
	case ActionToggleAudio:
		return "ToggleAudio"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
