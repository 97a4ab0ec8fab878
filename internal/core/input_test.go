package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "None"},
		{ActionJump, "Jump"},
		{ActionPause, "Pause"},
		{ActionRestart, "Restart"},
		{ActionStart, "Start"},
		{ActionToggleAudio, "ToggleAudio"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.want)
		}
	}
}
