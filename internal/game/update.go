package game

import "github.com/vovakirdan/flapper/internal/config"

// FrameEvents reports what happened during one frame.
type FrameEvents struct {
	Scored   int  // Obstacles passed this frame
	Collided bool // The run ended this frame
	Spawned  bool
}

// Step runs one simulation frame. It reads only state and configuration, so
// a test can drive it without a clock. Order: physics, obstacle movement
// with scoring and pruning, collision, spawn.
//
// Anything but PhasePlaying is a no-op.
func Step(s *State, cfg config.FlapperConfig, gen *Generator) FrameEvents {
	var ev FrameEvents
	if s.Phase != PhasePlaying {
		return ev
	}
	s.Frames++

	s.Entity = Integrate(s.Entity, s.Gravity, cfg.Physics, cfg.Player.Height)

	ev.Scored = gen.Advance(s)

	if Detect(s, cfg) {
		ev.Collided = true
		return ev
	}

	ev.Spawned = gen.MaybeSpawn(s)
	return ev
}
