package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flapper.yaml
var defaultFlapperYAML []byte

// DefaultFlapperConfig returns the hardcoded configuration. It mirrors
// defaults/flapper.yaml and is used when the embedded file cannot be parsed.
func DefaultFlapperConfig() FlapperConfig {
	return FlapperConfig{
		Physics: FlapperPhysics{
			Gravity:       0.15,
			WarmupGravity: 0.1,
			JumpImpulse:   -8,
			MaxUpSpeed:    8,
			MaxFallSpeed:  8,
			GroundLine:    85,
			CeilingLine:   20,
			DeathLine:     0,
			BaseSpeed:     0.5,
		},
		Player: FlapperPlayer{
			X:               30,
			Width:           8,
			Height:          20,
			HitboxX:         32.5,
			HitboxWidth:     3,
			HitboxInsetTop:  4,
			HitboxShrink:    8,
			HitboxMinHeight: 8,
		},
		Obstacles: FlapperObstacles{
			SpawnX:    100,
			PassLine:  30,
			PruneLine: -10,
			MinWidth:  8,
			MaxWidth:  10,
			MinHeight: 12,
			MaxHeight: 16,
			MinGap:    80,
			BaseGap:   50,
			GapJitter: 60,
			Kinds:     []string{"stone", "stone2", "cactus", "wood"},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:           "score",
				SpeedStepEvery: 10,
				GapStepEvery:   6,
			},
			Scaling: ScalingConfig{
				SpeedStep: 0.2,
				MaxSpeed:  2.5,
				GapStep:   4,
			},
		},
		Timing: FlapperTiming{
			CountdownFrom: 3,
			CountdownTick: time.Second,
			GoDelay:       time.Second,
			WarmupDelay:   2 * time.Second,
			JumpCooldown:  300 * time.Millisecond,
			HintDuration:  5 * time.Second,
		},
		Audio: FlapperAudio{
			Enabled:       true,
			SampleRate:    44100,
			MasterVolume:  1.0,
			PointVolume:   0.3,
			DeathVolume:   0.4,
			AmbientVolume: 0.2,
		},
		Display: FlapperDisplay{
			NightScore: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlapperYAML
}
