// Package config provides YAML-based game configuration loading and
// difficulty management for flapper.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlapperConfig contains every tunable of the runner.
// All positions are screen-relative: horizontal values in vw, vertical in vh (0-100).
type FlapperConfig struct {
	Physics    FlapperPhysics   `yaml:"physics"`
	Player     FlapperPlayer    `yaml:"player"`
	Obstacles  FlapperObstacles `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Timing     FlapperTiming    `yaml:"timing"`
	Audio      FlapperAudio     `yaml:"audio"`
	Display    FlapperDisplay   `yaml:"display"`
}

// FlapperPhysics defines the vertical integration parameters.
type FlapperPhysics struct {
	Gravity       float64 `yaml:"gravity"`        // Nominal gravity per frame
	WarmupGravity float64 `yaml:"warmup_gravity"` // Gravity right after the countdown
	JumpImpulse   float64 `yaml:"jump_impulse"`   // Velocity set by a jump (negative = up)
	MaxUpSpeed    float64 `yaml:"max_up_speed"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"`
	GroundLine    float64 `yaml:"ground_line"`  // Top of the ground
	CeilingLine   float64 `yaml:"ceiling_line"` // Highest reachable entity top
	DeathLine     float64 `yaml:"death_line"`   // Entity top at or above this ends the run
	BaseSpeed     float64 `yaml:"base_speed"`   // Obstacle scroll speed at score 0
}

// FlapperPlayer defines the entity sprite and its hitbox.
type FlapperPlayer struct {
	X               float64 `yaml:"x"`      // Sprite left edge
	Width           float64 `yaml:"width"`  // Sprite width
	Height          float64 `yaml:"height"` // Sprite height
	HitboxX         float64 `yaml:"hitbox_x"`
	HitboxWidth     float64 `yaml:"hitbox_width"`
	HitboxInsetTop  float64 `yaml:"hitbox_inset_top"`
	HitboxShrink    float64 `yaml:"hitbox_shrink"` // Subtracted from sprite height
	HitboxMinHeight float64 `yaml:"hitbox_min_height"`
}

// FlapperObstacles defines spawning and scrolling of ground obstacles.
type FlapperObstacles struct {
	SpawnX    float64  `yaml:"spawn_x"`
	PassLine  float64  `yaml:"pass_line"`  // Trailing edge left of this scores
	PruneLine float64  `yaml:"prune_line"` // Trailing edge at or left of this is removed
	MinWidth  float64  `yaml:"min_width"`
	MaxWidth  float64  `yaml:"max_width"`
	MinHeight float64  `yaml:"min_height"`
	MaxHeight float64  `yaml:"max_height"`
	MinGap    float64  `yaml:"min_gap"`
	BaseGap   float64  `yaml:"base_gap"`
	GapJitter float64  `yaml:"gap_jitter"` // Random extra gap in [0, jitter)
	Kinds     []string `yaml:"kinds"`
}

// FlapperTiming defines the timer-driven parts of a run.
type FlapperTiming struct {
	CountdownFrom int           `yaml:"countdown_from"`
	CountdownTick time.Duration `yaml:"countdown_tick"`
	GoDelay       time.Duration `yaml:"go_delay"`
	WarmupDelay   time.Duration `yaml:"warmup_delay"`
	JumpCooldown  time.Duration `yaml:"jump_cooldown"`
	HintDuration  time.Duration `yaml:"hint_duration"`
}

// FlapperDisplay defines presentation thresholds.
type FlapperDisplay struct {
	NightScore int `yaml:"night_score"` // Score at which the sky turns to night
}

// FlapperAudio defines cue volumes. Volumes are linear in [0, 1].
type FlapperAudio struct {
	Enabled       bool    `yaml:"enabled"`
	SampleRate    int     `yaml:"sample_rate"`
	MasterVolume  float64 `yaml:"master_volume"`
	PointVolume   float64 `yaml:"point_volume"`
	DeathVolume   float64 `yaml:"death_volume"`
	AmbientVolume float64 `yaml:"ambient_volume"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = base speed, 1.0 = max speed from the start
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases with score.
type ProgressionConfig struct {
	Type           string `yaml:"type"`             // "score" or "none"
	SpeedStepEvery int    `yaml:"speed_step_every"` // Points per speed step
	GapStepEvery   int    `yaml:"gap_step_every"`   // Points per gap step
}

// ScalingConfig defines the magnitude of each difficulty step.
type ScalingConfig struct {
	SpeedStep float64 `yaml:"speed_step"`
	MaxSpeed  float64 `yaml:"max_speed"`
	GapStep   float64 `yaml:"gap_step"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Empty input yields ("", nil).
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *FlapperConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Validate reports the first inconsistency that would break the simulation.
func (c FlapperConfig) Validate() error {
	var errs []error
	p := c.Physics
	if p.GroundLine <= p.CeilingLine {
		errs = append(errs, fmt.Errorf("ground_line %.2f must be below ceiling_line %.2f", p.GroundLine, p.CeilingLine))
	}
	if p.MaxUpSpeed <= 0 || p.MaxFallSpeed <= 0 {
		errs = append(errs, errors.New("max_up_speed and max_fall_speed must be positive"))
	}
	if c.Player.Height <= 0 || c.Player.Height > p.GroundLine-p.CeilingLine {
		errs = append(errs, fmt.Errorf("player height %.2f does not fit between ceiling and ground", c.Player.Height))
	}
	o := c.Obstacles
	if o.MinWidth <= 0 || o.MaxWidth < o.MinWidth {
		errs = append(errs, errors.New("obstacle width range is empty"))
	}
	if o.MinHeight <= 0 || o.MaxHeight < o.MinHeight {
		errs = append(errs, errors.New("obstacle height range is empty"))
	}
	if o.MinGap <= 0 {
		errs = append(errs, errors.New("min_gap must be positive"))
	}
	if len(o.Kinds) == 0 {
		errs = append(errs, errors.New("at least one obstacle kind is required"))
	}
	if c.Timing.CountdownFrom < 0 {
		errs = append(errs, errors.New("countdown_from must not be negative"))
	}
	if c.Display.NightScore < 0 {
		errs = append(errs, errors.New("night_score must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flapper config: %w", errors.Join(errs...))
	}
	return nil
}
