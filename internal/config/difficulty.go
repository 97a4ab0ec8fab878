package config

import "math"

// DifficultyManager derives scroll speed and spawn gap from the current score.
// Both are recomputed from score on every call and never accumulated.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// steps returns how many whole steps of `every` points the score has reached.
func (d *DifficultyManager) steps(score, every int) int {
	if !d.IsEnabled() || every <= 0 || score <= 0 {
		return 0
	}
	return score / every
}

// Speed returns the obstacle scroll speed for the given score:
// base plus one speed step per SpeedStepEvery points, clamped to MaxSpeed.
// The initial level lifts the starting speed toward MaxSpeed.
func (d *DifficultyManager) Speed(baseSpeed float64, score int) float64 {
	maxSpeed := d.cfg.Scaling.MaxSpeed
	if maxSpeed < baseSpeed {
		maxSpeed = baseSpeed
	}
	start := baseSpeed + d.initialLevel*(maxSpeed-baseSpeed)
	speed := start + float64(d.steps(score, d.cfg.Progression.SpeedStepEvery))*d.cfg.Scaling.SpeedStep
	return math.Min(speed, maxSpeed)
}

// GapFloor returns the deterministic part of the spawn gap: the base gap
// widened by one gap step per GapStepEvery points, never below minGap.
func (d *DifficultyManager) GapFloor(baseGap, minGap float64, score int) float64 {
	gap := baseGap + float64(d.steps(score, d.cfg.Progression.GapStepEvery))*d.cfg.Scaling.GapStep
	return math.Max(minGap, gap)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
