package game

import (
	"math/rand"

	"github.com/vovakirdan/flapper/internal/config"
)

// Generator moves, scores, prunes and spawns obstacles.
//
// Gap policy: the gap widens with score. Each spawn draws the next gap as
// GapFloor(score) + rand*GapJitter, where GapFloor is the base gap plus one
// gap step per GapStepEvery points, never below MinGap. The growing scroll
// speed keeps later runs harder despite the wider spacing.
type Generator struct {
	cfg        config.FlapperObstacles
	groundLine float64
	baseSpeed  float64
	kinds      []Kind
	difficulty *config.DifficultyManager
	rng        *rand.Rand
}

// NewGenerator creates a generator seeded for reproducible runs.
func NewGenerator(cfg config.FlapperConfig, diff *config.DifficultyManager, seed int64) *Generator {
	kinds := make([]Kind, 0, len(cfg.Obstacles.Kinds))
	for _, name := range cfg.Obstacles.Kinds {
		if k, ok := ParseKind(name); ok {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		kinds = []Kind{KindStone, KindStone2, KindCactus, KindWood}
	}

	return &Generator{
		cfg:        cfg.Obstacles,
		groundLine: cfg.Physics.GroundLine,
		baseSpeed:  cfg.Physics.BaseSpeed,
		kinds:      kinds,
		difficulty: diff,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Reseed restarts the random sequence.
func (g *Generator) Reseed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// Speed returns the scroll speed for a score.
func (g *Generator) Speed(score int) float64 {
	return g.difficulty.Speed(g.baseSpeed, score)
}

// Advance recomputes speed from score, moves every obstacle left, flips
// the pass tripwire and prunes obstacles that left the screen.
// Returns how many obstacles were passed this frame.
func (g *Generator) Advance(s *State) int {
	s.Speed = g.Speed(s.Score)

	scored := 0
	for i := range s.Obstacles {
		o := &s.Obstacles[i]
		o.X -= s.Speed

		if !o.Passed && o.Right() < g.cfg.PassLine {
			o.Passed = true
			s.Score++
			scored++
		}
	}

	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if o.Right() > g.cfg.PruneLine {
			kept = append(kept, o)
		}
	}
	s.Obstacles = kept

	return scored
}

// MaybeSpawn adds an obstacle when the set is empty or the most recently
// spawned one has travelled NextGap from the spawn line.
func (g *Generator) MaybeSpawn(s *State) bool {
	if len(s.Obstacles) > 0 {
		last := s.Obstacles[len(s.Obstacles)-1]
		if g.cfg.SpawnX-last.X < s.NextGap {
			return false
		}
	}
	g.Spawn(s)
	return true
}

// Spawn appends a new obstacle at the spawn line and draws the next gap.
// Size is randomized before insertion since it is also the hitbox.
func (g *Generator) Spawn(s *State) {
	width := g.between(g.cfg.MinWidth, g.cfg.MaxWidth)
	height := g.between(g.cfg.MinHeight, g.cfg.MaxHeight)

	s.Obstacles = append(s.Obstacles, Obstacle{
		X:      g.cfg.SpawnX,
		Y:      g.groundLine - height,
		Width:  width,
		Height: height,
		Kind:   g.kinds[g.rng.Intn(len(g.kinds))],
	})
	s.NextGap = g.NextGap(s.Score)
}

// NextGap draws the spacing target for the next spawn.
func (g *Generator) NextGap(score int) float64 {
	floor := g.difficulty.GapFloor(g.cfg.BaseGap, g.cfg.MinGap, score)
	return floor + g.rng.Float64()*g.cfg.GapJitter
}

// between draws uniformly from [lo, hi].
func (g *Generator) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}
