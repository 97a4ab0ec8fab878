package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flapper/internal/config"
)

func newTestGenerator(cfg config.FlapperConfig, seed int64) *Generator {
	return NewGenerator(cfg, config.NewDifficultyManager(cfg.Difficulty), seed)
}

func playingState() *State {
	cfg := config.DefaultFlapperConfig()
	s := newState(0, cfg.Physics.GroundLine, cfg.Player.Height)
	s.Phase = PhasePlaying
	s.Gravity = cfg.Physics.Gravity
	return s
}

func TestSpawnWhenEmpty(t *testing.T) {
	cfg := config.DefaultFlapperConfig()
	g := newTestGenerator(cfg, 7)
	s := playingState()

	require.True(t, g.MaybeSpawn(s))
	require.Len(t, s.Obstacles, 1)

	o := s.Obstacles[0]
	assert.Equal(t, cfg.Obstacles.SpawnX, o.X)
	assert.GreaterOrEqual(t, o.Width, cfg.Obstacles.MinWidth)
	assert.LessOrEqual(t, o.Width, cfg.Obstacles.MaxWidth)
	assert.GreaterOrEqual(t, o.Height, cfg.Obstacles.MinHeight)
	assert.LessOrEqual(t, o.Height, cfg.Obstacles.MaxHeight)
	assert.InDelta(t, cfg.Physics.GroundLine, o.Y+o.Height, 1e-9, "obstacle rests on the ground")
	assert.False(t, o.Passed)
	assert.GreaterOrEqual(t, s.NextGap, cfg.Obstacles.MinGap)
	assert.Less(t, s.NextGap, cfg.Obstacles.MinGap+cfg.Obstacles.GapJitter)
}

func TestSpawnWaitsForGap(t *testing.T) {
	cfg := config.DefaultFlapperConfig()
	g := newTestGenerator(cfg, 7)
	s := playingState()
	g.Spawn(s)

	s.NextGap = 90
	s.Obstacles[0].X = cfg.Obstacles.SpawnX - 89.5
	assert.False(t, g.MaybeSpawn(s))
	assert.Len(t, s.Obstacles, 1)

	s.Obstacles[0].X = cfg.Obstacles.SpawnX - 90
	assert.True(t, g.MaybeSpawn(s))
	require.Len(t, s.Obstacles, 2)
	assert.Equal(t, cfg.Obstacles.SpawnX, s.Obstacles[1].X, "newest obstacle is last")
}

func TestPassedFlipsOnce(t *testing.T) {
	cfg := config.DefaultFlapperConfig()
	g := newTestGenerator(cfg, 1)
	s := playingState()
	s.Obstacles = []Obstacle{{X: 21, Y: 71, Width: 10, Height: 14}}

	total := 0
	for i := 0; i < 20; i++ {
		total += g.Advance(s)
	}

	assert.Equal(t, 1, total)
	assert.Equal(t, 1, s.Score)
	require.Len(t, s.Obstacles, 1)
	assert.True(t, s.Obstacles[0].Passed)
}

func TestPruneOffscreen(t *testing.T) {
	cfg := config.DefaultFlapperConfig()
	g := newTestGenerator(cfg, 1)
	s := playingState()
	s.Obstacles = []Obstacle{
		{X: -19.9, Y: 71, Width: 10, Height: 14, Passed: true},
		{X: 60, Y: 71, Width: 10, Height: 14},
	}

	g.Advance(s)

	require.Len(t, s.Obstacles, 1)
	assert.InDelta(t, 59.5, s.Obstacles[0].X, 1e-9)
}

func TestPrunedObstacleNeverCollides(t *testing.T) {
	cfg := config.DefaultFlapperConfig()
	g := newTestGenerator(cfg, 1)
	s := playingState()
	s.Obstacles = []Obstacle{{X: -19.9, Y: 0, Width: 10, Height: 100, Passed: true}}

	g.Advance(s)

	assert.Empty(t, s.Obstacles)
	assert.False(t, Detect(s, cfg))
}

func TestSpeedFollowsScore(t *testing.T) {
	cfg := config.DefaultFlapperConfig()
	g := newTestGenerator(cfg, 1)
	s := playingState()

	s.Score = 25
	g.Advance(s)
	assert.InDelta(t, 0.9, s.Speed, 1e-9)

	s.Score = 0
	g.Advance(s)
	assert.InDelta(t, 0.5, s.Speed, 1e-9, "speed is derived from score, not accumulated")

	s.Score = 1000
	g.Advance(s)
	assert.InDelta(t, cfg.Difficulty.Scaling.MaxSpeed, s.Speed, 1e-9)
}

func TestGapWidensWithScore(t *testing.T) {
	cfg := config.DefaultFlapperConfig()
	cfg.Obstacles.GapJitter = 0
	g := newTestGenerator(cfg, 1)

	assert.InDelta(t, 80.0, g.NextGap(0), 1e-9)
	assert.InDelta(t, 80.0, g.NextGap(30), 1e-9)
	assert.InDelta(t, 90.0, g.NextGap(60), 1e-9)
	assert.GreaterOrEqual(t, g.NextGap(120), g.NextGap(60))
}

func TestGeneratorDeterminism(t *testing.T) {
	cfg := config.DefaultFlapperConfig()
	g1 := newTestGenerator(cfg, 12345)
	g2 := newTestGenerator(cfg, 12345)
	s1, s2 := playingState(), playingState()

	for i := 0; i < 400; i++ {
		g1.Advance(s1)
		g1.MaybeSpawn(s1)
		g2.Advance(s2)
		g2.MaybeSpawn(s2)
	}

	assert.Equal(t, s1.Obstacles, s2.Obstacles)
	assert.Equal(t, s1.Score, s2.Score)
	assert.Equal(t, s1.NextGap, s2.NextGap)
}

func TestUnknownKindsFallBack(t *testing.T) {
	cfg := config.DefaultFlapperConfig()
	cfg.Obstacles.Kinds = []string{"boulder"}
	g := newTestGenerator(cfg, 3)

	assert.Len(t, g.kinds, 4)
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"stone", "stone2", "cactus", "wood"} {
		k, ok := ParseKind(name)
		require.True(t, ok, name)
		assert.Equal(t, name, k.String())
	}

	_, ok := ParseKind("lava")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(42).String())
}
