// Package game implements the runner simulation: physics, obstacle
// generation, collision detection and the phase state machine that ties
// them together. It draws nothing and plays nothing; presentation goes
// through the Presenter and CuePlayer interfaces.
package game

import (
	"time"

	"github.com/vovakirdan/flapper/internal/clock"
	"github.com/vovakirdan/flapper/internal/core"
)

// Phase is the state machine position.
type Phase int

const (
	PhaseIdle      Phase = iota // Start screen
	PhaseCountdown              // 3-2-1-Go, physics frozen
	PhasePlaying                // Frame loop active
	PhasePaused                 // Frame loop suspended
	PhaseGameOver               // Terminal until start or restart
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Entity is the player-controlled flyer. Y is the top of its sprite.
type Entity struct {
	Y        float64
	Velocity float64 // Negative = up
	Grounded bool
}

// Kind is the cosmetic variant of an obstacle. It never affects physics.
type Kind int

const (
	KindStone Kind = iota
	KindStone2
	KindCactus
	KindWood
)

var kindNames = [...]string{
	KindStone:  "stone",
	KindStone2: "stone2",
	KindCactus: "cactus",
	KindWood:   "wood",
}

// ParseKind maps a config name to a Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// String returns the config name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Obstacle is a ground hazard scrolling left.
type Obstacle struct {
	X      float64 // Left edge
	Y      float64 // Top edge, always ground line minus height
	Width  float64
	Height float64
	Kind   Kind
	Passed bool // Set once when the trailing edge crosses the pass line
}

// Right returns the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Box returns the obstacle hitbox, which is its full sprite bounds.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Width, o.Height)
}

// timers holds the cancellation handles of every pending one-shot the
// machine owns. A zero handle means nothing is scheduled.
type timers struct {
	countdown clock.Handle
	goDelay   clock.Handle
	warmup    clock.Handle
	cooldown  clock.Handle
	hint      clock.Handle
}

// State is the single mutable aggregate of a session. Only the Machine
// mutates it; presenters read it.
type State struct {
	Phase     Phase
	Entity    Entity
	Obstacles []Obstacle // Ordered by spawn time
	Score     int
	HighScore int // Persisted, survives resets

	Gravity   float64 // Current gravity, warm-up then nominal
	Speed     float64 // Current scroll speed, derived from score each frame
	Countdown int     // Remaining countdown ticks, 0 shows "Go!"
	NextGap   float64 // Travel of the last obstacle that triggers the next spawn
	CanJump   bool    // False while the jump cooldown runs
	ShowHint  bool    // Controls hint visible at the start of a run

	RunID  string        // Identifies the current run in the score history
	Frames int           // Frames simulated in the current run
	Played time.Duration // Virtual time spent in PhasePlaying

	timers     timers
	warmupLeft time.Duration // Remaining warm-up when a pause interrupted it
}

// newState builds the aggregate at process start.
func newState(highScore int, groundLine, height float64) *State {
	s := &State{HighScore: highScore}
	s.reset(groundLine, height)
	return s
}

// reset clears every transient field. HighScore is kept.
func (s *State) reset(groundLine, height float64) {
	s.Phase = PhaseIdle
	s.Entity = Entity{Y: groundLine - height, Grounded: true}
	s.Obstacles = s.Obstacles[:0]
	s.Score = 0
	s.Gravity = 0
	s.Speed = 0
	s.Countdown = 0
	s.NextGap = 0
	s.CanJump = true
	s.ShowHint = false
	s.RunID = ""
	s.Frames = 0
	s.Played = 0
	s.timers = timers{}
	s.warmupLeft = 0
}

// NightMode reports whether the backdrop should switch to night.
func (s *State) NightMode(threshold int) bool {
	return threshold > 0 && s.Score >= threshold
}
