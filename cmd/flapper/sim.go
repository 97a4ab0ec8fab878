package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/clock"
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/game"
	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	flagFrames   int
	flagRealtime bool
	flagRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the engine headless with an autopilot",
	Long: `Run the game engine without a terminal UI. A simple autopilot jumps
over obstacles and restarts after every crash. Useful for tuning configs
and difficulty presets.

By default the simulation runs as fast as possible on a virtual clock;
--realtime paces it at --fps.

Examples:
  flapper sim --frames 36000 --seed 42
  flapper sim --difficulty hard --config ./my-flapper.yaml
  flapper sim --realtime --frames 600`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 3600, "Number of ticks to simulate")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks with the wall clock")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Record finished runs in the scores database")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// simReport summarizes finished runs.
type simReport struct {
	Ticks int
	Runs  int
	Best  int
	Total int
}

func (r simReport) mean() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Total) / float64(r.Runs)
}

// autopilot decides when to jump from the visible state only.
type autopilot struct {
	player    config.FlapperPlayer
	lookahead float64 // Horizontal distance at which an obstacle is considered
	margin    float64 // Clearance wanted above an obstacle top
}

func newAutopilot(cfg config.FlapperConfig) autopilot {
	return autopilot{player: cfg.Player, lookahead: 12, margin: 2}
}

// shouldJump reports whether the nearest obstacle ahead needs clearing.
// It never jumps while rising, so it cannot fly into the death line.
func (a autopilot) shouldJump(s *game.State) bool {
	if s.Entity.Velocity < 0 {
		return false
	}
	bottom := s.Entity.Y + a.player.Height
	for _, o := range s.Obstacles {
		if o.Right() < a.player.X {
			continue
		}
		if o.X-(a.player.X+a.player.Width) > a.lookahead {
			return false
		}
		return bottom > o.Y-a.margin
	}
	return false
}

// simulation steps a machine with the autopilot and restarts after each run.
type simulation struct {
	machine *game.Machine
	pilot   autopilot
	dt      time.Duration
	limit   int
	report  simReport
}

// step advances one tick and reports whether more ticks are wanted.
func (s *simulation) step(dt time.Duration) bool {
	m := s.machine
	state := m.State()

	if state.Phase == game.PhasePlaying && s.pilot.shouldJump(state) {
		m.Jump()
	}
	m.Tick(dt)
	s.report.Ticks++

	if state.Phase == game.PhaseGameOver {
		s.report.Runs++
		s.report.Total += state.Score
		s.report.Best = max(s.report.Best, state.Score)
		m.StartGame()
		m.SkipCountdown()
	}
	return s.report.Ticks < s.limit
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&cfg, preset)

	logger, closeLog := openLogger()
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := []game.Option{game.WithSeed(seed), game.WithLogger(logger)}

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		opts = append(opts, game.WithHighScores(store), game.WithRecorder(store))
	}

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	sim := &simulation{
		machine: game.NewMachine(cfg, opts...),
		pilot:   newAutopilot(cfg),
		dt:      time.Second / time.Duration(fps),
		limit:   flagFrames,
	}
	sim.machine.StartGame()
	sim.machine.SkipCountdown()

	start := time.Now()
	if flagRealtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = clock.Run(ctx, fps, sim.step)
		stop()
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	} else {
		for sim.step(sim.dt) {
		}
	}

	r := sim.report
	state := sim.machine.State()
	fmt.Printf("Seed: %d\n", seed)
	fmt.Printf("Ticks: %d (%s virtual, %s wall)\n", r.Ticks, sim.machine.Now().Round(time.Millisecond), time.Since(start).Round(time.Millisecond))
	fmt.Printf("Runs finished: %d  |  Best: %d  |  Average: %.1f\n", r.Runs, r.Best, r.mean())
	fmt.Printf("Current run: score %d after %d frames\n", state.Score, state.Frames)
	logger.Info("simulation finished", "seed", seed, "ticks", r.Ticks, "runs", r.Runs, "best", r.Best)
}
