package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flapper/internal/clock"
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Machine owns the session state and every transition on it. All methods
// must be called from one goroutine; the platform serializes input and
// ticks through its event loop.
//
// Commands that are not valid in the current phase are ignored.
type Machine struct {
	cfg    config.FlapperConfig
	state  *State
	queue  *clock.Queue
	driver *clock.Driver
	gen    *Generator

	presenter Presenter
	cues      CuePlayer
	scores    HighScoreStore
	recorder  ScoreRecorder
	logger    *log.Logger
	seed      int64
}

// Option configures a Machine.
type Option func(*Machine)

// WithPresenter sets the renderer invoked after every tick and transition.
func WithPresenter(p Presenter) Option {
	return func(m *Machine) {
		if p != nil {
			m.presenter = p
		}
	}
}

// WithCues sets the sound cue player.
func WithCues(c CuePlayer) Option {
	return func(m *Machine) {
		if c != nil {
			m.cues = c
		}
	}
}

// WithHighScores sets the persisted high score store.
func WithHighScores(s HighScoreStore) Option {
	return func(m *Machine) {
		m.scores = s
	}
}

// WithRecorder sets where finished runs are recorded.
func WithRecorder(r ScoreRecorder) Option {
	return func(m *Machine) {
		m.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSeed sets the obstacle generator seed.
func WithSeed(seed int64) Option {
	return func(m *Machine) {
		m.seed = seed
	}
}

// NewMachine builds a machine in PhaseIdle. The high score is read from
// the store once, here.
func NewMachine(cfg config.FlapperConfig, opts ...Option) *Machine {
	m := &Machine{
		cfg:       cfg,
		queue:     clock.NewQueue(),
		presenter: nopPresenter{},
		cues:      nopCues{},
		logger:    log.New(io.Discard),
		seed:      1,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.driver = clock.NewDriver(m.frame)
	m.gen = NewGenerator(cfg, config.NewDifficultyManager(cfg.Difficulty), m.seed)

	high := 0
	if m.scores != nil {
		var err error
		high, err = m.scores.LoadHighScore()
		if err != nil {
			m.logger.Warn("could not load high score", "error", err)
			high = 0
		}
	}
	m.state = newState(high, cfg.Physics.GroundLine, cfg.Player.Height)
	return m
}

// State returns the live state. Callers must treat it as read-only.
func (m *Machine) State() *State {
	return m.state
}

// Config returns the configuration the machine runs with.
func (m *Machine) Config() config.FlapperConfig {
	return m.cfg
}

// Running reports whether the frame loop is active.
func (m *Machine) Running() bool {
	return m.driver.Running()
}

// Now returns the virtual time of the machine clock.
func (m *Machine) Now() time.Duration {
	return m.queue.Now()
}

// Handle dispatches an input action to its command.
func (m *Machine) Handle(a core.Action) {
	switch a {
	case core.ActionJump:
		m.Jump()
	case core.ActionPause:
		m.TogglePause()
	case core.ActionRestart:
		m.Restart()
	case core.ActionStart:
		m.StartGame()
	}
}

// Tick advances the machine clock by dt, firing due timers, then runs one
// frame if the loop is active.
func (m *Machine) Tick(dt time.Duration) {
	if m.state.Phase == PhasePlaying {
		m.state.Played += dt
	}
	m.queue.Advance(dt)
	m.driver.Frame()
	m.presenter.Render(m.state)
}

// StartGame resets the run and enters the countdown. Valid from Idle and
// GameOver.
func (m *Machine) StartGame() {
	s := m.state
	if s.Phase != PhaseIdle && s.Phase != PhaseGameOver {
		return
	}

	m.teardown()
	s.reset(m.cfg.Physics.GroundLine, m.cfg.Player.Height)
	s.RunID = uuid.NewString()
	s.Countdown = m.cfg.Timing.CountdownFrom
	m.setPhase(PhaseCountdown)
	m.cues.Play(CueAmbientStart)
	m.logger.Info("run started", "run", s.RunID)

	if s.Countdown > 0 {
		s.timers.countdown = m.queue.After(m.cfg.Timing.CountdownTick, m.countdownTick)
	} else {
		s.timers.goDelay = m.queue.After(m.cfg.Timing.GoDelay, m.enterPlaying)
	}
	m.presenter.Render(s)
}

// SkipCountdown enters Playing immediately. Valid only during the countdown.
func (m *Machine) SkipCountdown() {
	s := m.state
	if s.Phase != PhaseCountdown {
		return
	}
	m.queue.Cancel(s.timers.countdown)
	m.queue.Cancel(s.timers.goDelay)
	s.timers.countdown, s.timers.goDelay = 0, 0
	s.Countdown = 0
	m.enterPlaying()
}

// TogglePause switches between Playing and Paused. A pending gravity
// ramp is suspended with the loop and re-armed with its remaining time.
func (m *Machine) TogglePause() {
	s := m.state
	switch s.Phase {
	case PhasePlaying:
		m.driver.Stop()
		if left, ok := m.queue.Remaining(s.timers.warmup); ok {
			s.warmupLeft = left
			m.queue.Cancel(s.timers.warmup)
			s.timers.warmup = 0
		}
		m.setPhase(PhasePaused)
		m.cues.Play(CueAmbientPause)
	case PhasePaused:
		if s.warmupLeft > 0 {
			s.timers.warmup = m.queue.After(s.warmupLeft, m.rampGravity)
			s.warmupLeft = 0
		}
		m.setPhase(PhasePlaying)
		m.driver.Start()
		m.cues.Play(CueAmbientResume)
	default:
		return
	}
	m.presenter.Render(s)
}

// Jump applies the jump impulse. Valid only in Playing and outside the
// cooldown; dropped jumps are not queued. Reports whether it was accepted.
func (m *Machine) Jump() bool {
	s := m.state
	if s.Phase != PhasePlaying || !s.CanJump {
		return false
	}

	s.Entity = Impulse(s.Entity, m.cfg.Physics)
	if m.cfg.Timing.JumpCooldown > 0 {
		s.CanJump = false
		s.timers.cooldown = m.queue.After(m.cfg.Timing.JumpCooldown, func() {
			s.timers.cooldown = 0
			s.CanJump = true
		})
	}
	return true
}

// Restart abandons the run from any phase and returns to Idle.
func (m *Machine) Restart() {
	s := m.state
	m.teardown()
	if s.Phase == PhaseCountdown || s.Phase == PhasePlaying || s.Phase == PhasePaused {
		m.cues.Play(CueAmbientStop)
	}
	s.reset(m.cfg.Physics.GroundLine, m.cfg.Player.Height)
	m.logger.Debug("phase", "to", s.Phase)
	m.presenter.Render(s)
}

// frame is the driver callback.
func (m *Machine) frame() {
	ev := Step(m.state, m.cfg, m.gen)
	for i := 0; i < ev.Scored; i++ {
		m.cues.Play(CuePoint)
	}
	if ev.Collided {
		m.gameOver()
	}
}

// gameOver stops the run and persists the score.
func (m *Machine) gameOver() {
	s := m.state
	m.teardown()
	s.ShowHint = false
	m.setPhase(PhaseGameOver)
	m.cues.Play(CueAmbientStop)
	m.cues.Play(CueDeath)
	m.logger.Info("run ended", "run", s.RunID, "score", s.Score, "frames", s.Frames)

	if s.Score > s.HighScore {
		s.HighScore = s.Score
		if m.scores != nil {
			if err := m.scores.SaveHighScore(s.HighScore); err != nil {
				m.logger.Warn("could not save high score", "error", err)
			}
		}
	}
	if m.recorder != nil {
		if err := m.recorder.RecordScore(s.RunID, s.Score); err != nil {
			m.logger.Warn("could not record score", "error", err)
		}
	}
}

func (m *Machine) countdownTick() {
	s := m.state
	s.timers.countdown = 0
	s.Countdown--
	if s.Countdown > 0 {
		s.timers.countdown = m.queue.After(m.cfg.Timing.CountdownTick, m.countdownTick)
		return
	}
	s.timers.goDelay = m.queue.After(m.cfg.Timing.GoDelay, m.enterPlaying)
}

// enterPlaying starts the frame loop under warm-up gravity.
func (m *Machine) enterPlaying() {
	s := m.state
	s.timers.goDelay = 0
	if s.Phase != PhaseCountdown {
		return
	}

	s.Speed = m.gen.Speed(s.Score)
	s.ShowHint = m.cfg.Timing.HintDuration > 0
	if s.ShowHint {
		s.timers.hint = m.queue.After(m.cfg.Timing.HintDuration, func() {
			s.timers.hint = 0
			s.ShowHint = false
		})
	}

	if m.cfg.Timing.WarmupDelay > 0 {
		s.Gravity = m.cfg.Physics.WarmupGravity
		s.timers.warmup = m.queue.After(m.cfg.Timing.WarmupDelay, m.rampGravity)
	} else {
		s.Gravity = m.cfg.Physics.Gravity
	}

	m.setPhase(PhasePlaying)
	m.driver.Start()
}

// rampGravity raises gravity to nominal unless the run is no longer playing.
func (m *Machine) rampGravity() {
	s := m.state
	s.timers.warmup = 0
	if s.Phase != PhasePlaying {
		return
	}
	s.Gravity = m.cfg.Physics.Gravity
	m.logger.Debug("gravity ramped", "gravity", s.Gravity)
}

// teardown stops the loop and cancels every pending timer of the run.
func (m *Machine) teardown() {
	m.driver.Stop()
	t := &m.state.timers
	for _, h := range []clock.Handle{t.countdown, t.goDelay, t.warmup, t.cooldown, t.hint} {
		m.queue.Cancel(h)
	}
	*t = timers{}
	m.state.warmupLeft = 0
}

func (m *Machine) setPhase(p Phase) {
	m.logger.Debug("phase", "from", m.state.Phase, "to", p)
	m.state.Phase = p
}
