package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/game"
)

// Sound is the runtime audio switch.
type Sound interface {
	game.CuePlayer
	Enabled() bool
	SetEnabled(on bool)
}

// Store is the persistence the game screen uses.
type Store interface {
	game.HighScoreStore
	game.ScoreRecorder
	SetAudioEnabled(on bool) error
}

// Options configures a game session.
type Options struct {
	Config  config.FlapperConfig
	Runtime core.RuntimeConfig
	Store   Store // Optional
	Sound   Sound // Optional
	Logger  *log.Logger
}

// Model is the Bubble Tea model for a flapper session.
type Model struct {
	machine   *game.Machine
	presenter *ScreenPresenter
	screen    *core.Screen
	store     Store
	sound     Sound
	logger    *log.Logger
	keys      KeyMap
	help      help.Model
	tickRate  int
	lastTick  time.Time
	quitting  bool
}

// NewModel creates the model and its game machine.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	screen := core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH))
	presenter := NewScreenPresenter(screen, opts.Config)

	machineOpts := []game.Option{
		game.WithPresenter(presenter),
		game.WithLogger(logger),
		game.WithSeed(cfg.Seed),
	}
	if opts.Store != nil {
		machineOpts = append(machineOpts, game.WithHighScores(opts.Store), game.WithRecorder(opts.Store))
	}
	if opts.Sound != nil {
		machineOpts = append(machineOpts, game.WithCues(opts.Sound))
		presenter.SetAudio(opts.Sound.Enabled())
	}
	machine := game.NewMachine(opts.Config, machineOpts...)
	presenter.Render(machine.State())

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		machine:   machine,
		presenter: presenter,
		screen:    screen,
		store:     opts.Store,
		sound:     opts.Sound,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      h,
		tickRate:  cfg.TickRate,
	}
}

// playHeight leaves the last terminal row for the help line.
func playHeight(h int) int {
	return core.Max(h-1, 0)
}

// Machine exposes the game machine.
func (m Model) Machine() *game.Machine {
	return m.machine
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
		return m.dispatch(m.keys.MapKey(msg, m.machine.State().Phase))

	case tea.MouseMsg:
		return m.dispatch(MapMouse(msg, m.machine.State().Phase))

	case tea.BlurMsg:
		if m.machine.State().Phase == game.PhasePlaying {
			m.machine.TogglePause()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		m.presenter.Render(m.machine.State())
		return m, nil

	case TickMsg:
		now := time.Time(msg)
		m.machine.Tick(frameDelta(m.lastTick, now, m.tickRate))
		m.lastTick = now
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// dispatch runs an input action.
func (m Model) dispatch(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionToggleAudio:
		m.toggleAudio()
	default:
		m.machine.Handle(action)
	}
	return m, nil
}

// toggleAudio flips the sound switch and remembers the choice.
func (m Model) toggleAudio() {
	if m.sound == nil {
		return
	}
	on := !m.sound.Enabled()
	m.sound.SetEnabled(on)
	m.presenter.SetAudio(on)
	m.presenter.Render(m.machine.State())

	if m.store != nil {
		if err := m.store.SetAudioEnabled(on); err != nil {
			m.logger.Warn("could not save audio preference", "error", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".flapper", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("flapper_%s.txt", time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.screen, m.presenter.Night()) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for one session.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	return err
}
