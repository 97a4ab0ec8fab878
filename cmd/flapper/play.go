package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/audio"
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/game"
	"github.com/vovakirdan/flapper/internal/platform/tui"
	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play flapper",
	Long: `Start playing. Without --difficulty a menu lets you pick one.

Controls:
  Space/Up/W/Click - Jump (start on the title and game over screens)
  Enter            - Start
  P/Esc            - Pause
  R                - Back to the title screen
  M                - Sound on/off
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  flapper play
  flapper play --difficulty hard
  flapper play --config ./my-flapper.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadGameConfig loads the config named by --config. An explicit path that
// cannot be read is an error, everything else falls back to defaults.
func loadGameConfig() (config.FlapperConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FlapperConfig{}, "", err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.FlapperConfig{}, "", err
	}
	return cfg, preset, nil
}

func play() error {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog := openLogger()
	defer closeLog()

	// Continue without storage if the database is unavailable
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	player := openAudio(cfg.Audio, store, logger)
	defer player.Close()

	s := session{cfg: cfg, store: store, player: player, logger: logger}
	if preset != "" {
		return s.run(preset)
	}
	return s.menuLoop()
}

// openAudio starts the sound output with the saved preference.
func openAudio(cfg config.FlapperAudio, store *storage.Store, logger *log.Logger) *audio.Player {
	player := audio.Open(cfg, logger)
	if store == nil {
		return player
	}
	on, err := store.AudioEnabled(cfg.Enabled)
	if err != nil {
		logger.Warn("could not read audio preference", "error", err)
		return player
	}
	player.SetEnabled(on)
	return player
}

// session holds what outlives a single game screen.
type session struct {
	cfg    config.FlapperConfig
	store  *storage.Store
	player *audio.Player
	logger *log.Logger
}

// run plays one game screen at the given preset until the user quits it.
func (s session) run(preset config.DifficultyPreset) error {
	cfg := s.cfg
	config.ApplyPreset(&cfg, preset)
	s.logger.Info("session started", "difficulty", preset)

	opts := tui.Options{
		Config:  cfg,
		Runtime: runtimeConfig(),
		Sound:   s.player,
		Logger:  s.logger,
	}
	if s.store != nil {
		opts.Store = s.store
	}

	err := tui.Run(opts)
	// Quitting mid-run must not leave the ambient loop playing
	s.player.Play(game.CueAmbientStop)
	return err
}

// menuLoop alternates between the title menu, the scoreboard and the game
// until the user quits.
func (s session) menuLoop() error {
	cfg := runtimeConfig()
	for {
		best := 0
		if s.store != nil {
			if hs, err := s.store.LoadHighScore(); err == nil {
				best = hs
			}
		}

		result, err := tui.RunMenu(best, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			var src tui.ScoreSource
			if s.store != nil {
				src = s.store
			}
			goBack, err := tui.RunScoreboard(src, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			if err := s.run(result.Preset); err != nil {
				return err
			}
		}
	}
}
