package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/game"
)

// Player turns game cues into sound. If the output device cannot be
// opened it stays muted for the rest of the process; the game never
// notices.
type Player struct {
	mu      sync.Mutex
	cfg     config.FlapperAudio
	rate    beep.SampleRate
	mixer   *beep.Mixer
	ambient *beep.Ctrl
	logger  *log.Logger

	ready         bool // Speaker initialized and playing the mixer
	enabled       bool // User preference
	ambientActive bool // A run wants the ambient loop audible
}

// New creates a player without touching the audio device.
func New(cfg config.FlapperAudio, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	return &Player{
		cfg:     cfg,
		rate:    rate,
		mixer:   &beep.Mixer{},
		logger:  logger,
		enabled: cfg.Enabled,
	}
}

// Open creates a player and initializes the speaker. A failure is logged
// and leaves the player muted.
func Open(cfg config.FlapperAudio, logger *log.Logger) *Player {
	p := New(cfg, logger)
	if err := p.Init(); err != nil {
		p.logger.Warn("audio unavailable, continuing muted", "error", err)
	}
	return p
}

// Init opens the output device with a 100ms buffer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Close silences everything and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ambient = nil
	p.ready = false
}

// Enabled reports the user preference.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Ready reports whether the output device is open.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// SetEnabled switches sound on or off. The ambient loop follows the
// switch if a run is in progress.
func (p *Player) SetEnabled(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.enabled = on
	p.locked(func() {
		if p.ambient != nil {
			p.ambient.Paused = !(on && p.ambientActive)
		}
	})
}

// Play implements game.CuePlayer.
func (p *Player) Play(c game.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch c {
	case game.CuePoint:
		p.oneShot(pointSound(p.rate, p.cfg.PointVolume*p.cfg.MasterVolume))
	case game.CueDeath:
		p.oneShot(deathSound(p.rate, p.cfg.DeathVolume*p.cfg.MasterVolume))
	case game.CueAmbientStart:
		p.ambientActive = true
		p.startAmbient()
	case game.CueAmbientPause:
		p.ambientActive = false
		p.setAmbientPaused(true)
	case game.CueAmbientResume:
		p.ambientActive = true
		p.setAmbientPaused(!p.enabled)
	case game.CueAmbientStop:
		p.ambientActive = false
		p.stopAmbient()
	}
}

func (p *Player) oneShot(s beep.Streamer) {
	if !p.ready || !p.enabled {
		return
	}
	p.locked(func() { p.mixer.Add(s) })
}

func (p *Player) startAmbient() {
	p.stopAmbient()
	if !p.ready {
		return
	}
	ctrl := &beep.Ctrl{
		Streamer: newAmbient(p.rate, p.cfg.AmbientVolume*p.cfg.MasterVolume),
		Paused:   !p.enabled,
	}
	p.locked(func() { p.mixer.Add(ctrl) })
	p.ambient = ctrl
}

func (p *Player) setAmbientPaused(paused bool) {
	p.locked(func() {
		if p.ambient != nil {
			p.ambient.Paused = paused
		}
	})
}

// stopAmbient detaches the loop; a Ctrl without a streamer drains out of
// the mixer on its next pull.
func (p *Player) stopAmbient() {
	p.locked(func() {
		if p.ambient != nil {
			p.ambient.Streamer = nil
		}
	})
	p.ambient = nil
}

// locked runs fn while the speaker is not pulling samples.
func (p *Player) locked(fn func()) {
	if !p.ready {
		fn()
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}
