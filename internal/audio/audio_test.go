package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/game"
)

const testRate = beep.SampleRate(44100)

// drain pulls every sample of a finite streamer and returns the count.
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer did not end")
	return 0
}

func TestOscillatorLength(t *testing.T) {
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, testRate)
		assert.Equal(t, testRate.N(100*time.Millisecond), drain(t, osc), "wave %d", wave)
		assert.NoError(t, osc.Err())
	}
}

func TestOscillatorRange(t *testing.T) {
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(220, 50*time.Millisecond, wave, testRate)
		buf := make([][2]float64, 256)
		n, ok := osc.Stream(buf)
		require.True(t, ok)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("wave %d sample %d out of range: %f", wave, i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("wave %d sample %d is not mono", wave, i)
			}
		}
	}
}

func TestEnvelopeStartsAndEndsQuiet(t *testing.T) {
	const d = 20 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, testRate)
	env := NewEnvelope(osc, d, 5*time.Millisecond, 5*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.Zero(t, buf[0][0], "attack starts at zero")
	assert.InDelta(t, 1.0, buf[n/2][0], 1e-9, "sustain is full scale")
	assert.Less(t, math.Abs(buf[n-1][0]), 0.01, "release fades out")
}

func TestCueSoundsAreFinite(t *testing.T) {
	assert.Positive(t, drain(t, pointSound(testRate, 0.3)))
	assert.Positive(t, drain(t, deathSound(testRate, 0.4)))
}

func TestSilentVolume(t *testing.T) {
	s := newVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, testRate), 0)
	buf := make([][2]float64, 64)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		assert.Zero(t, buf[i][0])
	}
}

func TestAmbientNeverEnds(t *testing.T) {
	s := newAmbient(testRate, 0.2)
	buf := make([][2]float64, 4096)
	for i := 0; i < 50; i++ {
		n, ok := s.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
}

func newReadyPlayer(enabled bool) *Player {
	cfg := config.DefaultFlapperConfig().Audio
	cfg.Enabled = enabled
	p := New(cfg, nil)
	p.ready = true
	return p
}

func TestPlayerMutedWithoutDevice(t *testing.T) {
	p := New(config.DefaultFlapperConfig().Audio, nil)
	require.False(t, p.Ready())

	for _, c := range []game.Cue{game.CueAmbientStart, game.CuePoint, game.CueDeath, game.CueAmbientPause, game.CueAmbientResume, game.CueAmbientStop} {
		p.Play(c)
	}
	assert.Zero(t, p.mixer.Len())
	assert.Nil(t, p.ambient)
}

func TestPlayerOneShots(t *testing.T) {
	p := newReadyPlayer(true)
	p.Play(game.CuePoint)
	p.Play(game.CueDeath)
	assert.Equal(t, 2, p.mixer.Len())

	p = newReadyPlayer(false)
	p.Play(game.CuePoint)
	assert.Zero(t, p.mixer.Len(), "disabled player adds nothing")
}

func TestPlayerAmbientLifecycle(t *testing.T) {
	p := newReadyPlayer(true)

	p.Play(game.CueAmbientStart)
	require.NotNil(t, p.ambient)
	assert.False(t, p.ambient.Paused)

	p.Play(game.CueAmbientPause)
	assert.True(t, p.ambient.Paused)

	p.Play(game.CueAmbientResume)
	assert.False(t, p.ambient.Paused)

	ctrl := p.ambient
	p.Play(game.CueAmbientStop)
	assert.Nil(t, p.ambient)
	assert.Nil(t, ctrl.Streamer)
}

func TestPlayerToggleFollowsRun(t *testing.T) {
	p := newReadyPlayer(true)
	p.Play(game.CueAmbientStart)

	p.SetEnabled(false)
	assert.False(t, p.Enabled())
	assert.True(t, p.ambient.Paused)

	p.Play(game.CueAmbientPause)
	p.SetEnabled(true)
	assert.True(t, p.ambient.Paused, "paused run stays quiet when sound is re-enabled")

	p.Play(game.CueAmbientResume)
	assert.False(t, p.ambient.Paused)
}
