// Package audio plays the game's sound cues. Every sound is synthesized,
// so there are no media files that could fail to load.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a tone of the given frequency and duration.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release over d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero or negative volume is silence,
// since effects.Volume works in log space.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// pointSound is a rising two-note chime.
func pointSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const (
		first  = 60 * time.Millisecond
		second = 110 * time.Millisecond
	)
	n1 := NewEnvelope(NewOscillator(880, first, WaveSine, rate), first, 5*time.Millisecond, 20*time.Millisecond, rate)
	n2 := NewEnvelope(NewOscillator(1320, second, WaveSine, rate), second, 5*time.Millisecond, 80*time.Millisecond, rate)
	return newVolume(beep.Seq(n1, n2), vol)
}

// deathSound is a low buzz over a burst of noise.
func deathSound(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 450 * time.Millisecond
	buzz := NewEnvelope(NewOscillator(90, d, WaveSaw, rate), d, 10*time.Millisecond, 300*time.Millisecond, rate)
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 2*time.Millisecond, 400*time.Millisecond, rate)
	return newVolume(beep.Mix(newVolume(buzz, 0.7), newVolume(noise, 0.3)), vol)
}

// ambientNotes is the bass arpeggio of the background loop, in Hz.
var ambientNotes = []float64{110.00, 138.59, 164.81, 138.59}

// ambientGenerator loops the arpeggio forever.
type ambientGenerator struct {
	rate    beep.SampleRate
	pos     int
	noteLen int
}

// newAmbient returns an endless background loop.
func newAmbient(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(&ambientGenerator{rate: rate, noteLen: rate.N(400 * time.Millisecond)}, vol)
}

func (g *ambientGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := ambientNotes[(g.pos/g.noteLen)%len(ambientNotes)]
		inNote := g.pos % g.noteLen
		t := float64(inNote) / float64(g.rate)

		// Plucked decay per note, with a quiet fifth on top
		env := math.Exp(-t * 5)
		val := env * (0.6*math.Sin(2*math.Pi*note*t) + 0.2*math.Sin(2*math.Pi*note*1.5*t))

		samples[i][0] = val
		samples[i][1] = val
		g.pos++
	}
	return len(samples), true
}

func (g *ambientGenerator) Err() error { return nil }
