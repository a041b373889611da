// Package audio plays short synthesized cues for colony events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sweep is a sine oscillator whose pitch glides through a list of
// frequencies over its duration.
type sweep struct {
	freqs    []float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

// NewSweep creates a sine voice gliding linearly between freqs.
func NewSweep(freqs []float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		freqs:    freqs,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (s *sweep) freqAt(t float64) float64 {
	if len(s.freqs) == 1 {
		return s.freqs[0]
	}
	pos := t * float64(len(s.freqs)-1)
	i := int(pos)
	if i >= len(s.freqs)-1 {
		return s.freqs[len(s.freqs)-1]
	}
	frac := pos - float64(i)
	return s.freqs[i] + (s.freqs[i+1]-s.freqs[i])*frac
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		freq := s.freqAt(float64(s.position) / float64(s.duration))
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with linear attack and release ramps.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
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
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Meow is a rising then falling glide.
func Meow(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 380 * time.Millisecond
	voice := NewSweep([]float64{520, 760, 900, 610}, d, rate)
	return newVolume(NewEnvelope(voice, d, 40*time.Millisecond, 160*time.Millisecond, rate), vol)
}

// Thump is a short low drop for a landing cat.
func Thump(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 90 * time.Millisecond
	voice := NewSweep([]float64{140, 60}, d, rate)
	return newVolume(NewEnvelope(voice, d, 5*time.Millisecond, 70*time.Millisecond, rate), vol)
}

// Chirp is two quick notes for a delivered gift.
func Chirp(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 110 * time.Millisecond
	first := NewEnvelope(NewSweep([]float64{1320}, d, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	second := NewEnvelope(NewSweep([]float64{1760}, d, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	return newVolume(beep.Seq(first, second), vol)
}
