package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sweep is a square wave gliding linearly from one frequency to another.
type sweep struct {
	from, to float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

func newSweep(from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, total: rate.N(d), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		val := -1.0
		if s.phase < 0.5 {
			val = 1.0
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(s.position) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise is white noise of a fixed length.
type noise struct {
	position int
	total    int
	rng      *rand.Rand
}

func newNoise(d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &noise{total: rate.N(d), rng: rand.New(rand.NewPCG(1, 2))}
}

func (s *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		val := s.rng.Float64()*2 - 1
		samples[i][0] = val
		samples[i][1] = val
		s.position++
	}
	return len(samples), true
}

func (s *noise) Err() error { return nil }

// decay fades a stream out linearly after a short attack.
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

func newDecay(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, attack: rate.N(attack), total: rate.N(d)}
}

func (e *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 0.0
		switch {
		case e.position < e.attack:
			vol = float64(e.position) / float64(e.attack)
		case e.position < e.total:
			vol = float64(e.total-e.position) / float64(e.total-e.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *decay) Err() error { return e.streamer.Err() }

// withVolume scales a stream by a linear gain. Zero or less is silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

const (
	fireDuration      = 120 * time.Millisecond
	explosionDuration = 350 * time.Millisecond
)

// synthFire is a short descending "pew".
func synthFire(rate beep.SampleRate) beep.Streamer {
	return newDecay(newSweep(1400, 300, fireDuration, rate), fireDuration, 5*time.Millisecond, rate)
}

// synthExplosion is a burst of decaying noise.
func synthExplosion(rate beep.SampleRate) beep.Streamer {
	return newDecay(newNoise(explosionDuration, rate), explosionDuration, 10*time.Millisecond, rate)
}
