package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/invaders/internal/platform"
)

// Speaker plays clips on the local audio device. Overlapping clips are mixed.
type Speaker struct {
	mu     sync.Mutex
	bank   Bank
	mixer  *beep.Mixer
	closed bool
}

// NewSpeaker initialises the audio device and starts the mixer.
func NewSpeaker(bank Bank) (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	sp := &Speaker{bank: bank, mixer: &beep.Mixer{}}
	speaker.Play(sp.mixer)
	return sp, nil
}

// PlaySound starts a copy of the clip. Unknown clips are ignored.
func (sp *Speaker) PlaySound(c platform.Clip) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	buf, ok := sp.bank[c]
	if !ok || sp.closed {
		return
	}
	speaker.Lock()
	sp.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (sp *Speaker) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.closed {
		return
	}
	sp.closed = true
	speaker.Clear()
	speaker.Close()
}
