// Package audio implements the platform sound contract: a beep-backed
// speaker, a terminal bell and a silent fallback.
package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/platform"
)

// Silent discards every sound.
type Silent struct{}

// PlaySound does nothing.
func (Silent) PlaySound(platform.Clip) {}

// Bell rings the terminal bell on explosions. Used for remote sessions
// where the host's sound device is useless.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// PlaySound writes BEL for explosions. Firing is too frequent to ring.
func (b *Bell) PlaySound(c platform.Clip) {
	if c != platform.ClipExplosion {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, "\a")
}

// Open loads the configured clips and starts the output device.
// A clip that fails to load is an error. A missing audio device is not:
// a warning is logged and a Silent player returned.
func Open(cfg config.AudioConfig, logger *log.Logger) (platform.Audio, func(), error) {
	bank, err := LoadBank(cfg)
	if err != nil {
		return nil, nil, err
	}

	sp, err := NewSpeaker(bank)
	if err != nil {
		logger.Warn("audio device unavailable, continuing without sound", "err", err)
		return Silent{}, func() {}, nil
	}
	return sp, sp.Close, nil
}
