package audio

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/platform"
)

// SampleRate is the output rate every clip is converted to.
const SampleRate = beep.SampleRate(44100)

var format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Bank holds every clip fully decoded in memory.
type Bank map[platform.Clip]*beep.Buffer

// LoadBank builds the clip bank. Configured WAV files are decoded and
// resampled; empty paths fall back to synthesised clips.
func LoadBank(cfg config.AudioConfig) (Bank, error) {
	sources := []struct {
		clip  platform.Clip
		path  string
		synth func(beep.SampleRate) beep.Streamer
	}{
		{platform.ClipFire, cfg.FireSound, synthFire},
		{platform.ClipExplosion, cfg.ExplosionSound, synthExplosion},
	}

	bank := make(Bank, len(sources))
	for _, src := range sources {
		var (
			buf *beep.Buffer
			err error
		)
		if src.path != "" {
			buf, err = LoadWAV(src.path, cfg.Volume)
			if err != nil {
				return nil, fmt.Errorf("loading %s sound: %w", src.clip, err)
			}
		} else {
			buf = bufferOf(src.synth(SampleRate), cfg.Volume)
		}
		bank[src.clip] = buf
	}
	return bank, nil
}

// LoadWAV decodes a WAV file into a buffer at SampleRate.
func LoadWAV(path string, volume float64) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, srcFormat, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if srcFormat.SampleRate != SampleRate {
		s = beep.Resample(4, srcFormat.SampleRate, SampleRate, s)
	}
	buf := bufferOf(s, volume)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return buf, nil
}

func bufferOf(s beep.Streamer, volume float64) *beep.Buffer {
	buf := beep.NewBuffer(format)
	buf.Append(withVolume(s, volume))
	return buf
}
