package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/platform"
)

// drain counts the samples a finite streamer produces.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer did not finish")
	return nil
}

// TestSynthClipsAreFinite verifies the synthesised clips end and stay in range
func TestSynthClipsAreFinite(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
		want int
	}{
		{"fire", synthFire(SampleRate), SampleRate.N(fireDuration)},
		{"explosion", synthExplosion(SampleRate), SampleRate.N(explosionDuration)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := drain(t, tt.s)
			if len(samples) != tt.want {
				t.Errorf("samples = %d, want %d", len(samples), tt.want)
			}
			for i, s := range samples {
				if s[0] < -1 || s[0] > 1 {
					t.Fatalf("sample %d = %f, want within [-1, 1]", i, s[0])
				}
			}
			if last := samples[len(samples)-1][0]; last > 0.01 || last < -0.01 {
				t.Errorf("last sample = %f, want about 0", last)
			}
		})
	}
}

// TestSweepIsSquare verifies the sweep only produces full-scale values
func TestSweepIsSquare(t *testing.T) {
	for i, s := range drain(t, newSweep(800, 200, 20*time.Millisecond, SampleRate)) {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("sample %d = %f, want -1 or 1", i, s[0])
		}
	}
}

// TestLoadBankSynth verifies every clip is present without configured files
func TestLoadBankSynth(t *testing.T) {
	bank, err := LoadBank(config.AudioConfig{Volume: 0.5})
	if err != nil {
		t.Fatalf("LoadBank() error = %v", err)
	}
	for _, c := range []platform.Clip{platform.ClipFire, platform.ClipExplosion} {
		if buf, ok := bank[c]; !ok || buf.Len() == 0 {
			t.Errorf("%s clip is missing or empty", c)
		}
	}
}

// TestLoadBankMissingFile verifies a configured but missing file is an error
func TestLoadBankMissingFile(t *testing.T) {
	_, err := LoadBank(config.AudioConfig{FireSound: filepath.Join(t.TempDir(), "none.wav"), Volume: 1})
	if err == nil {
		t.Fatal("LoadBank() of a missing sound file returned no error")
	}
}

// TestLoadWAVResamples verifies a WAV at another rate is converted
func TestLoadWAVResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fire.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	srcFormat := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, newSweep(440, 440, 100*time.Millisecond, 22050), srcFormat); err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}
	f.Close()

	buf, err := LoadWAV(path, 1)
	if err != nil {
		t.Fatalf("LoadWAV() error = %v", err)
	}
	want := SampleRate.N(100 * time.Millisecond)
	if diff := buf.Len() - want; diff < -50 || diff > 50 {
		t.Errorf("samples = %d, want about %d", buf.Len(), want)
	}
}

// TestLoadWAVRejectsGarbage verifies a non-WAV file fails to decode
func TestLoadWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not a wav file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWAV(path, 1); err == nil {
		t.Error("LoadWAV() of garbage returned no error")
	}
}

// TestBellRingsOnExplosion verifies only explosions write BEL
func TestBellRingsOnExplosion(t *testing.T) {
	var out bytes.Buffer
	b := NewBell(&out)

	b.PlaySound(platform.ClipFire)
	b.PlaySound(platform.ClipExplosion)

	if got := out.String(); got != "\a" {
		t.Errorf("bell output = %q, want a single BEL", got)
	}
}

// TestWithVolumeSilent verifies zero volume mutes the stream
func TestWithVolumeSilent(t *testing.T) {
	for i, s := range drain(t, withVolume(newSweep(440, 440, 10*time.Millisecond, SampleRate), 0)) {
		if s[0] != 0 {
			t.Fatalf("Sample %d should be silent, got %f", i, s[0])
		}
	}
}
