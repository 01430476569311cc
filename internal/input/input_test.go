package input

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/platform"
)

var t0 = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func newTestReader() (*Reader, chan []byte) {
	ch := make(chan []byte, 16)
	return NewReader(&Stream{ch: ch}), ch
}

func identity(col, row int) (float64, float64, bool) {
	return float64(col), float64(row), true
}

func TestSingleBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []platform.Event
	}{
		{"fire", " ", []platform.Event{platform.KeyDown(platform.KeyFire)}},
		{"play", "p", []platform.Event{platform.KeyDown(platform.KeyPlay)}},
		{"enter", "\r", []platform.Event{platform.KeyDown(platform.KeyPlay)}},
		{"quit", "Q", []platform.Event{platform.KeyDown(platform.KeyQuit)}},
		{"ctrl-c", "\x03", []platform.Event{platform.Quit()}},
		{"unknown", "xz9", nil},
		{"left", "a", []platform.Event{platform.KeyDown(platform.KeyLeft)}},
		{"arrow right", "\x1b[C", []platform.Event{platform.KeyDown(platform.KeyRight)}},
		{"ss3 arrow left", "\x1bOD", []platform.Event{platform.KeyDown(platform.KeyLeft)}},
		{"escape then key", "\x1bq", []platform.Event{
			platform.KeyDown(platform.KeyQuit), platform.KeyDown(platform.KeyQuit),
		}},
		{"other sequence ignored", "\x1b[1;5A ", []platform.Event{platform.KeyDown(platform.KeyFire)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ch := newTestReader()
			ch <- []byte(tt.input)
			got := r.Poll(t0, identity)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Poll(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHoldWindow(t *testing.T) {
	r, ch := newTestReader()

	ch <- []byte("\x1b[C")
	if got := r.Poll(t0, nil); !reflect.DeepEqual(got, []platform.Event{platform.KeyDown(platform.KeyRight)}) {
		t.Fatalf("first press = %v", got)
	}

	// Still inside the initial repeat delay
	if got := r.Poll(t0.Add(400*time.Millisecond), nil); len(got) != 0 {
		t.Errorf("Poll() during the initial hold = %v, want none", got)
	}

	// A repeat keeps the key down and shortens the window
	ch <- []byte("\x1b[C")
	if got := r.Poll(t0.Add(500*time.Millisecond), nil); len(got) != 0 {
		t.Errorf("repeat should not emit events, got %v", got)
	}
	if got := r.Poll(t0.Add(550*time.Millisecond), nil); len(got) != 0 {
		t.Errorf("Poll() = %v, want key still held", got)
	}
	got := r.Poll(t0.Add(600*time.Millisecond), nil)
	if !reflect.DeepEqual(got, []platform.Event{platform.KeyUp(platform.KeyRight)}) {
		t.Errorf("Poll() after the repeat window = %v, want key up", got)
	}
}

func TestInitialHoldExpires(t *testing.T) {
	r, ch := newTestReader()
	ch <- []byte("a")
	r.Poll(t0, nil)

	got := r.Poll(t0.Add(initialHold), nil)
	if !reflect.DeepEqual(got, []platform.Event{platform.KeyUp(platform.KeyLeft)}) {
		t.Errorf("Poll() = %v, want key up", got)
	}
}

func TestOppositeDirectionReleases(t *testing.T) {
	r, ch := newTestReader()
	ch <- []byte("ad")

	want := []platform.Event{
		platform.KeyDown(platform.KeyLeft),
		platform.KeyUp(platform.KeyLeft),
		platform.KeyDown(platform.KeyRight),
	}
	if got := r.Poll(t0, nil); !reflect.DeepEqual(got, want) {
		t.Errorf("Poll() = %v, want %v", got, want)
	}
}

func TestLoneEscape(t *testing.T) {
	r, ch := newTestReader()
	ch <- []byte("\x1b")
	if got := r.Poll(t0, nil); len(got) != 0 {
		t.Fatalf("lone ESC should wait a poll, got %v", got)
	}
	got := r.Poll(t0.Add(16*time.Millisecond), nil)
	if !reflect.DeepEqual(got, []platform.Event{platform.KeyDown(platform.KeyQuit)}) {
		t.Errorf("Poll() = %v, want Escape to quit", got)
	}
}

func TestSplitSequence(t *testing.T) {
	r, ch := newTestReader()
	ch <- []byte("\x1b")
	r.Poll(t0, nil)
	ch <- []byte("[D")

	got := r.Poll(t0.Add(16*time.Millisecond), nil)
	if !reflect.DeepEqual(got, []platform.Event{platform.KeyDown(platform.KeyLeft)}) {
		t.Errorf("Poll() = %v, want left arrow", got)
	}
}

func TestMouse(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []platform.Event
	}{
		{"left press", []string{"\x1b[<0;41;3M"}, []platform.Event{platform.PointerDown(41, 3)}},
		{"release ignored", []string{"\x1b[<0;41;3m"}, nil},
		{"right button ignored", []string{"\x1b[<2;41;3M"}, nil},
		{"motion ignored", []string{"\x1b[<32;41;3M"}, nil},
		{"split report", []string{"\x1b[<0;4", "1;3M"}, []platform.Event{platform.PointerDown(41, 3)}},
		{"garbage", []string{"\x1b[<x;y;zM "}, []platform.Event{platform.KeyDown(platform.KeyFire)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ch := newTestReader()
			var got []platform.Event
			for i, c := range tt.chunks {
				ch <- []byte(c)
				got = append(got, r.Poll(t0.Add(time.Duration(i)*time.Millisecond), identity)...)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("events = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMouseOutsideCanvas(t *testing.T) {
	r, ch := newTestReader()
	ch <- []byte("\x1b[<0;1;1M")
	outside := func(int, int) (float64, float64, bool) { return 0, 0, false }
	if got := r.Poll(t0, outside); len(got) != 0 {
		t.Errorf("click outside the canvas should be dropped, got %v", got)
	}
}

func TestClosedStreamQuits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []platform.Event
	}{
		{"plain byte", " ", []platform.Event{platform.KeyDown(platform.KeyFire), platform.Quit()}},
		{"partial CSI", "\x1b[", []platform.Event{platform.Quit()}},
		{"partial SS3", "\x1bO", []platform.Event{platform.Quit()}},
		{"partial mouse", "\x1b[<0;5", []platform.Event{platform.Quit()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(StartStream(strings.NewReader(tt.input)))

			var got []platform.Event
			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) {
				got = append(got, r.Poll(t0, nil)...)
				if len(got) > 0 && got[len(got)-1] == platform.Quit() {
					break
				}
				time.Sleep(time.Millisecond)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("events = %v, want %v", got, tt.want)
			}
		})
	}
}
