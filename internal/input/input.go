// Package input turns a raw terminal byte stream into key and pointer events.
package input

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/tomz197/invaders/internal/platform"
)

// Terminals only report key presses, repeated while a key is held. A
// movement key counts as held until no repeat arrives within the window.
// The first window covers the keyboard's initial repeat delay.
const (
	initialHold = 550 * time.Millisecond
	repeatHold  = 100 * time.Millisecond
)

// Stream delivers input bytes via a channel.
type Stream struct {
	ch chan []byte
}

// StartStream spawns a goroutine that reads from r and sends chunks to the stream.
// The channel is closed when r returns an error.
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan []byte, 64)}
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				s.ch <- chunk
			}
			if err != nil {
				close(s.ch)
				return
			}
		}
	}()
	return s
}

// PointerMapper converts a 1-based terminal cell to logical coordinates.
type PointerMapper func(col, row int) (x, y float64, ok bool)

// hold tracks one movement key.
type hold struct {
	down     bool
	lastSeen time.Time
	repeats  int
}

// Reader parses the stream into platform events.
type Reader struct {
	stream     *Stream
	pending    []byte // Incomplete escape sequence from the previous poll
	escCarried bool   // pending is a lone ESC
	closed     bool
	left       hold
	right      hold
}

// NewReader creates a reader over a stream.
func NewReader(s *Stream) *Reader {
	return &Reader{stream: s}
}

// Poll drains all available bytes (non-blocking) and returns the resulting
// events, including key-ups for movement keys whose hold window expired.
func (r *Reader) Poll(now time.Time, toLogical PointerMapper) []platform.Event {
	buf := r.pending
	r.pending = nil
	carried := r.escCarried
	r.escCarried = false

drain:
	for !r.closed {
		select {
		case chunk, ok := <-r.stream.ch:
			if !ok {
				r.closed = true
				break drain
			}
			buf = append(buf, chunk...)
		default:
			break drain
		}
	}

	var events []platform.Event
	emit := func(ev platform.Event) { events = append(events, ev) }

parse:
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			r.applyByte(b, now, emit)
			continue
		}

		rest := buf[i+1:]
		switch {
		case len(rest) == 0:
			// A lone ESC may be the start of a sequence split across reads.
			// It gets one poll to complete before it counts as Escape.
			if !(i == 0 && carried) && !r.closed {
				r.pending = []byte{'\x1b'}
				r.escCarried = true
				return r.expire(now, events)
			}
			emit(platform.KeyDown(platform.KeyQuit))
		case rest[0] == 'O':
			// SS3 arrows, sent in application cursor mode
			if len(rest) < 2 {
				if r.closed {
					break parse
				}
				r.pending = append([]byte(nil), buf[i:]...)
				return r.expire(now, events)
			}
			r.applySS3(rest[1], now, emit)
			i += 2
		case rest[0] != '[':
			emit(platform.KeyDown(platform.KeyQuit))
		default:
			n, complete := r.applyCSI(rest[1:], now, toLogical, emit)
			if !complete {
				// Nothing will complete it once the stream is gone
				if r.closed {
					break parse
				}
				r.pending = append([]byte(nil), buf[i:]...)
				return r.expire(now, events)
			}
			i += 1 + n
		}
	}

	if r.closed {
		events = append(events, platform.Quit())
	}
	return r.expire(now, events)
}

// applyByte handles a single plain byte.
func (r *Reader) applyByte(b byte, now time.Time, emit func(platform.Event)) {
	switch b {
	case 'a', 'A', 'h', 'H':
		r.press(&r.left, &r.right, platform.KeyLeft, platform.KeyRight, now, emit)
	case 'd', 'D', 'l', 'L':
		r.press(&r.right, &r.left, platform.KeyRight, platform.KeyLeft, now, emit)
	case ' ':
		emit(platform.KeyDown(platform.KeyFire))
	case 'p', 'P', '\r', '\n':
		emit(platform.KeyDown(platform.KeyPlay))
	case 'q', 'Q':
		emit(platform.KeyDown(platform.KeyQuit))
	case 0x03: // Ctrl-C
		emit(platform.Quit())
	}
}

func (r *Reader) applySS3(b byte, now time.Time, emit func(platform.Event)) {
	switch b {
	case 'C':
		r.press(&r.right, &r.left, platform.KeyRight, platform.KeyLeft, now, emit)
	case 'D':
		r.press(&r.left, &r.right, platform.KeyLeft, platform.KeyRight, now, emit)
	}
}

// applyCSI parses a control sequence after "ESC [". Returns the number of
// bytes consumed and false if the sequence is incomplete.
func (r *Reader) applyCSI(seq []byte, now time.Time, toLogical PointerMapper, emit func(platform.Event)) (int, bool) {
	if len(seq) == 0 {
		return 0, false
	}

	switch seq[0] {
	case 'C':
		r.press(&r.right, &r.left, platform.KeyRight, platform.KeyLeft, now, emit)
		return 1, true
	case 'D':
		r.press(&r.left, &r.right, platform.KeyLeft, platform.KeyRight, now, emit)
		return 1, true
	case '<':
		return parseSGRMouse(seq, toLogical, emit)
	}

	// Skip any other sequence up to its final byte
	for i, b := range seq {
		if b >= 0x40 && b <= 0x7e {
			return i + 1, true
		}
	}
	return 0, false
}

// parseSGRMouse parses "<b;x;yM" (press) or "<b;x;ym" (release).
// Only left button presses produce events.
func parseSGRMouse(seq []byte, toLogical PointerMapper, emit func(platform.Event)) (int, bool) {
	end := bytes.IndexAny(seq, "Mm")
	if end < 0 {
		return 0, false
	}

	fields := bytes.Split(seq[1:end], []byte{';'})
	if len(fields) != 3 || seq[end] != 'M' {
		return end + 1, true
	}
	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(string(f))
		if err != nil {
			return end + 1, true
		}
		nums[i] = n
	}

	button := nums[0]
	if button&0b11 == 0 && button&32 == 0 && toLogical != nil {
		if x, y, ok := toLogical(nums[1], nums[2]); ok {
			emit(platform.PointerDown(x, y))
		}
	}
	return end + 1, true
}

// press registers a movement key byte. Pressing one direction releases the
// other, since a terminal only repeats the most recent key.
func (r *Reader) press(h, opposite *hold, key, oppositeKey platform.Key, now time.Time, emit func(platform.Event)) {
	if opposite.down {
		*opposite = hold{}
		emit(platform.KeyUp(oppositeKey))
	}
	if !h.down {
		*h = hold{down: true, lastSeen: now}
		emit(platform.KeyDown(key))
		return
	}
	h.lastSeen = now
	h.repeats++
}

// expire appends key-ups for holds whose window passed.
func (r *Reader) expire(now time.Time, events []platform.Event) []platform.Event {
	for _, k := range []struct {
		h   *hold
		key platform.Key
	}{{&r.left, platform.KeyLeft}, {&r.right, platform.KeyRight}} {
		if !k.h.down {
			continue
		}
		window := repeatHold
		if k.h.repeats == 0 {
			window = initialHold
		}
		if now.Sub(k.h.lastSeen) >= window {
			*k.h = hold{}
			events = append(events, platform.KeyUp(k.key))
		}
	}
	return events
}
