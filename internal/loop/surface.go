package loop

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/platform"
)

// Surface is the terminal implementation of platform.Surface. Drawing goes
// to a scaled half-block canvas that is fitted to the terminal every frame.
type Surface struct {
	canvas   *draw.Canvas
	out      *draw.ChunkWriter
	reader   *input.Reader
	audio    platform.Audio
	sizeFunc draw.TermSizeFunc
	clock    func() time.Time

	logicalWidth  int
	logicalHeight int
	shipColor     color.RGBA
	enemyColor    color.RGBA

	termWidth  int // Last seen terminal size
	termHeight int
	pointer    bool
}

// NewSurface creates a terminal surface reading input from r and drawing to w.
func NewSurface(r io.Reader, w io.Writer, s *config.Settings, audio platform.Audio, sizeFunc draw.TermSizeFunc) *Surface {
	lw, lh := s.Screen.Width, s.Screen.Height
	return &Surface{
		canvas:        draw.NewScaledCanvas(1, 1, float64(lw), float64(lh)),
		out:           draw.NewChunkWriter(w),
		reader:        input.NewReader(input.StartStream(r)),
		audio:         audio,
		sizeFunc:      sizeFunc,
		clock:         time.Now,
		logicalWidth:  lw,
		logicalHeight: lh,
		shipColor:     s.Ship.Color.RGBA(),
		enemyColor:    s.Enemy.Color.RGBA(),
	}
}

// Open prepares the terminal: alternate screen, hidden cursor, sized canvas.
func (s *Surface) Open() error {
	draw.EnterAltScreen(s.out)
	draw.HideCursor(s.out)
	if err := s.fit(); err != nil {
		return err
	}
	return s.out.Flush()
}

// Close restores the terminal.
func (s *Surface) Close() error {
	if s.pointer {
		draw.DisableMouse(s.out)
	}
	draw.ClearScreen(s.out)
	draw.ShowCursor(s.out)
	draw.ExitAltScreen(s.out)
	return s.out.Flush()
}

// fit resizes the canvas when the terminal size changed.
func (s *Surface) fit() error {
	tw, th, err := s.sizeFunc()
	if err != nil {
		return fmt.Errorf("reading terminal size: %w", err)
	}
	if tw == s.termWidth && th == s.termHeight {
		return nil
	}
	s.termWidth, s.termHeight = tw, th

	cols, rows, offCol, offRow := draw.Fit(tw, th, float64(s.logicalWidth), float64(s.logicalHeight))
	s.canvas.Resize(cols, rows)
	s.canvas.SetOffset(offCol, offRow)
	s.canvas.Invalidate()

	draw.ClearScreen(s.out)
	return s.canvas.RenderBorder(s.out)
}

// PollEvents returns the pending input events.
func (s *Surface) PollEvents() []platform.Event {
	return s.reader.Poll(s.clock(), s.canvas.TerminalToLogical)
}

// Clear fills the frame with bg.
func (s *Surface) Clear(bg color.RGBA) {
	s.canvas.Clear(bg)
}

// DrawRect fills a logical rectangle.
func (s *Surface) DrawRect(r physics.Rect, c color.RGBA) {
	s.canvas.FillRect(r, c)
}

// DrawSprite draws the bitmap for an entity.
func (s *Surface) DrawSprite(sprite platform.Sprite, r physics.Rect) {
	switch sprite {
	case platform.SpriteShip:
		s.canvas.DrawBitmap(r, draw.ShipBitmap, s.shipColor)
	case platform.SpriteEnemy:
		s.canvas.DrawBitmap(r, draw.EnemyBitmap, s.enemyColor)
	}
}

// DrawText places text over the frame.
func (s *Surface) DrawText(t platform.Text) {
	s.canvas.DrawText(t)
}

// Present writes the changed cells to the terminal.
func (s *Surface) Present() error {
	if err := s.fit(); err != nil {
		return err
	}
	if err := s.canvas.Render(s.out); err != nil {
		return err
	}
	return s.out.Flush()
}

// PlaySound forwards to the audio backend.
func (s *Surface) PlaySound(c platform.Clip) {
	s.audio.PlaySound(c)
}

// DisplayBounds returns the logical screen size.
func (s *Surface) DisplayBounds() (int, int) {
	return s.logicalWidth, s.logicalHeight
}

// SetPointerVisible turns mouse reporting on while the Play button shows.
func (s *Surface) SetPointerVisible(visible bool) {
	if visible == s.pointer {
		return
	}
	s.pointer = visible
	if visible {
		draw.EnableMouse(s.out)
	} else {
		draw.DisableMouse(s.out)
	}
}

// Ensure Surface satisfies platform.Surface.
var _ platform.Surface = (*Surface)(nil)
