package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/platform"
)

type commandKind int

const (
	cmdClear commandKind = iota
	cmdRect
	cmdSprite
	cmdText
)

// command is one recorded draw call.
type command struct {
	kind   commandKind
	rect   physics.Rect
	color  color.RGBA
	sprite platform.Sprite
	text   platform.Text
}

// Surface is the ebiten implementation of platform.Surface. The game draws
// during Update; the calls are recorded and replayed in Draw.
type Surface struct {
	width, height int
	audio         platform.Audio

	pending []command // Being recorded for the next frame
	frame   []command // Last presented frame
	events  []platform.Event

	shipColor  color.RGBA
	enemyColor color.RGBA
	sprites    map[platform.Sprite]*ebiten.Image

	setCursor func(ebiten.CursorModeType)
}

// NewSurface creates a window surface with the logical size from settings.
func NewSurface(s *config.Settings, audio platform.Audio) *Surface {
	return &Surface{
		width:      s.Screen.Width,
		height:     s.Screen.Height,
		audio:      audio,
		shipColor:  s.Ship.Color.RGBA(),
		enemyColor: s.Enemy.Color.RGBA(),
		sprites:    make(map[platform.Sprite]*ebiten.Image),
		setCursor:  ebiten.SetCursorMode,
	}
}

// PollEvents returns and clears the events collected since the last poll.
func (s *Surface) PollEvents() []platform.Event {
	events := s.events
	s.events = nil
	return events
}

func (s *Surface) push(ev platform.Event) {
	s.events = append(s.events, ev)
}

// Clear starts a new frame.
func (s *Surface) Clear(bg color.RGBA) {
	s.pending = append(s.pending[:0], command{kind: cmdClear, color: bg})
}

// DrawRect records a filled rectangle.
func (s *Surface) DrawRect(r physics.Rect, c color.RGBA) {
	s.pending = append(s.pending, command{kind: cmdRect, rect: r, color: c})
}

// DrawSprite records an entity image.
func (s *Surface) DrawSprite(sprite platform.Sprite, r physics.Rect) {
	s.pending = append(s.pending, command{kind: cmdSprite, rect: r, sprite: sprite})
}

// DrawText records a text label.
func (s *Surface) DrawText(t platform.Text) {
	s.pending = append(s.pending, command{kind: cmdText, text: t})
}

// Present makes the recorded frame the one Draw shows.
func (s *Surface) Present() error {
	s.frame, s.pending = s.pending, s.frame[:0]
	return nil
}

// PlaySound forwards to the audio backend.
func (s *Surface) PlaySound(c platform.Clip) {
	s.audio.PlaySound(c)
}

// DisplayBounds returns the logical window size.
func (s *Surface) DisplayBounds() (int, int) {
	return s.width, s.height
}

// SetPointerVisible shows or hides the mouse cursor over the window.
func (s *Surface) SetPointerVisible(visible bool) {
	if visible {
		s.setCursor(ebiten.CursorModeVisible)
	} else {
		s.setCursor(ebiten.CursorModeHidden)
	}
}

// replay draws the last presented frame.
func (s *Surface) replay(screen *ebiten.Image) {
	for _, c := range s.frame {
		switch c.kind {
		case cmdClear:
			screen.Fill(c.color)
		case cmdRect:
			vector.DrawFilledRect(screen,
				float32(c.rect.X), float32(c.rect.Y),
				float32(c.rect.W), float32(c.rect.H),
				c.color, false)
		case cmdSprite:
			s.drawSprite(screen, c.sprite, c.rect)
		case cmdText:
			drawText(screen, c.text)
		}
	}
}

func (s *Surface) drawSprite(screen *ebiten.Image, sprite platform.Sprite, r physics.Rect) {
	img, ok := s.sprites[sprite]
	if !ok {
		switch sprite {
		case platform.SpriteShip:
			img = bitmapImage(draw.ShipBitmap, s.shipColor)
		case platform.SpriteEnemy:
			img = bitmapImage(draw.EnemyBitmap, s.enemyColor)
		default:
			return
		}
		s.sprites[sprite] = img
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	screen.DrawImage(img, op)
}

// bitmapImage renders a bitmap into an image, one pixel per bitmap cell.
func bitmapImage(b draw.Bitmap, c color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(b.Width(), b.Height())
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.At(x, y) {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

var face = basicfont.Face7x13

// textLayout returns the scale and the top-left corner of a label drawn
// with the 7x13 face stretched to t.Size pixels.
func textLayout(t platform.Text) (scale, x, y float64) {
	scale = float64(t.Size) / float64(face.Height)
	width := float64(len([]rune(t.Value))*face.Advance) * scale

	x = t.X
	switch t.Align {
	case platform.AlignCenter:
		x -= width / 2
	case platform.AlignRight:
		x -= width
	}
	return scale, x, t.Y
}

func drawText(screen *ebiten.Image, t platform.Text) {
	scale, x, y := textLayout(t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	// Text is drawn at its baseline
	op.GeoM.Translate(x, y+float64(face.Ascent)*scale)
	op.ColorScale.ScaleWithColor(t.Color)
	text.DrawWithOptions(screen, t.Value, face, op)
}

// Ensure Surface satisfies platform.Surface.
var _ platform.Surface = (*Surface)(nil)
