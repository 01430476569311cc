package object

import (
	"image/color"

	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/platform"
)

// Text is a simple drawable text object positioned in logical coordinates.
type Text struct {
	platform.Text
}

// NewText creates a text object. Y is the top of the text.
func NewText(value string, size int, c color.RGBA, x, y float64, align platform.Align) Text {
	return Text{platform.Text{Value: value, Size: size, Color: c, X: x, Y: y, Align: align}}
}

// Draw renders the text. Empty text draws nothing.
func (t Text) Draw(r platform.Renderer) {
	if t.Value == "" {
		return
	}
	r.DrawText(t.Text)
}

// Button is a filled rectangle with a centered label.
type Button struct {
	Rect      physics.Rect
	Label     string
	Color     color.RGBA
	TextColor color.RGBA
	FontSize  int
}

// NewButton creates a w×h button centered on the screen.
func NewButton(screen Screen, w, h float64, label string, bg, fg color.RGBA) *Button {
	return &Button{
		Rect:      physics.Centered(float64(screen.CenterX), float64(screen.CenterY), w, h),
		Label:     label,
		Color:     bg,
		TextColor: fg,
		FontSize:  48,
	}
}

// Contains reports whether a pointer press at (x, y) hits the button.
func (b *Button) Contains(x, y float64) bool {
	return b.Rect.Contains(x, y)
}

// Draw renders the button background and label.
func (b *Button) Draw(r platform.Renderer) {
	r.DrawRect(b.Rect, b.Color)
	label := NewText(b.Label, b.FontSize, b.TextColor, b.Rect.CenterX(), b.Rect.CenterY()-float64(b.FontSize)/2, platform.AlignCenter)
	label.Draw(r)
}
