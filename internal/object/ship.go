package object

import (
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/platform"
)

// Ship is the player-controlled ship at the bottom of the screen.
type Ship struct {
	X, Y          float64 // Top-left corner
	Width, Height float64

	MovingLeft  bool
	MovingRight bool
}

// NewShip creates a ship centered at the bottom of the screen.
func NewShip(width, height float64, screen Screen) *Ship {
	s := &Ship{Width: width, Height: height}
	s.Center(screen)
	return s
}

// Bounds returns the ship's collision box.
func (s *Ship) Bounds() physics.Rect {
	return physics.Rect{X: s.X, Y: s.Y, W: s.Width, H: s.Height}
}

// SetMoveIntent starts or stops movement in a direction.
func (s *Ship) SetMoveIntent(dir Direction, active bool) {
	switch dir {
	case Left:
		s.MovingLeft = active
	case Right:
		s.MovingRight = active
	}
}

// Advance moves the ship by speed in each intended direction and keeps it
// inside [0, screen width - ship width].
func (s *Ship) Advance(speed float64, screen Screen) {
	if s.MovingRight {
		s.X += speed
	}
	if s.MovingLeft {
		s.X -= speed
	}
	s.X = physics.Clamp(s.X, 0, float64(screen.Width)-s.Width)
}

// Center places the ship at the horizontal center of the bottom edge.
func (s *Ship) Center(screen Screen) {
	s.X = float64(screen.CenterX) - s.Width/2
	s.Y = float64(screen.Height) - s.Height
}

// Draw renders the ship sprite.
func (s *Ship) Draw(r platform.Renderer) {
	r.DrawSprite(platform.SpriteShip, s.Bounds())
}

// DrawIcon renders a scaled-down ship at (x, y), used for the remaining-lives display.
func (s *Ship) DrawIcon(r platform.Renderer, x, y, scale float64) {
	r.DrawSprite(platform.SpriteShip, physics.Rect{X: x, Y: y, W: s.Width * scale, H: s.Height * scale})
}
