package object

import (
	"image/color"

	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/platform"
)

// Projectile is a bullet fired upwards by the ship.
type Projectile struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Color         color.RGBA
	destroyed     bool // Marked for destruction
}

// NewProjectile creates a projectile whose top-center matches the ship's top-center.
func NewProjectile(ship *Ship, width, height float64, c color.RGBA) *Projectile {
	return &Projectile{
		X:      ship.Bounds().CenterX() - width/2,
		Y:      ship.Y,
		Width:  width,
		Height: height,
		Color:  c,
	}
}

// Bounds returns the projectile's collision box.
func (p *Projectile) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Advance moves the projectile upwards.
func (p *Projectile) Advance(speed float64) {
	p.Y -= speed
}

// IsExpired returns true once the projectile is fully above the screen.
func (p *Projectile) IsExpired() bool {
	return p.Y+p.Height <= 0
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Draw renders the projectile as a filled rectangle.
func (p *Projectile) Draw(r platform.Renderer) {
	r.DrawRect(p.Bounds(), p.Color)
}
