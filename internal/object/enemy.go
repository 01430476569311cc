package object

import (
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/platform"
)

// Enemy is a single alien in the formation.
type Enemy struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	destroyed     bool
}

// NewEnemy creates an enemy with its top-left corner at (x, y).
func NewEnemy(x, y, width, height float64) *Enemy {
	return &Enemy{X: x, Y: y, Width: width, Height: height}
}

// Bounds returns the enemy's collision box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// Advance moves the enemy horizontally by dx.
func (e *Enemy) Advance(dx float64) {
	e.X += dx
}

// Drop moves the enemy down by dy.
func (e *Enemy) Drop(dy float64) {
	e.Y += dy
}

// CheckEdges returns true if the enemy touches or passes the left or right screen edge.
func (e *Enemy) CheckEdges(screen Screen) bool {
	b := e.Bounds()
	return b.Right() >= float64(screen.Width) || b.Left() <= 0
}

// ReachedBottom returns true if the enemy's bottom edge is at or below the screen bottom.
func (e *Enemy) ReachedBottom(screen Screen) bool {
	return e.Y+e.Height >= float64(screen.Height)
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction.
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// Draw renders the enemy sprite.
func (e *Enemy) Draw(r platform.Renderer) {
	r.DrawSprite(platform.SpriteEnemy, e.Bounds())
}
