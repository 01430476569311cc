// Package object holds the game entities: the ship, its projectiles and the enemies.
package object

import (
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/platform"
)

// Screen represents the logical viewport dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen creates a Screen of the given size.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Drawable is implemented by everything the game renders.
type Drawable interface {
	Draw(r platform.Renderer)
}

// Bounded is implemented by entities with a collision box.
type Bounded interface {
	Bounds() physics.Rect
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on the next filter pass.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Collide reports whether the collision boxes of a and b overlap.
func Collide(a, b Bounded) bool {
	return a.Bounds().Overlaps(b.Bounds())
}

// RemoveDestroyed filters destroyed items out in place and returns the kept
// slice and how many were removed.
func RemoveDestroyed[T Destructible](items []T) ([]T, int) {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	removed := len(items) - len(kept)
	// Release references held past the new length
	clear(items[len(kept):])
	return kept, removed
}

// Direction is a horizontal movement direction.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)
