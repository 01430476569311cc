// Package platform defines the contract between the game core and a frontend:
// input events, drawing, sound and display queries.
package platform

import (
	"image/color"

	"github.com/tomz197/invaders/internal/physics"
)

// EventKind identifies the type of an input event.
type EventKind int

const (
	EventQuit        EventKind = iota // Window closed or quit requested
	EventKeyDown                      // Key pressed
	EventKeyUp                        // Key released
	EventPointerDown                  // Pointer button pressed at X, Y
)

// Key is a frontend-independent key identifier.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyFire
	KeyPlay
	KeyQuit
)

// Event is a single input event. X and Y are logical coordinates and are only
// set for pointer events.
type Event struct {
	Kind EventKind
	Key  Key
	X, Y float64
}

// KeyDown returns a key-down event.
func KeyDown(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

// KeyUp returns a key-up event.
func KeyUp(k Key) Event { return Event{Kind: EventKeyUp, Key: k} }

// PointerDown returns a pointer press at logical (x, y).
func PointerDown(x, y float64) Event { return Event{Kind: EventPointerDown, X: x, Y: y} }

// Quit returns a quit event.
func Quit() Event { return Event{Kind: EventQuit} }

// Sprite identifies a drawable entity image.
type Sprite int

const (
	SpriteShip Sprite = iota
	SpriteEnemy
)

// Clip identifies a sound effect.
type Clip int

const (
	ClipFire Clip = iota
	ClipExplosion
)

// String returns the clip name.
func (c Clip) String() string {
	switch c {
	case ClipFire:
		return "fire"
	case ClipExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Align controls horizontal text placement relative to Text.X.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Text is a string drawn at a logical position. Y is the top of the text.
type Text struct {
	Value string
	Size  int // Nominal font size in logical pixels
	Color color.RGBA
	X, Y  float64
	Align Align
}

// Renderer draws one frame. Calls between Clear and Present build the frame.
type Renderer interface {
	Clear(bg color.RGBA)
	DrawRect(r physics.Rect, c color.RGBA)
	DrawSprite(s Sprite, r physics.Rect)
	DrawText(t Text)
	Present() error
}

// Input yields the events received since the previous call.
type Input interface {
	PollEvents() []Event
}

// Audio plays sound effects. PlaySound must not block.
type Audio interface {
	PlaySound(c Clip)
}

// Surface is everything the game needs from a frontend.
type Surface interface {
	Renderer
	Input
	Audio
	// DisplayBounds returns the logical display size.
	DisplayBounds() (width, height int)
	// SetPointerVisible shows or hides the pointer.
	SetPointerVisible(visible bool)
}
