// Package window runs the game in a desktop window using ebiten.
package window

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/platform"
	"github.com/tomz197/invaders/internal/score"
)

const title = "Alien Invasion"

// Options configures a windowed session.
type Options struct {
	Settings *config.Settings
	Scores   score.Store
	History  score.Recorder
	Audio    platform.Audio
	Logger   *log.Logger
}

// Game adapts the game to ebiten.Game.
type Game struct {
	surface *Surface
	game    *game.Game
	clock   func() time.Time
	keys    []ebiten.Key
}

// New creates the window game without opening the window.
func New(opts Options) (*Game, error) {
	surface := NewSurface(opts.Settings, opts.Audio)
	g, err := game.New(game.Options{
		Settings: opts.Settings,
		Surface:  surface,
		Scores:   opts.Scores,
		History:  opts.History,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Game{surface: surface, game: g, clock: time.Now}, nil
}

// Run opens the window and blocks until the player quits or closes it.
func Run(opts Options) error {
	g, err := New(opts)
	if err != nil {
		return err
	}

	w, h := g.surface.DisplayBounds()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(opts.Settings.Screen.TargetFPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update collects input and runs one game tick.
func (g *Game) Update() error {
	g.collectInput()

	if err := g.game.Tick(g.clock()); err != nil {
		return err
	}
	if !g.game.Running() {
		return ebiten.Termination
	}
	return nil
}

// Draw replays the last presented frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.replay(screen)
}

// Layout keeps the logical resolution; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.surface.DisplayBounds()
}

func (g *Game) collectInput() {
	if ebiten.IsWindowBeingClosed() {
		g.surface.push(platform.Quit())
		return
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key := mapKey(k); key != platform.KeyUnknown {
			g.surface.push(platform.KeyDown(key))
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key := mapKey(k); key != platform.KeyUnknown {
			g.surface.push(platform.KeyUp(key))
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.surface.push(platform.PointerDown(float64(mx), float64(my)))
	}
}

// mapKey translates an ebiten key. Unused keys map to KeyUnknown.
func mapKey(k ebiten.Key) platform.Key {
	switch k {
	case ebiten.KeyArrowLeft, ebiten.KeyA:
		return platform.KeyLeft
	case ebiten.KeyArrowRight, ebiten.KeyD:
		return platform.KeyRight
	case ebiten.KeySpace:
		return platform.KeyFire
	case ebiten.KeyP, ebiten.KeyEnter:
		return platform.KeyPlay
	case ebiten.KeyQ, ebiten.KeyEscape:
		return platform.KeyQuit
	default:
		return platform.KeyUnknown
	}
}
