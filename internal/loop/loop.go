// Package loop runs the game in a terminal: the frame loop and the terminal surface.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/platform"
	"github.com/tomz197/invaders/internal/score"
)

// Options configures a terminal session.
type Options struct {
	Settings     *config.Settings
	Scores       score.Store
	History      score.Recorder
	Audio        platform.Audio    // Defaults to silence
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
}

// Run starts the main game loop with the standard Input → Update → Draw cycle.
// It returns when the player quits, the input closes or ctx is done.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	if opts.Audio == nil {
		opts.Audio = audio.Silent{}
	}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}

	surface := NewSurface(r, w, opts.Settings, opts.Audio, opts.TermSizeFunc)
	if err := surface.Open(); err != nil {
		return err
	}
	defer surface.Close()

	g, err := game.New(game.Options{
		Settings: opts.Settings,
		Surface:  surface,
		Scores:   opts.Scores,
		History:  opts.History,
		Logger:   opts.Logger,
	})
	if err != nil {
		return err
	}

	targetFrameTime := time.Second / time.Duration(opts.Settings.Screen.TargetFPS)

	for g.Running() {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			g.Quit(frameStart)
			return nil
		default:
		}

		if err := g.Tick(frameStart); err != nil {
			g.Quit(frameStart)
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	return nil
}
