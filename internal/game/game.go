// Package game implements the invaders state machine: input handling, the
// per-tick update, collision resolution and the scoreboard.
package game

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/formation"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/platform"
	"github.com/tomz197/invaders/internal/score"
)

// Options configures a Game.
type Options struct {
	Settings *config.Settings
	Surface  platform.Surface
	Scores   score.Store    // Defaults to an in-memory store
	History  score.Recorder // Optional
	Logger   *log.Logger    // Defaults to a discarding logger
}

// Game owns every entity and the stats of one session.
type Game struct {
	settings *config.Settings
	surface  platform.Surface
	scores   score.Store
	history  score.Recorder
	logger   *log.Logger

	screen      object.Screen
	stats       Stats
	ship        *object.Ship
	projectiles []*object.Projectile
	formation   *formation.Formation
	button      *object.Button
	scoreboard  *Scoreboard

	running       bool
	pausedUntil   time.Time // Zero unless a ship hit pause is pending
	gameOverUntil time.Time // "Game Over" banner deadline
	savedHigh     int       // Last high score handed to the store
}

// New creates an inactive game showing the Play button.
func New(opts Options) (*Game, error) {
	if opts.Settings == nil {
		return nil, errors.New("game: settings are required")
	}
	if opts.Surface == nil {
		return nil, errors.New("game: surface is required")
	}
	if opts.Scores == nil {
		opts.Scores = score.NewMemoryStore(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := opts.Settings
	w, h := opts.Surface.DisplayBounds()
	screen := object.NewScreen(w, h)

	high, err := opts.Scores.Load()
	if err != nil {
		opts.Logger.Warn("could not load high score, starting from zero", "err", err)
		high = 0
	}

	g := &Game{
		settings:  s,
		surface:   opts.Surface,
		scores:    opts.Scores,
		history:   opts.History,
		logger:    opts.Logger,
		screen:    screen,
		stats:     NewStats(s.Ship.Limit, high),
		ship:      object.NewShip(s.Ship.Width, s.Ship.Height, screen),
		formation: formation.New(),
		button: object.NewButton(screen, s.Button.Width, s.Button.Height, s.Button.Label,
			s.Button.Color.RGBA(), s.Button.Text.RGBA()),
		running:   true,
		savedHigh: high,
	}
	g.scoreboard = NewScoreboard(screen, s.Screen.Text.RGBA(), g.ship)
	g.formation.Build(screen, s.Enemy.Width, s.Enemy.Height)
	g.surface.SetPointerVisible(true)
	return g, nil
}

// Running reports whether the loop should keep ticking.
func (g *Game) Running() bool {
	return g.running
}

// Stats returns a copy of the current stats.
func (g *Game) Stats() Stats {
	return g.stats
}

// Paused reports whether a ship hit pause is in effect at now.
func (g *Game) Paused(now time.Time) bool {
	return now.Before(g.pausedUntil)
}

// Tick runs one frame: input, update, render.
// Returns an error only if the frame could not be presented.
func (g *Game) Tick(now time.Time) error {
	g.handleEvents(g.surface.PollEvents(), now)
	if !g.running {
		return nil
	}

	if g.stats.Active && !g.Paused(now) {
		g.update(now)
	}

	return g.render(now)
}

func (g *Game) handleEvents(events []platform.Event, now time.Time) {
	for _, ev := range events {
		switch ev.Kind {
		case platform.EventQuit:
			g.Quit(now)
			return
		case platform.EventKeyDown:
			switch ev.Key {
			case platform.KeyLeft:
				g.ship.SetMoveIntent(object.Left, true)
			case platform.KeyRight:
				g.ship.SetMoveIntent(object.Right, true)
			case platform.KeyFire:
				g.Fire(now)
			case platform.KeyPlay:
				g.StartNewGame(now)
			case platform.KeyQuit:
				g.Quit(now)
				return
			}
		case platform.EventKeyUp:
			switch ev.Key {
			case platform.KeyLeft:
				g.ship.SetMoveIntent(object.Left, false)
			case platform.KeyRight:
				g.ship.SetMoveIntent(object.Right, false)
			}
		case platform.EventPointerDown:
			if !g.stats.Active && g.button.Contains(ev.X, ev.Y) {
				g.StartNewGame(now)
			}
		}
	}
}

// update advances the world by one tick. Projectile hits are resolved
// before ship contact so a last-moment kill can still save the ship.
func (g *Game) update(now time.Time) {
	s := g.settings

	g.ship.Advance(s.Dynamic.ShipSpeed, g.screen)

	for _, p := range g.projectiles {
		p.Advance(s.Dynamic.ProjectileSpeed)
	}
	g.projectiles = RemoveExpired(g.projectiles)

	var kills int
	g.projectiles, kills = ResolveProjectileHits(g.projectiles, g.formation)
	if kills > 0 {
		g.stats.AddKills(kills, s.Dynamic.EnemyPoints)
		g.surface.PlaySound(platform.ClipExplosion)
		g.checkHighScore()
	}

	if g.formation.Empty() {
		g.LevelClear()
	}

	if g.formation.CheckEdges(g.screen) {
		g.formation.DropAndReverse(s)
	}
	g.formation.AdvanceAll(s)

	if ResolveShipContact(g.ship, g.formation, g.screen) {
		g.ShipHit(now)
	}
}

// StartNewGame resets the session and makes it active. Ignored while a game
// is in progress or the game over banner is still showing.
func (g *Game) StartNewGame(now time.Time) bool {
	if g.stats.Active || now.Before(g.gameOverUntil) {
		return false
	}

	g.settings.Initialize()
	g.stats.Reset(g.settings.Ship.Limit)
	g.stats.Active = true
	g.pausedUntil = time.Time{}
	g.resetField()
	g.surface.SetPointerVisible(false)

	g.logger.Info("game started", "high_score", g.stats.HighScore)
	return true
}

// ShipHit handles the ship being struck or the fleet reaching the bottom.
func (g *Game) ShipHit(now time.Time) {
	g.surface.PlaySound(platform.ClipExplosion)

	if g.stats.LivesLeft > 1 {
		g.stats.LivesLeft--
		g.resetField()
		g.pausedUntil = now.Add(g.settings.Timing.HitPause)
		g.logger.Debug("ship hit", "lives_left", g.stats.LivesLeft)
		return
	}

	g.stats.LivesLeft = 0
	g.stats.Active = false
	g.projectiles = nil
	g.gameOverUntil = now.Add(g.settings.Timing.GameOverPause)
	g.surface.SetPointerVisible(true)

	g.logger.Info("game over", "score", g.stats.Score, "level", g.stats.Level)
	g.recordHistory(now)
	g.saveHighScore()
}

// LevelClear starts the next level with a fresh, faster formation.
func (g *Game) LevelClear() {
	g.projectiles = nil
	g.formation.Clear()
	g.formation.Build(g.screen, g.settings.Enemy.Width, g.settings.Enemy.Height)
	g.settings.IncreaseDifficulty()
	g.stats.Level++

	g.logger.Debug("level cleared", "level", g.stats.Level, "enemy_speed", g.settings.Dynamic.EnemySpeed)
}

// Fire launches a projectile from the ship. Ignored when inactive, paused or
// when the projectile cap is reached.
func (g *Game) Fire(now time.Time) bool {
	if !g.stats.Active || g.Paused(now) {
		return false
	}
	if len(g.projectiles) >= g.settings.Projectile.Allowed {
		return false
	}

	p := object.NewProjectile(g.ship, g.settings.Projectile.Width, g.settings.Projectile.Height,
		g.settings.Projectile.Color.RGBA())
	g.projectiles = append(g.projectiles, p)
	g.surface.PlaySound(platform.ClipFire)
	return true
}

// Quit persists the high score and stops the loop.
func (g *Game) Quit(now time.Time) {
	if !g.running {
		return
	}
	if g.stats.Active {
		g.recordHistory(now)
	}
	g.saveHighScore()
	g.running = false
	g.logger.Info("quit", "score", g.stats.Score, "high_score", g.stats.HighScore)
}

// resetField clears and rebuilds the formation, drops every projectile and
// recenters the ship.
func (g *Game) resetField() {
	g.projectiles = nil
	g.formation.Clear()
	g.formation.Build(g.screen, g.settings.Enemy.Width, g.settings.Enemy.Height)
	g.ship.Center(g.screen)
}

func (g *Game) checkHighScore() {
	if g.stats.CheckHighScore() {
		g.saveHighScore()
	}
}

func (g *Game) saveHighScore() {
	if g.stats.HighScore <= g.savedHigh {
		return
	}
	if err := g.scores.Save(g.stats.HighScore); err != nil {
		g.logger.Error("saving high score", "err", err)
		return
	}
	g.savedHigh = g.stats.HighScore
}

func (g *Game) recordHistory(now time.Time) {
	if g.history == nil {
		return
	}
	rec := score.NewRecord(now, g.stats.Score, g.stats.Level, g.stats.HighScore)
	if err := g.history.Record(rec); err != nil {
		g.logger.Error("recording game history", "err", err)
	}
}

func (g *Game) render(now time.Time) error {
	r := g.surface
	r.Clear(g.settings.Screen.Background.RGBA())

	for _, d := range g.scene() {
		d.Draw(r)
	}

	g.scoreboard.Draw(r, g.stats)

	if !g.stats.Active {
		if now.Before(g.gameOverUntil) {
			g.scoreboard.DrawGameOver(r)
		} else {
			g.button.Draw(r)
		}
	}

	return r.Present()
}

// scene lists the world objects in draw order.
func (g *Game) scene() []object.Drawable {
	scene := make([]object.Drawable, 0, len(g.projectiles)+2)
	scene = append(scene, g.ship)
	for _, p := range g.projectiles {
		scene = append(scene, p)
	}
	return append(scene, g.formation)
}
