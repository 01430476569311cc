package game

import (
	"image/color"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/platform"
)

// Scoreboard layout.
const (
	hudMargin       = 20
	hudFontSize     = 48
	hudIconX        = 10
	hudIconY        = 10
	gameOverMessage = "Game Over"
	gameOverSize    = 72
)

var gameOverColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}

// Scoreboard draws score, high score, level and remaining ships.
type Scoreboard struct {
	printer *message.Printer
	screen  object.Screen
	color   color.RGBA
	ship    *object.Ship // Template for the lives icons
}

// NewScoreboard creates a scoreboard for the given screen.
func NewScoreboard(screen object.Screen, c color.RGBA, ship *object.Ship) *Scoreboard {
	return &Scoreboard{
		printer: message.NewPrinter(language.English),
		screen:  screen,
		color:   c,
		ship:    ship,
	}
}

// RoundScore rounds a score to the nearest ten.
func RoundScore(score int) int {
	return int(math.Round(float64(score)/10)) * 10
}

// FormatScore renders the rounded score with thousands separators.
func (sb *Scoreboard) FormatScore(score int) string {
	return sb.printer.Sprintf("%d", RoundScore(score))
}

// FormatHighScore renders the high score with thousands separators.
func (sb *Scoreboard) FormatHighScore(high int) string {
	return sb.printer.Sprintf("%d", RoundScore(high))
}

// Draw renders the scoreboard for the given stats.
func (sb *Scoreboard) Draw(r platform.Renderer, st Stats) {
	right := float64(sb.screen.Width - hudMargin)

	object.NewText(sb.FormatScore(st.Score), hudFontSize, sb.color,
		right, hudMargin, platform.AlignRight).Draw(r)
	object.NewText(sb.FormatHighScore(st.HighScore), hudFontSize, sb.color,
		float64(sb.screen.CenterX), hudMargin, platform.AlignCenter).Draw(r)
	object.NewText(sb.printer.Sprintf("%d", st.Level), hudFontSize, sb.color,
		right, hudMargin+hudFontSize+10, platform.AlignRight).Draw(r)

	for i := 0; i < st.LivesLeft; i++ {
		sb.ship.DrawIcon(r, hudIconX+float64(i)*sb.ship.Width, hudIconY, 1)
	}
}

// DrawGameOver renders the game over banner in the middle of the screen.
func (sb *Scoreboard) DrawGameOver(r platform.Renderer) {
	object.NewText(gameOverMessage, gameOverSize, gameOverColor,
		float64(sb.screen.CenterX), float64(sb.screen.CenterY)-gameOverSize/2, platform.AlignCenter).Draw(r)
}
