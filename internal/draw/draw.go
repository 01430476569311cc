// Package draw renders the game into a terminal: a colour half-block canvas,
// sprite bitmaps and the ANSI control sequences around them.
package draw

import (
	"io"
)

// BlockUpperHalf paints the top sub-pixel in the foreground colour and the
// bottom one in the background colour.
const BlockUpperHalf = '▀'

// ANSI control sequences.
const (
	ResetColors    = "\033[0m"
	clearScreen    = "\033[H\033[2J"
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	enterAltScreen = "\033[?1049h"
	exitAltScreen  = "\033[?1049l"
	enableMouse    = "\033[?1000h\033[?1006h" // Button presses, SGR encoding
	disableMouse   = "\033[?1006l\033[?1000l"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, ResetColors+clearScreen)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, hideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, showCursor)
}

// EnterAltScreen switches to the alternate screen buffer so the shell
// scrollback survives the game.
func EnterAltScreen(w io.Writer) {
	io.WriteString(w, enterAltScreen)
}

// ExitAltScreen returns to the main screen buffer.
func ExitAltScreen(w io.Writer) {
	io.WriteString(w, exitAltScreen)
}

// EnableMouse turns on SGR mouse button reporting.
func EnableMouse(w io.Writer) {
	io.WriteString(w, enableMouse)
}

// DisableMouse turns mouse reporting off.
func DisableMouse(w io.Writer) {
	io.WriteString(w, disableMouse)
}
