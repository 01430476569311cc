package draw

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/platform"
)

// cell is what one terminal character shows: two stacked sub-pixels, or an
// overlay rune drawn over the top sub-pixel colour.
type cell struct {
	top, bottom color.RGBA
	ch          rune
	fg          color.RGBA
}

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Game objects draw in logical coordinates which are scaled to terminal sub-pixels.
// Render only emits cells that changed since the previous frame.
type Canvas struct {
	termWidth      int          // Canvas columns
	termHeight     int          // Canvas rows
	subPixelHeight int          // termHeight * 2
	pixels         []color.RGBA // Flat slice: [y * termWidth + x]
	overlay        []rune       // Per-cell text, 0 for none
	overlayFg      []color.RGBA

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	prev      []cell // Last rendered frame
	prevValid bool

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// termWidth/Height are the canvas dimensions in terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// The next Render redraws every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		cells := termWidth * termHeight
		c.pixels = make([]color.RGBA, cells*2)
		c.overlay = make([]rune, cells)
		c.overlayFg = make([]color.RGBA, cells)
		c.prev = make([]cell, cells)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.prevValid = false
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Invalidate forces the next Render to redraw every cell.
func (c *Canvas) Invalidate() {
	c.prevValid = false
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.prevValid = false
	}
	c.offsetCol = col
	c.offsetRow = row
}

// Clear fills every pixel with bg and removes all text.
func (c *Canvas) Clear(bg color.RGBA) {
	for i := range c.pixels {
		c.pixels[i] = bg
	}
	clear(c.overlay)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col color.RGBA) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// Pixel returns the colour of the sub-pixel at (x, y).
func (c *Canvas) Pixel(x, y int) color.RGBA {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.RGBA{}
	}
	return c.pixels[y*c.termWidth+x]
}

// pixelSpan maps a logical interval to pixel indices [from, to).
// Anything with positive size covers at least one pixel.
func pixelSpan(start, size, scale float64) (int, int) {
	from := int(math.Round(start * scale))
	to := int(math.Round((start + size) * scale))
	if to <= from {
		to = from + 1
	}
	return from, to
}

// FillRect fills a logical rectangle.
func (c *Canvas) FillRect(r physics.Rect, col color.RGBA) {
	x0, x1 := pixelSpan(r.X, r.W, c.scaleX)
	y0, y1 := pixelSpan(r.Y, r.H, c.scaleY)
	for y := max(y0, 0); y < min(y1, c.subPixelHeight); y++ {
		for x := max(x0, 0); x < min(x1, c.termWidth); x++ {
			c.pixels[y*c.termWidth+x] = col
		}
	}
}

// DrawBitmap stretches a bitmap over a logical rectangle.
func (c *Canvas) DrawBitmap(r physics.Rect, b Bitmap, col color.RGBA) {
	x0, x1 := pixelSpan(r.X, r.W, c.scaleX)
	y0, y1 := pixelSpan(r.Y, r.H, c.scaleY)
	w, h := x1-x0, y1-y0
	for y := y0; y < y1; y++ {
		by := (y - y0) * b.Height() / h
		for x := x0; x < x1; x++ {
			bx := (x - x0) * b.Width() / w
			if b.At(bx, by) {
				c.setPixel(x, y, col)
			}
		}
	}
}

// DrawText places text over the canvas. The text is vertically centered on
// its logical box and aligned horizontally around X. Size only affects
// placement: a terminal has one font size.
func (c *Canvas) DrawText(t platform.Text) {
	runes := []rune(t.Value)
	// Text sits on the cell row through its vertical middle
	col, row := c.LogicalToTerminal(t.X, t.Y+float64(t.Size)/2)
	col -= 1 + c.offsetCol
	row -= 1 + c.offsetRow

	switch t.Align {
	case platform.AlignCenter:
		col -= len(runes) / 2
	case platform.AlignRight:
		col -= len(runes)
	}

	if row < 0 || row >= c.termHeight {
		return
	}
	for i, r := range runes {
		x := col + i
		if x < 0 || x >= c.termWidth {
			continue
		}
		c.overlay[row*c.termWidth+x] = r
		c.overlayFg[row*c.termWidth+x] = t.Color
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the changed cells to the writer using half-block characters
// with 24-bit colour.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	var (
		curFg, curBg   color.RGBA
		haveFg, haveBg bool
		cursorCol      = -1
		cursorRow      = -1
	)
	setFg := func(col color.RGBA) {
		if !haveFg || col != curFg {
			c.sgr(38, col)
			curFg, haveFg = col, true
		}
	}
	setBg := func(col color.RGBA) {
		if !haveBg || col != curBg {
			c.sgr(48, col)
			curBg, haveBg = col, true
		}
	}

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			if ch := c.overlay[i]; ch != 0 {
				cur.ch = ch
				cur.fg = c.overlayFg[i]
			}
			if c.prevValid && c.prev[i] == cur {
				continue
			}
			c.prev[i] = cur

			if row != cursorRow || col != cursorCol {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}

			switch {
			case cur.ch != 0:
				setFg(cur.fg)
				setBg(cur.top)
				c.renderBuf.WriteRune(cur.ch)
			case cur.top == cur.bottom:
				setBg(cur.top)
				c.renderBuf.WriteByte(' ')
			default:
				setFg(cur.top)
				setBg(cur.bottom)
				c.renderBuf.WriteRune(BlockUpperHalf)
			}
			cursorRow, cursorCol = row, col+1
		}
	}
	c.prevValid = true

	if c.renderBuf.Len() == 0 {
		return nil
	}
	c.renderBuf.WriteString(ResetColors)

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// sgr appends a 24-bit colour sequence. layer is 38 for foreground, 48 for background.
func (c *Canvas) sgr(layer int, col color.RGBA) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.R), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.G), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.B), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// is larger than the canvas on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.WriteString(ResetColors)

	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal position (col, row),
// including the centering offset.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(x * c.scaleX)
	py := int(y * c.scaleY)
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

// TerminalToLogical converts a 1-based terminal position to the logical
// coordinates at the middle of that cell. ok is false outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if cx < 0 || cx >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return 0, 0, false
	}
	return (float64(cx) + 0.5) / c.scaleX, (float64(cy*2) + 1) / c.scaleY, true
}

// Fit returns the largest canvas with the logical aspect ratio that fits a
// termWidth x termHeight terminal, and the offsets that center it.
// Sub-pixels are treated as square.
func Fit(termWidth, termHeight int, logicalWidth, logicalHeight float64) (cols, rows, offCol, offRow int) {
	aspect := logicalWidth / logicalHeight
	cols = termWidth
	if sub := float64(termHeight * 2); float64(cols)/aspect > sub {
		cols = int(sub * aspect)
	}
	rows = (int(float64(cols)/aspect) + 1) / 2
	cols = max(cols, 1)
	rows = min(max(rows, 1), max(termHeight, 1))
	return cols, rows, max((termWidth-cols)/2, 0), max((termHeight-rows)/2, 0)
}
