package draw

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/platform"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
	green = color.RGBA{G: 200, A: 255}
)

func TestFit(t *testing.T) {
	tests := []struct {
		name                 string
		termW, termH         int
		cols, rows, oc, orow int
	}{
		{"exact aspect", 120, 40, 120, 40, 0, 0},
		{"wide terminal", 200, 40, 120, 40, 40, 0},
		{"tall terminal", 80, 60, 80, 27, 0, 16},
		{"tiny", 1, 1, 1, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, oc, orow := Fit(tt.termW, tt.termH, 1200, 800)
			if cols != tt.cols || rows != tt.rows || oc != tt.oc || orow != tt.orow {
				t.Errorf("Fit(%d, %d) = %d, %d, %d, %d, want %d, %d, %d, %d",
					tt.termW, tt.termH, cols, rows, oc, orow, tt.cols, tt.rows, tt.oc, tt.orow)
			}
		})
	}
}

func TestFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.Clear(white)

	c.FillRect(physics.Rect{X: 600, Y: 400, W: 3, H: 15}, black)

	if c.Pixel(60, 40) != black {
		t.Error("narrow rect should cover its first pixel")
	}
	if c.Pixel(61, 40) != white {
		t.Error("narrow rect should be one pixel wide")
	}
	if c.Pixel(60, 41) != black || c.Pixel(60, 42) != white {
		t.Error("rect height should span two sub-pixels")
	}
}

func TestFillRectClipsToCanvas(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.Clear(white)
	c.FillRect(physics.Rect{X: -50, Y: -50, W: 500, H: 500}, black)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.Pixel(x, y) != black {
				t.Fatalf("pixel (%d, %d) not filled", x, y)
			}
		}
	}
}

func TestDrawBitmap(t *testing.T) {
	c := NewScaledCanvas(4, 1, 4, 2)
	c.Clear(white)
	c.DrawBitmap(physics.Rect{W: 4, H: 2}, Bitmap{"#.", ".#"}, black)

	want := [][]color.RGBA{
		{black, black, white, white},
		{white, white, black, black},
	}
	for y, row := range want {
		for x, col := range row {
			if got := c.Pixel(x, y); got != col {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, col)
			}
		}
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.Clear(white)

	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out.Len() == 0 {
		t.Fatal("first frame should draw every cell")
	}

	out.Reset()
	c.Clear(white)
	c.Render(&out)
	if out.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", out.String())
	}

	c.FillRect(physics.Rect{X: 5, Y: 8, W: 1, H: 1}, green)
	c.Render(&out)
	if n := strings.Count(out.String(), "H"); n != 1 {
		t.Errorf("cursor moves = %d, want 1 in %q", n, out.String())
	}
	if !strings.Contains(out.String(), "\033[5;6H") {
		t.Errorf("Render() = %q, want a move to row 5 col 6", out.String())
	}
	if !strings.Contains(out.String(), "38;2;0;200;0") {
		t.Errorf("Render() = %q, want the green foreground", out.String())
	}

	out.Reset()
	c.Invalidate()
	c.Render(&out)
	if out.Len() == 0 {
		t.Error("invalidated canvas should redraw")
	}
}

func TestDrawTextPlacement(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.Clear(green)
	var out bytes.Buffer
	c.Render(&out)

	c.Clear(green)
	c.DrawText(platform.Text{Value: "Play", Size: 48, Color: white, X: 600, Y: 375, Align: platform.AlignCenter})
	out.Reset()
	c.Render(&out)
	if !strings.HasPrefix(out.String(), "\033[20;59H") || !strings.Contains(out.String(), "Play") {
		t.Errorf("Render() = %q, want Play at row 20 col 59", out.String())
	}

	c.Clear(green)
	c.DrawText(platform.Text{Value: "1,500", Size: 48, Color: white, X: 1180, Y: 20, Align: platform.AlignRight})
	out.Reset()
	c.Render(&out)
	if !strings.Contains(out.String(), "1,500") {
		t.Error("right aligned score missing")
	}
}

func TestTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(120, 40, 1200, 800)
	c.SetOffset(40, 2)

	x, y, ok := c.TerminalToLogical(41, 3)
	if !ok || math.Abs(x-5) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Errorf("TerminalToLogical(41, 3) = %v, %v, %v, want 5, 10, true", x, y, ok)
	}
	if _, _, ok := c.TerminalToLogical(40, 3); ok {
		t.Error("left of the canvas should be outside")
	}
	if _, _, ok := c.TerminalToLogical(41, 43); ok {
		t.Error("below the canvas should be outside")
	}

	col, row := c.LogicalToTerminal(x, y)
	if col != 41 || row != 3 {
		t.Errorf("LogicalToTerminal round trip = %d, %d, want 41, 3", col, row)
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	payload := strings.Repeat("x", 3*maxChunkSize+7)
	cw.WriteString(payload)

	if out.Len() != 0 {
		t.Error("nothing should be written before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if out.String() != payload {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(payload))
	}
	if cw.Len() != 0 {
		t.Error("buffer should be empty after Flush")
	}
}
