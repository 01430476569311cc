package draw

// Bitmap is a monochrome sprite. Rows are strings where '#' marks a set pixel.
type Bitmap []string

// Width returns the bitmap width.
func (b Bitmap) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Height returns the bitmap height.
func (b Bitmap) Height() int {
	return len(b)
}

// At reports whether the pixel at (x, y) is set.
func (b Bitmap) At(x, y int) bool {
	if y < 0 || y >= len(b) || x < 0 || x >= len(b[y]) {
		return false
	}
	return b[y][x] == '#'
}

// ShipBitmap is the player's cannon.
var ShipBitmap = Bitmap{
	".....#.....",
	"....###....",
	"....###....",
	".#########.",
	"###########",
	"###########",
	"###########",
	"###########",
}

// EnemyBitmap is the classic crab invader.
var EnemyBitmap = Bitmap{
	"..#.....#..",
	"...#...#...",
	"..#######..",
	".##.###.##.",
	"###########",
	"#.#######.#",
	"#.#.....#.#",
	"...##.##...",
}
