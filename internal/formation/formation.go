// Package formation manages the grid of enemies that marches across and down the screen.
package formation

import (
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/platform"
)

// Rows is the number of enemy rows in every formation, regardless of how many
// would fit vertically.
const Rows = 4

// Formation is the set of currently alive enemies for a level.
// All enemies move in lockstep and reverse direction together.
type Formation struct {
	enemies []*object.Enemy
}

// New creates an empty formation.
func New() *Formation {
	return &Formation{}
}

// Columns returns how many enemies fit in one row: the screen width minus a
// one-enemy margin on each side, divided by twice the enemy width.
func Columns(screenWidth int, enemyWidth float64) int {
	available := float64(screenWidth) - 2*enemyWidth
	if available <= 0 {
		return 0
	}
	return int(available / (2 * enemyWidth))
}

// Build replaces the formation with a fresh grid. Margins and spacing equal
// one enemy width horizontally and one enemy height vertically.
func (f *Formation) Build(screen object.Screen, enemyWidth, enemyHeight float64) {
	f.Clear()
	cols := Columns(screen.Width, enemyWidth)
	for row := 0; row < Rows; row++ {
		for col := 0; col < cols; col++ {
			x := enemyWidth + 2*enemyWidth*float64(col)
			y := enemyHeight + 2*enemyHeight*float64(row)
			f.enemies = append(f.enemies, object.NewEnemy(x, y, enemyWidth, enemyHeight))
		}
	}
}

// Clear removes every enemy.
func (f *Formation) Clear() {
	f.enemies = nil
}

// Len returns the number of alive enemies.
func (f *Formation) Len() int {
	return len(f.enemies)
}

// Empty reports whether the formation has been wiped out.
func (f *Formation) Empty() bool {
	return len(f.enemies) == 0
}

// Enemies returns the alive enemies. The slice must not be retained across
// calls that modify the formation.
func (f *Formation) Enemies() []*object.Enemy {
	return f.enemies
}

// AdvanceAll moves every enemy horizontally by speed in the fleet direction.
func (f *Formation) AdvanceAll(s *config.Settings) {
	dx := s.Dynamic.EnemySpeed * s.Dynamic.FleetDirection
	for _, e := range f.enemies {
		e.Advance(dx)
	}
}

// CheckEdges returns true if any enemy touches or passes a side edge.
func (f *Formation) CheckEdges(screen object.Screen) bool {
	for _, e := range f.enemies {
		if e.CheckEdges(screen) {
			return true
		}
	}
	return false
}

// DropAndReverse moves the whole fleet down and flips its direction.
func (f *Formation) DropAndReverse(s *config.Settings) {
	for _, e := range f.enemies {
		e.Drop(s.Enemy.DropSpeed)
	}
	s.Dynamic.FleetDirection *= -1
}

// ReachedBottom returns true if any enemy touches the bottom of the screen.
func (f *Formation) ReachedBottom(screen object.Screen) bool {
	for _, e := range f.enemies {
		if e.ReachedBottom(screen) {
			return true
		}
	}
	return false
}

// RemoveDestroyed drops every enemy marked as destroyed in a single pass and
// returns how many were removed.
func (f *Formation) RemoveDestroyed() int {
	var removed int
	f.enemies, removed = object.RemoveDestroyed(f.enemies)
	return removed
}

// Draw renders every enemy.
func (f *Formation) Draw(r platform.Renderer) {
	for _, e := range f.enemies {
		e.Draw(r)
	}
}
