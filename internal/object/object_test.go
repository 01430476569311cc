package object

import (
	"image/color"
	"testing"
)

// TestShipStaysOnScreen holds a move intent for many ticks and checks the clamp.
func TestShipStaysOnScreen(t *testing.T) {
	screen := NewScreen(1200, 800)
	tests := []struct {
		name  string
		dir   Direction
		ticks int
		speed float64
	}{
		{"left briefly", Left, 3, 6},
		{"left forever", Left, 10000, 6},
		{"right forever", Right, 10000, 6},
		{"right huge speed", Right, 5, 5000},
		{"left huge speed", Left, 5, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShip(60, 48, screen)
			s.SetMoveIntent(tt.dir, true)
			for i := 0; i < tt.ticks; i++ {
				s.Advance(tt.speed, screen)
				if s.X < 0 || s.X > float64(screen.Width)-s.Width {
					t.Fatalf("tick %d: x = %v out of [0, %v]", i, s.X, float64(screen.Width)-s.Width)
				}
			}
		})
	}
}

func TestShipIntentAndCenter(t *testing.T) {
	screen := NewScreen(1200, 800)
	s := NewShip(60, 48, screen)

	if s.X != 570 || s.Y != 752 {
		t.Errorf("NewShip position = (%v, %v), want (570, 752)", s.X, s.Y)
	}

	s.SetMoveIntent(Right, true)
	s.Advance(10, screen)
	if s.X != 580 {
		t.Errorf("after right move x = %v, want 580", s.X)
	}

	// Opposing intents cancel out
	s.SetMoveIntent(Left, true)
	s.Advance(10, screen)
	if s.X != 580 {
		t.Errorf("with both intents x = %v, want 580", s.X)
	}

	s.SetMoveIntent(Right, false)
	s.SetMoveIntent(Left, false)
	s.Advance(10, screen)
	if s.X != 580 {
		t.Errorf("without intents x = %v, want 580", s.X)
	}

	s.Center(screen)
	if s.X != 570 {
		t.Errorf("after Center x = %v, want 570", s.X)
	}
}

func TestProjectileSpawnAndExpire(t *testing.T) {
	screen := NewScreen(1200, 800)
	ship := NewShip(60, 48, screen)
	p := NewProjectile(ship, 4, 15, color.RGBA{A: 255})

	if p.Bounds().CenterX() != ship.Bounds().CenterX() {
		t.Errorf("projectile center x = %v, want %v", p.Bounds().CenterX(), ship.Bounds().CenterX())
	}
	if p.Y != ship.Y {
		t.Errorf("projectile top = %v, want %v", p.Y, ship.Y)
	}

	// Travels until the bottom edge leaves the top of the screen
	ticks := 0
	for !p.IsExpired() {
		p.Advance(10)
		ticks++
		if ticks > 1000 {
			t.Fatal("projectile never expired")
		}
	}
	if p.Y+p.Height > 0 {
		t.Errorf("expired projectile bottom = %v, want <= 0", p.Y+p.Height)
	}
	if want := 77; ticks != want {
		t.Errorf("expired after %d ticks, want %d", ticks, want)
	}
}

func TestEnemyEdges(t *testing.T) {
	screen := NewScreen(600, 400)
	tests := []struct {
		name string
		x    float64
		want bool
	}{
		{"middle", 100, false},
		{"touching left", 0, true},
		{"past left", -3, true},
		{"touching right", 540, true},
		{"past right", 560, true},
		{"just inside right", 539, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnemy(tt.x, 50, 60, 58)
			if got := e.CheckEdges(screen); got != tt.want {
				t.Errorf("CheckEdges() at x=%v = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestEnemyReachedBottom(t *testing.T) {
	screen := NewScreen(600, 400)
	e := NewEnemy(100, 300, 60, 58)
	if e.ReachedBottom(screen) {
		t.Error("enemy above bottom reported as reached")
	}
	e.Drop(42)
	if !e.ReachedBottom(screen) {
		t.Error("enemy touching bottom not reported")
	}
}

func TestButtonContains(t *testing.T) {
	b := NewButton(NewScreen(1200, 800), 200, 50, "Play", color.RGBA{}, color.RGBA{})
	if !b.Contains(600, 400) {
		t.Error("center should hit the button")
	}
	if b.Contains(10, 10) {
		t.Error("corner of screen should miss the button")
	}
}

// TestRemoveDestroyed filters marked enemies in place and clears the tail.
func TestRemoveDestroyed(t *testing.T) {
	a, b, c := NewEnemy(0, 0, 10, 10), NewEnemy(20, 0, 10, 10), NewEnemy(40, 0, 10, 10)
	items := []*Enemy{a, b, c}
	b.MarkDestroyed()

	kept, removed := RemoveDestroyed(items)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if len(kept) != 2 || kept[0] != a || kept[1] != c {
		t.Errorf("kept = %v, want [a c]", kept)
	}
	if items[2] != nil {
		t.Error("tail past the kept length still holds a reference")
	}
}

func TestCollide(t *testing.T) {
	e := NewEnemy(100, 100, 60, 58)
	tests := []struct {
		name string
		p    *Projectile
		want bool
	}{
		{"inside", &Projectile{X: 120, Y: 120, Width: 3, Height: 15}, true},
		{"left of", &Projectile{X: 90, Y: 120, Width: 3, Height: 15}, false},
		{"below", &Projectile{X: 120, Y: 160, Width: 3, Height: 15}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collide(tt.p, e); got != tt.want {
				t.Errorf("Collide() = %v, want %v", got, tt.want)
			}
		})
	}
}
