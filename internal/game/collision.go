package game

import (
	"github.com/tomz197/invaders/internal/formation"
	"github.com/tomz197/invaders/internal/object"
)

// ResolveProjectileHits removes every overlapping projectile/enemy pair.
// Each projectile destroys at most one enemy. Both collections are filtered in
// a single pass after all pairs are found. Returns the surviving projectiles
// and the number of enemies destroyed.
func ResolveProjectileHits(projectiles []*object.Projectile, f *formation.Formation) ([]*object.Projectile, int) {
	for _, p := range projectiles {
		if p.IsDestroyed() {
			continue
		}
		for _, e := range f.Enemies() {
			if e.IsDestroyed() {
				continue
			}
			if object.Collide(p, e) {
				p.MarkDestroyed()
				e.MarkDestroyed()
				break
			}
		}
	}

	kept, _ := object.RemoveDestroyed(projectiles)
	return kept, f.RemoveDestroyed()
}

// ResolveShipContact returns true if any enemy overlaps the ship or has
// reached the bottom of the screen. Either case counts as a single hit.
func ResolveShipContact(ship *object.Ship, f *formation.Formation, screen object.Screen) bool {
	for _, e := range f.Enemies() {
		if object.Collide(ship, e) {
			return true
		}
	}
	return f.ReachedBottom(screen)
}

// RemoveExpired drops projectiles that have left the top of the screen.
func RemoveExpired(projectiles []*object.Projectile) []*object.Projectile {
	for _, p := range projectiles {
		if p.IsExpired() {
			p.MarkDestroyed()
		}
	}
	kept, _ := object.RemoveDestroyed(projectiles)
	return kept
}
