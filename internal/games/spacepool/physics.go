package spacepool

import (
	"github.com/tharrisw/SPACEPOOL-sub002/internal/config"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

// blocksBall reports whether a cell stops ball movement. Balls roll over
// Surface, Pocket, and Destroyed cells (the last two swallow them, handled
// by the game loop); cushions and the void outside the table reflect them.
func blocksBall(c Cell) bool {
	return c == CellBarrier || c == CellEmpty
}

// integrateBall advances one ball by one tick: move, bounce off cushions,
// then apply friction. Falling through hazards is the caller's concern.
func integrateBall(b *Ball, surface *SurfaceManager, phys config.PhysicsConfig) {
	if b.Gone || !b.Moving() {
		return
	}

	next := b.Pos.Add(b.Vel)
	if blocksBall(surface.Classify(next)) {
		// Probe each axis separately to find the reflection plane.
		blockedX := blocksBall(surface.Classify(core.V(next.X, b.Pos.Y)))
		blockedY := blocksBall(surface.Classify(core.V(b.Pos.X, next.Y)))
		if !blockedX && !blockedY {
			// Clean diagonal corner hit: reflect both axes.
			blockedX, blockedY = true, true
		}

		if blockedX {
			b.Vel.X = -b.Vel.X * phys.CushionRestitution
		}
		if blockedY {
			b.Vel.Y = -b.Vel.Y * phys.CushionRestitution
		}

		next = b.Pos.Add(b.Vel)
		if blocksBall(surface.Classify(next)) {
			// Wedged into a cushion; stop rather than tunnel through.
			b.Vel = core.Vec2{}
			next = b.Pos
		}
	}
	b.Pos = next

	// Rolling friction, with a hard stop below the threshold speed.
	b.Vel = b.Vel.Scale(phys.Friction)
	if b.Vel.Len() < phys.StopSpeed {
		b.Vel = core.Vec2{}
	}
}

// collideBalls resolves an elastic collision between two balls if they
// overlap. Returns the impulse magnitude (closing speed along the contact
// normal) and whether a collision happened.
func collideBalls(a, b *Ball, phys config.PhysicsConfig) (float64, bool) {
	if a.Gone || b.Gone {
		return 0, false
	}

	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	minDist := 2 * phys.BallRadius
	if dist >= minDist || dist == 0 {
		return 0, false
	}

	normal := delta.Scale(1 / dist)

	// Push the balls apart so they do not re-collide next tick.
	overlap := minDist - dist
	a.Pos = a.Pos.Sub(normal.Scale(overlap / 2))
	b.Pos = b.Pos.Add(normal.Scale(overlap / 2))

	// Closing speed along the normal; separating balls do not collide.
	relVel := a.Vel.Sub(b.Vel)
	closing := relVel.Dot(normal)
	if closing <= 0 {
		return 0, false
	}

	// Equal masses: exchange the normal velocity components, scaled by
	// restitution.
	transfer := normal.Scale(closing * phys.Restitution)
	a.Vel = a.Vel.Sub(transfer)
	b.Vel = b.Vel.Add(transfer)

	return closing, true
}
