package spacepool

import (
	"math"
	"math/rand"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/config"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

// craterProfile holds the smoothed per-segment radius perturbations for one
// crater. A fresh profile is drawn for every DestroyRadius call so no two
// craters share an outline.
type craterProfile struct {
	perturb []float64
}

// newCraterProfile draws one perturbation per angular segment in
// [-max, +max] and smooths each with its two neighbors using a 1-2-1
// weighted average, so adjacent segments never jump sharply.
func newCraterProfile(rng *rand.Rand, segments int, max float64) craterProfile {
	if segments < 3 {
		segments = 3
	}
	raw := make([]float64, segments)
	for i := range raw {
		raw[i] = (rng.Float64()*2 - 1) * max
	}

	smoothed := make([]float64, segments)
	for i := range smoothed {
		prev := raw[(i+segments-1)%segments]
		next := raw[(i+1)%segments]
		smoothed[i] = (prev + 2*raw[i] + next) / 4
	}

	return craterProfile{perturb: smoothed}
}

// at returns the perturbation for the segment containing the given angle.
func (p craterProfile) at(angle float64) float64 {
	n := len(p.perturb)
	// Normalize to [0, 2pi)
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	i := int(a / (2 * math.Pi) * float64(n))
	if i >= n {
		i = n - 1
	}
	return p.perturb[i]
}

// cellNoise returns a deterministic pseudo-random sample in [0, 1) seeded by
// cell position. The same cell always yields the same sample for a given
// round seed, which keeps crater edges reproducible.
func cellNoise(ix, iy int, seed int64) float64 {
	h := uint64(seed) ^ uint64(ix)*0x9E3779B97F4A7C15 ^ uint64(iy)*0xC2B2AE3D27D4EB4F
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}

// carveCrater destroys Surface cells around center according to the two-zone
// crater model and returns the count of newly destroyed cells.
//
// The circle is split into an inner zone at InnerFraction*radius, destroyed
// unconditionally, and an outer probabilistic zone out to radius. Each of
// the angular segments perturbs both zone boundaries in its direction: the
// outer boundary by (1+p) and the inner by (1+0.5p), so the core stays
// stable while the rim gets jagged. Outer-zone cells survive or fall based
// on a linear edge falloff biased by position-seeded noise, with spike and
// notch adjustments near the zone boundaries. No cell beyond radius is ever
// touched, and only Surface cells are eligible.
func carveCrater(grid *SpatialGrid, center core.Vec2, radius, raggedness float64, cfg config.CraterConfig, rng *rand.Rand, noiseSeed int64) int {
	if radius <= 0 {
		return 0
	}

	profile := newCraterProfile(rng, cfg.Segments, cfg.Perturbation)
	baseInner := radius * cfg.InnerFraction

	// Scan only the cell bounding box of the crater circle.
	cs := grid.CellSize()
	minX := int(math.Floor((center.X - radius - grid.origin.X) / cs))
	maxX := int(math.Ceil((center.X + radius - grid.origin.X) / cs))
	minY := int(math.Floor((center.Y - radius - grid.origin.Y) / cs))
	maxY := int(math.Ceil((center.Y + radius - grid.origin.Y) / cs))
	minX = clampIndex(minX, grid.Width())
	maxX = clampIndex(maxX, grid.Width())
	minY = clampIndex(minY, grid.Height())
	maxY = clampIndex(maxY, grid.Height())

	destroyed := 0
	for iy := minY; iy <= maxY; iy++ {
		for ix := minX; ix <= maxX; ix++ {
			if grid.At(ix, iy) != CellSurface {
				continue
			}

			c := grid.CellCenter(ix, iy)
			dx := c.X - center.X
			dy := c.Y - center.Y
			dist := math.Hypot(dx, dy)
			if dist > radius {
				continue
			}

			pert := profile.at(math.Atan2(dy, dx))
			inner := baseInner * (1 + 0.5*pert)
			outer := radius * (1 + pert)

			// The unperturbed core is always destroyed, regardless of how
			// far a negative perturbation pulls the inner boundary in.
			if dist <= baseInner || dist <= inner {
				if grid.markDestroyedAt(ix, iy) {
					destroyed++
				}
				continue
			}
			if dist > outer || outer <= inner {
				continue
			}

			edgeProgress := (dist - inner) / (outer - inner)
			noise := cellNoise(ix, iy, noiseSeed)
			score := (1 - edgeProgress) + (noise-0.5)*raggedness

			// Outward spikes near the inner rim, inward notches near the edge.
			if edgeProgress < cfg.SpikeLow && noise > cfg.SpikeHigh {
				score += cfg.SpikeBoost
			}
			if edgeProgress > cfg.SpikeHigh && noise < cfg.SpikeLow {
				score -= cfg.SpikeBoost
			}

			if score > 0.5 {
				if grid.markDestroyedAt(ix, iy) {
					destroyed++
				}
			}
		}
	}

	return destroyed
}

// clampIndex restricts a grid index to [0, dim).
func clampIndex(i, dim int) int {
	if i < 0 {
		return 0
	}
	if i >= dim {
		return dim - 1
	}
	return i
}
