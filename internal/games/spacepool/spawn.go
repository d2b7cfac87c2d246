package spacepool

import (
	"math/rand"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/config"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

// spawnOffsets is the fixed probe order around a blocked preferred point:
// right, left, up, down, then the four diagonals.
var spawnOffsets = []core.Vec2{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: 1, Y: -1},
	{X: -1, Y: -1},
	{X: 1, Y: 1},
	{X: -1, Y: 1},
}

// SpawnValidator finds legal placement points on an increasingly damaged
// table. It only reads the surface through SurfaceManager queries and owns
// its own RNG so placement is deterministic for a given seed.
type SpawnValidator struct {
	surface *SurfaceManager
	cfg     config.SpawnConfig
	rng     *rand.Rand
}

// NewSpawnValidator creates a validator over the given surface.
func NewSpawnValidator(surface *SurfaceManager, cfg config.SpawnConfig, seed int64) *SpawnValidator {
	return &SpawnValidator{
		surface: surface,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// IsValid reports whether p is a legal spawn point: intact felt, at least
// clearance away from every pocket boundary, and at least clearance away
// from every occupied position.
func (v *SpawnValidator) IsValid(p core.Vec2, clearance float64, occupied []core.Vec2) bool {
	if !v.surface.IsWalkable(p) {
		return false
	}
	if v.surface.PocketClearance(p) < clearance {
		return false
	}
	for _, o := range occupied {
		if p.DistTo(o) < clearance {
			return false
		}
	}
	return true
}

// FindValidPoint returns a legal spawn point near preferred, or ok=false
// when none could be found under the current damage.
//
// Search order: the preferred point itself, then the eight directional
// probes at the configured offset distance, then up to maxAttempts random
// samples in the table bounds, then one more randomized pass with halved
// clearance. Callers must treat failure as "no legal point exists right
// now" and fall back (typically to preferred), never as fatal.
func (v *SpawnValidator) FindValidPoint(preferred core.Vec2, clearance float64, occupied []core.Vec2, maxAttempts int) (core.Vec2, bool) {
	if maxAttempts <= 0 {
		maxAttempts = v.cfg.MaxAttempts
	}

	if v.IsValid(preferred, clearance, occupied) {
		return preferred, true
	}

	for _, off := range spawnOffsets {
		candidate := preferred.Add(off.Scale(v.cfg.OffsetDistance))
		if v.IsValid(candidate, clearance, occupied) {
			return candidate, true
		}
	}

	if p, ok := v.randomSearch(clearance, occupied, maxAttempts); ok {
		return p, true
	}

	// Graceful degradation: one more pass with relaxed clearance before
	// giving up.
	return v.randomSearch(clearance/2, occupied, maxAttempts)
}

// randomSearch samples uniform points inside the table bounds.
func (v *SpawnValidator) randomSearch(clearance float64, occupied []core.Vec2, attempts int) (core.Vec2, bool) {
	bounds := v.surface.Geometry().Bounds
	for i := 0; i < attempts; i++ {
		p := core.V(
			bounds.X+v.rng.Float64()*bounds.W,
			bounds.Y+v.rng.Float64()*bounds.H,
		)
		if v.IsValid(p, clearance, occupied) {
			return p, true
		}
	}
	return core.Vec2{}, false
}
