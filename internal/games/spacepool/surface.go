package spacepool

import (
	"errors"
	"math/rand"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/config"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

// RenderSink is called after any terrain mutation so the host can refresh
// the visual surface. The grid is already fully updated when it fires.
type RenderSink func()

// SurfaceManager owns the SpatialGrid for one round. It translates table
// geometry into the initial grid and is the only component allowed to
// mutate it. All external access goes through its query and mutation
// methods; the grid itself is never handed out.
type SurfaceManager struct {
	grid       *SpatialGrid
	geo        TableGeometry
	crater     config.CraterConfig
	rng        *rand.Rand
	noiseSeed  int64
	renderSink RenderSink

	destroyedTotal int // Cells destroyed since the last rebuild
}

// NewSurfaceManager builds the grid from geometry and wires the render
// sink. A nil sink is a fatal configuration error: a surface whose
// destruction is invisible is always a wiring bug, so it fails here
// rather than during gameplay.
func NewSurfaceManager(geo TableGeometry, cellSize float64, craterCfg config.CraterConfig, seed int64, sink RenderSink) (*SurfaceManager, error) {
	if sink == nil {
		return nil, errors.New("spacepool: surface manager requires a render sink")
	}
	grid, err := NewSpatialGrid(geo, cellSize)
	if err != nil {
		return nil, err
	}

	return &SurfaceManager{
		grid:       grid,
		geo:        geo,
		crater:     craterCfg,
		rng:        rand.New(rand.NewSource(seed)),
		noiseSeed:  seed,
		renderSink: sink,
	}, nil
}

// Geometry returns the table geometry this surface was built from.
func (m *SurfaceManager) Geometry() TableGeometry {
	return m.geo
}

// GridSize returns the grid dimensions in cells.
func (m *SurfaceManager) GridSize() (w, h int) {
	return m.grid.Width(), m.grid.Height()
}

// CellAt exposes read-only cell classification by grid index, for rendering.
func (m *SurfaceManager) CellAt(ix, iy int) Cell {
	return m.grid.At(ix, iy)
}

// CellCenter returns the world-space center of a cell, for rendering.
func (m *SurfaceManager) CellCenter(ix, iy int) core.Vec2 {
	return m.grid.CellCenter(ix, iy)
}

// Classify returns the classification of the cell under a world point.
func (m *SurfaceManager) Classify(p core.Vec2) Cell {
	return m.grid.Classify(p)
}

// IsWalkable reports whether p is intact playable felt.
func (m *SurfaceManager) IsWalkable(p core.Vec2) bool {
	return m.grid.IsWalkable(p)
}

// IsOpenHazard reports whether a ball at p falls through the table.
func (m *SurfaceManager) IsOpenHazard(p core.Vec2) bool {
	return m.grid.IsOpenHazard(p)
}

// PocketClearance returns the distance from p to the nearest pocket
// boundary. Points inside a pocket yield a negative clearance.
func (m *SurfaceManager) PocketClearance(p core.Vec2) float64 {
	best := 0.0
	first := true
	for _, pocket := range m.geo.Pockets {
		d := p.DistTo(pocket.Center) - pocket.Radius
		if first || d < best {
			best = d
			first = false
		}
	}
	if first {
		// No pockets at all; clearance is unbounded.
		return m.geo.Bounds.W + m.geo.Bounds.H
	}
	return best
}

// MarkDestroyed destroys the single Surface cell under p, if any,
// and triggers a render refresh when a cell changed.
func (m *SurfaceManager) MarkDestroyed(p core.Vec2) bool {
	changed := m.grid.MarkDestroyed(p)
	if changed {
		m.destroyedTotal++
		m.renderSink()
	}
	return changed
}

// DestroyRadius carves a ragged crater centered at center and returns the
// number of newly destroyed cells. Grid state is updated synchronously and
// completely before this returns; the render sink fires once afterwards if
// anything changed.
func (m *SurfaceManager) DestroyRadius(center core.Vec2, radius, raggedness float64) int {
	n := carveCrater(m.grid, center, radius, raggedness, m.crater, m.rng, m.noiseSeed)
	if n > 0 {
		m.destroyedTotal += n
		m.renderSink()
	}
	return n
}

// DestroyedCells returns the total cells destroyed since the grid was built.
func (m *SurfaceManager) DestroyedCells() int {
	return m.destroyedTotal
}

// SurfaceCells returns the count of remaining intact Surface cells.
func (m *SurfaceManager) SurfaceCells() int {
	return m.grid.Count(CellSurface)
}
