package spacepool

import (
	"fmt"
	"math"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

// Cell classifies one grid location. It is the single source of truth for
// "what occupies this spot on the table".
type Cell uint8

const (
	// CellEmpty is outside the table bounds entirely.
	CellEmpty Cell = iota
	// CellSurface is intact playable felt.
	CellSurface
	// CellBarrier is a fixed cushion or rail. Never mutates.
	CellBarrier
	// CellPocket is a permanent sink region. Never mutates.
	CellPocket
	// CellDestroyed is former Surface removed by damage.
	CellDestroyed
)

// String returns a short name for the cell classification.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellSurface:
		return "surface"
	case CellBarrier:
		return "barrier"
	case CellPocket:
		return "pocket"
	case CellDestroyed:
		return "destroyed"
	default:
		return "invalid"
	}
}

// TableGeometry describes the table in world space. It is supplied by the
// host at round start and consumed once to build the grid.
type TableGeometry struct {
	Bounds       core.RectF    // Outer rounded-rectangle table bounds
	CornerRadius float64       // Corner rounding of the outer bounds
	Playable     core.RectF    // Inner rectangle of playable felt
	Pockets      []core.Circle // Pocket sink circles
}

// inBounds reports whether p lies inside the rounded-rectangle outer bounds.
func (t TableGeometry) inBounds(p core.Vec2) bool {
	if !t.Bounds.Contains(p) {
		return false
	}
	r := t.CornerRadius
	if r <= 0 {
		return true
	}

	// Inside the rect: only the four corner squares can exclude the point.
	left := t.Bounds.X + r
	right := t.Bounds.Right() - r
	top := t.Bounds.Y + r
	bottom := t.Bounds.Bottom() - r

	var corner core.Vec2
	switch {
	case p.X < left && p.Y < top:
		corner = core.V(left, top)
	case p.X > right && p.Y < top:
		corner = core.V(right, top)
	case p.X < left && p.Y > bottom:
		corner = core.V(left, bottom)
	case p.X > right && p.Y > bottom:
		corner = core.V(right, bottom)
	default:
		return true
	}
	return p.DistTo(corner) <= r
}

// inPocket reports whether p lies inside any pocket circle.
func (t TableGeometry) inPocket(p core.Vec2) bool {
	for _, pocket := range t.Pockets {
		if pocket.Contains(p) {
			return true
		}
	}
	return false
}

// SpatialGrid is a fixed-size 2D array of classified cells covering the
// playable area. Dimensions, cell size, and origin are immutable after
// construction; cells mutate only through MarkDestroyed (Surface to
// Destroyed) until the next full rebuild.
type SpatialGrid struct {
	w, h     int
	cellSize float64
	origin   core.Vec2
	cells    []Cell // Row-major: index = y*w + x
}

// NewSpatialGrid builds a grid from table geometry. Each cell is classified
// by testing its world-space center: outside the rounded bounds is Empty,
// then pockets, then playable felt, and any remaining in-bounds cell
// defaults to Barrier.
//
// A geometry yielding zero cells or a non-positive cell size is a fatal
// configuration error, surfaced here rather than during gameplay.
func NewSpatialGrid(geo TableGeometry, cellSize float64) (*SpatialGrid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("spacepool: grid cell size must be positive, got %v", cellSize)
	}
	w := int(math.Ceil(geo.Bounds.W / cellSize))
	h := int(math.Ceil(geo.Bounds.H / cellSize))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("spacepool: grid dimensions %dx%d invalid for bounds %+v", w, h, geo.Bounds)
	}

	g := &SpatialGrid{
		w:        w,
		h:        h,
		cellSize: cellSize,
		origin:   core.V(geo.Bounds.X, geo.Bounds.Y),
		cells:    make([]Cell, w*h),
	}

	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			center := g.CellCenter(ix, iy)
			var c Cell
			switch {
			case !geo.inBounds(center):
				c = CellEmpty
			case geo.inPocket(center):
				c = CellPocket
			case geo.Playable.Contains(center):
				c = CellSurface
			default:
				c = CellBarrier
			}
			g.cells[iy*w+ix] = c
		}
	}

	return g, nil
}

// Width returns the grid width in cells.
func (g *SpatialGrid) Width() int {
	return g.w
}

// Height returns the grid height in cells.
func (g *SpatialGrid) Height() int {
	return g.h
}

// CellSize returns the world-space edge length of one cell.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// CellCenter returns the world-space center of the cell at (ix, iy).
func (g *SpatialGrid) CellCenter(ix, iy int) core.Vec2 {
	return core.V(
		g.origin.X+(float64(ix)+0.5)*g.cellSize,
		g.origin.Y+(float64(iy)+0.5)*g.cellSize,
	)
}

// indexOf converts a world point to grid indices.
// ok is false when the point maps outside the grid.
func (g *SpatialGrid) indexOf(p core.Vec2) (ix, iy int, ok bool) {
	ix = int(math.Floor((p.X - g.origin.X) / g.cellSize))
	iy = int(math.Floor((p.Y - g.origin.Y) / g.cellSize))
	if ix < 0 || ix >= g.w || iy < 0 || iy >= g.h {
		return 0, 0, false
	}
	return ix, iy, true
}

// Classify returns the cell classification for a world point.
// Out-of-bounds points classify as Empty; never an error.
func (g *SpatialGrid) Classify(p core.Vec2) Cell {
	ix, iy, ok := g.indexOf(p)
	if !ok {
		return CellEmpty
	}
	return g.cells[iy*g.w+ix]
}

// At returns the classification of the cell at grid indices (ix, iy).
// Out-of-range indices return Empty.
func (g *SpatialGrid) At(ix, iy int) Cell {
	if ix < 0 || ix >= g.w || iy < 0 || iy >= g.h {
		return CellEmpty
	}
	return g.cells[iy*g.w+ix]
}

// MarkDestroyed transitions the cell under p from Surface to Destroyed.
// Any other classification (including Barrier and Pocket, which are never
// destructible) is a no-op. Returns true if a cell actually changed.
func (g *SpatialGrid) MarkDestroyed(p core.Vec2) bool {
	ix, iy, ok := g.indexOf(p)
	if !ok {
		return false
	}
	return g.markDestroyedAt(ix, iy)
}

// markDestroyedAt is the index-based destruction primitive.
func (g *SpatialGrid) markDestroyedAt(ix, iy int) bool {
	i := iy*g.w + ix
	if g.cells[i] != CellSurface {
		return false
	}
	g.cells[i] = CellDestroyed
	return true
}

// IsOpenHazard reports whether a ball at p falls through the table:
// true for Pocket and Destroyed cells.
func (g *SpatialGrid) IsOpenHazard(p core.Vec2) bool {
	c := g.Classify(p)
	return c == CellPocket || c == CellDestroyed
}

// IsWalkable reports whether p is intact playable felt.
func (g *SpatialGrid) IsWalkable(p core.Vec2) bool {
	return g.Classify(p) == CellSurface
}

// Count returns the number of cells with the given classification.
func (g *SpatialGrid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}
