package spacepool

import (
	"math"
	"testing"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/config"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

func newTestSurface(t *testing.T, seed int64) *SurfaceManager {
	t.Helper()
	m, err := NewSurfaceManager(testGeometry(), 1, config.DefaultSpacepoolConfig().Crater, seed, func() {})
	if err != nil {
		t.Fatalf("NewSurfaceManager: %v", err)
	}
	return m
}

func TestNewSurfaceManagerRequiresSink(t *testing.T) {
	_, err := NewSurfaceManager(testGeometry(), 1, config.DefaultSpacepoolConfig().Crater, 1, nil)
	if err == nil {
		t.Fatal("expected error for nil render sink")
	}
}

func TestDestroyRadiusInnerZoneFullyDestroyed(t *testing.T) {
	m := newTestSurface(t, 42)
	cfg := config.DefaultSpacepoolConfig().Crater

	center := core.V(20, 10)
	radius := 6.0
	n := m.DestroyRadius(center, radius, 0.5)
	if n == 0 {
		t.Fatal("expected crater to destroy at least one cell")
	}

	// Every surface cell inside the unperturbed inner zone must be gone.
	inner := radius * cfg.InnerFraction
	w, h := m.GridSize()
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			p := m.CellCenter(ix, iy)
			if p.DistTo(center) > inner {
				continue
			}
			if c := m.CellAt(ix, iy); c == CellSurface {
				t.Errorf("cell at %v (dist %.2f) inside inner zone survived", p, p.DistTo(center))
			}
		}
	}
}

func TestDestroyRadiusLeavesOutsideUntouched(t *testing.T) {
	m := newTestSurface(t, 42)

	center := core.V(20, 10)
	radius := 5.0

	w, h := m.GridSize()
	before := make([]Cell, 0, w*h)
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			before = append(before, m.CellAt(ix, iy))
		}
	}

	m.DestroyRadius(center, radius, 1.0)

	i := 0
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			p := m.CellCenter(ix, iy)
			if p.DistTo(center) > radius && m.CellAt(ix, iy) != before[i] {
				t.Errorf("cell at %v (dist %.2f > radius) changed", p, p.DistTo(center))
			}
			i++
		}
	}
}

func TestDestroyRadiusDeterministic(t *testing.T) {
	a := newTestSurface(t, 7)
	b := newTestSurface(t, 7)

	center := core.V(18, 9)
	na := a.DestroyRadius(center, 5, 0.5)
	nb := b.DestroyRadius(center, 5, 0.5)
	if na != nb {
		t.Fatalf("same seed produced different counts: %d vs %d", na, nb)
	}

	w, h := a.GridSize()
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			if a.CellAt(ix, iy) != b.CellAt(ix, iy) {
				t.Fatalf("grids diverged at (%d,%d)", ix, iy)
			}
		}
	}
}

func TestDestroyRadiusCountsOnlyNewDestruction(t *testing.T) {
	m := newTestSurface(t, 42)

	center := core.V(20, 10)
	first := m.DestroyRadius(center, 5, 0.3)
	if first == 0 {
		t.Fatal("expected first crater to destroy cells")
	}

	// The inner zone of a repeat blast is already destroyed; the count must
	// not include those cells again.
	second := m.DestroyRadius(center, 5, 0.3)
	if second >= first {
		t.Errorf("repeat crater destroyed %d cells, want fewer than %d", second, first)
	}

	if got := m.DestroyedCells(); got != first+second {
		t.Errorf("DestroyedCells = %d, want %d", got, first+second)
	}
}

func TestDestroyRadiusFiresRenderSink(t *testing.T) {
	fired := 0
	m, err := NewSurfaceManager(testGeometry(), 1, config.DefaultSpacepoolConfig().Crater, 1, func() {
		fired++
	})
	if err != nil {
		t.Fatalf("NewSurfaceManager: %v", err)
	}

	m.DestroyRadius(core.V(20, 10), 4, 0.3)
	if fired != 1 {
		t.Errorf("render sink fired %d times, want 1", fired)
	}

	// A blast over the void destroys nothing and must not notify.
	m.DestroyRadius(core.V(200, 200), 4, 0.3)
	if fired != 1 {
		t.Errorf("render sink fired for an empty blast")
	}
}

func TestPocketClearance(t *testing.T) {
	m := newTestSurface(t, 1)

	// Distance to the nearest pocket boundary, not its center.
	p := core.V(10, 3)
	want := p.DistTo(core.V(3, 3)) - 2 // pocket radius 2
	if got := m.PocketClearance(p); math.Abs(got-want) > 1e-9 {
		t.Errorf("PocketClearance = %.3f, want %.3f", got, want)
	}

	// Inside a pocket the clearance is negative.
	if got := m.PocketClearance(core.V(3, 3)); got >= 0 {
		t.Errorf("clearance inside pocket = %.3f, want negative", got)
	}
}

func TestPocketClearanceNoPockets(t *testing.T) {
	geo := testGeometry()
	geo.Pockets = nil
	m, err := NewSurfaceManager(geo, 1, config.DefaultSpacepoolConfig().Crater, 1, func() {})
	if err != nil {
		t.Fatalf("NewSurfaceManager: %v", err)
	}

	// Unbounded clearance: larger than any distance on the table.
	if got := m.PocketClearance(core.V(20, 10)); got < geo.Bounds.W {
		t.Errorf("clearance with no pockets = %v, want unbounded", got)
	}
}
