package spacepool

import (
	"testing"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/core"
)

func testGeometry() TableGeometry {
	bounds := core.RectF{X: 0, Y: 0, W: 40, H: 20}
	return TableGeometry{
		Bounds:       bounds,
		CornerRadius: 3,
		Playable:     bounds.Inset(2),
		Pockets: []core.Circle{
			{Center: core.V(3, 3), Radius: 2},
			{Center: core.V(37, 17), Radius: 2},
		},
	}
}

func TestNewSpatialGridRejectsInvalidInput(t *testing.T) {
	geo := testGeometry()

	if _, err := NewSpatialGrid(geo, 0); err == nil {
		t.Error("expected error for zero cell size")
	}
	if _, err := NewSpatialGrid(geo, -1); err == nil {
		t.Error("expected error for negative cell size")
	}

	empty := geo
	empty.Bounds = core.RectF{}
	if _, err := NewSpatialGrid(empty, 1); err == nil {
		t.Error("expected error for empty bounds")
	}
}

func TestGridClassification(t *testing.T) {
	grid, err := NewSpatialGrid(testGeometry(), 1)
	if err != nil {
		t.Fatalf("NewSpatialGrid: %v", err)
	}

	tests := []struct {
		name string
		p    core.Vec2
		want Cell
	}{
		{"table center", core.V(20, 10), CellSurface},
		{"cushion", core.V(20, 0.5), CellBarrier},
		{"pocket center", core.V(3, 3), CellPocket},
		{"far outside", core.V(200, 200), CellEmpty},
		{"outside corner radius", core.V(0.2, 0.2), CellEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.Classify(tt.p); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestGridOutOfBoundsIsEmpty(t *testing.T) {
	grid, err := NewSpatialGrid(testGeometry(), 1)
	if err != nil {
		t.Fatalf("NewSpatialGrid: %v", err)
	}

	for _, p := range []core.Vec2{
		core.V(-1, 10),
		core.V(41, 10),
		core.V(20, -5),
		core.V(20, 25),
	} {
		if got := grid.Classify(p); got != CellEmpty {
			t.Errorf("Classify(%v) = %v, want CellEmpty", p, got)
		}
	}
}

func TestMarkDestroyedOnlyAffectsSurface(t *testing.T) {
	grid, err := NewSpatialGrid(testGeometry(), 1)
	if err != nil {
		t.Fatalf("NewSpatialGrid: %v", err)
	}

	surface := core.V(20, 10)
	if !grid.MarkDestroyed(surface) {
		t.Error("expected surface cell to be destroyable")
	}
	if got := grid.Classify(surface); got != CellDestroyed {
		t.Errorf("after destroy: Classify = %v, want CellDestroyed", got)
	}

	// Destroying an already destroyed cell is a no-op.
	if grid.MarkDestroyed(surface) {
		t.Error("destroyed cell should not be destroyable again")
	}

	// Barriers, pockets, and the void are immune.
	for _, p := range []core.Vec2{
		core.V(20, 0.5), // cushion
		core.V(3, 3),    // pocket
		core.V(-5, -5),  // outside
	} {
		before := grid.Classify(p)
		if grid.MarkDestroyed(p) {
			t.Errorf("cell %v (%v) should not be destroyable", p, before)
		}
		if got := grid.Classify(p); got != before {
			t.Errorf("cell %v changed from %v to %v", p, before, got)
		}
	}
}

func TestGridHazardQueries(t *testing.T) {
	grid, err := NewSpatialGrid(testGeometry(), 1)
	if err != nil {
		t.Fatalf("NewSpatialGrid: %v", err)
	}

	if !grid.IsWalkable(core.V(20, 10)) {
		t.Error("table center should be walkable")
	}
	if grid.IsOpenHazard(core.V(20, 10)) {
		t.Error("intact surface is not a hazard")
	}
	if !grid.IsOpenHazard(core.V(3, 3)) {
		t.Error("pocket should be an open hazard")
	}

	grid.MarkDestroyed(core.V(20, 10))
	if !grid.IsOpenHazard(core.V(20, 10)) {
		t.Error("destroyed cell should be an open hazard")
	}
	if grid.IsWalkable(core.V(20, 10)) {
		t.Error("destroyed cell should not be walkable")
	}
}
