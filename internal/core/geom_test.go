package core

import (
	"math"
	"testing"
)

func TestVec2Ops(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, expected (4, 2)", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, expected (2, 6)", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale(2) = %v, expected (6, 8)", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot() = %f, expected -5", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len() = %f, expected 5", got)
	}
	if got := V(0, 0).DistTo(a); got != 5 {
		t.Errorf("DistTo() = %f, expected 5", got)
	}
}

func TestVec2Normalized(t *testing.T) {
	n := V(3, 4).Normalized()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("Normalized().Len() = %f, expected 1", n.Len())
	}

	// Zero vector normalizes to itself rather than NaN.
	if got := V(0, 0).Normalized(); got != (Vec2{}) {
		t.Errorf("zero Normalized() = %v, expected zero vector", got)
	}
}

func TestVec2Angle(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec2
		expected float64
	}{
		{"east", V(1, 0), 0},
		{"south", V(0, 1), math.Pi / 2},
		{"west", V(-1, 0), math.Pi},
		{"north", V(0, -1), -math.Pi / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Angle(); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Angle() = %f, expected %f", got, tc.expected)
			}
			// FromAngle should round-trip back to the unit vector.
			u := FromAngle(tc.expected)
			if u.Sub(tc.v.Normalized()).Len() > 1e-9 {
				t.Errorf("FromAngle(%f) = %v, expected %v", tc.expected, u, tc.v)
			}
		})
	}
}

func TestRectFContains(t *testing.T) {
	r := RectF{X: 10, Y: 10, W: 20, H: 15}

	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"inside", V(15, 15), true},
		{"top-left corner", V(10, 10), true},
		{"bottom-right edge (exclusive)", V(30, 25), false},
		{"outside left", V(5, 15), false},
		{"outside right", V(35, 15), false},
		{"outside top", V(15, 5), false},
		{"outside bottom", V(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestRectFEdges(t *testing.T) {
	r := RectF{X: 5, Y: 10, W: 20, H: 14}

	if r.Right() != 25 {
		t.Errorf("Right() = %f, expected 25", r.Right())
	}
	if r.Bottom() != 24 {
		t.Errorf("Bottom() = %f, expected 24", r.Bottom())
	}
	if c := r.Center(); c != V(15, 17) {
		t.Errorf("Center() = %v, expected (15, 17)", c)
	}
}

func TestRectFInset(t *testing.T) {
	r := RectF{X: 0, Y: 0, W: 20, H: 10}
	in := r.Inset(2)

	if in.X != 2 || in.Y != 2 || in.W != 16 || in.H != 6 {
		t.Errorf("Inset(2) = %v, expected {2 2 16 6}", in)
	}
	if in.Contains(V(1, 5)) {
		t.Error("point inside original but outside inset should not be contained")
	}
	if !in.Contains(V(10, 5)) {
		t.Error("center should remain contained after inset")
	}
}

func TestCircleContains(t *testing.T) {
	c := Circle{Center: V(10, 10), Radius: 3}

	if !c.Contains(V(10, 10)) {
		t.Error("center should be contained")
	}
	if !c.Contains(V(13, 10)) {
		t.Error("point on the boundary should be contained")
	}
	if c.Contains(V(13.01, 10)) {
		t.Error("point just outside should not be contained")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
