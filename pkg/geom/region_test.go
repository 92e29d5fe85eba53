package geom

import (
	"math"
	"testing"
)

func TestEstimateCircle(t *testing.T) {
	cells := []Cell{{10, 10}, {30, 10}, {10, 50}, {20, 30}}

	c, ok := EstimateCircle(cells, 1.05)
	if !ok {
		t.Fatal("Expected a circle for non-empty cells")
	}
	if c.Center != (Point{20, 30}) {
		t.Errorf("Expected centre (20, 30), got %v", c.Center)
	}
	// Larger dimension is 40, so radius = 20 * 1.05.
	if math.Abs(c.Radius-21) > 1e-9 {
		t.Errorf("Expected radius 21, got %.4f", c.Radius)
	}
}

func TestEstimateEmpty(t *testing.T) {
	if _, ok := EstimateCircle(nil, 1.05); ok {
		t.Error("Empty cells should not produce a circle")
	}
	if _, ok := EstimateBox(nil); ok {
		t.Error("Empty cells should not produce a box")
	}
	if got := Candidates([]Cell{{1, 1}}, nil); len(got) != 0 {
		t.Errorf("Nil region should give no candidates, got %d", len(got))
	}
}

func TestEstimateBox(t *testing.T) {
	b, ok := EstimateBox([]Cell{{5, 7}, {15, 9}, {8, 20}})
	if !ok {
		t.Fatal("Expected a box")
	}
	want := Rect{5, 7, 10, 13}
	if b.Rect != want {
		t.Errorf("Expected %v, got %v", want, b.Rect)
	}
	if !b.Contains(Point{15, 20}) {
		t.Error("Box edges should be inclusive")
	}
	if b.Contains(Point{16, 20}) {
		t.Error("Point right of box should be outside")
	}
}

func TestCandidatesCircle(t *testing.T) {
	region := Circle{Center: Point{50, 50}, Radius: 10}
	water := []Cell{{50, 50}, {55, 50}, {60, 50}, {90, 90}}

	got := Candidates(water, region)
	if len(got) != 2 {
		t.Fatalf("Expected 2 candidates, got %d (%v)", len(got), got)
	}
	for _, c := range got {
		if c.Point().Dist(region.Center) < region.Radius {
			t.Errorf("Candidate %v lies inside the region", c)
		}
	}
}

func TestClearance(t *testing.T) {
	v := Fit(200, 200, 100, 100) // scale 2, no offset

	circle := Circle{Center: Point{50, 50}, Radius: 10}
	if got := circle.Clearance(Point{80, 50}, v); math.Abs(got-40) > 1e-9 {
		t.Errorf("Circle clearance expected 40, got %.3f", got)
	}

	box := Box{Rect{40, 40, 20, 20}}
	if got := box.Clearance(Point{80, 50}, v); math.Abs(got-40) > 1e-9 {
		t.Errorf("Box clearance expected 40, got %.3f", got)
	}
	if got := box.Clearance(Point{50, 50}, v); got != 0 {
		t.Errorf("Inside box clearance expected 0, got %.3f", got)
	}
}
