package geom

import (
	"math"
	"testing"
)

func TestOverlapsPadded(t *testing.T) {
	a := Rect{0, 0, 100, 20}
	b := Rect{200, 0, 100, 20}

	tests := []struct {
		name string
		cand Rect
		want bool
	}{
		{"straddles first", Rect{50, 0, 100, 20}, true},
		// Padding applies on every side, so a rectangle flush against b at
		// x=300 overlaps even though the raw rectangles only touch. The
		// first clear position is past 306; keep it that way.
		{"flush against second", Rect{300, 0, 100, 20}, true},
		{"inside padding of second", Rect{305, 0, 100, 20}, true},
		{"clear of both", Rect{310, 0, 100, 20}, false},
		{"below with gap", Rect{0, 40, 100, 20}, false},
		{"below within padding", Rect{0, 25, 100, 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.cand, a, 6) || Overlaps(tt.cand, b, 6)
			if got != tt.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.cand, got, tt.want)
			}
		})
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	a := Rect{10, 10, 50, 30}
	b := Rect{62, 45, 10, 10}
	for _, pad := range []float64{0, 1, 6, 20} {
		if Overlaps(a, b, pad) != Overlaps(b, a, pad) {
			t.Errorf("pad %.0f: overlap not symmetric", pad)
		}
	}
}

func TestOccupancy(t *testing.T) {
	occ := NewOccupancy(6, Rect{0, 0, 100, 20}, Rect{200, 0, 100, 20})

	if occ.Fits(Rect{50, 0, 100, 20}) {
		t.Errorf("Rect over an obstacle should not fit")
	}
	free := Rect{320, 0, 100, 20}
	if !occ.Fits(free) {
		t.Errorf("Rect clear of obstacles should fit")
	}
	occ.Add(free)
	if occ.Len() != 3 {
		t.Errorf("Expected 3 obstacles, got %d", occ.Len())
	}
	if occ.Fits(Rect{330, 5, 10, 10}) {
		t.Errorf("Rect inside a claimed rect should not fit")
	}
}

func TestFitAndProject(t *testing.T) {
	v := Fit(1000, 500, 200, 200)

	if v.Scale != 2.5 {
		t.Fatalf("Expected scale 2.5, got %.3f", v.Scale)
	}
	if v.OffsetX != 250 || v.OffsetY != 0 {
		t.Errorf("Expected offset (250, 0), got (%.1f, %.1f)", v.OffsetX, v.OffsetY)
	}

	p := v.Project(Point{100, 100})
	if p.X != 500 || p.Y != 250 {
		t.Errorf("Centre should project to screen centre, got %v", p)
	}

	// Projection is a pure function of stored state.
	for i := 0; i < 3; i++ {
		if q := v.Project(Point{100, 100}); q != p {
			t.Errorf("Projection changed between calls: %v vs %v", q, p)
		}
	}

	back := v.Unproject(p)
	if math.Abs(back.X-100) > 1e-9 || math.Abs(back.Y-100) > 1e-9 {
		t.Errorf("Unproject should invert Project, got %v", back)
	}
}

func TestFitDegenerate(t *testing.T) {
	v := Fit(800, 600, 0, 0)
	if v.Scale != 1 || v.OffsetX != 0 || v.OffsetY != 0 {
		t.Errorf("Degenerate map should give identity viewport, got %+v", v)
	}
}
