package geom

import "math"

// Region is the exclusion area around the land mass that headlines keep
// clear of. Coordinates are in map space.
type Region interface {
	// Contains reports whether p lies inside the region.
	Contains(p Point) bool
	// Clearance returns the screen-space distance from p to the region
	// boundary under v. Points inside the region report zero or less.
	Clearance(p Point, v Viewport) float64
	// Bounds returns the map-space bounding rectangle of the region.
	Bounds() Rect
}

// Circle is a circular exclusion region.
type Circle struct {
	Center Point
	Radius float64
}

func (c Circle) Contains(p Point) bool {
	return p.Dist(c.Center) < c.Radius
}

func (c Circle) Clearance(p Point, v Viewport) float64 {
	return v.Project(p).Dist(v.Project(c.Center)) - c.Radius*v.Scale
}

func (c Circle) Bounds() Rect {
	return Rect{c.Center.X - c.Radius, c.Center.Y - c.Radius, 2 * c.Radius, 2 * c.Radius}
}

// Box is a rectangular exclusion region; edges are inclusive.
type Box struct {
	Rect
}

func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.Right() && p.Y >= b.Y && p.Y <= b.Bottom()
}

func (b Box) Clearance(p Point, v Viewport) float64 {
	sp := v.Project(p)
	sr := v.ProjectRect(b.Rect)
	dx := math.Max(math.Max(sr.X-sp.X, sp.X-sr.Right()), 0)
	dy := math.Max(math.Max(sr.Y-sp.Y, sp.Y-sr.Bottom()), 0)
	return math.Hypot(dx, dy)
}

func (b Box) Bounds() Rect {
	return b.Rect
}

// Extent returns the bounding box of cells as min/max coordinates.
// ok is false for an empty set.
func Extent(cells []Cell) (minX, minY, maxX, maxY int, ok bool) {
	if len(cells) == 0 {
		return 0, 0, 0, 0, false
	}

	minX, minY = cells[0].X, cells[0].Y
	maxX, maxY = cells[0].X, cells[0].Y

	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	return minX, minY, maxX, maxY, true
}

// EstimateCircle returns the circle centred on the bounding box of cells with
// radius half the larger box dimension times padding. ok is false when cells
// is empty.
func EstimateCircle(cells []Cell, padding float64) (Circle, bool) {
	minX, minY, maxX, maxY, ok := Extent(cells)
	if !ok {
		return Circle{}, false
	}
	w := float64(maxX - minX)
	h := float64(maxY - minY)
	return Circle{
		Center: Point{float64(minX+maxX) / 2, float64(minY+maxY) / 2},
		Radius: math.Max(w, h) / 2 * padding,
	}, true
}

// EstimateBox returns the unpadded bounding box of cells. ok is false when
// cells is empty.
func EstimateBox(cells []Cell) (Box, bool) {
	minX, minY, maxX, maxY, ok := Extent(cells)
	if !ok {
		return Box{}, false
	}
	return Box{Rect{float64(minX), float64(minY), float64(maxX - minX), float64(maxY - minY)}}, true
}

// Candidates returns the cells lying outside region. A nil region yields no
// candidates: without a land mass there is nothing to anchor against.
func Candidates(cells []Cell, region Region) []Cell {
	if region == nil {
		return nil
	}
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if !region.Contains(c.Point()) {
			out = append(out, c)
		}
	}
	return out
}
