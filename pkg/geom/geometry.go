// Geometric primitives shared by the classifier, the placement engine and
// the renderers.

package geom

import "math"

// Cell is an integer coordinate in mask (map) space.
type Cell struct {
	X, Y int
}

// Point returns the cell as a floating point coordinate.
func (c Cell) Point() Point {
	return Point{float64(c.X), float64(c.Y)}
}

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect represents an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64 // Top-left
	W, H float64 // Full width and height
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps reports whether a and b intersect once both are grown by pad on
// every side. Rectangles closer than pad, or touching, count as overlapping.
func Overlaps(a, b Rect, pad float64) bool {
	return !(a.Right()+pad < b.X ||
		a.X > b.Right()+pad ||
		a.Bottom()+pad < b.Y ||
		a.Y > b.Bottom()+pad)
}

// Occupancy tracks rectangles already claimed on screen so that new ones can
// be tested for collisions.
type Occupancy struct {
	obstacles []Rect
	pad       float64
}

// NewOccupancy creates an Occupancy with initial obstacles.
func NewOccupancy(pad float64, rects ...Rect) *Occupancy {
	obstacles := make([]Rect, len(rects))
	copy(obstacles, rects)
	return &Occupancy{obstacles: obstacles, pad: pad}
}

// Fits reports whether r can be placed without touching any obstacle.
func (o *Occupancy) Fits(r Rect) bool {
	for _, obs := range o.obstacles {
		if Overlaps(r, obs, o.pad) {
			return false
		}
	}
	return true
}

// Add claims r.
func (o *Occupancy) Add(r Rect) {
	o.obstacles = append(o.obstacles, r)
}

// Len returns the number of claimed rectangles.
func (o *Occupancy) Len() int {
	return len(o.obstacles)
}

// Clamp limits v to [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
