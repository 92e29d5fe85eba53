package geom

import "math"

// Viewport maps stable map-space coordinates onto a screen of known size.
// The map is scaled uniformly to fit and centred.
type Viewport struct {
	Width, Height    float64 // Screen size
	Scale            float64
	OffsetX, OffsetY float64
}

// Fit computes the viewport for a map of mapW x mapH shown on a screen of
// viewW x viewH, preserving aspect ratio.
func Fit(viewW, viewH, mapW, mapH float64) Viewport {
	v := Viewport{Width: viewW, Height: viewH, Scale: 1}
	if mapW <= 0 || mapH <= 0 || viewW <= 0 || viewH <= 0 {
		return v
	}
	v.Scale = math.Min(viewW/mapW, viewH/mapH)
	v.OffsetX = (viewW - mapW*v.Scale) / 2
	v.OffsetY = (viewH - mapH*v.Scale) / 2
	return v
}

// Project maps a map-space point to screen space.
func (v Viewport) Project(p Point) Point {
	return Point{p.X*v.Scale + v.OffsetX, p.Y*v.Scale + v.OffsetY}
}

// ProjectRect maps a map-space rectangle to screen space.
func (v Viewport) ProjectRect(r Rect) Rect {
	tl := v.Project(Point{r.X, r.Y})
	return Rect{tl.X, tl.Y, r.W * v.Scale, r.H * v.Scale}
}

// Unproject maps a screen point back to map space.
func (v Viewport) Unproject(p Point) Point {
	s := v.Scale
	if s == 0 {
		s = 1
	}
	return Point{(p.X - v.OffsetX) / s, (p.Y - v.OffsetY) / s}
}
