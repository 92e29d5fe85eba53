package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/ha1tch/flowermap/pkg/geom"
)

// ellipseSegments is the polygon resolution of small ellipses.
const ellipseSegments = 24

var centerColor = color.NRGBA{255, 220, 0, 255}

// shaper fills vector paths into a destination. The rasterizer and its
// coverage mask are sized to the bounding box of each shape and reused.
type shaper struct {
	r    *vector.Rasterizer
	mask []uint8
}

func newShaper() *shaper {
	return &shaper{r: vector.NewRasterizer(0, 0)}
}

func (s *shaper) alpha(size image.Point) *image.Alpha {
	n := size.X * size.Y
	if cap(s.mask) < n {
		s.mask = make([]uint8, n)
	}
	return &image.Alpha{Pix: s.mask[:n], Stride: size.X, Rect: image.Rectangle{Max: size}}
}

// begin prepares the rasterizer for a shape covering bounds in dst space and
// returns the clipped destination rectangle. ok is false when nothing of
// the shape is visible.
func (s *shaper) begin(dst draw.Image, bounds image.Rectangle) (image.Rectangle, bool) {
	clip := bounds.Intersect(dst.Bounds())
	if clip.Empty() {
		return clip, false
	}
	s.reset(bounds)
	return clip, true
}

// reset clears the path. Src makes the rasterizer overwrite every mask pixel.
func (s *shaper) reset(bounds image.Rectangle) {
	s.r.Reset(bounds.Dx(), bounds.Dy())
	s.r.DrawOp = draw.Src
}

// fill rasterizes the current path into the mask and composites c through
// it onto the visible part of the shape.
func (s *shaper) fill(dst draw.Image, bounds, clip image.Rectangle, c color.Color) {
	mask := s.alpha(bounds.Size())
	s.r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, clip, image.NewUniform(c), image.Point{}, mask, clip.Min.Sub(bounds.Min), draw.Over)
}

// ellipsePath adds a closed ellipse centred at (cx, cy) with radii rx, ry,
// rotated by angle, offset by -origin. reverse winds it the other way so
// it can cut a hole.
func (s *shaper) ellipsePath(origin geom.Point, cx, cy, rx, ry, angle float64, segments int, reverse bool) {
	sin, cos := math.Sincos(angle)
	for i := 0; i <= segments; i++ {
		k := i
		if reverse {
			k = segments - i
		}
		t := 2 * math.Pi * float64(k) / float64(segments)
		ex, ey := rx*math.Cos(t), ry*math.Sin(t)
		x := float32(cx + ex*cos - ey*sin - origin.X)
		y := float32(cy + ex*sin + ey*cos - origin.Y)
		if i == 0 {
			s.r.MoveTo(x, y)
		} else {
			s.r.LineTo(x, y)
		}
	}
	s.r.ClosePath()
}

// flower draws a flower at p: petals ellipses of length size and width
// size/2, fanned evenly from angle, under a yellow center of diameter
// size/2.
func (s *shaper) flower(dst draw.Image, p geom.Point, size, angle float64, petals int, petal color.Color) {
	if size <= 0 || petals < 1 {
		return
	}
	reach := math.Ceil(size) + 1
	bounds := image.Rect(int(math.Floor(p.X-reach)), int(math.Floor(p.Y-reach)), int(math.Ceil(p.X+reach)), int(math.Ceil(p.Y+reach)))
	clip, ok := s.begin(dst, bounds)
	if !ok {
		return
	}
	origin := geom.Point{X: float64(bounds.Min.X), Y: float64(bounds.Min.Y)}

	for i := 0; i < petals; i++ {
		a := angle + 2*math.Pi*float64(i)/float64(petals)
		// Petal axis points along +y before rotation.
		cx := p.X - math.Sin(a)*size/2
		cy := p.Y + math.Cos(a)*size/2
		s.ellipsePath(origin, cx, cy, size/4, size/2, a, ellipseSegments, false)
	}
	s.fill(dst, bounds, clip, petal)

	s.reset(bounds)
	s.ellipsePath(origin, p.X, p.Y, size/4, size/4, 0, ellipseSegments, false)
	s.fill(dst, bounds, clip, centerColor)
}

// ring strokes a circle of radius r around c with the given line width.
func (s *shaper) ring(dst draw.Image, c geom.Point, r, width float64, col color.Color) {
	outer := r + width/2
	inner := math.Max(r-width/2, 0)
	reach := math.Ceil(outer) + 1
	bounds := image.Rect(int(math.Floor(c.X-reach)), int(math.Floor(c.Y-reach)), int(math.Ceil(c.X+reach)), int(math.Ceil(c.Y+reach)))
	clip, ok := s.begin(dst, bounds)
	if !ok {
		return
	}
	origin := geom.Point{X: float64(bounds.Min.X), Y: float64(bounds.Min.Y)}
	segments := int(math.Max(32, math.Min(512, outer)))
	s.ellipsePath(origin, c.X, c.Y, outer, outer, 0, segments, false)
	if inner > 0 {
		s.ellipsePath(origin, c.X, c.Y, inner, inner, 0, segments, true)
	}
	s.fill(dst, bounds, clip, col)
}

// frame strokes the outline of rect with the given line width.
func (s *shaper) frame(dst draw.Image, rect geom.Rect, width float64, col color.Color) {
	h := width / 2
	bounds := image.Rect(int(math.Floor(rect.X-h))-1, int(math.Floor(rect.Y-h))-1,
		int(math.Ceil(rect.Right()+h))+1, int(math.Ceil(rect.Bottom()+h))+1)
	clip, ok := s.begin(dst, bounds)
	if !ok {
		return
	}
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	rectPath := func(x0, y0, x1, y1 float64, reverse bool) {
		pts := [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
		if reverse {
			pts[1], pts[3] = pts[3], pts[1]
		}
		s.r.MoveTo(float32(pts[0][0]-ox), float32(pts[0][1]-oy))
		for _, p := range pts[1:] {
			s.r.LineTo(float32(p[0]-ox), float32(p[1]-oy))
		}
		s.r.ClosePath()
	}
	rectPath(rect.X-h, rect.Y-h, rect.Right()+h, rect.Bottom()+h, false)
	if rect.W > width && rect.H > width {
		rectPath(rect.X+h, rect.Y+h, rect.Right()-h, rect.Bottom()-h, true)
	}
	s.fill(dst, bounds, clip, col)
}
