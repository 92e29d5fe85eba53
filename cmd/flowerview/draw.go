package main

import (
	"fmt"
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/geom"
)

// Styles
var (
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleNotice = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite).Bold(true)
)

// Colors of the pixel canvas
var (
	colorOffMap  = colorful.Color{}
	colorLand    = colorful.Color{R: 0.16, G: 0.30, B: 0.14}
	colorWater   = colorful.Color{R: 0.09, G: 0.18, B: 0.36}
	colorOutline = colorful.Color{R: 0.55, G: 0.55, B: 0.55}
	colorText    = colorful.Color{R: 1, G: 1, B: 1}
	colorCenter  = colorful.Color{R: 1, G: 220.0 / 255, B: 0}
)

// cellMeasurer measures text in terminal columns. A text row spans two
// pixel rows, since every cell shows two pixels stacked with '▀'.
type cellMeasurer struct{}

func (cellMeasurer) Faces() int { return 1 }

func (cellMeasurer) Measure(_ int, s string) float64 {
	return float64(runewidth.StringWidth(s))
}

func (cellMeasurer) LineHeight(int) float64 { return 2 }

// canvas is the half-block pixel grid: w columns by h pixel rows.
type canvas struct {
	w, h int
	px   []colorful.Color
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, px: make([]colorful.Color, w*h)}
}

func (c *canvas) at(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return colorOffMap
	}
	return c.px[y*c.w+x]
}

func (c *canvas) set(x, y int, col colorful.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.px[y*c.w+x] = col
}

// blend mixes col over the pixel at (x, y) with opacity a in [0, 1].
func (c *canvas) blend(x, y int, col colorful.Color, a float64) {
	c.set(x, y, c.at(x, y).BlendRgb(col, a))
}

func (c *canvas) copyFrom(o *canvas) {
	copy(c.px, o.px)
}

// paintBase fills the canvas with the map under v: sampled from colored
// when given, else land and water tints from the land mask.
func paintBase(c *canvas, v geom.Viewport, sites bloom.Sites, land []bool, colored image.Image) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			m := v.Unproject(geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			mx, my := int(math.Floor(m.X)), int(math.Floor(m.Y))
			if mx < 0 || my < 0 || mx >= sites.Width || my >= sites.Height {
				c.set(x, y, colorOffMap)
				continue
			}
			if colored != nil {
				b := colored.Bounds()
				px := b.Min.X + mx*b.Dx()/sites.Width
				py := b.Min.Y + my*b.Dy()/sites.Height
				if col, ok := colorful.MakeColor(colored.At(px, py)); ok {
					c.set(x, y, col)
					continue
				}
			}
			if land[my*sites.Width+mx] {
				c.set(x, y, colorLand)
			} else {
				c.set(x, y, colorWater)
			}
		}
	}
}

// landMask marks the land cells of sites in a row-major grid.
func landMask(sites bloom.Sites) []bool {
	mask := make([]bool, sites.Width*sites.Height)
	for _, cell := range sites.Land {
		mask[cell.Y*sites.Width+cell.X] = true
	}
	return mask
}

func glyphColor(g bloom.Glyph) (colorful.Color, float64) {
	col, _ := colorful.MakeColor(g.Color)
	return col, float64(g.Color.A) / 255
}

// plotGlyph puts a glyph on the canvas. Glyphs smaller than a pixel are a
// single dot; larger ones get their petals as a ring with a yellow center.
func plotGlyph(c *canvas, p geom.Point, size float64, g bloom.Glyph) {
	col, a := glyphColor(g)
	cx, cy := int(math.Floor(p.X)), int(math.Floor(p.Y))
	if size < 3 {
		c.blend(cx, cy, col, a)
		return
	}
	r := int(math.Round(size / 2))
	for i := 0; i < g.Petals; i++ {
		angle := g.Rotation + 2*math.Pi*float64(i)/float64(g.Petals)
		c.blend(cx-int(math.Round(math.Sin(angle)*float64(r))), cy+int(math.Round(math.Cos(angle)*float64(r))), col, a)
	}
	c.set(cx, cy, colorCenter)
}

// plotRegion draws the outline of the region.
func plotRegion(c *canvas, v geom.Viewport, reg geom.Region) {
	switch reg := reg.(type) {
	case geom.Circle:
		center := v.Project(reg.Center)
		r := reg.Radius * v.Scale
		steps := int(math.Max(16, 2*math.Pi*r))
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			c.set(int(math.Floor(center.X+r*math.Cos(a))), int(math.Floor(center.Y+r*math.Sin(a))), colorOutline)
		}
	case geom.Box:
		rect := v.ProjectRect(reg.Rect)
		x0, y0 := int(math.Floor(rect.X)), int(math.Floor(rect.Y))
		x1, y1 := int(math.Floor(rect.Right())), int(math.Floor(rect.Bottom()))
		for x := x0; x <= x1; x++ {
			c.set(x, y0, colorOutline)
			c.set(x, y1, colorOutline)
		}
		for y := y0; y <= y1; y++ {
			c.set(x0, y, colorOutline)
			c.set(x1, y, colorOutline)
		}
	}
}

func tcColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// drawCanvas shows c on rows [0, c.h/2) of the screen.
func drawCanvas(s tcell.Screen, c *canvas) {
	for row := 0; row < c.h/2; row++ {
		for x := 0; x < c.w; x++ {
			top, bottom := c.at(x, 2*row), c.at(x, 2*row+1)
			s.SetContent(x, row, '▀', nil, tcell.StyleDefault.Foreground(tcColor(top)).Background(tcColor(bottom)))
		}
	}
}

// drawHeadline writes h over the canvas. Text is white faded into the
// pixels beneath it by the headline's opacity.
func drawHeadline(s tcell.Screen, c *canvas, h bloom.HeadlineView) {
	if h.Alpha == 0 {
		return
	}
	a := float64(h.Alpha) / 255
	for i, line := range h.Lines {
		row := int(math.Floor(h.Y+float64(i)*h.LineHeight)) / 2
		if row < 0 || row >= c.h/2 {
			continue
		}
		x := int(math.Round(h.X))
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if x >= 0 && x+w <= c.w {
				bg := c.at(x, 2*row).BlendRgb(c.at(x, 2*row+1), 0.5)
				style := tcell.StyleDefault.Background(tcColor(bg)).Foreground(tcColor(bg.BlendRgb(colorText, a)))
				s.SetContent(x, row, r, nil, style)
			}
			x += w
		}
	}
}

// drawCentered writes s centered on row y.
func drawCentered(s tcell.Screen, w, y int, text string, style tcell.Style) {
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	drawString(s, x, y, text, style)
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// truncate cuts s to at most maxWidth columns.
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

func statusLine(st bloom.Stats, paused bool) string {
	s := fmt.Sprintf(" births %d/%d  frozen %d  headlines %d shown, %d queued, %d dropped",
		st.Spawned, st.Total, st.Frozen, st.Shown, st.Pending, st.Dropped)
	if paused {
		s += "  PAUSED"
	}
	return s
}

const helpText = "p:Pause  r:Region  s:Status  q:Quit "
