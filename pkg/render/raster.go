// Package render draws simulation frames onto images: the background, the
// colored map with its flowers, swaying glyphs, headlines and the
// completion notice.
package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/geom"
)

// Options configures a Raster.
type Options struct {
	Width, Height int
	MapWidth      int // Map size in cells; flowers are kept at this resolution
	MapHeight     int
	ShowRegion    bool
	NoticeSize    float64 // Point size of the completion notice
}

// DefaultOptions returns a 1280x800 canvas.
func DefaultOptions() Options {
	return Options{Width: 1280, Height: 800, NoticeSize: 24}
}

// Colors used in rendering
var (
	colorBackdrop = color.RGBA{0, 0, 0, 255}
	colorOutline  = color.RGBA{0, 0, 0, 255}
	colorNotice   = color.RGBA{0, 0, 0, 255}
)

// Raster is a drawing surface for frames. It keeps frozen flowers in a
// layer at map resolution, as well as a copy of that layer at the current
// screen scale. Not safe for concurrent use.
type Raster struct {
	opts   Options
	assets Assets
	fonts  *Fonts
	notice font.Face
	shapes *shaper

	canvas   *image.RGBA
	backdrop *image.RGBA // background and colored map at screen scale
	flowers  *image.RGBA // map space
	screen   *image.RGBA // flowers at screen scale
	view     geom.Viewport
}

// NewRaster creates a surface of opts.Width x opts.Height.
func NewRaster(a Assets, f *Fonts, opts Options) (*Raster, error) {
	if f == nil {
		return nil, errors.New("render: fonts are required")
	}
	if opts.MapWidth <= 0 || opts.MapHeight <= 0 {
		if a.Colored == nil {
			return nil, errors.New("render: map size unknown")
		}
		sz := a.Colored.Bounds().Size()
		opts.MapWidth, opts.MapHeight = sz.X, sz.Y
	}
	if opts.NoticeSize <= 0 {
		opts.NoticeSize = 24
	}
	notice, err := newFace(embedded[0].ttf, opts.NoticeSize)
	if err != nil {
		return nil, err
	}

	r := &Raster{
		opts:    opts,
		assets:  a,
		fonts:   f,
		notice:  notice,
		shapes:  newShaper(),
		flowers: image.NewRGBA(image.Rect(0, 0, opts.MapWidth, opts.MapHeight)),
	}
	r.Resize(opts.Width, opts.Height)
	return r, nil
}

// Bounds returns the canvas rectangle.
func (r *Raster) Bounds() image.Rectangle { return r.canvas.Bounds() }

// Viewport returns the map fit for the current canvas size.
func (r *Raster) Viewport() geom.Viewport { return r.view }

// Resize reallocates the canvas and rescales the cached layers.
func (r *Raster) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r.opts.Width, r.opts.Height = w, h
	r.view = geom.Fit(float64(w), float64(h), float64(r.opts.MapWidth), float64(r.opts.MapHeight))
	bounds := image.Rect(0, 0, w, h)
	r.canvas = image.NewRGBA(bounds)

	r.backdrop = image.NewRGBA(bounds)
	draw.Draw(r.backdrop, bounds, image.NewUniform(colorBackdrop), image.Point{}, draw.Src)
	if bg := r.assets.Background; bg != nil {
		draw.CatmullRom.Scale(r.backdrop, bounds, bg, bg.Bounds(), draw.Over, nil)
	}
	if m := r.assets.Colored; m != nil {
		draw.CatmullRom.Scale(r.backdrop, r.mapRect(), m, m.Bounds(), draw.Over, nil)
	}

	r.screen = image.NewRGBA(bounds)
	draw.ApproxBiLinear.Scale(r.screen, r.mapRect(), r.flowers, r.flowers.Bounds(), draw.Over, nil)
}

// mapRect is the screen rectangle covered by the map.
func (r *Raster) mapRect() image.Rectangle {
	mr := r.view.ProjectRect(geom.Rect{W: float64(r.opts.MapWidth), H: float64(r.opts.MapHeight)})
	return image.Rect(int(math.Round(mr.X)), int(math.Round(mr.Y)),
		int(math.Round(mr.Right())), int(math.Round(mr.Bottom())))
}

// Draw renders f and returns the canvas. The returned image is reused by
// the next call. A frame whose viewport differs from the canvas triggers a
// resize first.
func (r *Raster) Draw(f bloom.Frame) *image.RGBA {
	if w, h := int(math.Round(f.View.Width)), int(math.Round(f.View.Height)); w > 0 && h > 0 &&
		(w != r.opts.Width || h != r.opts.Height) {
		r.Resize(w, h)
	}

	for _, g := range f.Frozen {
		r.bake(g)
	}

	bounds := r.canvas.Bounds()
	draw.Draw(r.canvas, bounds, r.backdrop, image.Point{}, draw.Src)
	draw.Draw(r.canvas, bounds, r.screen, image.Point{}, draw.Over)

	if r.opts.ShowRegion && f.Region != nil {
		r.drawRegion(f.Region)
	}

	for _, g := range f.Active {
		r.shapes.flower(r.canvas, g.Pos, g.Size*g.Scale, g.Angle, g.Petals, g.Color)
	}

	for _, h := range f.Headlines {
		r.drawHeadline(h)
	}

	if f.Complete {
		r.drawNotice(bloom.CompleteNotice)
	}
	return r.canvas
}

// bake draws a frozen glyph into both flower layers.
func (r *Raster) bake(g bloom.Glyph) {
	r.shapes.flower(r.flowers, g.Cell.Point(), g.Size, g.Rotation, g.Petals, g.Color)
	p := r.view.Project(g.Cell.Point())
	r.shapes.flower(r.screen, p, g.Size*r.view.Scale, g.Rotation, g.Petals, g.Color)
}

func (r *Raster) drawRegion(reg geom.Region) {
	width := math.Max(1, r.view.Scale)
	switch reg := reg.(type) {
	case geom.Circle:
		r.shapes.ring(r.canvas, r.view.Project(reg.Center), reg.Radius*r.view.Scale, width, colorOutline)
	case geom.Box:
		r.shapes.frame(r.canvas, r.view.ProjectRect(reg.Rect), width, colorOutline)
	}
}

// drawHeadline draws each line left-aligned from the headline's top-left,
// white at the headline's opacity.
func (r *Raster) drawHeadline(h bloom.HeadlineView) {
	if h.Alpha == 0 || h.Face < 0 || h.Face >= r.fonts.Faces() {
		return
	}
	face := r.fonts.Face(h.Face)
	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  r.canvas,
		Src:  image.NewUniform(color.NRGBA{255, 255, 255, h.Alpha}),
		Face: face,
	}
	for i, line := range h.Lines {
		top := h.Y + float64(i)*h.LineHeight
		d.Dot = fixed.Point26_6{
			X: floatToFixed(h.X),
			Y: floatToFixed(top) + ascent,
		}
		d.DrawString(line)
	}
}

// drawNotice draws text centered on the canvas.
func (r *Raster) drawNotice(text string) {
	text = strings.TrimSpace(drawable(r.notice, text))
	width := font.MeasureString(r.notice, text)
	m := r.notice.Metrics()
	b := r.canvas.Bounds()

	d := &font.Drawer{
		Dst:  r.canvas,
		Src:  image.NewUniform(colorNotice),
		Face: r.notice,
		Dot: fixed.Point26_6{
			X: fixed.I(b.Dx()/2) - width/2,
			Y: fixed.I(b.Dy()/2) + (m.Ascent-m.Descent)/2,
		},
	}
	d.DrawString(text)
}

// Close releases the notice face. The Fonts are owned by the caller.
func (r *Raster) Close() error {
	return r.notice.Close()
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
