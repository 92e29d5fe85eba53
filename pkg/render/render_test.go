package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/geom"
)

func newTestFonts(t *testing.T) *Fonts {
	t.Helper()
	f, err := NewFonts(18)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func newTestRaster(t *testing.T, opts Options) *Raster {
	t.Helper()
	r, err := NewRaster(Assets{}, newTestFonts(t), opts)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func isBlack(c color.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// dim reports a pixel noticeably darkened on a white background.
func dim(c color.RGBA) bool {
	return c.R < 200
}

func TestFontsMeasure(t *testing.T) {
	f := newTestFonts(t)
	require.Equal(t, 6, f.Faces())

	for i := 0; i < f.Faces(); i++ {
		assert.NotEmpty(t, f.Name(i))
		assert.Positive(t, f.LineHeight(i), f.Name(i))
		short := f.Measure(i, "flower")
		long := f.Measure(i, "flower field")
		assert.Positive(t, short, f.Name(i))
		assert.Greater(t, long, short, f.Name(i))
		assert.Zero(t, f.Measure(i, ""))
	}
	assert.Equal(t, 18.0, f.Size())

	_, err := NewFonts(0)
	assert.Error(t, err)
}

func TestFontsImplementMeasurer(t *testing.T) {
	var m bloom.Measurer = newTestFonts(t)
	assert.Equal(t, 6, m.Faces())
}

func TestDrawable(t *testing.T) {
	f := newTestFonts(t)
	assert.Equal(t, "Simulation complete ", drawable(f.Face(0), bloom.CompleteNotice))
	assert.Equal(t, "abc", drawable(f.Face(0), "abc"))
}

func TestNewRasterNeedsMapSize(t *testing.T) {
	_, err := NewRaster(Assets{}, newTestFonts(t), Options{Width: 10, Height: 10})
	assert.Error(t, err)

	_, err = NewRaster(Assets{}, nil, Options{Width: 10, Height: 10, MapWidth: 5, MapHeight: 5})
	assert.Error(t, err)

	colored := image.NewRGBA(image.Rect(0, 0, 40, 20))
	r, err := NewRaster(Assets{Colored: colored}, newTestFonts(t), Options{Width: 80, Height: 80})
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, 2.0, r.Viewport().Scale)
}

func TestDrawEmptyFrame(t *testing.T) {
	r := newTestRaster(t, Options{Width: 64, Height: 48, MapWidth: 32, MapHeight: 24})
	img := r.Draw(bloom.Frame{View: r.Viewport()})
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
	assert.True(t, isBlack(img.RGBAAt(10, 10)))
}

func TestDrawColoredMapFitted(t *testing.T) {
	colored := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			colored.SetRGBA(x, y, color.RGBA{0, 200, 0, 255})
		}
	}
	r, err := NewRaster(Assets{Colored: colored}, newTestFonts(t), Options{Width: 200, Height: 100})
	require.NoError(t, err)
	defer r.Close()

	img := r.Draw(bloom.Frame{View: r.Viewport()})
	// The square map is centred horizontally.
	assert.True(t, isBlack(img.RGBAAt(20, 50)))
	assert.InDelta(t, 200, float64(img.RGBAAt(100, 50).G), 2)
}

func TestDrawActiveGlyph(t *testing.T) {
	r := newTestRaster(t, Options{Width: 100, Height: 100, MapWidth: 50, MapHeight: 50})
	v := r.Viewport()
	g := bloom.Glyph{Cell: geom.Cell{X: 25, Y: 25}, Petals: 5, Size: 8, Color: color.NRGBA{200, 50, 50, 180}}

	img := r.Draw(bloom.Frame{
		View:   v,
		Active: []bloom.GlyphView{{Glyph: g, Pos: v.Project(g.Cell.Point()), Scale: v.Scale}},
	})
	center := img.RGBAAt(50, 50)
	assert.Equal(t, uint8(255), center.R, "yellow center")
	assert.Greater(t, center.G, uint8(150))

	// Active glyphs are redrawn every frame, not kept.
	img = r.Draw(bloom.Frame{View: v})
	assert.True(t, isBlack(img.RGBAAt(50, 50)))
}

func TestFrozenGlyphPersists(t *testing.T) {
	r := newTestRaster(t, Options{Width: 100, Height: 100, MapWidth: 50, MapHeight: 50})
	g := bloom.Glyph{Cell: geom.Cell{X: 10, Y: 40}, Petals: 5, Size: 8, Color: color.NRGBA{50, 50, 200, 180}}

	r.Draw(bloom.Frame{View: r.Viewport(), Frozen: []bloom.Glyph{g}})
	img := r.Draw(bloom.Frame{View: r.Viewport()})
	assert.False(t, isBlack(img.RGBAAt(20, 80)))

	// Survives a resize through the map-resolution layer.
	r.Resize(50, 50)
	img = r.Draw(bloom.Frame{View: r.Viewport()})
	assert.False(t, isBlack(img.RGBAAt(10, 40)))
}

func TestFlowerOffCanvas(t *testing.T) {
	r := newTestRaster(t, Options{Width: 20, Height: 20, MapWidth: 20, MapHeight: 20})
	g := bloom.Glyph{Cell: geom.Cell{X: 0, Y: 0}, Petals: 5, Size: 8, Color: color.NRGBA{200, 200, 200, 255}}
	assert.NotPanics(t, func() {
		r.Draw(bloom.Frame{View: r.Viewport(), Active: []bloom.GlyphView{
			{Glyph: g, Pos: geom.Point{X: 0, Y: 0}, Scale: 1},
			{Glyph: g, Pos: geom.Point{X: -50, Y: 300}, Scale: 1},
		}})
	})
	img := r.Draw(bloom.Frame{View: r.Viewport(), Active: []bloom.GlyphView{{Glyph: g, Pos: geom.Point{}, Scale: 1}}})
	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).R)
}

func TestDrawRegionOutline(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 1, 1))
	bg.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	r, err := NewRaster(Assets{Background: bg}, newTestFonts(t),
		Options{Width: 100, Height: 100, MapWidth: 100, MapHeight: 100, ShowRegion: true})
	require.NoError(t, err)
	defer r.Close()

	img := r.Draw(bloom.Frame{View: r.Viewport(), Region: geom.Circle{Center: geom.Point{X: 50, Y: 50}, Radius: 30}})
	assert.True(t, dim(img.RGBAAt(80, 50)), "on the circle")
	assert.False(t, dim(img.RGBAAt(50, 50)), "inside stays clear")

	img = r.Draw(bloom.Frame{View: r.Viewport(), Region: geom.Box{Rect: geom.Rect{X: 20, Y: 20, W: 40, H: 40}}})
	assert.True(t, dim(img.RGBAAt(20, 40)), "on the left edge")
	assert.False(t, dim(img.RGBAAt(40, 40)), "inside stays clear")
}

func TestDrawHeadlineAlpha(t *testing.T) {
	r := newTestRaster(t, Options{Width: 300, Height: 100, MapWidth: 300, MapHeight: 100})
	hv := bloom.HeadlineView{Lines: []string{"MMMM"}, X: 10, Y: 10, Width: 200, LineHeight: 20}

	lit := func(img *image.RGBA) int {
		n := 0
		for y := 10; y < 30; y++ {
			for x := 10; x < 80; x++ {
				if !isBlack(img.RGBAAt(x, y)) {
					n++
				}
			}
		}
		return n
	}

	hv.Alpha = 0
	assert.Zero(t, lit(r.Draw(bloom.Frame{View: r.Viewport(), Headlines: []bloom.HeadlineView{hv}})))

	hv.Alpha = 255
	assert.Positive(t, lit(r.Draw(bloom.Frame{View: r.Viewport(), Headlines: []bloom.HeadlineView{hv}})))

	hv.Face = 99
	assert.NotPanics(t, func() { r.Draw(bloom.Frame{View: r.Viewport(), Headlines: []bloom.HeadlineView{hv}}) })
}

func TestDrawCompleteNotice(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 1, 1))
	bg.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	r, err := NewRaster(Assets{Background: bg}, newTestFonts(t),
		Options{Width: 400, Height: 200, MapWidth: 400, MapHeight: 200})
	require.NoError(t, err)
	defer r.Close()

	dark := func(img *image.RGBA) int {
		n := 0
		for y := 80; y < 120; y++ {
			for x := 0; x < 400; x++ {
				if img.RGBAAt(x, y).R < 128 {
					n++
				}
			}
		}
		return n
	}
	assert.Zero(t, dark(r.Draw(bloom.Frame{View: r.Viewport()})))
	assert.Positive(t, dark(r.Draw(bloom.Frame{View: r.Viewport(), Complete: true})))
}

func TestDrawResizesToFrameView(t *testing.T) {
	r := newTestRaster(t, Options{Width: 100, Height: 100, MapWidth: 50, MapHeight: 50})
	img := r.Draw(bloom.Frame{View: geom.Fit(200, 120, 50, 50)})
	assert.Equal(t, image.Rect(0, 0, 200, 120), img.Bounds())
}

func TestWriteFrame(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})

	require.NoError(t, WriteFrame(dir, 7, img))
	path := FramePath(dir, 7)
	assert.Equal(t, filepath.Join(dir, "frame_00007.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
	r, g, b, _ := decoded.At(1, 1).RGBA()
	assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})
}
