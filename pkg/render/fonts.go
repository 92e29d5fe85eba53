package render

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// embedded lists the faces a headline may be set in.
var embedded = []struct {
	name string
	ttf  []byte
}{
	{"Go Regular", goregular.TTF},
	{"Go Bold", gobold.TTF},
	{"Go Italic", goitalic.TTF},
	{"Go Medium", gomedium.TTF},
	{"Go Smallcaps", gosmallcaps.TTF},
	{"Go Mono", gomono.TTF},
}

// Fonts holds the headline faces at one size. It measures text for the
// placement engine and draws it for the raster surface, so both always
// agree on widths. Not safe for concurrent use.
type Fonts struct {
	size  float64
	names []string
	faces []font.Face
}

// NewFonts parses the embedded faces at size points (72 DPI, so points are
// pixels).
func NewFonts(size float64) (*Fonts, error) {
	if size <= 0 {
		return nil, fmt.Errorf("render: font size must be positive, got %g", size)
	}
	f := &Fonts{size: size}
	for _, e := range embedded {
		face, err := newFace(e.ttf, size)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("render: load %s: %w", e.name, err)
		}
		f.names = append(f.names, e.name)
		f.faces = append(f.faces, face)
	}
	return f, nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	fnt, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Size returns the point size of the faces.
func (f *Fonts) Size() float64 { return f.size }

// Faces returns the number of faces.
func (f *Fonts) Faces() int { return len(f.faces) }

// Face returns face i.
func (f *Fonts) Face(i int) font.Face { return f.faces[i] }

// Name returns the display name of face i.
func (f *Fonts) Name(i int) string { return f.names[i] }

// Measure returns the advance width of s in face i, in pixels.
func (f *Fonts) Measure(i int, s string) float64 {
	return fixedToFloat(font.MeasureString(f.faces[i], s))
}

// LineHeight returns the recommended line spacing of face i, in pixels.
func (f *Fonts) LineHeight(i int) float64 {
	return fixedToFloat(f.faces[i].Metrics().Height)
}

// Close releases the faces.
func (f *Fonts) Close() error {
	for _, face := range f.faces {
		face.Close()
	}
	f.faces = nil
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// drawable drops the runes face has no glyph for, so they are skipped
// rather than drawn as boxes.
func drawable(face font.Face, s string) string {
	return strings.Map(func(r rune) rune {
		if _, ok := face.GlyphAdvance(r); !ok {
			return -1
		}
		return r
	}, s)
}
