package bloom

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/ha1tch/flowermap/pkg/geom"
)

// Glyph is one flower, born on a land cell.
type Glyph struct {
	Cell     geom.Cell
	Petals   int
	Size     float64 // Petal length in map pixels
	Color    color.NRGBA
	Rotation float64 // Radians
	Phase    float64 // Sway phase, radians
	Born     time.Time
}

// GlyphStyle bounds the random decoration of new glyphs.
type GlyphStyle struct {
	PetalsMin, PetalsMax int
	SizeMin, SizeMax     float64
	PetalAlpha           uint8
	SwayAmplitude        float64 // Radians
	SwaySpeed            float64 // Radians per second
}

// DefaultGlyphStyle returns five-petal flowers of size 8.
func DefaultGlyphStyle() GlyphStyle {
	return GlyphStyle{
		PetalsMin:     5,
		PetalsMax:     5,
		SizeMin:       8,
		SizeMax:       8,
		PetalAlpha:    180,
		SwayAmplitude: 0.25,
		SwaySpeed:     1.5,
	}
}

// petalChannelMin keeps petals off the dark end of each RGB channel.
const petalChannelMin = 50

func (gs GlyphStyle) newGlyph(cell geom.Cell, now time.Time, rng *rand.Rand) Glyph {
	petals := gs.PetalsMin
	if gs.PetalsMax > gs.PetalsMin {
		petals += rng.IntN(gs.PetalsMax - gs.PetalsMin + 1)
	}
	if petals < 1 {
		petals = 1
	}
	size := gs.SizeMin
	if gs.SizeMax > gs.SizeMin {
		size += rng.Float64() * (gs.SizeMax - gs.SizeMin)
	}

	channel := func() uint8 { return uint8(petalChannelMin + rng.IntN(256-petalChannelMin)) }
	r, g, b := channel(), channel(), channel()

	return Glyph{
		Cell:     cell,
		Petals:   petals,
		Size:     size,
		Color:    color.NRGBA{r, g, b, gs.PetalAlpha},
		Rotation: rng.Float64() * 2 * math.Pi / float64(petals),
		Phase:    rng.Float64() * 2 * math.Pi,
		Born:     now,
	}
}

// Garden stores glyphs in two tiers: a bounded FIFO of active glyphs that
// sway every frame, and an append-only list of frozen glyphs that renderers
// bake into a static backdrop.
type Garden struct {
	cap    int
	active []Glyph
	frozen []Glyph
}

// NewGarden creates a garden holding at most activeCap swaying glyphs. With
// activeCap <= 0 every glyph is frozen as soon as it is added.
func NewGarden(activeCap int) *Garden {
	if activeCap < 0 {
		activeCap = 0
	}
	return &Garden{cap: activeCap}
}

// Add appends g to the active tier and returns the glyphs evicted to the
// frozen tier, oldest first.
func (gd *Garden) Add(g Glyph) []Glyph {
	gd.active = append(gd.active, g)

	over := len(gd.active) - gd.cap
	if over <= 0 {
		return nil
	}
	evicted := append([]Glyph(nil), gd.active[:over]...)
	gd.active = append(gd.active[:0], gd.active[over:]...)
	gd.frozen = append(gd.frozen, evicted...)
	return evicted
}

// Active returns the swaying glyphs, oldest first.
func (gd *Garden) Active() []Glyph { return gd.active }

// Frozen returns every frozen glyph in eviction order.
func (gd *Garden) Frozen() []Glyph { return gd.frozen }

// Len returns the total number of glyphs in both tiers.
func (gd *Garden) Len() int { return len(gd.active) + len(gd.frozen) }
