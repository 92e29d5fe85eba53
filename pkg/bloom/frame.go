package bloom

import (
	"time"

	"github.com/ha1tch/flowermap/pkg/geom"
)

// CompleteNotice is shown once every birth has happened.
const CompleteNotice = "Simulation complete 🌸"

// Frame is everything a renderer needs to draw one tick.
type Frame struct {
	Time    time.Time
	Elapsed time.Duration
	View    geom.Viewport
	Region  geom.Region // Map space; nil without land

	Births []Glyph // Glyphs born on this tick
	Frozen []Glyph // Glyphs moved to the static backdrop on this tick

	Active    []GlyphView
	Headlines []HeadlineView

	Spawned, Total int
	Complete       bool
	Starved        bool // Land ran out before Total; no more births will come
}

// GlyphView is an active glyph positioned for drawing.
type GlyphView struct {
	Glyph
	Pos   geom.Point // Screen space
	Scale float64    // Map-to-screen scale
	Angle float64    // Rotation including sway
}
