package bloom

import (
	"math/rand/v2"
	"time"
	"unicode/utf8"
)

// fixedMeasurer is a monospace measurer: every rune is runeWidth wide.
type fixedMeasurer struct {
	faces      int
	runeWidth  float64
	lineHeight float64
}

func newFixedMeasurer() fixedMeasurer {
	return fixedMeasurer{faces: 3, runeWidth: 8, lineHeight: 20}
}

func (m fixedMeasurer) Faces() int { return m.faces }

func (m fixedMeasurer) Measure(_ int, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * m.runeWidth
}

func (m fixedMeasurer) LineHeight(int) float64 { return m.lineHeight }

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
