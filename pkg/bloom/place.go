package bloom

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/ha1tch/flowermap/pkg/geom"
	"github.com/ha1tch/flowermap/pkg/wrap"
)

// ErrNoSite is returned when no attempt produced a usable position.
var ErrNoSite = errors.New("bloom: no site found for headline")

// Measurer is the text measurement capability of a rendering surface.
// Faces are identified by index in [0, Faces()).
type Measurer interface {
	Faces() int
	Measure(face int, s string) float64
	LineHeight(face int) float64
}

// PlacementParams tunes the placement search. Lengths are screen pixels.
type PlacementParams struct {
	MaxAttempts  int
	MaxLines     int     // Cap on wrapped lines; <= 0 means only the canvas bounds it
	MinWidth     float64 // Floor of the wrap width
	MinHeight    float64 // Minimum vertical room below the anchor
	EdgeMargin   float64 // Band along the canvas edges that anchors and text avoid
	RegionMargin float64 // Gap kept between text and the exclusion region
	Padding      float64 // Gap kept between headlines
}

// DefaultPlacementParams returns the values used for a full-size canvas.
func DefaultPlacementParams() PlacementParams {
	return PlacementParams{
		MaxAttempts:  200,
		MaxLines:     6,
		MinWidth:     50,
		MinHeight:    20,
		EdgeMargin:   10,
		RegionMargin: 2,
		Padding:      6,
	}
}

// PlaceRequest is the input to Place.
type PlaceRequest struct {
	Text       string
	Candidates []geom.Cell
	Region     geom.Region // nil: only the canvas edges bound the width
	View       geom.Viewport
	Occupied   []geom.Rect // Screen rectangles of headlines already shown
	Measurer   Measurer
	Params     PlacementParams
}

// Placement is a successful placement.
type Placement struct {
	Anchor     geom.Cell
	Face       int
	Width      float64 // Wrap width
	LineHeight float64
	Lines      []string
	Truncated  bool
	Rect       geom.Rect // Screen rectangle at the time of placement
	Attempts   int
}

// Place searches for a position for req.Text: it draws random candidate
// cells, derives a wrap width from the distance to the exclusion region and
// the canvas edge, wraps the text, and accepts the first rectangle that does
// not touch any occupied one. After MaxAttempts failures it returns
// ErrNoSite along with the number of attempts made.
func Place(req PlaceRequest, rng *rand.Rand) (Placement, error) {
	p := req.Params
	if len(req.Candidates) == 0 || req.Measurer == nil || req.Measurer.Faces() == 0 {
		return Placement{}, ErrNoSite
	}

	occ := geom.NewOccupancy(p.Padding, req.Occupied...)
	v := req.View

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		cell := req.Candidates[rng.IntN(len(req.Candidates))]
		sp := v.Project(cell.Point())

		if sp.X < p.EdgeMargin || sp.Y < p.EdgeMargin {
			continue
		}

		width := math.Inf(1)
		if req.Region != nil {
			width = req.Region.Clearance(cell.Point(), v) - p.RegionMargin
		}
		width = math.Max(width, p.MinWidth)
		width = math.Min(width, v.Width-sp.X-p.EdgeMargin)

		maxHeight := v.Height - sp.Y - p.EdgeMargin
		if width < p.MinWidth || maxHeight < p.MinHeight {
			continue
		}

		face := rng.IntN(req.Measurer.Faces())
		lh := req.Measurer.LineHeight(face)
		if lh <= 0 {
			continue
		}
		maxLines := int(maxHeight / lh)
		if p.MaxLines > 0 && p.MaxLines < maxLines {
			maxLines = p.MaxLines
		}
		if maxLines < 1 {
			continue
		}

		measure := func(s string) float64 { return req.Measurer.Measure(face, s) }
		lines, truncated, err := wrap.Lines(req.Text, width, maxLines, measure)
		if err != nil || len(lines) == 0 {
			continue
		}

		rect := geom.Rect{X: sp.X, Y: sp.Y, W: width, H: float64(len(lines)) * lh}
		if !occ.Fits(rect) {
			continue
		}

		return Placement{
			Anchor:     cell,
			Face:       face,
			Width:      width,
			LineHeight: lh,
			Lines:      lines,
			Truncated:  truncated,
			Rect:       rect,
			Attempts:   attempt,
		}, nil
	}
	return Placement{Attempts: p.MaxAttempts}, ErrNoSite
}
