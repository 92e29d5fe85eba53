package bloom

import (
	"math"
	"time"

	"github.com/ha1tch/flowermap/pkg/geom"
)

// Headline is a placed piece of feed text.
type Headline struct {
	Text       string
	Lines      []string
	Anchor     geom.Cell // Map space; screen position is always derived
	Face       int
	Width      float64 // Screen pixels
	LineHeight float64 // Screen pixels
	Created    time.Time
	Alpha      float64 // 0-255
	Phase      float64 // Wiggle phase, radians

	fadeStart time.Time
	fadeFrom  float64
}

// Age returns how long the headline has existed at now.
func (h *Headline) Age(now time.Time) time.Duration {
	return now.Sub(h.Created)
}

// Fading reports whether the headline has entered its fade-out.
func (h *Headline) Fading() bool {
	return !h.fadeStart.IsZero()
}

// Rect returns the headline's screen rectangle under v, without wiggle.
func (h *Headline) Rect(v geom.Viewport) geom.Rect {
	sp := v.Project(h.Anchor.Point())
	return geom.Rect{X: sp.X, Y: sp.Y, W: h.Width, H: float64(len(h.Lines)) * h.LineHeight}
}

// FadeParams controls the opacity state machine.
type FadeParams struct {
	Visible     time.Duration // Fade-in then hold
	Fade        time.Duration // Fade-out length
	Step        float64       // Opacity gained per frame while fading in
	MinCrowd    int           // Fade-out waits until this many are shown; <= 0 disables
	Wiggle      float64       // Horizontal wiggle amplitude, screen pixels
	WiggleSpeed float64       // Radians per second
}

// DefaultFadeParams returns the timings used by the installation.
func DefaultFadeParams() FadeParams {
	return FadeParams{
		Visible:     45 * time.Second,
		Fade:        5 * time.Second,
		Step:        2,
		WiggleSpeed: 1.2,
	}
}

// Lifecycle owns the set of displayed headlines.
type Lifecycle struct {
	params FadeParams
	shown  []*Headline
}

// NewLifecycle creates an empty lifecycle.
func NewLifecycle(params FadeParams) *Lifecycle {
	return &Lifecycle{params: params}
}

// Add displays h.
func (l *Lifecycle) Add(h *Headline) {
	l.shown = append(l.shown, h)
}

// Clear removes every displayed headline.
func (l *Lifecycle) Clear() {
	l.shown = l.shown[:0]
}

// Len returns the number of displayed headlines.
func (l *Lifecycle) Len() int { return len(l.shown) }

// Headlines returns the displayed headlines in placement order.
func (l *Lifecycle) Headlines() []*Headline { return l.shown }

// Occupied returns the screen rectangles of the displayed headlines under v.
func (l *Lifecycle) Occupied(v geom.Viewport) []geom.Rect {
	rects := make([]geom.Rect, len(l.shown))
	for i, h := range l.shown {
		rects[i] = h.Rect(v)
	}
	return rects
}

// Update advances every headline's opacity to now and removes those that
// have faded out completely. It returns the number removed.
//
// Opacity rises by Step per call until Visible has elapsed, then falls
// linearly from its value at that moment to zero over Fade. With MinCrowd
// set, fade-out is held back until enough headlines are on screen.
func (l *Lifecycle) Update(now time.Time) int {
	p := l.params
	crowded := p.MinCrowd <= 0 || len(l.shown) >= p.MinCrowd

	kept := l.shown[:0]
	removed := 0
	for _, h := range l.shown {
		if !h.Fading() {
			if h.Age(now) >= p.Visible && crowded {
				h.fadeStart = h.Created.Add(p.Visible)
				if p.MinCrowd > 0 {
					h.fadeStart = now
				}
				h.fadeFrom = h.Alpha
			} else {
				h.Alpha = math.Min(h.Alpha+p.Step, 255)
			}
		}

		if h.Fading() {
			progress := 1.0
			if p.Fade > 0 {
				progress = geom.Clamp(float64(now.Sub(h.fadeStart))/float64(p.Fade), 0, 1)
			}
			h.Alpha = h.fadeFrom * (1 - progress)
			if h.Alpha <= 0 {
				h.Alpha = 0
				removed++
				continue
			}
		}
		kept = append(kept, h)
	}
	for i := len(kept); i < len(l.shown); i++ {
		l.shown[i] = nil
	}
	l.shown = kept
	return removed
}

// HeadlineView is a headline positioned for drawing.
type HeadlineView struct {
	Text       string
	Lines      []string
	X, Y       float64 // Top-left of the first line
	Width      float64
	LineHeight float64
	Face       int
	Alpha      uint8
}

// Views positions the displayed headlines under v. elapsed drives the
// cosmetic wiggle, which is clamped so text stays on the canvas.
func (l *Lifecycle) Views(v geom.Viewport, elapsed time.Duration) []HeadlineView {
	views := make([]HeadlineView, 0, len(l.shown))
	for _, h := range l.shown {
		r := h.Rect(v)
		x := r.X
		if l.params.Wiggle != 0 {
			x += l.params.Wiggle * math.Sin(elapsed.Seconds()*l.params.WiggleSpeed+h.Phase)
		}
		x = geom.Clamp(x, 0, v.Width-r.W)
		y := geom.Clamp(r.Y, 0, v.Height-r.H)

		views = append(views, HeadlineView{
			Text:       h.Text,
			Lines:      h.Lines,
			X:          x,
			Y:          y,
			Width:      h.Width,
			LineHeight: h.LineHeight,
			Face:       h.Face,
			Alpha:      uint8(math.Round(geom.Clamp(h.Alpha, 0, 255))),
		})
	}
	return views
}
