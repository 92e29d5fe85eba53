package bloom

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ha1tch/flowermap/pkg/geom"
	"github.com/ha1tch/flowermap/pkg/mapgrid"
)

// Display decides how many headlines share the screen.
type Display int

const (
	// Multi keeps every headline until it fades, avoiding overlaps.
	Multi Display = iota
	// Single clears the screen whenever a new headline is placed.
	Single
)

func (d Display) String() string {
	switch d {
	case Multi:
		return "multi"
	case Single:
		return "single"
	}
	return fmt.Sprintf("Display(%d)", int(d))
}

// ParseDisplay parses "multi" or "single".
func ParseDisplay(s string) (Display, error) {
	switch s {
	case "multi", "":
		return Multi, nil
	case "single":
		return Single, nil
	}
	return 0, fmt.Errorf("unknown headline display %q", s)
}

// Shape selects the form of the exclusion region.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeBox
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeBox:
		return "box"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape parses "circle" or "box".
func ParseShape(s string) (Shape, error) {
	switch s {
	case "circle", "":
		return ShapeCircle, nil
	case "box":
		return ShapeBox, nil
	}
	return 0, fmt.Errorf("unknown region shape %q", s)
}

// Sites is the static input of a simulation, computed once at startup.
type Sites struct {
	Width, Height int         // Map size in cells
	Land          []geom.Cell // Spawn pool seed
	Candidates    []geom.Cell // Headline anchors outside the region
	Region        geom.Region // nil when there is no land
}

// NewSites derives the exclusion region from the land cells and filters the
// water cells down to headline candidates. The circle is grown by padding;
// the box is used as is.
func NewSites(cl mapgrid.Classification, shape Shape, padding float64) Sites {
	s := Sites{Width: cl.Width, Height: cl.Height, Land: cl.Land}

	switch shape {
	case ShapeBox:
		if b, ok := geom.EstimateBox(cl.Land); ok {
			s.Region = b
		}
	default:
		if c, ok := geom.EstimateCircle(cl.Land, padding); ok {
			s.Region = c
		}
	}
	s.Candidates = geom.Candidates(cl.Water, s.Region)
	return s
}

// Options configures a Sim.
type Options struct {
	Total     int           // Births over the whole run
	Duration  time.Duration // Length of the run
	ActiveCap int           // Swaying glyphs kept before freezing the oldest

	Interval  time.Duration // Between headlines
	Policy    Policy
	Display   Display
	Shuffle   bool // Shuffle each batch once on arrival
	ShowFirst bool // Place the first headline as soon as it arrives

	Placement PlacementParams
	Fade      FadeParams
	Glyph     GlyphStyle

	Seed  uint64 // 0 picks a seed from the clock
	Clock Clock  // nil means SystemClock
}

// DefaultOptions mirrors the installation: 57079 flowers over 1000 minutes,
// a new headline every 30 seconds.
func DefaultOptions() Options {
	return Options{
		Total:     57079,
		Duration:  1000 * time.Minute,
		ActiveCap: 500,
		Interval:  30 * time.Second,
		Policy:    ConsumeOnce,
		Display:   Multi,
		ShowFirst: true,
		Placement: DefaultPlacementParams(),
		Fade:      DefaultFadeParams(),
		Glyph:     DefaultGlyphStyle(),
	}
}

// Stats counts what happened so far.
type Stats struct {
	Spawned   int
	Total     int
	Frozen    int
	Pending   int // Headlines waiting in the queue
	Shown     int // Headlines on screen
	Placed    int
	Dropped   int
	Completed bool
	Starved   bool
}

// Sim is the simulation context. It is not safe for concurrent use.
type Sim struct {
	opts     Options
	sites    Sites
	measurer Measurer
	clock    Clock
	rng      *rand.Rand
	start    time.Time
	view     geom.Viewport

	spawner  *Spawner
	garden   *Garden
	queue    *Queue
	rotation *Rotation
	life     *Lifecycle

	shownFirst bool
	completed  bool
	placed     int
	dropped    int
}

// New creates a simulation. The viewport defaults to the map size until
// Resize is called.
func New(opts Options, sites Sites, m Measurer) *Sim {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	start := clock.Now()

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(start.UnixNano())
	}

	queue := NewQueue(opts.Policy)
	s := &Sim{
		opts:     opts,
		sites:    sites,
		measurer: m,
		clock:    clock,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		start:    start,
		spawner:  NewSpawner(sites.Land, opts.Total, opts.Duration, start),
		garden:   NewGarden(opts.ActiveCap),
		queue:    queue,
		rotation: NewRotation(queue, opts.Interval, start),
		life:     NewLifecycle(opts.Fade),
	}
	s.Resize(float64(sites.Width), float64(sites.Height))

	if len(sites.Land) < opts.Total {
		log.Warn().Int("land", len(sites.Land)).Int("total", opts.Total).
			Msg("fewer land cells than births, spawning will stop early")
	}
	return s
}

// Resize refits the map to a screen of w x h. Stored anchors are untouched.
func (s *Sim) Resize(w, h float64) {
	s.view = geom.Fit(w, h, float64(s.sites.Width), float64(s.sites.Height))
}

// View returns the current viewport.
func (s *Sim) View() geom.Viewport { return s.view }

// Sites returns the static input.
func (s *Sim) Sites() Sites { return s.sites }

// Garden returns the glyph store.
func (s *Sim) Garden() *Garden { return s.garden }

// Headlines returns the displayed headlines.
func (s *Sim) Headlines() []*Headline { return s.life.Headlines() }

// Enqueue adds headlines from a feed. Blank titles are skipped. With
// ShowFirst, the very first headline the simulation receives is placed
// right away rather than waiting for the rotation interval.
func (s *Sim) Enqueue(titles []string) {
	batch := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			batch = append(batch, t)
		}
	}
	if len(batch) == 0 {
		return
	}
	if s.opts.Shuffle {
		s.rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
	}
	s.queue.Push(batch...)

	if s.opts.ShowFirst && !s.shownFirst {
		now := s.clock.Now()
		if title, ok := s.rotation.Take(now); ok {
			s.shownFirst = true
			s.place(title, now)
		}
	}
}

// place runs the placement engine for title and displays the result.
func (s *Sim) place(title string, now time.Time) bool {
	var occupied []geom.Rect
	if s.opts.Display == Multi {
		occupied = s.life.Occupied(s.view)
	}

	p, err := Place(PlaceRequest{
		Text:       title,
		Candidates: s.sites.Candidates,
		Region:     s.sites.Region,
		View:       s.view,
		Occupied:   occupied,
		Measurer:   s.measurer,
		Params:     s.opts.Placement,
	}, s.rng)
	if err != nil {
		if errors.Is(err, ErrNoSite) {
			s.dropped++
			log.Debug().Str("headline", title).Int("attempts", p.Attempts).Msg("no site for headline, dropped")
		}
		return false
	}

	if s.opts.Display == Single {
		s.life.Clear()
	}
	s.life.Add(&Headline{
		Text:       title,
		Lines:      p.Lines,
		Anchor:     p.Anchor,
		Face:       p.Face,
		Width:      p.Width,
		LineHeight: p.LineHeight,
		Created:    now,
		Phase:      s.rng.Float64() * 2 * math.Pi,
	})
	s.placed++
	return true
}

// Tick advances the simulation to the clock's current time and returns the
// frame to draw.
func (s *Sim) Tick() Frame {
	now := s.clock.Now()
	f := Frame{
		Time:    now,
		Elapsed: now.Sub(s.start),
		View:    s.view,
		Region:  s.sites.Region,
	}

	if cell, ok := s.spawner.Tick(now, s.rng); ok {
		g := s.opts.Glyph.newGlyph(cell, now, s.rng)
		f.Births = append(f.Births, g)
		f.Frozen = s.garden.Add(g)
	}

	if title, ok := s.rotation.Tick(now); ok {
		s.place(title, now)
	}

	s.life.Update(now)

	f.Active = s.glyphViews(f.Elapsed)
	f.Headlines = s.life.Views(s.view, f.Elapsed)
	f.Spawned = s.spawner.Spawned()
	f.Total = s.spawner.Total()
	f.Complete = s.spawner.Done()
	f.Starved = s.spawner.Starved()

	if f.Complete && !s.completed {
		s.completed = true
		log.Info().Int("births", f.Spawned).Dur("elapsed", f.Elapsed).Msg("simulation complete")
	}
	return f
}

func (s *Sim) glyphViews(elapsed time.Duration) []GlyphView {
	gs := s.opts.Glyph
	active := s.garden.Active()
	views := make([]GlyphView, len(active))
	for i, g := range active {
		views[i] = GlyphView{
			Glyph: g,
			Pos:   s.view.Project(g.Cell.Point()),
			Scale: s.view.Scale,
			Angle: g.Rotation + gs.SwayAmplitude*math.Sin(elapsed.Seconds()*gs.SwaySpeed+g.Phase),
		}
	}
	return views
}

// Stats returns counters for status displays.
func (s *Sim) Stats() Stats {
	return Stats{
		Spawned:   s.spawner.Spawned(),
		Total:     s.spawner.Total(),
		Frozen:    len(s.garden.Frozen()),
		Pending:   s.queue.Len(),
		Shown:     s.life.Len(),
		Placed:    s.placed,
		Dropped:   s.dropped,
		Completed: s.spawner.Done(),
		Starved:   s.spawner.Starved(),
	}
}
