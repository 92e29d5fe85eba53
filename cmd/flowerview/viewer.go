package main

import (
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ha1tch/flowermap/pkg/bloom"
)

// Viewer runs the simulation on a terminal screen. All simulation state is
// touched from the event loop only; feeds arrive over the titles channel.
type Viewer struct {
	screen  tcell.Screen
	sim     *bloom.Sim
	clock   *pauseClock
	sites   bloom.Sites
	land    []bool
	colored image.Image
	titles  chan []string

	showRegion bool
	showStatus bool

	base   *canvas // map and frozen glyphs
	scene  *canvas // base plus this frame's active glyphs
	frame  bloom.Frame
	frozen int // frozen glyphs already in base
}

func newViewer(screen tcell.Screen, sim *bloom.Sim, clock *pauseClock, colored image.Image, showRegion bool) *Viewer {
	v := &Viewer{
		screen:     screen,
		sim:        sim,
		clock:      clock,
		sites:      sim.Sites(),
		colored:    colored,
		titles:     make(chan []string, 4),
		showRegion: showRegion,
		showStatus: true,
	}
	v.land = landMask(v.sites)
	v.resize()
	return v
}

// Deliver hands fetched titles to the event loop. Safe from any goroutine.
func (v *Viewer) Deliver(titles []string) {
	v.titles <- titles
	v.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// mapRows is the number of screen rows the map occupies.
func (v *Viewer) mapRows() int {
	_, h := v.screen.Size()
	if v.showStatus {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h
}

// resize refits the simulation to the screen and rebuilds the base layer,
// replaying every frozen glyph at the new scale.
func (v *Viewer) resize() {
	w, _ := v.screen.Size()
	rows := v.mapRows()
	v.sim.Resize(float64(w), float64(2*rows))

	v.base = newCanvas(w, 2*rows)
	v.scene = newCanvas(w, 2*rows)
	paintBase(v.base, v.sim.View(), v.sites, v.land, v.colored)
	v.frozen = 0
	v.bakeFrozen()
}

func (v *Viewer) bakeFrozen() {
	frozen := v.sim.Garden().Frozen()
	view := v.sim.View()
	for _, g := range frozen[v.frozen:] {
		plotGlyph(v.base, view.Project(g.Cell.Point()), g.Size*view.Scale, g)
	}
	v.frozen = len(frozen)
}

// step drains delivered titles and advances the simulation one frame.
func (v *Viewer) step() {
drain:
	for {
		select {
		case titles := <-v.titles:
			v.sim.Enqueue(titles)
		default:
			break drain
		}
	}
	if v.clock.Paused() {
		return
	}
	v.frame = v.sim.Tick()
	v.bakeFrozen()
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	v.scene.copyFrom(v.base)
	if v.showRegion && v.frame.Region != nil {
		plotRegion(v.scene, v.sim.View(), v.frame.Region)
	}
	for _, g := range v.frame.Active {
		plotGlyph(v.scene, g.Pos, g.Size*g.Scale, g.Glyph)
	}
	drawCanvas(v.screen, v.scene)

	for _, hv := range v.frame.Headlines {
		drawHeadline(v.screen, v.scene, hv)
	}

	if v.frame.Complete {
		drawCentered(v.screen, w, v.mapRows()/2, " "+bloom.CompleteNotice+" ", styleNotice)
	}

	if v.showStatus && h > 0 {
		y := h - 1
		for x := 0; x < w; x++ {
			v.screen.SetContent(x, y, ' ', nil, styleStatus)
		}
		status := statusLine(v.sim.Stats(), v.clock.Paused())
		helpW := len(helpText)
		if w-helpW > 20 {
			drawString(v.screen, 0, y, truncate(status, w-helpW-1), styleStatus)
			drawString(v.screen, w-helpW, y, helpText, styleHelp)
		} else {
			drawString(v.screen, 0, y, truncate(status, w), styleStatus)
		}
	}
}

// handleKey returns true when the viewer should exit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'p', 'P', ' ':
			paused := v.clock.Toggle()
			log.Debug().Bool("paused", paused).Msg("pause toggled")
		case 'r', 'R':
			v.showRegion = !v.showRegion
		case 's', 'S':
			v.showStatus = !v.showStatus
			v.resize()
		}
	}
	return false
}

// run is the frame loop. A ticker goroutine posts an interrupt per frame;
// everything else happens here.
func (v *Viewer) run(fps int) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				v.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.resize()
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventInterrupt:
			v.step()
		}
	}
}
