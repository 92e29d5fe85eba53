package bloom

import (
	"math/rand/v2"
	"time"

	"github.com/ha1tch/flowermap/pkg/geom"
)

// Spawner releases land cells at a fixed rate until a fixed total has been
// born. Cells are drawn uniformly at random without replacement.
type Spawner struct {
	pool     []geom.Cell
	total    int
	interval time.Duration
	spawned  int
	last     time.Time
}

// NewSpawner creates a spawner that releases total cells from pool over
// duration, starting its timer at start. The pool is copied.
func NewSpawner(pool []geom.Cell, total int, duration time.Duration, start time.Time) *Spawner {
	s := &Spawner{
		pool:  append([]geom.Cell(nil), pool...),
		total: total,
		last:  start,
	}
	if total > 0 {
		s.interval = duration / time.Duration(total)
	}
	return s
}

// Tick releases one cell if the birth interval has elapsed since the last
// birth. ok is false when nothing is born on this tick.
func (s *Spawner) Tick(now time.Time, rng *rand.Rand) (cell geom.Cell, ok bool) {
	if s.spawned >= s.total || len(s.pool) == 0 {
		return geom.Cell{}, false
	}
	if now.Sub(s.last) < s.interval {
		return geom.Cell{}, false
	}

	i := rng.IntN(len(s.pool))
	cell = s.pool[i]
	last := len(s.pool) - 1
	s.pool[i] = s.pool[last]
	s.pool = s.pool[:last]

	s.spawned++
	s.last = now
	return cell, true
}

// Interval returns the time between births.
func (s *Spawner) Interval() time.Duration { return s.interval }

// Spawned returns the number of births so far.
func (s *Spawner) Spawned() int { return s.spawned }

// Total returns the configured number of births.
func (s *Spawner) Total() int { return s.total }

// Remaining returns the number of unused cells in the pool.
func (s *Spawner) Remaining() int { return len(s.pool) }

// Done reports whether every configured birth has happened.
func (s *Spawner) Done() bool {
	return s.spawned >= s.total
}

// Starved reports whether the pool ran dry before the total was reached.
func (s *Spawner) Starved() bool {
	return !s.Done() && len(s.pool) == 0
}
