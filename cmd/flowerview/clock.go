package main

import (
	"sync"
	"time"

	"github.com/ha1tch/flowermap/pkg/bloom"
)

// pauseClock is a clock that can be stopped. Time spent paused is removed
// from every later reading, so the simulation resumes where it stopped.
type pauseClock struct {
	mu       sync.Mutex
	base     bloom.Clock
	paused   bool
	pausedAt time.Time
	lost     time.Duration
}

func newPauseClock(base bloom.Clock) *pauseClock {
	return &pauseClock{base: base}
}

func (c *pauseClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return c.pausedAt.Add(-c.lost)
	}
	return c.base.Now().Add(-c.lost)
}

// Toggle pauses or resumes and reports whether the clock is now paused.
func (c *pauseClock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		c.lost += c.base.Now().Sub(c.pausedAt)
		c.paused = false
	} else {
		c.pausedAt = c.base.Now()
		c.paused = true
	}
	return c.paused
}

func (c *pauseClock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}
