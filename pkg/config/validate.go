package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/feed"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "none"}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Map.DarkThreshold >= c.Map.LightThreshold {
		fail("map.dark_threshold (%g) must be below map.light_threshold (%g)", c.Map.DarkThreshold, c.Map.LightThreshold)
	}
	if c.Map.DarkThreshold < 0 || c.Map.LightThreshold > 255 {
		fail("map thresholds must lie within 0-255")
	}

	if c.Spawn.Total < 0 {
		fail("spawn.total must not be negative")
	}
	if c.Spawn.Duration < 0 {
		fail("spawn.duration must not be negative")
	}

	if _, err := bloom.ParseShape(c.Region.Shape); err != nil {
		errs = append(errs, err)
	}
	if c.Region.Padding <= 0 {
		fail("region.padding must be positive")
	}

	h := c.Headlines
	if _, err := feed.ParseFormat(h.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := bloom.ParsePolicy(h.Policy); err != nil {
		errs = append(errs, err)
	}
	if _, err := bloom.ParseDisplay(h.Display); err != nil {
		errs = append(errs, err)
	}
	if h.Interval < 0 || h.Visible < 0 || h.Fade < 0 || h.Timeout < 0 {
		fail("headline durations must not be negative")
	}
	if h.FadeStep <= 0 {
		fail("headlines.fade_step must be positive")
	}
	if h.MaxAttempts < 1 {
		fail("headlines.max_attempts must be at least 1")
	}
	if h.MinCrowd < 0 || h.MaxLines < 0 {
		fail("headline counts must not be negative")
	}
	if h.MinWidth <= 0 || h.MinHeight <= 0 {
		fail("headlines.min_width and headlines.min_height must be positive")
	}
	if h.EdgeMargin < 0 || h.RegionMargin < 0 || h.Padding < 0 {
		fail("headline margins must not be negative")
	}
	if h.FontSize <= 0 {
		fail("headlines.font_size must be positive")
	}

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		fail("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.FPS <= 0 {
		fail("render.fps must be positive")
	}
	if c.Render.Frames < 0 {
		fail("render.frames must not be negative")
	}

	if !validLevel(c.Log.Level) {
		fail("unknown log.level %q, want one of %s", c.Log.Level, strings.Join(logLevels, ", "))
	}
	return errors.Join(errs...)
}

func validLevel(level string) bool {
	level = strings.ToLower(level)
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}
