package config

import (
	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/feed"
	"github.com/ha1tch/flowermap/pkg/mapgrid"
)

// Thresholds returns the mask classification thresholds.
func (c Config) Thresholds() mapgrid.Thresholds {
	return mapgrid.Thresholds{Dark: c.Map.DarkThreshold, Light: c.Map.LightThreshold}
}

// Shape returns the exclusion region shape.
func (c Config) Shape() (bloom.Shape, error) {
	return bloom.ParseShape(c.Region.Shape)
}

// Sources returns the feeds to read, routed through the proxy.
func (c Config) Sources() ([]feed.Source, error) {
	format, err := feed.ParseFormat(c.Headlines.Format)
	if err != nil {
		return nil, err
	}
	srcs := make([]feed.Source, 0, len(c.Headlines.Feeds))
	for _, u := range c.Headlines.Feeds {
		if u == "" {
			continue
		}
		srcs = append(srcs, feed.Proxied(c.Headlines.Proxy, u, format))
	}
	return srcs, nil
}

// Options returns simulation options. The clock is left for the caller.
func (c Config) Options() (bloom.Options, error) {
	h := c.Headlines
	policy, err := bloom.ParsePolicy(h.Policy)
	if err != nil {
		return bloom.Options{}, err
	}
	display, err := bloom.ParseDisplay(h.Display)
	if err != nil {
		return bloom.Options{}, err
	}

	opts := bloom.DefaultOptions()
	opts.Total = c.Spawn.Total
	opts.Duration = c.Spawn.Duration
	opts.ActiveCap = c.Spawn.ActiveCap
	opts.Interval = h.Interval
	opts.Policy = policy
	opts.Display = display
	opts.Shuffle = h.Shuffle
	opts.ShowFirst = h.ShowFirst
	opts.Placement = bloom.PlacementParams{
		MaxAttempts:  h.MaxAttempts,
		MaxLines:     h.MaxLines,
		MinWidth:     h.MinWidth,
		MinHeight:    h.MinHeight,
		EdgeMargin:   h.EdgeMargin,
		RegionMargin: h.RegionMargin,
		Padding:      h.Padding,
	}
	opts.Fade.Visible = h.Visible
	opts.Fade.Fade = h.Fade
	opts.Fade.Step = h.FadeStep
	opts.Fade.MinCrowd = h.MinCrowd
	opts.Fade.Wiggle = h.Wiggle
	opts.Seed = c.Seed
	return opts, nil
}
