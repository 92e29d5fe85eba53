package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/config"
	"github.com/ha1tch/flowermap/pkg/geom"
)

func newInfoCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show mask classification, region and schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup(cmd, *configFile)
			if err != nil {
				return err
			}
			defer closeLog()

			sites, err := loadSites(cfg)
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), cfg, sites)
			return nil
		},
	}
}

func printInfo(w io.Writer, cfg config.Config, sites bloom.Sites) {
	fmt.Fprintf(w, "Mask:        %s (%dx%d)\n", cfg.Map.Mask, sites.Width, sites.Height)
	fmt.Fprintf(w, "Land:        %d cells\n", len(sites.Land))
	fmt.Fprintf(w, "Candidates:  %d water cells outside the region\n", len(sites.Candidates))

	switch r := sites.Region.(type) {
	case geom.Circle:
		fmt.Fprintf(w, "Region:      circle at (%.1f, %.1f) radius %.1f\n", r.Center.X, r.Center.Y, r.Radius)
	case geom.Box:
		fmt.Fprintf(w, "Region:      box at (%.0f, %.0f) size %.0fx%.0f\n", r.X, r.Y, r.W, r.H)
	default:
		fmt.Fprintln(w, "Region:      none (no land)")
	}

	fmt.Fprintln(w)
	total := cfg.Spawn.Total
	fmt.Fprintf(w, "Births:      %d over %s\n", total, cfg.Spawn.Duration)
	if total > 0 {
		fmt.Fprintf(w, "Interval:    %s\n", (cfg.Spawn.Duration / time.Duration(total)).Round(time.Microsecond))
	}
	if len(sites.Land) < total {
		fmt.Fprintf(w, "Warning:     only %d land cells, spawning stops at %d births\n", len(sites.Land), len(sites.Land))
	}

	v := geom.Fit(float64(cfg.Render.Width), float64(cfg.Render.Height), float64(sites.Width), float64(sites.Height))
	fmt.Fprintf(w, "Viewport:    %dx%d, scale %.3f, offset (%.1f, %.1f)\n",
		cfg.Render.Width, cfg.Render.Height, v.Scale, v.OffsetX, v.OffsetY)
	fmt.Fprintf(w, "Headlines:   every %s, %s, %s display\n", cfg.Headlines.Interval, cfg.Headlines.Policy, cfg.Headlines.Display)
}
