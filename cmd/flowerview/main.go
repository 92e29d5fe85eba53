// Command flowerview plays the flower map live in a terminal. Each cell
// shows two map pixels; headlines are drawn as text over the sea.
package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/config"
	"github.com/ha1tch/flowermap/pkg/feed"
	"github.com/ha1tch/flowermap/pkg/logging"
	"github.com/ha1tch/flowermap/pkg/mapgrid"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile, titlesFile string
	cmd := &cobra.Command{
		Use:   "flowerview",
		Short: "Play the flower map in the terminal",
		Long: `Play the flower map in the terminal.

Keys: p or space pauses, r shows the exclusion region, s toggles the
status line, q or Esc quits. Logs are discarded unless log.file is set.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, configFile, titlesFile)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to config file (toml, yaml or json)")
	cmd.Flags().StringVar(&titlesFile, "titles", "", "read headlines from this file instead of the feeds")
	config.AddFlags(cmd.Flags())
	return cmd
}

// terminalPlacement adapts pixel placement parameters to terminal cells,
// where a column is one unit wide and a row two units tall.
func terminalPlacement(p bloom.PlacementParams) bloom.PlacementParams {
	p.MinWidth = 12
	p.MinHeight = 2
	p.EdgeMargin = 1
	p.RegionMargin = 1
	p.Padding = 1
	if p.MaxLines <= 0 || p.MaxLines > 4 {
		p.MaxLines = 4
	}
	return p
}

func run(cmd *cobra.Command, configFile, titlesFile string) error {
	cfg, meta, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	closeLog := func() {}
	if cfg.Log.File != "" {
		if closeLog, err = logging.Setup(cfg.Log); err != nil {
			return err
		}
	} else {
		logging.Discard()
	}
	defer closeLog()
	if meta.FileNotFound {
		log.Warn().Str("path", configFile).Msg("config file not found, using defaults")
	}

	if cfg.Map.Mask == "" {
		return fmt.Errorf("no mask image: set map.mask")
	}
	cl, err := mapgrid.Load(cfg.Map.Mask, cfg.Thresholds())
	if err != nil {
		return err
	}
	shape, err := cfg.Shape()
	if err != nil {
		return err
	}
	sites := bloom.NewSites(cl, shape, cfg.Region.Padding)

	var colored image.Image
	if cfg.Map.Colored != "" {
		if colored, err = mapgrid.LoadImage(cfg.Map.Colored); err != nil {
			return err
		}
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.Placement = terminalPlacement(opts.Placement)
	opts.Fade.Wiggle = 0
	clock := newPauseClock(bloom.SystemClock{})
	opts.Clock = clock
	sim := bloom.New(opts, sites, cellMeasurer{})

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.Clear()

	v := newViewer(screen, sim, clock, colored, cfg.Render.ShowRegion)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		titles, err := loadTitles(ctx, cfg, titlesFile)
		if err != nil {
			log.Warn().Err(err).Msg("no headlines")
			return
		}
		if ctx.Err() == nil {
			v.Deliver(titles)
		}
	}()

	v.run(cfg.Render.FPS)
	return nil
}

func loadTitles(ctx context.Context, cfg config.Config, titlesFile string) ([]string, error) {
	if titlesFile != "" {
		data, err := os.ReadFile(titlesFile)
		if err != nil {
			return nil, err
		}
		return strings.Split(string(data), "\n"), nil
	}
	srcs, err := cfg.Sources()
	if err != nil {
		return nil, err
	}
	return feed.FetchAll(ctx, feed.NewClient(cfg.Headlines.Timeout), srcs), nil
}
