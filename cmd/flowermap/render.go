package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/config"
	"github.com/ha1tch/flowermap/pkg/feed"
	"github.com/ha1tch/flowermap/pkg/render"
)

// progressEvery is how often, in frames, render logs progress.
const progressEvery = 300

func newRenderCmd(configFile *string) *cobra.Command {
	var titlesFile, svgFile string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames to PNG files",
		Long: `Render the animation headlessly at render.fps into render.out as
frame_00000.png, frame_00001.png, ... Time is simulated, so a run of any
length renders as fast as the machine allows. With --svg the last frame
is also written as a vector snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup(cmd, *configFile)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runRender(ctx, cfg, titlesFile, svgFile)
		},
	}
	cmd.Flags().StringVar(&titlesFile, "titles", "", "read headlines from this file instead of the feeds")
	cmd.Flags().StringVar(&svgFile, "svg", "", "write the last frame as SVG to this file")
	return cmd
}

// headlines returns the titles to show: from a file when given, otherwise
// from the configured feeds. Feed failures leave the list empty.
func headlines(ctx context.Context, cfg config.Config, titlesFile string) ([]string, error) {
	if titlesFile != "" {
		return readTitles(titlesFile)
	}
	srcs, err := cfg.Sources()
	if err != nil || len(srcs) == 0 {
		return nil, err
	}
	return feed.FetchAll(ctx, feed.NewClient(cfg.Headlines.Timeout), srcs), nil
}

func runRender(ctx context.Context, cfg config.Config, titlesFile, svgFile string) error {
	sites, err := loadSites(cfg)
	if err != nil {
		return err
	}
	assets, err := render.LoadAssets(cfg.Map.Background, cfg.Map.Colored)
	if err != nil {
		return err
	}
	fonts, err := render.NewFonts(cfg.Headlines.FontSize)
	if err != nil {
		return err
	}
	defer fonts.Close()

	raster, err := render.NewRaster(assets, fonts, render.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		MapWidth:   sites.Width,
		MapHeight:  sites.Height,
		ShowRegion: cfg.Render.ShowRegion,
	})
	if err != nil {
		return err
	}
	defer raster.Close()

	if err := os.MkdirAll(cfg.Render.Out, 0o755); err != nil {
		return err
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	clock := bloom.NewManualClock(time.Now())
	opts.Clock = clock
	sim := bloom.New(opts, sites, fonts)
	sim.Resize(float64(cfg.Render.Width), float64(cfg.Render.Height))

	titles, err := headlines(ctx, cfg, titlesFile)
	if err != nil {
		return err
	}
	sim.Enqueue(titles)

	step := time.Second / time.Duration(cfg.Render.FPS)
	frames := cfg.Render.Frames

	// Frames are encoded concurrently from copies of the canvas.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var last bloom.Frame
	n := 0
	for ; frames == 0 || n < frames; n++ {
		if gctx.Err() != nil {
			break
		}
		f := sim.Tick()
		last = f
		img := cloneRGBA(raster.Draw(f))
		idx := n
		g.Go(func() error {
			return render.WriteFrame(cfg.Render.Out, idx, img)
		})

		if n%progressEvery == 0 {
			st := sim.Stats()
			log.Info().Int("frame", n).Int("spawned", st.Spawned).Int("total", st.Total).
				Int("headlines", st.Shown).Msg("rendering")
		}
		if frames == 0 && f.Complete {
			n++
			break
		}
		if frames == 0 && f.Starved {
			n++
			log.Warn().Int("spawned", f.Spawned).Int("total", f.Total).
				Msg("land exhausted before total, stopping")
			break
		}
		clock.Advance(step)
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	if err := ctx.Err(); err != nil {
		log.Warn().Int("frames", n).Msg("render interrupted")
		return nil
	}

	if svgFile != "" {
		if err := writeSVG(svgFile, last, sim.Garden().Frozen(), fonts, assets, cfg); err != nil {
			return err
		}
	}

	st := sim.Stats()
	log.Info().Int("frames", n).Str("out", cfg.Render.Out).
		Int("spawned", st.Spawned).Int("placed", st.Placed).Int("dropped", st.Dropped).
		Msg("render finished")
	return nil
}

func writeSVG(path string, f bloom.Frame, frozen []bloom.Glyph, fonts *render.Fonts, assets render.Assets, cfg config.Config) error {
	doc, err := render.SVG(f, frozen, fonts, assets.Colored, render.SVGOptions{
		ShowRegion: cfg.Render.ShowRegion,
		FontSize:   cfg.Headlines.FontSize,
		EmbedMap:   true,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	log.Info().Str("path", path).Msg("svg snapshot written")
	return nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
