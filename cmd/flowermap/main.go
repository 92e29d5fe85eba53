// Command flowermap renders the flower map headlessly and inspects its
// inputs.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/config"
	"github.com/ha1tch/flowermap/pkg/logging"
	"github.com/ha1tch/flowermap/pkg/mapgrid"
)

const long = `flowermap - flowers bloom over a map while good news drifts across the sea

Births are spread evenly over the run on dark (land) pixels of the mask.
Headlines from RSS feeds are placed on light (water) pixels outside the
region covering the land, faded in, held and faded out.

Examples:
  flowermap info --map.mask mask.png
  flowermap fetch
  flowermap render -c flowermap.toml --render.frames 900
  flowermap genconfig -o flowermap.toml`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:           "flowermap",
		Short:         "Flower map animation",
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file (toml, yaml or json)")
	config.AddFlags(root.PersistentFlags())

	root.AddCommand(
		newRenderCmd(&configFile),
		newInfoCmd(&configFile),
		newFetchCmd(&configFile),
		newGenConfigCmd(),
	)
	return root
}

// setup resolves and validates the configuration and configures logging.
// The returned func must be called on exit.
func setup(cmd *cobra.Command, configFile string) (config.Config, func(), error) {
	cfg, meta, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid config: %w", err)
	}
	closeLog, err := logging.Setup(cfg.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	if meta.FileNotFound {
		log.Warn().Str("path", configFile).Msg("config file not found, using defaults")
	}
	return cfg, closeLog, nil
}

// loadSites classifies the mask and derives the region and candidates.
func loadSites(cfg config.Config) (bloom.Sites, error) {
	if cfg.Map.Mask == "" {
		return bloom.Sites{}, fmt.Errorf("no mask image: set map.mask")
	}
	cl, err := mapgrid.Load(cfg.Map.Mask, cfg.Thresholds())
	if err != nil {
		return bloom.Sites{}, err
	}
	shape, err := cfg.Shape()
	if err != nil {
		return bloom.Sites{}, err
	}
	sites := bloom.NewSites(cl, shape, cfg.Region.Padding)
	log.Info().Str("mask", cfg.Map.Mask).
		Int("land", len(cl.Land)).Int("water", len(cl.Water)).
		Int("candidates", len(sites.Candidates)).Msg("mask classified")
	return sites, nil
}

// readTitles reads one headline per line, skipping blank lines.
func readTitles(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var titles []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			titles = append(titles, line)
		}
	}
	return titles, sc.Err()
}
