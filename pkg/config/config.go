// Package config loads flowermap settings from compiled-in defaults, an
// optional TOML, YAML or JSON file, FLOWERMAP_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ha1tch/flowermap/pkg/feed"
)

// EnvPrefix prefixes environment overrides, e.g. FLOWERMAP_SPAWN_TOTAL.
const EnvPrefix = "FLOWERMAP"

// DefaultFeed is the good-news feed the installation reads.
const DefaultFeed = "https://verdensbedstenyheder.dk/feed/"

// Config is the full set of settings.
type Config struct {
	Map       MapConfig      `mapstructure:"map"`
	Spawn     SpawnConfig    `mapstructure:"spawn"`
	Region    RegionConfig   `mapstructure:"region"`
	Headlines HeadlineConfig `mapstructure:"headlines"`
	Render    RenderConfig   `mapstructure:"render"`
	Log       LogConfig      `mapstructure:"log"`
	// Seed for the random source; 0 picks one from the clock.
	Seed uint64 `mapstructure:"seed"`
}

// MapConfig locates the map images and classifies the mask.
type MapConfig struct {
	Mask           string  `mapstructure:"mask"`
	Colored        string  `mapstructure:"colored"`
	Background     string  `mapstructure:"background"`
	DarkThreshold  float64 `mapstructure:"dark_threshold"`
	LightThreshold float64 `mapstructure:"light_threshold"`
}

type SpawnConfig struct {
	Total     int           `mapstructure:"total"`
	Duration  time.Duration `mapstructure:"duration"`
	ActiveCap int           `mapstructure:"active_cap"`
}

type RegionConfig struct {
	Shape   string  `mapstructure:"shape"`
	Padding float64 `mapstructure:"padding"`
}

// HeadlineConfig covers fetching, scheduling, placement and fading.
type HeadlineConfig struct {
	Feeds   []string      `mapstructure:"feeds"`
	Proxy   string        `mapstructure:"proxy"`
	Format  string        `mapstructure:"format"`
	Timeout time.Duration `mapstructure:"timeout"`

	Interval  time.Duration `mapstructure:"interval"`
	Policy    string        `mapstructure:"policy"`
	Display   string        `mapstructure:"display"`
	Shuffle   bool          `mapstructure:"shuffle"`
	ShowFirst bool          `mapstructure:"show_first"`

	Visible  time.Duration `mapstructure:"visible"`
	Fade     time.Duration `mapstructure:"fade"`
	FadeStep float64       `mapstructure:"fade_step"`
	MinCrowd int           `mapstructure:"min_crowd"`

	MaxAttempts  int     `mapstructure:"max_attempts"`
	MaxLines     int     `mapstructure:"max_lines"`
	MinWidth     float64 `mapstructure:"min_width"`
	MinHeight    float64 `mapstructure:"min_height"`
	EdgeMargin   float64 `mapstructure:"edge_margin"`
	RegionMargin float64 `mapstructure:"region_margin"`
	Padding      float64 `mapstructure:"padding"`
	FontSize     float64 `mapstructure:"font_size"`
	Wiggle       float64 `mapstructure:"wiggle"`
}

type RenderConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	FPS        int    `mapstructure:"fps"`
	Frames     int    `mapstructure:"frames"` // 0 renders until every birth happened
	Out        string `mapstructure:"out"`
	ShowRegion bool   `mapstructure:"show_region"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Meta describes how a Config was obtained.
type Meta struct {
	FileNotFound bool
}

// defaults is the single source of compiled-in values, keyed by section.
func defaults() map[string]map[string]any {
	return map[string]map[string]any{
		"map": {
			"mask":            "",
			"colored":         "",
			"background":      "",
			"dark_threshold":  50.0,
			"light_threshold": 200.0,
		},
		"spawn": {
			"total":      57079,
			"duration":   1000 * time.Minute,
			"active_cap": 500,
		},
		"region": {
			"shape":   "circle",
			"padding": 1.05,
		},
		"headlines": {
			"feeds":         []string{DefaultFeed},
			"proxy":         feed.DefaultProxy,
			"format":        "json",
			"timeout":       10 * time.Second,
			"interval":      30 * time.Second,
			"policy":        "consume",
			"display":       "multi",
			"shuffle":       false,
			"show_first":    true,
			"visible":       45 * time.Second,
			"fade":          5 * time.Second,
			"fade_step":     2.0,
			"min_crowd":     0,
			"max_attempts":  200,
			"max_lines":     6,
			"min_width":     50.0,
			"min_height":    20.0,
			"edge_margin":   10.0,
			"region_margin": 2.0,
			"padding":       6.0,
			"font_size":     18.0,
			"wiggle":        0.0,
		},
		"render": {
			"width":       1280,
			"height":      800,
			"fps":         30,
			"frames":      0,
			"out":         "frames",
			"show_region": false,
		},
		"log": {
			"level": "info",
			"file":  "",
		},
	}
}

// topLevelDefaults are keys outside any section.
var topLevelDefaults = map[string]any{
	"seed": uint64(0),
}

// flagKeys are the settings that can be given on the command line.
var flagKeys = []string{
	"map.mask", "map.colored", "map.background",
	"spawn.total", "spawn.duration", "spawn.active_cap",
	"region.shape",
	"headlines.feeds", "headlines.format", "headlines.interval", "headlines.policy",
	"headlines.display", "headlines.shuffle", "headlines.wiggle",
	"render.width", "render.height", "render.fps", "render.frames", "render.out", "render.show_region",
	"log.level", "log.file", "seed",
}

// AddFlags registers the command-line overrides on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String("map.mask", "", "black/white mask image: dark pixels are land")
	fs.String("map.colored", "", "colored map drawn under the flowers")
	fs.String("map.background", "", "background image stretched over the canvas")
	fs.Int("spawn.total", 57079, "number of flower births")
	fs.Duration("spawn.duration", 1000*time.Minute, "time over which births are spread")
	fs.Int("spawn.active_cap", 500, "swaying flowers kept before the oldest freeze")
	fs.String("region.shape", "circle", "exclusion region shape: circle or box")
	fs.StringSlice("headlines.feeds", []string{DefaultFeed}, "RSS feed URLs")
	fs.String("headlines.format", "json", "feed response format: json or xml")
	fs.Duration("headlines.interval", 30*time.Second, "time between headlines")
	fs.String("headlines.policy", "consume", "queue policy: consume or loop")
	fs.String("headlines.display", "multi", "headline display: multi or single")
	fs.Bool("headlines.shuffle", false, "shuffle headlines once on arrival")
	fs.Float64("headlines.wiggle", 0, "horizontal headline wiggle in pixels")
	fs.Int("render.width", 1280, "canvas width in pixels")
	fs.Int("render.height", 800, "canvas height in pixels")
	fs.Int("render.fps", 30, "frames per second")
	fs.Int("render.frames", 0, "frames to render, 0 until complete")
	fs.String("render.out", "frames", "output directory for rendered frames")
	fs.Bool("render.show_region", false, "draw the exclusion region outline")
	fs.String("log.level", "info", "log level: trace, debug, info, warn, error or none")
	fs.String("log.file", "", "write logs to this file")
	fs.Uint64("seed", 0, "random seed, 0 for time based")
}

// Load resolves the configuration. flags may be nil; only flags the user
// actually set override lower layers. A missing file is reported in Meta
// rather than as an error.
func Load(flags *pflag.FlagSet, file string) (Config, Meta, error) {
	v := viper.New()
	for section, keys := range defaults() {
		for k, val := range keys {
			v.SetDefault(section+"."+k, val)
		}
	}
	for k, val := range topLevelDefaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range flagKeys {
			if f := flags.Lookup(key); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	meta := Meta{}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound *os.PathError
			if !errors.As(err, &notFound) {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", file, err)
			}
			meta.FileNotFound = true
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return conf, meta, nil
}

// Default returns the compiled-in configuration.
func Default() Config {
	conf, _, err := Load(nil, "")
	if err != nil {
		panic(err) // defaults always decode
	}
	return conf
}

// Keys returns every setting name in sorted order.
func Keys() []string {
	var keys []string
	for section, values := range defaults() {
		for k := range values {
			keys = append(keys, section+"."+k)
		}
	}
	for k := range topLevelDefaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
