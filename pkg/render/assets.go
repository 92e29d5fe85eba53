package render

import (
	"fmt"
	"image"

	"github.com/rs/zerolog/log"

	"github.com/ha1tch/flowermap/pkg/mapgrid"
)

// Assets are the images drawn under the simulation. Either may be nil.
type Assets struct {
	Background image.Image // Stretched over the whole canvas
	Colored    image.Image // Drawn at the map's fitted position and scale
}

// LoadAssets decodes the background and colored map images. Empty paths are
// skipped.
func LoadAssets(background, colored string) (Assets, error) {
	var a Assets
	var err error
	if background != "" {
		if a.Background, err = mapgrid.LoadImage(background); err != nil {
			return Assets{}, fmt.Errorf("background: %w", err)
		}
		log.Info().Str("path", background).Stringer("size", a.Background.Bounds().Size()).Msg("background loaded")
	}
	if colored != "" {
		if a.Colored, err = mapgrid.LoadImage(colored); err != nil {
			return Assets{}, fmt.Errorf("colored map: %w", err)
		}
		log.Info().Str("path", colored).Stringer("size", a.Colored.Bounds().Size()).Msg("colored map loaded")
	}
	return a, nil
}
