// Package mapgrid classifies the pixels of a map mask into land cells, which
// host flower births, and water cells, which may anchor headlines.
package mapgrid

import (
	"fmt"
	"image"
	"image/color"
	"os"

	// Decoders for mask, colored map and background assets.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/ha1tch/flowermap/pkg/geom"
)

// Thresholds splits pixels by mean channel intensity (0-255). Pixels below
// Dark are land, above Light are water; anything in between is an
// anti-aliased coastline and belongs to neither set.
type Thresholds struct {
	Dark  float64
	Light float64
}

// DefaultThresholds returns the thresholds used for the bundled masks.
func DefaultThresholds() Thresholds {
	return Thresholds{Dark: 50, Light: 200}
}

// Classification is the result of classifying a mask.
type Classification struct {
	Width, Height int
	Land          []geom.Cell
	Water         []geom.Cell
}

// Classify walks every pixel of img in row-major order. Cell coordinates are
// relative to the image bounds' minimum point.
func Classify(img image.Image, th Thresholds) Classification {
	b := img.Bounds()
	cl := Classification{Width: b.Dx(), Height: b.Dy()}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := Brightness(img.At(x, y))
			cell := geom.Cell{X: x - b.Min.X, Y: y - b.Min.Y}
			if v < th.Dark {
				cl.Land = append(cl.Land, cell)
			} else if v > th.Light {
				cl.Water = append(cl.Water, cell)
			}
		}
	}
	return cl
}

// Brightness returns the mean of the red, green and blue channels of c on a
// 0-255 scale, ignoring alpha.
func Brightness(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return (float64(n.R) + float64(n.G) + float64(n.B)) / 3
}

// LoadImage decodes an image file in any registered format.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Load reads and classifies a mask file.
func Load(path string, th Thresholds) (Classification, error) {
	img, err := LoadImage(path)
	if err != nil {
		return Classification{}, err
	}
	return Classify(img, th), nil
}
