package mapgrid

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/flowermap/pkg/geom"
)

func testMask() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{0, 0, 0, 255})       // land
	img.Set(1, 0, color.NRGBA{255, 255, 255, 255}) // water
	img.Set(2, 0, color.NRGBA{128, 128, 128, 255}) // coastline
	img.Set(0, 1, color.NRGBA{40, 50, 50, 255})    // mean 46.7: land
	img.Set(1, 1, color.NRGBA{200, 200, 200, 255}) // mean 200: not above light
	img.Set(2, 1, color.NRGBA{210, 220, 230, 255}) // water
	return img
}

func TestClassify(t *testing.T) {
	cl := Classify(testMask(), DefaultThresholds())

	assert.Equal(t, 3, cl.Width)
	assert.Equal(t, 2, cl.Height)
	assert.Equal(t, []geom.Cell{{0, 0}, {0, 1}}, cl.Land)
	assert.Equal(t, []geom.Cell{{1, 0}, {2, 1}}, cl.Water)
}

func TestClassifyMidTone(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	cl := Classify(img, DefaultThresholds())
	assert.Empty(t, cl.Land)
	assert.Empty(t, cl.Water)
}

func TestClassifyOffsetBounds(t *testing.T) {
	img := testMask().SubImage(image.Rect(1, 0, 3, 2)).(*image.NRGBA)
	cl := Classify(img, DefaultThresholds())
	assert.Equal(t, []geom.Cell{{0, 0}, {1, 1}}, cl.Water)
	assert.Empty(t, cl.Land)
}

func TestBrightnessIgnoresAlpha(t *testing.T) {
	assert.InDelta(t, 255, Brightness(color.NRGBA{255, 255, 255, 10}), 0.001)
}

func TestLoad(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testMask()))

	path := filepath.Join(t.TempDir(), "mask.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	cl, err := Load(path, DefaultThresholds())
	require.NoError(t, err)
	assert.Len(t, cl.Land, 2)
	assert.Len(t, cl.Water, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"), DefaultThresholds())
	assert.Error(t, err)
}
