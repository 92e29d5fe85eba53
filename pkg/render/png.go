package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

var frameEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// WritePNG encodes img to w.
func WritePNG(w io.Writer, img image.Image) error {
	return frameEncoder.Encode(w, img)
}

// FramePath returns the file name of frame n inside dir.
func FramePath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%05d.png", n))
}

// WriteFrame encodes img as frame n inside dir.
func WriteFrame(dir string, n int, img image.Image) (err error) {
	f, err := os.Create(FramePath(dir, n))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WritePNG(f, img)
}
