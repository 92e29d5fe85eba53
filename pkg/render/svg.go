package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/ha1tch/flowermap/pkg/bloom"
	"github.com/ha1tch/flowermap/pkg/geom"
)

// SVGOptions controls vector snapshots.
type SVGOptions struct {
	ShowRegion bool
	FontSize   float64 // Headline font size
	NoticeSize float64
	EmbedMap   bool // Embed the colored map as a PNG data URI
}

// SVG renders f as a standalone SVG document. frozen are the glyphs that a
// raster would have baked into its flower layer; they are drawn under the
// active ones. fonts, when given, names the headline faces.
func SVG(f bloom.Frame, frozen []bloom.Glyph, fonts *Fonts, colored image.Image, opts SVGOptions) (string, error) {
	v := f.View
	if opts.FontSize <= 0 {
		opts.FontSize = 18
	}
	if opts.NoticeSize <= 0 {
		opts.NoticeSize = 24
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<style>
  .headline { fill: white; font-size: %.0fpx; }
  .notice { fill: black; font-size: %.0fpx; font-family: sans-serif; }
  .region { fill: none; stroke: black; stroke-width: %.1f; }
</style>
<rect width="%.0f" height="%.0f" fill="black"/>
`, v.Width, v.Height, v.Width, v.Height, opts.FontSize, opts.NoticeSize, math.Max(1, v.Scale), v.Width, v.Height))

	if opts.EmbedMap && colored != nil {
		var buf bytes.Buffer
		if err := WritePNG(&buf, colored); err != nil {
			return "", fmt.Errorf("embedding map: %w", err)
		}
		mr := v.ProjectRect(geom.Rect{W: float64(colored.Bounds().Dx()), H: float64(colored.Bounds().Dy())})
		sb.WriteString(fmt.Sprintf(`<image x="%.1f" y="%.1f" width="%.1f" height="%.1f" preserveAspectRatio="none" href="data:image/png;base64,%s"/>
`, mr.X, mr.Y, mr.W, mr.H, base64.StdEncoding.EncodeToString(buf.Bytes())))
	}

	for _, g := range frozen {
		writeFlower(&sb, v.Project(g.Cell.Point()), g.Size*v.Scale, g.Rotation, g)
	}
	for _, g := range f.Active {
		writeFlower(&sb, g.Pos, g.Size*g.Scale, g.Angle, g.Glyph)
	}

	if opts.ShowRegion && f.Region != nil {
		switch reg := f.Region.(type) {
		case geom.Circle:
			c := v.Project(reg.Center)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" class="region"/>
`, c.X, c.Y, reg.Radius*v.Scale))
		case geom.Box:
			r := v.ProjectRect(reg.Rect)
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" class="region"/>
`, r.X, r.Y, r.W, r.H))
		}
	}

	for _, h := range f.Headlines {
		if h.Alpha == 0 {
			continue
		}
		family := "sans-serif"
		if fonts != nil && h.Face >= 0 && h.Face < fonts.Faces() {
			family = fonts.Name(h.Face)
		}
		sb.WriteString(fmt.Sprintf(`<text class="headline" font-family="%s" fill-opacity="%.3f" dominant-baseline="hanging">
`, html.EscapeString(family), float64(h.Alpha)/255))
		for i, line := range h.Lines {
			sb.WriteString(fmt.Sprintf(`  <tspan x="%.1f" y="%.1f">%s</tspan>
`, h.X, h.Y+float64(i)*h.LineHeight, html.EscapeString(line)))
		}
		sb.WriteString("</text>\n")
	}

	if f.Complete {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="notice" text-anchor="middle" dominant-baseline="middle">%s</text>
`, v.Width/2, v.Height/2, html.EscapeString(bloom.CompleteNotice)))
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

// writeFlower writes the petals and center of one flower as a group.
func writeFlower(sb *strings.Builder, p geom.Point, size, angle float64, g bloom.Glyph) {
	if size <= 0 || g.Petals < 1 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<g transform="translate(%.2f %.2f)" fill="%s" fill-opacity="%.3f">`,
		p.X, p.Y, hexColor(g.Color), float64(g.Color.A)/255))
	for i := 0; i < g.Petals; i++ {
		deg := (angle + 2*math.Pi*float64(i)/float64(g.Petals)) * 180 / math.Pi
		sb.WriteString(fmt.Sprintf(`<ellipse cx="0" cy="%.2f" rx="%.2f" ry="%.2f" transform="rotate(%.1f)"/>`,
			size/2, size/4, size/2, deg))
	}
	sb.WriteString(fmt.Sprintf(`<circle r="%.2f" fill="%s" fill-opacity="1"/></g>
`, size/4, hexColor(centerColor)))
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
