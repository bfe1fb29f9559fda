// Package overlay renders recognition results on top of the source image,
// for eyeballing detection quality and debugging box clustering.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/pagelens/pagelens/internal/pipeline"
)

var (
	confidentColor = color.NRGBA{R: 46, G: 204, B: 64, A: 255}
	uncertainColor = color.NRGBA{R: 255, G: 65, B: 54, A: 255}
)

// Options tune the annotation rendering.
type Options struct {
	// LineWidth of the box outlines in pixels.
	LineWidth float64

	// Labels draws each result's confidence above its box.
	Labels bool

	// ConfidenceCutoff splits boxes into the confident (green) and
	// uncertain (red) color bands.
	ConfidenceCutoff float64
}

// DefaultOptions returns the standard annotation look.
func DefaultOptions() Options {
	return Options{LineWidth: 2, Labels: true, ConfidenceCutoff: 0.5}
}

// Annotate draws result boxes over a copy of the source image.
func Annotate(src image.Image, results []pipeline.Result, opts Options) image.Image {
	dc := gg.NewContextForImage(src)
	if opts.Labels {
		dc.SetFontFace(basicfont.Face7x13)
	}

	for _, res := range results {
		c := confidentColor
		if res.Confidence < opts.ConfidenceCutoff {
			c = uncertainColor
		}
		dc.SetColor(c)
		dc.SetLineWidth(opts.LineWidth)

		q := res.Box
		dc.MoveTo(q[0].X, q[0].Y)
		for i := 1; i < len(q); i++ {
			dc.LineTo(q[i].X, q[i].Y)
		}
		dc.ClosePath()
		dc.Stroke()

		if opts.Labels {
			label := fmt.Sprintf("%.2f", res.Confidence)
			dc.DrawStringAnchored(label, q[0].X, q[0].Y-4, 0, 0)
		}
	}
	return dc.Image()
}

// SavePNG writes an annotated image to disk.
func SavePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to save annotated image: %w", err)
	}
	return nil
}
