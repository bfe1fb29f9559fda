package strip

import (
	"image"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundFill estimates the page background color by sampling the image
// border and taking the median perceptual lightness (CIE Lab L). Padding with
// this gray keeps the pad region statistically indistinguishable from the
// page, so the recognizer does not hallucinate glyphs at the strip boundary.
func BackgroundFill(img image.Image) color.NRGBA {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	stride := max(1, min(b.Dx(), b.Dy())/64)
	var lightness []float64
	sample := func(x, y int) {
		c, ok := colorful.MakeColor(img.At(x, y))
		if !ok {
			return
		}
		l, _, _ := c.Lab()
		lightness = append(lightness, l)
	}
	for x := b.Min.X; x < b.Max.X; x += stride {
		sample(x, b.Min.Y)
		sample(x, b.Max.Y-1)
	}
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		sample(b.Min.X, y)
		sample(b.Max.X-1, y)
	}
	if len(lightness) == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	sort.Float64s(lightness)
	median := lightness[len(lightness)/2]
	r, g, bb := colorful.Lab(median, 0, 0).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bb, A: 255}
}
