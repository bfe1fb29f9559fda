package strip

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// GrayContrast measures a strip's contrast as the spread between the 10th
// and 90th luminance percentiles, normalized to [0,1]. Clean black-on-white
// text scores near 1; faded scans score near 0.
func GrayContrast(img image.Image) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}

	var hist [256]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			lum := (299*(r>>8) + 587*(g>>8) + 114*(bb>>8)) / 1000
			hist[lum]++
		}
	}

	p10 := percentile(hist[:], n, 0.10)
	p90 := percentile(hist[:], n, 0.90)
	return float64(p90-p10) / 255.0
}

// Enhance stretches a low-contrast strip toward the target contrast level.
// Strips already at or above the target are returned as an untouched clone.
func Enhance(img image.Image, target float64) *image.NRGBA {
	c := GrayContrast(img)
	if c >= target || c == 0 {
		return imaging.Clone(img)
	}
	boost := math.Min(1, target/c-1)
	return imaging.Clone(adjust.Contrast(img, boost))
}

// percentile returns the smallest luminance level at or below which the
// given fraction of pixels fall.
func percentile(hist []int, total int, p float64) int {
	threshold := int(p * float64(total))
	acc := 0
	for level, count := range hist {
		acc += count
		if acc >= threshold {
			return level
		}
	}
	return len(hist) - 1
}
