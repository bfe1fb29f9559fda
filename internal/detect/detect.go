// Package detect provides a heuristic text detector built on gradient
// analysis. It stands in for a neural detector: text shows up as bands of
// dense, predominantly horizontal edge structure, which connected-component
// analysis turns into candidate polygons.
package detect

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/pagelens/pagelens/internal/geometry"
	"github.com/pagelens/pagelens/internal/pipeline"
)

// minComponentPixels discards connected components too small to be glyphs.
const minComponentPixels = 10

// Heuristic is a gradient-based text detector. The zero value is usable.
type Heuristic struct {
	// Log receives per-call region counts at debug level. Nil disables it.
	Log *slog.Logger
}

// New returns a detector logging through the given logger.
func New(log *slog.Logger) *Heuristic {
	return &Heuristic{Log: log}
}

// DetectRegions implements pipeline.Detector.
//
// The image is rescaled per CanvasSize and MagRatio, blurred and run through
// a Sobel operator. Pixels scoring at least LowText form the region mask;
// a component is kept only when its peak score reaches TextThreshold.
// LinkThreshold widens the reach used to join components on the same line.
// Returned polygons are in source-image coordinates.
func (h *Heuristic) DetectRegions(img image.Image, p pipeline.DetectorParams) ([]geometry.Region, error) {
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("cannot detect text in empty image")
	}

	scaled, scale := rescale(img, p.CanvasSize, p.MagRatio)
	score := scoreMap(scaled)
	comps := components(score, p.TextThreshold, p.LowText)
	boxes := linkBoxes(comps, p.LinkThreshold)

	regions := make([]geometry.Region, 0, len(boxes))
	for _, bb := range boxes {
		x0 := float64(bb.x0) / scale
		x1 := float64(bb.x1) / scale
		y0 := float64(bb.y0) / scale
		y1 := float64(bb.y1) / scale
		regions = append(regions, geometry.Region{Points: []geometry.Point{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
		}})
	}

	if h.Log != nil {
		h.Log.Debug("text detection complete",
			"components", len(comps), "regions", len(regions), "scale", scale)
	}
	return regions, nil
}

// rescale resizes the image so its longer side is magRatio times the
// original, capped at canvasSize. It returns the working image and the factor
// mapping source coordinates to working coordinates.
func rescale(img image.Image, canvasSize int, magRatio float64) (*image.NRGBA, float64) {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if magRatio <= 0 {
		magRatio = 1
	}
	target := magRatio * float64(longest)
	if canvasSize > 0 && target > float64(canvasSize) {
		target = float64(canvasSize)
	}
	scale := target / float64(longest)
	if scale == 1 {
		return imaging.Clone(img), 1
	}
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	hh := max(1, int(math.Round(float64(b.Dy())*scale)))
	return imaging.Resize(img, w, hh, imaging.Lanczos), scale
}

// scoreMap computes a per-pixel text score in [0, 1]: Sobel gradient
// magnitude over a lightly blurred image, so isolated noise pixels do not
// crest the threshold.
func scoreMap(img *image.NRGBA) [][]float64 {
	grad := effect.Sobel(blur.Gaussian(img, 1.0))
	b := grad.Bounds()
	w, h := b.Dx(), b.Dy()

	score := make([][]float64, h)
	for y := 0; y < h; y++ {
		score[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			r, g, bl, _ := grad.At(x+b.Min.X, y+b.Min.Y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bl>>8)
			score[y][x] = lum / 255.0
		}
	}
	return score
}

type box struct {
	x0, y0, x1, y1 int
}

func (b box) height() int { return b.y1 - b.y0 }

type component struct {
	box  box
	peak float64
	size int
}

// components runs 8-connected flood fill over the low-score mask, keeping
// components whose peak score reaches the text threshold.
func components(score [][]float64, textThs, lowText float64) []component {
	h := len(score)
	if h == 0 {
		return nil
	}
	w := len(score[0])
	visited := make([][]bool, h)
	for y := range visited {
		visited[y] = make([]bool, w)
	}

	var comps []component
	var stack [][2]int
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if visited[sy][sx] || score[sy][sx] < lowText {
				continue
			}

			c := component{box: box{x0: sx, y0: sy, x1: sx + 1, y1: sy + 1}}
			stack = append(stack[:0], [2]int{sx, sy})
			visited[sy][sx] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				x, y := p[0], p[1]

				c.size++
				c.peak = math.Max(c.peak, score[y][x])
				c.box.x0 = min(c.box.x0, x)
				c.box.y0 = min(c.box.y0, y)
				c.box.x1 = max(c.box.x1, x+1)
				c.box.y1 = max(c.box.y1, y+1)

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						if visited[ny][nx] || score[ny][nx] < lowText {
							continue
						}
						visited[ny][nx] = true
						stack = append(stack, [2]int{nx, ny})
					}
				}
			}

			if c.size >= minComponentPixels && c.peak >= textThs {
				comps = append(comps, c)
			}
		}
	}
	return comps
}

// linkBoxes joins components on the same line: two boxes merge when their
// vertical extents overlap and the horizontal gap is within linkThs times the
// smaller height.
func linkBoxes(comps []component, linkThs float64) []box {
	boxes := make([]box, 0, len(comps))
	for _, c := range comps {
		boxes = append(boxes, c.box)
	}

	for {
		merged := false
		for i := 0; i < len(boxes) && !merged; i++ {
			for j := i + 1; j < len(boxes); j++ {
				if !linked(boxes[i], boxes[j], linkThs) {
					continue
				}
				boxes[i] = union(boxes[i], boxes[j])
				boxes = append(boxes[:j], boxes[j+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			return boxes
		}
	}
}

func linked(a, b box, linkThs float64) bool {
	if a.y0 >= b.y1 || b.y0 >= a.y1 {
		return false
	}
	reach := int(linkThs * float64(min(a.height(), b.height())))
	return a.x0 <= b.x1+reach && b.x0 <= a.x1+reach
}

func union(a, b box) box {
	return box{
		x0: min(a.x0, b.x0),
		y0: min(a.y0, b.y0),
		x1: max(a.x1, b.x1),
		y1: max(a.y1, b.y1),
	}
}
