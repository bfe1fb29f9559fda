package detect

import (
	"image"
	"image/color"
	"testing"

	"github.com/pagelens/pagelens/internal/geometry"
	"github.com/pagelens/pagelens/internal/pipeline"
)

func testParams() pipeline.DetectorParams {
	return pipeline.DetectorParams{
		CanvasSize:    2560,
		MagRatio:      1,
		TextThreshold: 0.7,
		LowText:       0.4,
		LinkThreshold: 0.4,
	}
}

func whitePage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

// drawStrokes paints vertical black strokes across a band, mimicking the
// gradient structure of a line of text.
func drawStrokes(img *image.NRGBA, x0, x1, y0, y1 int) {
	for x := x0; x < x1; x += 4 {
		for sx := x; sx < min(x+2, x1); sx++ {
			for y := y0; y < y1; y++ {
				img.Set(sx, y, color.Black)
			}
		}
	}
}

func regionBounds(r geometry.Region) (x0, y0, x1, y1 float64) {
	x0, y0 = r.Points[0].X, r.Points[0].Y
	x1, y1 = x0, y0
	for _, p := range r.Points[1:] {
		x0 = min(x0, p.X)
		y0 = min(y0, p.Y)
		x1 = max(x1, p.X)
		y1 = max(y1, p.Y)
	}
	return
}

func TestDetectRegions_FindsTextBand(t *testing.T) {
	img := whitePage(300, 200)
	drawStrokes(img, 20, 220, 80, 100)

	regions, err := New(nil).DetectRegions(img, testParams())
	if err != nil {
		t.Fatalf("DetectRegions: %v", err)
	}
	if len(regions) == 0 {
		t.Fatal("expected at least one region on a page with text strokes")
	}

	// The band's center must fall inside some region.
	found := false
	for _, r := range regions {
		x0, y0, x1, y1 := regionBounds(r)
		if x0 <= 120 && x1 >= 120 && y0 <= 90 && y1 >= 90 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("no region covers the stroke band center, got %v", regions)
	}
}

func TestDetectRegions_BlankPage(t *testing.T) {
	regions, err := New(nil).DetectRegions(whitePage(300, 200), testParams())
	if err != nil {
		t.Fatalf("DetectRegions: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("got %d regions on a blank page, want 0", len(regions))
	}
}

func TestDetectRegions_CoordinatesInSourceScale(t *testing.T) {
	img := whitePage(400, 200)
	drawStrokes(img, 100, 300, 80, 120)

	p := testParams()
	p.CanvasSize = 200 // force 2x downscale
	regions, err := New(nil).DetectRegions(img, p)
	if err != nil {
		t.Fatalf("DetectRegions: %v", err)
	}
	if len(regions) == 0 {
		t.Fatal("expected regions on downscaled page")
	}

	found := false
	for _, r := range regions {
		x0, _, x1, _ := regionBounds(r)
		if x0 >= 80 && x0 <= 120 && x1 >= 280 && x1 <= 320 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("no region spans the band in source coordinates, got %v", regions)
	}
}

func TestDetectRegions_LinkThresholdJoinsWords(t *testing.T) {
	img := whitePage(300, 200)
	// Two word-like clusters with a small gap between them.
	drawStrokes(img, 20, 90, 80, 100)
	drawStrokes(img, 96, 170, 80, 100)

	p := testParams()
	p.LinkThreshold = 1.0
	regions, err := New(nil).DetectRegions(img, p)
	if err != nil {
		t.Fatalf("DetectRegions: %v", err)
	}
	if len(regions) != 1 {
		t.Errorf("got %d regions, want gap bridged into 1", len(regions))
	}
}

func TestDetectRegions_EmptyImage(t *testing.T) {
	if _, err := New(nil).DetectRegions(image.NewNRGBA(image.Rect(0, 0, 0, 0)), testParams()); err == nil {
		t.Fatal("expected error for empty image")
	}
}
