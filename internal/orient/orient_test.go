package orient

import (
	"image"
	"image/color"
	"testing"

	"github.com/pagelens/pagelens/internal/geometry"
	"github.com/pagelens/pagelens/internal/strip"
)

func makeStrip(t *testing.T, index, width, height int) strip.Strip {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	return strip.Strip{
		Index: index,
		Box:   geometry.Rect{XMin: 0, XMax: width, YMin: 0, YMax: height}.ToQuad(),
		Image: img,
	}
}

func TestExpand_CountAndHeight(t *testing.T) {
	strips := []strip.Strip{
		makeStrip(t, 0, 128, 32),
		makeStrip(t, 1, 200, 32),
	}

	variants, maxWidth := Expand(strips, []int{90, 180, 270}, 32)
	if len(variants) != 8 {
		t.Fatalf("got %d variants, want 2 strips x 4 angles = 8", len(variants))
	}
	for _, v := range variants {
		if got := v.Strip.Image.Bounds().Dy(); got != 32 {
			t.Errorf("variant at angle %d has height %d, want 32", v.Angle, got)
		}
	}
	if maxWidth != 200 {
		t.Errorf("maxWidth: got %d, want 200", maxWidth)
	}
}

func TestExpand_DeduplicatesZero(t *testing.T) {
	strips := []strip.Strip{makeStrip(t, 0, 64, 32)}
	variants, _ := Expand(strips, []int{0, 180}, 32)
	if len(variants) != 2 {
		t.Fatalf("explicit angle 0 should not duplicate: got %d variants, want 2", len(variants))
	}
}

func TestExpand_RotationSwapsAspect(t *testing.T) {
	strips := []strip.Strip{makeStrip(t, 0, 128, 32)} // 4:1
	variants, _ := Expand(strips, []int{90}, 32)

	var rotated *Variant
	for i := range variants {
		if variants[i].Angle == 90 {
			rotated = &variants[i]
		}
	}
	if rotated == nil {
		t.Fatal("no 90-degree variant produced")
	}
	// 128x32 rotated becomes 32x128, then renormalized to height 32 => width 8.
	if got := rotated.Strip.Image.Bounds().Dx(); got != 8 {
		t.Errorf("rotated variant width: got %d, want 8", got)
	}
}

func TestCollapse_PicksHighestConfidence(t *testing.T) {
	cands := []Candidate{
		{BoxIndex: 0, Angle: 0, Text: "upside", Confidence: 0.2},
		{BoxIndex: 0, Angle: 90, Text: "right", Confidence: 0.91},
		{BoxIndex: 0, Angle: 180, Text: "down", Confidence: 0.91},
		{BoxIndex: 0, Angle: 270, Text: "left", Confidence: 0.3},
	}

	out := Collapse(cands)
	if len(out) != 1 {
		t.Fatalf("got %d results, want 1", len(out))
	}
	if out[0].Angle != 90 {
		t.Errorf("tie at 0.91 between 90 and 180: picked %d, want 90 (least rotation)", out[0].Angle)
	}
	if out[0].Text != "right" {
		t.Errorf("text: got %q, want %q", out[0].Text, "right")
	}
}

func TestCollapse_OnePerBox(t *testing.T) {
	var cands []Candidate
	for box := 0; box < 3; box++ {
		for _, angle := range []int{0, 90, 180, 270} {
			cands = append(cands, Candidate{
				BoxIndex:   box,
				Angle:      angle,
				Confidence: float64(angle%270) / 360,
			})
		}
	}

	out := Collapse(cands)
	if len(out) != 3 {
		t.Fatalf("got %d results, want one per box = 3", len(out))
	}
	for i, c := range out {
		if c.BoxIndex != i {
			t.Errorf("result %d has box index %d, want ordered by box", i, c.BoxIndex)
		}
	}
}

func TestCollapse_Idempotent(t *testing.T) {
	cands := []Candidate{
		{BoxIndex: 0, Angle: 90, Text: "a", Confidence: 0.8},
		{BoxIndex: 0, Angle: 0, Text: "b", Confidence: 0.5},
		{BoxIndex: 1, Angle: 0, Text: "c", Confidence: 0.9},
	}

	once := Collapse(cands)
	twice := Collapse(once)
	if len(once) != len(twice) {
		t.Fatalf("idempotence: %d vs %d results", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("result %d changed on second collapse: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestRotationDistance(t *testing.T) {
	tests := []struct {
		angle int
		want  int
	}{
		{0, 0}, {90, 90}, {180, 180}, {270, 90}, {-90, 90}, {360, 0},
	}
	for _, tt := range tests {
		if got := rotationDistance(tt.angle); got != tt.want {
			t.Errorf("rotationDistance(%d) = %d, want %d", tt.angle, got, tt.want)
		}
	}
}
