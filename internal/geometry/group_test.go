package geometry

import (
	"math"
	"testing"
)

// rectRegion builds a 4-point axis-aligned region.
func rectRegion(xMin, yMin, xMax, yMax float64) Region {
	return Region{Points: []Point{
		{X: xMin, Y: yMin},
		{X: xMax, Y: yMin},
		{X: xMax, Y: yMax},
		{X: xMin, Y: yMax},
	}}
}

// slantedRegion builds a 4-point region whose top edge rises by dy over dx.
func slantedRegion(x, y, w, h, dy float64) Region {
	return Region{Points: []Point{
		{X: x, Y: y},
		{X: x + w, Y: y + dy},
		{X: x + w, Y: y + dy + h},
		{X: x, Y: y + h},
	}}
}

func TestGroupRegions_Empty(t *testing.T) {
	rects, quads := GroupRegions(nil, DefaultGroupOptions())
	if len(rects) != 0 || len(quads) != 0 {
		t.Errorf("empty input: got %d rects, %d quads, want 0/0", len(rects), len(quads))
	}
}

func TestGroupRegions_MergesSameLine(t *testing.T) {
	// Two words on the same line: y-center difference is 0.05x height,
	// x-ranges nearly touch.
	a := rectRegion(10, 100, 110, 120)
	b := rectRegion(115, 101, 215, 121)

	rects, quads := GroupRegions([]Region{a, b}, DefaultGroupOptions())
	if len(quads) != 0 {
		t.Fatalf("expected no free quads, got %d", len(quads))
	}
	if len(rects) != 1 {
		t.Fatalf("expected one merged rect, got %d: %v", len(rects), rects)
	}
	r := rects[0]
	if r.XMin > 10 || r.XMax < 215 {
		t.Errorf("merged rect %+v does not span both words", r)
	}
}

func TestGroupRegions_SeparatesDistantLines(t *testing.T) {
	// Same two words but the second is two line heights lower.
	a := rectRegion(10, 100, 110, 120)
	b := rectRegion(10, 140, 110, 160)

	rects, _ := GroupRegions([]Region{a, b}, DefaultGroupOptions())
	if len(rects) != 2 {
		t.Fatalf("expected two rects for distant lines, got %d: %v", len(rects), rects)
	}
}

func TestGroupRegions_SlantedGoesFree(t *testing.T) {
	reg := slantedRegion(10, 10, 100, 20, 40) // slope 0.4 > default 0.1

	rects, quads := GroupRegions([]Region{reg}, DefaultGroupOptions())
	if len(rects) != 0 {
		t.Errorf("slanted region produced %d rects, want 0", len(rects))
	}
	if len(quads) != 1 {
		t.Fatalf("slanted region produced %d quads, want 1", len(quads))
	}
}

func TestGroupRegions_NearVerticalGoesFree(t *testing.T) {
	// A polygon with extra vertices stacked vertically: slope undefined.
	reg := Region{Points: []Point{
		{X: 50, Y: 10}, {X: 50, Y: 40}, {X: 50, Y: 80},
		{X: 50, Y: 120}, {X: 50, Y: 160},
	}}

	rects, quads := GroupRegions([]Region{reg}, DefaultGroupOptions())
	if len(rects) != 0 || len(quads) != 1 {
		t.Errorf("near-vertical region: got %d rects, %d quads, want 0/1", len(rects), len(quads))
	}
}

func TestGroupRegions_Partition(t *testing.T) {
	// Every input region must land in exactly one output box.
	regions := []Region{
		rectRegion(0, 0, 50, 20),
		rectRegion(55, 1, 100, 21),
		rectRegion(0, 100, 80, 125),
		slantedRegion(200, 200, 60, 15, 30),
		rectRegion(0, 300, 40, 320),
	}

	rects, quads := GroupRegions(regions, DefaultGroupOptions())

	// 3 horizontal inputs collapse to 2 lines, 1 slanted stays free.
	if len(rects)+len(quads) > len(regions) {
		t.Errorf("more outputs (%d) than inputs (%d)", len(rects)+len(quads), len(regions))
	}
	for _, reg := range regions {
		b := regionBounds(reg)
		cx := b.YCenter()
		mx := 0.5 * float64(b.XMin+b.XMax)
		covered := false
		for _, r := range rects {
			if mx >= float64(r.XMin) && mx <= float64(r.XMax) && cx >= float64(r.YMin) && cx <= float64(r.YMax) {
				covered = true
			}
		}
		for _, q := range quads {
			qb := q.Bounds()
			if mx >= float64(qb.XMin) && mx <= float64(qb.XMax) && cx >= float64(qb.YMin) && cx <= float64(qb.YMax) {
				covered = true
			}
		}
		if !covered {
			t.Errorf("region centered (%v,%v) not covered by any output box", mx, cx)
		}
	}
}

func TestGroupRegions_MonotonicMerging(t *testing.T) {
	regions := []Region{
		rectRegion(0, 0, 40, 20),
		rectRegion(60, 3, 100, 23),
		rectRegion(130, 6, 170, 26),
		rectRegion(0, 40, 40, 60),
	}

	loose := DefaultGroupOptions()
	tight := DefaultGroupOptions()
	tight.YCenterThs, tight.HeightThs, tight.WidthThs = 0.05, 0.05, 0.05
	loose.YCenterThs, loose.HeightThs, loose.WidthThs = 2, 2, 5

	tightRects, _ := GroupRegions(regions, tight)
	looseRects, _ := GroupRegions(regions, loose)
	if len(looseRects) > len(tightRects) {
		t.Errorf("loosening thresholds increased box count: tight=%d loose=%d",
			len(tightRects), len(looseRects))
	}
}

func TestGroupRegions_NoMerge(t *testing.T) {
	a := rectRegion(10, 100, 110, 120)
	b := rectRegion(115, 101, 215, 121)

	opts := DefaultGroupOptions()
	opts.MergeHorizontal = false
	rects, _ := GroupRegions([]Region{a, b}, opts)
	if len(rects) != 2 {
		t.Fatalf("merge disabled: got %d rects, want 2", len(rects))
	}
}

func TestGroupRegions_AddMargin(t *testing.T) {
	reg := rectRegion(100, 100, 200, 140) // height 40

	opts := DefaultGroupOptions()
	opts.AddMargin = 0.25
	rects, _ := GroupRegions([]Region{reg}, opts)
	if len(rects) != 1 {
		t.Fatalf("got %d rects, want 1", len(rects))
	}
	r := rects[0]
	if r.XMin != 90 || r.XMax != 210 || r.YMin != 90 || r.YMax != 150 {
		t.Errorf("margin expansion: got %+v, want 10px on every side", r)
	}
}

func TestFilterRects(t *testing.T) {
	rects := []Rect{
		{XMin: 0, XMax: 5, YMin: 0, YMax: 5},    // 5px, dropped
		{XMin: 0, XMax: 50, YMin: 0, YMax: 10},  // wide enough
		{XMin: 0, XMax: 10, YMin: 0, YMax: 100}, // tall enough
	}
	kept := FilterRects(rects, 20)
	if len(kept) != 2 {
		t.Errorf("FilterRects kept %d, want 2", len(kept))
	}
}

func TestFilterQuads(t *testing.T) {
	small := Rect{XMin: 0, XMax: 8, YMin: 0, YMax: 8}.ToQuad()
	large := Rect{XMin: 0, XMax: 80, YMin: 0, YMax: 20}.ToQuad()
	kept := FilterQuads([]Quad{small, large}, 20)
	if len(kept) != 1 {
		t.Errorf("FilterQuads kept %d, want 1", len(kept))
	}
}

func TestQuad_Expand(t *testing.T) {
	q := Rect{XMin: 10, XMax: 30, YMin: 10, YMax: 30}.ToQuad()
	e := q.Expand(5)
	for i := range q {
		before := math.Hypot(q[i].X-20, q[i].Y-20)
		after := math.Hypot(e[i].X-20, e[i].Y-20)
		if after-before < 4.9 || after-before > 5.1 {
			t.Errorf("corner %d moved %.2f from centroid, want 5", i, after-before)
		}
	}
}

func TestRect_Invariants(t *testing.T) {
	r := Rect{XMin: 3, XMax: 9, YMin: 2, YMax: 12}
	if r.Width() != 6 || r.Height() != 10 {
		t.Errorf("dimensions: got %dx%d, want 6x10", r.Width(), r.Height())
	}
	if r.YCenter() != 7 {
		t.Errorf("YCenter: got %v, want 7", r.YCenter())
	}
}
