package geometry

import (
	"math"
	"sort"
)

// GroupOptions are the clustering tolerances. All ratio thresholds are
// normalized by line height so they behave consistently across font sizes.
type GroupOptions struct {
	// SlopeThs is the maximum absolute edge slope for a region to count as
	// horizontal. Steeper regions become free-form quads.
	SlopeThs float64

	// YCenterThs is the maximum vertical-center distance, in units of mean
	// line height, for two regions to share a reading line.
	YCenterThs float64

	// HeightThs is the maximum height deviation, relative to the running
	// mean height, for regions merged within a line.
	HeightThs float64

	// WidthThs is the maximum horizontal gap, in units of mean line height,
	// bridged when merging adjacent regions in a line.
	WidthThs float64

	// AddMargin expands every output box by this fraction of its height on
	// all four sides, so ascenders and descenders are not clipped.
	AddMargin float64

	// MergeHorizontal enables line merging. When false every horizontal
	// candidate is emitted as its own rectangle, which callers use when a
	// fixed region count is expected (structured documents).
	MergeHorizontal bool
}

// DefaultGroupOptions returns the tolerances tuned for general scene text.
func DefaultGroupOptions() GroupOptions {
	return GroupOptions{
		SlopeThs:        0.1,
		YCenterThs:      0.5,
		HeightThs:       0.5,
		WidthThs:        0.5,
		AddMargin:       0.1,
		MergeHorizontal: true,
	}
}

// candidate is a horizontal region awaiting line clustering.
type candidate struct {
	rect    Rect
	yCenter float64
	height  float64
}

// GroupRegions partitions raw detector polygons into merged horizontal line
// rectangles and free-form quads. Every input region contributes to exactly
// one output box.
func GroupRegions(regions []Region, opts GroupOptions) ([]Rect, []Quad) {
	cands := make([]candidate, 0, len(regions))
	quads := make([]Quad, 0)

	for _, reg := range regions {
		slope, ok := dominantSlope(reg)
		if ok && math.Abs(slope) <= opts.SlopeThs {
			r := regionBounds(reg)
			cands = append(cands, candidate{
				rect:    r,
				yCenter: r.YCenter(),
				height:  float64(r.Height()),
			})
			continue
		}
		q := regionQuad(reg)
		b := q.Bounds()
		margin := 1.44 * opts.AddMargin * math.Min(float64(b.Width()), float64(b.Height()))
		quads = append(quads, q.Expand(margin))
	}

	if !opts.MergeHorizontal {
		rects := make([]Rect, 0, len(cands))
		for _, c := range cands {
			rects = append(rects, withMargin(c.rect, opts.AddMargin))
		}
		return rects, quads
	}

	rects := make([]Rect, 0, len(cands))
	for _, row := range clusterRows(cands, opts.YCenterThs) {
		for _, run := range mergeRuns(row, opts.HeightThs, opts.WidthThs) {
			rects = append(rects, withMargin(run, opts.AddMargin))
		}
	}
	return rects, quads
}

// clusterRows groups candidates into reading lines. Candidates are sorted by
// vertical center and greedily assigned to the current line while their
// center stays within YCenterThs mean line heights of the line's mean center.
func clusterRows(cands []candidate, yCenterThs float64) [][]candidate {
	if len(cands) == 0 {
		return nil
	}
	sorted := make([]candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].yCenter < sorted[j].yCenter
	})

	var rows [][]candidate
	row := []candidate{sorted[0]}
	sumCenter, sumHeight := sorted[0].yCenter, sorted[0].height

	for _, c := range sorted[1:] {
		n := float64(len(row))
		meanCenter := sumCenter / n
		meanHeight := sumHeight / n
		if math.Abs(meanCenter-c.yCenter) <= yCenterThs*meanHeight {
			row = append(row, c)
			sumCenter += c.yCenter
			sumHeight += c.height
			continue
		}
		rows = append(rows, row)
		row = []candidate{c}
		sumCenter, sumHeight = c.yCenter, c.height
	}
	return append(rows, row)
}

// mergeRuns walks one reading line left to right and merges adjacent
// candidates whose heights agree within HeightThs and whose horizontal gap,
// normalized by the running mean height, is at most WidthThs. Each merged run
// becomes the union rectangle of its members.
func mergeRuns(row []candidate, heightThs, widthThs float64) []Rect {
	if len(row) == 0 {
		return nil
	}
	sorted := make([]candidate, len(row))
	copy(sorted, row)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].rect.XMin < sorted[j].rect.XMin
	})

	var out []Rect
	run := sorted[0].rect
	sumHeight := sorted[0].height
	count := 1.0

	for _, c := range sorted[1:] {
		meanHeight := sumHeight / count
		gap := float64(c.rect.XMin - run.XMax)
		if math.Abs(meanHeight-c.height) <= heightThs*meanHeight && gap <= widthThs*meanHeight {
			run = union(run, c.rect)
			sumHeight += c.height
			count++
			continue
		}
		out = append(out, run)
		run = c.rect
		sumHeight = c.height
		count = 1
	}
	return append(out, run)
}

// FilterRects drops rectangles whose larger dimension is at most minSize.
func FilterRects(rects []Rect, minSize int) []Rect {
	out := make([]Rect, 0, len(rects))
	for _, r := range rects {
		if max(r.Width(), r.Height()) > minSize {
			out = append(out, r)
		}
	}
	return out
}

// FilterQuads drops quads whose bounding box's larger dimension is at most
// minSize.
func FilterQuads(quads []Quad, minSize int) []Quad {
	out := make([]Quad, 0, len(quads))
	for _, q := range quads {
		b := q.Bounds()
		if max(b.Width(), b.Height()) > minSize {
			out = append(out, q)
		}
	}
	return out
}

// dominantSlope estimates the slope of the region's top and bottom edges and
// returns the steeper of the two. The second return value is false when the
// dominant edge is near vertical, in which case the region is always treated
// as free-form.
func dominantSlope(reg Region) (float64, bool) {
	pts := reg.Points
	if len(pts) == 4 {
		// Horizontal runs shorter than 10px get their slope damped rather
		// than rejected, matching detector output conventions.
		top := (pts[1].Y - pts[0].Y) / math.Max(10, pts[1].X-pts[0].X)
		bottom := (pts[2].Y - pts[3].Y) / math.Max(10, pts[2].X-pts[3].X)
		if math.Abs(top) >= math.Abs(bottom) {
			return top, true
		}
		return bottom, true
	}

	// Polygons with extra vertices: least-squares line through all points.
	var mx, my float64
	for _, p := range pts {
		mx += p.X
		my += p.Y
	}
	n := float64(len(pts))
	mx /= n
	my /= n

	var num, den float64
	for _, p := range pts {
		num += (p.X - mx) * (p.Y - my)
		den += (p.X - mx) * (p.X - mx)
	}
	if den < 1e-9 {
		return 0, false
	}
	return num / den, true
}

// regionBounds returns the axis-aligned extent of a region.
func regionBounds(reg Region) Rect {
	xMin, xMax := reg.Points[0].X, reg.Points[0].X
	yMin, yMax := reg.Points[0].Y, reg.Points[0].Y
	for _, p := range reg.Points[1:] {
		xMin = math.Min(xMin, p.X)
		xMax = math.Max(xMax, p.X)
		yMin = math.Min(yMin, p.Y)
		yMax = math.Max(yMax, p.Y)
	}
	return Rect{
		XMin: int(math.Floor(xMin)),
		XMax: int(math.Ceil(xMax)),
		YMin: int(math.Floor(yMin)),
		YMax: int(math.Ceil(yMax)),
	}
}

// regionQuad keeps the detector's corner order for 4-point regions and falls
// back to the bounding quad otherwise.
func regionQuad(reg Region) Quad {
	if len(reg.Points) == 4 {
		return Quad{reg.Points[0], reg.Points[1], reg.Points[2], reg.Points[3]}
	}
	return regionBounds(reg).ToQuad()
}

// withMargin expands a rectangle by AddMargin fractions of its height on all
// four sides.
func withMargin(r Rect, addMargin float64) Rect {
	m := int(addMargin * float64(r.Height()))
	return Rect{XMin: r.XMin - m, XMax: r.XMax + m, YMin: r.YMin - m, YMax: r.YMax + m}
}

// union returns the smallest rectangle covering both inputs.
func union(a, b Rect) Rect {
	return Rect{
		XMin: min(a.XMin, b.XMin),
		XMax: max(a.XMax, b.XMax),
		YMin: min(a.YMin, b.YMin),
		YMax: max(a.YMax, b.YMax),
	}
}
