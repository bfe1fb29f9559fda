package geometry

import "math"

// Point is a 2D point in source-image pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Region is a raw polygon produced by the text detector. It has at least
// four points and is never mutated after creation.
type Region struct {
	Points []Point `json:"points"`
}

// Rect is an axis-aligned rectangle approximating a horizontal text line.
type Rect struct {
	XMin int `json:"x_min"`
	XMax int `json:"x_max"`
	YMin int `json:"y_min"`
	YMax int `json:"y_max"`
}

// Quad is an ordered 4-corner polygon for text whose slope exceeds the
// horizontal tolerance. Corner order follows the detector convention:
// top-left, top-right, bottom-right, bottom-left.
type Quad [4]Point

// Width returns the rectangle width in pixels.
func (r Rect) Width() int { return r.XMax - r.XMin }

// Height returns the rectangle height in pixels.
func (r Rect) Height() int { return r.YMax - r.YMin }

// YCenter returns the vertical center of the rectangle.
func (r Rect) YCenter() float64 { return 0.5 * float64(r.YMin+r.YMax) }

// ToQuad promotes an axis-aligned rectangle to corner form.
func (r Rect) ToQuad() Quad {
	return Quad{
		{X: float64(r.XMin), Y: float64(r.YMin)},
		{X: float64(r.XMax), Y: float64(r.YMin)},
		{X: float64(r.XMax), Y: float64(r.YMax)},
		{X: float64(r.XMin), Y: float64(r.YMax)},
	}
}

// Bounds returns the axis-aligned bounding rectangle of the quad.
func (q Quad) Bounds() Rect {
	xMin, xMax := q[0].X, q[0].X
	yMin, yMax := q[0].Y, q[0].Y
	for _, p := range q[1:] {
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

// Expand moves every corner away from the quad centroid by margin pixels.
func (q Quad) Expand(margin float64) Quad {
	var cx, cy float64
	for _, p := range q {
		cx += p.X
		cy += p.Y
	}
	cx /= 4
	cy /= 4

	var out Quad
	for i, p := range q {
		dx, dy := p.X-cx, p.Y-cy
		norm := math.Hypot(dx, dy)
		if norm == 0 {
			out[i] = p
			continue
		}
		out[i] = Point{X: p.X + dx/norm*margin, Y: p.Y + dy/norm*margin}
	}
	return out
}

// EdgeLen returns the euclidean length of the edge from corner i to corner j.
func (q Quad) EdgeLen(i, j int) float64 {
	return math.Hypot(q[j].X-q[i].X, q[j].Y-q[i].Y)
}
