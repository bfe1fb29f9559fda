package strip

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/pagelens/pagelens/internal/geometry"
)

// warpQuad maps the quad onto an upright width x height strip using a
// perspective (projective) transform with bilinear sampling. Samples that
// fall outside the source image read as white, which matches the paper
// background assumption of the recognizer.
func warpQuad(src image.Image, q geometry.Quad, width, height int) (*image.NRGBA, error) {
	h, ok := homography(
		[4][2]float64{{0, 0}, {float64(width), 0}, {float64(width), float64(height)}, {0, float64(height)}},
		[4][2]float64{{q[0].X, q[0].Y}, {q[1].X, q[1].Y}, {q[2].X, q[2].Y}, {q[3].X, q[3].Y}},
	)
	if !ok {
		return nil, &DegenerateBoxError{Box: q, Reason: "unrectifiable corner layout"}
	}

	flat := imaging.Clone(src)
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x)+0.5, float64(y)+0.5
			den := h[6]*dx + h[7]*dy + 1
			if math.Abs(den) < 1e-12 {
				continue
			}
			sx := (h[0]*dx + h[1]*dy + h[2]) / den
			sy := (h[3]*dx + h[4]*dy + h[5]) / den
			r, g, b, a := sampleBilinear(flat, sx, sy)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = b
			out.Pix[i+3] = a
		}
	}
	return out, nil
}

// homography solves the 8-parameter projective transform taking each dst
// corner to the matching src corner. Returns false when the corner layout is
// degenerate (collinear or coincident corners).
func homography(dst, src [4][2]float64) ([8]float64, bool) {
	var m [8][9]float64
	for i := 0; i < 4; i++ {
		xd, yd := dst[i][0], dst[i][1]
		xs, ys := src[i][0], src[i][1]
		m[2*i] = [9]float64{xd, yd, 1, 0, 0, 0, -xd * xs, -yd * xs, xs}
		m[2*i+1] = [9]float64{0, 0, 0, xd, yd, 1, -xd * ys, -yd * ys, ys}
	}

	// Gaussian elimination with partial pivoting.
	for col := 0; col < 8; col++ {
		pivot := col
		for row := col + 1; row < 8; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < 1e-10 {
			return [8]float64{}, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		for row := 0; row < 8; row++ {
			if row == col {
				continue
			}
			f := m[row][col] / m[col][col]
			for k := col; k < 9; k++ {
				m[row][k] -= f * m[col][k]
			}
		}
	}

	var h [8]float64
	for i := 0; i < 8; i++ {
		h[i] = m[i][8] / m[i][i]
	}
	return h, true
}

// sampleBilinear reads a sub-pixel location from an NRGBA image. Out-of-range
// samples return white.
func sampleBilinear(img *image.NRGBA, x, y float64) (r, g, b, a uint8) {
	b0 := img.Bounds()
	fx, fy := math.Floor(x-0.5), math.Floor(y-0.5)
	wx, wy := x-0.5-fx, y-0.5-fy

	pix := func(px, py int) [4]float64 {
		if px < b0.Min.X || px >= b0.Max.X || py < b0.Min.Y || py >= b0.Max.Y {
			return [4]float64{255, 255, 255, 255}
		}
		i := img.PixOffset(px, py)
		return [4]float64{
			float64(img.Pix[i]), float64(img.Pix[i+1]),
			float64(img.Pix[i+2]), float64(img.Pix[i+3]),
		}
	}

	x0, y0 := int(fx), int(fy)
	p00 := pix(x0, y0)
	p10 := pix(x0+1, y0)
	p01 := pix(x0, y0+1)
	p11 := pix(x0+1, y0+1)

	var out [4]uint8
	for c := 0; c < 4; c++ {
		top := p00[c]*(1-wx) + p10[c]*wx
		bot := p01[c]*(1-wx) + p11[c]*wx
		out[c] = uint8(math.Round(top*(1-wy) + bot*wy))
	}
	return out[0], out[1], out[2], out[3]
}
