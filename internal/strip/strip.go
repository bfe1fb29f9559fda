package strip

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/pagelens/pagelens/internal/geometry"
)

// PadInfo records how a strip was padded to the batch width.
type PadInfo struct {
	// Width is the strip's unpadded width in pixels.
	Width int `json:"width"`

	// Padded is the number of fill pixels appended on the right.
	Padded int `json:"padded"`
}

// Strip is a rectified, fixed-height image strip ready for recognition.
type Strip struct {
	// Index is the position of the originating box in the caller's box
	// order. It is the grouping key that ties recognition results back to
	// their box, including across rotation variants.
	Index int

	// Box is the originating box in corner form.
	Box geometry.Quad

	// Image is the rectified strip. Height is always the requested model
	// height; width varies per strip until PadBatch is applied.
	Image *image.NRGBA

	// Pad is populated by PadBatch.
	Pad PadInfo
}

// Skipped reports a box that could not be rectified.
type Skipped struct {
	Index int
	Err   error
}

// DegenerateBoxError indicates a box with no usable area.
type DegenerateBoxError struct {
	Box    geometry.Quad
	Reason string
}

func (e *DegenerateBoxError) Error() string {
	b := e.Box.Bounds()
	return fmt.Sprintf("degenerate box [%d,%d]x[%d,%d]: %s",
		b.XMin, b.XMax, b.YMin, b.YMax, e.Reason)
}

// IsDegenerate reports whether err is (or wraps) a DegenerateBoxError.
func IsDegenerate(err error) bool {
	var d *DegenerateBoxError
	return errors.As(err, &d)
}

// Build rectifies every box into a strip of the given height. Horizontal
// rectangles come first, then free quads, both in input order. Degenerate
// boxes are skipped and reported rather than failing the batch. The second
// return value is the widest unpadded strip in the batch.
func Build(src image.Image, rects []geometry.Rect, quads []geometry.Quad, height int) ([]Strip, int, []Skipped) {
	strips := make([]Strip, 0, len(rects)+len(quads))
	var skipped []Skipped
	maxWidth := 0
	idx := 0

	for _, r := range rects {
		s, err := FromRect(src, r, height)
		if err != nil {
			skipped = append(skipped, Skipped{Index: idx, Err: err})
			idx++
			continue
		}
		s.Index = idx
		strips = append(strips, s)
		maxWidth = max(maxWidth, s.Image.Bounds().Dx())
		idx++
	}
	for _, q := range quads {
		s, err := FromQuad(src, q, height)
		if err != nil {
			skipped = append(skipped, Skipped{Index: idx, Err: err})
			idx++
			continue
		}
		s.Index = idx
		strips = append(strips, s)
		maxWidth = max(maxWidth, s.Image.Bounds().Dx())
		idx++
	}
	return strips, maxWidth, skipped
}

// FromRect crops an axis-aligned box and resizes it to the model height,
// preserving aspect ratio. The box is clamped to the image bounds first.
func FromRect(src image.Image, r geometry.Rect, height int) (Strip, error) {
	b := src.Bounds()
	x0 := max(r.XMin, b.Min.X)
	y0 := max(r.YMin, b.Min.Y)
	x1 := min(r.XMax, b.Max.X)
	y1 := min(r.YMax, b.Max.Y)
	if x1-x0 <= 0 || y1-y0 <= 0 {
		return Strip{}, &DegenerateBoxError{Box: r.ToQuad(), Reason: "zero area after clamping"}
	}

	cropped := imaging.Crop(src, image.Rect(x0, y0, x1, y1))
	return Strip{
		Box:   geometry.Rect{XMin: x0, XMax: x1, YMin: y0, YMax: y1}.ToQuad(),
		Image: ResizeToHeight(cropped, height),
	}, nil
}

// FromQuad rectifies a free-form quad by perspective transform. The strip
// width is proportional to the quad's baseline length.
func FromQuad(src image.Image, q geometry.Quad, height int) (Strip, error) {
	baseline := 0.5 * (q.EdgeLen(0, 1) + q.EdgeLen(3, 2))
	side := 0.5 * (q.EdgeLen(0, 3) + q.EdgeLen(1, 2))
	if baseline < 1 || side < 1 {
		return Strip{}, &DegenerateBoxError{Box: q, Reason: "collapsed edge"}
	}

	width := max(1, int(math.Round(float64(height)*baseline/side)))
	img, err := warpQuad(src, q, width, height)
	if err != nil {
		return Strip{}, err
	}
	return Strip{Box: q, Image: img}, nil
}

// Whole builds a single strip spanning the entire image, used when the
// caller recognizes without any detected boxes.
func Whole(src image.Image, height int) (Strip, error) {
	b := src.Bounds()
	return FromRect(src, geometry.Rect{
		XMin: b.Min.X, XMax: b.Max.X,
		YMin: b.Min.Y, YMax: b.Max.Y,
	}, height)
}

// ResizeToHeight scales an image to the target height, preserving aspect
// ratio. Lanczos keeps thin strokes legible at small strip heights. Width is
// always at least one pixel.
func ResizeToHeight(img image.Image, height int) *image.NRGBA {
	b := img.Bounds()
	ratio := float64(b.Dx()) / float64(b.Dy())
	width := max(1, int(math.Round(float64(height)*ratio)))
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// PadBatch pads every strip on the right to the given width with the fill
// color and records the unpadded width in PadInfo. Strips already at the
// batch width are returned unchanged apart from PadInfo.
func PadBatch(strips []Strip, width int, fill color.Color) []Strip {
	out := make([]Strip, len(strips))
	for i, s := range strips {
		w := s.Image.Bounds().Dx()
		h := s.Image.Bounds().Dy()
		s.Pad = PadInfo{Width: w, Padded: max(0, width-w)}
		if w < width {
			canvas := imaging.New(width, h, fill)
			s.Image = imaging.Paste(canvas, s.Image, image.Pt(0, 0))
		}
		out[i] = s
	}
	return out
}
