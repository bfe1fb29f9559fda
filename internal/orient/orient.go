// Package orient implements the rotation ensemble for orientation-ambiguous
// text.
//
// When callers supply rotation hints, every strip is expanded into one
// variant per candidate angle before recognition, and the recognizer's
// per-variant outputs are collapsed back to a single best-confidence result
// per original box afterwards. Expansion and collapse are symmetric phases
// over a shared grouping key (the originating box index), so rotation stays
// fully transparent to callers: one box in, one result out.
package orient

import (
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/pagelens/pagelens/internal/strip"
)

// Variant is one rotated interpretation of a strip. Angle 0 is the strip as
// rectified; other angles are counterclockwise rotations of it.
type Variant struct {
	Strip strip.Strip
	Angle int
}

// Candidate is a recognized variant awaiting collapse.
type Candidate struct {
	BoxIndex   int
	Angle      int
	Text       string
	Confidence float64
}

// Expand produces one Variant per strip and candidate angle. Angle 0 is
// always included, deduplicated if the caller lists it explicitly. Rotated
// variants are re-normalized to the model height, since rotating a strip by
// 90 or 270 degrees swaps its axes. The second return value is the widest
// variant in the expanded batch.
func Expand(strips []strip.Strip, angles []int, height int) ([]Variant, int) {
	withZero := []int{0}
	for _, a := range angles {
		if norm(a) != 0 {
			withZero = append(withZero, norm(a))
		}
	}

	variants := make([]Variant, 0, len(strips)*len(withZero))
	maxWidth := 0
	for _, a := range withZero {
		for _, s := range strips {
			v := s
			switch a {
			case 90:
				v.Image = strip.ResizeToHeight(imaging.Rotate90(s.Image), height)
			case 180:
				v.Image = imaging.Rotate180(s.Image)
			case 270:
				v.Image = strip.ResizeToHeight(imaging.Rotate270(s.Image), height)
			}
			maxWidth = max(maxWidth, v.Image.Bounds().Dx())
			variants = append(variants, Variant{Strip: v, Angle: a})
		}
	}
	return variants, maxWidth
}

// Collapse reduces candidates to exactly one per box index: the variant with
// the highest confidence. Exact confidence ties go to the variant with the
// least rotation (angular distance from 0). Collapse is idempotent; running
// it on already-collapsed output returns the same results. Output is ordered
// by box index.
func Collapse(cands []Candidate) []Candidate {
	best := make(map[int]Candidate)
	for _, c := range cands {
		cur, ok := best[c.BoxIndex]
		if !ok || better(c, cur) {
			best[c.BoxIndex] = c
		}
	}

	out := make([]Candidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BoxIndex < out[j].BoxIndex })
	return out
}

// better reports whether a should replace b as the box's winning variant.
func better(a, b Candidate) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return rotationDistance(a.Angle) < rotationDistance(b.Angle)
}

// rotationDistance is the angular distance from upright, so 270 (i.e. -90)
// ties with 90 and both beat 180.
func rotationDistance(angle int) int {
	a := norm(angle)
	return int(math.Min(float64(a), float64(360-a)))
}

func norm(angle int) int {
	a := angle % 360
	if a < 0 {
		a += 360
	}
	return a
}
