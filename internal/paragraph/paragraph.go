// Package paragraph merges recognized text lines into reading-order
// paragraphs.
//
// Lines are clustered by spatial proximity: a line joins a paragraph when it
// sits within a fraction of the paragraph's mean line height vertically and
// within a comparable horizontal reach of the paragraph's extent. Within a
// paragraph, lines are emitted top to bottom and, inside each visual row,
// left to right for ltr scripts or right to left for rtl scripts. A line with
// no neighbors becomes its own single-line paragraph; paragraphs never split
// a visually contiguous block.
package paragraph

import (
	"strings"

	"github.com/pagelens/pagelens/internal/geometry"
)

// Direction is the paragraph reading direction.
type Direction string

const (
	LeftToRight Direction = "ltr"
	RightToLeft Direction = "rtl"
)

// Line is one recognized text line entering paragraph assembly.
type Line struct {
	Box        geometry.Quad
	Text       string
	Confidence float64
}

// Paragraph is a reading-order group of lines with a merged text string.
type Paragraph struct {
	// Box is the union of the member line boxes.
	Box geometry.Rect

	// Text is the member texts joined with single spaces in reading order.
	Text string

	// Confidence is the mean confidence of the member lines.
	Confidence float64
}

// Options tune paragraph clustering. The thresholds are expressed in units
// of the group's mean line height.
type Options struct {
	// XThs is the horizontal reach beyond a paragraph's extent within which
	// a line is still considered part of it.
	XThs float64

	// YThs is the vertical reach beyond a paragraph's extent within which a
	// line is still considered part of it.
	YThs float64
}

// DefaultOptions matches the clustering used for general documents.
func DefaultOptions() Options {
	return Options{XThs: 1.0, YThs: 0.5}
}

// member is a line with cached extents and a paragraph assignment.
type member struct {
	line    Line
	rect    geometry.Rect
	yCenter float64
	height  float64
	group   int // 0 = unassigned
}

// Assemble clusters lines into paragraphs and merges their text in the given
// reading direction. Input order does not matter; output paragraphs are
// ordered by their top edge.
func Assemble(lines []Line, dir Direction, opts Options) []Paragraph {
	if len(lines) == 0 {
		return nil
	}

	members := make([]*member, len(lines))
	for i, l := range lines {
		r := l.Box.Bounds()
		members[i] = &member{
			line:    l,
			rect:    r,
			yCenter: r.YCenter(),
			height:  float64(r.Height()),
		}
	}

	grow(members, opts)

	groups := map[int][]*member{}
	order := []int{}
	for _, m := range members {
		if _, seen := groups[m.group]; !seen {
			order = append(order, m.group)
		}
		groups[m.group] = append(groups[m.group], m)
	}

	paras := make([]Paragraph, 0, len(order))
	for _, g := range order {
		paras = append(paras, assembleGroup(groups[g], dir))
	}
	sortByTop(paras)
	return paras
}

// grow assigns every member to a paragraph by seeded accretion: seed a new
// paragraph with the first unassigned line, then repeatedly absorb any
// unassigned line that falls within the paragraph's grown extent. When
// nothing more can be absorbed, seed the next paragraph.
func grow(members []*member, opts Options) {
	current := 0
	for {
		seed := firstUnassigned(members)
		if seed == nil {
			return
		}
		current++
		seed.group = current

		for {
			var sumHeight float64
			count := 0
			ext := seed.rect
			for _, m := range members {
				if m.group != current {
					continue
				}
				ext = unionRect(ext, m.rect)
				sumHeight += m.height
				count++
			}
			meanHeight := sumHeight / float64(count)
			reachX := int(opts.XThs * meanHeight)
			reachY := int(opts.YThs * meanHeight)
			grown := geometry.Rect{
				XMin: ext.XMin - reachX, XMax: ext.XMax + reachX,
				YMin: ext.YMin - reachY, YMax: ext.YMax + reachY,
			}

			absorbed := false
			for _, m := range members {
				if m.group != 0 {
					continue
				}
				if overlapsX(grown, m.rect) && overlapsY(grown, m.rect) {
					m.group = current
					absorbed = true
					break
				}
			}
			if !absorbed {
				break
			}
		}
	}
}

// assembleGroup orders a paragraph's lines and joins their text. Lines are
// consumed row by row: the topmost remaining line defines a visual row
// containing every line whose center sits within 0.4 line heights, and the
// row is drained left to right (ltr) or right to left (rtl).
func assembleGroup(ms []*member, dir Direction) Paragraph {
	box := ms[0].rect
	var sumHeight, sumConf float64
	for _, m := range ms {
		box = unionRect(box, m.rect)
		sumHeight += m.height
		sumConf += m.line.Confidence
	}
	meanHeight := sumHeight / float64(len(ms))

	remaining := append([]*member(nil), ms...)
	var parts []string
	for len(remaining) > 0 {
		top := remaining[0].yCenter
		for _, m := range remaining[1:] {
			if m.yCenter < top {
				top = m.yCenter
			}
		}

		best := -1
		for i, m := range remaining {
			if m.yCenter >= top+0.4*meanHeight {
				continue
			}
			if best == -1 {
				best = i
				continue
			}
			switch dir {
			case RightToLeft:
				if m.rect.XMax > remaining[best].rect.XMax {
					best = i
				}
			default:
				if m.rect.XMin < remaining[best].rect.XMin {
					best = i
				}
			}
		}

		parts = append(parts, remaining[best].line.Text)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return Paragraph{
		Box:        box,
		Text:       strings.Join(parts, " "),
		Confidence: sumConf / float64(len(ms)),
	}
}

func firstUnassigned(members []*member) *member {
	for _, m := range members {
		if m.group == 0 {
			return m
		}
	}
	return nil
}

func unionRect(a, b geometry.Rect) geometry.Rect {
	return geometry.Rect{
		XMin: min(a.XMin, b.XMin),
		XMax: max(a.XMax, b.XMax),
		YMin: min(a.YMin, b.YMin),
		YMax: max(a.YMax, b.YMax),
	}
}

func overlapsX(a, b geometry.Rect) bool { return b.XMin <= a.XMax && b.XMax >= a.XMin }
func overlapsY(a, b geometry.Rect) bool { return b.YMin <= a.YMax && b.YMax >= a.YMin }

func sortByTop(paras []Paragraph) {
	for i := 1; i < len(paras); i++ {
		for j := i; j > 0 && paras[j].Box.YMin < paras[j-1].Box.YMin; j-- {
			paras[j], paras[j-1] = paras[j-1], paras[j]
		}
	}
}
