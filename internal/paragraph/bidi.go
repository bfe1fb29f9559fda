package paragraph

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Display converts a string from logical order to visual order for
// right-to-left scripts. Embedded left-to-right runs (latin words, numerals)
// keep their own direction. Applying Display to an already-visual RTL string
// returns the logical order, so the transform is its own inverse for pure
// RTL text.
func Display(s string) string {
	p := bidi.Paragraph{}
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.RightToLeft)); err != nil {
		return s
	}
	ordering, err := p.Order()
	if err != nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		text := run.String()
		if run.Direction() == bidi.RightToLeft {
			text = reverse(text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// reverse flips a string rune-wise.
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
