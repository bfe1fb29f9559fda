package paragraph

import (
	"testing"

	"github.com/pagelens/pagelens/internal/geometry"
)

func lineAt(xMin, yMin, xMax, yMax int, text string) Line {
	return Line{
		Box:        geometry.Rect{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}.ToQuad(),
		Text:       text,
		Confidence: 0.9,
	}
}

func TestAssemble_Empty(t *testing.T) {
	if got := Assemble(nil, LeftToRight, DefaultOptions()); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
}

func TestAssemble_IsolatedLinesStaySeparate(t *testing.T) {
	lines := []Line{
		lineAt(0, 0, 200, 20, "first"),
		lineAt(600, 400, 800, 420, "second"),
		lineAt(0, 800, 200, 820, "third"),
	}

	paras := Assemble(lines, LeftToRight, DefaultOptions())
	if len(paras) != len(lines) {
		t.Fatalf("isolated lines: got %d paragraphs, want %d", len(paras), len(lines))
	}
}

func TestAssemble_AdjacentLinesMerge(t *testing.T) {
	lines := []Line{
		lineAt(0, 0, 300, 20, "the quick brown"),
		lineAt(0, 24, 300, 44, "fox jumps over"),
		lineAt(0, 48, 260, 68, "the lazy dog"),
	}

	paras := Assemble(lines, LeftToRight, DefaultOptions())
	if len(paras) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(paras))
	}
	want := "the quick brown fox jumps over the lazy dog"
	if paras[0].Text != want {
		t.Errorf("merged text:\n got %q\nwant %q", paras[0].Text, want)
	}
	box := paras[0].Box
	if box.XMin != 0 || box.XMax != 300 || box.YMin != 0 || box.YMax != 68 {
		t.Errorf("paragraph box is not the union of line boxes: %+v", box)
	}
}

func TestAssemble_SameRowOrdering(t *testing.T) {
	// Two segments on one visual row, given out of order.
	lines := []Line{
		lineAt(200, 0, 380, 20, "world"),
		lineAt(0, 1, 180, 21, "hello"),
	}

	ltr := Assemble(lines, LeftToRight, DefaultOptions())
	if len(ltr) != 1 || ltr[0].Text != "hello world" {
		t.Errorf("ltr: got %+v, want one paragraph %q", ltr, "hello world")
	}

	rtl := Assemble(lines, RightToLeft, DefaultOptions())
	if len(rtl) != 1 || rtl[0].Text != "world hello" {
		t.Errorf("rtl: got %+v, want one paragraph %q", rtl, "world hello")
	}
}

func TestAssemble_ParagraphsSortedByTop(t *testing.T) {
	lines := []Line{
		lineAt(0, 500, 200, 520, "bottom"),
		lineAt(0, 0, 200, 20, "top"),
	}

	paras := Assemble(lines, LeftToRight, DefaultOptions())
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}
	if paras[0].Text != "top" || paras[1].Text != "bottom" {
		t.Errorf("paragraph order: got [%q, %q]", paras[0].Text, paras[1].Text)
	}
}

func TestAssemble_ConfidenceIsMean(t *testing.T) {
	lines := []Line{
		{Box: geometry.Rect{XMin: 0, XMax: 100, YMin: 0, YMax: 20}.ToQuad(), Text: "a", Confidence: 0.6},
		{Box: geometry.Rect{XMin: 0, XMax: 100, YMin: 22, YMax: 42}.ToQuad(), Text: "b", Confidence: 1.0},
	}
	paras := Assemble(lines, LeftToRight, DefaultOptions())
	if len(paras) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(paras))
	}
	if got := paras[0].Confidence; got < 0.79 || got > 0.81 {
		t.Errorf("confidence: got %v, want 0.8", got)
	}
}

func TestAssemble_ContiguousColumnNeverSplits(t *testing.T) {
	// A column of ten tightly spaced lines must come back as one paragraph.
	var lines []Line
	for i := 0; i < 10; i++ {
		lines = append(lines, lineAt(0, i*25, 300, i*25+20, "line"))
	}
	paras := Assemble(lines, LeftToRight, DefaultOptions())
	if len(paras) != 1 {
		t.Errorf("contiguous column split into %d paragraphs", len(paras))
	}
}

func TestDisplay_RoundTrip(t *testing.T) {
	// Visual ordering applied twice returns the logical order.
	logical := "שלום" // Hebrew "shalom"
	visual := Display(logical)
	if visual == logical {
		t.Fatal("Display should reverse a pure RTL string")
	}
	if back := Display(visual); back != logical {
		t.Errorf("round trip: got %q, want %q", back, logical)
	}
}

func TestDisplay_PreservesLTRRuns(t *testing.T) {
	// Latin digits embedded in Hebrew text keep their own order.
	logical := "שלום 123"
	visual := Display(logical)
	if !containsSubstring(visual, "123") {
		t.Errorf("embedded LTR run was reordered: %q", visual)
	}
}

func TestDisplay_PlainLTRUnchanged(t *testing.T) {
	s := "hello world"
	if got := Display(s); got != s {
		t.Errorf("pure LTR text must pass through: got %q", got)
	}
}

func containsSubstring(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
