package pipeline

import (
	"image"

	"github.com/pagelens/pagelens/internal/geometry"
)

// DetectorParams is the full parameter set handed to a text detector on each
// call. Detectors are free to ignore knobs they have no analogue for.
type DetectorParams struct {
	// CanvasSize caps the longer image side before detection; larger
	// images are scaled down and the returned polygons scaled back up.
	CanvasSize int
	// MagRatio optionally magnifies the image before detection.
	MagRatio float64
	// TextThreshold is the per-pixel text confidence cutoff.
	TextThreshold float64
	// LowText is the low-bound text score used to grow regions.
	LowText float64
	// LinkThreshold controls merging of adjacent character regions.
	LinkThreshold float64
}

// Detector locates text regions in a page image. Implementations return raw
// polygons in source-image pixel coordinates; clustering and margin expansion
// happen downstream.
type Detector interface {
	DetectRegions(img image.Image, p DetectorParams) ([]geometry.Region, error)
}

// Prediction is one recognizer output: the decoded text of a strip and the
// model's confidence in [0, 1].
type Prediction struct {
	Text       string
	Confidence float64
}

// RecognizerParams describes the batch handed to a recognizer: every strip
// shares Height and is padded to MaxWidth, and decoding is constrained to
// Charset minus IgnoreChars.
type RecognizerParams struct {
	Charset     string
	IgnoreChars string
	Decoder     string
	BeamWidth   int
	Height      int
	MaxWidth    int
	// Separators maps a language code to its word-boundary marker
	// characters for scripts written without inter-word spacing.
	Separators map[string][]string
}

// Recognizer transcribes a batch of normalized strips. It must return exactly
// one Prediction per input strip, in order.
type Recognizer interface {
	RecognizeBatch(strips []*image.NRGBA, p RecognizerParams) ([]Prediction, error)
}
