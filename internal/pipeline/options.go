package pipeline

// Decoder names accepted by RecognizeOptions.Decoder.
const (
	DecoderGreedy         = "greedy"
	DecoderBeamSearch     = "beamsearch"
	DecoderWordBeamSearch = "wordbeamsearch"
)

// DetectOptions tunes region detection and box clustering for a single call.
// The zero value is not useful; start from DefaultDetectOptions.
type DetectOptions struct {
	// MinSize drops boxes whose larger side is at most this many pixels.
	MinSize int

	TextThreshold float64
	LowText       float64
	LinkThreshold float64
	CanvasSize    int
	MagRatio      float64

	// Clustering thresholds, all relative to box height unless noted.
	SlopeThs   float64
	YCenterThs float64
	HeightThs  float64
	WidthThs   float64
	AddMargin  float64

	// OptimalNumChars, when positive, disables within-row merging so the
	// caller receives one box per detected fragment.
	OptimalNumChars int
}

// DefaultDetectOptions returns the standard detection tuning.
func DefaultDetectOptions() DetectOptions {
	return DetectOptions{
		MinSize:       20,
		TextThreshold: 0.7,
		LowText:       0.4,
		LinkThreshold: 0.4,
		CanvasSize:    2560,
		MagRatio:      1,
		SlopeThs:      0.1,
		YCenterThs:    0.5,
		HeightThs:     0.5,
		WidthThs:      0.5,
		AddMargin:     0.1,
	}
}

// RecognizeOptions tunes transcription for a single call.
type RecognizeOptions struct {
	// Decoder selects the sequence decoding strategy. Model groups
	// flagged greedy-only override this silently.
	Decoder   string
	BeamWidth int

	// Allowlist restricts recognition to exactly these characters;
	// Blocklist removes these characters from the group charset. Setting
	// both is a configuration error.
	Allowlist string
	Blocklist string

	// RotationHints lists extra orientations (90, 180, 270) to try per
	// strip; the best-scoring variant wins, ties going to the least
	// rotation. The unrotated strip is always evaluated.
	RotationHints []int

	// Paragraph merges line results into reading-order paragraphs.
	Paragraph bool
	// XThs and YThs are the paragraph grouping tolerances in units of
	// mean line height.
	XThs float64
	YThs float64

	// ContrastThs triggers a second recognition pass on strips whose
	// confidence falls below it, after contrast enhancement toward
	// AdjustContrast. The better-scoring pass wins per strip.
	ContrastThs    float64
	AdjustContrast float64
}

// DefaultRecognizeOptions returns the standard recognition tuning.
func DefaultRecognizeOptions() RecognizeOptions {
	return RecognizeOptions{
		Decoder:        DecoderGreedy,
		BeamWidth:      5,
		XThs:           1.0,
		YThs:           0.5,
		ContrastThs:    0.1,
		AdjustContrast: 0.5,
	}
}
