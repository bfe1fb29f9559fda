package pipeline

import (
	"fmt"
	"image"
	"log/slog"
	"sort"
	"strings"

	"github.com/pagelens/pagelens/internal/geometry"
	"github.com/pagelens/pagelens/internal/lang"
	"github.com/pagelens/pagelens/internal/model"
	"github.com/pagelens/pagelens/internal/orient"
	"github.com/pagelens/pagelens/internal/paragraph"
	"github.com/pagelens/pagelens/internal/strip"
)

// Result is one recognized text region: its box in source-image pixel
// coordinates, the decoded text, and the model confidence in [0, 1]. In
// paragraph mode the box is the axis-aligned union of the merged lines.
type Result struct {
	Box        geometry.Quad `json:"box"`
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence"`
}

// Texts strips boxes and confidences, returning just the recognized strings
// in result order.
func Texts(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out
}

// Config is the immutable state a Reader is built with.
type Config struct {
	// Languages are the requested recognition language codes.
	Languages []string
	// Group is the resolved model group covering Languages.
	Group *lang.Group
	// Native is the union of native character sets for Languages, used to
	// derive the default ignore list.
	Native string
	// Height is the normalized strip height in pixels.
	Height int
}

// Reader is the assembled recognition pipeline. It is safe for concurrent use:
// calls share only the immutable Config and the two oracles.
type Reader struct {
	cfg Config
	det Detector
	rec Recognizer
	log *slog.Logger
}

type readerOpts struct {
	height    int
	log       *slog.Logger
	store     *model.Store
	custom    *lang.Custom
	customErr error
	network   string
}

// Option configures NewReader.
type Option func(*readerOpts)

// WithHeight overrides the normalized strip height. The default of 64 matches
// the bundled recognition models.
func WithHeight(h int) Option {
	return func(o *readerOpts) { o.height = h }
}

// WithLogger sets the logger used for per-box skip warnings and model store
// activity.
func WithLogger(l *slog.Logger) Option {
	return func(o *readerOpts) { o.log = l }
}

// WithModelStore verifies (and if permitted, downloads) the detector and
// recognizer weights during NewReader. Without it the Reader assumes the
// oracles were constructed with valid weights already.
func WithModelStore(s *model.Store) Option {
	return func(o *readerOpts) { o.store = s }
}

// WithCustomNetwork replaces the built-in model registry with a user-trained
// recognition network described by a YAML config file.
func WithCustomNetwork(name, configPath string) Option {
	return func(o *readerOpts) {
		o.network = name
		// Surfaced by NewReader; options can't return errors.
		o.custom, o.customErr = lang.LoadCustom(configPath)
	}
}

// NewReader resolves the language list to a model group, optionally verifies
// model assets, and returns a ready pipeline. All validation failures are
// *ConfigError.
func NewReader(langs []string, det Detector, rec Recognizer, opts ...Option) (*Reader, error) {
	o := readerOpts{height: 64}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	if det == nil || rec == nil {
		return nil, configErrf("both a detector and a recognizer oracle are required")
	}
	if o.height <= 0 {
		return nil, configErrf("strip height must be positive, got %d", o.height)
	}

	if o.customErr != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("custom network %q", o.network), Err: o.customErr}
	}

	var group *lang.Group
	switch {
	case o.custom != nil:
		for _, l := range langs {
			if !contains(o.custom.Languages, l) {
				return nil, configErrf("custom network %q does not cover language %q", o.network, l)
			}
		}
		group = o.custom.Group(o.network)
		if o.custom.Height > 0 {
			o.height = o.custom.Height
		}
	default:
		g, err := lang.Resolve(langs)
		if err != nil {
			return nil, &ConfigError{Reason: "resolving languages", Err: err}
		}
		group = g
	}

	if o.store != nil && o.custom == nil {
		if _, err := o.store.Ensure(model.DetectorAsset); err != nil {
			return nil, &ConfigError{Reason: "detector model", Err: err}
		}
		asset, ok := model.RecognizerAsset(group.Model)
		if !ok {
			return nil, configErrf("no weights registered for model %q", group.Model)
		}
		if _, err := o.store.Ensure(asset); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("%s model", group.Model), Err: err}
		}
	}

	return &Reader{
		cfg: Config{
			Languages: append([]string(nil), langs...),
			Group:     group,
			Native:    lang.NativeChars(langs),
			Height:    o.height,
		},
		det: det,
		rec: rec,
		log: o.log,
	}, nil
}

// Config returns a copy of the Reader's immutable configuration.
func (r *Reader) Config() Config { return r.cfg }

// Detect locates text in the image and returns horizontal boxes and free-form
// quads, clustered and margin-expanded. Both slices may be empty on a blank
// page.
func (r *Reader) Detect(img image.Image, opts DetectOptions) ([]geometry.Rect, []geometry.Quad, error) {
	regions, err := r.det.DetectRegions(img, DetectorParams{
		CanvasSize:    opts.CanvasSize,
		MagRatio:      opts.MagRatio,
		TextThreshold: opts.TextThreshold,
		LowText:       opts.LowText,
		LinkThreshold: opts.LinkThreshold,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("detector: %w", err)
	}

	rects, quads := geometry.GroupRegions(regions, geometry.GroupOptions{
		SlopeThs:        opts.SlopeThs,
		YCenterThs:      opts.YCenterThs,
		HeightThs:       opts.HeightThs,
		WidthThs:        opts.WidthThs,
		AddMargin:       opts.AddMargin,
		MergeHorizontal: opts.OptimalNumChars <= 0,
	})
	if opts.MinSize > 0 {
		rects = geometry.FilterRects(rects, opts.MinSize)
		quads = geometry.FilterQuads(quads, opts.MinSize)
	}
	return rects, quads, nil
}

// Recognize transcribes the given boxes on the image. With no boxes at all the
// whole image is treated as a single line. Results come back in input box
// order (rects first, then quads); degenerate boxes are logged and skipped.
func (r *Reader) Recognize(img image.Image, rects []geometry.Rect, quads []geometry.Quad, opts RecognizeOptions) ([]Result, error) {
	ignore, err := r.ignoreChars(opts.Allowlist, opts.Blocklist)
	if err != nil {
		return nil, err
	}

	gray := normalize(img)

	var strips []strip.Strip
	var maxWidth int
	if len(rects) == 0 && len(quads) == 0 {
		s, err := strip.Whole(gray, r.cfg.Height)
		if err != nil {
			return nil, fmt.Errorf("normalizing page: %w", err)
		}
		strips = []strip.Strip{s}
		maxWidth = s.Image.Bounds().Dx()
	} else {
		var skipped []strip.Skipped
		strips, maxWidth, skipped = strip.Build(gray, rects, quads, r.cfg.Height)
		for _, sk := range skipped {
			r.log.Warn("skipping degenerate box", "box", sk.Index, "reason", sk.Err)
		}
		if len(strips) == 0 {
			return []Result{}, nil
		}
	}

	boxes := make(map[int]geometry.Quad, len(strips))
	for _, s := range strips {
		boxes[s.Index] = s.Box
	}

	variants := r.expand(strips, opts.RotationHints, &maxWidth)

	batch := make([]strip.Strip, len(variants))
	for i, v := range variants {
		batch[i] = v.Strip
	}
	batch = strip.PadBatch(batch, maxWidth, strip.BackgroundFill(gray))

	images := make([]*image.NRGBA, len(batch))
	for i := range batch {
		images[i] = batch[i].Image
	}

	params := RecognizerParams{
		Charset:     r.cfg.Group.Charset,
		IgnoreChars: ignore,
		Decoder:     r.decoder(opts),
		BeamWidth:   opts.BeamWidth,
		Height:      r.cfg.Height,
		MaxWidth:    maxWidth,
		Separators:  r.cfg.Group.Separators,
	}
	preds, err := r.recognizeBatch(images, params)
	if err != nil {
		return nil, err
	}

	preds, err = r.retryLowConfidence(images, preds, params, opts)
	if err != nil {
		return nil, err
	}

	cands := make([]orient.Candidate, len(variants))
	for i, v := range variants {
		cands[i] = orient.Candidate{
			BoxIndex:   v.Strip.Index,
			Angle:      v.Angle,
			Text:       preds[i].Text,
			Confidence: preds[i].Confidence,
		}
	}

	results := make([]Result, 0, len(strips))
	for _, c := range orient.Collapse(cands) {
		text := c.Text
		if r.cfg.Group.RTL {
			text = paragraph.Display(text)
		}
		results = append(results, Result{Box: boxes[c.BoxIndex], Text: text, Confidence: c.Confidence})
	}

	if opts.Paragraph {
		results = r.toParagraphs(results, opts)
	}
	return results, nil
}

// ReadText runs detection and recognition end to end on one image.
func (r *Reader) ReadText(img image.Image, dopts DetectOptions, ropts RecognizeOptions) ([]Result, error) {
	rects, quads, err := r.Detect(img, dopts)
	if err != nil {
		return nil, err
	}
	return r.Recognize(img, rects, quads, ropts)
}

// ReadTextFile is ReadText over an image file on disk.
func (r *Reader) ReadTextFile(path string, dopts DetectOptions, ropts RecognizeOptions) ([]Result, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return r.ReadText(img, dopts, ropts)
}

// ReadTextBytes is ReadText over an in-memory encoded image.
func (r *Reader) ReadTextBytes(data []byte, dopts DetectOptions, ropts RecognizeOptions) ([]Result, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return r.ReadText(img, dopts, ropts)
}

// expand builds the strip variant list for the rotation ensemble, growing
// maxWidth to cover rotated aspect ratios.
func (r *Reader) expand(strips []strip.Strip, hints []int, maxWidth *int) []orient.Variant {
	if len(hints) == 0 {
		variants := make([]orient.Variant, len(strips))
		for i, s := range strips {
			variants[i] = orient.Variant{Strip: s}
		}
		return variants
	}
	variants, w := orient.Expand(strips, hints, r.cfg.Height)
	*maxWidth = max(*maxWidth, w)
	return variants
}

func (r *Reader) recognizeBatch(images []*image.NRGBA, params RecognizerParams) ([]Prediction, error) {
	preds, err := r.rec.RecognizeBatch(images, params)
	if err != nil {
		return nil, fmt.Errorf("recognizer: %w", err)
	}
	if len(preds) != len(images) {
		return nil, fmt.Errorf("recognizer returned %d predictions for %d strips", len(preds), len(images))
	}
	return preds, nil
}

// retryLowConfidence re-runs strips whose confidence fell below ContrastThs
// after boosting their contrast, keeping whichever pass scored higher.
func (r *Reader) retryLowConfidence(images []*image.NRGBA, preds []Prediction, params RecognizerParams, opts RecognizeOptions) ([]Prediction, error) {
	if opts.ContrastThs <= 0 {
		return preds, nil
	}
	var low []int
	for i, p := range preds {
		if p.Confidence < opts.ContrastThs {
			low = append(low, i)
		}
	}
	if len(low) == 0 {
		return preds, nil
	}

	retry := make([]*image.NRGBA, len(low))
	for i, idx := range low {
		retry[i] = strip.Enhance(images[idx], opts.AdjustContrast)
	}
	second, err := r.recognizeBatch(retry, params)
	if err != nil {
		return nil, err
	}
	for i, idx := range low {
		if second[i].Confidence > preds[idx].Confidence {
			preds[idx] = second[i]
		}
	}
	return preds, nil
}

func (r *Reader) toParagraphs(results []Result, opts RecognizeOptions) []Result {
	lines := make([]paragraph.Line, len(results))
	for i, res := range results {
		lines[i] = paragraph.Line{Box: res.Box, Text: res.Text, Confidence: res.Confidence}
	}
	dir := paragraph.LeftToRight
	if r.cfg.Group.RTL {
		dir = paragraph.RightToLeft
	}
	popts := paragraph.DefaultOptions()
	if opts.XThs > 0 {
		popts.XThs = opts.XThs
	}
	if opts.YThs > 0 {
		popts.YThs = opts.YThs
	}

	paras := paragraph.Assemble(lines, dir, popts)
	out := make([]Result, len(paras))
	for i, p := range paras {
		out[i] = Result{Box: p.Box.ToQuad(), Text: p.Text, Confidence: p.Confidence}
	}
	return out
}

func (r *Reader) decoder(opts RecognizeOptions) string {
	if r.cfg.Group.GreedyOnly {
		return DecoderGreedy
	}
	if opts.Decoder == "" {
		return DecoderGreedy
	}
	return opts.Decoder
}

// ignoreChars derives the character ignore list: everything in the model
// charset outside the allowlist, the blocklist itself, or by default
// everything outside the requested languages' native characters.
func (r *Reader) ignoreChars(allow, block string) (string, error) {
	if allow != "" && block != "" {
		return "", configErrf("allowlist and blocklist are mutually exclusive")
	}
	switch {
	case allow != "":
		return charDiff(r.cfg.Group.Charset, allow), nil
	case block != "":
		return sortedRunes(block), nil
	default:
		return charDiff(r.cfg.Group.Charset, r.cfg.Native), nil
	}
}

// charDiff returns the characters of charset absent from keep, sorted and
// deduplicated.
func charDiff(charset, keep string) string {
	kept := make(map[rune]struct{}, len(keep))
	for _, c := range keep {
		kept[c] = struct{}{}
	}
	var b strings.Builder
	seen := make(map[rune]struct{})
	for _, c := range sortedRuneSlice(charset) {
		if _, ok := kept[c]; ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		b.WriteRune(c)
	}
	return b.String()
}

func sortedRunes(s string) string {
	return string(sortedRuneSlice(s))
}

func sortedRuneSlice(s string) []rune {
	runes := []rune(s)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
