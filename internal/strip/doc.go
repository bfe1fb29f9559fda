// Package strip rectifies text boxes into fixed-height image strips for the
// recognizer.
//
// The recognition model consumes grayscale strips of one fixed height. This
// package turns axis-aligned rectangles into strips by cropping and resizing
// (Lanczos, to avoid resampling artifacts at small glyph sizes), and turns
// free-form quads into strips by 4-point perspective rectification. Strips in
// one batch are right-padded to a common width with a background-colored fill
// so the recognizer can consume them as a uniform block; PadInfo records the
// unpadded width so positional outputs beyond it can be ignored when decoding.
//
// Zero-area and otherwise unrectifiable boxes yield a *DegenerateBoxError.
// Build skips such boxes and reports them, so one bad box never aborts a batch.
package strip
