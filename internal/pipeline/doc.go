// Package pipeline wires detection, geometry clustering, crop normalization,
// the rotation ensemble and paragraph assembly around two opaque neural
// oracles.
//
// The Reader is built once from an immutable configuration (language list,
// resolved model group, strip height) and never mutates shared state during
// calls. Its three operations compose:
//
//   - Detect runs the detector oracle and clusters raw polygons into
//     horizontal rectangles and free-form quads, then filters tiny boxes.
//   - Recognize rectifies boxes into fixed-height strips, expands rotation
//     variants when hints are given, invokes the recognizer oracle on the
//     padded batch, collapses variants to one result per box, applies
//     right-to-left display reordering for RTL model groups, and optionally
//     merges lines into paragraphs.
//   - ReadText composes the two over a shared decoded image.
//
// # Failure Policy
//
// Configuration problems (unknown language, incompatible language mix,
// missing model files with downloads disabled, checksum mismatch) surface as
// *ConfigError before any image processing. Degenerate boxes are logged and
// skipped per box; the rest of the batch proceeds. Oracle errors abort the
// current call and propagate wrapped, since the pipeline cannot recover from
// a broken model.
//
// # Ordering
//
// Recognize returns results in input box order. Only the rotation ensemble
// (internally) and paragraph mode (documented) re-sort. Every result carries
// its originating box, so callers never need positional alignment.
package pipeline
