// Package ocr adapts the Tesseract engine (via gosseract/v2) to the
// pipeline's recognizer interface.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Semantics
//
// Each strip in a batch is recognized in single-line page segmentation mode,
// so Tesseract never attempts layout analysis on the pre-rectified strips.
// The ignore-character list maps to Tesseract's character blacklist.
// Decoder selection and beam width have no Tesseract analogue and are
// ignored; confidence is the mean of Tesseract's per-word confidences,
// scaled to [0, 1].
package ocr
