// Package geometry groups raw detector polygons into recognizable text-line boxes.
//
// The text detector emits one polygon per connected text area. Those polygons are
// too fragmented to recognize directly: a single printed line often arrives as
// several adjacent polygons. This package classifies each polygon as roughly
// horizontal or free-form (rotated/irregular), clusters the horizontal ones into
// reading lines, and merges each line into a single axis-aligned rectangle.
//
// # Coordinate System
//
// All coordinates are source-image pixels, (0,0) at the top-left, X rightward,
// Y downward. Rect coordinates always satisfy XMin <= XMax and YMin <= YMax.
// Quad corners keep the detector's winding order (top-left, top-right,
// bottom-right, bottom-left) so perspective rectification stays well-defined.
//
// # Grouping Guarantees
//
// GroupRegions never drops or duplicates input: every input region contributes
// to exactly one output box. Minimum-size filtering is a separate step
// (FilterRects/FilterQuads) applied by the caller after grouping.
package geometry
