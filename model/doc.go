// Package model provides the geometry kernel and the result types for
// annotation extraction.
//
// # Geometry
//
// Two interchangeable rectangle forms are used:
//
//   - [Box] - a (Min, Max) corner pair, used for every overlap test
//   - [Region] - left, top, width, height and area, used for pixel cropping
//
// Conversion between them is lossless:
//
//	box := region.Box()
//	same := box.Region()
//
// Overlap is computed with plain box arithmetic and no tolerance:
//
//   - [OverlapArea] - shared area, zero for disjoint or edge-touching boxes
//   - [IsOverlapped] - shared area strictly greater than zero
//   - [IsWithinBox] - inclusive containment
//   - [OverlapByDimension] - per-axis overlap and coverage fractions
//
// [Matrix] models the 2D affine transform that a viewer applies to scaled
// annotation elements.
//
// # Results
//
// Extraction produces a [DocumentExtraction] holding one [PageExtraction] per
// page, each holding [ExtractedAnnotation] values in mark order. All result
// types encode to JSON without references to the page elements they came
// from.
package model
