// Package coords reconciles the natural and scaled geometry of page elements.
//
// Viewers draw annotation marks inside a container scaled with a CSS
// transform of the form matrix(sx, 0, 0, sy, 0, 0). The layout rectangle of
// such an element ignores that scale while its offset position does not, so
// each element is measured twice:
//
//   - natural - the client rectangle, compared against the text layer
//   - scaled - the offset position times the scale, with the client width
//     and height, used to address the page raster
//
// Only scale-only matrices are understood. Any skew, rotation or
// translation term fails with [ErrMalformedTransform] instead of producing a
// silently wrong region.
package coords
