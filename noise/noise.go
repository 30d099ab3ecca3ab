// Package noise rejects annotation marks that are reading bookmarks rather
// than content markup.
package noise

import "github.com/tsawler/annolift/model"

// CoverageThreshold is the fraction of the canvas above which a mark is
// treated as a whole-page bookmark
const CoverageThreshold = 0.9

// IsSkippable reports whether a mark covers more than CoverageThreshold of
// the canvas or is anchored exactly at the page origin. scaled must be the
// mark's region in canvas pixels.
func IsSkippable(canvasArea float64, scaled model.Region) bool {
	coverage := scaled.Area / canvasArea
	return coverage > CoverageThreshold || scaled.Origin() == model.Point{}
}
