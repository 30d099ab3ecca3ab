// Package text finds the text layer fragments covered by an annotation.
//
// A fragment is covered when its natural box shares any positive area with
// the annotation's natural box:
//
//	lines, err := text.MatchingLines(snapshot, region.Box())
//
// Lines are returned in text layer order, one per covered fragment. There
// is no minimum coverage, so a fragment grazed by a single pixel is
// included, and there is no spatial index: every fragment of the page is
// tested for every annotation.
package text
