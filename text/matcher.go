package text

import (
	"fmt"

	"github.com/tsawler/annolift/coords"
	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/pages"
)

// MatchingLines returns the text of every fragment on the page whose
// natural box overlaps highlight
func MatchingLines(snap pages.Snapshot, highlight model.Box) ([]string, error) {
	fragments, err := snap.TextFragments()
	if err != nil {
		return nil, fmt.Errorf("listing text fragments: %w", err)
	}
	return Match(fragments, highlight)
}

// Match filters already listed fragments against highlight
func Match(fragments []pages.Element, highlight model.Box) ([]string, error) {
	lines := make([]string, 0)
	for i, frag := range fragments {
		region, err := coords.Natural(frag)
		if err != nil {
			return nil, fmt.Errorf("text fragment %d: %w", i, err)
		}
		if model.IsOverlapped(region.Box(), highlight) {
			lines = append(lines, frag.Text())
		}
	}
	return lines, nil
}
