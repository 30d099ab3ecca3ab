package annolift

import (
	"fmt"
	"strings"
)

// Warning describes an annotation or page that was left out of the result
// because a collaborator could not answer for it.
type Warning struct {
	Page       int    // zero-based page index
	Annotation int    // index among the page's classified marks, -1 for the page itself
	Message    string // what was skipped
	Err        error  // underlying cause
}

func (w Warning) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "page %d", w.Page+1)
	if w.Annotation >= 0 {
		fmt.Fprintf(&sb, ", annotation %d", w.Annotation+1)
	}
	sb.WriteString(": ")
	sb.WriteString(w.Message)
	if w.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(w.Err.Error())
	}
	return sb.String()
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
