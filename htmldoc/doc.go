// Package htmldoc reads page snapshots from a serialized viewer DOM.
//
// A capture script saves the rendered viewer as HTML, recording the layout
// of every element it cares about as attributes, and saves each page canvas
// as an image file. This package turns that capture back into
// pages.Snapshot values without a browser.
//
// # Structure
//
// Pages are elements with class "page", in document order. A document with
// no such element is read as a single page. Within a page:
//
//   - marks are the "...Annotation" elements under ".annotationLayer"
//   - text fragments are the div elements under ".textLayer"
//   - the raster is the first canvas; its data-raster attribute names an
//     image resolved by the caller
//
// # Geometry
//
// Each element's client rectangle is read from data-client-rect="l,t,w,h"
// and its offset from data-offset="l,t". Without those attributes the
// inline style left, top, width and height (in px) are used for both. The
// rendering transform comes from the inline style transform property.
//
// Usage:
//
//	r, err := htmldoc.Open("capture/index.html")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	for _, page := range r.Pages() {
//	    marks, _ := page.Marks()
//	    // ...
//	}
package htmldoc
