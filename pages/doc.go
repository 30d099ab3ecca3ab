// Package pages defines the read-only view of a rendered page that the
// extraction engine works against.
//
// A viewer renders each page as three layers: a raster canvas, a text layer
// of positioned fragments and an annotation layer of positioned marks. The
// engine never reaches into a live viewer; instead a binding captures the
// page as a [Snapshot] and hands it in.
//
// # Elements
//
// Every node of interest implements [Element]:
//
//	rect, err := el.ClientRect()   // unscaled layout rectangle
//	off, err := el.Offset()        // raw offset position
//	tf, ok := el.Transform()       // CSS transform, if any
//	popup, ok := el.FirstByClass("popupWrapper")
//
// Lookups return an explicit found flag rather than a nil element.
//
// # Canvas
//
// [Canvas] is the raster collaborator. Cropping may block on the binding and
// always completes with an image or an error.
//
// # Errors
//
// Failures inside a binding are reported as [*CollaboratorError], which
// matches [ErrCollaborator] with errors.Is.
package pages
