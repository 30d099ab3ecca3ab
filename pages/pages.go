package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/annolift/model"
)

// Class names used by viewer annotation and text layers
const (
	ClassPage            = "page"
	ClassAnnotationLayer = "annotationLayer"
	ClassTextLayer       = "textLayer"
	ClassPopupAnnotation = "popupAnnotation"
	ClassPopupWrapper    = "popupWrapper"
	ClassPopup           = "popup"
)

// Element is a single node of a captured page
type Element interface {
	// Attr returns the named attribute and whether it is present
	Attr(name string) (string, bool)

	// Text returns the rendered text content of the element
	Text() string

	// ClientRect returns the element's layout rectangle, unaffected by
	// any rendering scale
	ClientRect() (model.Region, error)

	// Offset returns the element's raw offset position
	Offset() (model.Point, error)

	// Transform returns the element's CSS transform, if it has one
	Transform() (string, bool)

	// FirstByClass returns the first descendant carrying the class
	FirstByClass(class string) (Element, bool)

	// FirstByTag returns the first descendant with the tag name
	FirstByTag(tag string) (Element, bool)
}

// Snapshot is the read-only capture of one rendered page
type Snapshot interface {
	// Marks returns the annotation layer elements in document order,
	// popups included
	Marks() ([]Element, error)

	// TextFragments returns the text layer elements in document order
	TextFragments() ([]Element, error)

	// Canvas returns the page raster, if the page was rendered
	Canvas() (Canvas, bool)
}

// Canvas is the raster collaborator for a page
type Canvas interface {
	// Size returns the raster size in pixels
	Size() (width, height float64)

	// Crop cuts the region out of the raster and encodes it. A region that
	// covers no pixel yields a nil image and a nil error.
	Crop(ctx context.Context, region model.Region) (*model.Image, error)

	// Encode encodes the whole raster
	Encode(ctx context.Context) (*model.Image, error)
}

// ErrCollaborator matches every *CollaboratorError
var ErrCollaborator = errors.New("pages: collaborator failure")

// CollaboratorError reports a binding that could not answer a geometry,
// content or raster request
type CollaboratorError struct {
	Op  string
	Err error
}

// Collaborator wraps err as a *CollaboratorError for op
func Collaborator(op string, err error) error {
	return &CollaboratorError{Op: op, Err: err}
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Is makes every CollaboratorError match ErrCollaborator
func (e *CollaboratorError) Is(target error) bool {
	return target == ErrCollaborator
}

// Class returns the element's class attribute, or "" if it has none
func Class(el Element) string {
	c, _ := el.Attr("class")
	return c
}

// HasClass reports whether the element's class attribute is exactly class
// or lists class as one of its space-separated tokens
func HasClass(el Element, class string) bool {
	c := Class(el)
	if c == class {
		return true
	}
	for _, tok := range strings.Fields(c) {
		if tok == class {
			return true
		}
	}
	return false
}

// CanvasArea returns the pixel area of the canvas
func CanvasArea(c Canvas) float64 {
	w, h := c.Size()
	return w * h
}
