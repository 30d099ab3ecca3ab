// Package pagestest provides in-memory page snapshots for tests.
package pagestest

import (
	"context"
	"errors"
	"strings"

	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/pages"
)

// Element is an in-memory pages.Element. A nil ClientRect or Offset makes the
// corresponding accessor fail with a collaborator error.
type Element struct {
	Tag       string
	Attrs     map[string]string
	Content   string
	Rect      *model.Region
	Off       *model.Point
	Style     string // CSS transform
	Children  []*Element
	RectErr   error
	OffsetErr error
}

var _ pages.Element = (*Element)(nil)

// Mark returns an annotation layer element of the given class
func Mark(class string, rect model.Region, offset model.Point, transform string) *Element {
	return &Element{
		Tag:   "section",
		Attrs: map[string]string{"class": class},
		Rect:  &rect,
		Off:   &offset,
		Style: transform,
	}
}

// Fragment returns a text layer element
func Fragment(text string, rect model.Region) *Element {
	return &Element{
		Tag:     "div",
		Content: text,
		Rect:    &rect,
		Off:     &model.Point{X: rect.Left, Y: rect.Top},
	}
}

// Popup returns a popupWrapper node holding an optional author and text
func Popup(author, text string) *Element {
	popup := &Element{Tag: "div", Attrs: map[string]string{"class": pages.ClassPopup}}
	if author != "" {
		popup.Children = append(popup.Children, &Element{Tag: "h1", Content: author})
	}
	if text != "" {
		popup.Children = append(popup.Children, &Element{Tag: "p", Content: text})
	}
	return &Element{
		Tag:      "div",
		Attrs:    map[string]string{"class": pages.ClassPopupWrapper},
		Children: []*Element{popup},
	}
}

// PopupMark returns a popupAnnotation mark wrapping a popup
func PopupMark(author, text string) *Element {
	return &Element{
		Tag:      "section",
		Attrs:    map[string]string{"class": pages.ClassPopupAnnotation},
		Children: []*Element{Popup(author, text)},
	}
}

// With appends children and returns the element
func (e *Element) With(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

func (e *Element) Text() string {
	if len(e.Children) == 0 {
		return e.Content
	}
	var sb strings.Builder
	sb.WriteString(e.Content)
	for _, c := range e.Children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

func (e *Element) ClientRect() (model.Region, error) {
	if e.RectErr != nil {
		return model.Region{}, pages.Collaborator("client rect", e.RectErr)
	}
	if e.Rect == nil {
		return model.Region{}, pages.Collaborator("client rect", errors.New("no geometry"))
	}
	return *e.Rect, nil
}

func (e *Element) Offset() (model.Point, error) {
	if e.OffsetErr != nil {
		return model.Point{}, pages.Collaborator("offset", e.OffsetErr)
	}
	if e.Off == nil {
		return model.Point{}, pages.Collaborator("offset", errors.New("no geometry"))
	}
	return *e.Off, nil
}

func (e *Element) Transform() (string, bool) {
	return e.Style, e.Style != ""
}

func (e *Element) FirstByClass(class string) (pages.Element, bool) {
	return e.first(func(c *Element) bool { return pages.HasClass(c, class) })
}

func (e *Element) FirstByTag(tag string) (pages.Element, bool) {
	return e.first(func(c *Element) bool { return c.Tag == tag })
}

func (e *Element) first(match func(*Element) bool) (pages.Element, bool) {
	for _, c := range e.Children {
		if match(c) {
			return c, true
		}
		if found, ok := c.first(match); ok {
			return found, true
		}
	}
	return nil, false
}

// Snapshot is an in-memory pages.Snapshot
type Snapshot struct {
	MarkList     []*Element
	Fragments    []*Element
	Raster       *Canvas
	MarksErr     error
	FragmentsErr error
}

var _ pages.Snapshot = (*Snapshot)(nil)

func (s *Snapshot) Marks() ([]pages.Element, error) {
	if s.MarksErr != nil {
		return nil, pages.Collaborator("marks", s.MarksErr)
	}
	return elements(s.MarkList), nil
}

func (s *Snapshot) TextFragments() ([]pages.Element, error) {
	if s.FragmentsErr != nil {
		return nil, pages.Collaborator("text fragments", s.FragmentsErr)
	}
	return elements(s.Fragments), nil
}

func (s *Snapshot) Canvas() (pages.Canvas, bool) {
	if s.Raster == nil {
		return nil, false
	}
	return s.Raster, true
}

func elements(in []*Element) []pages.Element {
	out := make([]pages.Element, len(in))
	for i, e := range in {
		out[i] = e
	}
	return out
}

// Canvas is an in-memory pages.Canvas that records crop requests.
// Its images carry a textual description of the request as data. A region
// under one pixel wide or high yields no image.
type Canvas struct {
	Width, Height float64
	CropErr       error
	FailAt        map[model.Region]error
	Crops         []model.Region
}

var _ pages.Canvas = (*Canvas)(nil)

func (c *Canvas) Size() (float64, float64) {
	return c.Width, c.Height
}

func (c *Canvas) Crop(ctx context.Context, r model.Region) (*model.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.Crops = append(c.Crops, r)
	if err, ok := c.FailAt[r]; ok {
		return nil, pages.Collaborator("crop", err)
	}
	if c.CropErr != nil {
		return nil, pages.Collaborator("crop", c.CropErr)
	}
	if r.Width < 1 || r.Height < 1 {
		return nil, nil
	}
	return &model.Image{Data: []byte("crop"), Type: "image/png", Width: r.Width, Height: r.Height}, nil
}

func (c *Canvas) Encode(ctx context.Context) (*model.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &model.Image{Data: []byte("page"), Type: "image/png", Width: c.Width, Height: c.Height}, nil
}
