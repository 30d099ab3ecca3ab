// Package classify groups the raw marks of an annotation layer into
// annotations and pairs each with its comment.
//
// Viewers emit a content mark (highlight, square or text) followed by a
// sibling popupAnnotation mark carrying the comment. Square annotations
// instead nest the popup inside the mark itself. [Classify] handles both
// layouts in a single pass:
//
//  1. the next mark is a popupAnnotation holding a popupWrapper: that
//     wrapper is the comment
//  2. otherwise the mark's own popupWrapper descendant is the comment
//  3. otherwise there is no comment
//
// Popup marks never appear in the output on their own.
package classify

import (
	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/pages"
)

// Mark is a content mark with its kind and optional comment node
type Mark struct {
	Kind    model.Kind
	Body    pages.Element
	comment pages.Element
}

// CommentNode returns the popup node holding the mark's comment
func (m Mark) CommentNode() (pages.Element, bool) {
	return m.comment, m.comment != nil
}

// Comment parses the mark's comment, empty if it has none
func (m Mark) Comment() model.Comment {
	if node, ok := m.CommentNode(); ok {
		return ParseComment(node)
	}
	return model.Comment{}
}

// ClassName returns the annotation layer class for a kind
func ClassName(k model.Kind) string {
	return k.String() + "Annotation"
}

// KindOf returns the content kind of a mark, if it is one
func KindOf(el pages.Element, kinds []model.Kind) (model.Kind, bool) {
	for _, k := range kinds {
		if pages.HasClass(el, ClassName(k)) {
			return k, true
		}
	}
	return model.KindUnknown, false
}

// Classify scans marks in document order and returns one Mark per content
// mark of the requested kinds. With no kinds every content kind is
// collected.
func Classify(marks []pages.Element, kinds ...model.Kind) []Mark {
	if len(kinds) == 0 {
		kinds = model.Kinds
	}

	var result []Mark
	for i, el := range marks {
		kind, ok := KindOf(el, kinds)
		if !ok {
			continue
		}

		m := Mark{Kind: kind, Body: el}
		if i+1 < len(marks) {
			m.comment = popupNode(marks[i+1])
		}
		if m.comment == nil {
			if inner, ok := el.FirstByClass(pages.ClassPopupWrapper); ok {
				m.comment = inner
			}
		}
		result = append(result, m)
	}
	return result
}

// popupNode returns the popupWrapper inside a popupAnnotation mark, or nil
// when mark is not a popup or holds no wrapper
func popupNode(mark pages.Element) pages.Element {
	if !pages.HasClass(mark, pages.ClassPopupAnnotation) {
		return nil
	}
	if inner, ok := mark.FirstByClass(pages.ClassPopupWrapper); ok {
		return inner
	}
	return nil
}

// ParseComment reads the author from the first h1 and the text from the
// first p of a popup node. Missing nodes leave the field nil.
func ParseComment(node pages.Element) model.Comment {
	data := node
	if popup, ok := node.FirstByClass(pages.ClassPopup); ok {
		data = popup
	}

	return model.Comment{
		Author: childText(data, "h1"),
		Text:   childText(data, "p"),
	}
}

func childText(el pages.Element, tag string) *string {
	child, ok := el.FirstByTag(tag)
	if !ok {
		return nil
	}
	s := child.Text()
	return &s
}
