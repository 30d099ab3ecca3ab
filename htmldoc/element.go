package htmldoc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/pages"
)

// Element is a pages.Element backed by a parsed HTML node
type Element struct {
	n *html.Node
}

var _ pages.Element = Element{}

// Node returns the underlying HTML node
func (e Element) Node() *html.Node {
	return e.n
}

func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the NFC-normalized text content of the element
func (e Element) Text() string {
	var sb strings.Builder
	textContent(e.n, &sb)
	return norm.NFC.String(sb.String())
}

func (e Element) ClientRect() (model.Region, error) {
	if v, ok := e.Attr("data-client-rect"); ok {
		f, err := parseFloats(v, 4)
		if err != nil {
			return model.Region{}, pages.Collaborator("client rect", err)
		}
		return model.NewRegion(f[0], f[1], f[2], f[3]), nil
	}

	st := e.style()
	left, err := st.px("left")
	if err == nil {
		var top, width, height float64
		if top, err = st.px("top"); err == nil {
			if width, err = st.px("width"); err == nil {
				if height, err = st.px("height"); err == nil {
					return model.NewRegion(left, top, width, height), nil
				}
			}
		}
	}
	return model.Region{}, pages.Collaborator("client rect", fmt.Errorf("<%s>: %w", e.n.Data, err))
}

func (e Element) Offset() (model.Point, error) {
	if v, ok := e.Attr("data-offset"); ok {
		f, err := parseFloats(v, 2)
		if err != nil {
			return model.Point{}, pages.Collaborator("offset", err)
		}
		return model.Point{X: f[0], Y: f[1]}, nil
	}

	st := e.style()
	left, err := st.px("left")
	if err == nil {
		var top float64
		if top, err = st.px("top"); err == nil {
			return model.Point{X: left, Y: top}, nil
		}
	}
	return model.Point{}, pages.Collaborator("offset", fmt.Errorf("<%s>: %w", e.n.Data, err))
}

// Transform returns the inline CSS transform. "none" draws the element
// untransformed and is reported as no transform.
func (e Element) Transform() (string, bool) {
	tf := e.style()["transform"]
	if tf == "" || strings.EqualFold(tf, "none") {
		return "", false
	}
	return tf, true
}

func (e Element) FirstByClass(class string) (pages.Element, bool) {
	return e.first(func(n *html.Node) bool { return hasClass(n, class) })
}

func (e Element) FirstByTag(tag string) (pages.Element, bool) {
	return e.first(func(n *html.Node) bool { return n.Data == tag })
}

// first returns the first descendant element, in document order, that
// satisfies match
func (e Element) first(match func(*html.Node) bool) (pages.Element, bool) {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type == html.ElementNode && match(c) {
				found = c
				return
			}
			walk(c)
		}
	}
	walk(e.n)

	if found == nil {
		return nil, false
	}
	return Element{n: found}, true
}

func (e Element) style() style {
	return parseStyle(getAttr(e.n, "style"))
}

// textContent appends the text of n and its descendants, the way the DOM
// textContent property does
func textContent(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode && shouldSkipElement(n.Data) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, sb)
	}
}

// shouldSkipElement returns true for elements whose content is not text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}

// getAttr returns the value of an attribute on a node, or empty string if not found.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasClass reports whether class is one of the node's class tokens
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// parseFloats parses exactly want comma-separated numbers
func parseFloats(s string, want int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("%q: got %d values, want %d", s, len(parts), want)
	}

	out := make([]float64, want)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

// style holds inline CSS declarations keyed by lower-case property
type style map[string]string

func parseStyle(s string) style {
	st := make(style)
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		st[strings.ToLower(strings.TrimSpace(prop))] = strings.TrimSpace(val)
	}
	return st
}

// px returns a length property in pixels. Unitless zero is accepted.
func (st style) px(prop string) (float64, error) {
	v, ok := st[prop]
	if !ok {
		return 0, fmt.Errorf("no %s in style", prop)
	}

	num := strings.TrimSuffix(v, "px")
	if num == v && v != "0" {
		return 0, fmt.Errorf("style %s: %q is not a pixel length", prop, v)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("style %s: %w", prop, err)
	}
	return f, nil
}
