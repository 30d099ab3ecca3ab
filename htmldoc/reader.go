package htmldoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/pages"
	"github.com/tsawler/annolift/raster"
)

// FragmentTag is the element used for text layer fragments
const FragmentTag = "div"

// ErrNoRaster is returned when a page canvas has no raster to crop from
var ErrNoRaster = errors.New("htmldoc: canvas has no raster")

// Resolver opens the raster named by a canvas data-raster attribute
type Resolver func(name string) (io.ReadCloser, error)

// DirResolver resolves raster names relative to dir. Names that escape dir
// are rejected.
func DirResolver(dir string) Resolver {
	return func(name string) (io.ReadCloser, error) {
		clean := filepath.Clean(filepath.FromSlash(name))
		if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("raster %q is outside %s", name, dir)
		}
		return os.Open(filepath.Join(dir, clean))
	}
}

// Reader provides access to the pages of a captured viewer document.
type Reader struct {
	pages []*Page
}

// Open opens a captured HTML file for reading. Rasters are resolved relative
// to the file's directory.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, DirResolver(filepath.Dir(filename)))
}

// OpenReader parses a captured document from an io.Reader. The encoding is
// sniffed from a BOM or meta tag. A nil resolver leaves every canvas without
// a raster.
func OpenReader(r io.Reader, resolve Resolver) (*Reader, error) {
	utf8, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	doc, err := html.Parse(utf8)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{}

	nodes := findAllByClass(doc, pages.ClassPage)
	if len(nodes) == 0 {
		nodes = []*html.Node{doc}
	}

	for i, n := range nodes {
		p, err := newPage(i, n, resolve)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		reader.pages = append(reader.pages, p)
	}

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// PageCount returns the number of pages
func (r *Reader) PageCount() int {
	return len(r.pages)
}

// Pages returns the pages in document order
func (r *Reader) Pages() []*Page {
	return r.pages
}

// Snapshots returns the pages as snapshots, in document order
func (r *Reader) Snapshots() []pages.Snapshot {
	out := make([]pages.Snapshot, len(r.pages))
	for i, p := range r.pages {
		out[i] = p
	}
	return out
}

// Page is one captured page. It implements pages.Snapshot.
type Page struct {
	index     int
	node      *html.Node
	canvas    pages.Canvas
	marks     []pages.Element
	fragments []pages.Element
}

var _ pages.Snapshot = (*Page)(nil)

func newPage(index int, n *html.Node, resolve Resolver) (*Page, error) {
	p := &Page{index: index, node: n}

	for _, layer := range findAllByClass(n, pages.ClassAnnotationLayer) {
		walkMarks(layer, func(m *html.Node) {
			p.marks = append(p.marks, Element{n: m})
		})
	}

	for _, layer := range findAllByClass(n, pages.ClassTextLayer) {
		walkElements(layer, func(c *html.Node) bool {
			if c.Data == FragmentTag {
				p.fragments = append(p.fragments, Element{n: c})
			}
			return true
		})
	}

	if cn := findElement(n, "canvas"); cn != nil {
		c, err := loadCanvas(cn, resolve)
		if err != nil {
			return nil, err
		}
		p.canvas = c
	}

	return p, nil
}

// Index returns the zero-based page index
func (p *Page) Index() int {
	return p.index
}

// Marks returns the annotation marks in document order
func (p *Page) Marks() ([]pages.Element, error) {
	return p.marks, nil
}

// TextFragments returns the text layer fragments in document order
func (p *Page) TextFragments() ([]pages.Element, error) {
	return p.fragments, nil
}

// Canvas returns the page raster, if the page has a canvas
func (p *Page) Canvas() (pages.Canvas, bool) {
	return p.canvas, p.canvas != nil
}

// loadCanvas resolves and decodes the raster of a canvas node. A canvas
// without one still reports its size but cannot be cropped.
func loadCanvas(n *html.Node, resolve Resolver) (pages.Canvas, error) {
	name := getAttr(n, "data-raster")
	if name == "" || resolve == nil {
		return unrenderedCanvas{size: canvasSize(n)}, nil
	}

	rc, err := resolve(name)
	if err != nil {
		return nil, fmt.Errorf("resolving raster %q: %w", name, err)
	}
	defer rc.Close()

	c, err := raster.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("raster %q: %w", name, err)
	}
	return c, nil
}

func canvasSize(n *html.Node) model.Point {
	w, _ := strconv.ParseFloat(getAttr(n, "width"), 64)
	h, _ := strconv.ParseFloat(getAttr(n, "height"), 64)
	return model.Point{X: w, Y: h}
}

// unrenderedCanvas is a canvas whose pixels were not captured
type unrenderedCanvas struct {
	size model.Point
}

func (c unrenderedCanvas) Size() (float64, float64) {
	return c.size.X, c.size.Y
}

func (c unrenderedCanvas) Crop(context.Context, model.Region) (*model.Image, error) {
	return nil, pages.Collaborator("crop", ErrNoRaster)
}

func (c unrenderedCanvas) Encode(context.Context) (*model.Image, error) {
	return nil, pages.Collaborator("encode", ErrNoRaster)
}

// walkMarks visits every element under an annotation layer whose class
// names an annotation, without descending into it
func walkMarks(layer *html.Node, visit func(*html.Node)) {
	walkElements(layer, func(c *html.Node) bool {
		if isMark(c) {
			visit(c)
			return false
		}
		return true
	})
}

func isMark(n *html.Node) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if strings.HasSuffix(c, "Annotation") && c != "Annotation" {
			return true
		}
	}
	return false
}

// walkElements visits descendant elements in document order. Returning
// false from visit skips the element's children.
func walkElements(n *html.Node, visit func(*html.Node) bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if visit(c) {
			walkElements(c, visit)
		}
	}
}

// findAllByClass returns the outermost elements carrying class
func findAllByClass(n *html.Node, class string) []*html.Node {
	var result []*html.Node
	walkElements(n, func(c *html.Node) bool {
		if hasClass(c, class) {
			result = append(result, c)
			return false
		}
		return true
	})
	return result
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}
