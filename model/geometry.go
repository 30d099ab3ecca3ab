package model

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Point represents a 2D point in page pixel space (origin top-left, Y down)
type Point struct {
	X, Y float64
}

// Box is an ordered (Min, Max) corner pair. Min.X <= Max.X and Min.Y <= Max.Y.
// It is the representation used for every overlap test.
type Box struct {
	Min Point
	Max Point
}

// NewBox creates a box from two corners, normalizing their order
func NewBox(p1, p2 Point) Box {
	return Box{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the horizontal extent
func (b Box) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent
func (b Box) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Area returns the area of the box
func (b Box) Area() float64 {
	return b.Width() * b.Height()
}

// Region converts the box to its left/top/width/height form
func (b Box) Region() Region {
	return NewRegion(b.Min.X, b.Min.Y, b.Width(), b.Height())
}

// rect returns the box as an r2 rectangle
func (b Box) rect() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: b.Min.X, Hi: b.Max.X},
		Y: r1.Interval{Lo: b.Min.Y, Hi: b.Max.Y},
	}
}

// Region is the left/top/width/height form of a Box, used for pixel cropping.
// Area is always Width * Height.
type Region struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Area   float64 `json:"area"`
}

// NewRegion creates a region and computes its area
func NewRegion(left, top, width, height float64) Region {
	return Region{
		Left:   left,
		Top:    top,
		Width:  width,
		Height: height,
		Area:   width * height,
	}
}

// Box converts the region to its corner form
func (r Region) Box() Box {
	return Box{
		Min: Point{X: r.Left, Y: r.Top},
		Max: Point{X: r.Left + r.Width, Y: r.Top + r.Height},
	}
}

// Origin returns the top-left corner
func (r Region) Origin() Point {
	return Point{X: r.Left, Y: r.Top}
}

// IsEmpty returns true if the region has no area
func (r Region) IsEmpty() bool {
	return r.Area <= 0
}

// ElementGeometry holds the two measurements of a single page element.
// Natural comes from the unscaled client rectangle. Scaled multiplies the
// element's offset position by its rendering scale and keeps the client
// width and height, which are already rendered at scale.
type ElementGeometry struct {
	Natural Region
	Scaled  Region
}

// OverlapArea returns the area shared by two boxes.
// Boxes that touch only along an edge or at a corner share no area.
func OverlapArea(a, b Box) float64 {
	in := a.rect().Intersection(b.rect())
	return math.Max(0, in.X.Length()) * math.Max(0, in.Y.Length())
}

// IsOverlapped reports whether two boxes share a strictly positive area.
// There is no minimum coverage: any sliver of overlap is a match.
func IsOverlapped(a, b Box) bool {
	return OverlapArea(a, b) > 0
}

// IsWithinBox reports whether child lies inside parent, bounds inclusive
func IsWithinBox(child, parent Box) bool {
	return parent.rect().Contains(child.rect())
}

// Axis selects a box dimension
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// DimensionOverlap describes how two boxes overlap along one axis
type DimensionOverlap struct {
	Overlap        float64
	ChildCoverage  float64 // Overlap / child extent
	ParentCoverage float64 // Overlap / parent extent
}

// OverlapByDimension computes the overlap of child and parent along a single
// axis, with the fraction of each box's extent that it covers. A zero extent
// yields zero coverage.
func OverlapByDimension(child, parent Box, axis Axis) DimensionOverlap {
	ci, pi := interval(child, axis), interval(parent, axis)
	overlap := math.Max(0, ci.Intersection(pi).Length())

	return DimensionOverlap{
		Overlap:        overlap,
		ChildCoverage:  coverage(overlap, ci.Length()),
		ParentCoverage: coverage(overlap, pi.Length()),
	}
}

func interval(b Box, axis Axis) r1.Interval {
	if axis == AxisY {
		return r1.Interval{Lo: b.Min.Y, Hi: b.Max.Y}
	}
	return r1.Interval{Lo: b.Min.X, Hi: b.Max.X}
}

func coverage(overlap, extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	return overlap / extent
}

// Matrix represents a 2D affine transformation matrix in CSS order
// (a, b, c, d, e, f).
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// ScaleFactors returns the per-axis scale of a scale-only matrix
func (m Matrix) ScaleFactors() (sx, sy float64) {
	return m[0], m[3]
}

// IsScaleOnly returns true if the matrix has no skew, rotation or translation
func (m Matrix) IsScaleOnly() bool {
	return m[1] == 0 && m[2] == 0 && m[4] == 0 && m[5] == 0
}
