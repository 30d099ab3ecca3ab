package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ============================================================================
// Box / Region Tests
// ============================================================================

func TestNewBox(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   Box
	}{
		{"normal", Point{10, 20}, Point{50, 70}, Box{Point{10, 20}, Point{50, 70}}},
		{"reversed", Point{50, 70}, Point{10, 20}, Box{Point{10, 20}, Point{50, 70}}},
		{"mixed", Point{50, 20}, Point{10, 70}, Box{Point{10, 20}, Point{50, 70}}},
		{"same point", Point{10, 10}, Point{10, 10}, Box{Point{10, 10}, Point{10, 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBox(tt.p1, tt.p2)
			if got != tt.want {
				t.Errorf("NewBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewRegionArea(t *testing.T) {
	r := NewRegion(5, 6, 10, 20)
	if r.Area != 200 {
		t.Errorf("Area = %v, want 200", r.Area)
	}
	if r.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if !NewRegion(5, 6, 0, 20).IsEmpty() {
		t.Error("IsEmpty() = false for zero width, want true")
	}
}

func TestRegionBoxRoundTrip(t *testing.T) {
	regions := []Region{
		NewRegion(0, 0, 0, 0),
		NewRegion(10, 20, 30, 40),
		NewRegion(-5, -5, 10, 10),
		NewRegion(2.5, 3.25, 120.5, 14.25),
	}

	for _, r := range regions {
		got := r.Box().Region()
		if diff := cmp.Diff(r, got); diff != "" {
			t.Errorf("Region->Box->Region mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRegionToBox(t *testing.T) {
	got := NewRegion(10, 20, 30, 40).Box()
	want := Box{Min: Point{10, 20}, Max: Point{40, 60}}
	if got != want {
		t.Errorf("Box() = %+v, want %+v", got, want)
	}
}

// ============================================================================
// Overlap Tests
// ============================================================================

func box(x0, y0, x1, y1 float64) Box {
	return Box{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

func TestOverlapArea(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want float64
	}{
		{"partial", box(0, 0, 10, 10), box(5, 5, 15, 15), 25},
		{"contained", box(0, 0, 100, 100), box(10, 10, 20, 20), 100},
		{"disjoint", box(0, 0, 10, 10), box(20, 20, 30, 30), 0},
		{"touching edge", box(0, 0, 10, 10), box(10, 0, 20, 10), 0},
		{"touching corner", box(0, 0, 10, 10), box(10, 10, 20, 20), 0},
		{"x overlap only", box(0, 0, 10, 10), box(5, 20, 15, 30), 0},
		{"sliver", box(0, 0, 10, 10), box(9, 0, 20, 10), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapArea(tt.a, tt.b); got != tt.want {
				t.Errorf("OverlapArea() = %v, want %v", got, tt.want)
			}
			if got := OverlapArea(tt.b, tt.a); got != tt.want {
				t.Errorf("OverlapArea() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapAreaSelf(t *testing.T) {
	boxes := []Box{box(0, 0, 10, 10), box(3, 4, 7.5, 9.25), box(-20, -10, 0, 0)}
	for _, b := range boxes {
		if got := OverlapArea(b, b); got != b.Area() {
			t.Errorf("OverlapArea(%v, %v) = %v, want %v", b, b, got, b.Area())
		}
	}
}

func TestIsOverlapped(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"overlapping", box(0, 0, 10, 10), box(5, 5, 15, 15), true},
		{"disjoint", box(0, 0, 10, 10), box(11, 11, 20, 20), false},
		{"touching edge", box(0, 0, 10, 10), box(10, 0, 20, 10), false},
		{"zero width inside", box(5, 0, 5, 10), box(0, 0, 10, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverlapped(tt.a, tt.b); got != tt.want {
				t.Errorf("IsOverlapped() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsWithinBox(t *testing.T) {
	parent := box(0, 0, 100, 100)

	tests := []struct {
		name  string
		child Box
		want  bool
	}{
		{"same", parent, true},
		{"inside", box(10, 10, 20, 20), true},
		{"on edge", box(0, 0, 100, 10), true},
		{"crossing right", box(90, 10, 110, 20), false},
		{"outside", box(200, 200, 300, 300), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithinBox(tt.child, parent); got != tt.want {
				t.Errorf("IsWithinBox() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapByDimension(t *testing.T) {
	child := box(0, 0, 10, 20)
	parent := box(5, 10, 25, 50)

	x := OverlapByDimension(child, parent, AxisX)
	if x.Overlap != 5 || x.ChildCoverage != 0.5 || x.ParentCoverage != 0.25 {
		t.Errorf("OverlapByDimension(x) = %+v, want {5 0.5 0.25}", x)
	}

	y := OverlapByDimension(child, parent, AxisY)
	if y.Overlap != 10 || y.ChildCoverage != 0.5 || y.ParentCoverage != 0.25 {
		t.Errorf("OverlapByDimension(y) = %+v, want {10 0.5 0.25}", y)
	}

	flat := OverlapByDimension(box(3, 0, 3, 10), parent, AxisX)
	if flat.ChildCoverage != 0 {
		t.Errorf("ChildCoverage for zero extent = %v, want 0", flat.ChildCoverage)
	}
}

// ============================================================================
// Matrix Tests
// ============================================================================

func TestMatrixScaleOnly(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"scale", Matrix{2.5, 0, 0, 3, 0, 0}, true},
		{"skew", Matrix{1, 0.5, 0, 1, 0, 0}, false},
		{"translate", Matrix{1, 0, 0, 1, 10, 0}, false},
		{"rotate 90", Matrix{0, 1, -1, 0, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsScaleOnly(); got != tt.want {
				t.Errorf("IsScaleOnly() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixTransform(t *testing.T) {
	scale := Matrix{2, 0, 0, 3, 0, 0}

	p := scale.Transform(Point{10, 20})
	if p != (Point{20, 60}) {
		t.Errorf("Transform() = %+v, want {20 60}", p)
	}

	sx, sy := scale.ScaleFactors()
	if sx != 2 || sy != 3 {
		t.Errorf("ScaleFactors() = %v, %v, want 2, 3", sx, sy)
	}

	if got := Identity().Transform(Point{7, 9}); got != (Point{7, 9}) {
		t.Errorf("Identity().Transform() = %+v, want {7 9}", got)
	}
}

func TestMatrixTransform_ViewerScale(t *testing.T) {
	p := Matrix{2.66667, 0, 0, 2.66667, 0, 0}.Transform(Point{10, 20})
	if math.Abs(p.X-26.6667) > 1e-9 || math.Abs(p.Y-53.3334) > 1e-9 {
		t.Errorf("Transform() = %+v, want {26.6667 53.3334}", p)
	}
}

func TestRegionOrigin(t *testing.T) {
	if got := NewRegion(3, 4, 10, 10).Origin(); got != (Point{3, 4}) {
		t.Errorf("Origin() = %+v, want {3 4}", got)
	}
}

// ============================================================================
// Result Tests
// ============================================================================

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindHighlight, "highlight"},
		{KindSquare, "square"},
		{KindText, "text"},
		{KindUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	if _, err := ParseKind("popup"); err == nil {
		t.Error("ParseKind(popup) expected error")
	}
}

func TestExtractedAnnotationJSON(t *testing.T) {
	author := "burton"
	a := ExtractedAnnotation{
		Region:       NewRegion(1, 2, 3, 4),
		ScaledRegion: NewRegion(2, 4, 3, 4),
		LinesOfText:  []string{"hello"},
		Comment:      Comment{Author: &author},
		Kind:         KindSquare,
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	want := `{"region":{"left":1,"top":2,"width":3,"height":4,"area":12},` +
		`"scaledRegion":{"left":2,"top":4,"width":3,"height":4,"area":12},` +
		`"linesOfText":["hello"],"image":null,` +
		`"comment":{"author":"burton","text":null},"kind":"square"}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}

	var back ExtractedAnnotation
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if back.Kind != KindSquare {
		t.Errorf("Kind = %v, want square", back.Kind)
	}
}

func TestImageDataURL(t *testing.T) {
	img := &Image{Data: []byte("abc"), Type: "image/png"}
	if got := img.DataURL(); got != "data:image/png;base64,YWJj" {
		t.Errorf("DataURL() = %q", got)
	}
}

func TestDocumentAnnotationCount(t *testing.T) {
	doc := DocumentExtraction{Pages: []PageExtraction{
		{Annotations: make([]ExtractedAnnotation, 2)},
		{},
		{Annotations: make([]ExtractedAnnotation, 3)},
	}}
	if got := doc.AnnotationCount(); got != 5 {
		t.Errorf("AnnotationCount() = %d, want 5", got)
	}
}
