package coords

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/pages"
)

// ErrMalformedTransform is returned for a transform that is not a
// scale-only matrix(...) value
var ErrMalformedTransform = errors.New("coords: malformed transform")

// ParseMatrix parses a CSS matrix(a, b, c, d, e, f) value
func ParseMatrix(transform string) (model.Matrix, error) {
	s := strings.TrimSpace(transform)
	if !strings.HasPrefix(s, "matrix(") || !strings.HasSuffix(s, ")") {
		return model.Matrix{}, fmt.Errorf("%w: %q", ErrMalformedTransform, transform)
	}

	parts := strings.Split(s[len("matrix("):len(s)-1], ",")
	if len(parts) != 6 {
		return model.Matrix{}, fmt.Errorf("%w: %q has %d components, want 6",
			ErrMalformedTransform, transform, len(parts))
	}

	var m model.Matrix
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Matrix{}, fmt.Errorf("%w: %q component %d: %v",
				ErrMalformedTransform, transform, i, err)
		}
		m[i] = v
	}
	return m, nil
}

// ParseTransformScale extracts the per-axis scale from a
// matrix(sx, 0, 0, sy, 0, 0) value
func ParseTransformScale(transform string) (sx, sy float64, err error) {
	m, err := parseScaleOnly(transform)
	if err != nil {
		return 0, 0, err
	}
	sx, sy = m.ScaleFactors()
	return sx, sy, nil
}

// ElementMatrix returns the scale-only matrix of an element's transform. An
// element with no transform is drawn with the identity matrix.
func ElementMatrix(el pages.Element) (model.Matrix, error) {
	tf, ok := el.Transform()
	if !ok {
		return model.Identity(), nil
	}
	return parseScaleOnly(tf)
}

func parseScaleOnly(transform string) (model.Matrix, error) {
	m, err := ParseMatrix(transform)
	if err != nil {
		return model.Matrix{}, err
	}
	if !m.IsScaleOnly() {
		return model.Matrix{}, fmt.Errorf("%w: %q is not scale-only", ErrMalformedTransform, transform)
	}
	return m, nil
}

// Natural returns the element's region from its unscaled client rectangle
func Natural(el pages.Element) (model.Region, error) {
	r, err := el.ClientRect()
	if err != nil {
		return model.Region{}, fmt.Errorf("natural region: %w", err)
	}
	return model.NewRegion(r.Left, r.Top, r.Width, r.Height), nil
}

// Scaled returns the element's region in raster pixels: its offset position
// times its scale, sized by the already rendered client rectangle
func Scaled(el pages.Element) (model.Region, error) {
	g, err := Geometry(el)
	if err != nil {
		return model.Region{}, err
	}
	return g.Scaled, nil
}

// Geometry measures both forms of an element
func Geometry(el pages.Element) (model.ElementGeometry, error) {
	natural, err := Natural(el)
	if err != nil {
		return model.ElementGeometry{}, err
	}

	m, err := ElementMatrix(el)
	if err != nil {
		return model.ElementGeometry{}, err
	}

	off, err := el.Offset()
	if err != nil {
		return model.ElementGeometry{}, fmt.Errorf("scaled region: %w", err)
	}

	pos := m.Transform(off)
	return model.ElementGeometry{
		Natural: natural,
		Scaled:  model.NewRegion(pos.X, pos.Y, natural.Width, natural.Height),
	}, nil
}
