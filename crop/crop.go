// Package crop cuts the raster under an annotation out of its page.
package crop

import (
	"context"
	"fmt"

	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/pages"
)

// ShouldCrop reports whether an annotation gets an image: never for text
// notes, never for an invisible (zero-area) mark, and never when annotation
// images are disabled
func ShouldCrop(kind model.Kind, natural model.Region, disabled bool) bool {
	return !disabled && kind != model.KindText && natural.Area > 0
}

// Region requests the sub-image at scaled, which is already in canvas
// pixels. The returned image reports the requested width and height. It is
// nil when scaled covers no pixel of the canvas.
func Region(ctx context.Context, canvas pages.Canvas, scaled model.Region) (*model.Image, error) {
	img, err := canvas.Crop(ctx, scaled)
	if err != nil {
		return nil, fmt.Errorf("cropping %vx%v at (%v, %v): %w",
			scaled.Width, scaled.Height, scaled.Left, scaled.Top, err)
	}
	if img == nil {
		return nil, nil
	}

	return &model.Image{
		Data:   img.Data,
		Type:   img.Type,
		Width:  scaled.Width,
		Height: scaled.Height,
	}, nil
}
