// Package raster provides an in-memory page canvas.
//
// A [Canvas] wraps a decoded page raster and implements the pages.Canvas
// collaborator: it cuts regions out pixel for pixel, with no smoothing, and
// encodes them as PNG.
//
// Decoding accepts PNG, JPEG and GIF through the standard library and BMP,
// TIFF and WebP through golang.org/x/image.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/pages"
)

// MIMEType is the encoding of every image a Canvas produces
const MIMEType = "image/png"

// Canvas is a decoded page raster
type Canvas struct {
	img image.Image
}

var _ pages.Canvas = (*Canvas)(nil)

// New wraps an already decoded image
func New(img image.Image) *Canvas {
	return &Canvas{img: img}
}

// Decode reads a page raster in any registered format
func Decode(r io.Reader) (*Canvas, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding raster: %w", err)
	}
	return New(img), nil
}

// Open reads a page raster from a file
func Open(filename string) (*Canvas, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening raster: %w", err)
	}
	return New(img), nil
}

// Image returns the underlying raster
func (c *Canvas) Image() image.Image {
	return c.img
}

// Size returns the raster size in pixels
func (c *Canvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// PixelRect maps a region to raster pixels: the origin is floored and the
// size truncated, the way a canvas sized from fractional CSS pixels is.
func PixelRect(r model.Region) image.Rectangle {
	x0 := int(math.Floor(r.Left))
	y0 := int(math.Floor(r.Top))
	return image.Rect(x0, y0, x0+int(r.Width), y0+int(r.Height))
}

// Crop cuts region out of the raster and encodes it as PNG. The part of the
// region outside the raster is dropped. A region covering no whole pixel,
// such as a highlight under 1px wide, yields no image and no error.
func (c *Canvas) Crop(ctx context.Context, region model.Region) (*model.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := c.img.Bounds()
	rect := PixelRect(region).Add(b.Min).Intersect(b)
	if rect.Empty() {
		return nil, nil
	}

	data, err := encode(imaging.Crop(c.img, rect))
	if err != nil {
		return nil, pages.Collaborator("crop", err)
	}

	return &model.Image{
		Data:   data,
		Type:   MIMEType,
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}, nil
}

// Encode encodes the whole raster as PNG
func (c *Canvas) Encode(ctx context.Context) (*model.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := encode(c.img)
	if err != nil {
		return nil, pages.Collaborator("encode", err)
	}

	w, h := c.Size()
	return &model.Image{Data: data, Type: MIMEType, Width: w, Height: h}, nil
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
