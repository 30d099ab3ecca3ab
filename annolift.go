// Package annolift extracts user annotations, and the text and raster they
// cover, from rendered document pages.
//
// Basic usage:
//
//	doc, warnings, err := annolift.Open("capture/index.html").Extract(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", annolift.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := annolift.Open("capture/index.html").
//	    NoAnnotationImages().
//	    Kinds(model.KindHighlight).
//	    Extract(ctx)
//
// Pages captured some other way can be passed in as pages.Snapshot values:
//
//	page, warnings, err := annolift.New().ExtractPage(ctx, snapshot)
package annolift

import (
	"github.com/tsawler/annolift/htmldoc"
)

// Open returns an Extractor reading the captured viewer HTML at filename.
// The file is read when a terminal operation such as Extract runs.
func Open(filename string) *Extractor {
	e := New()
	e.filename = filename
	return e
}

// FromReader returns an Extractor over an already opened capture.
// The caller is responsible for closing the reader.
func FromReader(r *htmldoc.Reader) *Extractor {
	e := New()
	e.reader = r
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustExtract is like Must for calls that also return warnings, which it
// discards.
func MustExtract[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
