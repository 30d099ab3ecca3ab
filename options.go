package annolift

import "github.com/tsawler/annolift/model"

// Options are the per-extraction switches understood by every page.
type Options struct {
	// NoPageImages suppresses encoding the whole page raster
	NoPageImages bool `json:"noPageImages"`

	// NoAnnotationImages suppresses cropping the raster under annotations
	NoAnnotationImages bool `json:"noAnnotationImages"`
}

// DefaultOptions returns annotation images on and page images off.
func DefaultOptions() Options {
	return Options{
		NoPageImages:       true,
		NoAnnotationImages: false,
	}
}

// ExtractOptions holds the full configuration of an Extractor.
type ExtractOptions struct {
	Options

	// Annotation kinds to collect (nil means all)
	kinds []model.Kind

	// Maximum number of pages processed at once
	concurrency int
}

// DefaultConcurrency is the number of pages extracted at once by default
const DefaultConcurrency = 4

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		Options:     DefaultOptions(),
		kinds:       nil, // nil means all kinds
		concurrency: DefaultConcurrency,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		Options:     o.Options,
		concurrency: o.concurrency,
	}

	// Deep copy kinds slice
	if o.kinds != nil {
		newOpts.kinds = make([]model.Kind, len(o.kinds))
		copy(newOpts.kinds, o.kinds)
	}

	return newOpts
}
