package annolift

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/annolift/classify"
	"github.com/tsawler/annolift/coords"
	"github.com/tsawler/annolift/crop"
	"github.com/tsawler/annolift/htmldoc"
	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/noise"
	"github.com/tsawler/annolift/pages"
	"github.com/tsawler/annolift/text"
)

// ErrNoCanvas is returned for a page that was never rendered
var ErrNoCanvas = errors.New("annolift: page has no canvas")

// Extractor provides a fluent interface for extracting annotations.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	reader   *htmldoc.Reader

	// Configuration
	options ExtractOptions
	logger  *logrus.Logger
}

// New returns an Extractor with default options and no source. Use
// ExtractPage or ExtractDocument to process snapshots directly.
func New() *Extractor {
	return &Extractor{
		options: defaultOptions(),
		logger:  discardLogger(),
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		reader:   e.reader,
		options:  e.options.clone(),
		logger:   e.logger,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// NoAnnotationImages disables cropping the raster under each annotation.
//
// Example:
//
//	doc, _, err := annolift.Open("capture.html").NoAnnotationImages().Extract(ctx)
func (e *Extractor) NoAnnotationImages() *Extractor {
	newExt := e.clone()
	newExt.options.NoAnnotationImages = true
	return newExt
}

// NoPageImages disables encoding the whole page raster. This is the default.
func (e *Extractor) NoPageImages() *Extractor {
	newExt := e.clone()
	newExt.options.NoPageImages = true
	return newExt
}

// WithPageImages includes the whole page raster in each page result.
func (e *Extractor) WithPageImages() *Extractor {
	newExt := e.clone()
	newExt.options.NoPageImages = false
	return newExt
}

// WithOptions replaces the image switches.
func (e *Extractor) WithOptions(opts Options) *Extractor {
	newExt := e.clone()
	newExt.options.Options = opts
	return newExt
}

// Kinds restricts extraction to the given annotation kinds.
// Multiple calls are cumulative.
//
// Example:
//
//	doc, _, err := annolift.Open("capture.html").Kinds(model.KindHighlight).Extract(ctx)
func (e *Extractor) Kinds(kinds ...model.Kind) *Extractor {
	newExt := e.clone()
	newExt.options.kinds = append(newExt.options.kinds, kinds...)
	return newExt
}

// Concurrency sets how many pages ExtractDocument processes at once.
// Values below one are treated as one.
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.concurrency = max(n, 1)
	return newExt
}

// Logger sets the logger used to report skipped marks and dropped
// annotations. By default nothing is logged.
func (e *Extractor) Logger(l *logrus.Logger) *Extractor {
	newExt := e.clone()
	if l == nil {
		l = discardLogger()
	}
	newExt.logger = l
	return newExt
}

// Options returns the image switches in effect.
func (e *Extractor) Options() Options {
	return e.options.Options
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Extract reads the configured capture and extracts every page.
//
// Example:
//
//	doc, warnings, err := annolift.Open("capture.html").Extract(ctx)
func (e *Extractor) Extract(ctx context.Context) (model.DocumentExtraction, []Warning, error) {
	r := e.reader
	if r == nil {
		if e.filename == "" {
			return model.DocumentExtraction{}, nil, fmt.Errorf("no filename specified")
		}
		opened, err := htmldoc.Open(e.filename)
		if err != nil {
			return model.DocumentExtraction{}, nil, fmt.Errorf("failed to open capture: %w", err)
		}
		defer opened.Close()
		r = opened
	}

	return e.ExtractDocument(ctx, r.Snapshots())
}

// ExtractDocument extracts every page. Pages run concurrently but the
// result lists them in input order. A page that fails is left out and
// reported as a warning; only cancellation of ctx fails the whole document.
// Pages without a canvas are left out the same way.
func (e *Extractor) ExtractDocument(ctx context.Context, snaps []pages.Snapshot) (model.DocumentExtraction, []Warning, error) {
	results := make([]*model.PageExtraction, len(snaps))
	pageWarnings := make([][]Warning, len(snaps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.concurrency)

	for i, snap := range snaps {
		g.Go(func() error {
			page, warnings, err := e.extractPage(gctx, i, snap)
			pageWarnings[i] = warnings
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				e.logger.WithError(err).WithField("page", i+1).Warn("Skipping page")
				pageWarnings[i] = append(pageWarnings[i], Warning{
					Page:       i,
					Annotation: -1,
					Message:    "page skipped",
					Err:        err,
				})
				return nil
			}
			results[i] = &page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.DocumentExtraction{}, nil, err
	}

	doc := model.DocumentExtraction{Pages: make([]model.PageExtraction, 0, len(snaps))}
	var warnings []Warning
	for i, page := range results {
		warnings = append(warnings, pageWarnings[i]...)
		if page != nil {
			doc.Pages = append(doc.Pages, *page)
		}
	}

	return doc, warnings, nil
}

// ExtractPage extracts the annotations of a single page in mark order.
//
// A malformed transform or a failure to list the page's marks fails the
// page. A collaborator failure while measuring, matching or cropping one
// annotation drops only that annotation and reports it as a warning.
//
// Warnings carry the snapshot's own page index when it has an Index method,
// as htmldoc pages do, and page 0 otherwise.
func (e *Extractor) ExtractPage(ctx context.Context, snap pages.Snapshot) (model.PageExtraction, []Warning, error) {
	index := 0
	if p, ok := snap.(indexed); ok {
		index = p.Index()
	}
	return e.extractPage(ctx, index, snap)
}

// indexed is a snapshot that knows its position in the document
type indexed interface {
	Index() int
}

func (e *Extractor) extractPage(ctx context.Context, index int, snap pages.Snapshot) (model.PageExtraction, []Warning, error) {
	canvas, ok := snap.Canvas()
	if !ok {
		return model.PageExtraction{}, nil, ErrNoCanvas
	}

	marks, err := snap.Marks()
	if err != nil {
		return model.PageExtraction{}, nil, fmt.Errorf("listing marks: %w", err)
	}

	p := &pageRun{
		Extractor:  e,
		index:      index,
		snap:       snap,
		canvas:     canvas,
		canvasArea: pages.CanvasArea(canvas),
		log:        e.logger.WithField("page", index+1),
	}

	result := model.PageExtraction{Annotations: make([]model.ExtractedAnnotation, 0)}
	for i, m := range classify.Classify(marks, e.options.kinds...) {
		if err := ctx.Err(); err != nil {
			return model.PageExtraction{}, p.warnings, err
		}

		a, keep, err := p.annotation(ctx, i, m)
		if err != nil {
			return model.PageExtraction{}, p.warnings, fmt.Errorf("annotation %d: %w", i+1, err)
		}
		if keep {
			result.Annotations = append(result.Annotations, a)
		}
	}

	if !e.options.NoPageImages {
		img, err := canvas.Encode(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return model.PageExtraction{}, p.warnings, err
			}
			p.warn(-1, "page image omitted", err)
		} else {
			result.Image = img
		}
	}

	return result, p.warnings, nil
}

// pageRun carries the state of one page extraction
type pageRun struct {
	*Extractor
	index      int
	snap       pages.Snapshot
	canvas     pages.Canvas
	canvasArea float64
	log        *logrus.Entry
	warnings   []Warning
}

// annotation builds the extraction for one classified mark. keep is false
// when the mark is noise or was dropped after a collaborator failure; err is
// set only when the whole page must fail.
func (p *pageRun) annotation(ctx context.Context, i int, m classify.Mark) (a model.ExtractedAnnotation, keep bool, err error) {
	log := p.log.WithFields(logrus.Fields{"annotation": i + 1, "kind": m.Kind})

	geom, err := coords.Geometry(m.Body)
	if err != nil {
		if errors.Is(err, coords.ErrMalformedTransform) {
			return a, false, err
		}
		return a, false, p.drop(i, "geometry unavailable", err)
	}

	if noise.IsSkippable(p.canvasArea, geom.Scaled) {
		log.WithField("region", geom.Scaled).Debug("Skipping page mark")
		return a, false, nil
	}

	lines := make([]string, 0)
	if m.Kind != model.KindText {
		lines, err = text.MatchingLines(p.snap, geom.Natural.Box())
		if err != nil {
			return a, false, p.drop(i, "text unavailable", err)
		}
	}

	var img *model.Image
	if crop.ShouldCrop(m.Kind, geom.Natural, p.options.NoAnnotationImages) {
		img, err = crop.Region(ctx, p.canvas, geom.Scaled)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return a, false, ctxErr
			}
			return a, false, p.drop(i, "image unavailable", err)
		}
	}

	log.WithField("lines", len(lines)).Debug("Extracted annotation")

	return model.ExtractedAnnotation{
		Region:       geom.Natural,
		ScaledRegion: geom.Scaled,
		LinesOfText:  lines,
		Image:        img,
		Comment:      m.Comment(),
		Kind:         m.Kind,
	}, true, nil
}

// drop records a dropped annotation. Anything other than a collaborator
// failure is returned so that it fails the page.
func (p *pageRun) drop(i int, msg string, err error) error {
	if !errors.Is(err, pages.ErrCollaborator) {
		return err
	}
	p.warn(i, "annotation dropped: "+msg, err)
	return nil
}

func (p *pageRun) warn(annotation int, msg string, err error) {
	p.log.WithError(err).WithField("annotation", annotation+1).Warn(msg)
	p.warnings = append(p.warnings, Warning{
		Page:       p.index,
		Annotation: annotation,
		Message:    msg,
		Err:        err,
	})
}
