package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/annolift"
	"github.com/tsawler/annolift/htmldoc"
	"github.com/tsawler/annolift/model"
)

// extractQuery holds per-request overrides of the configured image switches
type extractQuery struct {
	NoAnnotationImages *bool `form:"noAnnotationImages"`
	PageImages         *bool `form:"pageImages"`
}

// extractResponse is the body of a successful POST /extract
type extractResponse struct {
	Document model.DocumentExtraction `json:"document"`
	Warnings []string                 `json:"warnings"`
}

type server struct {
	extractor *annolift.Extractor
	logger    *logrus.Logger
}

func newRouter(e *annolift.Extractor, logger *logrus.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	s := &server{extractor: e, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)
	r.GET("/healthz", s.healthz)
	r.POST("/extract", s.extract)
	return r
}

func (s *server) logRequests(c *gin.Context) {
	c.Next()
	s.logger.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"status": c.Writer.Status(),
	}).Info("Request")
}

func (s *server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) extract(c *gin.Context) {
	var q extractQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := c.FormFile("snapshot")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing snapshot file"})
		return
	}

	var rasters []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		rasters = form.File["raster"]
	}

	f, err := snapshot.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	reader, err := htmldoc.OpenReader(f, uploadResolver(rasters))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	defer reader.Close()

	doc, warnings, err := s.configure(q).ExtractDocument(c.Request.Context(), reader.Snapshots())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) {
			status = http.StatusRequestTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := extractResponse{Document: doc, Warnings: make([]string, len(warnings))}
	for i, w := range warnings {
		resp.Warnings[i] = w.String()
	}
	c.JSON(http.StatusOK, resp)
}

// configure applies the request overrides to the base extractor
func (s *server) configure(q extractQuery) *annolift.Extractor {
	e := s.extractor
	if q.NoAnnotationImages != nil {
		opts := e.Options()
		opts.NoAnnotationImages = *q.NoAnnotationImages
		e = e.WithOptions(opts)
	}
	if q.PageImages != nil {
		opts := e.Options()
		opts.NoPageImages = !*q.PageImages
		e = e.WithOptions(opts)
	}
	return e
}

// uploadResolver serves rasters from the uploaded files, by base name
func uploadResolver(files []*multipart.FileHeader) htmldoc.Resolver {
	byName := make(map[string]*multipart.FileHeader, len(files))
	for _, fh := range files {
		byName[filepath.Base(fh.Filename)] = fh
	}

	return func(name string) (io.ReadCloser, error) {
		fh, ok := byName[filepath.Base(name)]
		if !ok {
			return nil, fmt.Errorf("raster %q not uploaded: %w", name, fs.ErrNotExist)
		}
		return fh.Open()
	}
}
