// Command annoserve serves annotation extraction over HTTP.
//
// Configuration is read from the environment, after loading a .env file from
// the working directory if one exists:
//
//	PORT                           listen port (default 8080)
//	ANNOLIFT_CONCURRENCY           pages extracted at once (default 4)
//	ANNOLIFT_NO_ANNOTATION_IMAGES  "true" to skip annotation crops
//	ANNOLIFT_PAGE_IMAGES           "true" to include whole page images
//	LOG_LEVEL                      logrus level (default info)
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/annolift"
)

// config is the server configuration
type config struct {
	Port               string
	Concurrency        int
	NoAnnotationImages bool
	PageImages         bool
	LogLevel           logrus.Level
}

func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := config{
		Port:        getenv("PORT", "8080"),
		Concurrency: annolift.DefaultConcurrency,
		LogLevel:    logrus.InfoLevel,
	}

	var err error
	if v := os.Getenv("ANNOLIFT_CONCURRENCY"); v != "" {
		if cfg.Concurrency, err = strconv.Atoi(v); err != nil {
			return config{}, fmt.Errorf("ANNOLIFT_CONCURRENCY: %w", err)
		}
	}
	if cfg.NoAnnotationImages, err = getbool("ANNOLIFT_NO_ANNOTATION_IMAGES"); err != nil {
		return config{}, err
	}
	if cfg.PageImages, err = getbool("ANNOLIFT_PAGE_IMAGES"); err != nil {
		return config{}, err
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if cfg.LogLevel, err = logrus.ParseLevel(v); err != nil {
			return config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// extractor builds the base extractor shared by every request
func (c config) extractor(logger *logrus.Logger) *annolift.Extractor {
	e := annolift.New().Concurrency(c.Concurrency).Logger(logger)
	if c.NoAnnotationImages {
		e = e.NoAnnotationImages()
	}
	if c.PageImages {
		e = e.WithPageImages()
	}
	return e
}

func main() {
	logger := logrus.New()

	cfg, err := loadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}
	logger.SetLevel(cfg.LogLevel)

	r := newRouter(cfg.extractor(logger), logger)

	logger.WithField("port", cfg.Port).Info("Listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}
