package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultExportLimit is the row limit when EXPORT_LIMIT is unset.
	DefaultExportLimit = 10000
	// MaxExportLimit is the most rows a single run may export.
	MaxExportLimit = 10000
	// DefaultFetchSize is the number of rows pulled per FETCH round trip.
	DefaultFetchSize = 2000
	// DefaultOutputDir is relative to the working directory.
	DefaultOutputDir = "data"
)

var reCursorName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ExportConfig controls where samples are written and how rows are streamed.
type ExportConfig struct {
	OutputDir string `env:"OUTPUT_DIR" envDefault:"data"`
	// FileSuffix is appended to the hex digest. ".py" is kept for compatibility
	// with existing consumers of the sample directory even though the content is JSON.
	FileSuffix string `env:"FILE_SUFFIX" envDefault:".py"`
	Limit      int    `env:"LIMIT"       envDefault:"10000"`
	FetchSize  int    `env:"FETCH_SIZE"  envDefault:"2000"`
	CursorName string `env:"CURSOR_NAME" envDefault:"fetched_json_export"`
	// ProgressEvery logs a progress line every N rows. Zero disables progress logging.
	ProgressEvery int `env:"PROGRESS_EVERY" envDefault:"1000"`
}

// Sanitize applies guardrails for numeric and path settings.
func (c *ExportConfig) Sanitize() {
	if c.OutputDir = strings.TrimSpace(c.OutputDir); c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Limit <= 0 {
		c.Limit = DefaultExportLimit
	}
	if c.FetchSize <= 0 {
		c.FetchSize = DefaultFetchSize
	}
	if c.ProgressEvery < 0 {
		c.ProgressEvery = 0
	}
	c.CursorName = strings.TrimSpace(c.CursorName)
}

// Validate rejects settings that would produce unsafe SQL or paths.
func (c *ExportConfig) Validate() error {
	if !IsValidCursorName(c.CursorName) {
		return errors.New("cursor name must be a plain SQL identifier")
	}
	if c.Limit > MaxExportLimit {
		return fmt.Errorf("export limit %d exceeds maximum %d", c.Limit, MaxExportLimit)
	}
	if strings.ContainsAny(c.FileSuffix, `/\`) {
		return errors.New("file suffix must not contain path separators")
	}
	return nil
}

// IsValidCursorName reports whether name can be used as an unquoted cursor identifier.
func IsValidCursorName(name string) bool {
	return reCursorName.MatchString(name)
}
