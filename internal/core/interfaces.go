package core

import (
	"context"

	"github.com/isre1late/json-samples/internal/domain/model"
)

// This file contains the ports the export service depends on.
// Service implementations should depend on these interfaces, not concrete implementations.

// StreamOptions groups parameters for FetchedJSONRepository.Stream.
type StreamOptions struct {
	// CursorName names the server-side cursor. It must be a plain identifier.
	CursorName string
	// Limit caps the number of rows returned by the query.
	Limit int
	// FetchSize is the number of rows pulled from the cursor per round trip.
	FetchSize int
}

// RowFunc receives rows one at a time. Returning an error stops the stream.
type RowFunc func(row *model.FetchedJSON) error

// FetchedJSONRepository streams stored responses without materializing the result set.
type FetchedJSONRepository interface {
	Stream(ctx context.Context, opts StreamOptions, fn RowFunc) error
}

// SampleStore persists exported bodies under their derived names.
type SampleStore interface {
	// Prepare checks that the destination can accept samples.
	Prepare(ctx context.Context) error
	// Write stores body under name, replacing any existing sample. It reports
	// whether a sample of that name already existed.
	Write(ctx context.Context, name, body string) (bool, error)
}
