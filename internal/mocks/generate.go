// Package mocks provides mock implementations for testing the export pipeline.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the core ports.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockFetchedJSONRepository(ctrl)
//	repo.EXPECT().Stream(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mock for FetchedJSONRepository interface from internal/core package.
// This creates MockFetchedJSONRepository with methods for all FetchedJSONRepository interface methods:
// Stream
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=fetched_json_repository_mock.go github.com/isre1late/json-samples/internal/core FetchedJSONRepository

// Generate mock for SampleStore interface from internal/core package.
// This creates MockSampleStore with methods for all SampleStore interface methods:
// Prepare, Write
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sample_store_mock.go github.com/isre1late/json-samples/internal/core SampleStore
