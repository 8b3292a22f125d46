// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/solbuild/internal/core/domain"
)

// SourceReader reads and content-addresses source files.
//
//go:generate go run go.uber.org/mock/mockgen -source=source_reader.go -destination=mocks/mock_source_reader.go -package=mocks
type SourceReader interface {
	// Read loads a single file, normalizes line endings and computes its
	// content hash.
	Read(path string) (*domain.SourceFile, error)

	// ReadAll loads a set of files keyed by canonical path. Reads may run in
	// parallel; ordering is irrelevant since the result is a mapping. Any
	// single read failure fails the whole batch, no partial results are
	// silently dropped.
	ReadAll(ctx context.Context, paths []string) (map[domain.InternedString]*domain.SourceFile, error)
}
