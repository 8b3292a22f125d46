package ports

import "go.trai.ch/solbuild/internal/core/domain"

// Preprocessor rewrites sources before they enter the import graph. The
// pipeline tolerates sources being added or rewritten by this step without
// assuming any particular content.
//
//go:generate go run go.uber.org/mock/mockgen -source=preprocessor.go -destination=mocks/mock_preprocessor.go -package=mocks
type Preprocessor interface {
	// Preprocess transforms the source set in place or returns a replacement
	// mapping.
	Preprocess(sources map[domain.InternedString]*domain.SourceFile) (map[domain.InternedString]*domain.SourceFile, error)
}
