package ports

import (
	"context"
	"encoding/json"

	"go.trai.ch/solbuild/internal/core/domain"
)

// CompilerExecutor runs one compiler process for a job. The input and output
// are compiler-specific JSON documents; the pipeline only requires that the
// output can be keyed by file path and contract name and that errors carry a
// severity. Timeouts, if any, are the executor's responsibility.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CompilerExecutor interface {
	// Execute feeds the serialized input to the compiler selected by the
	// job's kind and version and returns its raw output. A process-level
	// failure (missing binary, non-zero exit without parseable output)
	// is returned as an error carrying a captured stderr tail.
	Execute(ctx context.Context, job domain.CompilerJob, input json.RawMessage) (json.RawMessage, error)
}

// Toolchain is the per-backend capability set: shaping sources into the
// backend's input document and parsing its output back into the common
// shape. One implementation exists per compiler family, selected by
// configuration.
type Toolchain interface {
	// Kind returns the backend this toolchain serves.
	Kind() domain.CompilerKind

	// BuildInput constructs the backend's standard input document for a job
	// from the job's full source set.
	BuildInput(job domain.CompilerJob, sources map[domain.InternedString]*domain.SourceFile) (json.RawMessage, error)

	// ParseOutput converts the backend's raw output into the common shape.
	ParseOutput(raw json.RawMessage) (domain.CompilerOutput, error)
}
