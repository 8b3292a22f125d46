package ports

import (
	"context"
	"io"

	"go.trai.ch/solbuild/internal/core/domain"
)

// Telemetry records the progress of compiler jobs.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a unit of work identified by name.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	// Stdout returns a writer capturing the unit's standard output stream.
	Stdout() io.Writer

	// Stderr returns a writer capturing the unit's error output stream.
	Stderr() io.Writer

	// Log records a structured message associated with this vertex.
	Log(level domain.LogLevel, msg string)

	// Cached marks the vertex as a cache hit.
	Cached()

	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
}

type vertexCtxKey struct{}

// ContextWithVertex attaches a vertex to the context so nested work can log
// against it.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexCtxKey{}, v)
}

// VertexFromContext returns the vertex attached to the context, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexCtxKey{}).(Vertex)
	return v, ok
}
