package domain

import "go.trai.ch/zerr"

var (
	// ErrUnresolvedImport is returned when an import string cannot be mapped
	// to an existing file. Fatal to the whole resolution pass.
	ErrUnresolvedImport = zerr.New("unresolved import")

	// ErrAmbiguousImport is returned when an import string matches files under
	// more than one include root.
	ErrAmbiguousImport = zerr.New("ambiguous import")

	// ErrDuplicateSource is returned when the same canonical path enters the
	// graph twice.
	ErrDuplicateSource = zerr.New("duplicate source file")

	// ErrUnknownNode is returned when an edge references a node id outside
	// the graph.
	ErrUnknownNode = zerr.New("unknown graph node")

	// ErrVersionConflict is returned when the version constraints within one
	// import closure have an empty intersection over the available versions.
	ErrVersionConflict = zerr.New("irreconcilable version constraints")

	// ErrInconsistentArtifact signals that two jobs in the same version
	// partition produced different output for the same (file, contract)
	// pair. This is always a planner bug, never expected in normal
	// operation, and aborts the whole compilation.
	ErrInconsistentArtifact = zerr.New("inconsistent artifact")

	// ErrCompilationFailed aggregates one or more compiler process failures.
	ErrCompilationFailed = zerr.New("compilation failed")

	// ErrBuildExecutionFailed marks errors already reported through the
	// compiler's own diagnostics, so the CLI can exit non-zero without
	// printing a duplicate report.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
