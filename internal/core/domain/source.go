// Package domain contains the core domain models for the compilation pipeline:
// source files, the import graph, version constraints, compiler jobs and
// merged outputs.
package domain

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// SourceFile is an immutable source unit identified by its canonical path.
// Content is normalized before hashing so the content hash (and therefore
// the cache) is insensitive to CRLF churn from version control checkouts.
type SourceFile struct {
	// Path is the canonical path of the file relative to the project root.
	Path InternedString

	// Content is the normalized file content. It is shared, never copied:
	// multiple graph nodes referencing identical content point at the same
	// backing slice. Callers must not mutate it.
	Content []byte

	// Hash is the xxhash64 digest of the normalized content, hex encoded.
	Hash string
}

// NewSourceFile normalizes the raw content and computes its content hash.
func NewSourceFile(path string, raw []byte) *SourceFile {
	content := NormalizeLineEndings(raw)
	return &SourceFile{
		Path:    NewInternedString(path),
		Content: content,
		Hash:    fmt.Sprintf("%016x", xxhash.Sum64(content)),
	}
}

// NormalizeLineEndings rewrites CRLF sequences to LF. The input slice is
// returned unchanged when it contains no CR, avoiding an allocation on the
// common path.
func NormalizeLineEndings(raw []byte) []byte {
	if !bytes.ContainsRune(raw, '\r') {
		return raw
	}
	return bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
}
