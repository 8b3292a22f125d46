package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// BuildRecord is a content-addressed snapshot of one compiler invocation:
// exactly what was sent and what came back, named by the hash of its own
// content so a historical build can be retrieved later byte-for-byte.
type BuildRecord struct {
	InputDigest     string          `json:"inputDigest"`
	CompilerKind    CompilerKind    `json:"compiler"`
	CompilerVersion string          `json:"compilerVersion"`
	Input           json.RawMessage `json:"input"`
	Output          json.RawMessage `json:"output"`
	Timestamp       time.Time       `json:"timestamp,omitzero"`
}

// ID computes the record's content address: the sha256 of its canonical JSON
// form with the timestamp zeroed, so re-recording an identical build yields
// the same name.
func (r BuildRecord) ID() string {
	stripped := r
	stripped.Timestamp = time.Time{}
	data, _ := json.Marshal(stripped)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
