package domain

import (
	"encoding/json"
	"fmt"
)

// Severity classifies a compiler diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// SourceLocation points a diagnostic at a range inside a source file.
// End may be -1 when the compiler reports only a start offset.
type SourceLocation struct {
	File  string `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Diagnostic is one error or warning emitted by a compiler, normalized
// across backends.
type Diagnostic struct {
	Severity Severity        `json:"severity"`
	Message  string          `json:"message"`
	Location *SourceLocation `json:"location,omitempty"`
}

// String renders the diagnostic for terminal output.
func (d Diagnostic) String() string {
	if d.Location != nil {
		return fmt.Sprintf("%s: %s:%d: %s", d.Severity, d.Location.File, d.Location.Start, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// ContractKey identifies a compiled contract by source file and contract
// name.
type ContractKey struct {
	File InternedString
	Name InternedString
}

// CompilerOutput is one job's parsed output in the common shape: contracts
// keyed by file and name, with the contract body kept as an opaque JSON
// value, plus the job's diagnostics.
type CompilerOutput struct {
	Contracts   map[ContractKey]json.RawMessage
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic has error severity.
func (o CompilerOutput) HasErrors() bool {
	for _, d := range o.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ContractArtifact is one produced version of a contract. Cached is true
// when the artifact was served from the cache rather than freshly compiled;
// Contract is empty in that case and ArtifactPaths locates the prior output.
type ContractArtifact struct {
	Contract      json.RawMessage `json:"contract,omitempty"`
	Version       string          `json:"version"`
	JobID         string          `json:"jobId,omitempty"`
	Cached        bool            `json:"cached,omitempty"`
	ArtifactPaths []string        `json:"artifacts,omitempty"`
}

// MergedOutput is the result of one compilation session: every produced
// contract keyed by (file, contract name), as a list because multi-version
// builds legitimately produce the same pair more than once. Consumers choose
// among duplicates by explicit query, never implicit last-wins. Built fresh
// each session; never persisted directly.
type MergedOutput struct {
	Contracts   map[ContractKey][]ContractArtifact
	Diagnostics []Diagnostic
}

// NewMergedOutput creates an empty MergedOutput.
func NewMergedOutput() *MergedOutput {
	return &MergedOutput{Contracts: make(map[ContractKey][]ContractArtifact)}
}

// Lookup returns all artifacts produced for a (file, contract) pair.
func (m *MergedOutput) Lookup(file, name string) []ContractArtifact {
	return m.Contracts[ContractKey{File: NewInternedString(file), Name: NewInternedString(name)}]
}

// ForVersion returns the artifact for a (file, contract) pair produced under
// a specific compiler version, if any.
func (m *MergedOutput) ForVersion(file, name, version string) (ContractArtifact, bool) {
	for _, a := range m.Lookup(file, name) {
		if a.Version == version {
			return a, true
		}
	}
	return ContractArtifact{}, false
}

// HasErrors reports whether the session collected any error diagnostics.
func (m *MergedOutput) HasErrors() bool {
	for _, d := range m.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
