// Package solc implements the solc-family compiler backend: standard-JSON
// input construction, subprocess invocation and output parsing. The resolc
// and zksolc backends consume and produce the same document shapes and are
// served by the same toolchain with a different kind.
package solc

import (
	"encoding/json"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*Toolchain)(nil)

// Toolchain builds standard-JSON inputs and parses standard-JSON outputs for
// a solc-compatible compiler.
type Toolchain struct {
	kind domain.CompilerKind
}

// NewToolchain creates a toolchain for one of the solc-compatible kinds.
func NewToolchain(kind domain.CompilerKind) *Toolchain {
	return &Toolchain{kind: kind}
}

// Kind returns the backend this toolchain serves.
func (t *Toolchain) Kind() domain.CompilerKind { return t.kind }

type sourceInput struct {
	Content string `json:"content"`
}

type settingsInput struct {
	Remappings      []string                       `json:"remappings,omitempty"`
	Optimizer       domain.OptimizerSettings       `json:"optimizer"`
	EVMVersion      string                         `json:"evmVersion,omitempty"`
	ViaIR           bool                           `json:"viaIR,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

type standardInput struct {
	Language string                 `json:"language"`
	Sources  map[string]sourceInput `json:"sources"`
	Settings settingsInput          `json:"settings"`
}

// BuildInput constructs the standard-JSON document for a job. Every file of
// the job's closure is included, clean context files and dirty files alike,
// so the compiler can resolve all intra-partition imports.
func (t *Toolchain) BuildInput(job domain.CompilerJob, sources map[domain.InternedString]*domain.SourceFile) (json.RawMessage, error) {
	in := standardInput{
		Language: "Solidity",
		Sources:  make(map[string]sourceInput, len(job.Files)),
		Settings: settingsInput{
			Remappings:      job.Settings.Remappings,
			Optimizer:       job.Settings.Optimizer,
			EVMVersion:      job.Settings.EVMVersion,
			ViaIR:           job.Settings.ViaIR,
			OutputSelection: expandSelection(job.Settings.OutputSelection),
		},
	}

	for _, path := range job.Files {
		file, ok := sources[path]
		if !ok {
			return nil, zerr.With(zerr.New("job file missing from source set"), "path", path.String())
		}
		in.Sources[path.String()] = sourceInput{Content: string(file.Content)}
	}

	data, err := json.Marshal(in)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal standard input")
	}
	return data, nil
}

// expandSelection lifts the flat file->outputs selection into solc's
// file->contract->outputs nesting, requesting the outputs for every contract
// of the selected files.
func expandSelection(sel domain.OutputSelection) map[string]map[string][]string {
	if len(sel) == 0 {
		sel = domain.OutputSelection{"*": {"abi", "evm.bytecode"}}
	}
	out := make(map[string]map[string][]string, len(sel))
	for file, outputs := range sel {
		out[file] = map[string][]string{"*": outputs}
	}
	return out
}

type standardError struct {
	Severity       string `json:"severity"`
	Message        string `json:"message"`
	SourceLocation *struct {
		File  string `json:"file"`
		Start int    `json:"start"`
		End   int    `json:"end"`
	} `json:"sourceLocation"`
}

type standardOutput struct {
	Errors    []standardError                       `json:"errors"`
	Contracts map[string]map[string]json.RawMessage `json:"contracts"`
}

// ParseOutput converts a standard-JSON output document into the common
// shape. Contract bodies stay opaque; only the (file, contract) keying and
// the diagnostics are interpreted.
func (t *Toolchain) ParseOutput(raw json.RawMessage) (domain.CompilerOutput, error) {
	var out standardOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.CompilerOutput{}, zerr.Wrap(err, "failed to parse compiler output")
	}

	result := domain.CompilerOutput{
		Contracts: make(map[domain.ContractKey]json.RawMessage),
	}

	for _, e := range out.Errors {
		d := domain.Diagnostic{
			Severity: domain.Severity(e.Severity),
			Message:  e.Message,
		}
		if e.Severity != string(domain.SeverityError) && e.Severity != string(domain.SeverityWarning) {
			// solc also emits "info"; treat anything non-error as a warning
			// so it surfaces without failing the build.
			d.Severity = domain.SeverityWarning
		}
		if loc := e.SourceLocation; loc != nil {
			d.Location = &domain.SourceLocation{File: loc.File, Start: loc.Start, End: loc.End}
		}
		result.Diagnostics = append(result.Diagnostics, d)
	}

	for file, contracts := range out.Contracts {
		for name, body := range contracts {
			key := domain.ContractKey{
				File: domain.NewInternedString(file),
				Name: domain.NewInternedString(name),
			}
			result.Contracts[key] = body
		}
	}

	return result, nil
}
