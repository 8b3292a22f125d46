// Package vyper implements the Vyper compiler backend. Vyper speaks the same
// standard-JSON framing as solc with a different language tag and a flat
// per-file output selection.
package vyper

import (
	"encoding/json"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*Toolchain)(nil)

// Toolchain builds and parses Vyper standard-JSON documents.
type Toolchain struct{}

// NewToolchain creates the Vyper toolchain.
func NewToolchain() *Toolchain {
	return &Toolchain{}
}

// Kind returns domain.CompilerVyper.
func (t *Toolchain) Kind() domain.CompilerKind { return domain.CompilerVyper }

type sourceInput struct {
	Content string `json:"content"`
}

type standardInput struct {
	Language string                 `json:"language"`
	Sources  map[string]sourceInput `json:"sources"`
	Settings struct {
		EVMVersion      string                         `json:"evmVersion,omitempty"`
		Optimize        bool                           `json:"optimize"`
		OutputSelection map[string]map[string][]string `json:"outputSelection"`
	} `json:"settings"`
}

// BuildInput constructs the Vyper standard-JSON document for a job.
func (t *Toolchain) BuildInput(job domain.CompilerJob, sources map[domain.InternedString]*domain.SourceFile) (json.RawMessage, error) {
	in := standardInput{
		Language: "Vyper",
		Sources:  make(map[string]sourceInput, len(job.Files)),
	}
	in.Settings.EVMVersion = job.Settings.EVMVersion
	in.Settings.Optimize = job.Settings.Optimizer.Enabled
	in.Settings.OutputSelection = expandSelection(job.Settings.OutputSelection)

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

// ParseOutput converts Vyper's output document into the common shape.
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
		if d.Severity != domain.SeverityError {
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
