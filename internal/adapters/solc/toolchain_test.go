package solc_test

import (
	"encoding/json"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solbuild/internal/adapters/solc"
	"go.trai.ch/solbuild/internal/core/domain"
)

func testJob(t *testing.T, settings domain.Settings, files ...string) (domain.CompilerJob, map[domain.InternedString]*domain.SourceFile) {
	t.Helper()
	paths := make([]domain.InternedString, len(files))
	sources := make(map[domain.InternedString]*domain.SourceFile, len(files))
	for i, f := range files {
		file := domain.NewSourceFile(f, []byte("contract "+f+" {}"))
		paths[i] = file.Path
		sources[file.Path] = file
	}
	job := domain.NewCompilerJob(domain.CompilerSolc, semver.MustParse("0.8.19"), settings, paths, nil)
	return job, sources
}

func TestToolchain_BuildInput(t *testing.T) {
	settings := domain.Settings{
		Optimizer:       domain.OptimizerSettings{Enabled: true, Runs: 200},
		EVMVersion:      "paris",
		Remappings:      []string{"@oz/=node_modules/@openzeppelin/"},
		OutputSelection: domain.OutputSelection{"*": {"abi", "evm.bytecode"}},
	}
	job, sources := testJob(t, settings, "a.sol", "b.sol")

	raw, err := solc.NewToolchain(domain.CompilerSolc).BuildInput(job, sources)
	require.NoError(t, err)

	var in struct {
		Language string `json:"language"`
		Sources  map[string]struct {
			Content string `json:"content"`
		} `json:"sources"`
		Settings struct {
			Remappings []string `json:"remappings"`
			Optimizer  struct {
				Enabled bool `json:"enabled"`
				Runs    int  `json:"runs"`
			} `json:"optimizer"`
			EVMVersion      string                         `json:"evmVersion"`
			OutputSelection map[string]map[string][]string `json:"outputSelection"`
		} `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(raw, &in))

	assert.Equal(t, "Solidity", in.Language)
	require.Len(t, in.Sources, 2)
	assert.Equal(t, "contract a.sol {}", in.Sources["a.sol"].Content)
	assert.Equal(t, []string{"@oz/=node_modules/@openzeppelin/"}, in.Settings.Remappings)
	assert.True(t, in.Settings.Optimizer.Enabled)
	assert.Equal(t, 200, in.Settings.Optimizer.Runs)
	assert.Equal(t, "paris", in.Settings.EVMVersion)
	// Flat selection lifted into file->contract->outputs nesting.
	assert.Equal(t, []string{"abi", "evm.bytecode"}, in.Settings.OutputSelection["*"]["*"])
}

func TestToolchain_BuildInput_DefaultSelection(t *testing.T) {
	job, sources := testJob(t, domain.Settings{}, "a.sol")

	raw, err := solc.NewToolchain(domain.CompilerSolc).BuildInput(job, sources)
	require.NoError(t, err)

	var in struct {
		Settings struct {
			OutputSelection map[string]map[string][]string `json:"outputSelection"`
		} `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(raw, &in))
	assert.Equal(t, []string{"abi", "evm.bytecode"}, in.Settings.OutputSelection["*"]["*"])
}

func TestToolchain_BuildInput_MissingSource(t *testing.T) {
	job, _ := testJob(t, domain.Settings{}, "a.sol")

	_, err := solc.NewToolchain(domain.CompilerSolc).BuildInput(job, nil)
	assert.Error(t, err)
}

func TestToolchain_ParseOutput(t *testing.T) {
	raw := json.RawMessage(`{
		"errors": [
			{"severity": "warning", "message": "unused variable", "sourceLocation": {"file": "a.sol", "start": 10, "end": 20}},
			{"severity": "error", "message": "undeclared identifier"},
			{"severity": "info", "message": "compiler note"}
		],
		"contracts": {
			"a.sol": {"A": {"abi": []}},
			"b.sol": {"B1": {"abi": []}, "B2": {"abi": []}}
		}
	}`)

	out, err := solc.NewToolchain(domain.CompilerSolc).ParseOutput(raw)
	require.NoError(t, err)

	require.Len(t, out.Diagnostics, 3)
	assert.Equal(t, domain.SeverityWarning, out.Diagnostics[0].Severity)
	require.NotNil(t, out.Diagnostics[0].Location)
	assert.Equal(t, "a.sol", out.Diagnostics[0].Location.File)
	assert.Equal(t, 10, out.Diagnostics[0].Location.Start)
	assert.Equal(t, domain.SeverityError, out.Diagnostics[1].Severity)
	// "info" is coerced to warning rather than failing the build.
	assert.Equal(t, domain.SeverityWarning, out.Diagnostics[2].Severity)
	assert.True(t, out.HasErrors())

	require.Len(t, out.Contracts, 3)
	key := domain.ContractKey{File: domain.NewInternedString("b.sol"), Name: domain.NewInternedString("B2")}
	assert.JSONEq(t, `{"abi":[]}`, string(out.Contracts[key]))
}

func TestToolchain_ParseOutput_Invalid(t *testing.T) {
	_, err := solc.NewToolchain(domain.CompilerSolc).ParseOutput(json.RawMessage("not json"))
	assert.Error(t, err)
}

func TestToolchain_Kinds(t *testing.T) {
	for _, kind := range []domain.CompilerKind{domain.CompilerSolc, domain.CompilerResolc, domain.CompilerZksolc} {
		assert.Equal(t, kind, solc.NewToolchain(kind).Kind())
	}
}
