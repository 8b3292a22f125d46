package merger_test

import (
	"encoding/json"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/engine/merger"
)

func key(file, name string) domain.ContractKey {
	return domain.ContractKey{
		File: domain.NewInternedString(file),
		Name: domain.NewInternedString(name),
	}
}

func job(t *testing.T, version string, files []string, dirty ...string) domain.CompilerJob {
	t.Helper()
	paths := make([]domain.InternedString, len(files))
	for i, f := range files {
		paths[i] = domain.NewInternedString(f)
	}
	dirtySet := make(map[domain.InternedString]bool, len(dirty))
	for _, f := range dirty {
		dirtySet[domain.NewInternedString(f)] = true
	}
	return domain.NewCompilerJob(domain.CompilerSolc, semver.MustParse(version), domain.Settings{}, paths, dirtySet)
}

func TestSplitArtifactRef(t *testing.T) {
	id, contract := merger.SplitArtifactRef(merger.ArtifactRef("abc123", "Token"))
	assert.Equal(t, "abc123", id)
	assert.Equal(t, "Token", contract)

	id, contract = merger.SplitArtifactRef("noseparator")
	assert.Equal(t, "noseparator", id)
	assert.Equal(t, "", contract)
}

func TestMerge_FreshOutputs(t *testing.T) {
	j := job(t, "0.8.19", []string{"a.sol"}, "a.sol")
	outputs := map[string]domain.CompilerOutput{
		j.ID: {
			Contracts: map[domain.ContractKey]json.RawMessage{
				key("a.sol", "A"):      json.RawMessage(`{"abi":[]}`),
				key("a.sol", "Helper"): json.RawMessage(`{"abi":[1]}`),
			},
			Diagnostics: []domain.Diagnostic{{Severity: domain.SeverityWarning, Message: "unused variable"}},
		},
	}

	merged, err := merger.Merge([]domain.CompilerJob{j}, outputs, nil, nil)
	require.NoError(t, err)

	require.Len(t, merged.Contracts, 2)
	arts := merged.Lookup("a.sol", "A")
	require.Len(t, arts, 1)
	assert.Equal(t, "0.8.19", arts[0].Version)
	assert.Equal(t, j.ID, arts[0].JobID)
	assert.False(t, arts[0].Cached)
	assert.JSONEq(t, `{"abi":[]}`, string(arts[0].Contract))

	assert.Len(t, merged.Diagnostics, 1)
	assert.False(t, merged.HasErrors())
}

func TestMerge_CachedArtifacts(t *testing.T) {
	cached := map[domain.InternedString][]string{
		domain.NewInternedString("a.sol"): {merger.ArtifactRef("rec1", "A")},
	}
	versions := map[domain.InternedString]string{
		domain.NewInternedString("a.sol"): "0.8.19",
	}

	merged, err := merger.Merge(nil, nil, cached, versions)
	require.NoError(t, err)

	arts := merged.Lookup("a.sol", "A")
	require.Len(t, arts, 1)
	assert.True(t, arts[0].Cached)
	assert.Equal(t, "0.8.19", arts[0].Version)
	assert.Equal(t, []string{"rec1#A"}, arts[0].ArtifactPaths)
	assert.Empty(t, arts[0].Contract)
}

func TestMerge_ContextOutputDiscarded(t *testing.T) {
	// b.sol rides along as context; the compiler re-emits its contract, but
	// the cache's reference stays authoritative.
	j := job(t, "0.8.19", []string{"a.sol", "b.sol"}, "a.sol")
	outputs := map[string]domain.CompilerOutput{
		j.ID: {
			Contracts: map[domain.ContractKey]json.RawMessage{
				key("a.sol", "A"): json.RawMessage(`{"abi":[]}`),
				key("b.sol", "B"): json.RawMessage(`{"abi":["recompiled"]}`),
			},
		},
	}
	cached := map[domain.InternedString][]string{
		domain.NewInternedString("b.sol"): {merger.ArtifactRef("rec9", "B")},
	}
	versions := map[domain.InternedString]string{
		domain.NewInternedString("b.sol"): "0.8.19",
	}

	merged, err := merger.Merge([]domain.CompilerJob{j}, outputs, cached, versions)
	require.NoError(t, err)

	arts := merged.Lookup("b.sol", "B")
	require.Len(t, arts, 1)
	assert.True(t, arts[0].Cached)
	assert.Empty(t, arts[0].Contract)
}

func TestMerge_MultiVersionAccumulates(t *testing.T) {
	// The same contract compiled under two versions yields two artifacts,
	// not a silent overwrite.
	j1 := job(t, "0.7.6", []string{"shared.sol"}, "shared.sol")
	j2 := job(t, "0.8.19", []string{"shared.sol"}, "shared.sol")
	outputs := map[string]domain.CompilerOutput{
		j1.ID: {Contracts: map[domain.ContractKey]json.RawMessage{
			key("shared.sol", "S"): json.RawMessage(`{"bytecode":"0x07"}`),
		}},
		j2.ID: {Contracts: map[domain.ContractKey]json.RawMessage{
			key("shared.sol", "S"): json.RawMessage(`{"bytecode":"0x08"}`),
		}},
	}

	merged, err := merger.Merge([]domain.CompilerJob{j1, j2}, outputs, nil, nil)
	require.NoError(t, err)

	arts := merged.Lookup("shared.sol", "S")
	require.Len(t, arts, 2)

	got, ok := merged.ForVersion("shared.sol", "S", "0.7.6")
	require.True(t, ok)
	assert.JSONEq(t, `{"bytecode":"0x07"}`, string(got.Contract))

	got, ok = merged.ForVersion("shared.sol", "S", "0.8.19")
	require.True(t, ok)
	assert.JSONEq(t, `{"bytecode":"0x08"}`, string(got.Contract))

	_, ok = merged.ForVersion("shared.sol", "S", "0.6.0")
	assert.False(t, ok)
}

func TestMerge_IdenticalDuplicateCollapses(t *testing.T) {
	j1 := job(t, "0.8.19", []string{"a.sol"}, "a.sol")
	j2 := job(t, "0.8.19", []string{"a.sol", "b.sol"}, "a.sol", "b.sol")
	body := json.RawMessage(`{"abi":[]}`)
	outputs := map[string]domain.CompilerOutput{
		j1.ID: {Contracts: map[domain.ContractKey]json.RawMessage{key("a.sol", "A"): body}},
		j2.ID: {Contracts: map[domain.ContractKey]json.RawMessage{key("a.sol", "A"): body}},
	}

	merged, err := merger.Merge([]domain.CompilerJob{j1, j2}, outputs, nil, nil)
	require.NoError(t, err)
	assert.Len(t, merged.Lookup("a.sol", "A"), 1)
}

func TestMerge_InconsistentArtifact(t *testing.T) {
	j1 := job(t, "0.8.19", []string{"a.sol"}, "a.sol")
	j2 := job(t, "0.8.19", []string{"a.sol", "b.sol"}, "a.sol", "b.sol")
	outputs := map[string]domain.CompilerOutput{
		j1.ID: {Contracts: map[domain.ContractKey]json.RawMessage{
			key("a.sol", "A"): json.RawMessage(`{"abi":[1]}`),
		}},
		j2.ID: {Contracts: map[domain.ContractKey]json.RawMessage{
			key("a.sol", "A"): json.RawMessage(`{"abi":[2]}`),
		}},
	}

	_, err := merger.Merge([]domain.CompilerJob{j1, j2}, outputs, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInconsistentArtifact)
}

func TestMerge_ErrorDiagnosticsSurface(t *testing.T) {
	j := job(t, "0.8.19", []string{"a.sol"}, "a.sol")
	outputs := map[string]domain.CompilerOutput{
		j.ID: {
			Diagnostics: []domain.Diagnostic{{Severity: domain.SeverityError, Message: "undeclared identifier"}},
		},
	}

	merged, err := merger.Merge([]domain.CompilerJob{j}, outputs, nil, nil)
	require.NoError(t, err)
	assert.True(t, merged.HasErrors())
}

func TestMerge_MissingJobOutputSkipped(t *testing.T) {
	j := job(t, "0.8.19", []string{"a.sol"}, "a.sol")

	merged, err := merger.Merge([]domain.CompilerJob{j}, map[string]domain.CompilerOutput{}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, merged.Contracts)
}
