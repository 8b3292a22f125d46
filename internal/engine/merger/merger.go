// Package merger combines per-job compiler outputs and cached artifacts into
// one coherent output keyed by (file, contract name).
package merger

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// ArtifactRef composes a cache artifact reference from a build record id and
// a contract name. SplitArtifactRef is its inverse.
func ArtifactRef(recordID, contract string) string {
	return recordID + "#" + contract
}

// SplitArtifactRef splits an artifact reference into record id and contract
// name.
func SplitArtifactRef(ref string) (recordID, contract string) {
	if i := strings.LastIndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// Merge builds the session's MergedOutput from all completed jobs plus the
// cached artifact references of files that stayed fresh.
//
// A file a job carried only as context had its output re-emitted by the
// compiler as a side effect; that freshly compiled copy is discarded here in
// favor of the cache's prior reference, avoiding artifact churn for
// unchanged files. The cache is trusted without re-verifying the re-emitted
// bytes against it.
//
// Duplicate (file, contract) pairs across different versions accumulate as a
// list, never overwrite. Two jobs of the same version and kind disagreeing
// on the same pair is an internal invariant violation: it signals a planner
// bug and aborts the merge.
func Merge(
	jobs []domain.CompilerJob,
	outputs map[string]domain.CompilerOutput,
	cachedArtifacts map[domain.InternedString][]string,
	versions map[domain.InternedString]string,
) (*domain.MergedOutput, error) {
	merged := domain.NewMergedOutput()

	// Cache-served artifacts first, in deterministic file order.
	files := make([]domain.InternedString, 0, len(cachedArtifacts))
	for f := range cachedArtifacts {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].String() < files[j].String() })

	for _, file := range files {
		for _, ref := range cachedArtifacts[file] {
			_, contract := SplitArtifactRef(ref)
			key := domain.ContractKey{File: file, Name: domain.NewInternedString(contract)}
			merged.Contracts[key] = append(merged.Contracts[key], domain.ContractArtifact{
				Version:       versions[file],
				Cached:        true,
				ArtifactPaths: []string{ref},
			})
		}
	}

	for _, job := range jobs {
		out, ok := outputs[job.ID]
		if !ok {
			continue
		}

		merged.Diagnostics = append(merged.Diagnostics, out.Diagnostics...)

		for _, key := range sortedKeys(out.Contracts) {
			if !job.IsDirty(key.File) {
				// Context-only file: the cache's prior artifact reference
				// stays authoritative.
				continue
			}
			artifact := domain.ContractArtifact{
				Contract: out.Contracts[key],
				Version:  job.Version.String(),
				JobID:    job.ID,
			}
			if err := appendArtifact(merged, key, artifact); err != nil {
				return nil, err
			}
		}
	}

	return merged, nil
}

func appendArtifact(merged *domain.MergedOutput, key domain.ContractKey, artifact domain.ContractArtifact) error {
	for _, existing := range merged.Contracts[key] {
		if existing.Cached || existing.Version != artifact.Version {
			continue
		}
		if !bytes.Equal(existing.Contract, artifact.Contract) {
			err := zerr.With(zerr.Wrap(domain.ErrInconsistentArtifact, "jobs disagree on contract output"), "file", key.File.String())
			err = zerr.With(err, "contract", key.Name.String())
			return zerr.With(err, "version", artifact.Version)
		}
		// Byte-identical duplicate from another job; keep one.
		return nil
	}
	merged.Contracts[key] = append(merged.Contracts[key], artifact)
	return nil
}

func sortedKeys(contracts map[domain.ContractKey]json.RawMessage) []domain.ContractKey {
	keys := make([]domain.ContractKey, 0, len(contracts))
	for k := range contracts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].File != keys[j].File {
			return keys[i].File.String() < keys[j].File.String()
		}
		return keys[i].Name.String() < keys[j].Name.String()
	})
	return keys
}
