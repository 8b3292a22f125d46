package domain

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// OutputSelection maps a source file pattern ("*" for all files) to the list
// of compiler outputs requested for it (e.g. "abi", "evm.bytecode").
type OutputSelection map[string][]string

// Covers reports whether this selection is a superset of the requested one:
// every output requested for a file is also produced under this selection,
// either for the same file key or under the "*" wildcard. A cached entry
// whose selection covers the current request can serve it, because the
// artifacts on disk contain at least everything asked for.
func (os OutputSelection) Covers(requested OutputSelection) bool {
	for file, outputs := range requested {
		for _, out := range outputs {
			if !os.includes(file, out) {
				return false
			}
		}
	}
	return true
}

func (os OutputSelection) includes(file, output string) bool {
	for _, key := range []string{file, "*"} {
		for _, have := range os[key] {
			if have == output || have == "*" {
				return true
			}
		}
	}
	return false
}

func (os OutputSelection) clone() OutputSelection {
	if os == nil {
		return nil
	}
	c := make(OutputSelection, len(os))
	for k, v := range os {
		c[k] = append([]string(nil), v...)
	}
	return c
}

// OptimizerSettings mirrors the optimizer block of a compiler's settings
// document.
type OptimizerSettings struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Runs    int  `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// Settings is the compiler-agnostic subset of invocation settings the
// pipeline is sensitive to. Anything that changes generated artifacts must
// feed the digest; the output selection is deliberately kept out of it and
// compared by the Covers partial order instead.
type Settings struct {
	Optimizer       OptimizerSettings `json:"optimizer" yaml:"optimizer"`
	EVMVersion      string            `json:"evmVersion,omitempty" yaml:"evmVersion,omitempty"`
	ViaIR           bool              `json:"viaIR,omitempty" yaml:"viaIR,omitempty"`
	Remappings      []string          `json:"remappings,omitempty" yaml:"remappings,omitempty"`
	OutputSelection OutputSelection   `json:"outputSelection,omitempty" yaml:"outputSelection,omitempty"`
}

// Fingerprint is the cache-comparable form of Settings: an exact-match digest
// over everything except the output selection, plus the selection itself for
// the superset comparison.
type Fingerprint struct {
	Digest          string          `json:"digest"`
	OutputSelection OutputSelection `json:"outputSelection,omitempty"`
}

// Fingerprint computes the settings fingerprint. The digest is an xxhash64
// over a canonical rendering with sorted keys and NUL separators, so field
// ordering in config files cannot perturb it.
func (s Settings) Fingerprint() Fingerprint {
	h := xxhash.New()

	_, _ = fmt.Fprintf(h, "optimizer:%t:%d", s.Optimizer.Enabled, s.Optimizer.Runs)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString("evm:" + s.EVMVersion)
	_, _ = h.Write([]byte{0})
	_, _ = fmt.Fprintf(h, "viaIR:%t", s.ViaIR)
	_, _ = h.Write([]byte{0})

	remaps := append([]string(nil), s.Remappings...)
	sort.Strings(remaps)
	for _, r := range remaps {
		_, _ = h.WriteString(r)
		_, _ = h.Write([]byte{0})
	}

	return Fingerprint{
		Digest:          fmt.Sprintf("%016x", h.Sum64()),
		OutputSelection: s.OutputSelection.clone(),
	}
}

// IsCompatibleWith reports whether a cache entry carrying the receiver as its
// fingerprint can serve a request carrying the argument. The digest is
// compared exactly; the output selection by set inclusion (the cached
// selection must cover what is now requested). This is an asymmetric
// predicate, deliberately distinct from structural equality.
func (f Fingerprint) IsCompatibleWith(requested Fingerprint) bool {
	return f.Digest == requested.Digest && f.OutputSelection.Covers(requested.OutputSelection)
}
