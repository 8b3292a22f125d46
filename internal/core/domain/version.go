package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionConstraint is a parsed semantic-version requirement attached to a
// source file, extracted from its version pragma. The zero value represents
// an unconstrained file.
type VersionConstraint struct {
	// Raw is the pragma text as written in the source, kept for error
	// reporting. Empty for unconstrained files.
	Raw string

	c *semver.Constraints
}

// ParseVersionConstraint parses a pragma range expression such as
// "^0.8.0" or ">=0.8.0 <0.9.0". Pragma grammar separates ANDed bounds with
// whitespace while the semver library expects commas, so whitespace between
// bounds is normalized before parsing. OR alternatives ("||") are preserved.
func ParseVersionConstraint(raw string) (VersionConstraint, error) {
	c, err := semver.NewConstraint(normalizeRange(raw))
	if err != nil {
		return VersionConstraint{}, err
	}
	return VersionConstraint{Raw: strings.TrimSpace(raw), c: c}, nil
}

func normalizeRange(raw string) string {
	groups := strings.Split(raw, "||")
	for i, g := range groups {
		groups[i] = strings.Join(strings.Fields(g), ", ")
	}
	return strings.Join(groups, " || ")
}

// IsZero reports whether the constraint is absent.
func (vc VersionConstraint) IsZero() bool {
	return vc.c == nil
}

// Check reports whether the given version satisfies the constraint.
// An absent constraint admits every version.
func (vc VersionConstraint) Check(v *semver.Version) bool {
	if vc.c == nil {
		return true
	}
	return vc.c.Check(v)
}

// VersionPolicy selects among multiple versions that satisfy a partition's
// intersected constraints. The default prefers the oldest compatible
// compiler, which keeps builds reproducible when newer compilers appear in
// the available set; PreferNewest is an explicit, documented override.
type VersionPolicy int

const (
	// PreferOldest selects the smallest satisfying version (default).
	PreferOldest VersionPolicy = iota
	// PreferNewest selects the largest satisfying version.
	PreferNewest
)

// Select returns the version from available (assumed sorted ascending) chosen
// by the policy among those satisfying all the given constraints. It returns
// nil when no available version satisfies them.
func (p VersionPolicy) Select(available []*semver.Version, constraints []VersionConstraint) *semver.Version {
	satisfies := func(v *semver.Version) bool {
		for _, vc := range constraints {
			if !vc.Check(v) {
				return false
			}
		}
		return true
	}

	if p == PreferNewest {
		for i := len(available) - 1; i >= 0; i-- {
			if satisfies(available[i]) {
				return available[i]
			}
		}
		return nil
	}
	for _, v := range available {
		if satisfies(v) {
			return v
		}
	}
	return nil
}
