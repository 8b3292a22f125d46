package domain_test

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solbuild/internal/core/domain"
)

func versions(t *testing.T, raw ...string) []*semver.Version {
	t.Helper()
	out := make([]*semver.Version, len(raw))
	for i, r := range raw {
		v, err := semver.NewVersion(r)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func TestParseVersionConstraint(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		version string
		want    bool
	}{
		{"caret lower bound", "^0.8.0", "0.8.19", true},
		{"caret upper bound", "^0.8.0", "0.9.0", false},
		{"whitespace separated range", ">=0.8.0 <0.9.0", "0.8.5", true},
		{"whitespace separated range excludes", ">=0.8.0 <0.9.0", "0.9.0", false},
		{"exact", "0.8.21", "0.8.21", true},
		{"exact mismatch", "0.8.21", "0.8.20", false},
		{"or alternatives left", "0.7.6 || ^0.8.0", "0.7.6", true},
		{"or alternatives right", "0.7.6 || ^0.8.0", "0.8.3", true},
		{"or alternatives neither", "0.7.6 || ^0.8.0", "0.6.12", false},
		{"tilde", "~0.8.2", "0.8.9", true},
		{"tilde excludes minor bump", "~0.8.2", "0.9.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vc, err := domain.ParseVersionConstraint(tt.raw)
			require.NoError(t, err)
			assert.False(t, vc.IsZero())

			v := versions(t, tt.version)[0]
			assert.Equal(t, tt.want, vc.Check(v))
		})
	}
}

func TestParseVersionConstraint_Invalid(t *testing.T) {
	_, err := domain.ParseVersionConstraint("not a range")
	assert.Error(t, err)
}

func TestVersionConstraint_ZeroAdmitsAll(t *testing.T) {
	var vc domain.VersionConstraint
	assert.True(t, vc.IsZero())
	assert.True(t, vc.Check(versions(t, "0.4.11")[0]))
}

func TestVersionPolicy_Select(t *testing.T) {
	available := versions(t, "0.8.0", "0.8.5", "0.8.19", "0.9.1")

	constraint := func(raw string) domain.VersionConstraint {
		vc, err := domain.ParseVersionConstraint(raw)
		require.NoError(t, err)
		return vc
	}

	tests := []struct {
		name        string
		policy      domain.VersionPolicy
		constraints []domain.VersionConstraint
		want        string // "" means no satisfying version
	}{
		{
			name:        "oldest picks smallest satisfying",
			policy:      domain.PreferOldest,
			constraints: []domain.VersionConstraint{constraint(">=0.8.0 <0.9.0"), constraint(">=0.8.5")},
			want:        "0.8.5",
		},
		{
			name:        "newest picks largest satisfying",
			policy:      domain.PreferNewest,
			constraints: []domain.VersionConstraint{constraint(">=0.8.0 <0.9.0"), constraint(">=0.8.5")},
			want:        "0.8.19",
		},
		{
			name:        "unconstrained oldest",
			policy:      domain.PreferOldest,
			constraints: nil,
			want:        "0.8.0",
		},
		{
			name:        "unconstrained newest",
			policy:      domain.PreferNewest,
			constraints: nil,
			want:        "0.9.1",
		},
		{
			name:        "empty intersection",
			policy:      domain.PreferOldest,
			constraints: []domain.VersionConstraint{constraint("^0.7.0"), constraint("^0.8.0")},
			want:        "",
		},
		{
			name:        "nothing available satisfies",
			policy:      domain.PreferNewest,
			constraints: []domain.VersionConstraint{constraint("^0.6.0")},
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Select(available, tt.constraints)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
