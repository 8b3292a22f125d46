// Package config provides the configuration loader for solbuild.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up in the working
// directory.
const DefaultFilename = "solbuild.yaml"

// DefaultCacheDir holds the fingerprint cache and build records when the
// configuration does not name one.
const DefaultCacheDir = ".solbuild"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.Project, error) {
	filename := l.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	return Load(cwd, filepath.Join(cwd, filename))
}

// Load reads a configuration file and returns the project it describes.
func Load(root, path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Buildfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	return buildProject(root, &file)
}

func buildProject(root string, file *Buildfile) (*domain.Project, error) {
	kind := domain.CompilerKind(file.Compiler)
	if file.Compiler == "" {
		kind = domain.CompilerSolc
	}
	if !kind.Valid() {
		return nil, zerr.With(zerr.New("unknown compiler"), "compiler", file.Compiler)
	}

	if len(file.Sources) == 0 {
		return nil, zerr.New("no sources configured")
	}

	versions, err := parseVersions(file.Versions)
	if err != nil {
		return nil, err
	}

	policy := domain.PreferOldest
	switch file.Policy {
	case "", "oldest":
	case "newest":
		policy = domain.PreferNewest
	default:
		return nil, zerr.With(zerr.New("unknown version policy"), "policy", file.Policy)
	}

	cacheDir := file.CacheDir
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}

	remappings := buildRemappings(file.Remappings)
	settings := file.Settings
	settings.Remappings = mergeRemappingStrings(settings.Remappings, remappings)

	project := &domain.Project{
		Root:         root,
		Sources:      file.Sources,
		IncludePaths: file.Include,
		Remappings:   remappings,
		Compiler:     kind,
		Versions:     versions,
		Policy:       policy,
		Settings:     settings,
		CacheDir:     filepath.Join(root, cacheDir),
		Jobs:         file.Jobs,
	}
	project.SortVersions()
	return project, nil
}

func parseVersions(raw []string) ([]*semver.Version, error) {
	if len(raw) == 0 {
		return nil, zerr.New("no compiler versions configured")
	}
	versions := make([]*semver.Version, 0, len(raw))
	for _, r := range raw {
		v, err := semver.NewVersion(r)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid compiler version"), "version", r)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// buildRemappings flattens the map form from YAML into a deterministic
// slice. The longest-prefix match in the resolver does not depend on the
// order, but a stable order keeps settings digests and error output
// reproducible.
// mergeRemappingStrings folds the remapping table into the compiler
// settings, so the resolver and the compiler apply the same table and a
// remapping change perturbs the settings digest. Entries already spelled
// out under settings.remappings are kept without duplication.
func mergeRemappingStrings(existing []string, remappings []domain.Remapping) []string {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}
	merged := append([]string(nil), existing...)
	for _, r := range remappings {
		s := r.Prefix + "=" + r.Target
		if !seen[s] {
			merged = append(merged, s)
			seen[s] = true
		}
	}
	return merged
}

func buildRemappings(raw map[string]string) []domain.Remapping {
	if len(raw) == 0 {
		return nil
	}
	prefixes := make([]string, 0, len(raw))
	for prefix := range raw {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	remappings := make([]domain.Remapping, 0, len(prefixes))
	for _, prefix := range prefixes {
		remappings = append(remappings, domain.Remapping{Prefix: prefix, Target: raw[prefix]})
	}
	return remappings
}
