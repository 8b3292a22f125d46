package config

import "go.trai.ch/solbuild/internal/core/domain"

// Buildfile represents the structure of the solbuild.yaml configuration
// file.
type Buildfile struct {
	Version    int               `yaml:"version"`
	Compiler   string            `yaml:"compiler"`
	Sources    []string          `yaml:"sources"`
	Include    []string          `yaml:"include"`
	Remappings map[string]string `yaml:"remappings"`
	Versions   []string          `yaml:"versions"`
	Policy     string            `yaml:"policy"`
	Settings   domain.Settings   `yaml:"settings"`
	CacheDir   string            `yaml:"cacheDir"`
	Jobs       int               `yaml:"jobs"`
}
