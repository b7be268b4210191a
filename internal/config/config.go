package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from refit.yml.
type ProjectConfig struct {
	Jobs             int      `yaml:"jobs,omitempty"`
	LogLevel         string   `yaml:"logLevel,omitempty"`
	LocalPrefixes    []string `yaml:"localPrefixes,omitempty"`
	MergeAllOverlaps bool     `yaml:"mergeAllOverlaps,omitempty"`
	ExcludeDirs      []string `yaml:"excludeDirs,omitempty"`
}

// Load attempts to read refit.yml or refit.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"refit.yml", "refit.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// JobLimit resolves the configured parallelism, defaulting to the number of
// CPUs when unset.
func (c *ProjectConfig) JobLimit() int {
	if c != nil && c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.NumCPU()
}

// Excluded reports whether any segment of path matches a configured
// excluded directory name.
func (c *ProjectConfig) Excluded(path string) bool {
	if c == nil || len(c.ExcludeDirs) == 0 {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		for _, dir := range c.ExcludeDirs {
			if seg == dir {
				return true
			}
		}
	}
	return false
}
