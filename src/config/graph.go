package config

import (
	"path/filepath"
	"slices"
)

// BaseVersionLatest makes the scanner pick the highest versioned
// subdirectory of the nested base image.
const BaseVersionLatest = "latest"

// GraphConfig controls where the dependency graph is read from and written to.
type GraphConfig struct {
	Root           string   `yaml:"root" toml:"root"`
	Output         string   `yaml:"output" toml:"output"` // relative paths resolve against Root
	Description    string   `yaml:"description" toml:"description"`
	RegistryPrefix string   `yaml:"registry_prefix" toml:"registry_prefix"`
	Containerfile  string   `yaml:"containerfile" toml:"containerfile"`
	BaseImages     []string `yaml:"base_images" toml:"base_images"`
	Reserved       []string `yaml:"reserved" toml:"reserved"`
	NestedBase     string   `yaml:"nested_base" toml:"nested_base"`   // base image kept under <name>/<version>/
	BaseVersion    string   `yaml:"base_version" toml:"base_version"` // "15", or "latest"
	TrackedOnly    bool     `yaml:"tracked_only" toml:"tracked_only"`
}

// DefaultGraphConfig returns the daemonless repository layout.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		Root:           ".",
		Output:         filepath.Join("daemonless-io", "dependencies.json"),
		Description:    "Dependency graph for daemonless container images. Generated from Containerfile labels.",
		RegistryPrefix: "ghcr.io/daemonless/",
		Containerfile:  "Containerfile",
		BaseImages:     []string{"base", "arr-base", "nginx-base"},
		Reserved:       []string{".git", "daemonless", "daemonless-io", "scripts"},
		NestedBase:     "base",
		BaseVersion:    "15",
	}
}

// OutputPath returns the output file path, resolved against Root when relative.
func (g GraphConfig) OutputPath() string {
	if filepath.IsAbs(g.Output) {
		return g.Output
	}
	return filepath.Join(g.Root, g.Output)
}

// IsBaseImage reports whether name is one of the designated base images.
func (g GraphConfig) IsBaseImage(name string) bool {
	return slices.Contains(g.BaseImages, name)
}

// IsReserved reports whether the top-level entry name is never scanned.
func (g GraphConfig) IsReserved(name string) bool {
	return slices.Contains(g.Reserved, name)
}
