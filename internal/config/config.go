// Package config loads the pipeline configuration: which species is being
// loaded, where its source files live, and where results go.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	xerrors "github.com/avullo/ensembl-xref/internal/errors"
)

// Config is the top-level pipeline configuration.
type Config struct {
	DataDirectory string         `yaml:"data_directory"`
	Database      DatabaseConfig `yaml:"database"`
	Species       SpeciesConfig  `yaml:"species"`
	Sources       []SourceConfig `yaml:"sources"`
	Server        ServerConfig   `yaml:"server"`
	Search        SearchConfig   `yaml:"search"`
}

// DatabaseConfig contains SQLite settings for the xref store.
type DatabaseConfig struct {
	Path      string `yaml:"path"`
	BatchSize int    `yaml:"batch_size"`
}

// SpeciesConfig identifies the species being loaded.
type SpeciesConfig struct {
	ID   int    `yaml:"id"`   // Ensembl taxonomy id
	Name string `yaml:"name"` // e.g. homo_sapiens

	// KeepUnreviewed disables the historical skip of records whose first
	// accession reads "unreviewed".
	KeepUnreviewed bool `yaml:"keep_unreviewed"`
}

// SourceConfig describes one xref source file set.
type SourceConfig struct {
	Name     string   `yaml:"name"`     // e.g. UniProtSwissProt
	Parser   string   `yaml:"parser"`   // registry key: uniprot, xenbase, reactome, mgi
	Files    []string `yaml:"files"`    // paths or globs, relative to data_directory
	URLs     []string `yaml:"urls"`     // remote origins for the download command
	Priority int      `yaml:"priority"` // source precedence in the xref schema
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SearchConfig contains full-text index settings.
type SearchConfig struct {
	Enabled   bool   `yaml:"enabled"`
	IndexPath string `yaml:"index_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDirectory: "data",
		Database: DatabaseConfig{
			Path:      "xref.db",
			BatchSize: 1000,
		},
		Species: SpeciesConfig{
			ID:   9606,
			Name: "homo_sapiens",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Search: SearchConfig{
			Enabled:   true,
			IndexPath: "xref.blv",
		},
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (*Config, error) {
	const op xerrors.Op = "config.Load"

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.E(op, xerrors.KindConfig, path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, xerrors.E(op, xerrors.KindConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run
// with.
func (c *Config) Validate() error {
	const op xerrors.Op = "config.Validate"

	if c.Species.ID < 0 {
		return xerrors.E(op, xerrors.KindConfig, fmt.Sprintf("negative species id %d", c.Species.ID))
	}
	if c.Species.Name == "" {
		return xerrors.E(op, xerrors.KindConfig, "species name is required")
	}
	seen := map[string]bool{}
	for i, src := range c.Sources {
		if src.Name == "" {
			return xerrors.E(op, xerrors.KindConfig, fmt.Sprintf("source %d has no name", i))
		}
		if seen[src.Name] {
			return xerrors.E(op, xerrors.KindConfig, "duplicate source "+src.Name)
		}
		seen[src.Name] = true
		if src.Parser == "" {
			return xerrors.E(op, xerrors.KindConfig, "source "+src.Name+" has no parser")
		}
		if len(src.Files) == 0 {
			return xerrors.E(op, xerrors.KindConfig, "source "+src.Name+" has no files")
		}
	}
	return nil
}

// ResolveFile anchors a configured file path at the data directory.
// Absolute paths pass through.
func (c *Config) ResolveFile(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDirectory, name)
}

// Source returns the named source configuration.
func (c *Config) Source(name string) (SourceConfig, bool) {
	for _, src := range c.Sources {
		if src.Name == name {
			return src, true
		}
	}
	return SourceConfig{}, false
}
