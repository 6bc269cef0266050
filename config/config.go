// Package config loads the layered .sourcegen.yaml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

const FileName = ".sourcegen.yaml"

type Config struct {
	// Root is the directory relative paths are resolved against.
	Root string `yaml:"-" json:"-"`
	// GrammarDir holds the parser sources scanned for inline tests.
	GrammarDir string `yaml:"grammarDir" json:"grammarDir"`
	// ExtraFiles are scanned after GrammarDir. When empty, the sibling
	// ../grammar.<ext> of GrammarDir is scanned if it exists.
	ExtraFiles    []string `yaml:"extraFiles" json:"extraFiles,omitempty"`
	OkDir         string   `yaml:"okDir" json:"okDir"`
	ErrDir        string   `yaml:"errDir" json:"errDir"`
	Extension     string   `yaml:"extension" json:"extension"`
	CommentPrefix string   `yaml:"commentPrefix" json:"commentPrefix"`
}

func Default() Config {
	return Config{
		GrammarDir:    "crates/parser/src/grammar",
		OkDir:         "crates/syntax/test_data/parser/inline/ok",
		ErrDir:        "crates/syntax/test_data/parser/inline/err",
		Extension:     "rs",
		CommentPrefix: "//",
	}
}

// Load builds the configuration for cwd: defaults, then ~/.sourcegen.yaml,
// then the project root's file, then cwd's own file. Root is set to the
// project root, or cwd when no repository is found.
func Load(cwd string) (Config, error) {
	cfg := Default()

	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return cfg, fmt.Errorf("failed to resolve %s: %w", cwd, err)
	}

	root := FindRoot(absCwd)
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, FileName))
	}
	if root != "" {
		paths = append(paths, filepath.Join(root, FileName))
	}
	if absCwd != root {
		paths = append(paths, filepath.Join(absCwd, FileName))
	}

	for _, path := range paths {
		if cfg, err = mergeFromFile(cfg, path); err != nil {
			return cfg, err
		}
	}

	cfg.Root = root
	if cfg.Root == "" {
		cfg.Root = absCwd
	}
	return cfg, nil
}

// LoadFile parses a single configuration file on top of the defaults.
func LoadFile(path string) (Config, error) {
	return mergeFromFile(Default(), path)
}

func mergeFromFile(base Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return base, nil
	} else if err != nil {
		return base, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return base, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return Merge(base, override), nil
}

// Merge overlays the non-empty fields of override onto base.
func Merge(base, override Config) Config {
	if override.Root != "" {
		base.Root = override.Root
	}
	if override.GrammarDir != "" {
		base.GrammarDir = override.GrammarDir
	}
	if len(override.ExtraFiles) > 0 {
		base.ExtraFiles = override.ExtraFiles
	}
	if override.OkDir != "" {
		base.OkDir = override.OkDir
	}
	if override.ErrDir != "" {
		base.ErrDir = override.ErrDir
	}
	if override.Extension != "" {
		base.Extension = override.Extension
	}
	if override.CommentPrefix != "" {
		base.CommentPrefix = override.CommentPrefix
	}
	return base
}

// Resolve makes path absolute relative to Root.
func (c Config) Resolve(path string) string {
	if filepath.IsAbs(path) || c.Root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(c.Root, path)
}

// Extras returns the resolved extra files and whether they may be missing.
func (c Config) Extras() ([]string, bool) {
	if len(c.ExtraFiles) == 0 {
		sibling := filepath.Join(c.Resolve(c.GrammarDir), "..", "grammar."+c.Extension)
		return []string{sibling}, true
	}
	paths := make([]string, 0, len(c.ExtraFiles))
	for _, p := range c.ExtraFiles {
		paths = append(paths, c.Resolve(p))
	}
	return paths, false
}
