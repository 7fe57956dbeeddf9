package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "mystdir.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Parse   parseConfig   `toml:"parse"`
	Schemas schemasConfig `toml:"schemas"`
	Output  outputConfig  `toml:"output"`
}

type parseConfig struct {
	RawOptions bool              `toml:"raw_options"`
	Jobs       int               `toml:"jobs"`
	Options    map[string]string `toml:"options"`
}

type schemasConfig struct {
	Files []string `toml:"files"`
}

type outputConfig struct {
	Format   string `toml:"format"`
	PathMode string `toml:"path_mode"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Parse.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [parse].jobs must not be negative", path)
	}
	if cfg.Output.Format != "" {
		if _, err := readOutputFormat(cfg.Output.Format); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [output].format: %w", path, err)
		}
	}
	return cfg, nil
}

// schemaFiles resolves [schemas].files relative to the manifest directory.
func (m *projectManifest) schemaFiles() []string {
	out := make([]string, 0, len(m.Config.Schemas.Files))
	for _, f := range m.Config.Schemas.Files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(m.Root, f)
		}
		out = append(out, f)
	}
	return out
}
