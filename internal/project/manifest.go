package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded sketch.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Sketch SketchConfig `toml:"sketch"`
	Build  BuildConfig  `toml:"build"`
}

type SketchConfig struct {
	Name string `toml:"name"`
	// Main is the main tab's file name; defaults to <name>.pde.
	Main string `toml:"main"`
	// Package is the default package for generated and pass-through sources.
	Package string `toml:"package"`
}

type BuildConfig struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// LoadManifest decodes and validates a sketch.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("sketch", "name") && strings.TrimSpace(cfg.Sketch.Name) == "" {
		return nil, fmt.Errorf("%s: [sketch].name must not be empty", path)
	}
	if meta.IsDefined("sketch", "main") && filepath.Ext(cfg.Sketch.Main) != ".pde" {
		return nil, fmt.Errorf("%s: [sketch].main must be a .pde file", path)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}
