package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"lox/internal/trace"
)

const manifestName = "lox.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Run   runConfig   `toml:"run"`
	Trace traceConfig `toml:"trace"`
}

type runConfig struct {
	Main      string `toml:"main"`
	Debug     bool   `toml:"debug"`
	StackSize int    `toml:"stack_size"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

var (
	manifest       *projectManifest
	manifestLoaded bool
)

func loadManifestOnce() error {
	if manifestLoaded {
		return nil
	}
	manifestLoaded = true
	m, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	manifest = m
	return nil
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
		return projectConfig{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Run.StackSize < 0 {
		return projectConfig{}, fmt.Errorf("%s: [run].stack_size must not be negative", path)
	}
	if main := strings.TrimSpace(cfg.Run.Main); main != "" {
		if ext := filepath.Ext(main); ext != ".lox" && ext != ".loxc" {
			return projectConfig{}, fmt.Errorf("%s: [run].main must be a .lox or .loxc file", path)
		}
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [trace].level: %w", path, err)
		}
	}
	if meta.IsDefined("trace", "format") {
		if _, err := trace.ParseFormat(cfg.Trace.Format); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [trace].format: %w", path, err)
		}
	}
	return cfg, nil
}

// resolveMainTarget returns [run].main relative to the manifest directory.
func resolveMainTarget(m *projectManifest) (string, error) {
	if m == nil || strings.TrimSpace(m.Config.Run.Main) == "" {
		return "", fmt.Errorf("no file given and no [run].main in %s", manifestName)
	}
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Run.Main)))
	if _, err := os.Stat(mainPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	return mainPath, nil
}
