package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noMicaTomlMessage = "no mica.toml found\nplease specify the source file explicitly, e.g.:\n  mica build path/to/prog.mi"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type buildConfig struct {
	Main string `toml:"main"`
}

func findMicaToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "mica.toml")
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
	manifestPath, ok, err := findMicaToml(startDir)
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
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build") {
		return projectConfig{}, fmt.Errorf("%s: missing [build]", path)
	}
	if !meta.IsDefined("build", "main") || strings.TrimSpace(cfg.Build.Main) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [build].main", path)
	}
	return cfg, nil
}

// resolveBuildTarget returns the source path to compile: the explicit
// argument when given, otherwise the manifest's [build].main.
func resolveBuildTarget(args []string) (string, *projectManifest, error) {
	if len(args) > 0 && filepath.Clean(args[0]) != "." {
		return args[0], nil, nil
	}
	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return "", nil, err
	}
	if !found {
		return "", nil, errors.New(noMicaTomlMessage)
	}
	mainRel := strings.TrimSpace(manifest.Config.Build.Main)
	mainPath := filepath.Join(manifest.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("%s: [build].main path does not exist: %s", manifest.Path, mainPath)
		}
		return "", nil, fmt.Errorf("%s: failed to stat [build].main: %w", manifest.Path, err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%s: [build].main must be a .mi file", manifest.Path)
	}
	return mainPath, manifest, nil
}
