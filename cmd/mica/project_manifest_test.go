package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindMicaTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mica.toml"), "[package]\nname = \"demo\"\n[build]\nmain = \"main.mi\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findMicaToml(nested)
	if err != nil {
		t.Fatalf("findMicaToml: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if filepath.Dir(path) != root {
		t.Errorf("got %q, want manifest in %q", path, root)
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "valid",
			content: "[package]\nname = \"demo\"\n[build]\nmain = \"src/main.mi\"\n",
		},
		{
			name:    "missing_package",
			content: "[build]\nmain = \"main.mi\"\n",
			wantErr: "missing [package]",
		},
		{
			name:    "missing_name",
			content: "[package]\n[build]\nmain = \"main.mi\"\n",
			wantErr: "missing [package].name",
		},
		{
			name:    "missing_build",
			content: "[package]\nname = \"demo\"\n",
			wantErr: "missing [build]",
		},
		{
			name:    "empty_main",
			content: "[package]\nname = \"demo\"\n[build]\nmain = \"  \"\n",
			wantErr: "missing [build].main",
		},
		{
			name:    "bad_toml",
			content: "[package\n",
			wantErr: "failed to parse TOML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mica.toml")
			writeFile(t, path, tt.content)
			cfg, err := loadProjectConfig(path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if cfg.Package.Name != "demo" || cfg.Build.Main != "src/main.mi" {
					t.Errorf("got %+v", cfg)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got err %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveBuildTargetExplicitArgWins(t *testing.T) {
	path, manifest, err := resolveBuildTarget([]string{"prog.mi"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "prog.mi" || manifest != nil {
		t.Errorf("got path=%q manifest=%v", path, manifest)
	}
}

func TestResolveBuildTargetFromManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mica.toml"), "[package]\nname = \"demo\"\n[build]\nmain = \"src/main.mi\"\n")
	writeFile(t, filepath.Join(root, "src", "main.mi"), "1+1")

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	path, manifest, err := resolveBuildTarget(nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if manifest == nil || manifest.Config.Package.Name != "demo" {
		t.Fatalf("got manifest %+v", manifest)
	}
	if filepath.Base(path) != "main.mi" {
		t.Errorf("got path %q", path)
	}
}

func TestResolveBuildTargetMissingMainFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mica.toml"), "[package]\nname = \"demo\"\n[build]\nmain = \"absent.mi\"\n")

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	_, _, rerr := resolveBuildTarget(nil)
	if rerr == nil || !strings.Contains(rerr.Error(), "does not exist") {
		t.Errorf("got %v, want missing-main error", rerr)
	}
}
