package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mtlsort/pkg/config"
	"github.com/yaklabco/mtlsort/pkg/mtl"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Comments != mtl.CommentsKeep {
		t.Errorf("expected comments %q, got %q", mtl.CommentsKeep, result.Config.Comments)
	}
	if !result.Config.BackupsEnabled() {
		t.Error("expected backups enabled by default")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mtlsort.yml"), `
comments: strip
name_prefix: m
backups:
  enabled: false
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Comments != mtl.CommentsStrip {
		t.Errorf("expected comments %q, got %q", mtl.CommentsStrip, cfg.Comments)
	}
	if cfg.NamePrefix != "m" {
		t.Errorf("expected name_prefix %q, got %q", "m", cfg.NamePrefix)
	}
	if cfg.Backups.Enabled {
		t.Error("expected a config file to be able to disable backups")
	}
	if cfg.Backups.Mode != "sidecar" {
		t.Errorf("expected untouched backups.mode to keep its default, got %q", cfg.Backups.Mode)
	}
	if cfg.MaxNameLength != mtl.DefaultMaxNameLength {
		t.Errorf("expected default max_name_length, got %d", cfg.MaxNameLength)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigFromParent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, filepath.Join(root, ".mtlsort.yml"), "name_prefix: parent\n")

	child := filepath.Join(root, "models", "props")
	if err := os.MkdirAll(child, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(child))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.NamePrefix != "parent" {
		t.Errorf("expected name_prefix from parent dir, got %q", result.Config.NamePrefix)
	}
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, filepath.Join(root, ".mtlsort.yml"), "name_prefix: outside\n")

	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at VCS root, found %q", path)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mtlsort.yml"), "name_prefix: project\nmax_name_length: 64\n")

	customPath := filepath.Join(tmpDir, "custom.yml")
	writeConfig(t, customPath, "name_prefix: explicit\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.NamePrefix != "explicit" {
		t.Errorf("expected explicit config to win, got %q", result.Config.NamePrefix)
	}
	if result.Config.MaxNameLength != 64 {
		t.Errorf("expected project max_name_length to survive, got %d", result.Config.MaxNameLength)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("expected project then explicit config, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mtlsort.yml"), "comments: keep\nname_prefix: file\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		Comments:  mtl.CommentsStrip,
		DryRun:    true,
		NoBackups: true,
		Format:    config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Comments != mtl.CommentsStrip {
		t.Errorf("expected CLI comments override, got %q", cfg.Comments)
	}
	if cfg.NamePrefix != "file" {
		t.Errorf("expected unset CLI prefix to keep file value, got %q", cfg.NamePrefix)
	}
	if !cfg.DryRun || !cfg.NoBackups {
		t.Error("expected CLI booleans to be applied")
	}
	if cfg.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", cfg.Format)
	}
	if cfg.BackupsEnabled() {
		t.Error("expected --no-backups to disable backups")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"invalid comment policy", "comments: maybe\n"},
		{"invalid backup mode", "backups:\n  mode: zip\n"},
		{"negative name length", "max_name_length: -1\n"},
		{"prefix with space", "name_prefix: \"my mat\"\n"},
		{"unknown key", "prefix: mat\n"},
		{"malformed yaml", "comments: [keep\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, ".mtlsort.yml")
			writeConfig(t, configPath, tt.content)

			_, err := Load(context.Background(), isolatedOptions(tmpDir))
			if err == nil {
				t.Fatal("expected validation error")
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if validationErr.FilePath != configPath {
				t.Errorf("expected error to name %s, got %q", configPath, validationErr.FilePath)
			}
		})
	}
}

func TestLoad_EmptyConfigFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mtlsort.yml"), "# nothing yet\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.NamePrefix != mtl.DefaultNamePrefix {
		t.Errorf("expected default prefix, got %q", result.Config.NamePrefix)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t.TempDir()))
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mtlsort.yml"), "backups:\n  enabled: true\n  mode: none\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", result.Warnings)
	}
}

func TestLoad_JSONProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".mtlsort.json"), `{
  "name_prefix": "surface_",
  "max_name_length": 64
}`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.NamePrefix != "surface_" {
		t.Errorf("expected name_prefix %q, got %q", "surface_", result.Config.NamePrefix)
	}
	if result.Config.MaxNameLength != 64 {
		t.Errorf("expected max_name_length 64, got %d", result.Config.MaxNameLength)
	}
}
