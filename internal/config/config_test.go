package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"spdxgen/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "spdxgen")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.ScratchDir != filepath.Join(wantData, "scratch") {
		t.Fatalf("unexpected scratch dir: %q", cfg.Paths.ScratchDir)
	}
	if cfg.Paths.OutputDir != filepath.Join(wantData, "output") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Database.Path != filepath.Join(wantData, "spdxgen.db") {
		t.Fatalf("unexpected database path: %q", cfg.Database.Path)
	}
	if cfg.Paths.TemplateDir != "" {
		t.Fatalf("expected empty template dir, got %q", cfg.Paths.TemplateDir)
	}
	if cfg.Scanner.ProbeBinary != "file" {
		t.Fatalf("unexpected probe binary: %q", cfg.Scanner.ProbeBinary)
	}
	if cfg.Scanner.ProbeTimeout != 30 {
		t.Fatalf("unexpected probe timeout: %d", cfg.Scanner.ProbeTimeout)
	}
	if cfg.Document.NamespaceBase != "https://spdx.example.org/spdxdocs" {
		t.Fatalf("unexpected namespace base: %q", cfg.Document.NamespaceBase)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.ScratchDir, cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if cfg.LockPath() != filepath.Join(cfg.Paths.DataDir, "spdxgen.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "spdxgen.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Scanner struct {
			ProbeBinary string   `toml:"probe_binary"`
			Exclude     []string `toml:"exclude"`
		} `toml:"scanner"`
		Document struct {
			NamespaceBase string `toml:"namespace_base"`
		} `toml:"document"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Scanner.ProbeBinary = "gfile"
	custom.Scanner.Exclude = []string{"*.spdx", " ", "*.spdx", "SPDX.txt"}
	custom.Document.NamespaceBase = "https://example.com/spdx/"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != custom.Paths.DataDir {
		t.Fatalf("expected data dir override, got %q", cfg.Paths.DataDir)
	}
	if cfg.Database.Path != filepath.Join(custom.Paths.DataDir, "spdxgen.db") {
		t.Fatalf("expected database under overridden data dir, got %q", cfg.Database.Path)
	}
	if cfg.Scanner.ProbeBinary != "gfile" {
		t.Fatalf("expected probe binary override, got %q", cfg.Scanner.ProbeBinary)
	}
	if len(cfg.Scanner.Exclude) != 2 || cfg.Scanner.Exclude[0] != "*.spdx" || cfg.Scanner.Exclude[1] != "SPDX.txt" {
		t.Fatalf("expected deduplicated exclude globs, got %v", cfg.Scanner.Exclude)
	}
	if cfg.Document.NamespaceBase != "https://example.com/spdx" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Document.NamespaceBase)
	}
}

func TestEnvFallbacksApplyWhenUnset(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SPDXGEN_PROBE_BINARY", "env-file")
	t.Setenv("SPDXGEN_NAMESPACE_BASE", "https://env.example.org/docs")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Scanner.ProbeBinary != "env-file" {
		t.Fatalf("expected probe binary from env, got %q", cfg.Scanner.ProbeBinary)
	}
	if cfg.Document.NamespaceBase != "https://env.example.org/docs" {
		t.Fatalf("expected namespace base from env, got %q", cfg.Document.NamespaceBase)
	}
}

func TestEnvFallbackDoesNotOverrideFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "spdxgen.toml")
	contents := "[scanner]\nprobe_binary = \"from-file\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPDXGEN_PROBE_BINARY", "from-env")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Scanner.ProbeBinary != "from-file" {
		t.Fatalf("expected config file value to win, got %q", cfg.Scanner.ProbeBinary)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "probe_binary") {
		t.Fatalf("sample config missing scanner settings: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	base := func() config.Config {
		cfg := config.Default()
		cfg.Database.Path = filepath.Join(t.TempDir(), "spdxgen.db")
		cfg.Scanner.ProbeBinary = "file"
		cfg.Document.NamespaceBase = "https://spdx.example.org/spdxdocs"
		return cfg
	}

	cfg := base()
	cfg.Scanner.ProbeTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive probe timeout")
	}

	cfg = base()
	cfg.Scanner.Exclude = []string{"["}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed exclude glob")
	}

	cfg = base()
	cfg.Document.NamespaceBase = "https://broken.example .org"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for namespace base with whitespace")
	}

	cfg = base()
	cfg.Document.Creator = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty creator")
	}
}

func TestLoadRejectsMalformedGlob(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "spdxgen.toml")
	contents := "[scanner]\nexclude = [\"[\"]\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for malformed exclude glob")
	}
}
