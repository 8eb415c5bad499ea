package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"spdxgen/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.ScratchDir = filepath.Join(base, "scratch")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.TemplateDir = filepath.Join(base, "templates")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Database.Path = filepath.Join(base, "data", "spdxgen.db")
	cfgVal.Scanner.ProbeBinary = "file"
	cfgVal.Document.NamespaceBase = "https://spdx.example.org/spdxdocs"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithProbeBinary overrides the file type probe binary on the test config.
func WithProbeBinary(binary string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scanner.ProbeBinary = binary
	}
}

// WithExclude sets the scanner exclusion globs on the test config.
func WithExclude(globs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scanner.Exclude = append([]string(nil), globs...)
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the file probe binary is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"file"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
