package main

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spdxgen/internal/config"
	"spdxgen/internal/testsupport"
)

const cliMainSource = "#include <stdio.h>\n\nint main(void) {\n    puts(\"hello\");\n    return 0;\n}\n"

const cliReadmeText = "A tiny fixture package used by the command tests.\n"

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// setupCLITestEnv builds an isolated config rooted in a temp directory,
// points HOME at a scratch home, and writes the config file the commands
// will load through --config.
func setupCLITestEnv(t *testing.T) cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	base := testsupport.BaseDir(cfg)

	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)

	configPath := filepath.Join(home, ".config", "spdxgen", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	content := fmt.Sprintf(`[paths]
data_dir = %q
scratch_dir = %q
output_dir = %q
template_dir = %q
log_dir = %q

[database]
path = %q

[scanner]
probe_binary = %q
probe_timeout = %d

[document]
namespace_base = %q
creator = %q

[logging]
format = "console"
level = "info"
`,
		cfg.Paths.DataDir,
		cfg.Paths.ScratchDir,
		cfg.Paths.OutputDir,
		cfg.Paths.TemplateDir,
		cfg.Paths.LogDir,
		cfg.Database.Path,
		cfg.Scanner.ProbeBinary,
		cfg.Scanner.ProbeTimeout,
		cfg.Document.NamespaceBase,
		cfg.Document.Creator,
	)
	testsupport.WriteText(t, path, content)
}

// runCLI executes the root command with the given arguments and returns the
// captured stdout, stderr, and execution error.
func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cliArgs := make([]string, 0, len(args)+2)
	if configPath != "" {
		cliArgs = append(cliArgs, "--config", configPath)
	}
	cliArgs = append(cliArgs, args...)

	root := newRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(cliArgs)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", want, output)
	}
}

// writeTestArchive produces a small gzipped tarball with one source file and
// one text file under a pkg-1.0/ prefix and returns its path.
func writeTestArchive(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	if err := tw.WriteHeader(&tar.Header{Name: "pkg-1.0/", Mode: 0o755, Typeflag: tar.TypeDir}); err != nil {
		t.Fatalf("write dir header: %v", err)
	}
	members := []struct {
		name string
		body string
	}{
		{name: "pkg-1.0/main.c", body: cliMainSource},
		{name: "pkg-1.0/README", body: cliReadmeText},
	}
	for _, member := range members {
		hdr := &tar.Header{
			Name:     member.name,
			Mode:     0o644,
			Size:     int64(len(member.body)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", member.name, err)
		}
		if _, err := tw.Write([]byte(member.body)); err != nil {
			t.Fatalf("write body %s: %v", member.name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}

	path := filepath.Join(t.TempDir(), "pkg-1.0.tar.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	return path
}
