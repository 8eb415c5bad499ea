package main

import (
	"os"
	"path/filepath"
	"testing"
)

func scanFixtureDocument(t *testing.T, env cliTestEnv) {
	t.Helper()
	archive := writeTestArchive(t)
	if _, _, err := runCLI(t, []string{"scan", archive}, env.configPath); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
}

func TestRenderCommandTagOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	scanFixtureDocument(t, env)

	stdout, _, err := runCLI(t, []string{"render", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	requireContains(t, stdout, "SPDXVersion: SPDX-2.1")
	requireContains(t, stdout, "DataLicense: CC0-1.0")
	requireContains(t, stdout, "DocumentName: Pkg 1 0")
	requireContains(t, stdout, "Creator: Tool: spdxgen")
	requireContains(t, stdout, "PackageName: pkg-1.0")
	requireContains(t, stdout, "PackageVerificationCode: ")
	requireContains(t, stdout, "FileName: pkg-1.0/main.c")
	requireContains(t, stdout, "FileName: pkg-1.0/README")
}

func TestRenderCommandRDFOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	scanFixtureDocument(t, env)

	stdout, _, err := runCLI(t, []string{"render", "1", "--format", "rdf"}, env.configPath)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	requireContains(t, stdout, `<?xml version="1.0" encoding="UTF-8"?>`)
	requireContains(t, stdout, "<SpdxDocument rdf:about=")
	requireContains(t, stdout, "<describesPackage>")
	requireContains(t, stdout, "</rdf:RDF>")
}

func TestRenderCommandWritesFile(t *testing.T) {
	env := setupCLITestEnv(t)
	scanFixtureDocument(t, env)

	target := filepath.Join(env.baseDir, "out", "doc.spdx")
	stdout, _, err := runCLI(t, []string{"render", "1", "--output", target}, env.configPath)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	requireContains(t, stdout, "Wrote "+target)

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read rendered file: %v", err)
	}
	requireContains(t, string(data), "SPDXVersion: SPDX-2.1")
}

func TestRenderCommandTemplate(t *testing.T) {
	env := setupCLITestEnv(t)
	scanFixtureDocument(t, env)

	templatePath := filepath.Join(env.baseDir, "summary.tmpl")
	if err := os.WriteFile(templatePath, []byte("Name: {{.Document.Name}} Files: {{len .Files}}\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"render", "1", "--template", templatePath}, env.configPath)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	requireContains(t, stdout, "Name: Pkg 1 0 Files: 2")
}

func TestRenderCommandTemplateFromConfiguredDir(t *testing.T) {
	env := setupCLITestEnv(t)
	scanFixtureDocument(t, env)

	templatePath := filepath.Join(env.cfg.Paths.TemplateDir, "short.tmpl")
	if err := os.MkdirAll(env.cfg.Paths.TemplateDir, 0o755); err != nil {
		t.Fatalf("mkdir template dir: %v", err)
	}
	if err := os.WriteFile(templatePath, []byte("{{.Document.SPDXRef}}\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"render", "1", "--template", "short.tmpl"}, env.configPath)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	requireContains(t, stdout, "SPDXRef-")
}

func TestRenderCommandUnknownDocument(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"render", "99"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown document")
	}
	requireContains(t, err.Error(), "document 99 not found")
}

func TestRenderCommandRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	scanFixtureDocument(t, env)

	_, _, err := runCLI(t, []string{"render", "1", "--format", "yaml"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	requireContains(t, err.Error(), "unsupported format")
}

func TestRenderCommandRejectsBadID(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"render", "zero"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
