package main

import "testing"

func TestDocumentsCommandEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"documents"}, env.configPath)
	if err != nil {
		t.Fatalf("documents failed: %v", err)
	}
	requireContains(t, stdout, "No documents stored")
}

func TestDocumentsCommandListsScans(t *testing.T) {
	env := setupCLITestEnv(t)
	archive := writeTestArchive(t)

	if _, _, err := runCLI(t, []string{"scan", archive}, env.configPath); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if _, _, err := runCLI(t, []string{"scan", archive, "--name", "Second Pass"}, env.configPath); err != nil {
		t.Fatalf("second scan failed: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"documents"}, env.configPath)
	if err != nil {
		t.Fatalf("documents failed: %v", err)
	}
	requireContains(t, stdout, "Pkg 1 0")
	requireContains(t, stdout, "Second Pass")
	requireContains(t, stdout, "https://spdx.example.org/spdxdocs/")
}
