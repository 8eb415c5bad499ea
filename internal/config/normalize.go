package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDatabase(); err != nil {
		return err
	}
	c.normalizeScanner()
	c.normalizeDocument()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		c.Paths.ScratchDir = filepath.Join(c.Paths.DataDir, "scratch")
	}
	if c.Paths.ScratchDir, err = expandPath(c.Paths.ScratchDir); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = filepath.Join(c.Paths.DataDir, "output")
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	// template_dir stays empty unless configured; rendering falls back to the
	// built-in document layouts.
	if strings.TrimSpace(c.Paths.TemplateDir) != "" {
		if c.Paths.TemplateDir, err = expandPath(c.Paths.TemplateDir); err != nil {
			return fmt.Errorf("paths.template_dir: %w", err)
		}
	} else {
		c.Paths.TemplateDir = ""
	}
	return nil
}

func (c *Config) normalizeDatabase() error {
	var err error
	if strings.TrimSpace(c.Database.Path) == "" {
		c.Database.Path = filepath.Join(c.Paths.DataDir, databaseFileName)
	}
	if c.Database.Path, err = expandPath(c.Database.Path); err != nil {
		return fmt.Errorf("database.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeScanner() {
	c.Scanner.ProbeBinary = strings.TrimSpace(c.Scanner.ProbeBinary)
	if c.Scanner.ProbeBinary == "" {
		if value, ok := os.LookupEnv("SPDXGEN_PROBE_BINARY"); ok {
			c.Scanner.ProbeBinary = strings.TrimSpace(value)
		}
	}
	if c.Scanner.ProbeBinary == "" {
		c.Scanner.ProbeBinary = defaultProbeBinary
	}
	if c.Scanner.ProbeTimeout <= 0 {
		c.Scanner.ProbeTimeout = defaultProbeTimeout
	}

	if len(c.Scanner.Exclude) > 0 {
		globs := make([]string, 0, len(c.Scanner.Exclude))
		seen := make(map[string]struct{}, len(c.Scanner.Exclude))
		for _, glob := range c.Scanner.Exclude {
			normalized := strings.TrimSpace(glob)
			if normalized == "" {
				continue
			}
			if _, exists := seen[normalized]; exists {
				continue
			}
			seen[normalized] = struct{}{}
			globs = append(globs, normalized)
		}
		c.Scanner.Exclude = globs
	}
}

func (c *Config) normalizeDocument() {
	c.Document.NamespaceBase = strings.TrimSpace(c.Document.NamespaceBase)
	if c.Document.NamespaceBase == "" {
		if value, ok := os.LookupEnv("SPDXGEN_NAMESPACE_BASE"); ok {
			c.Document.NamespaceBase = strings.TrimSpace(value)
		}
	}
	if c.Document.NamespaceBase == "" {
		c.Document.NamespaceBase = defaultNamespaceBase
	}
	c.Document.NamespaceBase = strings.TrimRight(c.Document.NamespaceBase, "/")

	c.Document.Creator = strings.TrimSpace(c.Document.Creator)
	if c.Document.Creator == "" {
		c.Document.Creator = defaultCreator
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
