package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScanner(); err != nil {
		return err
	}
	if err := c.validateDocument(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path must be set")
	}
	return nil
}

func (c *Config) validateScanner() error {
	if strings.TrimSpace(c.Scanner.ProbeBinary) == "" {
		return errors.New("scanner.probe_binary must be set")
	}
	if err := ensurePositiveMap(map[string]int{
		"scanner.probe_timeout": c.Scanner.ProbeTimeout,
	}); err != nil {
		return err
	}
	for _, glob := range c.Scanner.Exclude {
		if _, err := filepath.Match(glob, ""); err != nil {
			return fmt.Errorf("scanner.exclude pattern %q: %w", glob, err)
		}
	}
	return nil
}

func (c *Config) validateDocument() error {
	if c.Document.NamespaceBase == "" {
		return errors.New("document.namespace_base must be set")
	}
	if strings.ContainsAny(c.Document.NamespaceBase, " \t") {
		return errors.New("document.namespace_base must not contain whitespace")
	}
	if c.Document.Creator == "" {
		return errors.New("document.creator must be set")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
