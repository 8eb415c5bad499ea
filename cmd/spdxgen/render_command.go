package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"spdxgen/internal/config"
	"spdxgen/internal/docstore"
	"spdxgen/internal/license"
	"spdxgen/internal/render"
)

// templateContext is the data handed to user-supplied template files.
type templateContext struct {
	Document   *docstore.Document
	Package    *docstore.Package
	Files      []*docstore.PackageFile
	Licensings []*license.Info
	Creator    string
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var format string
	var templatePath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "render <document-id>",
		Short: "Render a stored document as SPDX tag-value, RDF, or through a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "document")
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *docstore.Store) error {
				rendition, err := renderDocument(cmd.Context(), cfg, store, id, format, templatePath)
				if err != nil {
					return err
				}

				target := strings.TrimSpace(outputPath)
				if target == "" {
					fmt.Fprint(cmd.OutOrStdout(), rendition)
					return nil
				}
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if dir := filepath.Dir(expanded); dir != "" && dir != "." {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return fmt.Errorf("create output directory %q: %w", dir, err)
					}
				}
				if err := os.WriteFile(expanded, []byte(rendition), 0o644); err != nil {
					return fmt.Errorf("write rendition: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", expanded)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "tag", "Output format: tag or rdf")
	cmd.Flags().StringVar(&templatePath, "template", "", "Render through a template file instead of a built-in format")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

// renderDocument loads the document graph and produces the requested rendition.
func renderDocument(ctx context.Context, cfg *config.Config, store *docstore.Store, id int64, format, templatePath string) (string, error) {
	doc, err := store.GetDocument(ctx, id)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", fmt.Errorf("document %d not found", id)
	}

	pkg, err := store.PackageByDocument(ctx, doc.ID)
	if err != nil {
		return "", err
	}
	var files []*docstore.PackageFile
	if pkg != nil {
		files, err = store.FilesByPackage(ctx, pkg.ID)
		if err != nil {
			return "", err
		}
	}
	infos, err := licensingInfos(ctx, store, doc.ID)
	if err != nil {
		return "", err
	}

	creator := cfg.Document.Creator
	if strings.TrimSpace(templatePath) != "" {
		resolved, err := resolveTemplate(cfg, templatePath)
		if err != nil {
			return "", err
		}
		return render.Template(resolved, templateContext{
			Document:   doc,
			Package:    pkg,
			Files:      files,
			Licensings: infos,
			Creator:    creator,
		})
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "tag":
		return render.TagDocument(doc, pkg, files, infos, creator), nil
	case "rdf":
		return render.RDFDocument(doc, pkg, files, infos, creator), nil
	default:
		return "", fmt.Errorf("unsupported format %q (use tag or rdf)", format)
	}
}

// resolveTemplate accepts a template as given or relative to the configured
// template directory.
func resolveTemplate(cfg *config.Config, path string) (string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(expanded); statErr == nil {
		return expanded, nil
	}
	if !filepath.IsAbs(path) && cfg.Paths.TemplateDir != "" {
		candidate := filepath.Join(cfg.Paths.TemplateDir, path)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("template %q not found", path)
}
