package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"spdxgen/internal/config"
	"spdxgen/internal/docstore"
	"spdxgen/internal/license"
)

func newLicensesCommand(ctx *commandContext) *cobra.Command {
	licensesCmd := &cobra.Command{
		Use:   "licenses",
		Short: "Manage extracted licensing information",
	}

	licensesCmd.AddCommand(newLicensesAddCommand(ctx))
	licensesCmd.AddCommand(newLicensesShowCommand(ctx))
	licensesCmd.AddCommand(newLicensesListCommand(ctx))

	return licensesCmd
}

func newLicensesAddCommand(ctx *commandContext) *cobra.Command {
	var (
		documentID     int64
		fileChecksum   string
		licenseID      string
		licenseName    string
		text           string
		textFile       string
		crossRefs      []string
		comment        string
		osiApproved    bool
		standardHeader string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Attach an extracted licensing statement to a scanned file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if documentID <= 0 {
				return errors.New("--document is required")
			}
			if strings.TrimSpace(fileChecksum) == "" {
				return errors.New("--file-checksum is required")
			}
			if strings.TrimSpace(licenseID) == "" {
				return errors.New("--license-id is required")
			}

			extracted := text
			if strings.TrimSpace(textFile) != "" {
				if strings.TrimSpace(text) != "" {
					return errors.New("--text and --text-file are mutually exclusive")
				}
				data, err := os.ReadFile(textFile)
				if err != nil {
					return fmt.Errorf("read extracted text: %w", err)
				}
				extracted = string(data)
			}

			info := &license.Info{
				LicenseID:       licenseID,
				Name:            licenseName,
				ExtractedText:   extracted,
				CrossReferences: crossRefs,
				FileChecksum:    strings.TrimSpace(fileChecksum),
			}
			if cmd.Flags().Changed("comment") {
				info.Comment = license.Comment(comment)
			}

			return ctx.withStore(func(_ *config.Config, store *docstore.Store) error {
				doc, err := store.GetDocument(cmd.Context(), documentID)
				if err != nil {
					return err
				}
				if doc == nil {
					return fmt.Errorf("document %d not found", documentID)
				}
				catalogID, err := store.InsertLicensing(cmd.Context(), documentID, info, docstore.LicensingOptions{
					OSIApproved:    osiApproved,
					StandardHeader: standardHeader,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored license #%d for file %s\n", catalogID, info.FileChecksum)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&documentID, "document", 0, "Document id the statement belongs to")
	cmd.Flags().StringVar(&fileChecksum, "file-checksum", "", "SHA-1 of the scanned file the license was found in")
	cmd.Flags().StringVar(&licenseID, "license-id", "", "License identifier (for example LicenseRef-1)")
	cmd.Flags().StringVar(&licenseName, "name", "", "License name")
	cmd.Flags().StringVar(&text, "text", "", "Extracted license text")
	cmd.Flags().StringVar(&textFile, "text-file", "", "Read the extracted license text from a file")
	cmd.Flags().StringArrayVar(&crossRefs, "ref", nil, "License cross reference URL (repeatable)")
	cmd.Flags().StringVar(&comment, "comment", "", "License comment")
	cmd.Flags().BoolVar(&osiApproved, "osi-approved", false, "Mark the license OSI approved")
	cmd.Flags().StringVar(&standardHeader, "standard-header", "", "Standard license header text")
	return cmd
}

func newLicensesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <association-id>",
		Short: "Show one extracted licensing statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "association")
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, store *docstore.Store) error {
				info, err := store.FindLicensing(cmd.Context(), id)
				if err != nil {
					return err
				}
				if info == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "No licensing found for association %d\n", id)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), info.TagValue())
				return nil
			})
		},
	}
}

func newLicensesListCommand(ctx *commandContext) *cobra.Command {
	var documentID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List licensing statements for a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if documentID <= 0 {
				return errors.New("--document is required")
			}
			return ctx.withStore(func(_ *config.Config, store *docstore.Store) error {
				entries, err := store.ListLicensings(cmd.Context(), documentID)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No licensing statements recorded")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						strconv.FormatInt(entry.AssociationID, 10),
						entry.LicenseID,
						entry.LicenseName,
						entry.FileName,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Association", "License", "Name", "File"}, rows, 0))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&documentID, "document", 0, "Document id to list")
	return cmd
}
