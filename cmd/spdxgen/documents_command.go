package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"spdxgen/internal/config"
	"spdxgen/internal/docstore"
)

func newDocumentsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "documents",
		Short: "List stored SPDX documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *docstore.Store) error {
				docs, err := store.ListDocuments(cmd.Context())
				if err != nil {
					return err
				}
				if len(docs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No documents stored")
					return nil
				}
				rows := make([][]string, 0, len(docs))
				for _, doc := range docs {
					rows = append(rows, []string{
						strconv.FormatInt(doc.ID, 10),
						doc.Name,
						formatTime(doc.CreatedAt),
						doc.Namespace,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Created", "Namespace"}, rows, 0))
				return nil
			})
		},
	}
}
