package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"spdxgen/internal/config"
	"spdxgen/internal/deps"
	"spdxgen/internal/docstore"
	"spdxgen/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show environment, dependency, and store health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *docstore.Store) error {
				out := cmd.OutOrStdout()
				printer := newStatusPrinter(out)

				printer.section("Environment")
				for _, result := range preflight.RunAll(cmd.Context(), cfg) {
					sev := sevError
					if result.Passed {
						sev = sevOK
					}
					printer.line(result.Name, sev, result.Detail)
				}

				printer.blank()
				printer.section("Dependencies")
				for _, status := range deps.CheckBinaries(deps.Defaults(cfg)) {
					sev := sevOK
					message := status.Command
					if !status.Available {
						sev = sevError
						if status.Optional {
							sev = sevWarn
						}
						message = status.Detail
					} else if version := preflight.ProbeVersion(cmd.Context(), status.Command); version != "" {
						message = fmt.Sprintf("%s (%s)", status.Command, version)
					}
					printer.line(status.Name, sev, message)
				}

				health, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}
				printer.blank()
				printer.section("Store")
				rows := [][]string{
					{"Documents", strconv.Itoa(health.Documents)},
					{"Packages", strconv.Itoa(health.Packages)},
					{"Files", strconv.Itoa(health.Files)},
					{"Licenses", strconv.Itoa(health.Licenses)},
					{"Licensings", strconv.Itoa(health.Licensings)},
				}
				fmt.Fprintln(out, renderTable([]string{"Rows", "Count"}, rows, 1))
				return nil
			})
		},
	}
}
