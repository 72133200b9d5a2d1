package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"showlink/internal/library"
	"showlink/internal/preflight"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check provider connectivity and database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)

			var dbHealth library.DatabaseHealth
			err = ctx.withStore(func(store *library.Store) error {
				dbHealth, err = store.CheckHealth(cmd.Context())
				return err
			})
			if err != nil {
				dbHealth = library.DatabaseHealth{DBPath: cfg.DatabasePath(), Error: err.Error()}
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"checks":   results,
					"database": dbHealth,
				})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			failed := 0

			for _, line := range renderSectionHeader("Providers", colorize) {
				fmt.Fprintln(out, line)
			}
			if len(results) == 0 {
				fmt.Fprintln(out, statusIndent+"no checks configured")
			}
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failed++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Database", colorize) {
				fmt.Fprintln(out, line)
			}
			dbKind := statusOK
			dbDetail := dbHealth.DBPath
			switch {
			case dbHealth.Error != "":
				dbKind = statusError
				dbDetail = dbHealth.Error
				failed++
			case !dbHealth.IntegrityCheck:
				dbKind = statusError
				dbDetail = "integrity check failed"
				failed++
			case len(dbHealth.MissingTables) > 0:
				dbKind = statusWarn
				dbDetail = "missing tables: " + strings.Join(dbHealth.MissingTables, ", ")
			}
			fmt.Fprintln(out, renderStatusLine("Library DB", dbKind, dbDetail, colorize))

			if failed > 0 {
				return fmt.Errorf("%d health check(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
