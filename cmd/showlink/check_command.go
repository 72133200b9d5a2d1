package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"showlink/internal/externals"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check <indexer> <series-id> [key=value...]",
		Short: "Check whether a show already exists in the library",
		Long: "Check aggregates the show's external IDs and compares them against every\n" +
			"library show. It fails with an explanation when the show was already added,\n" +
			"possibly through a different indexer.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, err := parseIndexerArg(args[0])
			if err != nil {
				return err
			}
			seriesID := args[1]
			seed, err := parseExternalPairs(args[2:])
			if err != nil {
				return err
			}

			return ctx.withChecker(ctx.requestContext(cmd, origin, seriesID), func(runCtx context.Context, checker *externals.Checker) error {
				_, err := checker.CheckExisting(runCtx, origin, seriesID, seed)

				var conflict *externals.ConflictError
				switch {
				case err == nil:
					if jsonOutput {
						return writeJSON(cmd, map[string]any{"exists": false})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s is not in the library.\n", origin.Name(), seriesID)
					return nil
				case errors.As(err, &conflict):
					if jsonOutput {
						return writeJSON(cmd, map[string]any{
							"exists":      true,
							"show_id":     conflict.Existing.ID,
							"title":       conflict.Existing.Title,
							"indexer":     conflict.Existing.Indexer.Slug(),
							"matched_key": conflict.Key,
							"matched_id":  conflict.Value,
						})
					}
					return err
				default:
					return err
				}
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
