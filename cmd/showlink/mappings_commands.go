package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"showlink/internal/library"
)

func newMappingsCommand(ctx *commandContext) *cobra.Command {
	mappingsCmd := &cobra.Command{
		Use:   "mappings",
		Short: "Inspect and edit persisted ID mappings",
	}

	mappingsCmd.AddCommand(newMappingsListCommand(ctx))
	mappingsCmd.AddCommand(newMappingsSaveCommand(ctx))

	return mappingsCmd
}

func newMappingsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list <indexer> <series-id>",
		Short: "List saved ID mappings for a show",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := parseIndexerArg(args[0])
			if err != nil {
				return err
			}
			seriesID := args[1]

			return ctx.withStore(func(store *library.Store) error {
				externals, err := store.LoadExternals(cmd.Context(), ix, seriesID)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, externals)
				}

				out := cmd.OutOrStdout()
				if len(externals) == 0 {
					fmt.Fprintf(out, "No mappings for %s %s.\n", ix.Slug(), seriesID)
					return nil
				}

				rows := make([][]string, 0, len(externals))
				for _, key := range externals.Keys() {
					rows = append(rows, []string{key, externals.Get(key)})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"External Key", "ID"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newMappingsSaveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save <indexer> <series-id> <key=value>...",
		Short: "Persist ID mappings for a show",
		Long: "Save records mappings from (indexer, series-id) to the given external IDs.\n" +
			"Keys without a backing indexer, such as trakt_id, are skipped. Saving the\n" +
			"same mapping twice is a no-op.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := parseIndexerArg(args[0])
			if err != nil {
				return err
			}
			seriesID := args[1]
			externals, err := parseExternalPairs(args[2:])
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *library.Store) error {
				if err := store.SaveExternals(cmd.Context(), ix, seriesID, externals); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved mappings for %s %s.\n", ix.Slug(), seriesID)
				return nil
			})
		},
	}
}
