package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"showlink/internal/indexers"
	"showlink/internal/library"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var save bool

	cmd := &cobra.Command{
		Use:   "resolve <indexer> <series-id> [key=value...]",
		Short: "Aggregate external IDs for a show across all indexers",
		Long: "Resolve probes every other configured indexer (and Trakt, when enabled)\n" +
			"for external IDs of the given show. Extra key=value arguments seed the\n" +
			"lookup with IDs you already know, for example imdb_id=tt0903747.",
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
			if seed == nil {
				seed = indexers.Externals{}
			}
			seed[origin.MappedTo()] = seriesID

			resolver, err := ctx.newResolver()
			if err != nil {
				return err
			}

			runCtx := ctx.requestContext(cmd, origin, seriesID)
			merged, err := resolver.Resolve(runCtx, origin, seed)
			if err != nil {
				return err
			}

			if save {
				err := ctx.withStore(func(store *library.Store) error {
					return store.SaveExternals(runCtx, origin, seriesID, merged)
				})
				if err != nil {
					return fmt.Errorf("save mappings: %w", err)
				}
			}

			if jsonOutput {
				return writeJSON(cmd, merged)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(merged))
			for _, key := range merged.Keys() {
				rows = append(rows, []string{key, merged.Get(key)})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"External Key", "ID"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			if save {
				fmt.Fprintln(out, "Mappings saved.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the resolved mappings to the database")
	return cmd
}
