package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"showlink/internal/externals"
	"showlink/internal/indexers"
	"showlink/internal/library"
	"showlink/internal/textutil"
)

const titleColumnWidth = 40

func newShowsCommand(ctx *commandContext) *cobra.Command {
	showsCmd := &cobra.Command{
		Use:   "shows",
		Short: "Manage the show library",
	}

	showsCmd.AddCommand(newShowsListCommand(ctx))
	showsCmd.AddCommand(newShowsAddCommand(ctx))
	showsCmd.AddCommand(newShowsRemoveCommand(ctx))
	showsCmd.AddCommand(newShowsFindCommand(ctx))

	return showsCmd
}

func newShowsListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shows in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				shows, err := store.ListShows(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, shows)
				}

				out := cmd.OutOrStdout()
				if len(shows) == 0 {
					fmt.Fprintln(out, "Library is empty.")
					return nil
				}

				rows := make([][]string, 0, len(shows))
				for _, show := range shows {
					rows = append(rows, []string{
						strconv.FormatInt(show.ID, 10),
						show.Indexer.Slug(),
						show.SeriesID,
						textutil.Truncate(textutil.DisplayTitle(show.Title), titleColumnWidth),
						strings.Join(show.Externals.Keys(), ", "),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"ID", "Indexer", "Series ID", "Title", "External Keys"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newShowsAddCommand(ctx *commandContext) *cobra.Command {
	var title string
	var force bool

	cmd := &cobra.Command{
		Use:   "add <indexer> <series-id> [key=value...]",
		Short: "Add a show to the library",
		Long: "Add resolves the show's external IDs, refuses duplicates already in the\n" +
			"library under any indexer, then stores the show together with its ID\n" +
			"mappings. Use --force to skip the duplicate check.",
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

			resolver, err := ctx.newResolver()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *library.Store) error {
				runCtx := ctx.requestContext(cmd, origin, seriesID)

				// The duplicate check already runs the full sweep, so its
				// aggregated set is reused instead of probing twice.
				var merged indexers.Externals
				if force {
					withNative := seed.Clone()
					withNative[origin.MappedTo()] = seriesID
					merged, err = resolver.Resolve(runCtx, origin, withNative)
					if err != nil {
						return err
					}
				} else {
					checker, err := externals.NewChecker(resolver, store)
					if err != nil {
						return err
					}
					merged, err = checker.CheckExisting(runCtx, origin, seriesID, seed)
					if err != nil {
						return err
					}
				}

				show, err := store.AddShow(runCtx, &library.Show{
					Indexer:   origin,
					SeriesID:  seriesID,
					Title:     title,
					Externals: merged,
				})
				if err != nil {
					return err
				}
				if err := store.SaveExternals(runCtx, origin, seriesID, merged); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Added show %d (%s %s) with %d external IDs.\n",
					show.ID, origin.Slug(), seriesID, len(merged))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Show title")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the duplicate check")
	return cmd
}

func newShowsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <show-id>",
		Short: "Remove a show from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid show id %q", args[0])
			}
			return ctx.withStore(func(store *library.Store) error {
				removed, err := store.RemoveShow(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("show %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed show %d.\n", id)
				return nil
			})
		},
	}
}

func newShowsFindCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "find <indexer> <series-id>",
		Short: "Find the library show linked to an indexer ID through saved mappings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := parseIndexerArg(args[0])
			if err != nil {
				return err
			}
			seriesID := args[1]

			return ctx.withChecker(ctx.requestContext(cmd, ix, seriesID), func(runCtx context.Context, checker *externals.Checker) error {
				show, err := checker.ShowInLibrary(runCtx, ix, seriesID)
				if err != nil {
					return err
				}
				if show == nil {
					if jsonOutput {
						return writeJSON(cmd, map[string]any{"found": false})
					}
					return errors.New("no library show linked to that ID")
				}
				if jsonOutput {
					return writeJSON(cmd, show)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Show %d: %s (%s %s)\n",
					show.ID, textutil.DisplayTitle(show.Title), show.Indexer.Slug(), show.SeriesID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
