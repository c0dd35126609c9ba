// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/platform/constants"
	"github.com/taibuivan/kahani/pkg/pagination"
)

func newStoriesCommand(ctx *commandContext) *cobra.Command {
	storiesCmd := &cobra.Command{
		Use:   "stories",
		Short: "List, show and relate catalog stories",
	}

	storiesCmd.AddCommand(newStoriesListCommand(ctx))
	storiesCmd.AddCommand(newStoriesShowCommand(ctx))
	storiesCmd.AddCommand(newStoriesRelatedCommand(ctx))

	return storiesCmd
}

func newStoriesListCommand(ctx *commandContext) *cobra.Command {
	var query string
	var offset, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stories, optionally searched and paginated",
		RunE: func(cmd *cobra.Command, args []string) error {
			if offset < 0 || limit < 0 {
				return fmt.Errorf("offset and limit must not be negative")
			}

			store, err := ctx.store()
			if err != nil {
				return err
			}

			matches := store.Search(cmd.Context(), query)
			params := pagination.Params{Offset: offset}
			if cmd.Flags().Changed("limit") {
				params.Limit = &limit
			}
			page := pagination.Apply(matches, params)

			if ctx.asJSON {
				return writeJSON(cmd, map[string]any{
					"data": page,
					"meta": pagination.NewMeta(params, len(matches), query),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), storyTable(page))
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d stories\n", len(page), len(matches))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search title, description and keywords")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many matches")
	cmd.Flags().IntVar(&limit, "limit", 0, "Return at most this many matches")

	return cmd
}

func newStoriesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.store()
			if err != nil {
				return err
			}

			story, err := lookupStory(cmd, store, args[0])
			if err != nil {
				return err
			}

			if ctx.asJSON {
				return writeJSON(cmd, story)
			}

			rows := [][]string{
				{"ID", strconv.FormatInt(story.ID, 10)},
				{"Title", story.Title},
				{"Audio", story.AudioLink},
				{"Thumbnail", story.Thumbnail},
				{"Description", story.Description},
				{"Keywords", strings.Join(story.Keywords, ", ")},
				{"Processed", story.ProcessedAt},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}

func newStoriesRelatedCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "related <id>",
		Short: "List stories related to a story by shared keywords",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 || limit > constants.MaxRelatedLimit {
				return fmt.Errorf("limit must be between 0 and %d", constants.MaxRelatedLimit)
			}

			store, err := ctx.store()
			if err != nil {
				return err
			}

			story, err := lookupStory(cmd, store, args[0])
			if err != nil {
				return err
			}

			related := store.Related(cmd.Context(), story, limit)
			if ctx.asJSON {
				return writeJSON(cmd, related)
			}

			fmt.Fprintln(cmd.OutOrStdout(), storyTable(related))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DefaultRelatedLimit, "Number of related stories")

	return cmd
}

func lookupStory(cmd *cobra.Command, store *catalog.Store, rawID string) (catalog.Story, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return catalog.Story{}, fmt.Errorf("invalid story id %q", rawID)
	}
	return store.ByID(cmd.Context(), id)
}
