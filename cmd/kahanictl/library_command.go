// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/kahani/internal/library"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	var (
		text     string
		duration int
		keyword  string
	)

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Filter the catalog the way the library page does",
		RunE: func(cmd *cobra.Command, args []string) error {
			facets := library.Facets{Text: text}
			if cmd.Flags().Changed("duration") {
				if duration < 1 {
					return fmt.Errorf("duration must be at least 1")
				}
				facets.Duration = &duration
			}
			if keyword != "" {
				facets.Keyword = &keyword
			}

			store, err := ctx.store()
			if err != nil {
				return err
			}

			stories := store.All(cmd.Context())
			browser := library.NewBrowser(stories)
			browser.SetFacets(facets)

			if ctx.asJSON {
				return writeJSON(cmd, map[string]any{
					"data":         browser.Visible(),
					"result_count": browser.ResultCount(),
					"total":        len(stories),
					"keywords":     browser.Keywords(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, storyTable(browser.Visible()))
			fmt.Fprintf(out, "%d of %d stories\n", browser.ResultCount(), len(stories))
			fmt.Fprintf(out, "Keywords: %s\n", strings.Join(browser.Keywords(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "query", "q", "", "Substring of title or description")
	cmd.Flags().IntVar(&duration, "duration", 0, "Minutes marker in the title, e.g. 10")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Exact keyword")

	return cmd
}
