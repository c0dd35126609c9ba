// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/feed"
)

func newIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "id <title> <audio_link>",
		Short: "Print the story ID derived from a title and audio link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), catalog.DeriveID(args[0], args[1]))
			return nil
		},
	}
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog document and report incomplete records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.config()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(cfg.CatalogPath)
			if err != nil {
				return fmt.Errorf("read catalog: %w", err)
			}

			stories, warnings, err := catalog.Decode(data, catalog.FormatFromPath(cfg.CatalogPath))
			if err != nil {
				return err
			}

			duplicates := duplicateIDs(stories)
			out := cmd.OutOrStdout()

			if len(warnings) > 0 {
				rows := make([][]string, 0, len(warnings))
				for _, record := range warnings {
					rows = append(rows, []string{strconv.Itoa(record.Index), record.Title, record.Err.Error()})
				}
				fmt.Fprintln(out, renderTable([]string{"Index", "Title", "Problem"}, rows, []columnAlignment{alignRight}))
			}
			for id, titles := range duplicates {
				fmt.Fprintf(out, "ID %d is shared by: %s\n", id, strings.Join(titles, " | "))
			}

			fmt.Fprintf(out, "%d stories loaded, %d incomplete\n", len(stories), len(warnings))
			if len(warnings) > 0 || len(duplicates) > 0 {
				return fmt.Errorf("catalog %s has problems", cfg.CatalogPath)
			}
			fmt.Fprintln(out, "Catalog valid")
			return nil
		},
	}
}

func duplicateIDs(stories []catalog.Story) map[int64][]string {
	titles := make(map[int64][]string, len(stories))
	for _, story := range stories {
		titles[story.ID] = append(titles[story.ID], story.Title)
	}
	for id, shared := range titles {
		if len(shared) < 2 {
			delete(titles, id)
		}
	}
	return titles
}

func newFeedCommand(ctx *commandContext) *cobra.Command {
	var siteURL string

	cmd := &cobra.Command{
		Use:       "feed <rss|sitemap|robots>",
		Short:     "Render a crawler document to stdout",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"rss", "sitemap", "robots"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.config()
			if err != nil {
				return err
			}
			if siteURL == "" {
				siteURL = cfg.SiteURL
			}

			store, err := ctx.store()
			if err != nil {
				return err
			}

			site := feed.NewSite(siteURL, cfg.SiteTitle, cfg.SiteDescription)
			stories := store.All(cmd.Context())
			now := time.Now()

			var document any
			switch args[0] {
			case "robots":
				_, err := fmt.Fprint(cmd.OutOrStdout(), feed.BuildRobots(site))
				return err
			case "sitemap":
				document = feed.BuildSitemap(site, stories, now)
			default:
				document = feed.BuildRSS(site, stories, now)
			}

			body, err := xml.MarshalIndent(document, "", "  ")
			if err != nil {
				return fmt.Errorf("encode %s: %w", args[0], err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", xml.Header, body)
			return err
		},
	}

	cmd.Flags().StringVar(&siteURL, "site-url", "", "Public site URL (overrides SITE_URL)")

	return cmd
}
