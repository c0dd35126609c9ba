// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/kahani/internal/catalog"
	"github.com/taibuivan/kahani/internal/platform/config"
)

// commandContext carries the persistent flags and lazily loaded configuration.
type commandContext struct {
	catalogPath string
	asJSON      bool

	cfg    *config.Config
	logger *slog.Logger
}

func (ctx *commandContext) config() (*config.Config, error) {
	if ctx.cfg != nil {
		return ctx.cfg, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if ctx.catalogPath != "" {
		cfg.CatalogPath = ctx.catalogPath
	}

	ctx.cfg = cfg
	return cfg, nil
}

func (ctx *commandContext) store() (*catalog.Store, error) {
	cfg, err := ctx.config()
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(catalog.NewFileSource(cfg.CatalogPath, ctx.logger), ctx.logger), nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}

	rootCmd := &cobra.Command{
		Use:           "kahanictl",
		Short:         "Inspect and operate the Kahani story catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.catalogPath, "catalog", "", "Catalog document path (overrides CATALOG_PATH)")
	rootCmd.PersistentFlags().BoolVar(&ctx.asJSON, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(newStoriesCommand(ctx))
	rootCmd.AddCommand(newLibraryCommand(ctx))
	rootCmd.AddCommand(newIDCommand())
	rootCmd.AddCommand(newValidateCommand(ctx))
	rootCmd.AddCommand(newFeedCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newTokenCommand(ctx))

	return rootCmd
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
