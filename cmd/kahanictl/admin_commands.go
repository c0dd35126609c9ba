// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/kahani/internal/platform/migration"
	"github.com/taibuivan/kahani/internal/platform/sec"
	"github.com/taibuivan/kahani/internal/platform/validate"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back engagement schema migrations",
	}

	databaseDSN := func() (string, string, error) {
		cfg, err := ctx.config()
		if err != nil {
			return "", "", err
		}
		if cfg.DatabaseURL == "" {
			return "", "", errNoDatabase
		}
		return cfg.DatabaseURL, cfg.MigrationPath, nil
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, path, err := databaseDSN()
			if err != nil {
				return err
			}
			if err := migration.Up(dsn, path, ctx.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("steps must be at least 1")
			}
			dsn, path, err := databaseDSN()
			if err != nil {
				return err
			}
			if err := migration.Down(dsn, path, steps, ctx.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, path, err := databaseDSN()
			if err != nil {
				return err
			}
			version, dirty, err := migration.Version(dsn, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
			return nil
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}

func newTokenCommand(ctx *commandContext) *cobra.Command {
	var (
		userID string
		email  string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an identity token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (&validate.Validator{}).Required("user", userID).Err(); err != nil {
				return err
			}

			cfg, err := ctx.config()
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				return errors.New("token issuing is disabled in production")
			}

			tokens, err := sec.NewTokenService(cfg.IdentityJWTSecret, cfg.IdentityJWTIssuer, cfg.IdentityJWTAudience)
			if err != nil {
				return err
			}

			token, err := tokens.IssueToken(userID, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Subject (user ID) of the token")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
