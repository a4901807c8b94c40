package main

import (
	"fmt"
	"io"

	"github.com/pinboardhq/pinboard/internal/config"
	"github.com/pinboardhq/pinboard/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var (
		configPath string
		seedAdmin  bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Runs schema migration against the configured MySQL database.

With --seed-admin, also creates an "admin" account (password prompted)
if no user with that name exists. Safe to run multiple times.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.OutOrStdout(), configPath, seedAdmin)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pinboard.yaml", "path to Pinboard config file")
	cmd.Flags().BoolVar(&seedAdmin, "seed-admin", false, "create the admin account if missing")
	return cmd
}

func runMigrate(out io.Writer, configPath string, seedAdmin bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Database.Database, err)
	}

	fmt.Fprintln(out, "Running schema migration...")
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintln(out, "Schema up to date")

	if seedAdmin {
		password, err := promptPassword(out, "Admin password: ")
		if err != nil {
			return err
		}
		user, err := db.SeedAdminUser(gormDB, "admin", "admin@localhost", password)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Admin account ready (id %d)\n", user.ID)
	}
	return nil
}
