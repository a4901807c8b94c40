package main

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/pinboardhq/pinboard/internal/config"
	"github.com/pinboardhq/pinboard/internal/db"
	"github.com/pinboardhq/pinboard/internal/notify"
	"github.com/pinboardhq/pinboard/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Pinboard API server",
		Long:  "Connects to MySQL, runs schema migration, and serves the REST API until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pinboard.yaml", "path to Pinboard config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Database.Database, err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier := buildNotifier(cfg)
	defer notifier.Close()

	return server.Start(ctx, server.StartOpts{
		DB:       gormDB,
		Config:   cfg,
		Notifier: notifier,
		Out:      cmd.OutOrStdout(),
	})
}

// buildNotifier assembles a fanout over the chat destinations that have
// credentials configured. Destinations that fail to connect are skipped.
func buildNotifier(cfg *config.Config) *notify.Fanout {
	var targets []notify.Notifier
	if cfg.Notify.Slack.Token != "" {
		targets = append(targets, notify.NewSlack(cfg.Notify.Slack.Token, cfg.Notify.Slack.Channel))
	}
	if cfg.Notify.Discord.Token != "" {
		d, err := notify.NewDiscord(cfg.Notify.Discord.Token, cfg.Notify.Discord.Channel)
		if err != nil {
			log.Printf("pb: discord notifier: %v", err)
		} else {
			targets = append(targets, d)
		}
	}
	return notify.NewFanout(targets...)
}
