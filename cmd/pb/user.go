package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pinboardhq/pinboard/internal/auth"
	"github.com/pinboardhq/pinboard/internal/config"
	"github.com/pinboardhq/pinboard/internal/db"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage Pinboard accounts",
	}
	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserListCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "create <username> <email>",
		Short: "Create an account (password prompted)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(cmd.OutOrStdout(), configPath, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pinboard.yaml", "path to Pinboard config file")
	return cmd
}

func runUserCreate(out io.Writer, configPath, username, email string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Database.Database, err)
	}

	password, err := promptPassword(out, "Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword(out, "Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	issuer := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTLHours, cfg.Auth.ResetTTLMins)
	user, _, err := auth.Register(gormDB, issuer, username, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

func newUserListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserList(cmd.OutOrStdout(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pinboard.yaml", "path to Pinboard config file")
	return cmd
}

func runUserList(out io.Writer, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Database.Database, err)
	}

	users, err := auth.ListUsers(gormDB)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(out, "No users")
		return nil
	}
	fmt.Fprintf(out, "%-5s %-20s %s\n", "ID", "USERNAME", "EMAIL")
	for _, u := range users {
		fmt.Fprintf(out, "%-5d %-20s %s\n", u.ID, u.Username, u.Email)
	}
	return nil
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise (piped input, tests).
func promptPassword(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
