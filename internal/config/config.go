// Package config provides YAML-based configuration loading for Pinboard.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Pinboard configuration, loaded from config.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Notify   NotifyConfig   `yaml:"notify"`
	Sessions SessionsConfig `yaml:"sessions"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds connection settings for the MySQL server.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	Secret        string `yaml:"secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
	ResetTTLMins  int    `yaml:"reset_ttl_minutes"`
}

// UploadsConfig holds attachment storage settings.
type UploadsConfig struct {
	Dir         string   `yaml:"dir"`
	MaxSizeMB   int      `yaml:"max_size_mb"`
	AllowedExts []string `yaml:"allowed_exts"`
}

// NotifyConfig selects optional chat destinations for activity events.
type NotifyConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
}

// SlackConfig holds Slack posting credentials.
type SlackConfig struct {
	Token   string `yaml:"token"`
	Channel string `yaml:"channel"`
}

// DiscordConfig holds Discord posting credentials.
type DiscordConfig struct {
	Token   string `yaml:"token"`
	Channel string `yaml:"channel"`
}

// SessionsConfig controls the inactive-session sweeper.
type SessionsConfig struct {
	SweepCron string `yaml:"sweep_cron"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 4000
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Database.Database == "" {
		c.Database.Database = "pinboard"
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 2
	}
	if c.Auth.ResetTTLMins == 0 {
		c.Auth.ResetTTLMins = 15
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.Uploads.MaxSizeMB == 0 {
		c.Uploads.MaxSizeMB = 10
	}
	if len(c.Uploads.AllowedExts) == 0 {
		c.Uploads.AllowedExts = []string{
			".jpeg", ".jpg", ".png", ".gif", ".pdf", ".doc", ".docx",
			".xls", ".xlsx", ".txt", ".zip", ".rar",
		}
	}
	if c.Sessions.SweepCron == "" {
		c.Sessions.SweepCron = "*/30 * * * *"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Auth.Secret == "" {
		errs = append(errs, "auth.secret is required")
	}
	if c.Notify.Slack.Token != "" && c.Notify.Slack.Channel == "" {
		errs = append(errs, "notify.slack.channel is required when a token is set")
	}
	if c.Notify.Discord.Token != "" && c.Notify.Discord.Channel == "" {
		errs = append(errs, "notify.discord.channel is required when a token is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
