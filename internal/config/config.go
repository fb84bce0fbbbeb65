// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Ticketlog - Ticketlog reports how often a file changed, over which dates, and which issue-tracker tickets drove those changes.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package config resolves ticketlog settings from flags, TICKETLOG_* environment
// variables and an optional .ticketlog.yaml file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bartekus/ticketlog/internal/history"
)

// Default values for optional settings.
const (
	DefaultTimeout          = 30 * time.Second
	DefaultConcurrency      = 1
	DefaultOutput           = "text"
	DefaultColor            = "auto"
	DefaultStoryPointsField = history.DefaultStoryPointsField

	EnvPrefix = "TICKETLOG"
	fileName  = ".ticketlog"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds the validated settings for one run.
type Config struct {
	GitLab      GitLabConfig `mapstructure:"gitlab" yaml:"gitlab"`
	Jira        JiraConfig   `mapstructure:"jira" yaml:"jira"`
	HTTP        HTTPConfig   `mapstructure:"http" yaml:"http"`
	Concurrency int          `mapstructure:"concurrency" yaml:"concurrency"`
	Output      string       `mapstructure:"output" yaml:"output"`
	Color       string       `mapstructure:"color" yaml:"color"`
}

// GitLabConfig addresses the source-control API.
type GitLabConfig struct {
	URL   string `mapstructure:"url" yaml:"url"`
	Token string `mapstructure:"token" yaml:"token"`
}

// JiraConfig addresses the issue tracker.
type JiraConfig struct {
	URL              string `mapstructure:"url" yaml:"url"`
	User             string `mapstructure:"user" yaml:"user"`
	Password         string `mapstructure:"password" yaml:"password"`
	StoryPointsField string `mapstructure:"story-points-field" yaml:"story-points-field"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// MarshalYAML renders the timeout as a duration string.
func (h HTTPConfig) MarshalYAML() (any, error) {
	return map[string]string{"timeout": h.Timeout.String()}, nil
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Every key needs a default so Unmarshal sees values coming from the environment.
	v.SetDefault("gitlab.url", "")
	v.SetDefault("gitlab.token", "")
	v.SetDefault("jira.url", "")
	v.SetDefault("jira.user", "")
	v.SetDefault("jira.password", "")
	v.SetDefault("jira.story-points-field", DefaultStoryPointsField)
	v.SetDefault("http.timeout", DefaultTimeout)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("color", DefaultColor)
	v.SetDefault("config", "")
	return v
}

// BindFlags binds the flags that mirror config keys. Flags absent from fs are ignored.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, name := range []string{"config", "concurrency", "output", "color"} {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(name, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Read merges the config file, environment and flags without validating.
func Read(v *viper.Viper) (*Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	return cfg, nil
}

// Load reads and validates the configuration.
func Load(v *viper.Viper) (*Config, error) {
	cfg, err := Read(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once. All errors wrap ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if err := checkURL(c.GitLab.URL); err != nil {
		invalid("gitlab.url: %v", err)
	}
	if c.GitLab.Token == "" {
		invalid("gitlab.token is required")
	}
	if err := checkURL(c.Jira.URL); err != nil {
		invalid("jira.url: %v", err)
	}
	if c.Jira.StoryPointsField == "" {
		invalid("jira.story-points-field must not be empty")
	}
	if c.HTTP.Timeout <= 0 {
		invalid("http.timeout must be positive (got %s)", c.HTTP.Timeout)
	}
	if c.Concurrency < 1 {
		invalid("concurrency must be at least 1 (got %d)", c.Concurrency)
	}
	switch c.Output {
	case "text", "table":
	default:
		invalid("output must be text or table (got %q)", c.Output)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		invalid("color must be auto, always or never (got %q)", c.Color)
	}

	return errors.Join(errs...)
}

func checkURL(raw string) error {
	if raw == "" {
		return errors.New("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

// Redacted returns a copy with secrets masked, for display.
func (c Config) Redacted() Config {
	if c.GitLab.Token != "" {
		c.GitLab.Token = "****"
	}
	if c.Jira.Password != "" {
		c.Jira.Password = "****"
	}
	return c
}
