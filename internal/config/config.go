// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/blogoto/blogoto/internal/core/domain"
)

const (
	// DefaultListenAddr is the address the HTTP server binds to.
	DefaultListenAddr = ":8080"

	// DefaultRenewInterval is how often the Drive watch channel is
	// re-established. Drive channels expire after at most a week, a
	// daily renewal keeps well inside that.
	DefaultRenewInterval = 24 * time.Hour
)

// Config holds everything the service needs to run.
type Config struct {
	// Google OAuth client registered in the Cloud console.
	ClientID     string
	ClientSecret string

	// RedirectURI is the externally reachable OAuth callback URL,
	// e.g. https://blog.example.com/oauth2callback.
	RedirectURI string

	// FolderID is the Drive folder whose documents become posts.
	FolderID string

	// ListenAddr is the HTTP bind address.
	ListenAddr string

	// DataDir holds the SQLite database. Empty means the default
	// under the user's home directory.
	DataDir string

	// RenewInterval is the period of the watch renewal loop.
	RenewInterval time.Duration
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		ClientID:      os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret:  os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURI:   os.Getenv("GOOGLE_REDIRECT_URI"),
		FolderID:      os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),
		ListenAddr:    os.Getenv("BLOG_LISTEN_ADDR"),
		DataDir:       os.Getenv("BLOG_DATA_DIR"),
		RenewInterval: DefaultRenewInterval,
	}

	if raw := os.Getenv("BLOG_RENEW_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: BLOG_RENEW_INTERVAL: %v", domain.ErrConfig, err)
		}
		cfg.RenewInterval = interval
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and applies defaults.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"GOOGLE_CLIENT_ID", c.ClientID},
		{"GOOGLE_CLIENT_SECRET", c.ClientSecret},
		{"GOOGLE_REDIRECT_URI", c.RedirectURI},
		{"GOOGLE_DRIVE_FOLDER_ID", c.FolderID},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrConfig, field.name)
		}
	}

	if _, err := url.ParseRequestURI(c.RedirectURI); err != nil {
		return fmt.Errorf("%w: GOOGLE_REDIRECT_URI: %v", domain.ErrConfig, err)
	}

	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.RenewInterval <= 0 {
		c.RenewInterval = DefaultRenewInterval
	}
	return nil
}

// WebhookAddress derives the public webhook URL from the OAuth redirect
// URI, so only one external address has to be configured.
func (c *Config) WebhookAddress() string {
	u, err := url.Parse(c.RedirectURI)
	if err != nil {
		return ""
	}
	u.Path = "/webhook"
	u.RawQuery = ""
	return u.String()
}

// BaseURL returns the external address without a path.
func (c *Config) BaseURL() string {
	u, err := url.Parse(c.RedirectURI)
	if err != nil {
		return ""
	}
	u.Path = ""
	u.RawQuery = ""
	return strings.TrimSuffix(u.String(), "/")
}
