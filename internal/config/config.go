// Package config provides environment-driven configuration for the
// chartlist commands and server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2"
)

// Default values applied when the corresponding variable is unset.
const (
	DefaultPort           = 8080
	DefaultChartBaseURL   = "https://www.topalbumcharts.com"
	DefaultSessionFile    = ".chartlist-session.json"
	DefaultTracksPerAlbum = 3
	DefaultConcurrency    = 4
)

// Config is the process configuration, populated from the environment
// (a .env file is loaded by main before this runs).
type Config struct {
	Port         int    `validate:"min=1,max=65535"`
	DatabaseURL  string `validate:"required"`
	ChartBaseURL string `validate:"required,url"`

	// ProxyAPIKey enables the rendering-proxy fallback tier. Empty means
	// the tier short-circuits to a skipped outcome.
	ProxyAPIKey string

	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURL  string `validate:"omitempty,url"`

	SessionFile    string `validate:"required"`
	TracksPerAlbum int    `validate:"min=1,max=10"`
	Concurrency    int    `validate:"min=1,max=16"`
	Verbose        bool
}

// FromEnv builds a Config from environment variables, applying defaults
// and validating the result.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                envInt("PORT", DefaultPort),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ChartBaseURL:        envString("CHART_BASE_URL", DefaultChartBaseURL),
		ProxyAPIKey:         os.Getenv("SCRAPING_PROXY_API_KEY"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyRedirectURL:  os.Getenv("SPOTIFY_REDIRECT_URL"),
		SessionFile:         envString("SESSION_FILE", DefaultSessionFile),
		TracksPerAlbum:      envInt("TRACKS_PER_ALBUM", DefaultTracksPerAlbum),
		Concurrency:         envInt("ALBUM_CONCURRENCY", DefaultConcurrency),
		Verbose:             os.Getenv("VERBOSE") == "true" || os.Getenv("VERBOSE") == "1",
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration's value ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// OAuth returns the oauth2 config for the destination catalog. Only the
// token refresh side is used here; the login flow lives elsewhere.
func (c *Config) OAuth() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.SpotifyClientID,
		ClientSecret: c.SpotifyClientSecret,
		RedirectURL:  c.SpotifyRedirectURL,
		Scopes: []string{
			"playlist-modify-private",
			"playlist-modify-public",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.spotify.com/authorize",
			TokenURL: "https://accounts.spotify.com/api/token",
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
