package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	EnvGoogleClientID     = "SYLLASCAN_GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "SYLLASCAN_GOOGLE_CLIENT_SECRET"
	EnvGoogleRedirectURL  = "SYLLASCAN_GOOGLE_REDIRECT_URL"
	EnvGoogleCalendarID   = "SYLLASCAN_GOOGLE_CALENDAR_ID"
	EnvGoogleEndpoint     = "SYLLASCAN_GOOGLE_CALENDAR_ENDPOINT"
	EnvGoogleTimeZone     = "SYLLASCAN_GOOGLE_TIME_ZONE"
)

// GoogleConfig holds the OAuth client used to refresh calendar tokens and
// the calendar events are written to. Without a client id and secret,
// expired tokens cannot be refreshed.
type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
	CalendarID   string `toml:"calendar_id"`
	Endpoint     string `toml:"calendar_endpoint"`
	TimeZone     string `toml:"time_zone"`
}

// CanRefresh reports whether OAuth client credentials are configured.
func (c *GoogleConfig) CanRefresh() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *GoogleConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *GoogleConfig) Merge(overlay *GoogleConfig) {
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.ClientSecret != "" {
		c.ClientSecret = overlay.ClientSecret
	}
	if overlay.RedirectURL != "" {
		c.RedirectURL = overlay.RedirectURL
	}
	if overlay.CalendarID != "" {
		c.CalendarID = overlay.CalendarID
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.TimeZone != "" {
		c.TimeZone = overlay.TimeZone
	}
}

func (c *GoogleConfig) loadDefaults() {
	if c.CalendarID == "" {
		c.CalendarID = "primary"
	}
	if c.TimeZone == "" {
		c.TimeZone = "UTC"
	}
}

func (c *GoogleConfig) loadEnv() {
	if v := os.Getenv(EnvGoogleClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvGoogleClientSecret); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv(EnvGoogleRedirectURL); v != "" {
		c.RedirectURL = v
	}
	if v := os.Getenv(EnvGoogleCalendarID); v != "" {
		c.CalendarID = v
	}
	if v := os.Getenv(EnvGoogleEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvGoogleTimeZone); v != "" {
		c.TimeZone = v
	}
}

func (c *GoogleConfig) validate() error {
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid time_zone: %w", err)
	}
	if c.Endpoint != "" {
		if _, err := url.ParseRequestURI(c.Endpoint); err != nil {
			return fmt.Errorf("invalid calendar_endpoint: %w", err)
		}
	}
	return nil
}
