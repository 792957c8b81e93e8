package auth

import (
	"fmt"
	"net/url"
	"os"
)

// GoogleCertsURL publishes the signing keys for Google-issued ID tokens.
const GoogleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

// Config holds OIDC issuer settings. An empty Issuer disables identity.
type Config struct {
	Issuer   string `toml:"issuer"`
	Audience string `toml:"audience"`
	JWKSURL  string `toml:"jwks_url"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Issuer   string
	Audience string
	JWKSURL  string
}

// Enabled reports whether identity verification is configured.
func (c *Config) Enabled() bool {
	return c.Issuer != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
	if overlay.JWKSURL != "" {
		c.JWKSURL = overlay.JWKSURL
	}
}

func (c *Config) loadDefaults() {
	if c.Enabled() && c.JWKSURL == "" {
		c.JWKSURL = GoogleCertsURL
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.Issuer); v != "" {
		c.Issuer = v
	}
	if v := getenv(env.Audience); v != "" {
		c.Audience = v
	}
	if v := getenv(env.JWKSURL); v != "" {
		c.JWKSURL = v
	}
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

func (c *Config) validate() error {
	if !c.Enabled() {
		return nil
	}
	if _, err := url.ParseRequestURI(c.Issuer); err != nil {
		return fmt.Errorf("invalid issuer: %w", err)
	}
	if _, err := url.ParseRequestURI(c.JWKSURL); err != nil {
		return fmt.Errorf("invalid jwks_url: %w", err)
	}
	return nil
}
