// Package config loads the service configuration from an optional TOML
// base file, an environment-specific overlay, and SYLLASCAN_* variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/syllascan/pkg/auth"
	"github.com/JaimeStill/syllascan/pkg/database"
	"github.com/JaimeStill/syllascan/pkg/storage"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSyllascanEnv             = "SYLLASCAN_ENV"
	EnvSyllascanShutdownTimeout = "SYLLASCAN_SHUTDOWN_TIMEOUT"
	EnvSyllascanVersion         = "SYLLASCAN_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "SYLLASCAN_DB_HOST",
	Port:            "SYLLASCAN_DB_PORT",
	Name:            "SYLLASCAN_DB_NAME",
	User:            "SYLLASCAN_DB_USER",
	Password:        "SYLLASCAN_DB_PASSWORD",
	SSLMode:         "SYLLASCAN_DB_SSL_MODE",
	MaxOpenConns:    "SYLLASCAN_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SYLLASCAN_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SYLLASCAN_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SYLLASCAN_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "SYLLASCAN_STORAGE_CONTAINER_NAME",
	ConnectionString: "SYLLASCAN_STORAGE_CONNECTION_STRING",
}

var identityEnv = &auth.Env{
	Issuer:   "SYLLASCAN_IDENTITY_ISSUER",
	Audience: "SYLLASCAN_IDENTITY_AUDIENCE",
	JWKSURL:  "SYLLASCAN_IDENTITY_JWKS_URL",
}

// Config is the root configuration for the SyllaScan service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	API             APIConfig            `toml:"api"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Google          GoogleConfig         `toml:"google"`
	Identity        auth.Config          `toml:"identity"`
	Extraction      ExtractionConfig     `toml:"extraction"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the SYLLASCAN_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSyllascanEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Google.Merge(&overlay.Google)
	c.Identity.Merge(&overlay.Identity)
	c.Extraction.Merge(&overlay.Extraction)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Google.Finalize(); err != nil {
		return fmt.Errorf("google: %w", err)
	}
	if err := c.Identity.Finalize(identityEnv); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := c.Extraction.Finalize(); err != nil {
		return fmt.Errorf("extraction: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSyllascanShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSyllascanVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvSyllascanEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
