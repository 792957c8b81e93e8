package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/syllascan/pkg/formatting"
)

const (
	EnvExtractionMaxFiles    = "SYLLASCAN_EXTRACTION_MAX_FILES"
	EnvExtractionMaxFileSize = "SYLLASCAN_EXTRACTION_MAX_FILE_SIZE"
	EnvExtractionFreeLimit   = "SYLLASCAN_EXTRACTION_FREE_LIMIT"
	EnvExtractionRequireAuth = "SYLLASCAN_EXTRACTION_REQUIRE_AUTH"
)

// ExtractionConfig bounds uploads and the free usage allowance.
type ExtractionConfig struct {
	MaxFiles    int    `toml:"max_files"`
	MaxFileSize string `toml:"max_file_size"`
	FreeLimit   int    `toml:"free_limit"`
	RequireAuth bool   `toml:"require_auth"`
}

// MaxFileSizeBytes returns MaxFileSize in bytes.
func (c *ExtractionConfig) MaxFileSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxFileSize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ExtractionConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ExtractionConfig) Merge(overlay *ExtractionConfig) {
	if overlay.MaxFiles != 0 {
		c.MaxFiles = overlay.MaxFiles
	}
	if overlay.MaxFileSize != "" {
		c.MaxFileSize = overlay.MaxFileSize
	}
	if overlay.FreeLimit != 0 {
		c.FreeLimit = overlay.FreeLimit
	}
	if overlay.RequireAuth {
		c.RequireAuth = true
	}
}

func (c *ExtractionConfig) loadDefaults() {
	if c.MaxFiles == 0 {
		c.MaxFiles = 10
	}
	if c.MaxFileSize == "" {
		c.MaxFileSize = "10MB"
	}
	if c.FreeLimit == 0 {
		c.FreeLimit = 5
	}
}

func (c *ExtractionConfig) loadEnv() {
	if v := os.Getenv(EnvExtractionMaxFiles); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxFiles = n
		}
	}
	if v := os.Getenv(EnvExtractionMaxFileSize); v != "" {
		c.MaxFileSize = v
	}
	if v := os.Getenv(EnvExtractionFreeLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FreeLimit = n
		}
	}
	if v := os.Getenv(EnvExtractionRequireAuth); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RequireAuth = b
		}
	}
}

func (c *ExtractionConfig) validate() error {
	if c.MaxFiles < 1 {
		return fmt.Errorf("max_files must be positive: %d", c.MaxFiles)
	}
	if c.FreeLimit < 0 {
		return fmt.Errorf("free_limit must not be negative: %d", c.FreeLimit)
	}
	if _, err := formatting.ParseBytes(c.MaxFileSize); err != nil {
		return fmt.Errorf("invalid max_file_size: %w", err)
	}
	return nil
}
