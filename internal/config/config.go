package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"prancheta/internal/core"
)

// Default entry options of the reference operation. Both lists are closed
// sets enforced at the entry boundary; override via env to run for another
// operation.
var (
	defaultBranchOptions = []string{
		"AJU", "CGD", "GOI", "MAC", "PIR", "SC1", "SPE",
		"THE", "UFA", "USB", "ZBSB", "ZRPO", "ZSJC", "ZUBL",
	}
	defaultRegionOptions = []string{
		"NORDESTE", "SUL", "SUDESTE", "CENTRO-OESTE", "NORTE",
	}
)

type Config struct {
	// HTTP server
	Port string

	// Database
	SQLiteDBPath string

	// Billing
	PricePerPosition core.Money
	pricePerPosition string // raw env value, kept for validation messages

	// Entry option lists
	BranchOptions []string
	RegionOptions []string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/prancheta.db"),

		pricePerPosition: getEnv("PRICE_PER_POSITION", "0.20"),

		BranchOptions: getEnvList("BRANCH_OPTIONS", defaultBranchOptions),
		RegionOptions: getEnvList("REGION_OPTIONS", defaultRegionOptions),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	if cents, err := core.ParseDecimalToCents(cfg.pricePerPosition); err == nil {
		cfg.PricePerPosition = core.Money{Cents: cents}
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	}

	if c.PricePerPosition.Cents <= 0 {
		errors = append(errors, fmt.Sprintf("invalid price per position '%s': must be a positive decimal", c.pricePerPosition))
	}

	if len(c.BranchOptions) == 0 {
		errors = append(errors, "branch options cannot be empty")
	}
	if len(c.RegionOptions) == 0 {
		errors = append(errors, "region options cannot be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ValidBranch reports whether the branch code is in the configured closed set.
func (c *Config) ValidBranch(branch string) bool {
	return contains(c.BranchOptions, branch)
}

// ValidRegion reports whether the region name is in the configured closed set.
func (c *Config) ValidRegion(region string) bool {
	return contains(c.RegionOptions, region)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
