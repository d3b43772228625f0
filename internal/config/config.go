package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Advisory    ClientConfig  `toml:"advisory"`
	Chat        ClientConfig  `toml:"chat"`
	Market      MarketConfig  `toml:"market"`
	Cache       CacheConfig   `toml:"cache"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// ClientConfig contains settings for one remote API client.
type ClientConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration.
func (c *ClientConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// MarketConfig contains the market-quote provider settings and the
// instrument symbols the snapshot fetcher tracks. Symbols are passed to
// the provider unchanged (exchange suffixes like ".NS", index prefixes
// like "^" are part of the symbol).
type MarketConfig struct {
	BaseURL   string   `toml:"base_url"`
	Timeout   string   `toml:"timeout"`
	Indices   []string `toml:"indices"`
	Watchlist []string `toml:"watchlist"`
}

// GetTimeout parses and returns the timeout duration.
func (c *MarketConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// CacheConfig contains response cache settings for advisory reads.
type CacheConfig struct {
	TTL        string `toml:"ttl"`
	MaxEntries int    `toml:"max_entries"`
}

// GetTTL parses and returns the cache TTL duration.
func (c *CacheConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// IsDevMode reports whether the portal runs with dev behavior enabled.
func (c *Config) IsDevMode() bool {
	return c.Environment == "dev"
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies BAM_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("BAM_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("BAM_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if u := os.Getenv("BAM_ADVISORY_URL"); u != "" {
		config.Advisory.BaseURL = u
	}
	if u := os.Getenv("BAM_CHAT_URL"); u != "" {
		config.Chat.BaseURL = u
	}
	if u := os.Getenv("BAM_MARKET_URL"); u != "" {
		config.Market.BaseURL = u
	}
	if level := os.Getenv("BAM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if env := os.Getenv("BAM_ENVIRONMENT"); env != "" {
		config.Environment = env
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks mandatory configuration and returns a list of issues.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	for name, base := range map[string]string{
		"advisory.base_url": c.Advisory.BaseURL,
		"chat.base_url":     c.Chat.BaseURL,
		"market.base_url":   c.Market.BaseURL,
	} {
		if base == "" {
			issues = append(issues, name+" is required")
			continue
		}
		if _, err := url.ParseRequestURI(base); err != nil {
			issues = append(issues, fmt.Sprintf("%s is not a valid URL: %v", name, err))
		}
	}
	if len(c.Market.Indices) == 0 && len(c.Market.Watchlist) == 0 {
		issues = append(issues, "market.indices or market.watchlist must list at least one symbol")
	}

	return issues
}
