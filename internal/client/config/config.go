package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the brocat client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - MediaBaseURL: base URL relative image paths are resolved against.
//   - RequestTimeout: default per-request deadline.
//   - CatalogTimeout: shorter deadline used for catalog feed requests.
//   - SuppressFor: how long unauthorized handling is silenced around login.
//   - UnauthorizedCooldown: minimum gap between two forced logouts.
//   - CacheDSN: SQLite DSN of the local catalog cache.
//   - CredsDir: directory holding persisted credentials.
type Config struct {
	APIBaseURL           string
	MediaBaseURL         string
	RequestTimeout       time.Duration
	CatalogTimeout       time.Duration
	SuppressFor          time.Duration
	UnauthorizedCooldown time.Duration
	CacheDSN             string
	CredsDir             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.brocat.app/api"
	c.MediaBaseURL = "https://api.brocat.app/api"
	c.RequestTimeout = 15 * time.Second
	c.CatalogTimeout = 6 * time.Second
	c.SuppressFor = time.Second
	c.UnauthorizedCooldown = 800 * time.Millisecond

	dir := appDir()
	c.CacheDSN = filepath.Join(dir, "catalog.db")
	c.CredsDir = dir
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func appDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".brocat"
	}
	return filepath.Join(base, "brocat")
}
