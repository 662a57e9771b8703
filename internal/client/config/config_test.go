package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://api.brocat.app/api", c.APIBaseURL)
	assert.Equal(t, "https://api.brocat.app/api", c.MediaBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 6*time.Second, c.CatalogTimeout)
	assert.Equal(t, time.Second, c.SuppressFor)
	assert.Equal(t, 800*time.Millisecond, c.UnauthorizedCooldown)
	assert.NotEmpty(t, c.CacheDSN)
	assert.NotEmpty(t, c.CredsDir)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://api.brocat.app/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
