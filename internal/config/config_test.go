package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8081", cfg.OpsPort)
	assert.Equal(t, "configs/catalog.json", cfg.CatalogPath)
	assert.Equal(t, "artifacts", cfg.ArtifactsDir)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.NotEmpty(t, cfg.StartMessage)
	assert.NotEmpty(t, cfg.HelpMessage)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "  Redis ")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("CATALOG_PATH", "/etc/showroom/catalog.json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "/etc/showroom/catalog.json", cfg.CatalogPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadIgnoresMalformedDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}
