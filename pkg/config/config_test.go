package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STOREFRONT_APP_ENV", "dev")
	t.Setenv("STOREFRONT_APP_PORT", "8080")
	t.Setenv("STOREFRONT_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("STOREFRONT_COMMERCE_BASE_URL", "https://platform.example.com/api")
	t.Setenv("STOREFRONT_CHECKOUT_SUCCESS_URL", "https://shop.example.com/success")
	t.Setenv("STOREFRONT_CHECKOUT_CANCEL_URL", "https://shop.example.com/cancel")
	t.Setenv("STOREFRONT_GATE_TOKEN_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.True(t, cfg.App.IsDev())
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "eur", cfg.Checkout.Currency)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "123456@Aa", cfg.Gate.SitePassword)
	assert.Equal(t, 24*time.Hour, cfg.Gate.TokenTTL)
	assert.Equal(t, "smtp.office365.com:587", cfg.SMTP.Addr())
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STOREFRONT_APP_ENV", "prod")
	t.Setenv("STOREFRONT_CHECKOUT_CURRENCY", "usd")
	t.Setenv("STOREFRONT_CATALOG_CACHE_TTL", "30s")
	t.Setenv("STOREFRONT_SMTP_HOST", "smtp.example.com")
	t.Setenv("STOREFRONT_SMTP_PORT", "2525")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, "usd", cfg.Checkout.Currency)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
	assert.Equal(t, "smtp.example.com:2525", cfg.SMTP.Addr())
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STOREFRONT_COMMERCE_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}
