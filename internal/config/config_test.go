// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.Pricing.Currency)
	assert.Equal(t, "2.00", cfg.Pricing.DesignSmall)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=apparel_shop sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PRICING_DESIGN_LARGE", "12.50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com, https://pos.example.com")
	t.Setenv("REDIS_PROMOTION_TTL", "90")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "12.50", cfg.Pricing.DesignLarge)
	assert.Equal(t, []string{"https://shop.example.com", "https://pos.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, float64(90), cfg.Redis.PromotionTTL().Seconds())
}

func TestValidate(t *testing.T) {
	t.Run("invalid price", func(t *testing.T) {
		t.Setenv("PRICING_DESIGN_SMALL", "two dollars")
		_, err := Load()
		assert.ErrorContains(t, err, "PRICING_DESIGN_SMALL")
	})

	t.Run("negative price", func(t *testing.T) {
		t.Setenv("PRICING_PERSONALIZATION_LARGE", "-1")
		_, err := Load()
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("production requires secrets", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT secret")
	})
}
