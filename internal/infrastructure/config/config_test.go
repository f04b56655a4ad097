package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shopfront-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "shopfront", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Catalog.PageSize)
	assert.Equal(t, 3, cfg.Checkout.ConflictRetries)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SHOP_DATABASE_HOST", "db.internal")
	t.Setenv("SHOP_CATALOG_PAGE_SIZE", "50")
	t.Setenv("SHOP_CHECKOUT_CONFLICT_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Catalog.PageSize)
	assert.Equal(t, 5, cfg.Checkout.ConflictRetries)
}

func TestValidateConnectionPool(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 100
	cfg.Database.MaxOpenConns = 10

	assert.Error(t, cfg.validate())
}

func TestValidateProduction(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.App.Env = "production"

	// Missing JWT secret.
	assert.Error(t, cfg.validate())

	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "require"
	require.NoError(t, cfg.validate())

	cfg.HTTP.CORSAllowOrigins = []string{"*"}
	assert.Error(t, cfg.validate())
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "shop",
		Password: "p@ss:word/1",
		DBName:   "shopfront",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%3Aword%2F1")
	assert.Contains(t, dsn, "sslmode=disable")
}
