package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "DB_HOST", "DB_NAME",
		"DELIVERY_MAX_RETRIES", "DELIVERY_RETRY_DELAY", "MONGO_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8003", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "gochat_db", cfg.Database.DatabaseName)
	assert.Equal(t, 3, cfg.Delivery.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.RetryDelay())
	assert.True(t, cfg.Mongo.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DELIVERY_MAX_RETRIES", "5")
	t.Setenv("DELIVERY_RETRY_DELAY", "2")
	t.Setenv("MONGO_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Delivery.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay())
	assert.False(t, cfg.Mongo.Enabled)
}

func TestLoad_MalformedIntFallsBack(t *testing.T) {
	t.Setenv("DELIVERY_MAX_RETRIES", "lots")

	cfg := Load()
	assert.Equal(t, 3, cfg.Delivery.MaxRetries)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:         "db.internal",
			Port:         "3307",
			Username:     "svc",
			Password:     "pw",
			DatabaseName: "gochat_db",
		},
	}

	assert.Equal(t,
		"svc:pw@tcp(db.internal:3307)/gochat_db?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())
}

func TestDSN_EmptyHostAndPortDefaults(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Username:     "svc",
			DatabaseName: "gochat_db",
		},
	}

	assert.Equal(t,
		"svc:@tcp(localhost:3306)/gochat_db?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN())
}
