package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DB_DRIVER", "JWT_TTL", "CACHE_TTL", "CORS_ORIGINS", "BCRYPT_COST", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProd)
}
