package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	for k, v := range map[string]string{
		"APP_ENV": "test", "APP_PORT": "8080", "DB_USER": "app", "DB_HOST": "db",
		"DB_PORT": "3306", "DB_NAME": "site", "JWT_SECRET": "s",
		"ACCESS_TOKEN_TTL_MIN": "5", "TAX_RATE_PERCENT": "9",
	} {
		t.Setenv(k, v)
	}
	t.Setenv("DB_PASS", "")

	c := Load()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "", c.DBPass)
	assert.Equal(t, 5, c.AccessTTLMin)
	assert.Equal(t, 7, c.RefreshTTLDays)
	assert.Equal(t, 12, c.BcryptCost)
	assert.Equal(t, 9, c.TaxRatePercent)
}

func TestLoadDatabaseIgnoresServerVars(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_USER", "seed")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "site")

	c := LoadDatabase()
	assert.Equal(t, "seed", c.DBUser)
	assert.Equal(t, "pw", c.DBPass)
	assert.Equal(t, "site", c.DBName)
	assert.Empty(t, c.JWTSecret)
}

func TestRateLimitNormalized(t *testing.T) {
	c := RateLimitConfig{Capacity: 0, RefillTokens: -1, RefillInterval: 0, TTL: time.Second}.normalized()
	assert.Equal(t, 1, c.Capacity)
	assert.Equal(t, 1, c.RefillTokens)
	assert.Equal(t, time.Second, c.RefillInterval)
	assert.Equal(t, 5*time.Second, c.TTL)
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "off")
	t.Setenv("RATE_LIMIT_CAPACITY", "3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "bogus")

	c := LoadRateLimitConfig()
	assert.False(t, c.Enabled)
	assert.Equal(t, 3, c.Capacity)
	assert.Equal(t, 6*time.Second, c.RefillInterval)
	assert.Equal(t, "ip_route", c.KeyStrategy)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head,")
	t.Setenv("CACHE_TTL", "nope")

	c := LoadCacheConfig()
	assert.True(t, c.Enabled)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, c.Methods)
	assert.Equal(t, time.Minute, c.TTL)
	assert.Equal(t, "site-cache", c.Prefix)
}

func TestLoadQueueConfig(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://u:p@mq:5672/")
	t.Setenv("QUEUE_CONSUMER", "0")

	c := LoadQueueConfig()
	assert.Equal(t, "amqp://u:p@mq:5672/", c.URL)
	assert.True(t, c.Enabled)
	assert.False(t, c.Consumer)
}

func TestLoadMailConfig(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("NOTIFY_EMAIL", "  owner@example.com ")

	c := LoadMailConfig()
	assert.False(t, c.Enabled())
	assert.Equal(t, "owner@example.com", c.AdminEmail)
	assert.Equal(t, "587", c.Port)

	t.Setenv("SMTP_HOST", "smtp.example.com")
	assert.True(t, LoadMailConfig().Enabled())
}

func TestRedisOptions(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "1")

	opts, err := redisOptions()
	assert.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.NotNil(t, opts.TLSConfig)

	t.Setenv("REDIS_URL", "redis://:pw@queue:6379/4")
	opts, err = redisOptions()
	assert.NoError(t, err)
	assert.Equal(t, "queue:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 4, opts.DB)
}
