package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_NAME", "JWT_ACCESS_EXPIRY", "SEED_EMAIL_DOMAIN",
		"SEED_DEFAULT_PASSWORD", "SEED_ENABLED", "SEED_PROFILE_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "discipulado", cfg.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, "igreja.com", cfg.SeedEmailDomain)
	assert.Equal(t, "senha123", cfg.SeedDefaultPassword)
	assert.Empty(t, cfg.SeedProfilePath)
	assert.False(t, cfg.SeedEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_ACCESS_EXPIRY", "1h")
	t.Setenv("SEED_EMAIL_DOMAIN", "paz.org")
	t.Setenv("SEED_ENABLED", "true")
	t.Setenv("SEED_PROFILE_PATH", "/etc/seed.yaml")

	cfg := Load()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, time.Hour, cfg.JWTAccessExpiry)
	assert.Equal(t, "paz.org", cfg.SeedEmailDomain)
	assert.True(t, cfg.SeedEnabled)
	assert.Equal(t, "/etc/seed.yaml", cfg.SeedProfilePath)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")
	t.Setenv("SEED_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.False(t, cfg.SeedEnabled)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "h", DBPort: "5433", DBUser: "u", DBPassword: "p",
		DBName: "n", DBSSLMode: "require",
	}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC", cfg.DSN())
}
