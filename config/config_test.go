package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("AUTH_ENABLED", "not-a-bool")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	assert.True(t, cfg.UsesMemoryStore())
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.True(t, cfg.AuthEnabled, "invalid booleans fall back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "bm", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/bm?sslmode=disable", cfg.PostgresDSN())
}
