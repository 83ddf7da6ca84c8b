package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "PORT", "DB_DRIVER", "DATABASE_URL", "SEED_SOURCE_URL",
		"SEED_FIXTURE_PATH", "SEED_ON_STARTUP", "RATE_LIMIT_PER_SECOND", "CORS_ALLOW_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.URL, "host=localhost")
	assert.Equal(t, DefaultSeedSourceURL, cfg.Seed.SourceURL)
	assert.Equal(t, 30*time.Second, cfg.Seed.HTTPTimeout)
	assert.False(t, cfg.Seed.OnStartup)
	assert.False(t, cfg.Seed.UsesFixture())
	assert.Equal(t, 0, cfg.Security.RateLimitPerSecond)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PortFallsBackToPORT(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "7000")

	cfg := Load()

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, ":7000", cfg.Server.Address())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/tx.db")
	t.Setenv("SEED_FIXTURE_PATH", "./fixture.json")
	t.Setenv("SEED_HTTP_TIMEOUT", "5s")
	t.Setenv("SEED_ON_STARTUP", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/tx.db", cfg.Database.DSN())
	assert.True(t, cfg.Seed.UsesFixture())
	assert.Equal(t, 5*time.Second, cfg.Seed.HTTPTimeout)
	assert.True(t, cfg.Seed.OnStartup)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowOrigins)
}

func TestLoad_InvalidNumbersUseDefaults(t *testing.T) {
	t.Setenv("DB_MAX_CONNECTIONS", "lots")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 25, cfg.Database.MaxConnections)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }, "invalid port"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mongo" }, "unsupported DB_DRIVER"},
		{"missing sqlite path", func(c *Config) {
			c.Database.Driver = DriverSQLite
			c.Database.SQLitePath = ""
		}, "SQLITE_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:   ServerConfig{Port: "5000"},
				Database: DatabaseConfig{Driver: DriverPostgres, URL: "host=localhost"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
