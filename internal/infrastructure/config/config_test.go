package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "portfolio-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "portfolio", cfg.Database.DBName)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, "admin", cfg.Admin.Username)
		assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, int64(10<<20), cfg.Storage.MaxUploadSize)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, "portfolio-backend", cfg.Telemetry.ServiceName)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("loads values from environment variables with PORTFOLIO prefix", func(t *testing.T) {
		t.Setenv("PORTFOLIO_APP_PORT", "9000")
		t.Setenv("PORTFOLIO_DATABASE_DRIVER", "sqlite")
		t.Setenv("PORTFOLIO_DATABASE_PATH", ":memory:")
		t.Setenv("PORTFOLIO_REDIS_ENABLED", "true")
		t.Setenv("PORTFOLIO_REDIS_TTL", "30s")
		t.Setenv("PORTFOLIO_ADMIN_USERNAME", "owner")
		t.Setenv("PORTFOLIO_STORAGE_ENABLED", "true")
		t.Setenv("PORTFOLIO_STORAGE_BUCKET", "assets")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, ":memory:", cfg.Database.Path)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
		assert.Equal(t, "owner", cfg.Admin.Username)
		assert.Equal(t, "assets", cfg.Storage.Bucket)
	})

	t.Run("rejects an unknown driver", func(t *testing.T) {
		t.Setenv("PORTFOLIO_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("PORTFOLIO_DATABASE_MAX_OPEN_CONNS", "4")
		t.Setenv("PORTFOLIO_DATABASE_MAX_IDLE_CONNS", "8")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("storage needs a bucket when enabled", func(t *testing.T) {
		t.Setenv("PORTFOLIO_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		t.Setenv("PORTFOLIO_APP_ENV", "production")
		t.Setenv("PORTFOLIO_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("PORTFOLIO_ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuuJ9m6c0a3bYQ7V0iXl8Gm2w4pQe6HxS")
		t.Setenv("PORTFOLIO_DATABASE_PASSWORD", "secure-password")
		t.Setenv("PORTFOLIO_DATABASE_SSLMODE", "require")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"short jwt secret", "PORTFOLIO_JWT_SECRET", "short-secret", "jwt.secret must be at least 32 characters"},
		{"missing admin hash", "PORTFOLIO_ADMIN_PASSWORD_HASH", "", "admin.password_hash is required"},
		{"sqlite driver", "PORTFOLIO_DATABASE_DRIVER", "sqlite", "cannot be sqlite in production"},
		{"ssl disabled", "PORTFOLIO_DATABASE_SSLMODE", "disable", "database.sslmode cannot be 'disable'"},
		{"wildcard cors", "PORTFOLIO_HTTP_CORS_ALLOW_ORIGINS", "*", "cors_allow_origins cannot be '*'"},
		{"full sql in traces", "PORTFOLIO_TELEMETRY_DB_LOG_FULL_SQL", "true", "db_log_full_sql must be false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValidProductionBase(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[app]
name = "my-portfolio"

[database]
driver = "sqlite"
path = "/tmp/portfolio.db"

[http]
cors_allow_origins = ["https://example.com"]
`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "my-portfolio", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/portfolio.db", cfg.Database.Path)
	assert.Equal(t, []string{"https://example.com"}, cfg.HTTP.CORSAllowOrigins)

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "testuser", Password: "testpass", DBName: "testdb", SSLMode: "disable"}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "/testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "user", Password: "pass@word#123", DBName: "db", SSLMode: "disable"}
		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
