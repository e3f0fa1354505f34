package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"CRM_APP_NAME",
	"CRM_APP_ENV",
	"CRM_APP_PORT",
	"CRM_DATABASE_HOST",
	"CRM_DATABASE_PORT",
	"CRM_DATABASE_USER",
	"CRM_DATABASE_PASSWORD",
	"CRM_DATABASE_DBNAME",
	"CRM_DATABASE_SSLMODE",
	"CRM_DATABASE_MAX_OPEN_CONNS",
	"CRM_DATABASE_MAX_IDLE_CONNS",
	"CRM_REDIS_HOST",
	"CRM_REDIS_PORT",
	"CRM_CACHE_ENABLED",
	"CRM_CACHE_DEFAULT_TTL",
	"CRM_JWT_SECRET",
	"CRM_LOG_LEVEL",
}

// withCleanEnv clears config env vars for the test and restores them after
func withCleanEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string, len(configEnvVars))
	for _, k := range configEnvVars {
		original[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		withCleanEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "crm-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "crm", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "localhost", cfg.Redis.Host)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, "crm-backend", cfg.JWT.Issuer)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("loads values from environment variables with CRM prefix", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("CRM_APP_NAME", "test-app")
		os.Setenv("CRM_APP_ENV", "testing")
		os.Setenv("CRM_APP_PORT", "9000")
		os.Setenv("CRM_DATABASE_HOST", "testdb.local")
		os.Setenv("CRM_DATABASE_PORT", "5433")
		os.Setenv("CRM_DATABASE_USER", "testuser")
		os.Setenv("CRM_DATABASE_PASSWORD", "testpass")
		os.Setenv("CRM_DATABASE_DBNAME", "testdb")
		os.Setenv("CRM_DATABASE_SSLMODE", "require")
		os.Setenv("CRM_REDIS_HOST", "redis.local")
		os.Setenv("CRM_REDIS_PORT", "6380")
		os.Setenv("CRM_CACHE_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, "redis.local", cfg.Redis.Host)
		assert.Equal(t, 6380, cfg.Redis.Port)
		assert.True(t, cfg.Cache.Enabled)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("CRM_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("CRM_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("CRM_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("CRM_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func() {
		os.Setenv("CRM_APP_ENV", "production")
		os.Setenv("CRM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("CRM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CRM_DATABASE_SSLMODE", "require")
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		withCleanEnv(t)
		setValidProductionBase()
		os.Unsetenv("CRM_JWT_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		withCleanEnv(t)
		setValidProductionBase()
		os.Setenv("CRM_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		withCleanEnv(t)
		setValidProductionBase()
		os.Unsetenv("CRM_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		withCleanEnv(t)
		setValidProductionBase()
		os.Setenv("CRM_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		withCleanEnv(t)
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "crm",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "user",
			DBName:  "crm",
			SSLMode: "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "redis.local", Port: 6380}
	assert.Equal(t, "redis.local:6380", r.Addr())
}
