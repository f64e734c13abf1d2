package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the config variables for the test; godotenv never overrides a set variable
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV_FILE", "PORT", "APP_ENV", "CORS_ORIGINS", "DB_TYPE", "DB_HOST", "DB_PORT",
		"DB_DATABASE", "DB_USER", "DB_PASSWORD", "DB_CONNECTION_LIMIT", "DB_LOG_LEVEL",
		"JWT_SECRET", "JWT_EXPIRE_MINUTES", "JWT_ISSUER",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DATABASE", "social.db")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.True(t, cfg.IsSQLite())
	assert.Equal(t, 5, cfg.DBConnectionLimit)
	assert.Equal(t, "socialdb", cfg.JWTIssuer)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "DB_TYPE=postgres\nDB_DATABASE=social\nDB_USER=app\nJWT_SECRET=s3cret\nJWT_EXPIRE_MINUTES=15\nDB_CONNECTION_LIMIT=nope\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ENV_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.False(t, cfg.IsSQLite())
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.Equal(t, 5, cfg.DBConnectionLimit)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{DBType: "mysql", DBDatabase: "social", DBUser: "app", JWTSecret: "s", JWTExpireMinutes: 60}
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(c *Config){
		"no database":    func(c *Config) { c.DBDatabase = "" },
		"no user":        func(c *Config) { c.DBUser = "" },
		"no secret":      func(c *Config) { c.JWTSecret = "" },
		"zero token ttl": func(c *Config) { c.JWTExpireMinutes = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	sqlite := &Config{DBType: "sqlite-pure", DBDatabase: "memory", JWTSecret: "s", JWTExpireMinutes: 1}
	assert.NoError(t, sqlite.Validate())
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: "https://a.example.com, https://b.example.com ,https://c.example.com"}
	assert.Equal(t, "https://a.example.com,https://b.example.com,https://c.example.com", cfg.AllowedOrigins())

	cfg.CORSOrigins = "*"
	assert.Equal(t, "*", cfg.AllowedOrigins())
}
