package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "knowforum", cfg.Database.DBName)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "30s", cfg.Analysis.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	content := `
server:
  port: "9090"
  mode: production
database:
  dbname: forum_test
analysis:
  service_url: http://analysis:5001
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "forum_test", cfg.Database.DBName)
	assert.Equal(t, "http://analysis:5001", cfg.Analysis.ServiceURL)
	// untouched sections keep their defaults
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("ANALYSIS_SERVICE_URL", "http://ai.internal")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test")

	content := `
server:
  port: "9090"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, "http://ai.internal", cfg.Analysis.ServiceURL)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigValidation(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig(missing)
		assert.Error(t, err)
	})

	t.Run("bad token expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_ACCESS_TOKEN_EXPIRATION", "soon")
		_, err := LoadConfig(missing)
		assert.Error(t, err)
	})

	t.Run("bad analysis timeout", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("ANALYSIS_TIMEOUT", "whenever")
		_, err := LoadConfig(missing)
		assert.Error(t, err)
	})
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "forum"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "knowforum"
	cfg.Database.SSLMode = ""

	assert.Equal(t, "postgres://forum:pw@db:5433/knowforum?sslmode=disable", cfg.GetPostgresConnectionString())
}
