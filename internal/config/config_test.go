package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rastogi30/Personalized-Dashboard/internal/storage"
)

func env(values map[string]string) func(string) string {
	return func(name string) string { return values[name] }
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := load(env(map[string]string{"DASHBOARD_CONFIG_DIR": dir}))

	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Empty(t, cfg.LogLevel)
	assert.Equal(t, "demo-key", cfg.Providers.NewsAPIKey)
	assert.Equal(t, DefaultTMDBURL, cfg.Providers.TMDBURL)
	assert.Equal(t, 15*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, storage.KindFile, cfg.Storage.Backend)
	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
log_level = "debug"

[providers]
news_api_key = "from-file"
timeout = "5s"

[storage]
backend = "sqlite"
sqlite_path = "/tmp/dash.db"

[server]
listen = "127.0.0.1:9000"
`), 0600))

	cfg, err := load(env(map[string]string{"DASHBOARD_CONFIG_DIR": dir}))

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-file", cfg.Providers.NewsAPIKey)
	assert.Equal(t, "demo-key", cfg.Providers.TMDBAPIKey, "unset keys keep defaults")
	assert.Equal(t, 5*time.Second, cfg.Providers.Timeout)
	assert.Equal(t, storage.KindSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/dash.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)
	assert.Equal(t, dir, cfg.ConfigDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
[providers]
news_api_key = "from-file"
`), 0600))

	cfg, err := load(env(map[string]string{
		"DASHBOARD_CONFIG_DIR": dir,
		"NEWS_API_KEY":         "from-env",
		"TMDB_API_KEY":         "tmdb-env",
		"DASHBOARD_SOCIAL_URL": "http://localhost:1234",
		"DASHBOARD_STORAGE":    "redis",
		"DASHBOARD_REDIS_ADDR": "localhost:6379",
		"DASHBOARD_LISTEN":     ":9999",
		"DASHBOARD_LOG_LEVEL":  "warn",
	}))

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Providers.NewsAPIKey)
	assert.Equal(t, "tmdb-env", cfg.Providers.TMDBAPIKey)
	assert.Equal(t, "http://localhost:1234", cfg.Providers.SocialURL)
	assert.Equal(t, storage.KindRedis, cfg.Storage.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, ":9999", cfg.Server.Listen)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("this is = = not toml"), 0600))

	_, err := load(env(map[string]string{"DASHBOARD_CONFIG_DIR": dir}))

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Default(t.TempDir())
	require.NoError(t, base.Validate())

	for name, mutate := range map[string]func(*Config){
		"unknown backend": func(c *Config) { c.Storage.Backend = "s3" },
		"redis no addr":   func(c *Config) { c.Storage.Backend = storage.KindRedis },
		"sqlite no path":  func(c *Config) { c.Storage.Backend = storage.KindSQLite; c.Storage.SQLitePath = "" },
		"bad log level":   func(c *Config) { c.LogLevel = "loud" },
		"zero timeout":    func(c *Config) { c.Providers.Timeout = 0 },
		"bad url":         func(c *Config) { c.Providers.NewsURL = "newsapi.org" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLogLevelOr(t *testing.T) {
	cfg := Default(t.TempDir())
	assert.Equal(t, "error", cfg.LogLevelOr("error"), "unset level should use the command's fallback")

	cfg.LogLevel = "debug"
	assert.Equal(t, "debug", cfg.LogLevelOr("error"), "configured level should win")
}

func TestStorageOptions(t *testing.T) {
	cfg := Default("/cfg")
	cfg.Storage.RedisAddr = "localhost:6379"

	opts := cfg.StorageOptions()

	assert.Equal(t, storage.Options{
		Kind:       storage.KindFile,
		Dir:        "/cfg",
		SQLitePath: filepath.Join("/cfg", "dashboard.db"),
		RedisAddr:  "localhost:6379",
	}, opts)
}

func TestRedacted(t *testing.T) {
	cfg := Default("/cfg")
	cfg.Providers.NewsAPIKey = "abcdef123456"

	redacted := cfg.Redacted()

	assert.Equal(t, "abcd********", redacted.Providers.NewsAPIKey)
	assert.Equal(t, "demo-key", redacted.Providers.TMDBAPIKey)
	assert.Equal(t, "abcdef123456", cfg.Providers.NewsAPIKey, "original is untouched")
}
