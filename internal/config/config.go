// Package config resolves dashboard settings.
//
// Settings are layered, later layers winning:
// - built-in defaults
// - config.toml in the config directory
// - environment variables, including those loaded from .env
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/rastogi30/Personalized-Dashboard/internal/newsapi"
	"github.com/rastogi30/Personalized-Dashboard/internal/storage"
	"github.com/rastogi30/Personalized-Dashboard/internal/tmdb"
)

// FileName is the optional config file inside the config directory.
const FileName = "config.toml"

// Default provider endpoints.
const (
	DefaultNewsURL   = "https://newsapi.org"
	DefaultTMDBURL   = "https://api.themoviedb.org"
	DefaultSocialURL = "https://jsonplaceholder.typicode.com"
)

// Providers configures the upstream APIs.
type Providers struct {
	NewsAPIKey string        `toml:"news_api_key"`
	TMDBAPIKey string        `toml:"tmdb_api_key"`
	NewsURL    string        `toml:"news_url"`
	TMDBURL    string        `toml:"tmdb_url"`
	SocialURL  string        `toml:"social_url"`
	Timeout    time.Duration `toml:"timeout"`
}

// Storage configures where favorites and preferences are kept.
type Storage struct {
	Backend    string `toml:"backend"`
	SQLitePath string `toml:"sqlite_path"`
	RedisAddr  string `toml:"redis_addr"`
}

// Server configures the HTTP API.
type Server struct {
	Listen string `toml:"listen"`
}

// Config is the resolved configuration.
type Config struct {
	ConfigDir string    `toml:"-"`
	LogLevel  string    `toml:"log_level"`
	Providers Providers `toml:"providers"`
	Storage   Storage   `toml:"storage"`
	Server    Server    `toml:"server"`
}

// Default returns the built-in configuration rooted at configDir.
func Default(configDir string) Config {
	return Config{
		ConfigDir: configDir,
		Providers: Providers{
			NewsAPIKey: newsapi.DemoKey,
			TMDBAPIKey: tmdb.DemoKey,
			NewsURL:    DefaultNewsURL,
			TMDBURL:    DefaultTMDBURL,
			SocialURL:  DefaultSocialURL,
			Timeout:    15 * time.Second,
		},
		Storage: Storage{
			Backend:    storage.KindFile,
			SQLitePath: filepath.Join(configDir, "dashboard.db"),
		},
		Server: Server{Listen: ":8080"},
	}
}

// DefaultConfigDir returns ~/.config/dashboard.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dashboard")
	}
	return filepath.Join(home, ".config", "dashboard")
}

// Load resolves the configuration from .env, config.toml and the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	dir := strings.TrimSpace(getenv("DASHBOARD_CONFIG_DIR"))
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := Default(dir)

	path := filepath.Join(dir, FileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		log.WithField("path", path).Debug("Loaded config file")
	}
	cfg.ConfigDir = dir

	applyEnv(&cfg, getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	overrides := map[string]*string{
		"NEWS_API_KEY":          &cfg.Providers.NewsAPIKey,
		"TMDB_API_KEY":          &cfg.Providers.TMDBAPIKey,
		"DASHBOARD_NEWS_URL":    &cfg.Providers.NewsURL,
		"DASHBOARD_TMDB_URL":    &cfg.Providers.TMDBURL,
		"DASHBOARD_SOCIAL_URL":  &cfg.Providers.SocialURL,
		"DASHBOARD_STORAGE":     &cfg.Storage.Backend,
		"DASHBOARD_SQLITE_PATH": &cfg.Storage.SQLitePath,
		"DASHBOARD_REDIS_ADDR":  &cfg.Storage.RedisAddr,
		"DASHBOARD_LISTEN":      &cfg.Server.Listen,
		"DASHBOARD_LOG_LEVEL":   &cfg.LogLevel,
	}
	for name, field := range overrides {
		if value := strings.TrimSpace(getenv(name)); value != "" {
			*field = value
		}
	}
}

// LogLevelOr returns the configured log level, or fallback when none is set.
func (c Config) LogLevelOr(fallback string) string {
	if c.LogLevel == "" {
		return fallback
	}
	return c.LogLevel
}

// Validate rejects settings that cannot work.
func (c Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log level %q", c.LogLevel)
		}
	}

	switch c.Storage.Backend {
	case storage.KindFile, storage.KindMemory:
	case storage.KindSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("sqlite storage requires a database path")
		}
	case storage.KindRedis:
		if c.Storage.RedisAddr == "" {
			return errors.New("redis storage requires DASHBOARD_REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want file, sqlite, redis or memory)", c.Storage.Backend)
	}

	if c.Providers.Timeout <= 0 {
		return errors.New("provider timeout must be positive")
	}
	for name, u := range map[string]string{
		"news":   c.Providers.NewsURL,
		"tmdb":   c.Providers.TMDBURL,
		"social": c.Providers.SocialURL,
	} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("%s url must be http(s), got %q", name, u)
		}
	}
	return nil
}

// StorageOptions maps the storage settings onto storage.Open.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Kind:       c.Storage.Backend,
		Dir:        c.ConfigDir,
		SQLitePath: c.Storage.SQLitePath,
		RedisAddr:  c.Storage.RedisAddr,
	}
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	c.Providers.NewsAPIKey = redact(c.Providers.NewsAPIKey)
	c.Providers.TMDBAPIKey = redact(c.Providers.TMDBAPIKey)
	return c
}

func redact(key string) string {
	if key == "" || key == newsapi.DemoKey {
		return key
	}
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
