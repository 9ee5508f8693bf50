package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds the service configuration.
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	Catalog     CatalogConfig    `mapstructure:"catalog"`
	Favorites   FavoritesConfig  `mapstructure:"favorites"`
	Suggestion  SuggestionConfig `mapstructure:"suggestion"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
	// LogFile is the JSON log file; "none" turns the file output off.
	LogFile     string           `mapstructure:"log_file"`
}

type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// CatalogConfig points at the recipe catalog. An empty path selects the
// catalog compiled into the binary.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type FavoritesConfig struct {
	Backend  string        `mapstructure:"backend"`
	RedisURL string        `mapstructure:"redis_url"`
	Key      string        `mapstructure:"key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// SuggestionConfig seeds the dish suggester. Zero draws a fresh seed per process.
type SuggestionConfig struct {
	Seed uint64 `mapstructure:"seed"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig reads .env (when present), APP_ prefixed environment variables
// and the aliases bound below, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"server.port":         "PORT",
		"catalog.path":        "CATALOG_PATH",
		"favorites.backend":   "FAVORITES_BACKEND",
		"favorites.redis_url": "REDIS_URL",
		"favorites.key":       "FAVORITES_KEY",
		"suggestion.seed":     "SUGGESTION_SEED",
		"rate_limit.enabled":  "RATE_LIMIT_ENABLED",
		"rate_limit.requests": "RATE_LIMIT_REQUESTS",
		"rate_limit.window":   "RATE_LIMIT_WINDOW",
		"dedup_window":        "DEDUP_WINDOW",
		"log_level":           "LOG_LEVEL",
		"log_file":            "LOG_FILE",
	}
	for key, env := range bindings {
		envKey := "APP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Favorites.Backend = strings.ToLower(strings.TrimSpace(cfg.Favorites.Backend))
	if strings.EqualFold(strings.TrimSpace(cfg.LogFile), "none") {
		cfg.LogFile = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-finder")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.max_body_bytes", 64*1024)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("catalog.path", "")

	v.SetDefault("favorites.backend", BackendMemory)
	v.SetDefault("favorites.redis_url", "")
	v.SetDefault("favorites.key", "munchai-favorites")
	v.SetDefault("favorites.timeout", "2s")

	v.SetDefault("suggestion.seed", 0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "logs/app.log")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body size")
	}

	switch c.Favorites.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Favorites.RedisURL == "" {
			return fmt.Errorf("redis favorites backend requires a redis url")
		}
	default:
		return fmt.Errorf("unknown favorites backend %q", c.Favorites.Backend)
	}
	if strings.TrimSpace(c.Favorites.Key) == "" {
		return fmt.Errorf("favorites key is required")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if c.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}
	if c.DedupWindow < 0 {
		return fmt.Errorf("invalid dedup window")
	}
	return nil
}
