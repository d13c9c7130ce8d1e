package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar names an optional YAML file layered between defaults and env.
const PathEnvVar = "CONFIG_PATH"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Redis     RedisConfig     `koanf:"redis"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Logging   LoggingConfig   `koanf:"logging"`
	Ranking   RankingConfig   `koanf:"ranking"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// RedisConfig points at the preference-profile store. Disabled means every
// request without inline preferences gets the default profile.
type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type RankingConfig struct {
	// Workers bounds per-request evaluation goroutines; 0 means GOMAXPROCS.
	Workers int `koanf:"workers"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Redis: RedisConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    "6379",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Ranking: RankingConfig{Workers: 0},
	}
}

var envKeys = map[string]string{
	"PORT":               "server.port",
	"REDIS_ENABLED":      "redis.enabled",
	"REDIS_HOST":         "redis.host",
	"REDIS_PORT":         "redis.port",
	"REDIS_PASSWORD":     "redis.password",
	"REDIS_DB":           "redis.db",
	"RATE_LIMIT_ENABLED": "ratelimit.enabled",
	"RATE_LIMIT_RPS":     "ratelimit.requests_per_second",
	"RATE_LIMIT_BURST":   "ratelimit.burst",
	"LOG_LEVEL":          "logging.level",
	"LOG_FORMAT":         "logging.format",
	"RANKING_WORKERS":    "ranking.workers",
}

// envTransform maps known variables to config paths and drops the rest.
func envTransform(key string) string {
	return envKeys[strings.ToUpper(key)]
}

// Load layers struct defaults, the optional CONFIG_PATH YAML file and the
// environment, in that order of precedence.
func Load() (Config, error) {
	return load(os.Getenv(PathEnvVar))
}

func load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("redis.host is required when redis is enabled")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("ratelimit.requests_per_second must be positive")
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("ratelimit.burst must be positive")
		}
	}
	if c.Ranking.Workers < 0 {
		return fmt.Errorf("ranking.workers must not be negative")
	}
	return nil
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}
