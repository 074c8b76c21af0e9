package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Map       MapConfig       `mapstructure:"map"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Manifests ManifestsConfig `mapstructure:"manifests"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Optimizer OptimizerConfig `mapstructure:"optimizer"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// MapConfig selects where the street map is loaded from.
// Source is "file" (Path) or "postgres" (Database.URL).
type MapConfig struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
	Name   string `mapstructure:"name"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// ManifestsConfig points at a directory of deliveries files, used for
// named manifests when no database is configured.
type ManifestsConfig struct {
	Dir string `mapstructure:"dir"`
}

// CacheConfig selects the leg cache: "none", "memory" or "redis".
type CacheConfig struct {
	Backend    string `mapstructure:"backend"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

func (c CacheConfig) TTL() time.Duration { return time.Duration(c.TTLSeconds) * time.Second }

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type OptimizerConfig struct {
	// Seed 0 draws a fresh random seed for every plan.
	Seed     uint64 `mapstructure:"seed"`
	Restarts int    `mapstructure:"restarts"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"port":         "server.port",
	"map":          "map.path",
	"map-source":   "map.source",
	"map-name":     "map.name",
	"database-url": "database.url",
	"manifests":    "manifests.dir",
	"cache":        "cache.backend",
	"redis-addr":   "redis.addr",
	"seed":         "optimizer.seed",
	"restarts":     "optimizer.restarts",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

// Load reads configuration from a .env file, an optional config.yaml, the
// environment (DELIVERY_SERVER_PORT -> server.port) and, when flags is not
// nil, any of its flags listed in flagKeys. Later sources win.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load() // OK if missing

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("map.source", "file")
	v.SetDefault("map.path", "data/mapdata.txt")
	v.SetDefault("map.name", "default")
	v.SetDefault("database.url", "")
	v.SetDefault("manifests.dir", "")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("optimizer.seed", 0)
	v.SetDefault("optimizer.restarts", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.service_name", "delivery-planner")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("DELIVERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	switch c.Map.Source {
	case "file":
		if strings.TrimSpace(c.Map.Path) == "" {
			errs = append(errs, "map.path is required when map.source is file")
		}
	case "postgres":
		if strings.TrimSpace(c.Database.URL) == "" {
			errs = append(errs, "database.url is required when map.source is postgres")
		}
	default:
		errs = append(errs, fmt.Sprintf("map.source must be file or postgres, got %q", c.Map.Source))
	}
	if strings.TrimSpace(c.Map.Name) == "" {
		errs = append(errs, "map.name is required")
	}

	switch c.Cache.Backend {
	case "none", "memory":
	case "redis":
		if c.Redis.Addr == "" {
			errs = append(errs, "redis.addr is required when cache.backend is redis")
		}
	default:
		errs = append(errs, fmt.Sprintf("cache.backend must be none, memory or redis, got %q", c.Cache.Backend))
	}
	if c.Cache.TTLSeconds < 0 {
		errs = append(errs, "cache.ttl_seconds must not be negative")
	}

	// The optimizer reads a zero restart count as "use the default".
	if c.Optimizer.Restarts <= 0 {
		errs = append(errs, fmt.Sprintf("optimizer.restarts must be positive, got %d", c.Optimizer.Restarts))
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		errs = append(errs, "telemetry.endpoint is required when telemetry is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
