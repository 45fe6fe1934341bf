package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	defaultSQLiteDSN = "products.db"
)

type Config struct {
	Store    StoreConfig
	Cache    CacheConfig
	Server   ServerConfig
	OTLP     OTLPConfig
	LookupID int64
	LogLevel string
}

type StoreConfig struct {
	Driver       string
	DSN          string
	QueryTimeout time.Duration
	Seed         bool
}

// CacheConfig enables the Redis product cache when Addr is set.
type CacheConfig struct {
	Addr string
	TTL  time.Duration
}

type ServerConfig struct {
	Addr           string
	RateLimitRPS   float64
	RateLimitBurst int
}

type OTLPConfig struct {
	Endpoint    string
	ServiceName string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store_driver", DriverPostgres)
	v.SetDefault("database_url", "")
	v.SetDefault("query_timeout", "3s")
	v.SetDefault("seed", false)
	v.SetDefault("lookup_id", 1)
	v.SetDefault("redis_addr", "")
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_service_name", "product-report")
	v.SetDefault("log_level", "info")
}

// Load reads the configuration from the environment and, when present,
// from config.yaml and .env in the working directory. Environment variables
// win over .env, which wins over config.yaml.
func Load() (*Config, error) {
	return loadFrom(".")
}

func loadFrom(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(filepath.Join(dir, ".env"))
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read .env file: %w", err)
		}
	} else if err := v.MergeConfigMap(dotenv.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to merge .env file: %w", err)
	}

	v.AutomaticEnv()

	cfg := &Config{
		Store: StoreConfig{
			Driver:       strings.ToLower(v.GetString("store_driver")),
			DSN:          v.GetString("database_url"),
			QueryTimeout: v.GetDuration("query_timeout"),
			Seed:         v.GetBool("seed"),
		},
		Cache: CacheConfig{
			Addr: v.GetString("redis_addr"),
			TTL:  v.GetDuration("cache_ttl"),
		},
		Server: ServerConfig{
			Addr:           v.GetString("http_addr"),
			RateLimitRPS:   v.GetFloat64("rate_limit_rps"),
			RateLimitBurst: v.GetInt("rate_limit_burst"),
		},
		OTLP: OTLPConfig{
			Endpoint:    v.GetString("otel_exporter_otlp_endpoint"),
			ServiceName: v.GetString("otel_service_name"),
		},
		LookupID: v.GetInt64("lookup_id"),
		LogLevel: v.GetString("log_level"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("environment variable DATABASE_URL not found")
		}
	case DriverSQLite:
		if c.Store.DSN == "" {
			c.Store.DSN = defaultSQLiteDSN
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Store.QueryTimeout <= 0 {
		return fmt.Errorf("query timeout must be positive, got %v", c.Store.QueryTimeout)
	}
	if c.Cache.Addr != "" && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %v", c.Cache.TTL)
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}
