package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	ListenAddr     string  `mapstructure:"listen_addr"`
	Version        string  `mapstructure:"version"`
	LogLevel       string  `mapstructure:"log_level"`
	LogFormat      string  `mapstructure:"log_format"`
	SigningSecret  string  `mapstructure:"signing_secret"`
	StoreBackend   string  `mapstructure:"store_backend"`
	DatabaseDSN    string  `mapstructure:"database_dsn"`
	MigrationsDir  string  `mapstructure:"migrations_dir"`
	RedisAddr      string  `mapstructure:"redis_addr"`
	RedisPassword  string  `mapstructure:"redis_password"`
	RedisDB        int     `mapstructure:"redis_db"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Load reads configs/config.yaml when present and lets environment variables
// override every key (LISTEN_ADDR, STORE_BACKEND, ...). A missing config
// file is not an error; the defaults describe a working memory-backed mock.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetDefault("listen_addr", ":3000")
	v.SetDefault("version", "1.0.0")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("signing_secret", "mock-loan-api-signing-secret")
	v.SetDefault("store_backend", StoreMemory)
	v.SetDefault("database_dsn", "")
	v.SetDefault("migrations_dir", "migrations")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 0)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	switch cfg.StoreBackend {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		return Config{}, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}

	if cfg.StoreBackend == StorePostgres && strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return Config{}, fmt.Errorf("database_dsn is required for the postgres store backend")
	}

	return cfg, nil
}
