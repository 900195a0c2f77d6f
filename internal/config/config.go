// Package config loads server settings from defaults, an optional config
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Log       LogConfig       `mapstructure:"log"`
	Inventory InventoryConfig `mapstructure:"inventory"`
}

type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// URL selects the Postgres catalog; empty keeps everything in memory.
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// Enabled reports whether requests should be rate limited.
func (r RateLimitConfig) Enabled() bool {
	return r.RPS > 0 && r.Burst > 0
}

type CatalogConfig struct {
	CSV string `mapstructure:"csv"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type InventoryConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// plain environment names accepted besides the INVENTORY_ prefixed ones
var envAliases = map[string]string{
	"server.port":     "PORT",
	"server.host":     "HOST",
	"database.url":    "DATABASE_URL",
	"redis.addr":      "REDIS_ADDR",
	"auth.jwt_secret": "JWT_SECRET",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("rate_limit.rps", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("catalog.csv", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("inventory.debounce", 300*time.Millisecond)
}

// Load reads the configuration. configFile may be empty, in which case a
// config.yaml in the working directory is used when present.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, "INVENTORY_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	case c.Auth.JWTSecret == "":
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	case c.Auth.TokenTTL <= 0:
		return fmt.Errorf("%w: auth.token_ttl must be positive", ErrInvalidConfig)
	case c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0:
		return fmt.Errorf("%w: rate_limit values cannot be negative", ErrInvalidConfig)
	case c.Inventory.Debounce < 0:
		return fmt.Errorf("%w: inventory.debounce cannot be negative", ErrInvalidConfig)
	}
	return nil
}
