package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Deployment environments. Development exposes internal error detail in 500
// responses; test silences the access log.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	HTTP struct {
		Addr           string
		RequestTimeout time.Duration
	}
	DB struct {
		Driver string
		DSN    string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
		TTL      time.Duration
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
	CORSAllowedOrigin string
	APIToken          string
	Env               string
	LogLevel          string
	// TrustProxy takes the client IP from X-Forwarded-For and friends. Enable
	// only behind a reverse proxy that overwrites those headers.
	TrustProxy        bool
}

// IsDevelopment reports whether internal error detail may reach clients.
func (c *Config) IsDevelopment() bool { return c.Env == EnvDevelopment }

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool { return c.Redis.Addr != "" }

// Load reads config from environment (BOOKMARKS_ prefix) and optional joe-bookmarks.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("joe-bookmarks")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("request_timeout", "15s")
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("log.level", "info")
	v.SetDefault("redis.ttl", "10m")
	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("cors.allowed_origin", "*")
	v.SetDefault("trust_proxy", false)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.RateLimit.RPS = v.GetFloat64("rate_limit.rps")
	cfg.RateLimit.Burst = v.GetInt("rate_limit.burst")
	cfg.CORSAllowedOrigin = v.GetString("cors.allowed_origin")
	cfg.TrustProxy = v.GetBool("trust_proxy")
	cfg.APIToken = v.GetString("api_token")
	cfg.Env = strings.ToLower(v.GetString("env"))
	cfg.LogLevel = v.GetString("log.level")

	timeout, err := time.ParseDuration(v.GetString("request_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_REQUEST_TIMEOUT: %w", err)
	}
	cfg.HTTP.RequestTimeout = timeout

	ttl, err := time.ParseDuration(v.GetString("redis.ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_REDIS_TTL: %w", err)
	}
	cfg.Redis.TTL = ttl

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "":
		return fmt.Errorf("BOOKMARKS_DB_DRIVER is required (sqlite3, mysql, postgres)")
	case "sqlite3", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported BOOKMARKS_DB_DRIVER %q: must be sqlite3, mysql, or postgres", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("BOOKMARKS_DB_DSN is required")
	}
	if c.APIToken == "" {
		return fmt.Errorf("BOOKMARKS_API_TOKEN is required")
	}
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("invalid BOOKMARKS_ENV %q: must be development, production, or test", c.Env)
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("BOOKMARKS_RATE_LIMIT_RPS must not be negative")
	}
	return nil
}
