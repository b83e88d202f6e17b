package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/ironai/internal/progression"
	"github.com/2beens/ironai/internal/store"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	LogMaxBackups int    `toml:"log_max_backups"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	StoreBackend      string `toml:"store_backend"`
	RedisHost         string `toml:"redis_host"`
	RedisPort         string `toml:"redis_port"`
	RedisMaxTxRetries int    `toml:"redis_max_tx_retries"`
	PostgresHost      string `toml:"postgres_host"`
	PostgresPort      string `toml:"postgres_port"`
	PostgresDBName    string `toml:"postgres_db_name"`
	PostgresUser      string `toml:"postgres_user"`
	SqlitePath        string `toml:"sqlite_path"`

	// plan generator
	GeminiBaseURL           string `toml:"gemini_base_url"`
	GeminiModel             string `toml:"gemini_model"`
	GeneratorTimeoutSeconds int    `toml:"generator_timeout_seconds"`
	TipCacheMinutes         int    `toml:"tip_cache_minutes"`
	GenerateRateLimitPerMin int    `toml:"generate_rate_limit_per_min"`

	// progression and sessions
	SameDayStreakPolicy       string `toml:"same_day_streak_policy"`
	Timezone                  string `toml:"timezone"`
	SessionIdleTimeoutMinutes int    `toml:"session_idle_timeout_minutes"`

	AllowedOrigins []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the validated config of env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found in %s", env, path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config [%s]: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = store.BackendRedis
	}
	if c.SameDayStreakPolicy == "" {
		c.SameDayStreakPolicy = string(progression.SameDayKeep)
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.GeneratorTimeoutSeconds == 0 {
		c.GeneratorTimeoutSeconds = 30
	}
	if c.TipCacheMinutes == 0 {
		c.TipCacheMinutes = 360
	}
	if c.GenerateRateLimitPerMin == 0 {
		c.GenerateRateLimitPerMin = 10
	}
	if c.SessionIdleTimeoutMinutes == 0 {
		c.SessionIdleTimeoutMinutes = 180
	}
	if c.SqlitePath == "" {
		c.SqlitePath = "./ironai.db"
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.MetricsPort <= 0 || c.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid metrics port: %d", c.MetricsPort))
	}
	if c.MetricsPort == c.Port {
		errs = append(errs, errors.New("metrics port must differ from the service port"))
	}
	if !store.IsValidBackend(c.StoreBackend) {
		errs = append(errs, fmt.Errorf("unknown store backend: %s", c.StoreBackend))
	}
	if _, err := progression.ParseSameDayPolicy(c.SameDayStreakPolicy); err != nil {
		errs = append(errs, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid timezone [%s]: %w", c.Timezone, err))
	}
	if c.GeneratorTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("invalid generator timeout: %d", c.GeneratorTimeoutSeconds))
	}
	if c.SessionIdleTimeoutMinutes < 0 {
		errs = append(errs, fmt.Errorf("invalid session idle timeout: %d", c.SessionIdleTimeoutMinutes))
	}

	switch c.StoreBackend {
	case store.BackendRedis:
		if c.RedisHost == "" || c.RedisPort == "" {
			errs = append(errs, errors.New("redis host and port must be set"))
		}
	case store.BackendPostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			errs = append(errs, errors.New("postgres host, port and db name must be set"))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GeneratorTimeout() time.Duration {
	return time.Duration(c.GeneratorTimeoutSeconds) * time.Second
}

func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.SessionIdleTimeoutMinutes) * time.Minute
}

func (c *Config) TipCacheExpire() time.Duration {
	return time.Duration(c.TipCacheMinutes) * time.Minute
}
