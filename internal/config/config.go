package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string

	Host                  string
	Port                  int
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// db pool discipline: bounded size, connection recycling, liveness
	// checks and a statement timeout to cap runaway queries
	DBMaxConns               int `toml:"db_max_conns"`
	DBMinConns               int `toml:"db_min_conns"`
	DBMaxConnLifetimeMinutes int `toml:"db_max_conn_lifetime_minutes"`
	DBMaxConnIdleMinutes     int `toml:"db_max_conn_idle_minutes"`
	DBHealthCheckSeconds     int `toml:"db_health_check_seconds"`
	DBStatementTimeoutMillis int `toml:"db_statement_timeout_millis"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`
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

func Load(env, path string) (*Config, error) {
	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing in %s", env, path)
	}

	cfg.Environment = env
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.DBMaxConns <= 0 {
		c.DBMaxConns = 10
	}
	if c.DBMinConns < 0 {
		c.DBMinConns = 0
	}
	if c.DBMaxConnLifetimeMinutes <= 0 {
		c.DBMaxConnLifetimeMinutes = 60
	}
	if c.DBMaxConnIdleMinutes <= 0 {
		c.DBMaxConnIdleMinutes = 15
	}
	if c.DBHealthCheckSeconds <= 0 {
		c.DBHealthCheckSeconds = 60
	}
	if c.DBStatementTimeoutMillis <= 0 {
		c.DBStatementTimeoutMillis = int((10 * time.Second).Milliseconds())
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
}
