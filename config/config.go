// File: /config/config.go
package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "TRICYCLE_"
	configFileEnv = "TRICYCLE_CONFIG"
)

type Config struct {
	Env       string `koanf:"env" validate:"required,oneof=local development staging production"`
	Port      string `koanf:"port" validate:"required"`
	LogLevel  string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"required,oneof=json console"`

	// DatabaseURL wins over the discrete DB* fields when set.
	DatabaseURL       string        `koanf:"database_url"`
	DBHost            string        `koanf:"db_host" validate:"required_without=DatabaseURL"`
	DBPort            int           `koanf:"db_port" validate:"gte=1,lte=65535"`
	DBUser            string        `koanf:"db_user" validate:"required_without=DatabaseURL"`
	DBPassword        string        `koanf:"db_password"`
	DBName            string        `koanf:"db_name" validate:"required_without=DatabaseURL"`
	DBMaxOpenConns    int           `koanf:"db_max_open_conns" validate:"gte=1"`
	DBMaxIdleConns    int           `koanf:"db_max_idle_conns" validate:"gte=0"`
	DBConnMaxLifetime time.Duration `koanf:"db_conn_max_lifetime" validate:"gte=0"`

	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold" validate:"gte=0"`

	// Local gateway settings
	RateLimitPerMinute  int           `koanf:"rate_limit_per_minute" validate:"gte=1"`
	RateLimitBurst      int           `koanf:"rate_limit_burst" validate:"gte=1"`
	HealthCheckInterval time.Duration `koanf:"health_check_interval" validate:"gte=1s"`
	HealthCheckTimeout  time.Duration `koanf:"health_check_timeout" validate:"gte=1s"`
	ShutdownTimeout     time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Env:       "development",
		Port:      "8080",
		LogLevel:  "info",
		LogFormat: "json",

		DBHost:            "localhost",
		DBPort:            3306,
		DBUser:            "admin",
		DBName:            "tricycles",
		DBMaxOpenConns:    1,
		DBMaxIdleConns:    1,
		DBConnMaxLifetime: 5 * time.Minute,

		SlowQueryThreshold: 200 * time.Millisecond,

		RateLimitPerMinute:  600,
		RateLimitBurst:      50,
		HealthCheckInterval: 30 * time.Second,
		HealthCheckTimeout:  5 * time.Second,
		ShutdownTimeout:     10 * time.Second,
	}
}

// Load layers defaults, the YAML file named by TRICYCLE_CONFIG (if any)
// and TRICYCLE_* env vars, in that order of precedence, then validates.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(configFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// TRICYCLE_DB_HOST -> db_host; keys stay flat to match the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DSN returns the MySQL data source name for the configured database.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	dsn := mysql.NewConfig()
	dsn.User = c.DBUser
	dsn.Passwd = c.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort))
	dsn.DBName = c.DBName
	dsn.ParseTime = true
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == "development"
}
