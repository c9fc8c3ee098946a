package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/models"
)

// DefaultConfigFile is read when present; environment variables always
// override it.
const DefaultConfigFile = "config.yaml"

// Config holds all configuration for the vizor API.
// Secrets (passwords) only come from environment variables.
type Config struct {
	Port           string `yaml:"port" env:"PORT" env-default:"8080"`
	Env            string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel       string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	AllowedOrigins string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`

	Redis RedisConfig `yaml:"redis"`

	// Timeouts in seconds for datasource round trips.
	QueryTimeoutSeconds         int `yaml:"query_timeout_seconds" env:"QUERY_TIMEOUT_SECONDS" env-default:"30"`
	IntrospectionTimeoutSeconds int `yaml:"introspection_timeout_seconds" env:"INTROSPECTION_TIMEOUT_SECONDS" env-default:"30"`

	// Datasource to connect on startup. Empty Host means wait for db-login.
	Datasource DatasourceConfig `yaml:"datasource"`
}

// RedisConfig locates the connection and query history store. An empty Addr
// keeps history in memory.
type RedisConfig struct {
	Addr                      string `yaml:"addr" env:"REDIS_ADDR" env-default:""`
	Password                  string `yaml:"-" env:"REDIS_PASSWORD"`
	DB                        int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	ConnectionHistoryTTLHours int    `yaml:"connection_history_ttl_hours" env:"CONNECTION_HISTORY_TTL_HOURS" env-default:"720"`
	QueryHistorySize          int    `yaml:"query_history_size" env:"QUERY_HISTORY_SIZE" env-default:"100"`
}

type DatasourceConfig struct {
	Driver   string `yaml:"driver" env:"DATASOURCE_DRIVER" env-default:"postgres"`
	Host     string `yaml:"host" env:"DATASOURCE_HOST" env-default:""`
	// Port and Schema default per driver when left empty.
	Port     string `yaml:"port" env:"DATASOURCE_PORT"`
	Name     string `yaml:"name" env:"DATASOURCE_NAME" env-default:""`
	User     string `yaml:"user" env:"DATASOURCE_USER" env-default:""`
	Password string `yaml:"-" env:"DATASOURCE_PASSWORD"`
	Schema   string `yaml:"schema" env:"DB_SCHEMA"`

	PoolMaxConns int32 `yaml:"pool_max_conns" env:"POOL_MAX_CONNS" env-default:"10"`
	PoolMinConns int32 `yaml:"pool_min_conns" env:"POOL_MIN_CONNS" env-default:"1"`
}

// Load reads DefaultConfigFile when it exists, otherwise the environment only.
func Load() (*Config, error) {
	return LoadFile(DefaultConfigFile)
}

func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port must be numeric: %q", c.Port)
	}
	if c.QueryTimeoutSeconds <= 0 {
		return fmt.Errorf("query timeout must be positive")
	}
	if c.IntrospectionTimeoutSeconds <= 0 {
		return fmt.Errorf("introspection timeout must be positive")
	}
	if c.Datasource.PoolMinConns > c.Datasource.PoolMaxConns {
		return fmt.Errorf("pool_min_conns (%d) exceeds pool_max_conns (%d)", c.Datasource.PoolMinConns, c.Datasource.PoolMaxConns)
	}
	if c.Redis.QueryHistorySize <= 0 {
		return fmt.Errorf("query history size must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

func (c *Config) IntrospectionTimeout() time.Duration {
	return time.Duration(c.IntrospectionTimeoutSeconds) * time.Second
}

func (c *Config) ConnectionHistoryTTL() time.Duration {
	return time.Duration(c.Redis.ConnectionHistoryTTLHours) * time.Hour
}

// Origins splits the comma-separated CORS origin list.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) PoolOptions() database.PoolOptions {
	opts := database.DefaultPoolOptions()
	opts.MaxConns = c.Datasource.PoolMaxConns
	opts.MinConns = c.Datasource.PoolMinConns
	return opts
}

// StartupDatasource returns the datasource to connect on boot, if one is
// configured, with driver defaults applied.
func (c *Config) StartupDatasource() (models.ConnectionDetails, bool) {
	if c.Datasource.Host == "" {
		return models.ConnectionDetails{}, false
	}
	return models.ConnectionDetails{
		Driver:       c.Datasource.Driver,
		Host:         c.Datasource.Host,
		Port:         c.Datasource.Port,
		DatabaseName: c.Datasource.Name,
		Username:     c.Datasource.User,
		Password:     c.Datasource.Password,
		Schema:       c.Datasource.Schema,
	}.Normalize(), true
}
