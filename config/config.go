// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Report   ReportConfig
	Log      LogConfig
	API      APIConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Debug           bool
}

// RedisConfig holds Redis configuration.
// An empty URL keeps rate limiting in process memory.
type RedisConfig struct {
	URL string
}

// CORSConfig holds the allowed browser origins.
type CORSConfig struct {
	AllowedOrigins []string
}

// ReportConfig holds report download settings.
type ReportConfig struct {
	RateLimit  int
	RateWindow time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// APIConfig holds the values reported by the root endpoint.
type APIConfig struct {
	Title   string
	Version string
}

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Load reads configuration from environment variables and, when configFile is
// not empty, from that file. Environment variables take precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("server.host"),
			Port:         v.GetInt("server.port"),
			Environment:  v.GetString("env"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("database.driver")),
			URL:             v.GetString("database.url"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
			Debug:           v.GetBool("db.debug"),
		},
		Redis: RedisConfig{
			URL: v.GetString("redis.url"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("cors.origins")),
		},
		Report: ReportConfig{
			RateLimit:  v.GetInt("report.rate_limit"),
			RateWindow: v.GetDuration("report.rate_window"),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("log.level")),
		},
		API: APIConfig{
			Title:   v.GetString("api.title"),
			Version: v.GetString("api.version"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("database url must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Report.RateLimit <= 0 {
		return fmt.Errorf("report rate limit must be positive, got %d", c.Report.RateLimit)
	}
	return nil
}

// IsTest reports whether the application runs in the test environment.
func (c *Config) IsTest() bool {
	return c.Server.Environment == EnvTest
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("env", EnvDevelopment)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "finance.db")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("db.debug", false)

	v.SetDefault("redis.url", "")
	v.SetDefault("cors.origins", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("report.rate_limit", 30)
	v.SetDefault("report.rate_window", time.Minute)

	v.SetDefault("log.level", "info")

	v.SetDefault("api.title", "Finance API")
	v.SetDefault("api.version", "1.0.0")
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
