package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Redis      RedisConfig      `yaml:"redis"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver   string         `yaml:"driver"`
	Path     string         `yaml:"path"`
	Postgres PostgresConfig `yaml:"postgres"`
	LogLevel string         `yaml:"log_level"`
	Backup   BackupConfig   `yaml:"backup"`
}

// BackupConfig applies to the sqlite driver only.
type BackupConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Interval      time.Duration `yaml:"interval"`
	StoragePath   string        `yaml:"storage_path"`
	RetentionDays int           `yaml:"retention_days"`
}

type PostgresConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	DBName         string `yaml:"dbname"`
	SSLMode        string `yaml:"sslmode"`
	MaxConnections int    `yaml:"max_connections"`
}

// DSN builds a libpq keyword/value connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

type ServerConfig struct {
	Port            int             `yaml:"port"`
	MetricsPort     int             `yaml:"metrics_port"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type GatewayConfig struct {
	Port            int                    `yaml:"port"`
	MetricsPort     int                    `yaml:"metrics_port"`
	BackendURL      string                 `yaml:"backend_url"`
	Timeout         time.Duration          `yaml:"timeout"`
	ShutdownTimeout time.Duration          `yaml:"shutdown_timeout"`
	RateLimit       GatewayRateLimitConfig `yaml:"rate_limit"`
	CORS            CORSConfig             `yaml:"cors"`
}

type GatewayRateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// MonitoringConfig switches the metrics listeners; each binary serves them
// on its own metrics_port.
type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

func Load(configPath string) (*Config, error) {
	// .env необязателен, но если он есть - подхватываем переменные
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("database path is required for sqlite")
		}
	case "postgres":
		if c.Database.Postgres.Host == "" || c.Database.Postgres.DBName == "" {
			return errors.New("postgres host and dbname are required")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.Backup.Enabled && c.Database.Driver != "sqlite" {
		return errors.New("database backup is supported for sqlite only")
	}

	if c.Gateway.BackendURL == "" {
		return errors.New("gateway backend_url is required")
	}
	if _, err := url.ParseRequestURI(c.Gateway.BackendURL); err != nil {
		return fmt.Errorf("gateway backend_url: %w", err)
	}

	if c.Gateway.RateLimit.Enabled && (c.Gateway.RateLimit.Requests <= 0 || c.Gateway.RateLimit.Window <= 0) {
		return errors.New("gateway rate_limit requires positive requests and window")
	}

	if c.Monitoring.PrometheusEnabled && c.Server.MetricsPort == c.Gateway.MetricsPort {
		return fmt.Errorf("server and gateway metrics_port must differ, both are %d", c.Server.MetricsPort)
	}

	return nil
}

func (c *Config) applyDefaults() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = "shareit.db"
	}
	if c.Database.Postgres.Port == 0 {
		c.Database.Postgres.Port = 5432
	}
	if c.Database.Postgres.SSLMode == "" {
		c.Database.Postgres.SSLMode = "disable"
	}
	if c.Database.Postgres.MaxConnections == 0 {
		c.Database.Postgres.MaxConnections = 10
	}
	if c.Database.Backup.Enabled {
		if c.Database.Backup.Interval == 0 {
			c.Database.Backup.Interval = 24 * time.Hour
		}
		if c.Database.Backup.StoragePath == "" {
			c.Database.Backup.StoragePath = "backups"
		}
	}

	if c.Server.Port == 0 {
		c.Server.Port = 9090
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.Gateway.Port == 0 {
		c.Gateway.Port = 8080
	}
	if c.Gateway.BackendURL == "" {
		c.Gateway.BackendURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout = 10 * time.Second
	}
	if c.Gateway.ShutdownTimeout == 0 {
		c.Gateway.ShutdownTimeout = 10 * time.Second
	}
	if c.Gateway.RateLimit.Enabled {
		if c.Gateway.RateLimit.Requests == 0 {
			c.Gateway.RateLimit.Requests = 100
		}
		if c.Gateway.RateLimit.Window == 0 {
			c.Gateway.RateLimit.Window = time.Minute
		}
	}

	if c.Monitoring.PrometheusEnabled {
		if c.Server.MetricsPort == 0 {
			c.Server.MetricsPort = 9100
		}
		if c.Gateway.MetricsPort == 0 {
			c.Gateway.MetricsPort = 9101
		}
	}
}
