package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers understood by the storage bootstrap.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Admin    AdminConfig    `yaml:"admin"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// StorageConfig selects the reservation storage backend.
type StorageConfig struct {
	Driver           string `yaml:"driver"`
	FallbackToMemory bool   `yaml:"fallback_to_memory"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string        `yaml:"dsn"`
	MaxOpenConns           int           `yaml:"max_open_conns"`
	MaxIdleConns           int           `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int           `yaml:"conn_max_lifetime_minutes"`
	ConnectTimeoutSeconds  int           `yaml:"connect_timeout_seconds"`
	ConnectTimeout         time.Duration `yaml:"-"`
	LogLevel               string        `yaml:"log_level"`
}

// AdminConfig holds the credentials guarding the administrative listing.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Enabled reports whether admin credentials are configured.
func (a AdminConfig) Enabled() bool {
	return a.Username != "" && a.Password != ""
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	switch cfg.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	case "":
		cfg.Storage.Driver = DriverMemory
	default:
		log.Printf("storage.driver %q is not supported; defaulting to %s", cfg.Storage.Driver, DriverMemory)
		cfg.Storage.Driver = DriverMemory
	}

	if cfg.Database.ConnectTimeoutSeconds <= 0 {
		cfg.Database.ConnectTimeoutSeconds = 5
	}
	cfg.Database.ConnectTimeout = time.Duration(cfg.Database.ConnectTimeoutSeconds) * time.Second
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}
}
