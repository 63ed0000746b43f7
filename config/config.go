package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Solver     SolverConfig     `yaml:"solver"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Log        LogConfig        `yaml:"log"`
	Timezone   string           `yaml:"timezone"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	EnableConstraints      bool   `yaml:"enable_constraints"`
}

// SolverConfig holds the connection settings for the external
// optimizer service.
type SolverConfig struct {
	URL               string        `yaml:"url"`
	TimeoutSeconds    int           `yaml:"timeout_seconds"`
	Timeout           time.Duration `yaml:"-"` // Ignored by YAML parser
	UnassignedPenalty int           `yaml:"unassigned_penalty"`
	MaxShiftsPerDay   int           `yaml:"max_shifts_per_day"`
	PreferredWeight   int           `yaml:"preferred_weight"`
	NeutralWeight     int           `yaml:"neutral_weight"`
	AvoidedWeight     int           `yaml:"avoided_weight"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	Enabled    bool   `yaml:"enabled"`
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker
// pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// LogConfig controls log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
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

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Solver.URL == "" {
		cfg.Solver.URL = "http://localhost:8000"
	}
	if cfg.Solver.TimeoutSeconds <= 0 {
		cfg.Solver.TimeoutSeconds = 30
	}
	cfg.Solver.Timeout = time.Duration(cfg.Solver.TimeoutSeconds) * time.Second
	if cfg.Solver.UnassignedPenalty <= 0 {
		cfg.Solver.UnassignedPenalty = 100
	}
	if cfg.Solver.MaxShiftsPerDay <= 0 {
		cfg.Solver.MaxShiftsPerDay = 1
	}
	if cfg.Solver.PreferredWeight == 0 {
		cfg.Solver.PreferredWeight = 10
	}
	if cfg.Solver.AvoidedWeight == 0 {
		cfg.Solver.AvoidedWeight = -10
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}

	return &cfg, nil
}
